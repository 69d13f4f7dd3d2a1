package hal

import "testing"

func TestSimPWM(t *testing.T) {
	s := NewSim()
	s.Configure(50, 3000)
	s.SetDuty(1500)
	if s.Duty() != 1500 {
		t.Fatalf("Duty() = %d, want 1500", s.Duty())
	}
	if s.Enabled() {
		t.Fatalf("expected disabled on construction")
	}
	s.Enable()
	if !s.Enabled() {
		t.Fatalf("expected enabled after Enable()")
	}
	s.SetLowPhase(false)
	if s.InLowPhase() {
		t.Fatalf("expected InLowPhase() false after SetLowPhase(false)")
	}
}

func TestSimADCChannels(t *testing.T) {
	s := NewSim()
	s.SetChannel(ChanSwitch, 512)
	if got := s.Sample(ChanSwitch); got != 512 {
		t.Fatalf("Sample(ChanSwitch) = %d, want 512", got)
	}
	if got := s.Sample(99); got != 0 {
		t.Fatalf("Sample(out of range) = %d, want 0", got)
	}
}

func TestSimDigitalInputs(t *testing.T) {
	s := NewSim()
	hw := s.Hardware()
	if hw.NormRev.Get() {
		t.Fatalf("expected NormRev false by default")
	}
	s.SetNormRev(true)
	if !hw.NormRev.Get() {
		t.Fatalf("expected NormRev true after SetNormRev(true)")
	}
	s.SetReset(true)
	if !hw.Reset.Get() {
		t.Fatalf("expected Reset true after SetReset(true)")
	}
}

func TestSimEEPROMAndDefaults(t *testing.T) {
	s := NewSim()
	s.WriteByte(6, 0x5A)
	if got := s.ReadByte(6); got != 0x5A {
		t.Fatalf("ReadByte(6) = %#x, want 0x5A", got)
	}

	block := []byte{1, 2, 3, 4}
	s.WriteBlock(block, 10)
	dst := make([]byte, 4)
	s.ReadBlock(dst, 10)
	for i, v := range block {
		if dst[i] != v {
			t.Fatalf("ReadBlock[%d] = %d, want %d", i, dst[i], v)
		}
	}

	s.SeedDefaults([]byte{9, 8, 7})
	ddst := make([]byte, 3)
	s.DefaultsCap().ReadBlock(ddst)
	if ddst[0] != 9 || ddst[1] != 8 || ddst[2] != 7 {
		t.Fatalf("defaults readback = %v, want [9 8 7]", ddst)
	}
}

func TestSimWatchdogKicks(t *testing.T) {
	s := NewSim()
	wd := s.WatchdogCap()
	wd.Enable(250)
	wd.Kick()
	wd.Kick()
	if s.Kicks() != 2 {
		t.Fatalf("Kicks() = %d, want 2", s.Kicks())
	}
}
