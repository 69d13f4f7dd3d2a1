package calib

import (
	"automotion-go/internal/hal"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	sim := hal.NewSim()
	r := Record{UpperLimit: 2260, LowerLimit: 720, Speed: 8}
	Save(sim, r)

	got := Load(sim)
	if got != r {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, r)
	}
}

func TestLockFlagRoundTrip(t *testing.T) {
	sim := hal.NewSim()
	if Locked(sim) {
		t.Fatalf("fresh EEPROM should read unlocked")
	}
	SetLocked(sim, true)
	if !Locked(sim) {
		t.Fatalf("expected locked after SetLocked(true)")
	}
	SetLocked(sim, false)
	if Locked(sim) {
		t.Fatalf("expected unlocked after SetLocked(false)")
	}
}

func TestLoadDefaults(t *testing.T) {
	sim := hal.NewSim()
	sim.SeedDefaults([]byte{0xCA, 0x08, 0xEE, 0x02, 0x04, 0x00}) // 2250,750,4 LE
	got := LoadDefaults(sim.DefaultsCap())
	want := Record{UpperLimit: 2250, LowerLimit: 750, Speed: 4}
	if got != want {
		t.Fatalf("LoadDefaults = %+v, want %+v", got, want)
	}
}
