package hal

import "sync"

// Sim is an in-memory Hardware implementation: a virtual duty register, a
// scripted ADC channel table, and a plain byte-slice EEPROM. It is the
// "virtual clock, scripted ADC, in-memory EEPROM" capability double the
// design calls for, letting controller tests drive every input
// deterministically instead of touching real silicon.
type Sim struct {
	mu sync.Mutex

	dutyTop uint16
	duty    uint16
	enabled bool
	lowPhase bool

	channels [5]uint16

	normRev bool
	reset   bool

	eeprom   [64]byte
	defaults [64]byte

	wdPeriod uint32
	wdKicks  int
}

// NewSim returns a Sim with every channel zeroed and the PWM disabled.
func NewSim() *Sim {
	return &Sim{lowPhase: true}
}

func (s *Sim) Lock()   { s.mu.Lock() }
func (s *Sim) Unlock() { s.mu.Unlock() }

// --- PWM ---

func (s *Sim) Configure(freqHz uint32, top uint16) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dutyTop = top
}

func (s *Sim) SetDuty(ticks uint16) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.duty = ticks
}

func (s *Sim) Enable()  { s.mu.Lock(); s.enabled = true; s.mu.Unlock() }
func (s *Sim) Disable() { s.mu.Lock(); s.enabled = false; s.mu.Unlock() }

func (s *Sim) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

func (s *Sim) InLowPhase() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lowPhase
}

// SetLowPhase lets a test drive the simulated PWM cycle's low/high split.
func (s *Sim) SetLowPhase(v bool) { s.mu.Lock(); s.lowPhase = v; s.mu.Unlock() }

// Duty returns the last-written duty value, for test assertions.
func (s *Sim) Duty() uint16 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.duty
}

// --- ADC ---

func (s *Sim) Sample(channel int) uint16 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if channel < 0 || channel >= len(s.channels) {
		return 0
	}
	return s.channels[channel]
}

// SetChannel scripts the value the next Sample(channel) call returns.
func (s *Sim) SetChannel(channel int, v uint16) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if channel >= 0 && channel < len(s.channels) {
		s.channels[channel] = v
	}
}

// --- Digital inputs ---

type simDigital struct {
	s    *Sim
	which *bool
}

func (d simDigital) Get() bool {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	return *d.which
}

func (s *Sim) NormRev() DigitalIn { return simDigital{s, &s.normRev} }
func (s *Sim) Reset() DigitalIn   { return simDigital{s, &s.reset} }

// SetNormRev and SetReset drive the digital inputs from test code.
func (s *Sim) SetNormRev(v bool) { s.mu.Lock(); s.normRev = v; s.mu.Unlock() }
func (s *Sim) SetReset(v bool)   { s.mu.Lock(); s.reset = v; s.mu.Unlock() }

// --- EEPROM / Defaults ---

func (s *Sim) ReadBlock(dst []byte, offset int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copy(dst, s.eeprom[offset:])
}

func (s *Sim) WriteBlock(src []byte, offset int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copy(s.eeprom[offset:], src)
}

func (s *Sim) ReadByte(offset int) byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eeprom[offset]
}

func (s *Sim) WriteByte(offset int, v byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.eeprom[offset] = v
}

// SeedDefaults installs the factory-defaults block read back by ReadDefaultsBlock.
func (s *Sim) SeedDefaults(b []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copy(s.defaults[:], b)
}

func (s *Sim) ReadDefaultsBlock(dst []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copy(dst, s.defaults[:])
}

// defaultsAdaptor exposes Sim's defaults block through the Defaults
// capability interface without widening Sim's own method set.
type defaultsAdaptor struct{ s *Sim }

func (d defaultsAdaptor) ReadBlock(dst []byte) { d.s.ReadDefaultsBlock(dst) }

func (s *Sim) DefaultsCap() Defaults { return defaultsAdaptor{s} }

// --- Watchdog ---

func (s *Sim) Enable_(periodMs uint32) { s.mu.Lock(); s.wdPeriod = periodMs; s.mu.Unlock() }
func (s *Sim) Kick()                   { s.mu.Lock(); s.wdKicks++; s.mu.Unlock() }

type simWatchdog struct{ s *Sim }

func (w simWatchdog) Enable(periodMs uint32) { w.s.Enable_(periodMs) }
func (w simWatchdog) Kick()                  { w.s.Kick() }

func (s *Sim) WatchdogCap() Watchdog { return simWatchdog{s} }

// Kicks returns the number of watchdog kicks observed, for liveness tests.
func (s *Sim) Kicks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wdKicks
}

// WatchdogPeriod returns the period passed to the last Enable call, for
// re-arm tests.
func (s *Sim) WatchdogPeriod() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wdPeriod
}

// Hardware builds the capability bundle a controller is constructed with.
func (s *Sim) Hardware() Hardware {
	return Hardware{
		PWM:      s,
		ADC:      s,
		NormRev:  s.NormRev(),
		Reset:    s.Reset(),
		EEPROM:   s,
		Defaults: s.DefaultsCap(),
		Watchdog: s.WatchdogCap(),
		Guard:    s,
	}
}
