// Package hal declares the capability interfaces the controller is built
// against — PWM, ADC, digital input, EEPROM block storage and the
// watchdog — plus the scoped interrupt-mask guard every cross-domain field
// access goes through. Nothing in this package touches real silicon: the
// rp2040 build tag binds these to the TinyGo machine package (hal_rp2040.go);
// tests and the host demo bind them to the in-memory Sim (hal_sim.go).
package hal

// PWM is the single servo-drive timer channel (spec §6: 50 Hz, duty in
// 1µs ticks, 750..2250 giving the 0.75ms..2.25ms pulse range).
type PWM interface {
	// Configure programs the PWM period for freqHz with top as the
	// counter's wrap value (the duty register's full-scale count).
	Configure(freqHz uint32, top uint16)
	// SetDuty writes the high-phase length, in timer ticks.
	SetDuty(ticks uint16)
	// Enable re-asserts the drive pin as a PWM output.
	Enable()
	// Disable tri-states the drive pin (hum suppression).
	Disable()
	// Enabled reports whether the drive pin is currently asserted.
	Enabled() bool
	// InLowPhase reports whether the timer is currently in the low portion
	// of the PWM cycle — the only safe moment to rewrite the duty register
	// without glitching the current pulse (spec §4.G step 4).
	InLowPhase() bool
}

// ADC samples one of the five logical channels (spec §6), blocking until
// the conversion completes. Callers outside the tick ISR only: spec §5
// forbids invoking it from interrupt context.
type ADC interface {
	Sample(channel int) uint16
}

// ADC channel assignments (spec §6).
const (
	ChanACC    = 0 // ignition-key ACC analog input, variant-dependent
	ChanSwitch = 1 // override toggle switch
	ChanSpeed  = 2 // speed trim pot
	ChanHiLim  = 3 // high-limit trim pot
	ChanLoLim  = 4 // low-limit trim pot
)

// DigitalIn is a single-bit input: the NORM/REV direction pin, the
// external-reset pin, or (in digital-ACC variants) the key line itself.
type DigitalIn interface {
	Get() bool
}

// EEPROM is the persisted-state block device (spec §6): one fixed-layout
// calibration record plus one lock-flag byte, little-endian. All ops
// block until the controller reports ready; none may run from the ISR
// (spec §4.A).
type EEPROM interface {
	ReadBlock(dst []byte, offset int)
	WriteBlock(src []byte, offset int)
	ReadByte(offset int) byte
	WriteByte(offset int, v byte)
}

// Defaults reads the immutable factory-calibration copy baked into program
// memory (spec §3 "Defaults source"), used by first boot and the user-reset
// gesture.
type Defaults interface {
	ReadBlock(dst []byte)
}

// Watchdog must be kicked once per foreground iteration; an unkicked
// watchdog resets the controller (spec §5).
type Watchdog interface {
	Enable(periodMs uint32)
	Kick()
}

// Guard is the scoped interrupt-mask region of spec §3/§5: "any read or
// write of a multi-byte shared field... must happen inside a scoped
// interrupt-mask region." Lock/Unlock bracket the smallest possible critical
// section — a single assignment or small fixed-size copy, never an ADC
// conversion or EEPROM wait.
type Guard interface {
	Lock()
	Unlock()
}

// Hardware bundles every capability the controller needs, the "capability
// object... injected into the state machine" of spec §9.
type Hardware struct {
	PWM      PWM
	ADC      ADC
	NormRev  DigitalIn
	Reset    DigitalIn
	EEPROM   EEPROM
	Defaults Defaults
	Watchdog Watchdog
	Guard    Guard
}
