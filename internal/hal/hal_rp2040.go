//go:build rp2040

package hal

import (
	"device/arm"
	"machine"

	"automotion-go/errcode"
)

// Pins is the rp2040 board wiring: which machine.Pin/ADC/PWM channel backs
// each capability. Set by cmd/automotion-rp2040 before calling NewRP2040.
type Pins struct {
	ServoPWM   machine.PWM
	ServoCh    uint8
	ServoPin   machine.Pin
	ACC        machine.ADC
	Switch     machine.ADC
	Speed      machine.ADC
	HiLim      machine.ADC
	LoLim      machine.ADC
	NormRevPin machine.Pin
	ResetPin   machine.Pin
}

// rp2040Guard implements Guard by disabling the CPU's global interrupt
// enable bit for the scoped region — the "scoped interrupt-mask region"
// spec.md §5 requires, realized the way a Cortex-M0+ foreground routine
// would: no OS, no goroutine scheduler preemption to worry about, only
// the tick ISR itself.
type rp2040Guard struct {
	saved uintptr
}

func (g *rp2040Guard) Lock() {
	g.saved = arm.DisableInterrupts()
}

func (g *rp2040Guard) Unlock() {
	arm.EnableInterrupts(g.saved)
}

type rp2040PWM struct {
	pwm machine.PWM
	ch  uint8
	top uint16
	on  bool
	low bool
}

func (p *rp2040PWM) Configure(freqHz uint32, top uint16) {
	p.pwm.Configure(machine.PWMConfig{Period: uint64(1_000_000_000 / freqHz)})
	p.top = top
}

func (p *rp2040PWM) SetDuty(ticks uint16) {
	p.pwm.Set(p.ch, uint32(ticks))
}

func (p *rp2040PWM) Enable() {
	p.pwm.SetPeriod(uint64(1_000_000_000 / 50))
	p.on = true
}

func (p *rp2040PWM) Disable() {
	p.pwm.Set(p.ch, 0)
	p.on = false
}

func (p *rp2040PWM) Enabled() bool { return p.on }

// InLowPhase returns the flag last set by NoteLowPhase. NewRP2040 starts it
// true and nothing in this repository calls NoteLowPhase, so duty writes are
// never deferred on this backend: the RP2040's PWM compare register is
// double-buffered and latches at the counter wrap, so a write never cuts
// the current pulse short.
func (p *rp2040PWM) InLowPhase() bool { return p.low }

// NoteLowPhase overrides the phase flag InLowPhase reports.
func (p *rp2040PWM) NoteLowPhase(v bool) { p.low = v }

type rp2040ADC struct {
	chans [5]machine.ADC
}

func (a *rp2040ADC) Sample(channel int) uint16 {
	if channel < 0 || channel >= len(a.chans) {
		return 0
	}
	return a.chans[channel].Get()
}

type rp2040Digital struct{ pin machine.Pin }

func (d rp2040Digital) Get() bool { return d.pin.Get() }

// rp2040EEPROM reads and writes the calibration sector buffer it is given
// and calls flashCommit after every write.
type rp2040EEPROM struct {
	sector []byte
}

func (e *rp2040EEPROM) ReadBlock(dst []byte, offset int) { copy(dst, e.sector[offset:]) }
func (e *rp2040EEPROM) WriteBlock(src []byte, offset int) {
	copy(e.sector[offset:], src)
	flashCommit(e.sector)
}
func (e *rp2040EEPROM) ReadByte(offset int) byte { return e.sector[offset] }
func (e *rp2040EEPROM) WriteByte(offset int, v byte) {
	e.sector[offset] = v
	flashCommit(e.sector)
}

// flashCommit is the hook for erasing and reprogramming the calibration
// flash sector. Its body is empty: it touches no flash, so the sector's
// contents live only in RAM and do not survive a reset.
func flashCommit(sector []byte) {}

type rp2040Defaults struct{ block []byte }

func (d rp2040Defaults) ReadBlock(dst []byte) { copy(dst, d.block) }

type rp2040Watchdog struct{}

func (rp2040Watchdog) Enable(periodMs uint32) {
	machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: periodMs})
	machine.Watchdog.Start()
}
func (rp2040Watchdog) Kick() { machine.Watchdog.Update() }

// recordSize is the calib package's on-wire record size; kept here too so
// NewRP2040 can validate its buffers without importing internal/calib.
const recordSize = 6

// validatePins rejects board wiring NewRP2040 cannot safely build from:
// a digital pin doing double duty, or calibration buffers too small for a
// calib.Record plus lock flag. These are the only errors a running
// controller can never recover from, so they are caught at boot instead of
// corrupting EEPROM or aliasing two capabilities onto one pin.
func validatePins(p Pins, calibSector, defaultsBlock []byte) error {
	if p.NormRevPin == p.ResetPin {
		return &errcode.E{C: errcode.PinInUse, Op: "hal.NewRP2040", Err: nil}
	}
	if p.ServoPin == p.NormRevPin || p.ServoPin == p.ResetPin {
		return &errcode.E{C: errcode.PinInUse, Op: "hal.NewRP2040", Err: nil}
	}
	if len(calibSector) < recordSize+1 {
		return &errcode.E{C: errcode.InvalidParams, Op: "hal.NewRP2040", Err: nil}
	}
	if len(defaultsBlock) < recordSize {
		return &errcode.E{C: errcode.InvalidParams, Op: "hal.NewRP2040", Err: nil}
	}
	return nil
}

// NewRP2040 wires every capability to real silicon via the machine package,
// returning the bundle the controller is built from. It fails fast on
// wiring mistakes the running controller could never recover from.
func NewRP2040(p Pins, calibSector []byte, defaultsBlock []byte) (Hardware, error) {
	if err := validatePins(p, calibSector, defaultsBlock); err != nil {
		return Hardware{}, err
	}
	pwm := &rp2040PWM{pwm: p.ServoPWM, ch: p.ServoCh, low: true}
	return Hardware{
		PWM: pwm,
		ADC: &rp2040ADC{chans: [5]machine.ADC{p.ACC, p.Switch, p.Speed, p.HiLim, p.LoLim}},
		NormRev: rp2040Digital{p.NormRevPin},
		Reset:   rp2040Digital{p.ResetPin},
		EEPROM:  &rp2040EEPROM{sector: calibSector},
		Defaults: rp2040Defaults{block: defaultsBlock},
		Watchdog: rp2040Watchdog{},
		Guard:    &rp2040Guard{},
	}, nil
}
