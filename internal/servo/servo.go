// Package servo implements spec.md §4.G: the ISR-resident slew engine
// that rate-limits current_duty toward desired_duty and tri-states the
// PWM drive pin once the servo has settled (hum suppression).
package servo

import (
	"automotion-go/internal/hal"
	"automotion-go/internal/variant"
	"automotion-go/x/mathx"
)

// ActiveMode is the subset of mode-machine states in which hum suppression
// is permitted to disable PWM drive (spec.md §4.G step 6: "Program states
// always keep PWM driven so the operator can see adjustments").
type ActiveMode int

const (
	ModeNormal ActiveMode = iota
	ModeLocked
	ModeDemo
	ModeProgramming
)

// Engine is the ISR-only state of spec.md §3's slew-engine scratch:
// speed_timer, hum_count and current_duty. desired_duty, speed and mode are
// the sole foreground-writable, ISR-readable fields; the foreground writes
// them while holding its hal.Guard (the Engine itself holds no guard).
type Engine struct {
	pwm hal.PWM

	humTimeoutTicks uint32

	speedTimer  uint32
	humCount    uint32
	currentDuty uint16

	desiredDuty uint16
	speed       uint16

	mode ActiveMode
}

// New constructs an Engine bound to pwm. humTimeoutTicks is the variant's
// hum-suppression timeout expressed in ticks (milliseconds, since the tick
// period is ~1ms).
func New(pwm hal.PWM, humTimeoutTicks uint32) *Engine {
	return &Engine{pwm: pwm, humTimeoutTicks: humTimeoutTicks, currentDuty: variant.PWMCenterDflt}
}

// SetDesiredDuty is the foreground's sole inbound write to the ISR domain
// (spec.md §3). Call only while holding the caller's hal.Guard.
func (e *Engine) SetDesiredDuty(d uint16) { e.desiredDuty = d }

// SetSpeed updates the slew rate (ticks between steps).
func (e *Engine) SetSpeed(speed uint16) { e.speed = speed }

// SetMode tells the engine which mode-machine state is active, so it can
// decide whether hum suppression may disable PWM drive.
func (e *Engine) SetMode(m ActiveMode) { e.mode = m }

// CurrentDuty returns the last-written duty value, under the caller's
// guard if read from the foreground.
func (e *Engine) CurrentDuty() uint16 { return e.currentDuty }

// DesiredDuty returns the last value written by the foreground, under the
// caller's guard if read from the foreground.
func (e *Engine) DesiredDuty() uint16 { return e.desiredDuty }

// Tick runs one ISR-resident slew step (spec.md §4.G). Call once per
// hardware timer interrupt, never from the foreground.
func (e *Engine) Tick() {
	if e.speedTimer > 0 {
		e.speedTimer--
		return
	}

	desired := mathx.Clamp(e.desiredDuty, uint16(variant.PWMClosedLim), uint16(variant.PWMOpenLim))

	d := int32(desired) - int32(e.currentDuty)
	const step = variant.AdjResolution
	var settled bool
	switch {
	case d > step+1:
		e.currentDuty += step
	case d < -(step + 1):
		e.currentDuty -= step
	default:
		settled = true
	}

	if !settled {
		if !e.pwm.InLowPhase() {
			// Spec.md §4.G step 4 busy-waits for the low phase before
			// writing; on this tick-driven model the write is deferred to
			// the next tick instead of spinning inside the ISR.
			return
		}
		e.pwm.SetDuty(e.currentDuty)
		if !e.pwm.Enabled() {
			e.pwm.Enable()
		}
		e.humCount = 0
		e.reloadSpeedTimer()
		return
	}

	if e.pwm.Enabled() && e.humCount == 0 {
		e.humCount = e.humTimeoutTicks
	}
	if e.humCount > 0 {
		e.humCount--
		if e.humCount == 0 && e.canSuppress() {
			if e.pwm.InLowPhase() {
				e.pwm.Disable()
			}
		}
	}
}

// reloadSpeedTimer arms the gap before the next step. The tick that steps
// counts as one of the `speed` ticks between steps, so the timer is loaded
// with speed-1 idle ticks.
func (e *Engine) reloadSpeedTimer() {
	speed := mathx.Clamp(e.speed, uint16(variant.SpeedMin), uint16(variant.SpeedMax))
	e.speedTimer = uint32(speed) - 1
}

func (e *Engine) canSuppress() bool {
	switch e.mode {
	case ModeNormal, ModeLocked, ModeDemo:
		return true
	default:
		return false
	}
}
