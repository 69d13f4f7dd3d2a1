// Package controller wires hardware abstraction, timebase, input sampling,
// event detection, gesture recognition, the mode state machine and the
// slew engine into the single owned device context spec.md §9 calls for,
// and runs its foreground loop.
package controller

import (
	"context"

	"automotion-go/internal/calib"
	"automotion-go/internal/event"
	"automotion-go/internal/hal"
	"automotion-go/internal/input"
	"automotion-go/internal/mode"
	"automotion-go/internal/servo"
	"automotion-go/internal/timebase"
	"automotion-go/internal/variant"
	"automotion-go/x/mathx"
)

// AnalogKey selects whether ACC is decoded from an analog channel (true)
// or a digital pin (false). Board wiring, not a firmware variant; it is a
// package constant that neither cmd/automotion-* binary overrides.
const AnalogKey = true

// Controller is the device context: every field the tick domain and the
// foreground domain share lives behind hal.Guard via Timebase and Engine;
// everything else here is foreground-only.
type Controller struct {
	hw  hal.Hardware
	cfg variant.Config

	tb      *timebase.Timebase
	engine  *servo.Engine
	sampler *input.Sampler
	machine *mode.Machine

	switchDet event.Detector[input.SwitchPos]
	keyDet    event.Detector[input.KeyPos]
}

// New constructs a Controller for the active build variant (variant.Active)
// bound to hw.
func New(hw hal.Hardware) *Controller {
	cfg := variant.Active
	c := &Controller{
		hw:      hw,
		cfg:     cfg,
		tb:      timebase.New(hw.Guard),
		engine:  servo.New(hw.PWM, cfg.HumTimeoutMs),
		sampler: input.NewSampler(AnalogKey),
		machine: mode.New(cfg, hw.EEPROM, hw.Defaults, hw.Watchdog),
	}
	return c
}

// OnTick must be invoked once per ~1ms hardware timer interrupt (or, on
// the sim build, once per simulated tick). It is the only method safe to
// call from interrupt context.
func (c *Controller) OnTick() {
	c.tb.Tick(variant.SampleDiv)
	c.engine.Tick()
}

// Run executes the foreground loop until ctx is cancelled. The watchdog is
// armed by the mode machine's own REBOOT entry (stepReboot), which runs
// before the first iteration and again on every user-reset re-entry; Run
// just kicks it. Each iteration polls the sample flag, and — when raised —
// runs the sample -> event -> gesture -> mode-step -> apply pipeline
// before kicking the watchdog (spec.md §2).
func (c *Controller) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		if c.tb.TakeSampleFlag() {
			c.step()
		}
		c.hw.Watchdog.Kick()
	}
}

// step runs one C->D->E->F iteration and applies the result to the slew
// engine (spec.md §2).
func (c *Controller) step() {
	now := c.tb.NowMs()

	raw := input.Sample{
		SwitchCount: c.hw.ADC.Sample(hal.ChanSwitch),
		KeyCount:    c.hw.ADC.Sample(hal.ChanACC),
		NormRev:     c.hw.NormRev.Get(),
		TimestampMs: now,
	}

	sw, swSettled, key, keySettled := c.sampler.Observe(raw)

	if swSettled {
		c.switchDet.Observe(sw, now)
	}
	if keySettled {
		c.keyDet.Observe(key, now)
	}

	swEdge, swPending := c.switchDet.Take()
	keyEdge, keyPending := c.keyDet.Take()

	if c.cfg.ContinuousPots {
		c.recomputeContinuous()
	}

	in := mode.StepInput{
		Now:            now,
		Switch:         c.switchDet.Last(),
		Key:            c.keyDet.Last(),
		NormRev:        raw.NormRev,
		ResetRequested: c.hw.Reset.Get(),
	}
	if swPending {
		in.SwitchEdge = &swEdge
	}
	if keyPending {
		in.KeyEdge = &keyEdge
	}

	out := c.machine.Step(in)

	c.hw.Guard.Lock()
	c.engine.SetDesiredDuty(out.DesiredDuty)
	c.engine.SetSpeed(out.Speed)
	c.engine.SetMode(out.ActiveMode)
	c.hw.Guard.Unlock()

	if out.DirectDuty != nil {
		c.hw.PWM.SetDuty(*out.DirectDuty)
		if !c.hw.PWM.Enabled() {
			c.hw.PWM.Enable()
		}
	}
}

// State returns the mode machine's CurrentState, for tests and telemetry.
func (c *Controller) State() mode.State { return c.machine.State() }

// DesiredDuty returns the slew engine's last-written desired duty.
func (c *Controller) DesiredDuty() uint16 {
	c.hw.Guard.Lock()
	defer c.hw.Guard.Unlock()
	return c.engine.DesiredDuty()
}

// CurrentDuty returns the slew engine's last-applied current duty.
func (c *Controller) CurrentDuty() uint16 {
	c.hw.Guard.Lock()
	defer c.hw.Guard.Unlock()
	return c.engine.CurrentDuty()
}

// Calibration returns the mode machine's cached RAM calibration record.
func (c *Controller) Calibration() calib.Record { return c.machine.Calibration() }

// recomputeContinuous implements V3's continuous potentiometer recompute
// (spec.md §4.F): upper_limit, lower_limit and speed are derived from the
// calibration pots on every sample tick instead of being loaded from
// EEPROM.
func (c *Controller) recomputeContinuous() {
	openRaw := c.hw.ADC.Sample(hal.ChanHiLim)
	closedRaw := c.hw.ADC.Sample(hal.ChanLoLim)
	speedRaw := c.hw.ADC.Sample(hal.ChanSpeed)

	upper := uint16(variant.PWMOpenLim) - 3*(openRaw>>2)
	lower := uint16(variant.PWMClosedLim) + 3*(closedRaw>>2)
	speed := mathx.Clamp(speedRaw>>4, uint16(variant.SpeedMin), uint16(variant.SpeedMax))

	c.machine.SetCalibration(calib.Record{
		UpperLimit: upper,
		LowerLimit: lower,
		Speed:      speed,
	})
}
