// Package mode implements spec.md §4.F: the CurrentState state machine
// (REBOOT, NORMAL, LOCKED, DEMO, and — V2 only — the LO_LIM/HI_LIM/SPEED/
// EEPROM_COMMIT programming pipeline), owning the calibration record and
// driving desired_duty.
package mode

import (
	"automotion-go/internal/calib"
	"automotion-go/internal/event"
	"automotion-go/internal/gesture"
	"automotion-go/internal/hal"
	"automotion-go/internal/input"
	"automotion-go/internal/servo"
	"automotion-go/internal/variant"
	"automotion-go/x/timex"
)

// State enumerates CurrentState (spec.md §2).
type State int

const (
	Reboot State = iota
	Normal
	Locked
	Demo
	LoLim
	HiLim
	Speed
	EepromCommit
)

func (s State) String() string {
	switch s {
	case Reboot:
		return "REBOOT"
	case Normal:
		return "NORMAL"
	case Locked:
		return "LOCKED"
	case Demo:
		return "DEMO"
	case LoLim:
		return "LO_LIM"
	case HiLim:
		return "HI_LIM"
	case Speed:
		return "SPEED"
	case EepromCommit:
		return "EEPROM_COMMIT"
	default:
		return "?"
	}
}

// StepInput is one foreground iteration's settled inputs and any edges the
// event detector raised this iteration (spec.md §4.D, §4.F).
type StepInput struct {
	Now     uint32
	Switch  input.SwitchPos
	Key     input.KeyPos
	NormRev bool

	SwitchEdge *event.Edge[input.SwitchPos]
	KeyEdge    *event.Edge[input.KeyPos]

	ResetRequested bool
}

// StepOutput is what the state machine asks the rest of the controller to
// do this iteration.
type StepOutput struct {
	DesiredDuty uint16
	Speed       uint16
	ActiveMode  servo.ActiveMode
	// DirectDuty, when non-nil, asks the caller to write the PWM duty
	// register immediately, bypassing the slew engine (V3's NORMAL
	// UP/DOWN bypass — spec.md §9 Open Question, resolved in
	// internal/variant's V3 doc comment).
	DirectDuty *uint16
}

// Machine owns CurrentState, the cached calibration record, the lock flag,
// and every per-state scratch field (spec.md §3 "mode-machine scratch").
type Machine struct {
	cfg variant.Config

	eeprom   hal.EEPROM
	defaults hal.Defaults
	watchdog hal.Watchdog

	state State
	cal   calib.Record
	locked bool

	// NORMAL scratch
	openTime     uint32
	haveOpenTime bool

	enterLockWindow *gesture.EdgeWindow
	exitLockWindow  *gesture.EdgeWindow
	demoWindow      *gesture.EdgeWindow
	progCycles      *gesture.ProgramCycles

	// DEMO scratch
	demoSavedSpeed uint16
	demoOpen       bool
	demoLastToggle uint32

	// programming-pipeline scratch
	lastActivity uint32

	// user-reset latch (spec.md §4.F "reset-in-progress latch")
	resetLatch bool
}

// New constructs a Machine in state REBOOT. watchdog is re-armed on every
// REBOOT entry, including the user-reset-triggered re-entry (spec.md §4.F).
func New(cfg variant.Config, eeprom hal.EEPROM, defaults hal.Defaults, watchdog hal.Watchdog) *Machine {
	m := &Machine{
		cfg:      cfg,
		eeprom:   eeprom,
		defaults: defaults,
		watchdog: watchdog,
		state:    Reboot,
	}
	m.resetGestureWindows()
	return m
}

func (m *Machine) resetGestureWindows() {
	m.enterLockWindow = gesture.NewEdgeWindow(variant.LockedCntReq, m.cfg.LockedTimeoutMs)
	m.exitLockWindow = gesture.NewEdgeWindow(variant.LockedCntReq, m.cfg.LockedTimeoutMs)
	m.demoWindow = gesture.NewEdgeWindow(variant.DemoCntReq, variant.DemoTimeout)
	m.progCycles = gesture.NewProgramCycles(variant.ProgCycles, variant.ProgCycleLoLim, variant.ProgCycleHiLim)
}

// State returns CurrentState, for tests and telemetry.
func (m *Machine) State() State { return m.state }

// Calibration returns the cached RAM calibration record.
func (m *Machine) Calibration() calib.Record { return m.cal }

// Locked reports the cached RAM copy of the lock-mode flag.
func (m *Machine) Locked() bool { return m.locked }

// SetCalibration lets the controller push continuously-recomputed
// potentiometer values into the cached record (V3's ContinuousPots mode —
// see internal/variant's V3 doc comment). Never called in V1/V2 builds.
func (m *Machine) SetCalibration(r calib.Record) { m.cal = r }

// Step runs one foreground iteration of the state machine and returns the
// duty/speed it wants applied.
func (m *Machine) Step(in StepInput) StepOutput {
	if !in.ResetRequested {
		m.resetLatch = false
	} else if !m.resetLatch {
		m.beginUserReset()
	}

	switch m.state {
	case Reboot:
		m.stepReboot(in)
	}

	// Programming-pipeline idle timeout applies uniformly to LO_LIM/HI_LIM/
	// SPEED regardless of which one is active (spec.md §4.F).
	if m.inProgramming() {
		if in.SwitchEdge != nil || in.KeyEdge != nil {
			m.lastActivity = in.Now
		}
		if timex.Since(in.Now, m.lastActivity, variant.ProgTimeout) {
			m.cal = calib.Load(m.eeprom)
			m.state = Normal
		}
	}

	switch m.state {
	case Normal:
		return m.stepNormal(in)
	case Locked:
		return m.stepLocked(in)
	case Demo:
		return m.stepDemo(in)
	case LoLim:
		return m.stepLoLim(in)
	case HiLim:
		return m.stepHiLim(in)
	case Speed:
		return m.stepSpeed(in)
	case EepromCommit:
		return m.stepEepromCommit(in)
	default:
		return StepOutput{DesiredDuty: m.cal.LowerLimit, Speed: m.cal.Speed, ActiveMode: servo.ModeNormal}
	}
}

func (m *Machine) inProgramming() bool {
	switch m.state {
	case LoLim, HiLim, Speed:
		return true
	default:
		return false
	}
}

