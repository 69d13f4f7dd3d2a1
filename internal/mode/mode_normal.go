package mode

import (
	"automotion-go/internal/event"
	"automotion-go/internal/input"
	"automotion-go/internal/servo"
	"automotion-go/internal/variant"
	"automotion-go/x/timex"
)

// stepNormal implements spec.md §4.F's NORMAL state: combinatorial rules on
// the filtered switch/key plus the three gesture detectors that run only
// while NORMAL is active (enter-LOCKED, enter-DEMO, and — V2 only —
// enter-PROGRAM).
func (m *Machine) stepNormal(in StepInput) StepOutput {
	sw := in.Switch
	key := in.Key

	var duty uint16
	var directDuty *uint16

	switch sw {
	case input.Up:
		duty = m.cal.UpperLimit
		if m.cfg.DirectPWMBypass {
			v := directUpDuty
			directDuty = &v
		}
		m.progCycles.Reset()
	case input.Down:
		duty = m.cal.LowerLimit
		if m.cfg.DirectPWMBypass {
			v := directDownDuty
			directDuty = &v
		}
		if m.cfg.HasProgramming {
			m.feedProgramGesture(in)
		}
	case input.Center:
		duty = m.stepCenterAcc(in)
		m.progCycles.Reset()
	}

	if key == input.On {
		if isEdge(in.SwitchEdge, input.Up, input.Center) {
			if m.enterLockWindow.Feed(in.Now) {
				m.enterLocked()
			}
		} else {
			m.enterLockWindow.Expire(in.Now)
		}
		if isEdge(in.SwitchEdge, input.Center, input.Down) {
			if m.demoWindow.Feed(in.Now) {
				m.enterDemo(in.Now)
			}
		} else {
			m.demoWindow.Expire(in.Now)
		}
	} else {
		m.enterLockWindow.Reset()
		m.demoWindow.Reset()
	}

	return StepOutput{DesiredDuty: duty, Speed: m.cal.Speed, ActiveMode: servo.ModeNormal, DirectDuty: directDuty}
}

// directUpDuty/directDownDuty are the literal duty values V3's NORMAL
// handler writes straight to the PWM register for UP/DOWN, bypassing
// desired_duty — see internal/variant's V3 doc comment.
const (
	directUpDuty   uint16 = 2000
	directDownDuty uint16 = 1000
)

// stepCenterAcc implements the CENTER+ACC combinatorial rule, with V1's
// NORM/REV inversion scoped to this rule alone (internal/variant's V1 doc
// comment).
func (m *Machine) stepCenterAcc(in StepInput) uint16 {
	upper, lower := m.cal.UpperLimit, m.cal.LowerLimit
	if m.cfg.SwapAccOnCenter && in.NormRev {
		upper, lower = lower, upper
	}

	if isEdge(in.KeyEdge, input.Off, input.On) {
		m.openTime = in.Now
		m.haveOpenTime = true
	}
	if isEdge(in.KeyEdge, input.On, input.Off) {
		m.haveOpenTime = false
		return lower
	}

	if in.Key == input.On {
		if m.haveOpenTime && timex.Since(in.Now, m.openTime, variant.AccTimeout) {
			return upper
		}
		return lower
	}
	return lower
}

func isEdge[T comparable](e *event.Edge[T], from, to T) bool {
	return e != nil && e.Old == from && e.New == to
}
