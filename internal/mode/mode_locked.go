package mode

import (
	"automotion-go/internal/calib"
	"automotion-go/internal/input"
	"automotion-go/internal/servo"
)

// enterLocked runs LOCKED's entry action (spec.md §4.F): drive to
// lower_limit, persist the lock flag, reset the exit gesture window.
func (m *Machine) enterLocked() {
	m.state = Locked
	m.locked = true
	calib.SetLocked(m.eeprom, true)
	m.exitLockWindow.Reset()
}

// stepLocked implements LOCKED: hold lower_limit, watch for the
// DOWN->CENTER x LockedCntReq exit gesture.
func (m *Machine) stepLocked(in StepInput) StepOutput {
	if in.Key == input.On {
		if isEdge(in.SwitchEdge, input.Down, input.Center) {
			if m.exitLockWindow.Feed(in.Now) {
				m.exitLocked()
			}
		} else {
			m.exitLockWindow.Expire(in.Now)
		}
	} else {
		m.exitLockWindow.Reset()
	}

	return StepOutput{DesiredDuty: m.cal.LowerLimit, Speed: m.cal.Speed, ActiveMode: servo.ModeLocked}
}

func (m *Machine) exitLocked() {
	m.locked = false
	calib.SetLocked(m.eeprom, false)
	m.state = Normal
	m.enterLockWindow.Reset()
}
