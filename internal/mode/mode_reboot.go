package mode

import "automotion-go/internal/calib"

// stepReboot runs spec.md §4.F's REBOOT logic: load calibration, read the
// lock flag, reset scratch, re-arm the watchdog, and move on to LOCKED or
// NORMAL. REBOOT is synchronous — it never waits for a tick, it runs once
// and falls through to the chosen state in the same Step call. Re-arming
// the watchdog here (not just once at startup) covers the user-reset
// gesture's re-entry into REBOOT (mode_resetgesture.go), which must also
// pass through watchdog re-arm check per spec.md §4.F.
func (m *Machine) stepReboot(in StepInput) {
	m.cal = calib.Load(m.eeprom)
	m.locked = calib.Locked(m.eeprom)

	m.haveOpenTime = false
	m.resetGestureWindows()
	m.lastActivity = in.Now
	if m.watchdog != nil {
		m.watchdog.Enable(m.cfg.WatchdogPeriodMs)
	}

	if m.locked {
		m.state = Locked
	} else {
		m.state = Normal
	}
}
