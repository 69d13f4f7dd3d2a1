package mode

import "automotion-go/internal/calib"

// beginUserReset implements spec.md §4.F's asynchronous user-reset
// gesture: copy the in-program defaults over both the RAM calibration and
// the EEPROM record, clear the persisted lock flag, latch, and fall
// through to REBOOT so its full re-initialization runs (spec.md §4
// clarification carried from the source this behavior was resolved
// against).
func (m *Machine) beginUserReset() {
	def := calib.LoadDefaults(m.defaults)
	calib.Save(m.eeprom, def)
	calib.SetLocked(m.eeprom, false)
	m.cal = def
	m.locked = false
	m.resetLatch = true
	m.state = Reboot
}
