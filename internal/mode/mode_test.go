package mode

import (
	"testing"

	"automotion-go/internal/calib"
	"automotion-go/internal/event"
	"automotion-go/internal/hal"
	"automotion-go/internal/input"
	"automotion-go/internal/variant"
)

func encodeRecord(r calib.Record) []byte {
	b := make([]byte, 6)
	b[0], b[1] = byte(r.UpperLimit), byte(r.UpperLimit>>8)
	b[2], b[3] = byte(r.LowerLimit), byte(r.LowerLimit>>8)
	b[4], b[5] = byte(r.Speed), byte(r.Speed>>8)
	return b
}

func newTestMachine(t *testing.T, rec calib.Record) (*Machine, *hal.Sim) {
	t.Helper()
	sim := hal.NewSim()
	sim.WriteBlock(encodeRecord(rec), 0)
	sim.SeedDefaults(encodeRecord(rec))
	m := New(variant.Active, sim, sim.DefaultsCap(), sim.WatchdogCap())
	return m, sim
}

func switchEdge(from, to input.SwitchPos) *event.Edge[input.SwitchPos] {
	return &event.Edge[input.SwitchPos]{Old: from, New: to, Pending: true}
}

func keyEdge(from, to input.KeyPos) *event.Edge[input.KeyPos] {
	return &event.Edge[input.KeyPos]{Old: from, New: to, Pending: true}
}

// TestStepRebootUnlockedEntersNormalAndArmsWatchdog checks spec.md §4.F's
// REBOOT logic loads calibration, reads the lock flag, and re-arms the
// watchdog (the fix for the user-reset re-entry — see mode_reboot.go).
func TestStepRebootUnlockedEntersNormalAndArmsWatchdog(t *testing.T) {
	rec := calib.Record{UpperLimit: 2250, LowerLimit: 750, Speed: 4}
	m, sim := newTestMachine(t, rec)

	out := m.Step(StepInput{Now: 0})

	if m.State() != Normal {
		t.Fatalf("state = %v, want NORMAL", m.State())
	}
	if out.DesiredDuty != rec.LowerLimit {
		t.Fatalf("desired_duty = %d, want lower_limit %d", out.DesiredDuty, rec.LowerLimit)
	}
	if sim.WatchdogPeriod() != variant.Active.WatchdogPeriodMs {
		t.Fatalf("watchdog period = %d, want %d", sim.WatchdogPeriod(), variant.Active.WatchdogPeriodMs)
	}
}

func TestStepRebootLockedEntersLocked(t *testing.T) {
	rec := calib.Record{UpperLimit: 2250, LowerLimit: 750, Speed: 4}
	m, sim := newTestMachine(t, rec)
	calib.SetLocked(sim, true)

	m.Step(StepInput{Now: 0})

	if m.State() != Locked {
		t.Fatalf("state = %v, want LOCKED", m.State())
	}
}

// TestUserResetReArmsWatchdogOnReentry checks beginUserReset's fall-through
// to REBOOT re-arms the watchdog on a second pass, not just at boot.
func TestUserResetReArmsWatchdogOnReentry(t *testing.T) {
	rec := calib.Record{UpperLimit: 2250, LowerLimit: 750, Speed: 4}
	m, sim := newTestMachine(t, rec)
	m.Step(StepInput{Now: 0}) // boot REBOOT

	sim.Enable_(0) // clear the period boot set, so re-arm is observable
	m.Step(StepInput{Now: 1000, ResetRequested: true})

	if sim.WatchdogPeriod() != variant.Active.WatchdogPeriodMs {
		t.Fatalf("watchdog not re-armed on user-reset re-entry, period = %d", sim.WatchdogPeriod())
	}
	if m.State() != Normal {
		t.Fatalf("state = %v, want NORMAL after reset re-init", m.State())
	}
}

// TestLockedExitGesture drives the DOWN->CENTER x LockedCntReq exit gesture
// directly against stepLocked/Step, independent of input sampling.
func TestLockedExitGesture(t *testing.T) {
	rec := calib.Record{UpperLimit: 2250, LowerLimit: 750, Speed: 4}
	m, sim := newTestMachine(t, rec)
	calib.SetLocked(sim, true)
	m.Step(StepInput{Now: 0})
	if m.State() != Locked {
		t.Fatalf("precondition: state = %v, want LOCKED", m.State())
	}

	now := uint32(100)
	for i := 0; i < variant.LockedCntReq; i++ {
		m.Step(StepInput{
			Now:        now,
			Switch:     input.Center,
			Key:        input.On,
			SwitchEdge: switchEdge(input.Down, input.Center),
		})
		now += 100
	}

	if m.State() != Normal {
		t.Fatalf("state = %v, want NORMAL after exit gesture", m.State())
	}
	if calib.Locked(sim) {
		t.Fatalf("EEPROM lock flag still set after exit")
	}
}

// TestDemoEntryTogglesAndSpeedRestoresOnExit drives enterDemo/stepDemo/
// exitDemo directly, checking the open/closed toggle cadence and that the
// pre-DEMO speed is restored on exit.
func TestDemoEntryTogglesAndSpeedRestoresOnExit(t *testing.T) {
	rec := calib.Record{UpperLimit: 2250, LowerLimit: 750, Speed: 4}
	m, _ := newTestMachine(t, rec)
	m.Step(StepInput{Now: 0}) // REBOOT -> NORMAL

	m.enterDemo(1000)
	if m.State() != Demo {
		t.Fatalf("state = %v, want DEMO", m.State())
	}
	if m.cal.Speed != variant.DemoSpeed {
		t.Fatalf("demo speed = %d, want %d", m.cal.Speed, variant.DemoSpeed)
	}

	out := m.stepDemo(StepInput{Now: 1000, Key: input.Off})
	if out.DesiredDuty != rec.LowerLimit {
		t.Fatalf("initial demo duty = %d, want lower_limit %d", out.DesiredDuty, rec.LowerLimit)
	}

	out = m.stepDemo(StepInput{Now: 1000 + variant.DemoCycleTime, Key: input.Off})
	if out.DesiredDuty != rec.UpperLimit {
		t.Fatalf("duty after DemoCycleTime = %d, want upper_limit %d", out.DesiredDuty, rec.UpperLimit)
	}

	m.exitDemo()
	if m.State() != Normal {
		t.Fatalf("state = %v, want NORMAL after exitDemo", m.State())
	}
	if m.cal.Speed != rec.Speed {
		t.Fatalf("speed = %d, want restored %d", m.cal.Speed, rec.Speed)
	}
}

// TestProgramPipelineLoLimHiLimSpeedCommit drives LO_LIM -> HI_LIM -> SPEED
// -> EEPROM_COMMIT directly against each step* method — the unit-level
// counterpart to controller's scenario-5 end-to-end test.
func TestProgramPipelineLoLimHiLimSpeedCommit(t *testing.T) {
	rec := calib.Record{UpperLimit: 2250, LowerLimit: 750, Speed: 4}
	m, sim := newTestMachine(t, rec)
	m.Step(StepInput{Now: 0}) // REBOOT -> NORMAL
	m.enterProgramming(0)
	if m.State() != LoLim {
		t.Fatalf("state = %v, want LO_LIM", m.State())
	}

	now := uint32(100)
	for i := 0; i < 3; i++ {
		m.stepLoLim(StepInput{Now: now, SwitchEdge: switchEdge(input.Center, input.Down)})
		now += 100
	}
	wantLower := rec.LowerLimit - 3*variant.AdjResolution
	if m.cal.LowerLimit != wantLower {
		t.Fatalf("lower_limit = %d, want %d", m.cal.LowerLimit, wantLower)
	}

	m.stepLoLim(StepInput{Now: now, KeyEdge: keyEdge(input.On, input.Off)})
	now += 100
	if m.State() != HiLim {
		t.Fatalf("state = %v, want HI_LIM", m.State())
	}

	m.stepHiLim(StepInput{Now: now, SwitchEdge: switchEdge(input.Center, input.Up)})
	now += 100
	wantUpper := rec.UpperLimit + variant.AdjResolution
	if m.cal.UpperLimit != wantUpper {
		t.Fatalf("upper_limit = %d, want %d", m.cal.UpperLimit, wantUpper)
	}

	m.stepHiLim(StepInput{Now: now, KeyEdge: keyEdge(input.On, input.Off)})
	now += 100
	if m.State() != Speed {
		t.Fatalf("state = %v, want SPEED", m.State())
	}

	m.stepSpeed(StepInput{Now: now, Switch: input.Center, SwitchEdge: switchEdge(input.Up, input.Center)})
	now += 100
	wantSpeed := rec.Speed * 2
	if m.cal.Speed != wantSpeed {
		t.Fatalf("speed = %d, want %d", m.cal.Speed, wantSpeed)
	}

	m.stepSpeed(StepInput{Now: now, KeyEdge: keyEdge(input.On, input.Off)})
	if m.State() != EepromCommit {
		t.Fatalf("state = %v, want EEPROM_COMMIT", m.State())
	}

	final := m.stepEepromCommit(StepInput{Now: now})
	if m.State() != Normal {
		t.Fatalf("state = %v, want NORMAL after commit", m.State())
	}
	want := calib.Record{UpperLimit: wantUpper, LowerLimit: wantLower, Speed: wantSpeed}
	if got := calib.Load(sim); got != want {
		t.Fatalf("committed EEPROM record = %+v, want %+v", got, want)
	}
	if final.DesiredDuty != want.LowerLimit {
		t.Fatalf("commit desired_duty = %d, want lower_limit %d", final.DesiredDuty, want.LowerLimit)
	}
}

// TestProgrammingIdleTimeoutReloadsAndReturnsNormal checks spec.md §4.F's
// programming-pipeline idle timeout discards the in-progress edit and
// reloads the committed EEPROM record.
func TestProgrammingIdleTimeoutReloadsAndReturnsNormal(t *testing.T) {
	rec := calib.Record{UpperLimit: 2250, LowerLimit: 750, Speed: 4}
	m, _ := newTestMachine(t, rec)
	m.Step(StepInput{Now: 0})
	m.enterProgramming(0)
	m.cal.LowerLimit -= 100 // dirty the in-progress record, never committed

	out := m.Step(StepInput{Now: variant.ProgTimeout + 1})

	if m.State() != Normal {
		t.Fatalf("state = %v, want NORMAL after idle timeout", m.State())
	}
	if out.DesiredDuty != rec.LowerLimit {
		t.Fatalf("desired_duty = %d, want reloaded lower_limit %d", out.DesiredDuty, rec.LowerLimit)
	}
}
