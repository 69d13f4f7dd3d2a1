package mode

import (
	"automotion-go/internal/calib"
	"automotion-go/internal/input"
	"automotion-go/internal/servo"
	"automotion-go/internal/variant"
	"automotion-go/x/mathx"
)

// feedProgramGesture drives the enter-PROGRAM recognizer from NORMAL while
// the switch is DOWN (V2 only — spec.md §4.E). The firing window is
// re-checked every iteration regardless of whether an edge landed this
// tick, since a cycle count that completed too fast only fires once
// enough real time has passed (see gesture.ProgramCycles.Check).
func (m *Machine) feedProgramGesture(in StepInput) {
	if in.KeyEdge != nil {
		if isEdge(in.KeyEdge, input.Off, input.On) {
			m.progCycles.FeedRise(in.Now)
		} else if isEdge(in.KeyEdge, input.On, input.Off) {
			m.progCycles.FeedFall(in.Now)
		}
	}
	if m.progCycles.Check(in.Now) {
		m.enterProgramming(in.Now)
	}
}

// enterProgramming runs LO_LIM's one-time entry action: reload RAM
// calibration from the in-program defaults (spec.md §4.F).
func (m *Machine) enterProgramming(now uint32) {
	m.cal = calib.LoadDefaults(m.defaults)
	m.lastActivity = now
	m.state = LoLim
}

// stepLoLim implements LO_LIM: CENTER->DOWN/CENTER->UP nudge lower_limit,
// Key ON->OFF advances to HI_LIM.
func (m *Machine) stepLoLim(in StepInput) StepOutput {
	switch {
	case isEdge(in.SwitchEdge, input.Center, input.Down):
		m.cal.LowerLimit -= variant.AdjResolution
		m.lastActivity = in.Now
	case isEdge(in.SwitchEdge, input.Center, input.Up):
		m.cal.LowerLimit += variant.AdjResolution
		m.lastActivity = in.Now
	}
	if isEdge(in.KeyEdge, input.On, input.Off) {
		m.state = HiLim
		m.lastActivity = in.Now
	}
	return StepOutput{DesiredDuty: m.cal.LowerLimit, Speed: m.cal.Speed, ActiveMode: servo.ModeProgramming}
}

// stepHiLim implements HI_LIM: the same nudge rules applied to
// upper_limit, Key ON->OFF advances to SPEED.
func (m *Machine) stepHiLim(in StepInput) StepOutput {
	switch {
	case isEdge(in.SwitchEdge, input.Center, input.Down):
		m.cal.UpperLimit -= variant.AdjResolution
		m.lastActivity = in.Now
	case isEdge(in.SwitchEdge, input.Center, input.Up):
		m.cal.UpperLimit += variant.AdjResolution
		m.lastActivity = in.Now
	}
	if isEdge(in.KeyEdge, input.On, input.Off) {
		m.state = Speed
		m.lastActivity = in.Now
	}
	return StepOutput{DesiredDuty: m.cal.UpperLimit, Speed: m.cal.Speed, ActiveMode: servo.ModeProgramming}
}

// stepSpeed implements SPEED: CENTER->DOWN/CENTER->UP preview-move the
// servo, UP->CENTER doubles speed around the {1,2,4,8,16,32} ring, Key
// ON->OFF advances to EEPROM_COMMIT.
func (m *Machine) stepSpeed(in StepInput) StepOutput {
	var duty uint16
	switch in.Switch {
	case input.Down:
		duty = m.cal.LowerLimit
	case input.Up:
		duty = m.cal.UpperLimit
	case input.Center:
		duty = variant.PWMCenterDflt
	}

	if isEdge(in.SwitchEdge, input.Up, input.Center) {
		m.cal.Speed = mathx.DoubleInRing(m.cal.Speed, variant.SpeedMin, variant.SpeedMax)
		m.lastActivity = in.Now
	}
	if isEdge(in.KeyEdge, input.On, input.Off) {
		m.state = EepromCommit
		m.lastActivity = in.Now
	}

	return StepOutput{DesiredDuty: duty, Speed: m.cal.Speed, ActiveMode: servo.ModeProgramming}
}

// stepEepromCommit writes the RAM calibration record and returns
// unconditionally to NORMAL, synchronously like REBOOT.
func (m *Machine) stepEepromCommit(in StepInput) StepOutput {
	calib.Save(m.eeprom, m.cal)
	m.state = Normal
	return StepOutput{DesiredDuty: m.cal.LowerLimit, Speed: m.cal.Speed, ActiveMode: servo.ModeNormal}
}
