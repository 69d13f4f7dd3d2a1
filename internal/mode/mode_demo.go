package mode

import (
	"automotion-go/internal/input"
	"automotion-go/internal/servo"
	"automotion-go/internal/variant"
	"automotion-go/x/timex"
)

// enterDemo runs DEMO's entry action: save the configured speed, force the
// demo speed, and start the open/closed toggle cycle.
func (m *Machine) enterDemo(now uint32) {
	m.state = Demo
	m.demoSavedSpeed = m.cal.Speed
	m.cal.Speed = variant.DemoSpeed
	m.demoOpen = false
	m.demoLastToggle = now
	m.demoWindow.Reset()
}

// stepDemo implements DEMO: toggle desired_duty between lower_limit and
// upper_limit every DemoCycleTime, watching for the CENTER->DOWN x
// DemoCntReq exit gesture.
func (m *Machine) stepDemo(in StepInput) StepOutput {
	if timex.Elapsed(in.Now, m.demoLastToggle) >= variant.DemoCycleTime {
		m.demoOpen = !m.demoOpen
		m.demoLastToggle = in.Now
	}

	duty := m.cal.LowerLimit
	if m.demoOpen {
		duty = m.cal.UpperLimit
	}

	if in.Key == input.On {
		if isEdge(in.SwitchEdge, input.Center, input.Down) {
			if m.demoWindow.Feed(in.Now) {
				m.exitDemo()
			}
		} else {
			m.demoWindow.Expire(in.Now)
		}
	} else {
		m.demoWindow.Reset()
	}

	return StepOutput{DesiredDuty: duty, Speed: m.cal.Speed, ActiveMode: servo.ModeDemo}
}

func (m *Machine) exitDemo() {
	m.cal.Speed = m.demoSavedSpeed
	m.state = Normal
	m.demoWindow.Reset()
}
