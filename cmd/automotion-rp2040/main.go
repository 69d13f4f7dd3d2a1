//go:build rp2040

// Command automotion-rp2040 is the flashable firmware image: it wires
// internal/hal's rp2040 backend to board pins, arms the tick timer
// interrupt, and runs the controller's foreground loop forever.
package main

import (
	"context"
	"machine"

	"automotion-go/controller"
	"automotion-go/internal/hal"
)

// calibSector is the RAM buffer the rp2040 EEPROM capability reads and
// writes for calibration persistence; no linker-script section backs it.
var calibSector [64]byte

// defaultsBlock is the immutable factory-calibration copy embedded in
// program memory (spec.md §3).
var defaultsBlock = [6]byte{
	0xCA, 0x08, // upper_limit = 2250
	0xEE, 0x02, // lower_limit = 750
	0x04, 0x00, // speed = 4
}

func main() {
	pwm := machine.PWM1
	pwm.Configure(machine.PWMConfig{Period: 1e9 / 50})

	pins := hal.Pins{
		ServoPWM:   pwm,
		ServoCh:    0,
		ServoPin:   machine.GPIO15,
		ACC:        machine.ADC{Pin: machine.ADC0},
		Switch:     machine.ADC{Pin: machine.ADC1},
		Speed:      machine.ADC{Pin: machine.ADC2},
		HiLim:      machine.ADC{Pin: machine.GPIO28},
		LoLim:      machine.ADC{Pin: machine.GPIO27},
		NormRevPin: machine.GPIO16,
		ResetPin:   machine.GPIO17,
	}
	pins.NormRevPin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	pins.ResetPin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	machine.InitADC()

	hw, err := hal.NewRP2040(pins, calibSector[:], defaultsBlock[:])
	if err != nil {
		println("automotion: wiring error:", err.Error())
		for {
		}
	}
	c := controller.New(hw)

	armTickInterrupt(func() { c.OnTick() })

	c.Run(context.Background())
}

// armTickInterrupt is the single hook point for the board's 1ms periodic
// timer alarm. Its body is empty: it configures no timer and never calls
// fn, so the controller's tick domain does not run on this build until a
// board-specific alarm is wired in here.
func armTickInterrupt(fn func()) {}
