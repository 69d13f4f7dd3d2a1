// Command automotion-sim runs the controller against the in-memory
// hal.Sim backend, as a host-side demo and manual test harness. It is not
// firmware — logging here is fine, unlike anywhere under internal/.
package main

import (
	"context"
	"log"
	"time"

	"automotion-go/internal/hal"
	"automotion-go/internal/variant"

	"automotion-go/controller"
)

func main() {
	sim := hal.NewSim()
	sim.SeedDefaults(factoryDefaults())
	sim.WriteBlock(factoryDefaults(), 0) // factory-programmed EEPROM
	sim.SetChannel(hal.ChanSwitch, 500)  // CENTER
	sim.SetChannel(hal.ChanACC, 0)      // OFF

	c := controller.New(sim.Hardware())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				close(stop)
				return
			case <-ticker.C:
				c.OnTick()
			}
		}
	}()

	log.Printf("automotion-sim: starting variant %s", variant.Active.Name)
	c.Run(ctx)
	<-stop
	log.Printf("automotion-sim: stopped, duty=%d", sim.Duty())
}

// factoryDefaults encodes the 6-byte record {upper:2250, lower:750, speed:4}
// in the same little-endian layout internal/calib expects. It carries no
// lock-flag byte; a fresh Sim's lock flag already reads clear.
func factoryDefaults() []byte {
	b := make([]byte, 6)
	putLE16(b[0:], 2250)
	putLE16(b[2:], 750)
	putLE16(b[4:], 4)
	return b
}

func putLE16(b []byte, v uint16) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
}
