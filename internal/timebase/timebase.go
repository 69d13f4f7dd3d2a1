// Package timebase owns the firmware's single free-running millisecond
// counter (spec.md §3's MS_TIMER) and the sample_flag the tick ISR raises
// for the foreground loop to consume. Both fields are read by one
// scheduling domain and written by another, so every access goes through
// the injected hal.Guard.
package timebase

import "automotion-go/internal/hal"

// Timebase is the cross-domain state the tick ISR and the foreground loop
// share: MS_TIMER and sample_flag (spec.md §3, §4.B). Nothing else in the
// firmware is allowed to be written from both scheduling domains.
type Timebase struct {
	guard hal.Guard

	msTimer    uint32
	sampleFlag bool
}

// New constructs a Timebase guarded by g.
func New(g hal.Guard) *Timebase {
	return &Timebase{guard: g}
}

// Tick is called once per hardware timer interrupt (spec.md §4.B: "every
// 1ms, unconditionally"). It advances MS_TIMER and raises sample_flag every
// SampleDiv-th tick.
func (t *Timebase) Tick(sampleDiv uint32) {
	t.guard.Lock()
	t.msTimer++
	raise := t.msTimer%sampleDiv == 0
	if raise {
		t.sampleFlag = true
	}
	t.guard.Unlock()
}

// NowMs reads MS_TIMER under the guard.
func (t *Timebase) NowMs() uint32 {
	t.guard.Lock()
	v := t.msTimer
	t.guard.Unlock()
	return v
}

// TakeSampleFlag reads and clears sample_flag atomically, the foreground
// loop's single consumption point (spec.md §4.C).
func (t *Timebase) TakeSampleFlag() bool {
	t.guard.Lock()
	v := t.sampleFlag
	t.sampleFlag = false
	t.guard.Unlock()
	return v
}
