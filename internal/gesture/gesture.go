// Package gesture implements spec.md §4.E: counting specific input edges
// within bounded time windows to recognize mode-transition commands.
package gesture

import "automotion-go/x/timex"

// EdgeWindow counts occurrences of a single recognized edge within a
// rolling time window: the first edge arms the window at its timestamp: a
// further edge is required to arrive before the window elapses, or the
// count resets to the new edge. It fires once the required count is
// reached while still inside the window.
type EdgeWindow struct {
	required  int
	timeoutMs uint32

	count       int
	windowStart uint32
	armed       bool
}

// NewEdgeWindow builds a recognizer that fires after `required` matching
// edges all land within `timeoutMs` of the first.
func NewEdgeWindow(required int, timeoutMs uint32) *EdgeWindow {
	return &EdgeWindow{required: required, timeoutMs: timeoutMs}
}

// Feed records one matching edge observed at now. It returns true exactly
// once, on the edge that completes the count within the window.
func (w *EdgeWindow) Feed(now uint32) bool {
	if w.armed && timex.Since(now, w.windowStart, w.timeoutMs) {
		w.Reset()
	}
	if !w.armed {
		w.armed = true
		w.windowStart = now
		w.count = 1
	} else {
		w.count++
	}
	if w.count >= w.required {
		fired := true
		w.Reset()
		return fired
	}
	return false
}

// Expire must be called once per foreground iteration with no matching
// edge this tick, so a window that has simply gone quiet (no edges at
// all) still resets once its timeout elapses, per spec.md §4.E ("if the
// window elapses without completion, the counter resets").
func (w *EdgeWindow) Expire(now uint32) {
	if w.armed && timex.Since(now, w.windowStart, w.timeoutMs) {
		w.Reset()
	}
}

// Reset clears the window, discarding any partial count.
func (w *EdgeWindow) Reset() {
	w.armed = false
	w.count = 0
	w.windowStart = 0
}

// ProgramCycles recognizes spec.md §4.E's enter-PROGRAM gesture: while the
// switch remains DOWN, strictly alternating Key OFF->ON->OFF cycles,
// counted complete on each ON->OFF, firing at >= required complete cycles
// with the elapsed time since the first rising edge inside (loLimMs,
// hiLimMs) exclusive.
type ProgramCycles struct {
	required       int
	loLimMs, hiLimMs uint32

	active      bool
	firstRiseMs uint32
	cycles      int
	awaitingFall bool
}

// NewProgramCycles builds the enter-PROGRAM recognizer.
func NewProgramCycles(required int, loLimMs, hiLimMs uint32) *ProgramCycles {
	return &ProgramCycles{required: required, loLimMs: loLimMs, hiLimMs: hiLimMs}
}

// FeedRise records a Key OFF->ON edge at now.
func (p *ProgramCycles) FeedRise(now uint32) {
	if !p.active {
		p.active = true
		p.firstRiseMs = now
		p.cycles = 0
	}
	p.awaitingFall = true
}

// FeedFall records a Key ON->OFF edge at now, completing one cycle. It
// never fires by itself — a count reaching `required` too fast (before
// loLimMs has elapsed) must stay latched rather than be thrown away, so
// the window is re-checked independently via Check on every subsequent
// foreground iteration the switch stays DOWN, exactly as
// _examples/original_source/Code/V2a/main.c:520-549 never resets
// StateNormalProgCount on a premature completion.
func (p *ProgramCycles) FeedFall(now uint32) {
	if !p.active || !p.awaitingFall {
		return
	}
	p.awaitingFall = false
	p.cycles++
}

// Check re-evaluates the firing condition against the live clock, with no
// edge required: fires once the latched cycle count has reached
// `required` and the elapsed time since the first rise falls strictly
// inside (loLimMs, hiLimMs). Must be called every foreground iteration the
// switch remains DOWN (mirroring the original's unconditional per-pass
// check), since a too-fast count can only complete its window by waiting.
func (p *ProgramCycles) Check(now uint32) bool {
	if !p.active || p.cycles < p.required {
		return false
	}
	elapsed := timex.Elapsed(now, p.firstRiseMs)
	if elapsed > p.loLimMs && elapsed < p.hiLimMs {
		p.Reset()
		return true
	}
	return false
}

// Reset aborts gesture tracking, called when the switch leaves DOWN.
func (p *ProgramCycles) Reset() {
	p.active = false
	p.awaitingFall = false
	p.firstRiseMs = 0
	p.cycles = 0
}
