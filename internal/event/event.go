// Package event implements spec.md §4.D: comparing a newly filtered
// position against the last reported one and emitting a timestamped edge
// record with a single pending slot per source.
package event

// Edge[T] is a transition from Old to New observed at Timestamp. Pending
// is true until the foreground consumer acknowledges it with Take.
type Edge[T any] struct {
	Old, New  T
	Timestamp uint32
	Pending   bool
}

// Detector holds exactly one pending slot — spec.md §4.D: "a missed event
// is a bug: exactly one pending slot per source is kept." A new settled
// value overwrites any unconsumed edge rather than queuing it.
type Detector[T comparable] struct {
	last    T
	haveLast bool
	pending  Edge[T]
}

// Seed installs an initial value with no pending edge: a synthetic
// "no-change" event (spec.md §4.F). Observe calls it for the first settled
// value a detector sees; the mode machine's REBOOT state does not call it.
func (d *Detector[T]) Seed(v T, now uint32) {
	d.last = v
	d.haveLast = true
	d.pending = Edge[T]{Old: v, New: v, Timestamp: now, Pending: false}
}

// Observe records a freshly settled value. If it differs from the last
// reported value, it raises (overwrites) the pending edge.
func (d *Detector[T]) Observe(v T, now uint32) {
	if !d.haveLast {
		d.Seed(v, now)
		return
	}
	if v != d.last {
		d.pending = Edge[T]{Old: d.last, New: v, Timestamp: now, Pending: true}
		d.last = v
	}
}

// Take returns the pending edge and clears it, reporting whether one was
// pending.
func (d *Detector[T]) Take() (Edge[T], bool) {
	if !d.pending.Pending {
		return Edge[T]{}, false
	}
	e := d.pending
	d.pending.Pending = false
	return e, true
}

// Last returns the last reported value.
func (d *Detector[T]) Last() T { return d.last }
