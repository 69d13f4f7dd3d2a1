// Package input implements spec.md §4.C: periodic ADC acquisition, the
// 3-deep majority/settling filter, and translation of raw ADC counts into
// enumerated switch/key positions.
package input

import "automotion-go/internal/variant"

// SwitchPos is the three-position override toggle's decoded state.
type SwitchPos int

const (
	Down SwitchPos = iota
	Center
	Up
)

func (p SwitchPos) String() string {
	switch p {
	case Down:
		return "DOWN"
	case Center:
		return "CENTER"
	case Up:
		return "UP"
	default:
		return "?"
	}
}

// KeyPos is the ignition ACC signal's decoded state.
type KeyPos int

const (
	Off KeyPos = iota
	On
)

func (p KeyPos) String() string {
	if p == On {
		return "ON"
	}
	return "OFF"
}

// DecodeSwitch maps a raw 10-bit ADC count to a SwitchPos (spec.md §4.C).
func DecodeSwitch(count uint16) SwitchPos {
	switch {
	case count < variant.DownMaxCount:
		return Down
	case count <= variant.UpMinCount:
		return Center
	default:
		return Up
	}
}

// DecodeKeyAnalog maps a raw ADC count to a KeyPos for variants reading
// ACC as an analog channel.
func DecodeKeyAnalog(count uint16) KeyPos {
	if count >= variant.AccOnCount {
		return On
	}
	return Off
}

// DecodeKeyDigital maps a digital pin level to a KeyPos for variants
// reading ACC as a digital pin.
func DecodeKeyDigital(level bool) KeyPos {
	if level {
		return On
	}
	return Off
}

// Filter is the 3-deep majority/settling window of spec.md §4.C: a filtered
// value is accepted only when all three samples agree, otherwise the
// previous filtered value persists.
type Filter[T comparable] struct {
	window  [variant.FilterSize]T
	filled  int
	current T
	haveVal bool
}

// Push appends a raw sample and returns the (possibly unchanged) filtered
// value plus whether it just settled on a new agreed value.
func (f *Filter[T]) Push(sample T) (value T, settled bool) {
	copy(f.window[:], f.window[1:])
	f.window[len(f.window)-1] = sample
	if f.filled < len(f.window) {
		f.filled++
	}
	if f.filled == len(f.window) && f.allAgree() {
		changed := !f.haveVal || f.current != f.window[0]
		f.current = f.window[0]
		f.haveVal = true
		return f.current, changed
	}
	return f.current, false
}

func (f *Filter[T]) allAgree() bool {
	first := f.window[0]
	for _, v := range f.window[1:] {
		if v != first {
			return false
		}
	}
	return true
}

// Value returns the last-accepted filtered value and whether one has ever
// been accepted.
func (f *Filter[T]) Value() (T, bool) { return f.current, f.haveVal }

// Sample is one foreground acquisition: the raw ADC/pin reads taken when
// sample_flag is observed.
type Sample struct {
	SwitchCount uint16
	KeyCount    uint16
	KeyLevel    bool
	NormRev     bool
	TimestampMs uint32
}

// Sampler owns the switch and key settling filters and produces decoded,
// filtered positions from raw Samples.
type Sampler struct {
	switchFilter Filter[SwitchPos]
	keyFilter    Filter[KeyPos]
	analogKey    bool
}

// NewSampler constructs a Sampler. analogKey selects ACC decoding: true
// reads the ACC ADC channel (DecodeKeyAnalog), false reads a digital pin
// (DecodeKeyDigital).
func NewSampler(analogKey bool) *Sampler {
	return &Sampler{analogKey: analogKey}
}

// Observe pushes one raw sample through both filters, returning the
// filtered switch and key positions and whether each just settled on a
// newly-agreed value.
func (s *Sampler) Observe(raw Sample) (sw SwitchPos, swSettled bool, key KeyPos, keySettled bool) {
	sw, swSettled = s.switchFilter.Push(DecodeSwitch(raw.SwitchCount))
	var k KeyPos
	if s.analogKey {
		k = DecodeKeyAnalog(raw.KeyCount)
	} else {
		k = DecodeKeyDigital(raw.KeyLevel)
	}
	key, keySettled = s.keyFilter.Push(k)
	return sw, swSettled, key, keySettled
}
