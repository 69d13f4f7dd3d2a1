package timex

import "time"

// NowMs returns Unix milliseconds as int64. Nothing in this repository calls
// it; the firmware's own MS_TIMER is a free-running counter incremented by
// the tick ISR, never wall-clock time.
func NowMs() int64 { return time.Now().UnixMilli() }

// PeriodFromHz returns a nanosecond period for a requested frequency.
// freqHz==0 is coerced to 1 to avoid division by zero.
func PeriodFromHz(freqHz uint32) uint64 {
	if freqHz == 0 {
		freqHz = 1
	}
	return uint64(1_000_000_000 / uint64(freqHz))
}

// Elapsed returns now-start as an unsigned wrap-safe duration in the same
// units as now/start (milliseconds, here). Because MS_TIMER is a free-running
// 32-bit counter, ordinary subtraction already wraps correctly in modular
// arithmetic; Elapsed exists so every timeout comparison in the firmware goes
// through one named, auditable operation instead of a bare "-".
func Elapsed(now, start uint32) uint32 {
	return now - start
}

// Since reports whether strictly more than d has elapsed since start, given
// the current tick count now. Wrap-safe: see Elapsed.
func Since(now, start uint32, d uint32) bool {
	return Elapsed(now, start) > d
}
