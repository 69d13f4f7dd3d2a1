// Package variant carries the constants and per-variant behavior flags
// that distinguish the V1, V2 and V3 firmware builds. The shared core
// (input sampling, event detection, gesture recognition, the slew engine)
// is identical across variants; this package is the only place their
// differences are expressed, selected at compile time via build tags
// (tcover_v1, tcover_v3; the default build with neither tag is V2).
package variant

// Shared timing and electrical constants, identical across V1/V2/V3.
const (
	SampleDiv = 20 // ticks between sample_flag raises
	FilterSize = 3 // settling-filter depth

	DownMaxCount = 409 // ADC count below which switch reads DOWN
	UpMinCount   = 614 // ADC count above which switch reads UP
	AccOnCount   = 204 // ADC count at/above which analog ACC reads ON

	PWMClosedLim  = 750  // duty ticks, CLOSED endpoint floor
	PWMOpenLim    = 2250 // duty ticks, OPEN endpoint ceiling
	PWMCenterDflt = 1500 // duty ticks, neutral

	AdjResolution = 10 // duty ticks per slew step / per program-mode nudge

	SpeedMin = 1
	SpeedMax = 32

	AccTimeout = 500 // ms, CENTER+ACC hold before switching to upper_limit

	LockedCntReq = 4 // UP->CENTER (or DOWN->CENTER) edges to trip lock gestures
	DemoCntReq   = 5
	DemoTimeout   = 5000  // ms, enter/exit-DEMO gesture window
	DemoCycleTime = 10000 // ms between DEMO toggle
	DemoSpeed     = 40

	ProgTimeout    = 60000 // ms idle timeout inside the programming pipeline
	ProgCycleLoLim = 3000  // ms, lower bound on enter-PROGRAM gesture window
	ProgCycleHiLim = 8000  // ms, upper bound on enter-PROGRAM gesture window
	ProgCycles     = 4
)

// Config is the set of behaviors that differ by variant.
type Config struct {
	Name string

	// HasProgramming enables the LO_LIM/HI_LIM/SPEED/EEPROM_COMMIT pipeline
	// (V2 only; spec.md §4.F).
	HasProgramming bool

	// ContinuousPots makes upper_limit/lower_limit/speed a continuous
	// function of the three calibration potentiometers, recomputed every
	// sample tick instead of being loaded from EEPROM (V3 only).
	ContinuousPots bool

	// SwapAccOnCenter applies the NORM/REV pin to invert the CENTER+ACC
	// combinatorial rule's meaning (V1 only — see the V1 file's doc
	// comment for the exact scope of this inversion).
	SwapAccOnCenter bool

	// DirectPWMBypass makes NORMAL's UP/DOWN switch positions write the
	// duty register directly, bypassing desired_duty and the slew engine
	// (V3 only, preserved literally from its source).
	DirectPWMBypass bool

	LockedTimeoutMs  uint32
	HumTimeoutMs     uint32
	WatchdogPeriodMs uint32
}

// ContinuousOpenChannel, ContinuousClosedChannel and ContinuousSpeedChannel
// name the three continuous-pot ADC channels V3 reads every sample tick
// (spec.md §4.F).
const (
	ContinuousOpenChannel   = 3 // hi-lim pot doubles as "open" trim in V3
	ContinuousClosedChannel = 4 // lo-lim pot doubles as "closed" trim in V3
	ContinuousSpeedChannel  = 2
)
