//go:build !tcover_v1 && !tcover_v3

package variant

// Active is the V2 variant, the default build: the full four-step
// programming pipeline (LO_LIM -> HI_LIM -> SPEED -> EEPROM_COMMIT) is
// present, and NORM/REV is read but never consulted by any rule.
var Active = Config{
	Name:             "v2",
	HasProgramming:   true,
	ContinuousPots:   false,
	SwapAccOnCenter:  false,
	DirectPWMBypass:  false,
	LockedTimeoutMs:  3000,
	HumTimeoutMs:     3000,
	WatchdogPeriodMs: 250,
}
