//go:build tcover_v3

package variant

// Active is the V3 variant: no programming pipeline; upper_limit,
// lower_limit and speed are continuously recomputed from the three
// calibration potentiometers on every sample tick instead of being loaded
// from EEPROM (see controller's recomputeContinuous). NORMAL's
// UP/DOWN switch positions also bypass desired_duty and the slew engine
// entirely, writing the open/closed duty straight to the PWM register —
// preserved literally from the source this variant was taken from, which
// left its tick-ISR slew body disabled. Only CENTER's ACC-timeout path
// still goes through desired_duty.
var Active = Config{
	Name:             "v3",
	HasProgramming:   false,
	ContinuousPots:   true,
	SwapAccOnCenter:  false,
	DirectPWMBypass:  true,
	LockedTimeoutMs:  3000,
	HumTimeoutMs:     5000,
	WatchdogPeriodMs: 500,
}
