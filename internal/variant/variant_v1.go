//go:build tcover_v1

package variant

// Active is the V1 variant: no programming pipeline at all (LO_LIM/HI_LIM/
// SPEED/EEPROM_COMMIT do not exist in this build). The only behavioral
// quirk is that the NORM/REV pin inverts the meaning of the CENTER+ACC
// combinatorial rule in NORMAL — and only that rule: a CENTER switch
// position with Key ON normally drives toward upper_limit after
// ACC_TIMEOUT, but with NORM/REV asserted REV, the roles of upper_limit
// and lower_limit swap for that rule alone. Nothing else in the firmware
// (there is no program-mode pipeline to apply it to) consults NORM/REV.
var Active = Config{
	Name:             "v1",
	HasProgramming:   false,
	ContinuousPots:   false,
	SwapAccOnCenter:  true,
	DirectPWMBypass:  false,
	LockedTimeoutMs:  4000,
	HumTimeoutMs:     3000,
	WatchdogPeriodMs: 250,
}
