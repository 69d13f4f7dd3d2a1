// Package calib implements the persisted calibration record of spec.md §3:
// upper/lower PWM limits, speed, and a separate lock-mode flag, round-tripped
// through the hal.EEPROM capability, plus a reader for the factory-defaults
// copy (LoadDefaults). Load does not fall back to the defaults on its own.
package calib

import "automotion-go/internal/hal"

const (
	offsetUpperLimit = 0
	offsetLowerLimit = 2
	offsetSpeed      = 4
	recordSize       = 6

	offsetLockFlag = 6
)

const lockFlagSet = 0x5A

// Record is the calibration data spec.md §3 describes: PWM duty tick
// bounds and the current speed-ring member.
type Record struct {
	UpperLimit uint16
	LowerLimit uint16
	Speed      uint16
}

// Load reads the calibration record from e. Callers are responsible for
// calling it only outside the tick ISR (spec.md §4.A).
func Load(e hal.EEPROM) Record {
	var buf [recordSize]byte
	e.ReadBlock(buf[:], 0)
	return decode(buf[:])
}

// Save writes r to e.
func Save(e hal.EEPROM, r Record) {
	var buf [recordSize]byte
	encode(buf[:], r)
	e.WriteBlock(buf[:], 0)
}

// LoadDefaults reads the immutable factory-calibration copy.
func LoadDefaults(d hal.Defaults) Record {
	var buf [recordSize]byte
	d.ReadBlock(buf[:])
	return decode(buf[:])
}

func decode(b []byte) Record {
	return Record{
		UpperLimit: le16(b[offsetUpperLimit:]),
		LowerLimit: le16(b[offsetLowerLimit:]),
		Speed:      le16(b[offsetSpeed:]),
	}
}

func encode(b []byte, r Record) {
	putLE16(b[offsetUpperLimit:], r.UpperLimit)
	putLE16(b[offsetLowerLimit:], r.LowerLimit)
	putLE16(b[offsetSpeed:], r.Speed)
}

func le16(b []byte) uint16 {
	return uint16(b[0]) | uint16(b[1])<<8
}

func putLE16(b []byte, v uint16) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
}

// Locked reports whether the lock-mode flag is set.
func Locked(e hal.EEPROM) bool {
	return e.ReadByte(offsetLockFlag) == lockFlagSet
}

// SetLocked writes the lock-mode flag.
func SetLocked(e hal.EEPROM, v bool) {
	if v {
		e.WriteByte(offsetLockFlag, lockFlagSet)
	} else {
		e.WriteByte(offsetLockFlag, 0)
	}
}
