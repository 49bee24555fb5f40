/*
NAME
  bcd.go - binary-coded-decimal helpers shared by the date/time/timecode
  pack variants.

DESCRIPTION
  Two-digit BCD decode/encode and the sentinel values used to mark absent
  fields.

LICENSE
  Copyright (C) 2026 the dvtoolkit authors. All Rights Reserved.

  The Software and all intellectual property rights associated therewith
  are and will remain the exclusive property of the dvtoolkit authors.
*/

package pack

// decodeBCD2 decodes a byte holding two BCD digits (tens in the high
// nibble, units in the low nibble) into a single value, rejecting nibbles
// that aren't valid decimal digits or that exceed the field's bounds. It
// returns ok=false (not an error) on an out-of-range or non-decimal
// nibble, mirroring the "obvious tape dropout" detection described for
// date parsing: 0x7F/0xFF nibbles must never be silently accepted as 7/15.
func decodeBCD2(b byte, maxTens, maxUnits int) (value int, ok bool) {
	tens := int(b >> 4)
	units := int(b & 0x0F)
	if tens > 9 || units > 9 || tens > maxTens || units > maxUnits {
		return 0, false
	}
	return tens*10 + units, true
}

// encodeBCD2 packs a 0..99 value into a BCD byte. Callers must ensure v is
// within range; encodeBCD2 does not validate.
func encodeBCD2(v int) byte {
	return byte((v/10)<<4 | (v % 10))
}

// Sentinel bytes used by the original format to mean "field absent". A
// whole byte of 0xFF means "this byte's field(s) are absent"; 0x7F is used
// where only a nibble-pair half is absent but the byte is otherwise a
// meaningful bitfield (e.g. the BCD tens nibble of an hours field sharing
// a byte with flag bits).
const (
	sentinelByte      = 0xFF
	sentinelNibblePair = 0x7F
)
