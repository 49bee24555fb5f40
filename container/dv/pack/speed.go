/*
NAME
  speed.go - playback-speed byte <-> Fraction codec used by
  AAUXSourceControl.

DESCRIPTION
  Per spec 4.4, the playback-speed byte packs a fixed marker bit (always
  1) over a 7-bit table index: 3 "coarse" bits (0-7) select one of 8
  speed tiers, 4 "fine" bits (0-15) select a value within that tier. Tiers
  1-6 are evenly spaced between successive powers-of-two tier bases (0,
  1/2, 1, 2, 4, 8, 16, 32); tier 7 counts up from 32 in steps of 2 to a
  maximum of 60, with its top fine value (byte 0xFF) reserved to mean
  "unknown" instead of a speed. Tier 0 is not evenly spaced: it holds the
  near-stop speeds, which the original equipment crowds toward zero
  rather than spacing linearly.

  Grounded on original_source's literal test vectors: 80->0, 81->1/32,
  8E->1/4, 93->19/32, A0->1, C3->19/4, FE->60, FF->unknown.

LICENSE
  Copyright (C) 2026 the dvtoolkit authors. All Rights Reserved.

  The Software and all intellectual property rights associated therewith
  are and will remain the exclusive property of the dvtoolkit authors.
*/

package pack

import "math/big"

// playbackSpeedBase holds the per-coarse-tier base speeds for tiers 1-7.
// Tier 0's fine-grain values are not part of this progression; see
// playbackSpeedSlowFine.
var playbackSpeedBase = [8]*big.Rat{
	big.NewRat(0, 1),
	big.NewRat(1, 2),
	big.NewRat(1, 1),
	big.NewRat(2, 1),
	big.NewRat(4, 1),
	big.NewRat(8, 1),
	big.NewRat(16, 1),
	big.NewRat(32, 1),
}

// playbackSpeedSlowFine gives the 16 tier-0 ("below normal") speeds, in
// 128ths: 0, 1/32, ..., 1/4 (index 14), ..., 3/8.
var playbackSpeedSlowFine = [16]int64{0, 4, 6, 8, 10, 12, 14, 16, 18, 20, 23, 26, 28, 30, 32, 48}

// decodePlaybackSpeedValue maps one (coarse, fine) table entry, 0 <=
// coarse <= 7 and 0 <= fine <= 15, to its speed. Tier 7's fine value 15
// has no speed: it is the reserved "unknown" code, and callers must
// exclude it before reaching here.
func decodePlaybackSpeedValue(coarse, fine byte) *big.Rat {
	switch coarse {
	case 0:
		return big.NewRat(playbackSpeedSlowFine[fine], 128)
	case 7:
		return new(big.Rat).Add(playbackSpeedBase[7], big.NewRat(int64(fine)*2, 1))
	default:
		span := new(big.Rat).Sub(playbackSpeedBase[coarse+1], playbackSpeedBase[coarse])
		step := new(big.Rat).Quo(span, big.NewRat(16, 1))
		return new(big.Rat).Add(playbackSpeedBase[coarse], new(big.Rat).Mul(step, big.NewRat(int64(fine), 1)))
	}
}

// decodePlaybackSpeed decodes the playback-speed byte into a rational
// speed, nil meaning "unknown". Bit 7 is a fixed marker and is ignored on
// decode. The raw byte is not kept: AAUXSourceControl stores only the
// decoded speed, so a byte with bit 7 clear re-encodes with it set.
func decodePlaybackSpeed(b byte) *big.Rat {
	n := b & 0x7F
	if n == 0x7F {
		return nil
	}
	return decodePlaybackSpeedValue(n>>4, n&0x0F)
}

// encodePlaybackSpeed is the inverse of decodePlaybackSpeed: it searches
// the 8x16 table for an entry equal to speed and sets bit 7, which every
// valid encoding carries. A nil speed encodes to the unknown sentinel.
func encodePlaybackSpeed(speed *big.Rat) (byte, bool) {
	if speed == nil {
		return sentinelByte, true
	}
	for coarse := byte(0); coarse < 8; coarse++ {
		limit := byte(16)
		if coarse == 7 {
			limit = 15 // fine 15 is the reserved "unknown" code
		}
		for fine := byte(0); fine < limit; fine++ {
			if decodePlaybackSpeedValue(coarse, fine).Cmp(speed) == 0 {
				return 0x80 | coarse<<4 | fine, true
			}
		}
	}
	return 0, false
}
