/*
NAME
  system.go - defines the broadcast system / frame descriptor shared by the
  block, pack and frame layers.

DESCRIPTION
  System (NTSC/PAL) and FrameDescriptor, with the fixed block and sequence
  sizes they are derived from.

LICENSE
  Copyright (C) 2026 the dvtoolkit authors. All Rights Reserved.

  The Software and all intellectual property rights associated therewith
  are and will remain the exclusive property of the dvtoolkit authors.
*/

// Package system defines System and FrameDescriptor, the small read-only
// context value threaded through every decode/encode/validate call in the
// codec. FrameDescriptor is produced by an external container prober (not
// part of this module) and is never computed here.
package system

import "github.com/pkg/errors"

// System identifies a DV broadcast system.
type System int

const (
	// NTSC is 525/60, 10 DIF sequences per frame.
	NTSC System = iota
	// PAL is 625/50, 12 DIF sequences per frame.
	PAL
)

func (s System) String() string {
	switch s {
	case NTSC:
		return "NTSC"
	case PAL:
		return "PAL"
	default:
		return "UNKNOWN"
	}
}

// DIFSequenceCount returns the number of DIF sequences per frame for s: 10
// for NTSC, 12 for PAL.
func (s System) DIFSequenceCount() int {
	if s == PAL {
		return 12
	}
	return 10
}

// FieldCount returns the nominal field count per frame: 60 for NTSC, 50 for
// PAL, used to validate AAUXSource.FieldCount.
func (s System) FieldCount() int {
	if s == PAL {
		return 50
	}
	return 60
}

// blockBytes is the fixed size of one DIF block.
const blockBytes = 80

// blocksPerSequence is the fixed number of DIF blocks in one DIF sequence
// (1 Header + 2 Subcode + 3 VAUX + 9 Audio + 135 Video).
const blocksPerSequence = 150

// FrameDescriptor describes the physical shape of one frame. It is supplied
// by an external probe (container/file analysis is out of scope for this
// module) and treated as read-only context by every component here.
type FrameDescriptor struct {
	Sys           System
	Channels      int // 1 or 2
	DIFSequences  int // 10 (NTSC) or 12 (PAL)
	FrameBytes    int
}

// NewFrameDescriptor builds a FrameDescriptor and checks its internal
// invariants: FrameBytes = channels * difSequences * 150 * 80, and
// difSequences = 10 iff sys = NTSC.
func NewFrameDescriptor(sys System, channels, difSequences int) (FrameDescriptor, error) {
	if channels != 1 && channels != 2 {
		return FrameDescriptor{}, errors.Errorf("system: channel count %d must be 1 or 2", channels)
	}
	want := sys.DIFSequenceCount()
	if difSequences != want {
		return FrameDescriptor{}, errors.Errorf("system: %v requires %d dif sequences, got %d", sys, want, difSequences)
	}
	fd := FrameDescriptor{
		Sys:          sys,
		Channels:     channels,
		DIFSequences: difSequences,
		FrameBytes:   channels * difSequences * blocksPerSequence * blockBytes,
	}
	return fd, nil
}

// BlockBytes is the fixed size of a single DIF block.
func BlockBytes() int { return blockBytes }

// BlocksPerSequence is the fixed number of DIF blocks per DIF sequence.
func BlocksPerSequence() int { return blocksPerSequence }
