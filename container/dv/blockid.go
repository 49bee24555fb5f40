/*
NAME
  blockid.go - DIF block ID header codec.

DESCRIPTION
  Every 80-byte DIF block begins with a 3-byte ID header:

    byte 0: section_type[3] | reserved_0[1]=1 | sequence[4]
    byte 1: dif_sequence[4] | channel[1] | reserved_1[3]=0b111
    byte 2: dif_block[8]

  sequence and dif_sequence are distinct fields: sequence (byte 0) must be
  0xF for Header/Subcode blocks and is otherwise unconstrained; dif_sequence
  (byte 1) is the block's position among the frame's DIF sequences and is
  checked against the frame descriptor. channel is the FSC bit,
  distinguishing the two channels of a dual-channel recording.

  reserved_0 and reserved_1 are fixed per IEC 61834-2; a block whose
  reserved bits don't match those constants is rejected outright rather
  than decoded with garbage section/sequence fields.

LICENSE
  Copyright (C) 2026 the dvtoolkit authors. All Rights Reserved.

  The Software and all intellectual property rights associated therewith
  are and will remain the exclusive property of the dvtoolkit authors.
*/

package dv

import (
	"github.com/pkg/errors"

	"github.com/dvtoolkit/difcodec/container/dv/system"
)

// SectionType identifies which of the five DIF block flavors a block is.
type SectionType int

const (
	SectionHeader SectionType = iota
	SectionSubcode
	SectionVAUX
	SectionAudio
	SectionVideo
)

func (s SectionType) String() string {
	switch s {
	case SectionHeader:
		return "HEADER"
	case SectionSubcode:
		return "SUBCODE"
	case SectionVAUX:
		return "VAUX"
	case SectionAudio:
		return "AUDIO"
	case SectionVideo:
		return "VIDEO"
	default:
		return "RESERVED"
	}
}

// maxDIFBlock is the highest valid dif_block for each section, i.e. the
// block count per DIF sequence for that section minus one.
var maxDIFBlock = map[SectionType]int{
	SectionHeader:  0,
	SectionSubcode: 1,
	SectionVAUX:    2,
	SectionAudio:   8,
	SectionVideo:   134,
}

// BlockID is the decoded 3-byte header that begins every DIF block.
type BlockID struct {
	Section     SectionType
	Sequence    int // 0..15; must be 0xF for Header/Subcode
	DIFSequence int // 0..9 (NTSC) or 0..11 (PAL)
	Channel     int // 0 or 1
	DIFBlock    int
}

// DecodeBlockID parses the 3-byte ID header. It rejects a header whose
// reserved bits don't match the constants fixed by the standard, whose
// Header/Subcode sequence isn't 0xF, whose dif_sequence falls outside the
// descriptor's DIF sequence count, or whose dif_block exceeds the max for
// its section.
func DecodeBlockID(b [3]byte, desc system.FrameDescriptor) (BlockID, error) {
	if b[0]&0x10 == 0 {
		return BlockID{}, errors.New("blockid: reserved bit in byte 0 must be 1")
	}
	if b[1]&0x07 != 0x07 {
		return BlockID{}, errors.New("blockid: reserved bits in byte 1 must be 0b111")
	}

	section := SectionType(b[0] >> 5)
	if _, known := maxDIFBlock[section]; !known {
		return BlockID{}, errors.Errorf("blockid: unknown section type %d", section)
	}

	sequence := int(b[0] & 0x0F)
	if (section == SectionHeader || section == SectionSubcode) && sequence != 0x0F {
		return BlockID{}, errors.Errorf("blockid: %v block must carry sequence 0xF, got %#x", section, sequence)
	}

	difSeq := int(b[1] >> 4)
	if difSeq >= desc.DIFSequences {
		return BlockID{}, errors.Errorf("blockid: dif_sequence %d is out of range [0, %d)", difSeq, desc.DIFSequences)
	}

	dbn := int(b[2])
	if max := maxDIFBlock[section]; dbn > max {
		return BlockID{}, errors.Errorf("blockid: %v dif_block %d exceeds max %d", section, dbn, max)
	}

	return BlockID{
		Section:     section,
		Sequence:    sequence,
		DIFSequence: difSeq,
		Channel:     int(b[1]>>3) & 0x01,
		DIFBlock:    dbn,
	}, nil
}

// Encode serializes id back to its 3-byte wire form.
func (id BlockID) Encode(desc system.FrameDescriptor) ([3]byte, error) {
	if (id.Section == SectionHeader || id.Section == SectionSubcode) && id.Sequence != 0x0F {
		return [3]byte{}, errors.Errorf("blockid: %v block must carry sequence 0xF", id.Section)
	}
	if id.DIFSequence < 0 || id.DIFSequence >= desc.DIFSequences {
		return [3]byte{}, errors.Errorf("blockid: dif_sequence %d is out of range [0, %d)", id.DIFSequence, desc.DIFSequences)
	}
	if id.Channel != 0 && id.Channel != 1 {
		return [3]byte{}, errors.Errorf("blockid: channel %d must be 0 or 1", id.Channel)
	}
	max, known := maxDIFBlock[id.Section]
	if !known {
		return [3]byte{}, errors.Errorf("blockid: unknown section type %d", id.Section)
	}
	if id.DIFBlock < 0 || id.DIFBlock > max {
		return [3]byte{}, errors.Errorf("blockid: dif_block %d out of range for %v", id.DIFBlock, id.Section)
	}

	var b [3]byte
	b[0] = byte(id.Section)<<5 | 0x10 | byte(id.Sequence&0x0F)
	b[1] = byte(id.DIFSequence&0x0F)<<4 | byte(id.Channel&0x01)<<3 | 0x07
	b[2] = byte(id.DIFBlock)
	return b, nil
}
