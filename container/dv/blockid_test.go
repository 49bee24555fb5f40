/*
NAME
  blockid_test.go - tests for BlockID.

LICENSE
  Copyright (C) 2026 the dvtoolkit authors. All Rights Reserved.

  The Software and all intellectual property rights associated therewith
  are and will remain the exclusive property of the dvtoolkit authors.
*/

package dv

import (
	"testing"

	"github.com/dvtoolkit/difcodec/container/dv/system"
)

func ntscDescriptor(t *testing.T) system.FrameDescriptor {
	t.Helper()
	fd, err := system.NewFrameDescriptor(system.NTSC, 1, 10)
	if err != nil {
		t.Fatalf("system.NewFrameDescriptor() error = %v", err)
	}
	return fd
}

func TestDecodeBlockIDRoundTrip(t *testing.T) {
	desc := ntscDescriptor(t)
	tests := []struct {
		name string
		id   BlockID
	}{
		{"header", BlockID{Section: SectionHeader, Sequence: 0x0F, DIFSequence: 0, Channel: 0, DIFBlock: 0}},
		{"subcode", BlockID{Section: SectionSubcode, Sequence: 0x0F, DIFSequence: 3, Channel: 0, DIFBlock: 1}},
		{"vaux", BlockID{Section: SectionVAUX, Sequence: 2, DIFSequence: 9, Channel: 1, DIFBlock: 2}},
		{"audio", BlockID{Section: SectionAudio, Sequence: 5, DIFSequence: 4, Channel: 0, DIFBlock: 8}},
		{"video", BlockID{Section: SectionVideo, Sequence: 0, DIFSequence: 7, Channel: 1, DIFBlock: 134}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := tt.id.Encode(desc)
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			got, err := DecodeBlockID(b, desc)
			if err != nil {
				t.Fatalf("DecodeBlockID() error = %v", err)
			}
			if got != tt.id {
				t.Errorf("DecodeBlockID(Encode(id)) = %+v, want %+v", got, tt.id)
			}
		})
	}
}

func TestDecodeBlockIDRejectsReservedBits(t *testing.T) {
	desc := ntscDescriptor(t)
	tests := []struct {
		name string
		raw  [3]byte
	}{
		{"byte 0 reserved bit clear", [3]byte{0x0F, 0x07, 0x00}},
		{"byte 1 reserved bits wrong", [3]byte{0x1F, 0x00, 0x00}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeBlockID(tt.raw, desc); err == nil {
				t.Error("DecodeBlockID() = nil error, want error")
			}
		})
	}
}

func TestDecodeBlockIDRejectsBadSequenceForHeaderAndSubcode(t *testing.T) {
	desc := ntscDescriptor(t)
	// section = header (0), sequence = 0x3 (must be 0xF), reserved bits set correctly.
	raw := [3]byte{0x13, 0x07, 0x00}
	if _, err := DecodeBlockID(raw, desc); err == nil {
		t.Error("DecodeBlockID() = nil error, want error for header block with sequence != 0xF")
	}
}

func TestDecodeBlockIDRejectsOutOfRangeDIFSequence(t *testing.T) {
	desc := ntscDescriptor(t)
	// dif_sequence = 10, out of range [0, 10) for NTSC.
	raw := [3]byte{0x1F, 0xA7, 0x00}
	if _, err := DecodeBlockID(raw, desc); err == nil {
		t.Error("DecodeBlockID() = nil error, want error for out-of-range dif_sequence")
	}
}

func TestDecodeBlockIDRejectsDIFBlockOverMax(t *testing.T) {
	desc := ntscDescriptor(t)
	// section = header (max dif_block 0), dif_block byte = 1.
	raw := [3]byte{0x1F, 0x07, 0x01}
	if _, err := DecodeBlockID(raw, desc); err == nil {
		t.Error("DecodeBlockID() = nil error, want error for dif_block exceeding max")
	}
}

func TestEncodeRejectsOutOfRangeDIFSequence(t *testing.T) {
	desc := ntscDescriptor(t)
	id := BlockID{Section: SectionHeader, Sequence: 0x0F, DIFSequence: 10, DIFBlock: 0}
	if _, err := id.Encode(desc); err == nil {
		t.Error("Encode() = nil error, want error for out-of-range dif_sequence")
	}
}

func TestEncodeRejectsBadChannel(t *testing.T) {
	desc := ntscDescriptor(t)
	id := BlockID{Section: SectionHeader, Sequence: 0x0F, DIFSequence: 0, Channel: 2, DIFBlock: 0}
	if _, err := id.Encode(desc); err == nil {
		t.Error("Encode() = nil error, want error for channel out of [0,1]")
	}
}

func TestSectionTypeString(t *testing.T) {
	tests := []struct {
		s    SectionType
		want string
	}{
		{SectionHeader, "HEADER"},
		{SectionSubcode, "SUBCODE"},
		{SectionVAUX, "VAUX"},
		{SectionAudio, "AUDIO"},
		{SectionVideo, "VIDEO"},
		{SectionType(7), "RESERVED"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("SectionType(%d).String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}
