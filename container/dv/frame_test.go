/*
NAME
  frame_test.go - tests for DecodeFrame and FrameData.Encode.

LICENSE
  Copyright (C) 2026 the dvtoolkit authors. All Rights Reserved.

  The Software and all intellectual property rights associated therewith
  are and will remain the exclusive property of the dvtoolkit authors.
*/

package dv

import (
	"bytes"
	"testing"

	"github.com/dvtoolkit/difcodec/container/dv/pack"
	"github.com/dvtoolkit/difcodec/container/dv/system"
)

// buildRawFrame assembles a well-formed frame's raw bytes in the mandated
// transmission order, with every pack slot set to NoInfo and every header's
// arbitrary/application-id fields held constant across the frame.
func buildRawFrame(t *testing.T, desc system.FrameDescriptor) []byte {
	t.Helper()
	raw := make([]byte, 0, desc.FrameBytes)
	for ch := 0; ch < desc.Channels; ch++ {
		for seq := 0; seq < desc.DIFSequences; seq++ {
			h := HeaderBlock{
				ID:  BlockID{Section: SectionHeader, Sequence: 0x0F, DIFSequence: seq, Channel: ch, DIFBlock: 0},
				DSF: desc.Sys == system.PAL,
			}
			hb, err := h.Encode(desc)
			if err != nil {
				t.Fatalf("header.Encode() error = %v", err)
			}
			raw = append(raw, hb[:]...)

			for i := 0; i < subcodesPerSequence; i++ {
				sb := SubcodeBlock{ID: BlockID{Section: SectionSubcode, Sequence: 0x0F, DIFSequence: seq, Channel: ch, DIFBlock: i}}
				for j := range sb.Syncs {
					sb.Syncs[j] = SubcodeSyncBlock{Pack: pack.NoInfo{}}
				}
				b, err := sb.Encode(desc)
				if err != nil {
					t.Fatalf("subcode.Encode() error = %v", err)
				}
				raw = append(raw, b[:]...)
			}

			for i := 0; i < vauxesPerSequence; i++ {
				vb := VAUXBlock{ID: BlockID{Section: SectionVAUX, Sequence: 0, DIFSequence: seq, Channel: ch, DIFBlock: i}}
				for j := range vb.Packs {
					vb.Packs[j] = pack.NoInfo{}
				}
				b, err := vb.Encode(desc)
				if err != nil {
					t.Fatalf("vaux.Encode() error = %v", err)
				}
				raw = append(raw, b[:]...)
			}

			for i := 0; i < audiosPerSequence; i++ {
				ab := AudioBlock{ID: BlockID{Section: SectionAudio, Sequence: 0, DIFSequence: seq, Channel: ch, DIFBlock: i}, Pack: pack.NoInfo{}}
				b, err := ab.Encode(desc)
				if err != nil {
					t.Fatalf("audio.Encode() error = %v", err)
				}
				raw = append(raw, b[:]...)
			}

			for i := 0; i < videosPerSequence; i++ {
				vb := VideoBlock{ID: BlockID{Section: SectionVideo, Sequence: 0, DIFSequence: seq, Channel: ch, DIFBlock: i}}
				b, err := vb.Encode(desc)
				if err != nil {
					t.Fatalf("video.Encode() error = %v", err)
				}
				raw = append(raw, b[:]...)
			}
		}
	}
	return raw
}

func TestDecodeFrameRoundTrip(t *testing.T) {
	desc := ntscDescriptor(t)
	raw := buildRawFrame(t, desc)
	if len(raw) != desc.FrameBytes {
		t.Fatalf("buildRawFrame() produced %d bytes, want %d", len(raw), desc.FrameBytes)
	}

	fd, err := DecodeFrame(7, raw, desc)
	if err != nil {
		t.Fatalf("DecodeFrame() error = %v", err)
	}
	if fd.FrameNumber != 7 {
		t.Errorf("FrameNumber = %d, want 7", fd.FrameNumber)
	}
	if fd.ArbitraryBits {
		t.Error("ArbitraryBits = true, want false")
	}
	if fd.HeaderTrackAppID != 0 || fd.HeaderAudioAppID != 0 || fd.HeaderVideoAppID != 0 || fd.HeaderSubcodeAppID != 0 {
		t.Errorf("header application IDs = %d/%d/%d/%d, want all 0", fd.HeaderTrackAppID, fd.HeaderAudioAppID, fd.HeaderVideoAppID, fd.HeaderSubcodeAppID)
	}
	if fd.SubcodeTrackAppID != 0 || fd.SubcodeSubcodeAppID != 0 {
		t.Errorf("subcode application IDs = %d/%d, want 0/0", fd.SubcodeTrackAppID, fd.SubcodeSubcodeAppID)
	}
	if len(fd.SubcodePackTypes) != desc.Channels {
		t.Fatalf("SubcodePackTypes has %d channels, want %d", len(fd.SubcodePackTypes), desc.Channels)
	}

	out, err := fd.Encode()
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if !bytes.Equal(out, raw) {
		t.Error("Encode(DecodeFrame(raw)) did not round trip byte for byte")
	}
}

func TestDecodeFramePAL(t *testing.T) {
	desc, err := system.NewFrameDescriptor(system.PAL, 1, 12)
	if err != nil {
		t.Fatalf("system.NewFrameDescriptor() error = %v", err)
	}
	raw := buildRawFrame(t, desc)
	fd, err := DecodeFrame(0, raw, desc)
	if err != nil {
		t.Fatalf("DecodeFrame() error = %v", err)
	}
	out, err := fd.Encode()
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if !bytes.Equal(out, raw) {
		t.Error("Encode(DecodeFrame(raw)) did not round trip byte for byte")
	}
}

func TestDecodeFrameRejectsWrongLength(t *testing.T) {
	desc := ntscDescriptor(t)
	if _, err := DecodeFrame(0, make([]byte, desc.FrameBytes-1), desc); err == nil {
		t.Error("DecodeFrame() = nil error, want error for short raw buffer")
	} else if _, ok := err.(*DecodeError); !ok {
		t.Errorf("DecodeFrame() error type = %T, want *DecodeError", err)
	}
}

func TestDecodeFrameRejectsBlockOutOfOrder(t *testing.T) {
	desc := ntscDescriptor(t)
	raw := buildRawFrame(t, desc)
	// Corrupt the second DIF sequence's header to claim dif_sequence 0
	// instead of 1, violating checkBlockPosition.
	secondHeaderOff := 150 * 80
	corrupt := BlockID{Section: SectionHeader, Sequence: 0x0F, DIFSequence: 0, DIFBlock: 0}
	idBytes, err := corrupt.Encode(desc)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	copy(raw[secondHeaderOff:secondHeaderOff+3], idBytes[:])

	_, err = DecodeFrame(0, raw, desc)
	if err == nil {
		t.Fatal("DecodeFrame() = nil error, want error for out-of-order block")
	}
	if _, ok := err.(*DecodeError); !ok {
		t.Errorf("DecodeFrame() error type = %T, want *DecodeError", err)
	}
}

func TestDecodeFrameRejectsArbitraryBitMismatch(t *testing.T) {
	desc := ntscDescriptor(t)
	raw := buildRawFrame(t, desc)
	secondHeaderOff := 150 * 80
	raw[secondHeaderOff+3] |= 0x80 // flip the arbitrary bit on the second sequence's header

	_, err := DecodeFrame(0, raw, desc)
	if err == nil {
		t.Fatal("DecodeFrame() = nil error, want error for arbitrary bit mismatch")
	}
	if _, ok := err.(*DecodeError); !ok {
		t.Errorf("DecodeFrame() error type = %T, want *DecodeError", err)
	}
}

func TestFrameDataEncodeRejectsUndecoded(t *testing.T) {
	fd := FrameData{}
	if _, err := fd.Encode(); err == nil {
		t.Error("Encode() = nil error, want error for a FrameData with no decoded blocks")
	}
}
