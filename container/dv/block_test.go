/*
NAME
  block_test.go - tests for the five DIF block codecs.

LICENSE
  Copyright (C) 2026 the dvtoolkit authors. All Rights Reserved.

  The Software and all intellectual property rights associated therewith
  are and will remain the exclusive property of the dvtoolkit authors.
*/

package dv

import (
	"testing"

	"github.com/dvtoolkit/difcodec/container/dv/pack"
)

func TestHeaderBlockRoundTrip(t *testing.T) {
	desc := ntscDescriptor(t)
	h := HeaderBlock{
		ID:        BlockID{Section: SectionHeader, Sequence: 0x0F, DIFSequence: 0, DIFBlock: 0},
		Arbitrary: true,
		DSF:       false,
		APT:       3,
		TF1:       true,
		AP1:       5,
		TF2:       false,
		AP2:       2,
		TF3:       true,
		AP3:       7,
	}
	for i := range h.Reserved {
		h.Reserved[i] = byte(i)
	}
	raw, err := h.Encode(desc)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	got, err := DecodeHeaderBlock(raw, desc)
	if err != nil {
		t.Fatalf("DecodeHeaderBlock() error = %v", err)
	}
	if got != h {
		t.Errorf("DecodeHeaderBlock(Encode(h)) = %+v, want %+v", got, h)
	}
}

func TestDecodeHeaderBlockRejectsWrongSection(t *testing.T) {
	desc := ntscDescriptor(t)
	sb := SubcodeBlock{ID: BlockID{Section: SectionSubcode, Sequence: 0x0F, DIFSequence: 0, DIFBlock: 0}}
	for i := range sb.Syncs {
		sb.Syncs[i] = SubcodeSyncBlock{Pack: pack.NoInfo{}}
	}
	raw, err := sb.Encode(desc)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if _, err := DecodeHeaderBlock(raw, desc); err == nil {
		t.Error("DecodeHeaderBlock() = nil error, want error decoding a subcode block as header")
	}
}

func TestSubcodeBlockRoundTrip(t *testing.T) {
	desc := ntscDescriptor(t)
	sb := SubcodeBlock{ID: BlockID{Section: SectionSubcode, Sequence: 0x0F, DIFSequence: 2, DIFBlock: 1}}
	for i := range sb.Syncs {
		sb.Syncs[i] = SubcodeSyncBlock{ID0: byte(i), ID1: byte(i + 1), Pack: pack.NoInfo{}}
	}
	for i := range sb.Reserved {
		sb.Reserved[i] = 0xFF
	}
	raw, err := sb.Encode(desc)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	got, err := DecodeSubcodeBlock(raw, desc)
	if err != nil {
		t.Fatalf("DecodeSubcodeBlock() error = %v", err)
	}
	if got.ID != sb.ID || got.Reserved != sb.Reserved {
		t.Errorf("DecodeSubcodeBlock(Encode(sb)) ID/Reserved mismatch: got %+v, want %+v", got, sb)
	}
	for i := range got.Syncs {
		if got.Syncs[i].ID0 != sb.Syncs[i].ID0 || got.Syncs[i].ID1 != sb.Syncs[i].ID1 {
			t.Errorf("sync %d: ID0/ID1 = %v/%v, want %v/%v", i, got.Syncs[i].ID0, got.Syncs[i].ID1, sb.Syncs[i].ID0, sb.Syncs[i].ID1)
		}
		if got.Syncs[i].Pack.Type() != pack.TypeNoInfo {
			t.Errorf("sync %d: Pack.Type() = %v, want TypeNoInfo", i, got.Syncs[i].Pack.Type())
		}
	}
}

func TestVAUXBlockRoundTrip(t *testing.T) {
	desc := ntscDescriptor(t)
	vb := VAUXBlock{ID: BlockID{Section: SectionVAUX, Sequence: 1, DIFSequence: 5, DIFBlock: 2}}
	for i := range vb.Packs {
		vb.Packs[i] = pack.NoInfo{}
	}
	vb.Reserved = [2]byte{0xAA, 0xBB}
	raw, err := vb.Encode(desc)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	got, err := DecodeVAUXBlock(raw, desc)
	if err != nil {
		t.Fatalf("DecodeVAUXBlock() error = %v", err)
	}
	if got.ID != vb.ID || got.Reserved != vb.Reserved {
		t.Errorf("DecodeVAUXBlock(Encode(vb)) mismatch: got %+v, want %+v", got, vb)
	}
}

func TestAudioBlockRoundTrip(t *testing.T) {
	desc := ntscDescriptor(t)
	ab := AudioBlock{ID: BlockID{Section: SectionAudio, Sequence: 0, DIFSequence: 0, DIFBlock: 8}, Pack: pack.NoInfo{}}
	for i := range ab.Data {
		ab.Data[i] = byte(i * 3)
	}
	raw, err := ab.Encode(desc)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	got, err := DecodeAudioBlock(raw, desc)
	if err != nil {
		t.Fatalf("DecodeAudioBlock() error = %v", err)
	}
	if got.ID != ab.ID || got.Data != ab.Data {
		t.Errorf("DecodeAudioBlock(Encode(ab)) mismatch: got %+v, want %+v", got, ab)
	}
}

func TestVideoBlockRoundTrip(t *testing.T) {
	desc := ntscDescriptor(t)
	vb := VideoBlock{ID: BlockID{Section: SectionVideo, Sequence: 0, DIFSequence: 0, DIFBlock: 134}}
	for i := range vb.Data {
		vb.Data[i] = byte(255 - i)
	}
	raw, err := vb.Encode(desc)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	got, err := DecodeVideoBlock(raw, desc)
	if err != nil {
		t.Fatalf("DecodeVideoBlock() error = %v", err)
	}
	if got != vb {
		t.Errorf("DecodeVideoBlock(Encode(vb)) = %+v, want %+v", got, vb)
	}
}

func TestDecodeVideoBlockRejectsWrongSection(t *testing.T) {
	desc := ntscDescriptor(t)
	ab := AudioBlock{ID: BlockID{Section: SectionAudio, Sequence: 0, DIFSequence: 0, DIFBlock: 0}, Pack: pack.NoInfo{}}
	raw, err := ab.Encode(desc)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if _, err := DecodeVideoBlock(raw, desc); err == nil {
		t.Error("DecodeVideoBlock() = nil error, want error decoding an audio block as video")
	}
}

func TestVAUXBlockPreservesUnknownPacks(t *testing.T) {
	desc := ntscDescriptor(t)
	raw := [80]byte{}
	idBytes, err := BlockID{Section: SectionVAUX, Sequence: 1, DIFSequence: 0, DIFBlock: 0}.Encode(desc)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	copy(raw[:3], idBytes[:])
	off := 3
	for i := 0; i < VAUXPacksPerBlock; i++ {
		raw[off] = 0x77 // an unassigned pack type tag
		off += 5
	}
	got, err := DecodeVAUXBlock(raw, desc)
	if err != nil {
		t.Fatalf("DecodeVAUXBlock() error = %v", err)
	}
	for i, p := range got.Packs {
		u, ok := p.(pack.Unknown)
		if !ok {
			t.Fatalf("pack %d: got %T, want pack.Unknown", i, p)
		}
		if u.Type() != 0x77 {
			t.Errorf("pack %d: Type() = %#x, want 0x77", i, u.Type())
		}
	}
	out, err := got.Encode(desc)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if out != raw {
		t.Errorf("re-encoded unknown packs did not round trip byte for byte")
	}
}
