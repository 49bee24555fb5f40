/*
NAME
  aaux_source_test.go - tests for AAUXSource.

LICENSE
  Copyright (C) 2026 the dvtoolkit authors. All Rights Reserved.

  The Software and all intellectual property rights associated therewith
  are and will remain the exclusive property of the dvtoolkit authors.
*/

package pack

import (
	"testing"

	"github.com/dvtoolkit/difcodec/container/dv/system"
)

func TestAAUXSourceDecodeKnownBytes(t *testing.T) {
	// 50 CE 30 C0 D1, the spec's mandated seed scenario byte sequence.
	raw := [5]byte{byte(TypeAAUXSource), 0xCE, 0x30, 0xC0, 0xD1}
	p, err := decodeAAUXSource(raw, system.NTSC)
	if err != nil {
		t.Fatalf("decodeAAUXSource() error = %v", err)
	}
	a := p.(AAUXSource)

	if a.SampleFrequency != 32000 {
		t.Errorf("SampleFrequency = %d, want 32000", a.SampleFrequency)
	}
	if a.AudioBlockChannelCount != 2 {
		t.Errorf("AudioBlockChannelCount = %d, want 2", a.AudioBlockChannelCount)
	}
	if a.FieldCount != 60 {
		t.Errorf("FieldCount = %d, want 60", a.FieldCount)
	}
	if a.AudioSamplesPerFrame != 1067 {
		t.Errorf("AudioSamplesPerFrame = %d, want 1067", a.AudioSamplesPerFrame)
	}

	out, err := a.Encode(system.NTSC)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if out != raw {
		t.Errorf("Encode() round trip = %X, want %X", out, raw)
	}
}

func TestAAUXSourceRoundTrip(t *testing.T) {
	a := AAUXSource{
		SampleFrequency:        44100,
		Quantization:           Linear20Bit,
		AudioSamplesPerFrame:   1080,
		LockedMode:             Unlocked,
		StereoMode:             LumpedAudio,
		AudioBlockChannelCount: 1,
		AudioMode:              7,
		AudioBlockPairing:      Independent,
		MultiLanguage:          true,
		SourceType:             SourceTypeAnalogHighDefinition1125_1250,
		FieldCount:             50,
		EmphasisOn:             true,
		EmphasisTimeConstant:   Emphasis5015,
	}
	b, err := a.Encode(system.PAL)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	p, err := decodeAAUXSource(b, system.PAL)
	if err != nil {
		t.Fatalf("decodeAAUXSource() error = %v", err)
	}
	if p.(AAUXSource) != a {
		t.Errorf("decode(encode(a)) = %+v, want %+v", p, a)
	}
}

func TestAAUXSourceTextRoundTrip(t *testing.T) {
	a := AAUXSource{
		SampleFrequency:        32000,
		Quantization:           Nonlinear12Bit,
		AudioSamplesPerFrame:   1053,
		LockedMode:             Locked,
		StereoMode:             MultiStereoAudio,
		AudioBlockChannelCount: 2,
		AudioMode:              0,
		AudioBlockPairing:      Paired,
		MultiLanguage:          false,
		SourceType:             SourceTypeStandardDefinitionCompressedChroma,
		FieldCount:             60,
		EmphasisOn:             false,
		EmphasisTimeConstant:   EmphasisReserved,
	}
	fields := a.ToText()
	p, err := fromTextAAUXSource(fields)
	if err != nil {
		t.Fatalf("fromTextAAUXSource() error = %v", err)
	}
	if p.(AAUXSource) != a {
		t.Errorf("fromText(toText(a)) = %+v, want %+v", p, a)
	}
}

func TestAAUXSourceValidateRejectsBadFieldCount(t *testing.T) {
	a := AAUXSource{SampleFrequency: 48000, AudioSamplesPerFrame: 1080, AudioBlockChannelCount: 1, FieldCount: 50}
	if err := a.Validate(system.NTSC); err == nil {
		t.Error("Validate() = nil, want error for PAL field count on NTSC")
	}
}
