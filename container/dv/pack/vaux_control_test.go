/*
NAME
  vaux_control_test.go - tests for VAUXSourceControl.

LICENSE
  Copyright (C) 2026 the dvtoolkit authors. All Rights Reserved.

  The Software and all intellectual property rights associated therewith
  are and will remain the exclusive property of the dvtoolkit authors.
*/

package pack

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dvtoolkit/difcodec/container/dv/system"
)

func TestVAUXSourceControlRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		v    VAUXSourceControl
	}{
		{
			name: "all present",
			v: VAUXSourceControl{
				BroadcastSystem:    2,
				DisplayMode:        5,
				FrameField:         true,
				FrameChange:        true,
				FirstSecond:        2,
				Interlaced:         true,
				StillFieldPicture:  true,
				StillCameraPicture: true,
				CopyProtection:     OneGenerationOnly,
				SourceSituation:    ptrInt(1),
				InputSource:        ptrInt(2),
				CompressionCount:   ptrInt(0),
				RecStartPoint:      true,
				RecordingMode:      RecordingModeTwoChannelInsert,
				GenreCategory:      99,
				Reserved:           5,
			},
		},
		{
			name: "tristates absent",
			v: VAUXSourceControl{
				FirstSecond:   1,
				CopyProtection: NoRestriction,
				RecordingMode: RecordingModeOriginal,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := tt.v.Encode(system.NTSC)
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			p, err := decodeVAUXSourceControl(b, system.NTSC)
			if err != nil {
				t.Fatalf("decodeVAUXSourceControl() error = %v", err)
			}
			if diff := cmp.Diff(tt.v, p.(VAUXSourceControl)); diff != "" {
				t.Errorf("decode(encode(v)) mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestVAUXSourceControlTextRoundTrip(t *testing.T) {
	v := VAUXSourceControl{
		BroadcastSystem:    1,
		DisplayMode:        3,
		FrameField:         true,
		FirstSecond:        2,
		Interlaced:         false,
		StillFieldPicture:  true,
		CopyProtection:     NotPermitted,
		SourceSituation:    ptrInt(0),
		CompressionCount:   ptrInt(2),
		RecStartPoint:      true,
		RecordingMode:      RecordingModeOneChannelInsert,
		GenreCategory:      7,
		Reserved:           3,
	}
	fields := v.ToText()
	p, err := fromTextVAUXSourceControl(fields)
	if err != nil {
		t.Fatalf("fromTextVAUXSourceControl() error = %v", err)
	}
	if diff := cmp.Diff(v, p.(VAUXSourceControl)); diff != "" {
		t.Errorf("fromText(toText(v)) mismatch (-want +got):\n%s", diff)
	}
}

func TestVAUXSourceControlValidateRejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		v    VAUXSourceControl
	}{
		{"broadcast system", VAUXSourceControl{BroadcastSystem: 4, FirstSecond: 1}},
		{"display mode", VAUXSourceControl{DisplayMode: 8, FirstSecond: 1}},
		{"first/second", VAUXSourceControl{FirstSecond: 3}},
		{"genre category", VAUXSourceControl{FirstSecond: 1, GenreCategory: 200}},
		{"reserved", VAUXSourceControl{FirstSecond: 1, Reserved: 8}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.v.Validate(system.NTSC); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}
