/*
NAME
  title_test.go - tests for TitleTimecode and TitleBinaryGroup.

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

func TestTitleTimecodeRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		tc   TitleTimecode
		sys  system.System
	}{
		{
			name: "basic",
			tc:   TitleTimecode{Hour: 1, Minute: 2, Second: 3, Frame: 4},
			sys:  system.NTSC,
		},
		{
			name: "drop frame ntsc",
			tc:   TitleTimecode{Hour: 23, Minute: 59, Second: 59, Frame: 29, DropFrame: true, ColorFrame: true},
			sys:  system.NTSC,
		},
		{
			name: "pal max frame",
			tc:   TitleTimecode{Hour: 10, Minute: 20, Second: 30, Frame: 24, BlankFlag: true, PolarityCorrection: true, BinaryGroupFlags: 3},
			sys:  system.PAL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := tt.tc.Encode(tt.sys)
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			p, err := decodeTitleTimecode(b, tt.sys)
			if err != nil {
				t.Fatalf("decodeTitleTimecode() error = %v", err)
			}
			got := p.(TitleTimecode)
			if got != tt.tc {
				t.Errorf("decode(encode(tc)) = %+v, want %+v", got, tt.tc)
			}
		})
	}
}

func TestTitleTimecodeTextRoundTrip(t *testing.T) {
	tc := TitleTimecode{Hour: 12, Minute: 34, Second: 56, Frame: 12, ColorFrame: true, BinaryGroupFlags: 2}
	fields := tc.ToText()
	p, err := fromTextTitleTimecode(fields)
	if err != nil {
		t.Fatalf("fromTextTitleTimecode() error = %v", err)
	}
	if p.(TitleTimecode) != tc {
		t.Errorf("fromText(toText(tc)) = %+v, want %+v", p, tc)
	}
}

func TestTitleTimecodeDropFrameSeparator(t *testing.T) {
	tc := TitleTimecode{Hour: 1, Minute: 2, Second: 3, Frame: 4, DropFrame: true}
	fields := tc.ToText()
	if got, want := fields["smpte_timecode"], "01:02:03;04"; got != want {
		t.Errorf("smpte_timecode = %q, want %q", got, want)
	}
}

func TestTitleTimecodeValidateRejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		tc   TitleTimecode
		sys  system.System
	}{
		{"hour too large", TitleTimecode{Hour: 24}, system.NTSC},
		{"minute too large", TitleTimecode{Minute: 60}, system.NTSC},
		{"second too large", TitleTimecode{Second: 60}, system.NTSC},
		{"ntsc frame too large", TitleTimecode{Frame: 30}, system.NTSC},
		{"pal frame too large", TitleTimecode{Frame: 25}, system.PAL},
		{"drop frame on pal", TitleTimecode{DropFrame: true}, system.PAL},
		{"binary group flags too large", TitleTimecode{BinaryGroupFlags: 4}, system.NTSC},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.tc.Validate(tt.sys); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestTitleBinaryGroupRoundTrip(t *testing.T) {
	g := TitleBinaryGroup{tag: TypeTitleBinaryGroup, Value: [4]byte{0x11, 0x22, 0x33, 0x44}}
	b, err := g.Encode(system.NTSC)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	p, err := decodeTitleBinaryGroup(b, system.NTSC)
	if err != nil {
		t.Fatalf("decodeTitleBinaryGroup() error = %v", err)
	}
	if p.(TitleBinaryGroup) != g {
		t.Errorf("decode(encode(g)) = %+v, want %+v", p, g)
	}

	fields := g.ToText()
	p2, err := fromTextTitleBinaryGroup(fields)
	if err != nil {
		t.Fatalf("fromTextTitleBinaryGroup() error = %v", err)
	}
	if p2.(TitleBinaryGroup) != g {
		t.Errorf("fromText(toText(g)) = %+v, want %+v", p2, g)
	}
}
