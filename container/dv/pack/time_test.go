/*
NAME
  time_test.go - tests for RecordingTime.

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

func TestRecordingTimeRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		tm   RecordingTime
	}{
		{"full", RecordingTime{tag: TypeAAUXRecTime, Hour: ptrInt(23), Minute: ptrInt(59), Second: ptrInt(59), Reserved: 0x0A}},
		{"absent", RecordingTime{tag: TypeVAUXRecTime, Reserved: 0xFF}},
		{"hour only", RecordingTime{tag: TypeAAUXRecTime, Hour: ptrInt(5)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := tt.tm.Encode(system.NTSC)
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			got := decodeRecordingTimeBytes(tt.tm.tag, b)
			if diff := cmp.Diff(tt.tm, got, cmp.AllowUnexported(RecordingTime{})); diff != "" {
				t.Errorf("decode(encode(tm)) mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRecordingTimeTextRoundTrip(t *testing.T) {
	tm := RecordingTime{tag: TypeAAUXRecTime, Hour: ptrInt(1), Minute: ptrInt(2), Second: ptrInt(3), Reserved: 0x07}
	fields := tm.ToText()
	p, err := fromTextRecordingTime(TypeAAUXRecTime, fields)
	if err != nil {
		t.Fatalf("fromTextRecordingTime() error = %v", err)
	}
	if diff := cmp.Diff(tm, p.(RecordingTime), cmp.AllowUnexported(RecordingTime{})); diff != "" {
		t.Errorf("fromText(toText(tm)) mismatch (-want +got):\n%s", diff)
	}
}

func TestRecordingTimeValidateRejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		tm   RecordingTime
	}{
		{"hour", RecordingTime{Hour: ptrInt(24)}},
		{"minute", RecordingTime{Minute: ptrInt(60)}},
		{"second", RecordingTime{Second: ptrInt(60)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.tm.Validate(system.NTSC); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}
