/*
NAME
  time.go - AAUXRecordingTime (0x53) and VAUXRecordingTime (0x63) packs.

DESCRIPTION
  hh:mm:ss BCD fields, each independently optional (whole-byte 0xFF means
  that component is absent, per spec §4.5/§9's sentinel-byte design note).
  byte 4 is an opaque reserved byte carried verbatim, surfaced to text as
  sc_recording_time_reserved. The text projection renders recording_time
  only when hour, minute and second are all present; a partial time is
  rendered as empty and reads back with all three absent.

LICENSE
  Copyright (C) 2026 the dvtoolkit authors. All Rights Reserved.

  The Software and all intellectual property rights associated therewith
  are and will remain the exclusive property of the dvtoolkit authors.
*/

package pack

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/dvtoolkit/difcodec/container/dv/system"
)

// RecordingTime holds the fields shared by AAUXRecordingTime and
// VAUXRecordingTime.
type RecordingTime struct {
	tag Type

	Hour     *int // 0..23
	Minute   *int // 0..59
	Second   *int // 0..59
	Reserved byte // opaque, round-tripped verbatim
}

func (t RecordingTime) Type() Type { return t.tag }

func decodeRecordingTimeBytes(tag Type, b [5]byte) RecordingTime {
	t := RecordingTime{tag: tag, Reserved: b[4]}
	if b[1] != sentinelByte {
		if h, ok := decodeBCD2(b[1]&0x3F, 2, 9); ok && h <= 23 {
			v := h
			t.Hour = &v
		}
	}
	if b[2] != sentinelByte {
		if m, ok := decodeBCD2(b[2]&0x7F, 5, 9); ok && m <= 59 {
			v := m
			t.Minute = &v
		}
	}
	if b[3] != sentinelByte {
		if s, ok := decodeBCD2(b[3]&0x7F, 5, 9); ok && s <= 59 {
			v := s
			t.Second = &v
		}
	}
	return t
}

func decodeAAUXRecordingTime(b [5]byte, _ system.System) (Pack, error) {
	return decodeRecordingTimeBytes(TypeAAUXRecTime, b), nil
}

func decodeVAUXRecordingTime(b [5]byte, _ system.System) (Pack, error) {
	return decodeRecordingTimeBytes(TypeVAUXRecTime, b), nil
}

func (t RecordingTime) Validate(system.System) error {
	if t.Hour != nil && (*t.Hour < 0 || *t.Hour > 23) {
		return errors.Errorf("recording time: hour %d is out of range [0, 23]", *t.Hour)
	}
	if t.Minute != nil && (*t.Minute < 0 || *t.Minute > 59) {
		return errors.Errorf("recording time: minute %d is out of range [0, 59]", *t.Minute)
	}
	if t.Second != nil && (*t.Second < 0 || *t.Second > 59) {
		return errors.Errorf("recording time: second %d is out of range [0, 59]", *t.Second)
	}
	return nil
}

func (t RecordingTime) Encode(sys system.System) ([5]byte, error) {
	if err := t.Validate(sys); err != nil {
		return [5]byte{}, err
	}
	var b [5]byte
	b[0] = byte(t.tag)
	if t.Hour == nil {
		b[1] = sentinelByte
	} else {
		b[1] = encodeBCD2(*t.Hour)
	}
	if t.Minute == nil {
		b[2] = sentinelByte
	} else {
		b[2] = encodeBCD2(*t.Minute)
	}
	if t.Second == nil {
		b[3] = sentinelByte
	} else {
		b[3] = encodeBCD2(*t.Second)
	}
	b[4] = t.Reserved
	return b, nil
}

func (t RecordingTime) ToText() map[string]string {
	val := ""
	if t.Hour != nil && t.Minute != nil && t.Second != nil {
		val = pad2(*t.Hour) + ":" + pad2(*t.Minute) + ":" + pad2(*t.Second)
	}
	r := int(t.Reserved)
	return map[string]string{
		"recording_time":          val,
		"recording_time_reserved": hexInt(&r, 2),
	}
}

func fromTextRecordingTime(tag Type, fields map[string]string) (Pack, error) {
	t := RecordingTime{tag: tag}
	if s := fields["recording_time"]; s != "" {
		var h, m, sec int
		if _, err := fmt.Sscanf(s, "%d:%d:%d", &h, &m, &sec); err != nil {
			return nil, errors.Wrapf(err, "recording time: parsing recording_time %q", s)
		}
		t.Hour, t.Minute, t.Second = &h, &m, &sec
	}
	reserved, err := parseHexInt(fields["recording_time_reserved"])
	if err != nil {
		return nil, errors.Wrap(err, "recording time: recording_time_reserved")
	}
	if reserved != nil {
		t.Reserved = byte(*reserved)
	}
	return t, nil
}

func fromTextAAUXRecordingTime(fields map[string]string) (Pack, error) {
	return fromTextRecordingTime(TypeAAUXRecTime, fields)
}

func fromTextVAUXRecordingTime(fields map[string]string) (Pack, error) {
	return fromTextRecordingTime(TypeVAUXRecTime, fields)
}

func pad2(v int) string {
	const digits = "0123456789"
	return string([]byte{digits[(v/10)%10], digits[v%10]})
}
