/*
NAME
  title.go - TitleTimecode (0x13) and TitleBinaryGroup (0x14) packs.

DESCRIPTION
  TitleTimecode byte layout (original design, not a transcription of
  original_source's ctypes layout, which is unreachable from Go):

    byte 1: drop_frame[1] | color_frame[1] | frame_tens[2] | frame_units[4]
    byte 2: blank_flag[1] | second_tens[3] | second_units[4]
    byte 3: polarity_correction[1] | minute_tens[3] | minute_units[4]
    byte 4: binary_group_flags[2] | hour_tens[2] | hour_units[4]

LICENSE
  Copyright (C) 2026 the dvtoolkit authors. All Rights Reserved.

  The Software and all intellectual property rights associated therewith
  are and will remain the exclusive property of the dvtoolkit authors.
*/

package pack

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/dvtoolkit/difcodec/container/dv/system"
)

// TitleTimecode is the SMPTE-style hour:minute:second:frame timecode pack
// found in the subcode region.
type TitleTimecode struct {
	Hour, Minute, Second, Frame int

	DropFrame           bool
	ColorFrame          bool
	PolarityCorrection  bool
	BlankFlag           bool
	BinaryGroupFlags    int // 0..3
}

func (TitleTimecode) Type() Type { return TypeTitleTimecode }

func decodeTitleTimecode(b [5]byte, _ system.System) (Pack, error) {
	frame, ok := decodeBCD2(b[1]&0x3F, 3, 9)
	if !ok {
		return nil, ErrRejected
	}
	second, ok := decodeBCD2(b[2]&0x7F, 5, 9)
	if !ok {
		return nil, ErrRejected
	}
	minute, ok := decodeBCD2(b[3]&0x7F, 5, 9)
	if !ok {
		return nil, ErrRejected
	}
	hour, ok := decodeBCD2(b[4]&0x3F, 2, 9)
	if !ok {
		return nil, ErrRejected
	}
	return TitleTimecode{
		Hour:               hour,
		Minute:             minute,
		Second:             second,
		Frame:              frame,
		DropFrame:          b[1]&0x80 != 0,
		ColorFrame:         b[1]&0x40 != 0,
		BlankFlag:          b[2]&0x80 != 0,
		PolarityCorrection: b[3]&0x80 != 0,
		BinaryGroupFlags:   int(b[4] >> 6),
	}, nil
}

func (t TitleTimecode) maxFrame(sys system.System) int {
	if sys == system.PAL {
		return 24
	}
	return 29
}

func (t TitleTimecode) Validate(sys system.System) error {
	if t.Hour < 0 || t.Hour > 23 {
		return errors.Errorf("title timecode: hour %d is out of range [0, 23]", t.Hour)
	}
	if t.Minute < 0 || t.Minute > 59 {
		return errors.Errorf("title timecode: minute %d is out of range [0, 59]", t.Minute)
	}
	if t.Second < 0 || t.Second > 59 {
		return errors.Errorf("title timecode: second %d is out of range [0, 59]", t.Second)
	}
	if max := t.maxFrame(sys); t.Frame < 0 || t.Frame > max {
		return errors.Errorf("title timecode: frame %d is out of range [0, %d] for %v", t.Frame, max, sys)
	}
	if sys == system.PAL && t.DropFrame {
		return errors.New("title timecode: drop frame flag is only valid for NTSC")
	}
	if t.BinaryGroupFlags < 0 || t.BinaryGroupFlags > 3 {
		return errors.Errorf("title timecode: binary group flags %d is out of range [0, 3]", t.BinaryGroupFlags)
	}
	return nil
}

func (t TitleTimecode) Encode(sys system.System) ([5]byte, error) {
	if err := t.Validate(sys); err != nil {
		return [5]byte{}, err
	}
	var b [5]byte
	b[0] = byte(TypeTitleTimecode)
	b[1] = encodeBCD2(t.Frame)
	if t.DropFrame {
		b[1] |= 0x80
	}
	if t.ColorFrame {
		b[1] |= 0x40
	}
	b[2] = encodeBCD2(t.Second)
	if t.BlankFlag {
		b[2] |= 0x80
	}
	b[3] = encodeBCD2(t.Minute)
	if t.PolarityCorrection {
		b[3] |= 0x80
	}
	b[4] = encodeBCD2(t.Hour) | byte(t.BinaryGroupFlags)<<6
	return b, nil
}

func (t TitleTimecode) ToText() map[string]string {
	bgf := t.BinaryGroupFlags
	frameSep := ":"
	if t.DropFrame {
		frameSep = ";"
	}
	return map[string]string{
		"smpte_timecode":                     fmt.Sprintf("%s:%s:%s%s%s", pad2(t.Hour), pad2(t.Minute), pad2(t.Second), frameSep, pad2(t.Frame)),
		"smpte_timecode_color_frame":         renderBool(t.ColorFrame),
		"smpte_timecode_polarity_correction": renderBool(t.PolarityCorrection),
		"smpte_timecode_binary_group_flags":  hexInt(&bgf, 1),
		"smpte_timecode_blank_flag":          renderBool(t.BlankFlag),
	}
}

// fromTextTitleTimecode parses the inverse of ToText. A ";" separator
// before the frame component (SMPTE drop-frame notation) sets DropFrame.
func fromTextTitleTimecode(fields map[string]string) (Pack, error) {
	raw := fields["smpte_timecode"]
	dropFrame := strings.Contains(raw, ";")
	normalized := strings.Replace(raw, ";", ":", 1)
	var h, m, s, f int
	if _, err := fmt.Sscanf(normalized, "%d:%d:%d:%d", &h, &m, &s, &f); err != nil {
		return nil, errors.Wrap(err, "title timecode: parsing smpte_timecode")
	}
	colorFrame, err := parseBool(fields["smpte_timecode_color_frame"])
	if err != nil {
		return nil, errors.Wrap(err, "title timecode: color frame")
	}
	polarity, err := parseBool(fields["smpte_timecode_polarity_correction"])
	if err != nil {
		return nil, errors.Wrap(err, "title timecode: polarity correction")
	}
	blank, err := parseBool(fields["smpte_timecode_blank_flag"])
	if err != nil {
		return nil, errors.Wrap(err, "title timecode: blank flag")
	}
	bgf, err := parseHexInt(fields["smpte_timecode_binary_group_flags"])
	if err != nil {
		return nil, errors.Wrap(err, "title timecode: binary group flags")
	}
	t := TitleTimecode{
		Hour: h, Minute: m, Second: s, Frame: f,
		DropFrame:          dropFrame,
		ColorFrame:         colorFrame,
		PolarityCorrection: polarity,
		BlankFlag:          blank,
	}
	if bgf != nil {
		t.BinaryGroupFlags = *bgf
	}
	return t, nil
}

// TitleBinaryGroup (and the parallel AAUX/VAUX binary group packs) carry an
// opaque 4-byte value defined by the recording equipment.
type TitleBinaryGroup struct {
	tag   Type
	Value [4]byte
}

func (g TitleBinaryGroup) Type() Type { return g.tag }

func decodeTitleBinaryGroup(b [5]byte, _ system.System) (Pack, error) {
	return TitleBinaryGroup{tag: TypeTitleBinaryGroup, Value: [4]byte{b[1], b[2], b[3], b[4]}}, nil
}

func decodeAAUXBinaryGroup(b [5]byte, _ system.System) (Pack, error) {
	return TitleBinaryGroup{tag: TypeAAUXBinaryGroup, Value: [4]byte{b[1], b[2], b[3], b[4]}}, nil
}

func decodeVAUXBinaryGroup(b [5]byte, _ system.System) (Pack, error) {
	return TitleBinaryGroup{tag: TypeVAUXBinaryGroup, Value: [4]byte{b[1], b[2], b[3], b[4]}}, nil
}

func (g TitleBinaryGroup) Validate(system.System) error { return nil }

func (g TitleBinaryGroup) Encode(system.System) ([5]byte, error) {
	return [5]byte{byte(g.tag), g.Value[0], g.Value[1], g.Value[2], g.Value[3]}, nil
}

func (g TitleBinaryGroup) ToText() map[string]string {
	return map[string]string{"smpte_binary_group": hexBytes(g.Value[:], nil)}
}

func fromTextBinaryGroup(tag Type, fields map[string]string) (Pack, error) {
	b, _, err := parseHexBytes(fields["smpte_binary_group"])
	if err != nil {
		return nil, errors.Wrap(err, "binary group")
	}
	if len(b) != 4 {
		return nil, errors.Errorf("binary group: value has %d bytes, want 4", len(b))
	}
	return TitleBinaryGroup{tag: tag, Value: [4]byte{b[0], b[1], b[2], b[3]}}, nil
}

func fromTextTitleBinaryGroup(fields map[string]string) (Pack, error) {
	return fromTextBinaryGroup(TypeTitleBinaryGroup, fields)
}

func fromTextAAUXBinaryGroup(fields map[string]string) (Pack, error) {
	return fromTextBinaryGroup(TypeAAUXBinaryGroup, fields)
}

func fromTextVAUXBinaryGroup(fields map[string]string) (Pack, error) {
	return fromTextBinaryGroup(TypeVAUXBinaryGroup, fields)
}
