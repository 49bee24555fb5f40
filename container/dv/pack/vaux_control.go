/*
NAME
  vaux_control.go - VAUXSourceControl pack (0x61).

DESCRIPTION
  Byte layout (original design; VAUXSourceControl has no spec.md-mandated
  seed bytes, only the field shapes in spec.md §3's variant table):

    byte 1: broadcast_system[2] | display_mode[3] | frame_field[1] |
            frame_change[1] | first_second[1] (0 -> 1, 1 -> 2)
    byte 2: interlaced[1] | still_field_picture[1] | still_camera_picture[1]
            | copy_protection[2] | rec_start_point[1] | recording_mode[2]
    byte 3: source_situation[2] (3=absent) | input_source[2] (3=absent) |
            compression_count[2] (3=absent) | reserved_hi[2]
    byte 4: genre_category[7] | reserved_lo[1]

  reserved = reserved_hi<<1 | reserved_lo (0..7).

LICENSE
  Copyright (C) 2026 the dvtoolkit authors. All Rights Reserved.

  The Software and all intellectual property rights associated therewith
  are and will remain the exclusive property of the dvtoolkit authors.
*/

package pack

import (
	"github.com/pkg/errors"

	"github.com/dvtoolkit/difcodec/container/dv/system"
)

// VAUXSourceControl carries recording/display metadata for one VAUX block.
type VAUXSourceControl struct {
	BroadcastSystem     int // 0..3
	DisplayMode         int // 0..7
	FrameField          bool
	FrameChange         bool
	FirstSecond         int // 1 or 2
	Interlaced          bool
	StillFieldPicture   bool
	StillCameraPicture  bool
	CopyProtection      CopyProtection
	SourceSituation     *int
	InputSource         *int
	CompressionCount    *int
	RecStartPoint       bool
	RecordingMode       AAUXRecordingMode
	GenreCategory       int // 0..127
	Reserved            int // 0..7
}

func (VAUXSourceControl) Type() Type { return TypeVAUXSourceCtrl }

func decodeVAUXSourceControl(b [5]byte, _ system.System) (Pack, error) {
	firstSecond := 1
	if b[1]&0x01 != 0 {
		firstSecond = 2
	}
	return VAUXSourceControl{
		BroadcastSystem:    int(b[1] >> 6),
		DisplayMode:        int((b[1] >> 3) & 0x07),
		FrameField:         b[1]&0x04 != 0,
		FrameChange:        b[1]&0x02 != 0,
		FirstSecond:        firstSecond,
		Interlaced:         b[2]&0x80 != 0,
		StillFieldPicture:  b[2]&0x40 != 0,
		StillCameraPicture: b[2]&0x20 != 0,
		CopyProtection:     CopyProtection((b[2] >> 3) & 0x03),
		RecStartPoint:      b[2]&0x04 != 0,
		RecordingMode:      AAUXRecordingMode(b[2] & 0x03),
		SourceSituation:    tristate2(b[3] >> 6),
		InputSource:        tristate2((b[3] >> 4) & 0x03),
		CompressionCount:   tristate2((b[3] >> 2) & 0x03),
		GenreCategory:      int(b[4] >> 1),
		Reserved:           int(b[3]&0x03)<<1 | int(b[4]&0x01),
	}, nil
}

func (v VAUXSourceControl) Validate(system.System) error {
	if v.BroadcastSystem < 0 || v.BroadcastSystem > 3 {
		return errors.Errorf("vaux source control: broadcast system %d is out of range [0, 3]", v.BroadcastSystem)
	}
	if v.DisplayMode < 0 || v.DisplayMode > 7 {
		return errors.Errorf("vaux source control: display mode %d is out of range [0, 7]", v.DisplayMode)
	}
	if v.FirstSecond != 1 && v.FirstSecond != 2 {
		return errors.Errorf("vaux source control: first/second %d must be 1 or 2", v.FirstSecond)
	}
	if v.GenreCategory < 0 || v.GenreCategory > 127 {
		return errors.Errorf("vaux source control: genre category %d is out of range [0, 127]", v.GenreCategory)
	}
	if v.Reserved < 0 || v.Reserved > 7 {
		return errors.Errorf("vaux source control: reserved %d is out of range [0, 7]", v.Reserved)
	}
	return nil
}

func (v VAUXSourceControl) Encode(sys system.System) ([5]byte, error) {
	if err := v.Validate(sys); err != nil {
		return [5]byte{}, err
	}
	var b [5]byte
	b[0] = byte(TypeVAUXSourceCtrl)

	b[1] = byte(v.BroadcastSystem)<<6 | byte(v.DisplayMode)<<3
	if v.FrameField {
		b[1] |= 0x04
	}
	if v.FrameChange {
		b[1] |= 0x02
	}
	if v.FirstSecond == 2 {
		b[1] |= 0x01
	}

	if v.Interlaced {
		b[2] |= 0x80
	}
	if v.StillFieldPicture {
		b[2] |= 0x40
	}
	if v.StillCameraPicture {
		b[2] |= 0x20
	}
	b[2] |= byte(v.CopyProtection) << 3
	if v.RecStartPoint {
		b[2] |= 0x04
	}
	b[2] |= byte(v.RecordingMode) & 0x03

	if v.SourceSituation == nil {
		b[3] |= 0x03 << 6
	} else {
		b[3] |= byte(*v.SourceSituation) << 6
	}
	if v.InputSource == nil {
		b[3] |= 0x03 << 4
	} else {
		b[3] |= byte(*v.InputSource) << 4
	}
	if v.CompressionCount == nil {
		b[3] |= 0x03 << 2
	} else {
		b[3] |= byte(*v.CompressionCount) << 2
	}
	b[3] |= byte(v.Reserved>>1) & 0x03

	b[4] = byte(v.GenreCategory)<<1 | byte(v.Reserved&0x01)

	return b, nil
}

func fromTextVAUXSourceControl(fields map[string]string) (Pack, error) {
	broadcast, err := parseHexInt(fields["vaux_control_broadcast_system"])
	if err != nil {
		return nil, errors.Wrap(err, "vaux source control: broadcast system")
	}
	display, err := parseHexInt(fields["vaux_control_display_mode"])
	if err != nil {
		return nil, errors.Wrap(err, "vaux source control: display mode")
	}
	frameField, err := parseBool(fields["vaux_control_frame_field"])
	if err != nil {
		return nil, errors.Wrap(err, "vaux source control: frame field")
	}
	frameChange, err := parseBool(fields["vaux_control_frame_change"])
	if err != nil {
		return nil, errors.Wrap(err, "vaux source control: frame change")
	}
	first, err := atoi(fields["vaux_control_first_second"])
	if err != nil {
		return nil, errors.Wrap(err, "vaux source control: first/second")
	}
	interlaced, err := parseBool(fields["vaux_control_interlaced"])
	if err != nil {
		return nil, errors.Wrap(err, "vaux source control: interlaced")
	}
	stillField, err := parseBool(fields["vaux_control_still_field_picture"])
	if err != nil {
		return nil, errors.Wrap(err, "vaux source control: still field picture")
	}
	stillCamera, err := parseBool(fields["vaux_control_still_camera_picture"])
	if err != nil {
		return nil, errors.Wrap(err, "vaux source control: still camera picture")
	}
	cp, err := parseCopyProtection(fields["vaux_control_copy_protection"])
	if err != nil {
		return nil, err
	}
	sourceSituation, err := parseHexInt(fields["vaux_control_source_situation"])
	if err != nil {
		return nil, errors.Wrap(err, "vaux source control: source situation")
	}
	inputSource, err := parseHexInt(fields["vaux_control_input_source"])
	if err != nil {
		return nil, errors.Wrap(err, "vaux source control: input source")
	}
	compressionCount, err := parseHexInt(fields["vaux_control_compression_count"])
	if err != nil {
		return nil, errors.Wrap(err, "vaux source control: compression count")
	}
	recStart, err := parseBool(fields["vaux_control_rec_start_point"])
	if err != nil {
		return nil, errors.Wrap(err, "vaux source control: rec start point")
	}
	rm, err := parseAAUXRecordingMode(fields["vaux_control_recording_mode"])
	if err != nil {
		return nil, err
	}
	genre, err := parseHexInt(fields["vaux_control_genre_category"])
	if err != nil {
		return nil, errors.Wrap(err, "vaux source control: genre category")
	}
	reserved, err := parseHexInt(fields["vaux_control_reserved"])
	if err != nil {
		return nil, errors.Wrap(err, "vaux source control: reserved")
	}
	v := VAUXSourceControl{
		FrameField:         frameField,
		FrameChange:        frameChange,
		FirstSecond:        first,
		Interlaced:         interlaced,
		StillFieldPicture:  stillField,
		StillCameraPicture: stillCamera,
		CopyProtection:     cp,
		SourceSituation:    sourceSituation,
		InputSource:        inputSource,
		CompressionCount:   compressionCount,
		RecStartPoint:      recStart,
		RecordingMode:      rm,
	}
	if broadcast != nil {
		v.BroadcastSystem = *broadcast
	}
	if display != nil {
		v.DisplayMode = *display
	}
	if genre != nil {
		v.GenreCategory = *genre
	}
	if reserved != nil {
		v.Reserved = *reserved
	}
	return v, nil
}

func (v VAUXSourceControl) ToText() map[string]string {
	broadcast, display, first := v.BroadcastSystem, v.DisplayMode, v.FirstSecond
	genre, reserved := v.GenreCategory, v.Reserved
	return map[string]string{
		"vaux_control_broadcast_system":    hexInt(&broadcast, 1),
		"vaux_control_display_mode":        hexInt(&display, 1),
		"vaux_control_frame_field":         renderBool(v.FrameField),
		"vaux_control_frame_change":        renderBool(v.FrameChange),
		"vaux_control_first_second":        itoa(first),
		"vaux_control_interlaced":          renderBool(v.Interlaced),
		"vaux_control_still_field_picture": renderBool(v.StillFieldPicture),
		"vaux_control_still_camera_picture": renderBool(v.StillCameraPicture),
		"vaux_control_copy_protection":     v.CopyProtection.String(),
		"vaux_control_source_situation":    optText(v.SourceSituation),
		"vaux_control_input_source":        optText(v.InputSource),
		"vaux_control_compression_count":   optText(v.CompressionCount),
		"vaux_control_rec_start_point":     renderBool(v.RecStartPoint),
		"vaux_control_recording_mode":      v.RecordingMode.String(),
		"vaux_control_genre_category":      hexInt(&genre, 2),
		"vaux_control_reserved":            hexInt(&reserved, 1),
	}
}
