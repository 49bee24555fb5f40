/*
NAME
  row.go - lossless text projection of FrameData, the row format consumed
  and produced by the CSV codec.

DESCRIPTION
  Mirrors pack.ToText's conventions: integers render as fixed-width
  0x-prefixed hex (frame_number alone is plain decimal), enums render by symbol name, booleans as TRUE/FALSE, and
  the empty string means absent. sc_pack_types_{ch}_{seq} is a 24-nibble
  hex string (12 sync blocks' worth of pack-tag nibbles per sequence), with
  "__" standing in for an unchanged/unknown nibble pair so a hand-edited
  row can leave untouched columns alone on write-back.

LICENSE
  Copyright (C) 2026 the dvtoolkit authors. All Rights Reserved.

  The Software and all intellectual property rights associated therewith
  are and will remain the exclusive property of the dvtoolkit authors.
*/

package dv

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/dvtoolkit/difcodec/container/dv/pack"
)

// ToRow renders fd into the stable field-name -> string vocabulary used by
// the CSV codec.
func (fd FrameData) ToRow() map[string]string {
	row := map[string]string{
		"frame_number":               strconv.Itoa(fd.FrameNumber),
		"arbitrary_bits":             renderRowBool(fd.ArbitraryBits),
		"h_track_application_id":     hexRow(fd.HeaderTrackAppID, 1),
		"h_audio_application_id":     hexRow(fd.HeaderAudioAppID, 1),
		"h_video_application_id":     hexRow(fd.HeaderVideoAppID, 1),
		"h_subcode_application_id":   hexRow(fd.HeaderSubcodeAppID, 1),
		"sc_track_application_id":    hexRow(fd.SubcodeTrackAppID, 1),
		"sc_subcode_application_id":  hexRow(fd.SubcodeSubcodeAppID, 1),
	}

	for ch := range fd.SubcodePackTypes {
		for seq := range fd.SubcodePackTypes[ch] {
			key := fmt.Sprintf("sc_pack_types_%d_%d", ch, seq)
			row[key] = packTypesToHex(fd.SubcodePackTypes[ch][seq])
		}
	}

	if fd.Timecode != nil {
		for k, v := range fd.Timecode.ToText() {
			row["sc_"+k] = v
		}
	}
	if fd.BinaryGroup != nil {
		for k, v := range fd.BinaryGroup.ToText() {
			row["sc_"+k] = v
		}
	}
	if fd.RecDate != nil {
		for k, v := range fd.RecDate.ToText() {
			row["sc_"+k] = v
		}
	}
	if fd.RecTime != nil {
		row["sc_recording_time"] = fd.RecTime.ToText()["recording_time"]
		row["sc_recording_time_reserved"] = fd.RecTime.ToText()["recording_time_reserved"]
	}

	return row
}

func packTypesToHex(types [SubcodeSyncBlocks * subcodesPerSequence]*byte) string {
	s := ""
	for _, t := range types {
		if t == nil {
			s += "__"
			continue
		}
		s += fmt.Sprintf("%02X", *t)
	}
	return s
}

// parsePackTypesHex parses a 24-nibble hex string (12 slots, 2 hex digits
// each) with "__" standing in for a slot left unknown/unchanged.
func parsePackTypesHex(s string) ([SubcodeSyncBlocks*subcodesPerSequence]*byte, error) {
	var out [SubcodeSyncBlocks * subcodesPerSequence]*byte
	want := len(out) * 2
	if len(s) != want {
		return out, errors.Errorf("row: pack types string has length %d, want %d", len(s), want)
	}
	for i := range out {
		pair := s[i*2 : i*2+2]
		if pair == "__" {
			continue
		}
		v, err := strconv.ParseUint(pair, 16, 8)
		if err != nil {
			return out, errors.Wrapf(err, "row: invalid pack type nibble pair %q", pair)
		}
		b := byte(v)
		out[i] = &b
	}
	return out, nil
}

func hexRow(v int, digits int) string {
	return fmt.Sprintf("0x%0*X", digits, v)
}

func renderRowBool(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

// FrameDataFromRow reconstructs the metadata-only projection of one row: the
// scalar header/subcode fields, the subcode_pack_types layout, and whichever
// of the four standardized packs the row carries. The result has no decoded
// blocks (its private channels field is nil) and so cannot be encoded
// directly; ApplyRow merges edits like these into a FrameData that was
// produced by DecodeFrame. A malformed cell is reported as a
// *TextParseError.
func FrameDataFromRow(row map[string]string) (FrameData, error) {
	fd, err := frameDataFromRow(row)
	if err != nil {
		rowNum := -1
		if n, convErr := strconv.Atoi(row["frame_number"]); convErr == nil {
			rowNum = n
		}
		return FrameData{}, &TextParseError{Row: rowNum, cause: err}
	}
	return fd, nil
}

func frameDataFromRow(row map[string]string) (FrameData, error) {
	frameNumber, err := strconv.Atoi(row["frame_number"])
	if err != nil {
		return FrameData{}, errors.Wrap(err, "row: frame_number")
	}
	arbitrary, err := parseRowBool(row["arbitrary_bits"])
	if err != nil {
		return FrameData{}, errors.Wrap(err, "row: arbitrary_bits")
	}

	fd := FrameData{FrameNumber: frameNumber, ArbitraryBits: arbitrary}

	for field, dst := range map[string]*int{
		"h_track_application_id":    &fd.HeaderTrackAppID,
		"h_audio_application_id":    &fd.HeaderAudioAppID,
		"h_video_application_id":    &fd.HeaderVideoAppID,
		"h_subcode_application_id":  &fd.HeaderSubcodeAppID,
		"sc_track_application_id":   &fd.SubcodeTrackAppID,
		"sc_subcode_application_id": &fd.SubcodeSubcodeAppID,
	} {
		v, err := parseRowHex(row[field])
		if err != nil {
			return FrameData{}, errors.Wrapf(err, "row: %s", field)
		}
		*dst = v
	}

	channels, maxSeq := columnsImplySystem(row)
	if channels > 0 {
		fd.SubcodePackTypes = make([][][SubcodeSyncBlocks * subcodesPerSequence]*byte, channels)
		for ch := 0; ch < channels; ch++ {
			fd.SubcodePackTypes[ch] = make([][SubcodeSyncBlocks * subcodesPerSequence]*byte, maxSeq+1)
			for seq := 0; seq <= maxSeq; seq++ {
				key := fmt.Sprintf("sc_pack_types_%d_%d", ch, seq)
				s, present := row[key]
				if !present || s == "" {
					continue
				}
				types, err := parsePackTypesHex(s)
				if err != nil {
					return FrameData{}, errors.Wrapf(err, "row: %s", key)
				}
				fd.SubcodePackTypes[ch][seq] = types
			}
		}
	}

	if row["sc_smpte_timecode"] != "" {
		p, err := pack.FromText(pack.TypeTitleTimecode, stripPrefix(row, "sc_"))
		if err != nil {
			return FrameData{}, errors.Wrap(err, "row: timecode")
		}
		t := p.(pack.TitleTimecode)
		fd.Timecode = &t
	}
	if row["sc_smpte_binary_group"] != "" {
		p, err := pack.FromText(pack.TypeTitleBinaryGroup, stripPrefix(row, "sc_"))
		if err != nil {
			return FrameData{}, errors.Wrap(err, "row: binary group")
		}
		g := p.(pack.TitleBinaryGroup)
		fd.BinaryGroup = &g
	}
	if row["sc_rec_date_reserved"] != "" {
		p, err := pack.FromText(pack.TypeAAUXRecDate, stripPrefix(row, "sc_"))
		if err != nil {
			return FrameData{}, errors.Wrap(err, "row: recording date")
		}
		d := p.(pack.RecordingDate)
		fd.RecDate = &d
	}
	if row["sc_recording_time_reserved"] != "" {
		p, err := pack.FromText(pack.TypeAAUXRecTime, stripPrefix(row, "sc_"))
		if err != nil {
			return FrameData{}, errors.Wrap(err, "row: recording time")
		}
		tm := p.(pack.RecordingTime)
		fd.RecTime = &tm
	}

	return fd, nil
}

// stripPrefix returns the subset of row whose keys start with prefix, with
// the prefix removed, for handing to a pack's FromText.
func stripPrefix(row map[string]string, prefix string) map[string]string {
	out := make(map[string]string, len(row))
	for k, v := range row {
		if strings.HasPrefix(k, prefix) {
			out[strings.TrimPrefix(k, prefix)] = v
		}
	}
	return out
}

// ApplyRow patches the standardized subcode packs and scalar metadata fields
// carried by edited into a FrameData previously produced by DecodeFrame,
// replacing the corresponding packs identically across every channel and
// sequence (the standard mandates they repeat). It does not touch video or
// audio payloads. The receiver's Encode method can be called on the result.
func (fd FrameData) ApplyRow(edited FrameData) (FrameData, error) {
	if fd.channels == nil {
		return FrameData{}, errors.New("row: cannot apply edits to a FrameData with no decoded blocks")
	}

	fd.ArbitraryBits = edited.ArbitraryBits
	fd.HeaderTrackAppID = edited.HeaderTrackAppID
	fd.HeaderAudioAppID = edited.HeaderAudioAppID
	fd.HeaderVideoAppID = edited.HeaderVideoAppID
	fd.HeaderSubcodeAppID = edited.HeaderSubcodeAppID
	fd.SubcodeTrackAppID = edited.SubcodeTrackAppID
	fd.SubcodeSubcodeAppID = edited.SubcodeSubcodeAppID
	fd.Timecode = edited.Timecode
	fd.BinaryGroup = edited.BinaryGroup
	fd.RecDate = edited.RecDate
	fd.RecTime = edited.RecTime

	for ch := range fd.channels {
		for seq := range fd.channels[ch] {
			cs := &fd.channels[ch][seq]
			cs.Header.Arbitrary = fd.ArbitraryBits
			cs.Header.APT = fd.HeaderTrackAppID
			cs.Header.AP1 = fd.HeaderAudioAppID
			cs.Header.AP2 = fd.HeaderVideoAppID
			cs.Header.AP3 = fd.HeaderSubcodeAppID
			if len(cs.Subcodes[0].Syncs) > 0 {
				id1 := &cs.Subcodes[0].Syncs[0].ID1
				*id1 = *id1&^0x77 | byte(fd.SubcodeTrackAppID&0x07)<<4 | byte(fd.SubcodeSubcodeAppID&0x07)
			}
			for i := range cs.Subcodes {
				for j := range cs.Subcodes[i].Syncs {
					s := &cs.Subcodes[i].Syncs[j]
					switch s.Pack.(type) {
					case pack.TitleTimecode:
						if fd.Timecode != nil {
							s.Pack = *fd.Timecode
						}
					case pack.TitleBinaryGroup:
						if fd.BinaryGroup != nil {
							s.Pack = *fd.BinaryGroup
						}
					case pack.RecordingDate:
						if fd.RecDate != nil {
							s.Pack = *fd.RecDate
						}
					case pack.RecordingTime:
						if fd.RecTime != nil {
							s.Pack = *fd.RecTime
						}
					}
				}
			}
		}
	}
	return fd, nil
}

func parseRowBool(s string) (bool, error) {
	switch strings.ToUpper(s) {
	case "TRUE":
		return true, nil
	case "FALSE", "":
		return false, nil
	default:
		return false, errors.Errorf("row: invalid boolean %q", s)
	}
}

// parseRowHex parses a "0xNN"-style field into an int, treating an empty
// string as zero.
func parseRowHex(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	trimmed := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	v, err := strconv.ParseInt(trimmed, 16, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "row: invalid hex integer %q", s)
	}
	return int(v), nil
}

// columnsImplySystem inspects which sc_pack_types_{ch}_{seq} columns are
// present in row and infers the frame descriptor's channel/system shape:
// sequences present up to 9 imply NTSC, up to 11 imply PAL; a channel-1
// column present implies a dual-channel recording.
func columnsImplySystem(row map[string]string) (channels, maxSeq int) {
	for key := range row {
		var ch, seq int
		if _, err := fmt.Sscanf(key, "sc_pack_types_%d_%d", &ch, &seq); err == nil {
			if ch+1 > channels {
				channels = ch + 1
			}
			if seq > maxSeq {
				maxSeq = seq
			}
		}
	}
	return channels, maxSeq
}
