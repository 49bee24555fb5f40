/*
NAME
  frame.go - assembles and disassembles one frame's worth of DIF blocks.

DESCRIPTION
  A frame is channels * dif_sequences DIF sequences, each a fixed 150-block
  transmission order: 1 Header, 2 Subcode, 3 VAUX, 9 Audio, 135 Video. This
  file validates that order while decoding, cross-checks the invariants
  that must hold across every block in a frame (arbitrary bit, application
  IDs), and extracts the subcode_pack_types array and the four
  timecode/date/time packs the text row codec needs.

LICENSE
  Copyright (C) 2026 the dvtoolkit authors. All Rights Reserved.

  The Software and all intellectual property rights associated therewith
  are and will remain the exclusive property of the dvtoolkit authors.
*/

package dv

import (
	"github.com/pkg/errors"

	"github.com/dvtoolkit/difcodec/container/dv/pack"
	"github.com/dvtoolkit/difcodec/container/dv/system"
)

const (
	headersPerSequence  = 1
	subcodesPerSequence = 2
	vauxesPerSequence   = 3
	audiosPerSequence   = 9
	videosPerSequence   = 135
)

// FrameData is the fully decoded content of one frame: the structural
// fields shared across every channel/sequence, plus the per-sequence
// subcode pack-tag layout and the four standardized timecode/date/time
// packs.
type FrameData struct {
	FrameNumber int
	Desc        system.FrameDescriptor

	ArbitraryBits bool

	HeaderTrackAppID   int
	HeaderAudioAppID   int
	HeaderVideoAppID   int
	HeaderSubcodeAppID int

	SubcodeTrackAppID   int
	SubcodeSubcodeAppID int

	// SubcodePackTypes[channel][sequence][ssyb] is the pack tag byte decoded
	// at that subcode sync-block slot. A nil entry means "unknown/don't-care":
	// DecodeFrame always populates every slot; the text row codec may leave
	// some nil when a hand-edited row uses the "__" placeholder for a column
	// it doesn't want to change.
	SubcodePackTypes [][][SubcodeSyncBlocks * subcodesPerSequence]*byte

	Timecode     *pack.TitleTimecode
	BinaryGroup  *pack.TitleBinaryGroup
	RecDate      *pack.RecordingDate
	RecTime      *pack.RecordingTime

	channels [][]channelSequence
}

type channelSequence struct {
	Header   HeaderBlock
	Subcodes [subcodesPerSequence]SubcodeBlock
	VAUXes   [vauxesPerSequence]VAUXBlock
	Audios   [audiosPerSequence]AudioBlock
	Videos   [videosPerSequence]VideoBlock
}

// DecodeFrame parses one frame's raw bytes (desc.FrameBytes long) into
// FrameData. Block order is validated strictly; individual pack decode
// rejections inside blocks degrade to absent slots rather than aborting
// the frame, per pack.Decode's contract. Any structural failure is reported
// as a *DecodeError naming this frame.
func DecodeFrame(frameNumber int, raw []byte, desc system.FrameDescriptor) (FrameData, error) {
	fd, err := decodeFrame(frameNumber, raw, desc)
	if err != nil {
		return FrameData{}, &DecodeError{Frame: frameNumber, cause: err}
	}
	return fd, nil
}

func decodeFrame(frameNumber int, raw []byte, desc system.FrameDescriptor) (FrameData, error) {
	if len(raw) != desc.FrameBytes {
		return FrameData{}, errors.Errorf("frame %d: got %d bytes, want %d", frameNumber, len(raw), desc.FrameBytes)
	}

	fd := FrameData{
		FrameNumber: frameNumber,
		Desc:        desc,
	}
	fd.channels = make([][]channelSequence, desc.Channels)
	fd.SubcodePackTypes = make([][][SubcodeSyncBlocks * subcodesPerSequence]*byte, desc.Channels)

	haveArbitrary := false
	haveAppIDs := false

	off := 0
	for ch := 0; ch < desc.Channels; ch++ {
		fd.channels[ch] = make([]channelSequence, desc.DIFSequences)
		fd.SubcodePackTypes[ch] = make([][SubcodeSyncBlocks * subcodesPerSequence]*byte, desc.DIFSequences)
		for seq := 0; seq < desc.DIFSequences; seq++ {
			cs := channelSequence{}

			var hraw [80]byte
			copy(hraw[:], raw[off:off+80])
			h, err := DecodeHeaderBlock(hraw, desc)
			if err != nil {
				return FrameData{}, errors.Wrapf(err, "frame %d: channel %d sequence %d header", frameNumber, ch, seq)
			}
			if err := checkBlockPosition(h.ID, seq, 0); err != nil {
				return FrameData{}, errors.Wrapf(err, "frame %d", frameNumber)
			}
			cs.Header = h
			off += 80

			if !haveArbitrary {
				fd.ArbitraryBits = h.Arbitrary
				fd.HeaderTrackAppID = h.APT
				fd.HeaderAudioAppID = h.AP1
				fd.HeaderVideoAppID = h.AP2
				fd.HeaderSubcodeAppID = h.AP3
				haveArbitrary = true
			} else if h.Arbitrary != fd.ArbitraryBits {
				return FrameData{}, errors.Errorf("frame %d: channel %d sequence %d arbitrary bit mismatch", frameNumber, ch, seq)
			} else if h.APT != fd.HeaderTrackAppID || h.AP1 != fd.HeaderAudioAppID || h.AP2 != fd.HeaderVideoAppID || h.AP3 != fd.HeaderSubcodeAppID {
				return FrameData{}, errors.Errorf("frame %d: channel %d sequence %d application-id mismatch", frameNumber, ch, seq)
			}

			for i := 0; i < subcodesPerSequence; i++ {
				var sraw [80]byte
				copy(sraw[:], raw[off:off+80])
				sb, err := DecodeSubcodeBlock(sraw, desc)
				if err != nil {
					return FrameData{}, errors.Wrapf(err, "frame %d: channel %d sequence %d subcode %d", frameNumber, ch, seq, i)
				}
				if err := checkBlockPosition(sb.ID, seq, i); err != nil {
					return FrameData{}, errors.Wrapf(err, "frame %d", frameNumber)
				}
				cs.Subcodes[i] = sb
				for j, s := range sb.Syncs {
					tag := byte(s.Pack.Type())
					fd.SubcodePackTypes[ch][seq][i*SubcodeSyncBlocks+j] = &tag
				}
				off += 80
			}

			if trk, sub, ok := subcodeAppIDs(cs.Subcodes); ok {
				if !haveAppIDs {
					fd.SubcodeTrackAppID, fd.SubcodeSubcodeAppID = trk, sub
					haveAppIDs = true
				} else if fd.SubcodeTrackAppID != trk || fd.SubcodeSubcodeAppID != sub {
					return FrameData{}, errors.Errorf("frame %d: channel %d sequence %d subcode application-id mismatch", frameNumber, ch, seq)
				}
			}

			for i := 0; i < vauxesPerSequence; i++ {
				var vraw [80]byte
				copy(vraw[:], raw[off:off+80])
				vb, err := DecodeVAUXBlock(vraw, desc)
				if err != nil {
					return FrameData{}, errors.Wrapf(err, "frame %d: channel %d sequence %d vaux %d", frameNumber, ch, seq, i)
				}
				if err := checkBlockPosition(vb.ID, seq, i); err != nil {
					return FrameData{}, errors.Wrapf(err, "frame %d", frameNumber)
				}
				cs.VAUXes[i] = vb
				off += 80
			}

			for i := 0; i < audiosPerSequence; i++ {
				var araw [80]byte
				copy(araw[:], raw[off:off+80])
				ab, err := DecodeAudioBlock(araw, desc)
				if err != nil {
					return FrameData{}, errors.Wrapf(err, "frame %d: channel %d sequence %d audio %d", frameNumber, ch, seq, i)
				}
				if err := checkBlockPosition(ab.ID, seq, i); err != nil {
					return FrameData{}, errors.Wrapf(err, "frame %d", frameNumber)
				}
				cs.Audios[i] = ab
				off += 80
			}

			for i := 0; i < videosPerSequence; i++ {
				var vraw [80]byte
				copy(vraw[:], raw[off:off+80])
				vb, err := DecodeVideoBlock(vraw, desc)
				if err != nil {
					return FrameData{}, errors.Wrapf(err, "frame %d: channel %d sequence %d video %d", frameNumber, ch, seq, i)
				}
				if err := checkBlockPosition(vb.ID, seq, i); err != nil {
					return FrameData{}, errors.Wrapf(err, "frame %d", frameNumber)
				}
				cs.Videos[i] = vb
				off += 80
			}

			fd.channels[ch][seq] = cs
		}
	}

	locateStandardPacks(&fd)
	return fd, nil
}

// checkBlockPosition validates a decoded BlockID's (sequence, dif_block)
// against the position implied by iterating blocks in fixed transmission
// order within one DIF sequence.
func checkBlockPosition(id BlockID, seq, dbn int) error {
	if id.DIFSequence != seq {
		return errors.Errorf("block at sequence %d carries dif_sequence %d", seq, id.DIFSequence)
	}
	if id.DIFBlock != dbn {
		return errors.Errorf("%v block in sequence %d carries dif_block %d, want %d", id.Section, seq, id.DIFBlock, dbn)
	}
	return nil
}

// subcodeAppIDs extracts the track and subcode application IDs from the ID1
// byte of the first sync block of the first subcode block; the other sync
// blocks are not consulted. ok is false only when that block has no syncs.
func subcodeAppIDs(subs [subcodesPerSequence]SubcodeBlock) (track, subcode int, ok bool) {
	if len(subs[0].Syncs) == 0 {
		return 0, 0, false
	}
	id1 := subs[0].Syncs[0].ID1
	return int(id1>>4) & 0x07, int(id1) & 0x07, true
}

// locateStandardPacks finds the TitleTimecode/TitleBinaryGroup/RecordingDate
// /RecordingTime packs at their standardized subcode sync-block positions
// (the first channel's first sequence; the standard mandates they repeat
// identically across channels and sequences within a frame).
func locateStandardPacks(fd *FrameData) {
	if len(fd.channels) == 0 || len(fd.channels[0]) == 0 {
		return
	}
	cs := fd.channels[0][0]
	for _, sb := range cs.Subcodes {
		for _, s := range sb.Syncs {
			switch p := s.Pack.(type) {
			case pack.TitleTimecode:
				v := p
				fd.Timecode = &v
			case pack.TitleBinaryGroup:
				v := p
				fd.BinaryGroup = &v
			case pack.RecordingDate:
				v := p
				fd.RecDate = &v
			case pack.RecordingTime:
				v := p
				fd.RecTime = &v
			}
		}
	}
}

// Encode serializes fd back to its raw frame bytes. It fails if fd was
// never populated by DecodeFrame (channels is nil). A FrameData built by
// FrameDataFromRow has no decoded blocks either; its edits reach the wire
// through ApplyRow onto a decoded frame.
func (fd FrameData) Encode() ([]byte, error) {
	if fd.channels == nil {
		return nil, errors.New("frame: cannot encode a FrameData with no decoded blocks")
	}
	raw := make([]byte, 0, fd.Desc.FrameBytes)
	for ch := range fd.channels {
		for seq := range fd.channels[ch] {
			cs := fd.channels[ch][seq]
			hraw, err := cs.Header.Encode(fd.Desc)
			if err != nil {
				return nil, errors.Wrapf(err, "frame %d: channel %d sequence %d header", fd.FrameNumber, ch, seq)
			}
			raw = append(raw, hraw[:]...)
			for i, sb := range cs.Subcodes {
				sraw, err := sb.Encode(fd.Desc)
				if err != nil {
					return nil, errors.Wrapf(err, "frame %d: channel %d sequence %d subcode %d", fd.FrameNumber, ch, seq, i)
				}
				raw = append(raw, sraw[:]...)
			}
			for i, vb := range cs.VAUXes {
				vraw, err := vb.Encode(fd.Desc)
				if err != nil {
					return nil, errors.Wrapf(err, "frame %d: channel %d sequence %d vaux %d", fd.FrameNumber, ch, seq, i)
				}
				raw = append(raw, vraw[:]...)
			}
			for i, ab := range cs.Audios {
				araw, err := ab.Encode(fd.Desc)
				if err != nil {
					return nil, errors.Wrapf(err, "frame %d: channel %d sequence %d audio %d", fd.FrameNumber, ch, seq, i)
				}
				raw = append(raw, araw[:]...)
			}
			for i, vb := range cs.Videos {
				vraw, err := vb.Encode(fd.Desc)
				if err != nil {
					return nil, errors.Wrapf(err, "frame %d: channel %d sequence %d video %d", fd.FrameNumber, ch, seq, i)
				}
				raw = append(raw, vraw[:]...)
			}
		}
	}
	return raw, nil
}
