/*
NAME
  pack.go - defines the Pack sum type and the dispatch table used to decode
  and encode the 5-byte typed records embedded in DV subcode, VAUX and AAUX
  regions.

DESCRIPTION
  A DV pack is a 5-byte record whose first byte (the "header byte" or tag)
  selects one of roughly a dozen variants defined by IEC 61834-2 and
  SMPTE 306M. Each variant implements decoding, validation, re-encoding, and
  a text projection used by the CSV round trip; RecordingTime's projection
  does not carry a partially present time (see time.go).

LICENSE
  Copyright (C) 2026 the dvtoolkit authors. All Rights Reserved.

  The Software and all intellectual property rights associated therewith
  are and will remain the exclusive property of the dvtoolkit authors.
*/

// Package pack implements the DV pack layer: the ~13 typed 5-byte records
// that appear inside subcode, VAUX and AAUX regions of a DV DIF block.
package pack

import (
	"github.com/pkg/errors"

	"github.com/dvtoolkit/difcodec/container/dv/system"
)

// Size is the fixed length in bytes of every pack.
const Size = 5

// Type identifies a pack variant by its leading header byte.
type Type byte

// Defined pack header bytes. Values not listed here decode to Unknown.
const (
	TypeTitleTimecode    Type = 0x13
	TypeTitleBinaryGroup Type = 0x14
	TypeAAUXSource       Type = 0x50
	TypeAAUXSourceCtrl   Type = 0x51
	TypeAAUXRecDate      Type = 0x52
	TypeAAUXRecTime      Type = 0x53
	TypeAAUXBinaryGroup  Type = 0x54
	TypeVAUXSourceCtrl   Type = 0x61
	TypeVAUXRecDate      Type = 0x62
	TypeVAUXRecTime      Type = 0x63
	TypeVAUXBinaryGroup  Type = 0x64
	TypeCameraShutter    Type = 0x7F
	TypeNoInfo           Type = 0xFF
)

// ErrRejected is returned (wrapped) by a variant decoder when the payload's
// invariants are violated badly enough that the pack slot should be treated
// as absent rather than as a hard decode failure. Frame-level parsing
// continues in that case; see the Block and Frame aggregator.
var ErrRejected = errors.New("pack: rejected")

// Pack is the interface every variant implements. Implementations are
// immutable value types.
type Pack interface {
	// Type returns the variant's header byte.
	Type() Type
	// Encode validates p against sys and serializes it to 5 bytes.
	Encode(sys system.System) ([5]byte, error)
	// Validate reports the first structural/semantic problem with p, or nil.
	Validate(sys system.System) error
	// ToText renders p's fields into the stable name->string vocabulary
	// used by the CSV row codec.
	ToText() map[string]string
}

// decodeFunc decodes a 5-byte payload (tag included) into a Pack, or
// returns (nil, ErrRejected)-wrapped error to signal "treat as absent", or
// a non-ErrRejected error for a structural problem.
type decodeFunc func(b [5]byte, sys system.System) (Pack, error)

// fromTextFunc constructs a Pack of a known variant from its text fields.
type fromTextFunc func(fields map[string]string) (Pack, error)

var decoders = map[Type]decodeFunc{
	TypeTitleTimecode:    decodeTitleTimecode,
	TypeTitleBinaryGroup: decodeTitleBinaryGroup,
	TypeAAUXSource:       decodeAAUXSource,
	TypeAAUXSourceCtrl:   decodeAAUXSourceControl,
	TypeAAUXRecDate:      decodeAAUXRecordingDate,
	TypeAAUXRecTime:      decodeAAUXRecordingTime,
	TypeAAUXBinaryGroup:  decodeAAUXBinaryGroup,
	TypeVAUXSourceCtrl:   decodeVAUXSourceControl,
	TypeVAUXRecDate:      decodeVAUXRecordingDate,
	TypeVAUXRecTime:      decodeVAUXRecordingTime,
	TypeVAUXBinaryGroup:  decodeVAUXBinaryGroup,
	TypeCameraShutter:    decodeCameraShutter,
}

var fromTexters = map[Type]fromTextFunc{
	TypeTitleTimecode:    fromTextTitleTimecode,
	TypeTitleBinaryGroup: fromTextTitleBinaryGroup,
	TypeAAUXSource:       fromTextAAUXSource,
	TypeAAUXSourceCtrl:   fromTextAAUXSourceControl,
	TypeAAUXRecDate:      fromTextAAUXRecordingDate,
	TypeAAUXRecTime:      fromTextAAUXRecordingTime,
	TypeAAUXBinaryGroup:  fromTextAAUXBinaryGroup,
	TypeVAUXSourceCtrl:   fromTextVAUXSourceControl,
	TypeVAUXRecDate:      fromTextVAUXRecordingDate,
	TypeVAUXRecTime:      fromTextVAUXRecordingTime,
	TypeVAUXBinaryGroup:  fromTextVAUXBinaryGroup,
	TypeCameraShutter:    fromTextCameraShutter,
	TypeNoInfo:           fromTextNoInfo,
}

// FromText reconstructs a Pack of the variant named by tag from the field
// vocabulary produced by that variant's ToText. Unknown tags are
// reconstructed from their "raw" hex field.
func FromText(tag Type, fields map[string]string) (Pack, error) {
	if tag == TypeNoInfo {
		return NoInfo{}, nil
	}
	f, known := fromTexters[tag]
	if !known {
		return fromTextUnknown(tag, fields)
	}
	p, err := f(fields)
	if err != nil {
		return nil, errors.Wrapf(err, "pack: parsing text for tag 0x%02X", byte(tag))
	}
	return p, nil
}

func fromTextNoInfo(map[string]string) (Pack, error) { return NoInfo{}, nil }

func fromTextUnknown(tag Type, fields map[string]string) (Pack, error) {
	raw, _, err := parseHexBytes(fields["raw"])
	if err != nil {
		return nil, errors.Wrap(err, "unknown pack")
	}
	if len(raw) != Size {
		return nil, errors.Errorf("unknown pack: raw field has %d bytes, want %d", len(raw), Size)
	}
	var b [5]byte
	copy(b[:], raw)
	return NewUnknown(b), nil
}

// Decode dispatches on b[0] to the matching variant decoder. 0xFF always
// short-circuits to NoInfo regardless of the remaining payload. Tags with
// no registered decoder, and tags whose decoder rejects the payload,
// produce Unknown/absent per the rules documented on decodeFunc.
//
// The second return value is false exactly when the slot should be treated
// as absent (caller keeps parsing); err is non-nil only for a genuine
// structural problem the caller should treat as fatal.
func Decode(b [5]byte, sys system.System) (p Pack, ok bool, err error) {
	tag := Type(b[0])
	if tag == TypeNoInfo {
		return NoInfo{}, true, nil
	}
	dec, known := decoders[tag]
	if !known {
		return Unknown{tag: tag, raw: b}, true, nil
	}
	p, err = dec(b, sys)
	if err != nil {
		if errors.Cause(err) == ErrRejected {
			return nil, false, nil
		}
		return nil, false, errors.Wrapf(err, "pack: decoding tag 0x%02X", byte(tag))
	}
	return p, true, nil
}

// Encode serializes p, validating it against sys first. A failed
// validation is reported as a *ValidationError.
func Encode(p Pack, sys system.System) ([5]byte, error) {
	if err := p.Validate(sys); err != nil {
		return [5]byte{}, &ValidationError{cause: err}
	}
	return p.Encode(sys)
}

// ValidationError reports that a pack's fields violate the standard's
// presence or range rules at encode time. Named fatal-for-encode in the
// error taxonomy: the caller must fix the offending field before retrying.
type ValidationError struct {
	cause error
}

func (e *ValidationError) Error() string { return e.cause.Error() }
func (e *ValidationError) Cause() error  { return e.cause }
func (e *ValidationError) Unwrap() error { return e.cause }

// NoInfo is the canonical "nothing recorded" pack. Its decode always
// succeeds regardless of payload and its encode always normalizes to
// FF FF FF FF FF, per spec.
type NoInfo struct{}

func (NoInfo) Type() Type { return TypeNoInfo }

func (NoInfo) Validate(system.System) error { return nil }

func (NoInfo) Encode(system.System) ([5]byte, error) {
	return [5]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF}, nil
}

func (NoInfo) ToText() map[string]string {
	return map[string]string{}
}

// Unknown is an opaque pack whose tag this module does not recognize. It
// round-trips its raw bytes verbatim.
type Unknown struct {
	tag Type
	raw [5]byte
}

func NewUnknown(raw [5]byte) Unknown { return Unknown{tag: Type(raw[0]), raw: raw} }

func (u Unknown) Type() Type { return u.tag }

func (u Unknown) Validate(system.System) error { return nil }

func (u Unknown) Encode(system.System) ([5]byte, error) { return u.raw, nil }

func (u Unknown) ToText() map[string]string {
	return map[string]string{"raw": hexBytes(u.raw[:], nil)}
}
