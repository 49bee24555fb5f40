/*
NAME
  text.go - text-projection helpers shared by every pack variant's ToText
  and FromText implementations.

DESCRIPTION
  Mirrors the rendering rules used throughout the original project's
  data_util module: integers render as fixed-width 0x-prefixed hex,
  optional byte sequences render with "__" standing in for unknown bytes,
  and booleans render as the literal strings TRUE/FALSE.

LICENSE
  Copyright (C) 2026 the dvtoolkit authors. All Rights Reserved.

  The Software and all intellectual property rights associated therewith
  are and will remain the exclusive property of the dvtoolkit authors.
*/

package pack

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// hexInt renders an optional integer as fixed-width 0x-prefixed hex. A nil
// value renders as the empty string.
func hexInt(v *int, digits int) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("0x%0*X", digits, *v)
}

// parseHexInt parses the inverse of hexInt. An empty string is a valid
// "absent" value and returns (nil, nil).
func parseHexInt(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	trimmed := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	n, err := strconv.ParseInt(trimmed, 16, 64)
	if err != nil {
		return nil, errors.Wrapf(err, "text: invalid hex integer %q", s)
	}
	v := int(n)
	return &v, nil
}

// hexBytes renders a byte slice as "0x" followed by hex pairs. unknown, if
// non-nil, marks byte indices whose value is not actually known (rendered
// as "__" instead of two hex digits) so an operator can hand-edit the rest
// of a field and leave those bytes untouched on the next write-back.
func hexBytes(b []byte, unknown []bool) string {
	var sb strings.Builder
	sb.WriteString("0x")
	for i, by := range b {
		if unknown != nil && i < len(unknown) && unknown[i] {
			sb.WriteString("__")
			continue
		}
		fmt.Fprintf(&sb, "%02X", by)
	}
	return sb.String()
}

// parseHexBytes parses the inverse of hexBytes. The returned unknown slice
// marks which byte positions were "__" in the input.
func parseHexBytes(s string) (b []byte, unknown []bool, err error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(s)%2 != 0 {
		return nil, nil, errors.Errorf("text: hex byte string %q has odd length", s)
	}
	n := len(s) / 2
	b = make([]byte, n)
	unknown = make([]bool, n)
	for i := 0; i < n; i++ {
		pair := s[i*2 : i*2+2]
		if pair == "__" {
			unknown[i] = true
			continue
		}
		v, err := strconv.ParseUint(pair, 16, 8)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "text: invalid hex byte pair %q", pair)
		}
		b[i] = byte(v)
	}
	return b, unknown, nil
}

// parseBool accepts "TRUE"/"FALSE" case-insensitively (and the empty
// string, which callers interpret per-field as "absent" or "false").
func parseBool(s string) (bool, error) {
	switch strings.ToUpper(s) {
	case "TRUE":
		return true, nil
	case "FALSE", "":
		return false, nil
	default:
		return false, errors.Errorf("text: invalid boolean %q", s)
	}
}

func itoa(v int) string { return strconv.Itoa(v) }

func renderBool(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}
