/*
NAME
  stream.go - reads a raw DV file as a sequence of frames.

DESCRIPTION
  A raw DV file is frame_count concatenated frame_bytes-long frames (spec
  §6.1). ReadFrameData walks them in order, decoding each with DecodeFrame.
  It takes a context.Context purely to let a caller cancel a long read
  between frames; frame decoding itself is a pure, non-blocking function
  and never touches ctx.

LICENSE
  Copyright (C) 2026 the dvtoolkit authors. All Rights Reserved.

  The Software and all intellectual property rights associated therewith
  are and will remain the exclusive property of the dvtoolkit authors.
*/

package dv

import (
	"context"
	"io"

	"github.com/pkg/errors"

	"github.com/dvtoolkit/difcodec/container/dv/system"
)

// ReadFrameData reads every frame from r, decoding each against desc, until
// EOF. ctx is checked between frames so a caller can cancel a read over a
// large file without waiting for it to finish.
func ReadFrameData(ctx context.Context, r io.Reader, desc system.FrameDescriptor) ([]FrameData, error) {
	var frames []FrameData
	buf := make([]byte, desc.FrameBytes)
	for frameNumber := 0; ; frameNumber++ {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "frame stream: cancelled")
		}
		_, err := io.ReadFull(r, buf)
		if err == io.EOF {
			return frames, nil
		}
		if err == io.ErrUnexpectedEOF {
			return nil, errors.Errorf("frame stream: frame %d is truncated", frameNumber)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "frame stream: reading frame %d", frameNumber)
		}
		fd, err := DecodeFrame(frameNumber, buf, desc)
		if err != nil {
			return nil, err
		}
		frames = append(frames, fd)
	}
}

// WriteFrameData encodes every frame in order and writes the concatenated
// raw bytes to w.
func WriteFrameData(w io.Writer, frames []FrameData) error {
	for _, fd := range frames {
		raw, err := fd.Encode()
		if err != nil {
			return err
		}
		if _, err := w.Write(raw); err != nil {
			return errors.Wrapf(err, "frame stream: writing frame %d", fd.FrameNumber)
		}
	}
	return nil
}
