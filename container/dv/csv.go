/*
NAME
  csv.go - CSV read/write surface: one header row plus one row per frame,
  ordered by frame_number.

DESCRIPTION
  Thin wrapper around the standard library's encoding/csv, matching
  write_frame_data_csv and read_frame_data_csv. No third-party CSV library
  exists anywhere in the retrieval pack (the dependency survey covers
  container/transport/storage formats, not flat tabular text), so this one
  component is stdlib by necessity; see DESIGN.md.

LICENSE
  Copyright (C) 2026 the dvtoolkit authors. All Rights Reserved.

  The Software and all intellectual property rights associated therewith
  are and will remain the exclusive property of the dvtoolkit authors.
*/

package dv

import (
	"encoding/csv"
	"io"
	"sort"

	"github.com/pkg/errors"
)

// WriteFrameDataCSV writes one header row followed by one row per frame in
// frames, in ascending frame_number order.
func WriteFrameDataCSV(w io.Writer, frames []FrameData) error {
	frames = append([]FrameData(nil), frames...)
	sort.SliceStable(frames, func(i, j int) bool { return frames[i].FrameNumber < frames[j].FrameNumber })
	rows := make([]map[string]string, len(frames))
	columns := map[string]bool{}
	for i, fd := range frames {
		rows[i] = fd.ToRow()
		for k := range rows[i] {
			columns[k] = true
		}
	}

	header := make([]string, 0, len(columns))
	for k := range columns {
		header = append(header, k)
	}
	sort.Strings(header)

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return errors.Wrap(err, "csv: writing header row")
	}
	for i, row := range rows {
		record := make([]string, len(header))
		for j, col := range header {
			record[j] = row[col]
		}
		if err := cw.Write(record); err != nil {
			return errors.Wrapf(err, "csv: writing row %d", i)
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "csv: flushing writer")
}

// ReadFrameDataCSV parses rows written by WriteFrameDataCSV back into
// metadata-only FrameData values, keyed by frame_number order in the file.
// Each result's decoded blocks are absent (as with FrameDataFromRow);
// callers rebuilding raw DV bytes from edited rows call ApplyRow on a
// FrameData obtained from DecodeFrame.
func ReadFrameDataCSV(r io.Reader) ([]FrameData, error) {
	rows, err := readFrameDataRows(r)
	if err != nil {
		return nil, err
	}
	frames := make([]FrameData, 0, len(rows))
	for _, row := range rows {
		fd, err := FrameDataFromRow(row)
		if err != nil {
			return nil, err
		}
		frames = append(frames, fd)
	}
	return frames, nil
}

// readFrameDataRows parses rows written by WriteFrameDataCSV into raw text
// rows, keyed by the header's column names.
func readFrameDataRows(r io.Reader) ([]map[string]string, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "csv: reading records")
	}
	if len(records) == 0 {
		return nil, nil
	}
	header := records[0]
	rows := make([]map[string]string, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) != len(header) {
			return nil, errors.Errorf("csv: row %d has %d fields, want %d", i, len(record), len(header))
		}
		row := make(map[string]string, len(header))
		for j, col := range header {
			row[col] = record[j]
		}
		rows = append(rows, row)
	}
	return rows, nil
}
