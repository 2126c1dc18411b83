// Package csvfile streams raw listing rows out of scraper CSV exports
package csvfile

import (
	"encoding/csv"
	"errors"
	"io"
	"os"

	"shopfeed/internal/platform/logger"
)

// RawRow is one source line keyed by header column name.
// Columns missing from a short row are simply absent from the map
type RawRow map[string]string

// Reader streams RawRow items from a CSV export
type Reader struct {
	r      io.ReadCloser
	cr     *csv.Reader
	header []string
	err    error
	rows   int
	bytes  int64
}

// Open opens the CSV file at path and positions the reader past the header
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	rd, err := NewReader(f)
	if err != nil {
		if cerr := f.Close(); cerr != nil {
			return nil, cerr
		}
		return nil, err
	}
	return rd, nil
}

// NewReader wraps r and consumes the header line.
// Scraper exports are ragged and loosely quoted, so the parser is permissive
func NewReader(r io.ReadCloser) (*Reader, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if cerr := r.Close(); cerr != nil {
			return nil, cerr
		}
		return nil, err
	}
	return &Reader{r: r, cr: cr, header: header}, nil
}

// Header returns the column names in file order
func (rd *Reader) Header() []string { return rd.header }

// Next reads the next row; returns io.EOF when done.
// Unparseable lines are skipped, never fatal for the rest of the file
func (rd *Reader) Next() (RawRow, error) {
	if rd.err != nil {
		return nil, rd.err
	}
	for {
		rec, err := rd.cr.Read()
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				logger.Named("csvfile").Warn().
					Int("line", pe.Line).
					Err(pe.Err).
					Msg("csvfile: skipping malformed line")
				continue
			}
			if !errors.Is(err, io.EOF) {
				rd.err = err
				return nil, err
			}
			rd.err = io.EOF
			return nil, io.EOF
		}

		row := make(RawRow, len(rd.header))
		for i, col := range rd.header {
			if i < len(rec) {
				row[col] = rec[i]
				rd.bytes += int64(len(rec[i]))
			}
		}
		rd.rows++
		return row, nil
	}
}

// Close closes the underlying file
func (rd *Reader) Close() error {
	if rd.r == nil {
		return nil
	}
	return rd.r.Close()
}

// Stats returns the number of rows parsed and total cell bytes read so far
func (rd *Reader) Stats() (rows int, bytes int64) {
	return rd.rows, rd.bytes
}
