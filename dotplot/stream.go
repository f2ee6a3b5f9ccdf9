package dotplot

import (
	"io"

	"git.arvados.org/plopaf.git/paf"
)

// RecordDecoder turns one record into segments. *Decoder implements
// it.
type RecordDecoder interface {
	Decode(rec *paf.Record) (Segments, error)
}

// Stream yields the segments of each record of an input, in input
// order. It is a single pass and cannot be restarted.
type Stream struct {
	rdr         RecordReader
	dec         RecordDecoder
	primaryOnly bool
	err         error

	decoded int
	skipped int
}

// NewStream returns a stream over the records of rdr. If primaryOnly
// is true, secondary alignments are not decoded.
func NewStream(rdr RecordReader, dec RecordDecoder, primaryOnly bool) *Stream {
	return &Stream{rdr: rdr, dec: dec, primaryOnly: primaryOnly}
}

// Next reads one record and returns its segments. A skipped
// secondary alignment yields an empty list. After the last record,
// or after any error, Next returns an error (io.EOF at the end of
// input).
func (s *Stream) Next() (Segments, error) {
	if s.err != nil {
		return nil, s.err
	}
	rec, err := s.rdr.Read()
	if err != nil {
		s.err = err
		return nil, err
	}
	if s.primaryOnly && rec.IsSecondary() {
		s.skipped++
		return nil, nil
	}
	segs, err := s.dec.Decode(rec)
	if err != nil {
		s.err = err
		return nil, err
	}
	s.decoded++
	return segs, nil
}

// Stats returns the number of records decoded and skipped so far.
func (s *Stream) Stats() (decoded, skipped int) {
	return s.decoded, s.skipped
}

func (s *Stream) Close() error {
	return s.rdr.Close()
}

// Open builds the layout for the PAF file at path and returns a
// stream over its records.
func Open(path string, primaryOnly bool) (*Stream, *Layout, error) {
	open := FileOpener(path)
	layout, err := BuildLayout(open)
	if err != nil {
		return nil, nil, err
	}
	rdr, err := open()
	if err != nil {
		return nil, nil, err
	}
	return NewStream(rdr, NewDecoder(layout.Query, layout.Target), primaryOnly), layout, nil
}

// Collect reads the rest of the stream, returning one entry per
// record.
func Collect(s *Stream) ([]Segments, error) {
	var all []Segments
	for {
		segs, err := s.Next()
		if err == io.EOF {
			return all, nil
		} else if err != nil {
			return nil, err
		}
		all = append(all, segs)
	}
}
