package paf

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const mandatoryFields = 12

// Record is one line of a PAF file.
type Record struct {
	QueryName   string
	QueryLen    uint64
	QueryStart  uint64
	QueryEnd    uint64
	Strand      byte
	TargetName  string
	TargetLen   uint64
	TargetStart uint64
	TargetEnd   uint64
	Matches     uint64
	BlockLen    uint64
	MapQ        uint64

	// Cigar is the value of the cg:Z: tag. HasCigar
	// distinguishes an empty tag from a missing one.
	Cigar    string
	HasCigar bool

	// Type is the value of the tp:A: tag (P, S, I, i), or 0
	// if the record has no tp tag.
	Type byte

	Line int    // 1-based line number in the input
	Raw  string // input line, without the trailing newline
}

// Reverse reports whether the query aligns on the reverse strand.
func (rec *Record) Reverse() bool {
	return rec.Strand == '-'
}

// IsSecondary reports whether the aligner flagged the record as a
// secondary alignment. Records without a tp tag are primary.
func (rec *Record) IsSecondary() bool {
	return rec.Type == 'S'
}

type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Reader reads PAF records from an io.Reader, one line at a time.
type Reader struct {
	scanner *bufio.Scanner
	line    int
}

func NewReader(r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	// cg tags on whole-chromosome alignments get long
	scanner.Buffer(nil, 640*1024*1024)
	return &Reader{scanner: scanner}
}

// Read returns the next record, or io.EOF after the last one.
// Blank lines and lines starting with '#' are skipped.
func (r *Reader) Read() (*Record, error) {
	for r.scanner.Scan() {
		r.line++
		text := r.scanner.Text()
		if len(text) == 0 || text[0] == '#' {
			continue
		}
		return Parse(text, r.line)
	}
	if err := r.scanner.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

// Parse parses a single PAF line. lineno is only used in error
// messages and Record.Line.
func Parse(text string, lineno int) (*Record, error) {
	text = strings.TrimRight(text, "\r")
	fields := strings.Split(text, "\t")
	if len(fields) < mandatoryFields {
		return nil, &ParseError{Line: lineno, Msg: fmt.Sprintf("expected at least %d tab-separated fields, found %d", mandatoryFields, len(fields))}
	}
	rec := &Record{
		QueryName:  fields[0],
		TargetName: fields[5],
		Line:       lineno,
		Raw:        text,
	}
	for _, col := range []struct {
		idx int
		dst *uint64
	}{
		{1, &rec.QueryLen},
		{2, &rec.QueryStart},
		{3, &rec.QueryEnd},
		{6, &rec.TargetLen},
		{7, &rec.TargetStart},
		{8, &rec.TargetEnd},
		{9, &rec.Matches},
		{10, &rec.BlockLen},
		{11, &rec.MapQ},
	} {
		v, err := strconv.ParseUint(fields[col.idx], 10, 64)
		if err != nil {
			return nil, &ParseError{Line: lineno, Msg: fmt.Sprintf("field %d: %s", col.idx+1, err)}
		}
		*col.dst = v
	}
	if s := fields[4]; s != "+" && s != "-" {
		return nil, &ParseError{Line: lineno, Msg: fmt.Sprintf("invalid strand %q", s)}
	}
	rec.Strand = fields[4][0]
	if rec.QueryStart > rec.QueryEnd || rec.QueryEnd > rec.QueryLen {
		return nil, &ParseError{Line: lineno, Msg: fmt.Sprintf("query interval %d-%d outside sequence length %d", rec.QueryStart, rec.QueryEnd, rec.QueryLen)}
	}
	if rec.TargetStart > rec.TargetEnd || rec.TargetEnd > rec.TargetLen {
		return nil, &ParseError{Line: lineno, Msg: fmt.Sprintf("target interval %d-%d outside sequence length %d", rec.TargetStart, rec.TargetEnd, rec.TargetLen)}
	}
	for _, tag := range fields[mandatoryFields:] {
		// TAG:TYPE:VALUE
		if len(tag) < 5 || tag[2] != ':' || tag[4] != ':' {
			continue
		}
		switch tag[:4] {
		case "cg:Z":
			rec.Cigar = tag[5:]
			rec.HasCigar = true
		case "tp:A":
			if len(tag) != 6 {
				return nil, &ParseError{Line: lineno, Msg: fmt.Sprintf("invalid tp tag %q", tag)}
			}
			rec.Type = tag[5]
		}
	}
	return rec, nil
}

// File is a Reader on a file opened by Open.
type File struct {
	*Reader
	closers []io.Closer
}

// Open opens a PAF file for reading. Files with a .gz suffix are
// decompressed.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	var rdr io.Reader = f
	file := &File{closers: []io.Closer{f}}
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("%s: gzip: %s", path, err)
		}
		rdr = gz
		file.closers = append([]io.Closer{gz}, file.closers...)
	}
	file.Reader = NewReader(rdr)
	return file, nil
}

func (f *File) Close() error {
	var firstErr error
	for _, c := range f.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
