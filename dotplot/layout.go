package dotplot

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"git.arvados.org/plopaf.git/paf"
	log "github.com/sirupsen/logrus"
)

// RecordReader is a single forward pass over the records of an
// alignment file.
type RecordReader interface {
	// Read returns the next record, or io.EOF.
	Read() (*paf.Record, error)
	Close() error
}

// Opener starts a new pass over the same input. Building a layout
// calls it twice; streaming segments calls it once more.
type Opener func() (RecordReader, error)

// FileOpener returns an Opener for the PAF file at path.
func FileOpener(path string) Opener {
	return func() (RecordReader, error) {
		f, err := paf.Open(path)
		if err != nil {
			return nil, &InputIOError{Path: path, Err: err}
		}
		return &fileReader{path: path, File: f}, nil
	}
}

type fileReader struct {
	path string
	*paf.File
}

func (r *fileReader) Read() (*paf.Record, error) {
	rec, err := r.File.Read()
	if err != nil && err != io.EOF {
		var perr *paf.ParseError
		if errors.As(err, &perr) {
			return nil, fmt.Errorf("%s: %w", r.path, err)
		}
		return nil, &InputIOError{Path: r.path, Err: err}
	}
	return rec, err
}

// Layout holds the finished query (X) and target (Y) axes.
type Layout struct {
	Query  *Axis
	Target *Axis
}

// BuildLayout reads the input twice: once to collect the distinct
// query and target names, then again to record sequence lengths.
func BuildLayout(open Opener) (*Layout, error) {
	qnames, tnames, err := collectNames(open)
	if err != nil {
		return nil, err
	}
	log.Debugf("layout: pass 1 done, %d query names, %d target names", len(qnames), len(tnames))
	qb, err := NewAxisBuilder(QueryAxis, qnames)
	if err != nil {
		return nil, err
	}
	tb, err := NewAxisBuilder(TargetAxis, tnames)
	if err != nil {
		return nil, err
	}

	rdr, err := open()
	if err != nil {
		return nil, err
	}
	defer rdr.Close()
	for {
		rec, err := rdr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		if err := qb.Add(rec.QueryName, rec.QueryLen); err != nil {
			return nil, fmt.Errorf("line %d: %w", rec.Line, err)
		}
		if err := tb.Add(rec.TargetName, rec.TargetLen); err != nil {
			return nil, fmt.Errorf("line %d: %w", rec.Line, err)
		}
	}

	query, err := qb.Finalize()
	if err != nil {
		return nil, err
	}
	target, err := tb.Finalize()
	if err != nil {
		return nil, err
	}
	log.Debugf("layout: pass 2 done, query axis %d bp, target axis %d bp", query.Length(), target.Length())
	return &Layout{Query: query, Target: target}, nil
}

// collectNames returns the distinct query and target names in order
// of first appearance. Every record must carry a cigar.
func collectNames(open Opener) (qnames, tnames []string, err error) {
	rdr, err := open()
	if err != nil {
		return nil, nil, err
	}
	defer rdr.Close()
	qseen := map[string]bool{}
	tseen := map[string]bool{}
	for {
		rec, err := rdr.Read()
		if err == io.EOF {
			return qnames, tnames, nil
		} else if err != nil {
			return nil, nil, err
		}
		if !rec.HasCigar {
			return nil, nil, &MissingCigarError{Line: rec.Line, QueryName: rec.QueryName, TargetName: rec.TargetName}
		}
		if !qseen[rec.QueryName] {
			name := strings.Clone(rec.QueryName)
			qseen[name] = true
			qnames = append(qnames, name)
		}
		if !tseen[rec.TargetName] {
			name := strings.Clone(rec.TargetName)
			tseen[name] = true
			tnames = append(tnames, name)
		}
	}
}
