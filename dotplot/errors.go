package dotplot

import (
	"fmt"
)

// InputIOError means the input file could not be opened or read.
type InputIOError struct {
	Path string
	Err  error
}

func (e *InputIOError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Err)
}

func (e *InputIOError) Unwrap() error { return e.Err }

// MissingCigarError means a record has no cg:Z: tag.
type MissingCigarError struct {
	Line       int
	QueryName  string
	TargetName string
}

func (e *MissingCigarError) Error() string {
	return fmt.Sprintf("line %d: %s vs %s: record has no cg:Z: cigar tag (re-run the aligner with cigar output enabled)", e.Line, e.QueryName, e.TargetName)
}

// UnknownNameError means a name was looked up on an axis that never
// saw it during name collection.
type UnknownNameError struct {
	Axis AxisKind
	Name string
}

func (e *UnknownNameError) Error() string {
	return fmt.Sprintf("%s axis has no sequence named %q", e.Axis, e.Name)
}

// EmptyAxisError means no sequence names were found for an axis.
type EmptyAxisError struct {
	Axis AxisKind
}

func (e *EmptyAxisError) Error() string {
	return fmt.Sprintf("cannot build %s axis: no sequences", e.Axis)
}

type MalformedCigarError struct {
	Line   int
	Cigar  string
	Pos    int // byte offset of the problem in Cigar
	Reason string
}

func (e *MalformedCigarError) Error() string {
	cigar := e.Cigar
	if len(cigar) > 40 {
		cigar = cigar[:40] + "..."
	}
	return fmt.Sprintf("line %d: malformed cigar %q at offset %d: %s", e.Line, cigar, e.Pos, e.Reason)
}

// CoordinateUnderflowError means a reverse-strand record consumed
// more query bases than lie between its query end and the start of
// the query sequence.
type CoordinateUnderflowError struct {
	Line      int
	QueryName string
	Cursor    uint64 // global query position before the operation
	Offset    uint64 // global start of the query sequence
	N         uint64 // bases consumed by the operation
}

func (e *CoordinateUnderflowError) Error() string {
	return fmt.Sprintf("line %d: %s: reverse-strand cigar walks past start of query (position %d, %d bases requested)", e.Line, e.QueryName, e.Cursor-e.Offset, e.N)
}
