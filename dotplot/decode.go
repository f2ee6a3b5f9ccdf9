package dotplot

import (
	"fmt"
	"math/bits"
	"strconv"

	"git.arvados.org/plopaf.git/paf"
)

// Op is a cigar operation code.
type Op byte

const (
	OpMatch     Op = 'M'
	OpEqual     Op = '='
	OpMismatch  Op = 'X'
	OpInsertion Op = 'I'
	OpDeletion  Op = 'D'
)

// IsMatch reports whether op consumes both query and target.
func (op Op) IsMatch() bool {
	return op == OpMatch || op == OpEqual || op == OpMismatch
}

func (op Op) String() string { return string(rune(op)) }

// Segment is one match-class cigar operation placed on the global
// axes. On the reverse strand the run covers X, X-1, ..., X-Len+1
// on the query axis while Y increases.
type Segment struct {
	Op         Op
	X          uint64
	Y          uint64
	Len        uint64
	Reverse    bool
	QueryName  string
	TargetName string
}

// Segments holds the segments of one record, in cigar order.
type Segments []Segment

// Decoder places the cigar operations of records on a pair of
// finished axes.
type Decoder struct {
	query  *Axis
	target *Axis
}

func NewDecoder(query, target *Axis) *Decoder {
	return &Decoder{query: query, target: target}
}

// Decode returns the match-class segments of rec.
func (d *Decoder) Decode(rec *paf.Record) (Segments, error) {
	if !rec.HasCigar {
		return nil, &MissingCigarError{Line: rec.Line, QueryName: rec.QueryName, TargetName: rec.TargetName}
	}
	qentry, err := d.query.Lookup(rec.QueryName)
	if err != nil {
		return nil, fmt.Errorf("line %d: %w", rec.Line, err)
	}
	tentry, err := d.target.Lookup(rec.TargetName)
	if err != nil {
		return nil, fmt.Errorf("line %d: %w", rec.Line, err)
	}

	rev := rec.Reverse()
	y := tentry.Offset + rec.TargetStart
	x := qentry.Offset + rec.QueryStart
	if rev {
		x = qentry.Offset + rec.QueryEnd
	}
	// x >= qentry.Offset holds throughout on the reverse strand.
	advanceQuery := func(n uint64, pos int) error {
		if !rev {
			return advance(&x, n, rec, pos)
		}
		if x-qentry.Offset < n {
			return &CoordinateUnderflowError{Line: rec.Line, QueryName: rec.QueryName, Cursor: x, Offset: qentry.Offset, N: n}
		}
		x -= n
		return nil
	}

	var segs Segments
	cigar := rec.Cigar
	runStart := 0
	for i := 0; i < len(cigar); i++ {
		if c := cigar[i]; c >= '0' && c <= '9' {
			continue
		}
		op := Op(cigar[i])
		digits := cigar[runStart:i]
		opStart := runStart
		runStart = i + 1
		if !op.IsMatch() && op != OpInsertion && op != OpDeletion {
			continue
		}
		if digits == "" {
			return nil, &MalformedCigarError{Line: rec.Line, Cigar: cigar, Pos: i, Reason: fmt.Sprintf("%s with no length", op)}
		}
		n, err := strconv.ParseUint(digits, 10, 64)
		if err != nil {
			return nil, &MalformedCigarError{Line: rec.Line, Cigar: cigar, Pos: opStart, Reason: fmt.Sprintf("bad length %q", digits)}
		}
		switch op {
		case OpDeletion:
			if err := advance(&y, n, rec, opStart); err != nil {
				return nil, err
			}
		case OpInsertion:
			if err := advanceQuery(n, opStart); err != nil {
				return nil, err
			}
		default:
			if n > 0 {
				segs = append(segs, Segment{
					Op:         op,
					X:          x,
					Y:          y,
					Len:        n,
					Reverse:    rev,
					QueryName:  qentry.Name,
					TargetName: tentry.Name,
				})
			}
			if err := advanceQuery(n, opStart); err != nil {
				return nil, err
			}
			if err := advance(&y, n, rec, opStart); err != nil {
				return nil, err
			}
		}
	}
	if runStart < len(cigar) {
		return nil, &MalformedCigarError{Line: rec.Line, Cigar: cigar, Pos: runStart, Reason: "trailing digits with no operation"}
	}
	return segs, nil
}

// advance adds n to the cursor at *p, failing instead of wrapping.
func advance(p *uint64, n uint64, rec *paf.Record, pos int) error {
	sum, carry := bits.Add64(*p, n, 0)
	if carry != 0 {
		return &MalformedCigarError{Line: rec.Line, Cigar: rec.Cigar, Pos: pos, Reason: fmt.Sprintf("length %d overflows coordinate space", n)}
	}
	*p = sum
	return nil
}
