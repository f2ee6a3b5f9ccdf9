package dotplot

import (
	"fmt"
)

type AxisKind int

const (
	QueryAxis AxisKind = iota
	TargetAxis
)

func (k AxisKind) String() string {
	switch k {
	case QueryAxis:
		return "query"
	case TargetAxis:
		return "target"
	default:
		return fmt.Sprintf("axis(%d)", int(k))
	}
}

// Registry maps each name in a fixed set of distinct sequence names
// to an identity in [0, Len()). It is immutable once built.
type Registry struct {
	axis  AxisKind
	hash  *mphf
	names []string // indexed by identity
}

// NewRegistry builds a registry over names, which must not contain
// duplicates.
func NewRegistry(axis AxisKind, names []string) (*Registry, error) {
	if len(names) == 0 {
		return nil, &EmptyAxisError{Axis: axis}
	}
	reg := &Registry{
		axis:  axis,
		hash:  newMPHF(names),
		names: make([]string, len(names)),
	}
	assigned := make([]bool, len(names))
	for _, name := range names {
		id, ok := reg.hash.lookup(name)
		if !ok || id >= len(names) {
			return nil, fmt.Errorf("%s axis: internal error: no identity for %q", axis, name)
		}
		if assigned[id] {
			return nil, fmt.Errorf("%s axis: duplicate sequence name %q", axis, name)
		}
		assigned[id] = true
		reg.names[id] = name
	}
	return reg, nil
}

// Resolve returns the identity of name.
func (reg *Registry) Resolve(name string) (int, error) {
	id, ok := reg.hash.lookup(name)
	if !ok || id >= len(reg.names) || reg.names[id] != name {
		return 0, &UnknownNameError{Axis: reg.axis, Name: name}
	}
	return id, nil
}

func (reg *Registry) Len() int { return len(reg.names) }

func (reg *Registry) Name(id int) string { return reg.names[id] }
