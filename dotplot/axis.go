package dotplot

import (
	"errors"
	"sort"

	log "github.com/sirupsen/logrus"
)

// SequenceEntry is one sequence laid out on an axis.
type SequenceEntry struct {
	Name     string
	Identity int
	Length   uint64
	Rank     int    // position in descending-length order
	Offset   uint64 // sum of lengths of all lower-ranked entries
}

var errFinalized = errors.New("axis builder already finalized")

// AxisBuilder collects sequence lengths for one axis. It is consumed
// by Finalize.
type AxisBuilder struct {
	registry *Registry
	entries  []SequenceEntry // in order of first Add
	pos      []int           // by identity: index into entries, or -1
	done     bool
}

// NewAxisBuilder returns a builder for an axis with the given
// distinct sequence names.
func NewAxisBuilder(axis AxisKind, names []string) (*AxisBuilder, error) {
	reg, err := NewRegistry(axis, names)
	if err != nil {
		return nil, err
	}
	pos := make([]int, reg.Len())
	for i := range pos {
		pos[i] = -1
	}
	return &AxisBuilder{
		registry: reg,
		entries:  make([]SequenceEntry, 0, reg.Len()),
		pos:      pos,
	}, nil
}

// Add records the length of the named sequence. Only the first Add
// for a name counts.
func (b *AxisBuilder) Add(name string, length uint64) error {
	if b.done {
		return errFinalized
	}
	id, err := b.registry.Resolve(name)
	if err != nil {
		return err
	}
	if i := b.pos[id]; i >= 0 {
		if prev := b.entries[i].Length; prev != length {
			log.Warnf("%s %s: length %d conflicts with earlier length %d, keeping %d", b.registry.axis, name, length, prev, prev)
		}
		return nil
	}
	b.pos[id] = len(b.entries)
	b.entries = append(b.entries, SequenceEntry{Name: b.registry.Name(id), Identity: id, Length: length})
	return nil
}

// Finalize assigns ranks and offsets and returns the finished axis.
func (b *AxisBuilder) Finalize() (*Axis, error) {
	if b.done {
		return nil, errFinalized
	}
	for id, i := range b.pos {
		if i < 0 {
			return nil, &UnknownNameError{Axis: b.registry.axis, Name: b.registry.Name(id)}
		}
	}
	b.done = true
	entries := b.entries
	b.entries = nil
	length := assignLayout(entries)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Identity < entries[j].Identity
	})
	return &Axis{registry: b.registry, entries: entries, length: length}, nil
}

// assignLayout sorts entries by descending length (ties keep their
// current order), sets Rank and Offset, and returns the total length.
func assignLayout(entries []SequenceEntry) uint64 {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Length > entries[j].Length
	})
	var offset uint64
	for i := range entries {
		entries[i].Rank = i
		entries[i].Offset = offset
		offset += entries[i].Length
	}
	return offset
}

// Axis is the finished layout of one axis. It is safe for concurrent
// use.
type Axis struct {
	registry *Registry
	entries  []SequenceEntry // indexed by identity
	length   uint64
}

func (a *Axis) Kind() AxisKind { return a.registry.axis }

// Len returns the number of sequences on the axis.
func (a *Axis) Len() int { return len(a.entries) }

// Length returns the sum of all sequence lengths.
func (a *Axis) Length() uint64 { return a.length }

func (a *Axis) Entry(id int) SequenceEntry { return a.entries[id] }

// Lookup returns the entry for the named sequence.
func (a *Axis) Lookup(name string) (SequenceEntry, error) {
	id, err := a.registry.Resolve(name)
	if err != nil {
		return SequenceEntry{}, err
	}
	return a.entries[id], nil
}

// Ranked returns a copy of the entries in rank order.
func (a *Axis) Ranked() []SequenceEntry {
	ranked := make([]SequenceEntry, len(a.entries))
	for _, e := range a.entries {
		ranked[e.Rank] = e
	}
	return ranked
}
