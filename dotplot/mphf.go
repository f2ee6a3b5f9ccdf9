package dotplot

import (
	"math"
	"math/bits"

	"github.com/zeebo/wyhash"
)

const mphfGamma = 1.7

// Keys still colliding after this many levels go to the spill map.
var mphfMaxLevels = 32

// mphf is a minimal perfect hash function over a fixed set of
// distinct strings, built level by level: each key that lands alone
// in its slot at some level keeps that slot, colliding keys move on
// to the next (smaller) level. A key's value is the number of
// occupied slots before its own, so values are exactly 0..n-1.
//
// Looking up a string that was not in the build set returns an
// arbitrary value (or false); callers must verify.
type mphf struct {
	words  []uint64 // occupied-slot bitmaps of all levels, concatenated
	levels []mphfLevel
	ranks  []uint32 // ranks[i] == number of set bits in words[:i]
	spill  map[string]int
}

type mphfLevel struct {
	offset int    // index of the level's first word
	size   uint64 // number of slots, multiple of 64
}

func levelSeed(level int) uint64 {
	return uint64(level+1) * 0x9e3779b97f4a7c15
}

func newMPHF(keys []string) *mphf {
	f := &mphf{}
	remaining := keys
	for level := 0; len(remaining) > 0 && level < mphfMaxLevels; level++ {
		size := uint64(math.Ceil(mphfGamma * float64(len(remaining))))
		size = (size + 63) &^ 63
		occupied := make([]uint64, size/64)
		collided := make([]uint64, size/64)
		seed := levelSeed(level)
		for _, key := range remaining {
			h := wyhash.HashString(key, seed) % size
			w, bit := h/64, uint64(1)<<(h%64)
			if occupied[w]&bit != 0 {
				collided[w] |= bit
			} else {
				occupied[w] |= bit
			}
		}
		var next []string
		for _, key := range remaining {
			h := wyhash.HashString(key, seed) % size
			if collided[h/64]&(uint64(1)<<(h%64)) != 0 {
				next = append(next, key)
			}
		}
		for i := range occupied {
			occupied[i] &^= collided[i]
		}
		f.levels = append(f.levels, mphfLevel{offset: len(f.words), size: size})
		f.words = append(f.words, occupied...)
		remaining = next
	}
	f.ranks = make([]uint32, len(f.words)+1)
	for i, w := range f.words {
		f.ranks[i+1] = f.ranks[i] + uint32(bits.OnesCount64(w))
	}
	if len(remaining) > 0 {
		base := int(f.ranks[len(f.words)])
		f.spill = make(map[string]int, len(remaining))
		for i, key := range remaining {
			f.spill[key] = base + i
		}
	}
	return f
}

func (f *mphf) lookup(key string) (int, bool) {
	for level, lv := range f.levels {
		h := wyhash.HashString(key, levelSeed(level)) % lv.size
		w := lv.offset + int(h/64)
		bit := uint64(1) << (h % 64)
		if f.words[w]&bit != 0 {
			return int(f.ranks[w]) + bits.OnesCount64(f.words[w]&(bit-1)), true
		}
	}
	id, ok := f.spill[key]
	return id, ok
}
