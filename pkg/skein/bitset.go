package skein

import (
	"math/bits"
	"slices"
)

// BitSet records which enclosing-binder indices a subtree references (its
// locally-free set). The zero value is the empty set. All methods treat the
// receiver as immutable and return fresh sets, so BitSets can be shared
// freely between nodes.
type BitSet []uint64

const bitsPerWord = 64

// NewBitSet returns a set containing the given indices.
func NewBitSet(indices ...int) BitSet {
	var b BitSet
	return b.With(indices...)
}

// Has reports whether index i is in the set.
func (b BitSet) Has(i int) bool {
	w := i / bitsPerWord
	if i < 0 || w >= len(b) {
		return false
	}
	return b[w]&(1<<(i%bitsPerWord)) != 0
}

// With returns a copy of the set with the given indices added.
func (b BitSet) With(indices ...int) BitSet {
	out := slices.Clone(b)
	for _, i := range indices {
		if i < 0 {
			continue
		}
		w := i / bitsPerWord
		for len(out) <= w {
			out = append(out, 0)
		}
		out[w] |= 1 << (i % bitsPerWord)
	}
	return out.normalize()
}

// Union returns the set of indices present in either set.
func (b BitSet) Union(o BitSet) BitSet {
	longer, shorter := b, o
	if len(o) > len(b) {
		longer, shorter = o, b
	}
	out := slices.Clone(longer)
	for i, w := range shorter {
		out[i] |= w
	}
	return out.normalize()
}

// Until returns the subset of indices strictly below n. Substitution uses
// this to trim a node's locally-free bookkeeping to the binder levels still
// meaningful at the current environment depth.
func (b BitSet) Until(n int) BitSet {
	if n <= 0 {
		return nil
	}
	w := n / bitsPerWord
	if w >= len(b) {
		return slices.Clone(b).normalize()
	}
	out := slices.Clone(b[:w+1])
	out[w] &= (1 << (n % bitsPerWord)) - 1
	return out.normalize()
}

// Indices returns the members of the set in ascending order.
func (b BitSet) Indices() []int {
	var out []int
	for wi, w := range b {
		for w != 0 {
			bit := bits.TrailingZeros64(w)
			out = append(out, wi*bitsPerWord+bit)
			w &^= 1 << bit
		}
	}
	return out
}

// Len returns the number of indices in the set.
func (b BitSet) Len() int {
	n := 0
	for _, w := range b {
		n += bits.OnesCount64(w)
	}
	return n
}

// IsEmpty reports whether the set has no members.
func (b BitSet) IsEmpty() bool {
	return b.Len() == 0
}

// Equal reports whether both sets contain exactly the same indices.
func (b BitSet) Equal(o BitSet) bool {
	return slices.Equal(b.normalize(), o.normalize())
}

// normalize drops trailing zero words so equal sets are slice-equal.
func (b BitSet) normalize() BitSet {
	end := len(b)
	for end > 0 && b[end-1] == 0 {
		end--
	}
	if end == 0 {
		return nil
	}
	return b[:end]
}
