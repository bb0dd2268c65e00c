// Package partition computes the coarsest disjoint partition of code
// points such that every explicit transition key used anywhere in an
// automaton is exactly the union of some subset of the partition's
// members, via incremental set refinement.
package partition

import "github.com/rtweeks/fair-cg/charset"

// Partition is the ordered, disjoint list of character classes produced
// by Build. Member index is the stable cc_<index> numbering used by
// downstream emitters; class -1 (returned by Classify when ok is false)
// denotes the synthetic cc_other sentinel.
type Partition struct {
	classes []charset.CodePointSet
	cache   map[rune]int
}

// Classes returns the partition's members in their stable declaration
// order.
func (p *Partition) Classes() []charset.CodePointSet {
	return append([]charset.CodePointSet(nil), p.classes...)
}

// Len is the number of classes in the partition, not counting cc_other.
func (p *Partition) Len() int {
	return len(p.classes)
}

// Classify returns the index of the class containing x, or ok == false if
// x belongs to none (the cc_other case). Implemented as a linear scan,
// which is all the generator's table-building needs; ClassifyMemo adds a
// cache on top for callers classifying many code points.
func (p *Partition) Classify(x rune) (idx int, ok bool) {
	for i, c := range p.classes {
		if c.Contains(x) {
			return i, true
		}
	}
	return -1, false
}

// ClassifyMemo is Classify with a cache keyed by code point. The cache is
// owned by this Partition and is never invalidated internally, since a
// built Partition is immutable; callers must Build a fresh Partition
// after any automaton.Builder mutation (see the concurrency model).
func (p *Partition) ClassifyMemo(x rune) (idx int, ok bool) {
	if p.cache == nil {
		p.cache = make(map[rune]int)
	}
	if idx, hit := p.cache[x]; hit {
		if idx == -1 {
			return -1, false
		}
		return idx, true
	}
	idx, ok = p.Classify(x)
	if ok {
		p.cache[x] = idx
	} else {
		p.cache[x] = -1
	}
	return idx, ok
}

// Build runs the incremental set-refinement algorithm over keys, in the
// order given (callers pass automaton.Automaton.AllExplicitKeys(), which
// preserves registration order so the resulting numbering is stable and
// reproducible from one analysis to the next).
func Build(keys []charset.CodePointSet) *Partition {
	p := &Partition{}
	for _, k := range keys {
		p.absorb(k.Clone())
	}
	return p
}

// absorb folds one incoming key into the partition. The four cases of
// the spec's incremental refinement algorithm collapse into a single
// pass over the existing classes: each class either survives untouched
// (disjoint from what's left of K), survives untouched while shrinking
// what's left of K (wholly contained in K — this also covers K already
// being equal to a class, case 2, since that leaves nothing over), or
// gets replaced in place by its K-complement while its K-overlap is
// collected as a new class appended after the pass (this also covers a
// class strictly containing K, case 3, as the degenerate single-class
// instance of the general case). Whatever of K is left once every class
// has been considered becomes one final new class (case 1 in the
// disjoint-from-everything instance).
func (p *Partition) absorb(k charset.CodePointSet) {
	if k.IsEmpty() {
		return
	}

	remaining := k
	var newPieces []charset.CodePointSet
	kept := make([]charset.CodePointSet, 0, len(p.classes))
	for _, c := range p.classes {
		overlap := c.Intersect(remaining)
		switch {
		case overlap.IsEmpty():
			kept = append(kept, c)
		case overlap.Equal(c):
			kept = append(kept, c)
			remaining = remaining.Diff(c)
		default:
			if leftover := c.Diff(remaining); !leftover.IsEmpty() {
				kept = append(kept, leftover)
			}
			newPieces = append(newPieces, overlap)
			remaining = remaining.Diff(overlap)
		}
	}
	kept = append(kept, newPieces...)
	if !remaining.IsEmpty() {
		kept = append(kept, remaining)
	}
	p.classes = kept
}
