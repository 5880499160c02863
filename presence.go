package triegraph

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/triegraph/triegraph/kmer"
)

// Presence is a bit per compressed trie index (every level, root to leaves):
// bit i is set iff the trie node at compressed index i is reachable from some
// graph letter location, i.e. it is part of the grafted trie rather than a
// leftover of the full k-ary tree. Backed by bits-and-blooms/bitset, the only
// rank/select-free bitset in the example pack wired for a "just membership,
// no need for Rank" use (internal/bitset, the module's own Test/Set-only
// bitset, backs the complexity walker's per-location membership set).
type Presence struct {
	s    kmer.Settings
	bits *bitset.BitSet
}

// NewPresence allocates an all-clear Presence sized for s's full compressed
// index space (root through leaves).
func NewPresence(s kmer.Settings) *Presence {
	return &Presence{s: s, bits: bitset.New(uint(s.NumCompressed()))}
}

// MarkLeaf sets the leaf bit for km (must be IsComplete) and propagates
// presence up through every ancestor up to and including the root. This is
// pass one: called once per distinct k-mer produced while walking the graph.
func (p *Presence) MarkLeaf(km kmer.Kmer) {
	h := km.Compress()
	for {
		if p.bits.Test(uint(h)) {
			return // ancestor chain already marked by an earlier k-mer
		}
		p.bits.Set(uint(h))
		if h == 0 {
			return // reached the root
		}
		h = p.s.ParentCompressed(h)
	}
}

// Test reports whether the compressed index h (leaf or internal) is present.
func (p *Presence) Test(h uint64) bool { return p.bits.Test(uint(h)) }

// Count returns the number of present trie nodes across all levels.
func (p *Presence) Count() uint64 { return p.bits.Count() }

// unionFrom merges another Presence over the same Settings into p in place,
// used to fold per-component builder results back together.
func (p *Presence) unionFrom(o *Presence) {
	p.bits.InPlaceUnion(o.bits)
}

// Children returns, for an internal compressed index h at level < K, the
// present children among h's up-to-Size(alphabet) offspring, paired with the
// letter that reaches each.
func (p *Presence) Children(h uint64) []PresentChild {
	level := p.s.LevelOf(h)
	if level >= p.s.K {
		return nil
	}
	var out []PresentChild
	for l := uint8(0); l < uint8(p.s.AlphabetSize()); l++ {
		ch := p.s.ChildCompressed(h, level, l)
		if p.bits.Test(uint(ch)) {
			out = append(out, PresentChild{Letter: l, Compressed: ch})
		}
	}
	return out
}

// PresentChild is one present child of an internal trie node, as returned by
// Presence.Children.
type PresentChild struct {
	Letter     uint8
	Compressed uint64
}
