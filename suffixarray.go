package refidx

import (
	"fmt"
	"sort"
)

// BuildOptions define build specific options.
type BuildOptions struct {
	// PrefTab, when k >= 1, additionally builds the dense prefix
	// lookup table of order k.
	// Default: 0 (no table).
	PrefTab int
}

func (o *BuildOptions) norm() *BuildOptions {
	var oo BuildOptions
	if o != nil {
		oo = *o
	}
	if oo.PrefTab < 0 {
		oo.PrefTab = 0
	}
	return &oo
}

// Index is an immutable occurrence index over a single reference
// sequence: the sentinel-terminated sequence, its suffix array and an
// optional prefix table. Once built (or loaded) an Index is never
// mutated and is safe for concurrent searches.
type Index struct {
	alpha *Alphabet
	seq   []byte // sentinel-terminated, length n
	sa    []int  // permutation of [0, n)
	pref  *prefixTable
}

// Build constructs an index for seq over the given alphabet. A single
// trailing sentinel in seq is accepted; one is appended otherwise. Any
// other byte outside the alphabet fails with ErrInvalidSymbol.
func Build(seq []byte, alpha *Alphabet, o *BuildOptions) (*Index, error) {
	if alpha == nil {
		alpha = DNA()
	}
	o = o.norm()

	body := seq
	if n := len(body); n > 0 && body[n-1] == alpha.Sentinel() {
		body = body[:n-1]
	}
	codes, err := alpha.encode(body)
	if err != nil {
		return nil, err
	}
	codes = append(codes, 0) // sentinel

	term := make([]byte, 0, len(body)+1)
	term = append(term, body...)
	term = append(term, alpha.Sentinel())

	x := &Index{
		alpha: alpha,
		seq:   term,
		sa:    suffixArray(codes),
	}
	if o.PrefTab > 0 {
		pref, err := buildPrefixTable(x, o.PrefTab)
		if err != nil {
			return nil, err
		}
		x.pref = pref
	}
	return x, nil
}

// Len returns n, the length of the sentinel-terminated sequence.
func (x *Index) Len() int { return len(x.seq) }

// Alphabet returns the alphabet the index was built over.
func (x *Index) Alphabet() *Alphabet { return x.alpha }

// Sequence returns a copy of the sentinel-terminated sequence.
func (x *Index) Sequence() []byte { return append([]byte(nil), x.seq...) }

// SA returns a copy of the suffix array.
func (x *Index) SA() []int { return append([]int(nil), x.sa...) }

// K returns the prefix-table order, or 0 when no table was built.
func (x *Index) K() int {
	if x.pref == nil {
		return 0
	}
	return x.pref.k
}

// Positions resolves a search result span to absolute sequence
// positions, in suffix-array order.
func (x *Index) Positions(s Span) []int {
	if s.IsEmpty() {
		return nil
	}
	return append([]int(nil), x.sa[s.Lo:s.Hi]...)
}

// --------------------------------------------------------------------

// suffixArray sorts the suffixes of a code sequence by prefix
// doubling: positions are ordered by (rank[i], rank[i+h]) pairs with h
// doubling each round and ranks re-derived from the sorted order,
// until all ranks are distinct. The terminating sentinel code makes
// the final order a strict total order, so the result is
// deterministic.
func suffixArray(codes []int) []int {
	n := len(codes)
	sa := make([]int, n)
	for i := range sa {
		sa[i] = i
	}
	if n < 2 {
		return sa
	}

	rank := make([]int, n)
	copy(rank, codes)
	next := make([]int, n)

	for h := 1; h < n; h *= 2 {
		pair := func(i int) (int, int) {
			second := -1
			if i+h < n {
				second = rank[i+h]
			}
			return rank[i], second
		}
		sort.SliceStable(sa, func(a, b int) bool {
			a1, a2 := pair(sa[a])
			b1, b2 := pair(sa[b])
			if a1 != b1 {
				return a1 < b1
			}
			return a2 < b2
		})

		next[sa[0]] = 0
		for i := 1; i < n; i++ {
			p1, p2 := pair(sa[i-1])
			c1, c2 := pair(sa[i])
			next[sa[i]] = next[sa[i-1]]
			if p1 != c1 || p2 != c2 {
				next[sa[i]]++
			}
		}
		copy(rank, next)

		if rank[sa[n-1]] == n-1 { // all distinct
			break
		}
	}
	return sa
}

// widthFor returns the on-disk integer width for suffix-array entries
// and prefix-table bounds, derived from n alone.
func widthFor(n uint64) int {
	if n >= 1<<32 {
		return 8
	}
	return 4
}

func (x *Index) width() int { return widthFor(uint64(len(x.seq))) }

// validate checks the structural invariants shared by Build and the
// reader: the sequence is sentinel-terminated, its body is over the
// alphabet, and sa is a permutation of [0, n).
func (x *Index) validate() error {
	n := len(x.seq)
	if n == 0 {
		return fmt.Errorf("%w: empty sequence", ErrCorrupt)
	}
	if x.seq[n-1] != x.alpha.Sentinel() {
		return fmt.Errorf("%w: sequence is not sentinel-terminated", ErrCorrupt)
	}
	for i, sym := range x.seq[:n-1] {
		if c, ok := x.alpha.Code(sym); !ok || c == 0 {
			return fmt.Errorf("%w: sequence byte %q at position %d outside alphabet", ErrCorrupt, sym, i)
		}
	}
	if len(x.sa) != n {
		return fmt.Errorf("%w: suffix array length %d, expected %d", ErrCorrupt, len(x.sa), n)
	}
	seen := make([]bool, n)
	for _, pos := range x.sa {
		if pos < 0 || pos >= n || seen[pos] {
			return fmt.Errorf("%w: suffix array is not a permutation", ErrCorrupt)
		}
		seen[pos] = true
	}
	if x.pref != nil {
		return x.pref.validate(x)
	}
	return nil
}
