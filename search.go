package refidx

import (
	"fmt"
)

// Stats accumulate search effort counters.
type Stats struct {
	// Probes is the number of suffixes compared against the query.
	Probes int
	// SymbolComparisons is the number of individual symbol
	// comparisons performed across all probes.
	SymbolComparisons int
}

// comparison is the outcome of comparing a suffix against the query
// under prefix semantics: ord < 0 when the suffix sorts before the
// query, 0 when the query is a prefix of the suffix, > 0 when the
// suffix sorts after. lcp is the number of leading query symbols
// confirmed equal.
type comparison struct {
	lcp int
	ord int
}

// strategy decides where a probe between two boundary comparisons may
// resume matching.
type strategy interface {
	offset(left, right comparison) int
}

// naiveStrategy restarts every probe at the first query symbol.
type naiveStrategy struct{}

func (naiveStrategy) offset(_, _ comparison) int { return 0 }

// simpaccelStrategy resumes at the shorter confirmed prefix of the
// two boundaries: every suffix between them shares at least that many
// leading symbols with the query.
type simpaccelStrategy struct{}

func (simpaccelStrategy) offset(left, right comparison) int {
	if left.lcp < right.lcp {
		return left.lcp
	}
	return right.lcp
}

// --------------------------------------------------------------------

// Search returns the suffix-array interval of the suffixes prefixed by
// query. A miss is the empty interval at the query's insertion point,
// not an error. Both modes return the identical interval; they differ
// only in comparison effort. Search is pure and safe for concurrent
// use.
func (x *Index) Search(query []byte, mode Mode) (Span, error) {
	return x.SearchWithStats(query, mode, nil)
}

// SearchWithStats is Search with effort counters accumulated into st,
// which may be nil.
func (x *Index) SearchWithStats(query []byte, mode Mode, st *Stats) (Span, error) {
	var strat strategy
	switch mode {
	case ModeNaive:
		strat = naiveStrategy{}
	case ModeSimpaccel:
		strat = simpaccelStrategy{}
	default:
		return Span{}, fmt.Errorf("refidx: unknown query mode %d", mode)
	}

	for i, sym := range query {
		if c, ok := x.alpha.Code(sym); !ok || c == 0 {
			return Span{}, fmt.Errorf("%w %q at position %d", ErrInvalidSymbol, sym, i)
		}
	}

	bracket := Span{Lo: 0, Hi: len(x.seq)}
	if x.pref != nil && x.pref.k <= len(query) {
		bracket = x.pref.lookup(x.alpha, query)
	}
	if bracket.IsEmpty() {
		return Span{Lo: bracket.Lo, Hi: bracket.Lo}, nil
	}
	if len(query) == 0 {
		return bracket, nil
	}

	probe := func(idx, off int) comparison {
		if st != nil {
			st.Probes++
		}
		return x.compareSuffix(x.sa[idx], query, off, st)
	}

	// The bracket edges bound everything in between; comparing them
	// first settles queries outside the bracket without bisecting.
	left := probe(bracket.Lo, 0)
	if left.ord > 0 {
		return Span{Lo: bracket.Lo, Hi: bracket.Lo}, nil
	}
	right := probe(bracket.Hi-1, 0)
	if right.ord < 0 {
		return Span{Lo: bracket.Hi, Hi: bracket.Hi}, nil
	}

	// Leftmost suffix >= query.
	l, r := bracket.Lo, bracket.Hi
	lc, rc := left, right
	for l < r {
		mid := l + (r-l)/2
		c := probe(mid, strat.offset(lc, rc))
		if c.ord < 0 {
			l, lc = mid+1, c
		} else {
			r, rc = mid, c
		}
	}
	lo := l

	// rc now holds the comparison for the suffix at lo: the early
	// right.ord >= 0 check guarantees lo < bracket.Hi, so the loop
	// moved r at least once.
	if rc.ord != 0 {
		return Span{Lo: lo, Hi: lo}, nil
	}

	// Leftmost suffix > query, scanning right of lo with the original
	// right edge restored as the upper boundary.
	l, r = lo, bracket.Hi
	lc, rc = rc, right
	for l < r {
		mid := l + (r-l)/2
		c := probe(mid, strat.offset(lc, rc))
		if c.ord <= 0 {
			l, lc = mid+1, c
		} else {
			r, rc = mid, c
		}
	}
	return Span{Lo: lo, Hi: l}, nil
}

// compareSuffix compares the suffix at text position pos against
// query[off:] in alphabet order, assuming the first off symbols are
// already known equal.
func (x *Index) compareSuffix(pos int, query []byte, off int, st *Stats) comparison {
	n := len(x.seq)
	for i := off; i < len(query); i++ {
		if st != nil {
			st.SymbolComparisons++
		}
		sc := 0
		if pos+i < n {
			sc, _ = x.alpha.Code(x.seq[pos+i])
		}
		qc, _ := x.alpha.Code(query[i])
		if sc != qc {
			return comparison{lcp: i, ord: sc - qc}
		}
	}
	return comparison{lcp: len(query), ord: 0}
}
