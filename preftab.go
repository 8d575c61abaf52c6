package refidx

import (
	"fmt"
)

// maxPrefTabSize caps the dense table at 2^30 entries.
const maxPrefTabSize = 1 << 30

// prefixTable maps every k-symbol string over the real alphabet,
// enumerated lexicographically, to the suffix-array interval of the
// suffixes it prefixes. Size is sigma^k.
type prefixTable struct {
	k     int
	spans []Span
}

// tableSize returns sigma^k, or an error when the dense table would
// exceed maxPrefTabSize entries.
func tableSize(sigma, k int) (int, error) {
	if k < 1 || k > 0xFFFF {
		return 0, fmt.Errorf("refidx: prefix table order %d out of range", k)
	}
	size := 1
	for i := 0; i < k; i++ {
		if size > maxPrefTabSize/sigma {
			return 0, fmt.Errorf("refidx: prefix table of order %d over %d symbols is too large", k, sigma)
		}
		size *= sigma
	}
	return size, nil
}

// buildPrefixTable scans the suffix array once. Each suffix's first-k
// window is valued in base sigma+1 with positions at or past the
// sentinel contributing digit 0; window values are non-decreasing in
// suffix order, so key intervals fall out of a single merge against
// the keys enumerated in lexicographic order. Absent keys receive an
// empty span at their insertion point.
func buildPrefixTable(x *Index, k int) (*prefixTable, error) {
	sigma := x.alpha.Len()
	size, err := tableSize(sigma, k)
	if err != nil {
		return nil, err
	}

	n := len(x.seq)
	base := uint64(sigma + 1)
	window := func(pos int) uint64 {
		v := uint64(0)
		for j := 0; j < k; j++ {
			d := 0
			if pos+j < n {
				d, _ = x.alpha.Code(x.seq[pos+j])
			}
			v = v*base + uint64(d)
		}
		return v
	}

	vals := make([]uint64, n)
	for i, pos := range x.sa {
		vals[i] = window(pos)
	}

	spans := make([]Span, size)
	digits := make([]int, k)
	i := 0
	for key := 0; key < size; key++ {
		kv := uint64(0)
		for _, d := range digits {
			kv = kv*base + uint64(d+1)
		}
		for i < n && vals[i] < kv {
			i++
		}
		lo := i
		for i < n && vals[i] == kv {
			i++
		}
		spans[key] = Span{Lo: lo, Hi: i}

		for j := k - 1; j >= 0; j-- {
			digits[j]++
			if digits[j] < sigma {
				break
			}
			digits[j] = 0
		}
	}
	return &prefixTable{k: k, spans: spans}, nil
}

// lookup returns the stored bracket for the first k symbols of an
// already validated query.
func (t *prefixTable) lookup(a *Alphabet, query []byte) Span {
	idx := 0
	for j := 0; j < t.k; j++ {
		c, _ := a.Code(query[j])
		idx = idx*a.Len() + (c - 1)
	}
	return t.spans[idx]
}

func (t *prefixTable) validate(x *Index) error {
	size, err := tableSize(x.alpha.Len(), t.k)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if len(t.spans) != size {
		return fmt.Errorf("%w: prefix table has %d entries, expected %d", ErrCorrupt, len(t.spans), size)
	}
	n := len(x.seq)
	prev := 0
	for i, s := range t.spans {
		if s.Lo < prev || s.Hi < s.Lo || s.Hi > n {
			return fmt.Errorf("%w: prefix table span %d out of order", ErrCorrupt, i)
		}
		prev = s.Hi
	}
	return nil
}
