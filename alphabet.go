package refidx

import (
	"fmt"
	"sort"
)

// Alphabet maps a fixed set of symbol bytes to dense codes with a
// total order. The sentinel carries code 0 and sorts below every real
// symbol; real symbols carry codes 1..Len() in ascending byte order.
type Alphabet struct {
	sentinel byte
	symbols  []byte
	codes    [256]int16 // -1 = unknown
}

// NewAlphabet builds an alphabet over the given real symbols and
// sentinel. Symbols must be distinct and must not include the
// sentinel.
func NewAlphabet(sentinel byte, symbols []byte) (*Alphabet, error) {
	if len(symbols) == 0 {
		return nil, fmt.Errorf("refidx: alphabet needs at least one symbol")
	}
	if len(symbols) > 255 {
		return nil, fmt.Errorf("refidx: alphabet cannot hold more than 255 symbols")
	}

	sorted := append([]byte(nil), symbols...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	a := &Alphabet{sentinel: sentinel, symbols: sorted}
	for i := range a.codes {
		a.codes[i] = -1
	}
	a.codes[sentinel] = 0
	for i, sym := range sorted {
		if sym == sentinel {
			return nil, fmt.Errorf("refidx: sentinel %q cannot be a real symbol", sym)
		}
		if a.codes[sym] != -1 {
			return nil, fmt.Errorf("refidx: duplicate symbol %q", sym)
		}
		a.codes[sym] = int16(i + 1)
	}
	return a, nil
}

// DNA returns the default alphabet: symbols ACGT, sentinel '$'.
func DNA() *Alphabet {
	a, err := NewAlphabet('$', []byte("ACGT"))
	if err != nil {
		panic(err)
	}
	return a
}

// Len returns the number of real symbols.
func (a *Alphabet) Len() int { return len(a.symbols) }

// Sentinel returns the sentinel symbol.
func (a *Alphabet) Sentinel() byte { return a.sentinel }

// Symbols returns the real symbols in code order.
func (a *Alphabet) Symbols() []byte { return append([]byte(nil), a.symbols...) }

// Code returns the code of a symbol: 0 for the sentinel, 1..Len() for
// real symbols. ok is false for bytes outside the alphabet.
func (a *Alphabet) Code(sym byte) (code int, ok bool) {
	c := a.codes[sym]
	return int(c), c >= 0
}

// encode validates every byte of p against the real symbols and
// returns the corresponding codes. The sentinel counts as invalid
// here; it may only ever terminate the reference sequence.
func (a *Alphabet) encode(p []byte) ([]int, error) {
	codes := make([]int, len(p))
	for i, sym := range p {
		c := a.codes[sym]
		if c <= 0 {
			return nil, fmt.Errorf("%w %q at position %d", ErrInvalidSymbol, sym, i)
		}
		codes[i] = int(c)
	}
	return codes, nil
}
