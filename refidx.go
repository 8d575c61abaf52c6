package refidx

import (
	"errors"
	"fmt"
)

var magic = []byte{82, 70, 73, 68, 88, 30, 173, 201}

const formatVersion = 1

const (
	payloadRaw    = 0
	payloadSnappy = 1
)

// ErrCorrupt is returned by the reader when an index file fails
// validation. Inspect with errors.Is; the wrapping error carries the
// detail.
var ErrCorrupt = errors.New("refidx: corrupt index")

// ErrInvalidSymbol is returned when a sequence or query contains a
// byte outside the declared alphabet.
var ErrInvalidSymbol = errors.New("refidx: invalid symbol")

var (
	errBadMagic       = fmt.Errorf("%w: bad magic byte sequence", ErrCorrupt)
	errBadVersion     = fmt.Errorf("%w: unsupported format version", ErrCorrupt)
	errBadCompression = fmt.Errorf("%w: bad compression codec", ErrCorrupt)
	errTruncated      = fmt.Errorf("%w: truncated file", ErrCorrupt)
)

// --------------------------------------------------------------------

// Span is a half-open [Lo, Hi) interval over suffix-array positions.
type Span struct {
	Lo, Hi int
}

// Count returns the number of suffix-array entries covered.
func (s Span) Count() int { return s.Hi - s.Lo }

// IsEmpty reports whether the interval covers nothing.
func (s Span) IsEmpty() bool { return s.Hi <= s.Lo }

// --------------------------------------------------------------------

// Mode selects the search strategy.
type Mode uint8

// Supported search modes.
const (
	// ModeNaive restarts every probe comparison at the first query
	// symbol.
	ModeNaive Mode = iota
	// ModeSimpaccel resumes probe comparisons at the shorter of the
	// confirmed boundary prefixes.
	ModeSimpaccel
)

// ParseMode converts a mode name as accepted by the query CLI.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "naive":
		return ModeNaive, nil
	case "simpaccel":
		return ModeSimpaccel, nil
	}
	return 0, fmt.Errorf("refidx: unknown query mode %q", s)
}

func (m Mode) String() string {
	switch m {
	case ModeNaive:
		return "naive"
	case ModeSimpaccel:
		return "simpaccel"
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// --------------------------------------------------------------------

// Compression is the payload compression codec.
type Compression byte

func (c Compression) isValid() bool {
	return c >= SnappyCompression && c < unknownCompression
}

// Supported compression codecs.
const (
	SnappyCompression Compression = iota
	NoCompression
	unknownCompression
)
