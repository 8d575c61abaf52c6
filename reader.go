package refidx

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/golang/snappy"
)

const maxInt = int(^uint(0) >> 1)

// ReadIndex deserializes an index from r, validating magic, version
// and structural integrity before returning it. Any inconsistency is
// reported as an error wrapping ErrCorrupt.
func ReadIndex(r io.Reader) (*Index, error) {
	head := make([]byte, len(magic)+2)
	if _, err := io.ReadFull(r, head); err != nil {
		return nil, corruptEOF(err)
	}
	if !bytes.Equal(head[:len(magic)], magic) {
		return nil, errBadMagic
	}
	if head[len(magic)] != formatVersion {
		return nil, errBadVersion
	}
	codec := head[len(magic)+1]

	payload, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	switch codec {
	case payloadRaw:
	case payloadSnappy:
		if payload, err = snappy.Decode(nil, payload); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
	default:
		return nil, errBadCompression
	}
	return decodePayload(payload)
}

// ReadFile loads an index file written by WriteFile.
func ReadFile(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadIndex(bufio.NewReader(f))
}

func corruptEOF(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return errTruncated
	}
	return err
}

// --------------------------------------------------------------------

type payloadReader struct {
	buf []byte
	off int
}

func (p *payloadReader) next(n int) ([]byte, error) {
	if n < 0 || len(p.buf)-p.off < n {
		return nil, errTruncated
	}
	b := p.buf[p.off : p.off+n]
	p.off += n
	return b, nil
}

func (p *payloadReader) uint(w int) (uint64, error) {
	b, err := p.next(w)
	if err != nil {
		return 0, err
	}
	v := uint64(0)
	for i := w - 1; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v, nil
}

func decodePayload(payload []byte) (*Index, error) {
	p := &payloadReader{buf: payload}

	n64, err := p.uint(8)
	if err != nil {
		return nil, err
	}
	if n64 == 0 {
		return nil, fmt.Errorf("%w: empty sequence", ErrCorrupt)
	}
	if n64 > uint64(maxInt) {
		return nil, fmt.Errorf("%w: sequence length %d exceeds platform limits", ErrCorrupt, n64)
	}
	n := int(n64)
	w := widthFor(n64)

	meta, err := p.next(2)
	if err != nil {
		return nil, err
	}
	sentinel, sigma := meta[0], int(meta[1])
	symbols, err := p.next(sigma)
	if err != nil {
		return nil, err
	}
	alpha, err := NewAlphabet(sentinel, symbols)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	seq, err := p.next(n)
	if err != nil {
		return nil, err
	}

	sa := make([]int, n)
	for i := range sa {
		v, err := p.uint(w)
		if err != nil {
			return nil, err
		}
		if v >= n64 {
			return nil, fmt.Errorf("%w: suffix array entry %d out of range", ErrCorrupt, v)
		}
		sa[i] = int(v)
	}

	x := &Index{
		alpha: alpha,
		seq:   append([]byte(nil), seq...),
		sa:    sa,
	}

	flag, err := p.next(1)
	if err != nil {
		return nil, err
	}
	switch flag[0] {
	case 0:
	case 1:
		k, err := p.uint(2)
		if err != nil {
			return nil, err
		}
		size, err := tableSize(sigma, int(k))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
		spans := make([]Span, size)
		for i := range spans {
			lo, err := p.uint(w)
			if err != nil {
				return nil, err
			}
			hi, err := p.uint(w)
			if err != nil {
				return nil, err
			}
			if lo > n64 || hi > n64 {
				return nil, fmt.Errorf("%w: prefix table span out of range", ErrCorrupt)
			}
			spans[i] = Span{Lo: int(lo), Hi: int(hi)}
		}
		x.pref = &prefixTable{k: int(k), spans: spans}
	default:
		return nil, fmt.Errorf("%w: bad prefix table flag %d", ErrCorrupt, flag[0])
	}

	if p.off != len(p.buf) {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrCorrupt, len(p.buf)-p.off)
	}
	if err := x.validate(); err != nil {
		return nil, err
	}
	return x, nil
}
