package refidx

import (
	"bufio"
	"encoding/binary"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/golang/snappy"
)

// WriterOptions define serialization specific options.
type WriterOptions struct {
	// The compression codec to use for the payload.
	// Default: NoCompression.
	Compression Compression
}

func (o *WriterOptions) norm() *WriterOptions {
	var oo WriterOptions
	if o != nil {
		oo = *o
	}
	if !oo.Compression.isValid() {
		oo.Compression = NoCompression
	}
	return &oo
}

// Write serializes the index to w per the layout documented in the
// package comment.
func (x *Index) Write(w io.Writer, o *WriterOptions) error {
	o = o.norm()

	payload := x.appendPayload(make([]byte, 0, x.payloadSize()))
	codec := byte(payloadRaw)
	if o.Compression == SnappyCompression {
		if snp := snappy.Encode(nil, payload); len(snp) < len(payload)-len(payload)/4 {
			payload, codec = snp, payloadSnappy
		}
	}

	head := make([]byte, 0, len(magic)+2)
	head = append(head, magic...)
	head = append(head, formatVersion, codec)
	if _, err := w.Write(head); err != nil {
		return err
	}
	_, err := w.Write(payload)
	return err
}

// WriteFile serializes the index to path atomically: the bytes land in
// a temporary file in the same directory which is renamed into place
// only once fully written, so a failed build never leaves a partial
// index behind.
func WriteFile(path string, x *Index, o *WriterOptions) error {
	f, err := ioutil.TempFile(filepath.Dir(path), ".refidx-tmp-")
	if err != nil {
		return err
	}
	tmp := f.Name()

	bw := bufio.NewWriter(f)
	if err := x.Write(bw, o); err == nil {
		err = bw.Flush()
	}
	if err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

func (x *Index) payloadSize() int {
	w := x.width()
	size := 8 + 1 + 1 + x.alpha.Len() + len(x.seq) + len(x.sa)*w + 1
	if x.pref != nil {
		size += 2 + len(x.pref.spans)*2*w
	}
	return size
}

func (x *Index) appendPayload(buf []byte) []byte {
	w := x.width()

	buf = appendUint(buf, uint64(len(x.seq)), 8)
	buf = append(buf, x.alpha.Sentinel())
	buf = append(buf, byte(x.alpha.Len()))
	buf = append(buf, x.alpha.symbols...)
	buf = append(buf, x.seq...)
	for _, pos := range x.sa {
		buf = appendUint(buf, uint64(pos), w)
	}
	if x.pref == nil {
		return append(buf, 0)
	}
	buf = append(buf, 1)
	buf = appendUint(buf, uint64(x.pref.k), 2)
	for _, s := range x.pref.spans {
		buf = appendUint(buf, uint64(s.Lo), w)
		buf = appendUint(buf, uint64(s.Hi), w)
	}
	return buf
}

func appendUint(buf []byte, v uint64, w int) []byte {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	return append(buf, tmp[:w]...)
}
