package refidx

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Record is a single FASTA record: a '>' header line and the
// concatenation of the sequence lines that follow it.
type Record struct {
	Header   string
	Sequence []byte
}

// ReadFASTA parses all records from r. Sequence lines are uppercased
// and concatenated; blank lines are skipped; empty input yields no
// records. Symbols are not validated here, that happens against the
// alphabet at build or query time.
func ReadFASTA(r io.Reader) ([]Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 64<<20)

	var recs []Record
	var cur Record
	open := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line[0] == '>' {
			if open {
				recs = append(recs, cur)
			}
			cur = Record{Header: strings.TrimSpace(line[1:])}
			open = true
			continue
		}
		if !open {
			return nil, fmt.Errorf("refidx: sequence data before first FASTA header")
		}
		cur.Sequence = append(cur.Sequence, strings.ToUpper(line)...)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if open {
		recs = append(recs, cur)
	}
	return recs, nil
}

// WriteFASTA writes records to w, one sequence line per record.
func WriteFASTA(w io.Writer, recs []Record) error {
	bw := bufio.NewWriter(w)
	for _, rec := range recs {
		if _, err := fmt.Fprintf(bw, ">%s\n%s\n", rec.Header, rec.Sequence); err != nil {
			return err
		}
	}
	return bw.Flush()
}
