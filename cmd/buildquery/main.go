// Command buildquery samples query workloads from a FASTA reference
// for use with querysa.
//
//	buildquery [-n count] [-min len] [-max len] <reference> <output> <exactmatch|perturb>
//
// exactmatch emits verbatim substrings of the reference; perturb
// additionally rewrites roughly 5% of the sampled symbols, so a share
// of the queries miss.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/refidx/refidx"
)

func main() {
	count := flag.Int("n", 100, "number of queries to generate")
	minLen := flag.Int("min", 5, "minimum query length")
	maxLen := flag.Int("max", 30, "maximum query length")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 3 {
		usage()
		os.Exit(2)
	}
	if err := run(flag.Arg(0), flag.Arg(1), flag.Arg(2), *count, *minLen, *maxLen); err != nil {
		log.Fatalln("buildquery:", err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: buildquery [-n count] [-min len] [-max len] <reference> <output> <exactmatch|perturb>")
	flag.PrintDefaults()
}

func run(reference, output, strategy string, count, minLen, maxLen int) error {
	if strategy != "exactmatch" && strategy != "perturb" {
		return fmt.Errorf("unknown strategy %q", strategy)
	}
	if minLen < 1 || maxLen < minLen {
		return fmt.Errorf("invalid length range [%d, %d]", minLen, maxLen)
	}

	f, err := os.Open(reference)
	if err != nil {
		return err
	}
	recs, err := refidx.ReadFASTA(f)
	f.Close()
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		return fmt.Errorf("reference file %s holds no records", reference)
	}
	seq := recs[0].Sequence
	if len(seq) <= maxLen {
		return fmt.Errorf("reference is shorter than the maximum query length %d", maxLen)
	}

	symbols := refidx.DNA().Symbols()
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	queries := make([]refidx.Record, count)
	for i := range queries {
		size := minLen + rnd.Intn(maxLen-minLen+1)
		start := rnd.Intn(len(seq) - size)
		q := append([]byte(nil), seq[start:start+size]...)
		if strategy == "perturb" {
			for j := range q {
				if rnd.Intn(100) < 5 {
					q[j] = symbols[rnd.Intn(len(symbols))]
				}
			}
		}
		queries[i] = refidx.Record{
			Header:   fmt.Sprintf("query-%d", i),
			Sequence: q,
		}
	}

	out, err := os.Create(output)
	if err != nil {
		return err
	}
	if err := refidx.WriteFASTA(out, queries); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
