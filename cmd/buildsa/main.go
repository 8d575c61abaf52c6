// Command buildsa builds a suffix-array index over the first record of
// a FASTA reference file and writes it to disk.
//
//	buildsa [-preftab k] [-compress] [-alphabet SYMS] <reference> <output>
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/refidx/refidx"
)

func main() {
	preftab := flag.Int("preftab", 0, "also build a prefix lookup table of order `k`")
	compress := flag.Bool("compress", false, "snappy-compress the index payload")
	alphabet := flag.String("alphabet", "ACGT", "real symbols of the reference alphabet")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 2 {
		usage()
		os.Exit(2)
	}
	if err := run(flag.Arg(0), flag.Arg(1), *preftab, *compress, *alphabet); err != nil {
		log.Fatalln("buildsa:", err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: buildsa [-preftab k] [-compress] [-alphabet SYMS] <reference> <output>")
	flag.PrintDefaults()
}

func run(reference, output string, preftab int, compress bool, symbols string) error {
	alpha, err := refidx.NewAlphabet('$', []byte(symbols))
	if err != nil {
		return err
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

	start := time.Now()
	x, err := refidx.Build(recs[0].Sequence, alpha, &refidx.BuildOptions{PrefTab: preftab})
	if err != nil {
		return err
	}
	fmt.Printf("built suffix array over %d symbols in %v\n", x.Len(), time.Since(start))
	if k := x.K(); k > 0 {
		fmt.Printf("built prefix table of order %d\n", k)
	}

	o := &refidx.WriterOptions{Compression: refidx.NoCompression}
	if compress {
		o.Compression = refidx.SnappyCompression
	}
	if err := refidx.WriteFile(output, x, o); err != nil {
		return err
	}
	if fi, err := os.Stat(output); err == nil {
		fmt.Printf("wrote %s (%d bytes)\n", output, fi.Size())
	}
	return nil
}
