// Command querysa runs FASTA queries against a buildsa index.
//
//	querysa [-quiet] <index> <queries> <naive|simpaccel> [output]
//
// Results are written one line per query, in input order:
// header,count,pos1,pos2,... A query with an invalid symbol reports
// the error on its own line and does not abort the batch.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/refidx/refidx"
)

func main() {
	quiet := flag.Bool("quiet", false, "run the queries without writing results")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 3 || flag.NArg() > 4 {
		usage()
		os.Exit(2)
	}
	output := ""
	if flag.NArg() == 4 {
		output = flag.Arg(3)
	}
	if err := run(flag.Arg(0), flag.Arg(1), flag.Arg(2), output, *quiet); err != nil {
		log.Fatalln("querysa:", err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: querysa [-quiet] <index> <queries> <naive|simpaccel> [output]")
	flag.PrintDefaults()
}

func run(indexPath, queriesPath, modeName, output string, quiet bool) error {
	mode, err := refidx.ParseMode(modeName)
	if err != nil {
		return err
	}

	x, err := refidx.ReadFile(indexPath)
	if err != nil {
		return err
	}

	qf, err := os.Open(queriesPath)
	if err != nil {
		return err
	}
	queries, err := refidx.ReadFASTA(qf)
	qf.Close()
	if err != nil {
		return err
	}

	var out *bufio.Writer
	if !quiet {
		var w io.Writer = os.Stdout
		if output != "" {
			f, err := os.Create(output)
			if err != nil {
				return err
			}
			defer f.Close()
			w = f
		}
		out = bufio.NewWriter(w)
	}

	start := time.Now()
	for _, rec := range queries {
		span, err := x.Search(rec.Sequence, mode)
		if out == nil {
			continue
		}
		if err != nil {
			fmt.Fprintf(out, "%s,error: %v\n", rec.Header, err)
			continue
		}
		fmt.Fprintf(out, "%s,%d", rec.Header, span.Count())
		for _, pos := range x.Positions(span) {
			fmt.Fprintf(out, ",%d", pos)
		}
		fmt.Fprintln(out)
	}
	if out != nil {
		if err := out.Flush(); err != nil {
			return err
		}
	}
	fmt.Fprintf(os.Stderr, "ran %d %s queries in %v\n", len(queries), mode, time.Since(start))
	return nil
}
