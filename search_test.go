package refidx_test

import (
	"errors"
	"math/rand"
	"sync"

	"github.com/refidx/refidx"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Search", func() {
	var abn *refidx.Alphabet
	modes := []refidx.Mode{refidx.ModeNaive, refidx.ModeSimpaccel}

	BeforeEach(func() {
		abn = mustAlphabet('$', "ABN")
	})

	It("should locate occurrences", func() {
		x := mustBuild("BANANA", abn, nil)

		for _, mode := range modes {
			span, err := x.Search([]byte("ANA"), mode)
			Expect(err).NotTo(HaveOccurred())
			Expect(span).To(Equal(refidx.Span{Lo: 2, Hi: 4}), "mode %s", mode)
			Expect(span.Count()).To(Equal(2))
			Expect(x.Positions(span)).To(ConsistOf(1, 3))
		}
	})

	It("should miss at the insertion point", func() {
		x := mustBuild("BANANA", abn, nil)

		for _, mode := range modes {
			span, err := x.Search([]byte("ANB"), mode)
			Expect(err).NotTo(HaveOccurred())
			Expect(span).To(Equal(refidx.Span{Lo: 4, Hi: 4}), "mode %s", mode)
			Expect(span.IsEmpty()).To(BeTrue())

			span, err = x.Search([]byte("NN"), mode)
			Expect(err).NotTo(HaveOccurred())
			Expect(span.IsEmpty()).To(BeTrue())
			Expect(x.Positions(span)).To(BeEmpty())
		}
	})

	It("should return the full interval for empty queries", func() {
		x := mustBuild("BANANA", abn, nil)

		for _, mode := range modes {
			span, err := x.Search(nil, mode)
			Expect(err).NotTo(HaveOccurred())
			Expect(span).To(Equal(refidx.Span{Lo: 0, Hi: 7}), "mode %s", mode)
		}
	})

	It("should reject invalid query symbols before comparing", func() {
		x := mustBuild("ACGTACGT", nil, nil)

		for _, mode := range modes {
			var st refidx.Stats
			_, err := x.SearchWithStats([]byte("ACZ"), mode, &st)
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, refidx.ErrInvalidSymbol)).To(BeTrue(), "got %v", err)
			Expect(st).To(Equal(refidx.Stats{}))

			_, err = x.Search([]byte("AC$"), mode)
			Expect(errors.Is(err, refidx.ErrInvalidSymbol)).To(BeTrue(), "got %v", err)
		}
	})

	It("should isolate bad queries from their siblings", func() {
		x := mustBuild("ACGTACGT", nil, nil)

		_, err := x.Search([]byte("ZZZ"), refidx.ModeNaive)
		Expect(errors.Is(err, refidx.ErrInvalidSymbol)).To(BeTrue())

		span, err := x.Search([]byte("ACGT"), refidx.ModeNaive)
		Expect(err).NotTo(HaveOccurred())
		Expect(span.Count()).To(Equal(2))
	})

	It("should reject unknown modes", func() {
		x := mustBuild("BANANA", abn, nil)
		_, err := x.Search([]byte("A"), refidx.Mode(42))
		Expect(err).To(HaveOccurred())
	})

	It("should agree with a linear scan in both modes", func() {
		rnd := rand.New(rand.NewSource(7))
		seq := randomDNA(rnd, 2048)
		x := mustBuild(string(seq), nil, nil)

		for i := 0; i < 200; i++ {
			var q []byte
			if i%3 == 0 {
				q = randomDNA(rnd, 1+rnd.Intn(12))
			} else {
				off := rnd.Intn(len(seq) - 20)
				q = seq[off : off+1+rnd.Intn(20)]
			}

			want := scanSearch(x, q)
			for _, mode := range modes {
				got, err := x.Search(q, mode)
				Expect(err).NotTo(HaveOccurred())
				Expect(got).To(Equal(want), "mode %s query %s", mode, q)
			}
		}
	})

	It("should agree across table-bracketed and plain indexes", func() {
		rnd := rand.New(rand.NewSource(8))
		seq := randomDNA(rnd, 1024)
		plain := mustBuild(string(seq), nil, nil)
		tabbed := mustBuild(string(seq), nil, &refidx.BuildOptions{PrefTab: 4})

		for i := 0; i < 100; i++ {
			// Both above and below the table order, forcing the
			// whole-array fallback for the short ones.
			q := randomDNA(rnd, 1+rnd.Intn(8))
			for _, mode := range modes {
				want, err := plain.Search(q, mode)
				Expect(err).NotTo(HaveOccurred())
				got, err := tabbed.Search(q, mode)
				Expect(err).NotTo(HaveOccurred())
				Expect(got).To(Equal(want), "mode %s query %s", mode, q)
			}
		}
	})

	It("should never compare more symbols accelerated than not", func() {
		rnd := rand.New(rand.NewSource(9))
		seq := randomDNA(rnd, 4096)
		x := mustBuild(string(seq), nil, nil)

		for i := 0; i < 50; i++ {
			off := rnd.Intn(len(seq) - 32)
			q := seq[off : off+4+rnd.Intn(28)]

			var naive, accel refidx.Stats
			s1, err := x.SearchWithStats(q, refidx.ModeNaive, &naive)
			Expect(err).NotTo(HaveOccurred())
			s2, err := x.SearchWithStats(q, refidx.ModeSimpaccel, &accel)
			Expect(err).NotTo(HaveOccurred())

			Expect(s2).To(Equal(s1))
			Expect(accel.Probes).To(Equal(naive.Probes))
			Expect(accel.SymbolComparisons).To(BeNumerically("<=", naive.SymbolComparisons))
		}
	})

	It("should support concurrent readers", func() {
		rnd := rand.New(rand.NewSource(10))
		seq := randomDNA(rnd, 1024)
		x := mustBuild(string(seq), nil, &refidx.BuildOptions{PrefTab: 2})

		queries := make([][]byte, 16)
		wants := make([]refidx.Span, len(queries))
		for i := range queries {
			off := rnd.Intn(len(seq) - 10)
			queries[i] = seq[off : off+2+rnd.Intn(8)]
			wants[i] = scanSearch(x, queries[i])
		}

		var wg sync.WaitGroup
		for i := range queries {
			wg.Add(1)
			go func(i int) {
				defer GinkgoRecover()
				defer wg.Done()

				mode := modes[i%len(modes)]
				got, err := x.Search(queries[i], mode)
				Expect(err).NotTo(HaveOccurred())
				Expect(got).To(Equal(wants[i]))
			}(i)
		}
		wg.Wait()
	})
})
