package refidx_test

import (
	"bytes"
	"strings"

	"github.com/refidx/refidx"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("FASTA", func() {
	It("should parse multi-line records", func() {
		recs, err := refidx.ReadFASTA(strings.NewReader(
			">chr1 primary\nACGT\nACGT\n\n>chr2\nTTTT\n",
		))
		Expect(err).NotTo(HaveOccurred())
		Expect(recs).To(Equal([]refidx.Record{
			{Header: "chr1 primary", Sequence: []byte("ACGTACGT")},
			{Header: "chr2", Sequence: []byte("TTTT")},
		}))
	})

	It("should uppercase sequence lines", func() {
		recs, err := refidx.ReadFASTA(strings.NewReader(">q\nacgT\n"))
		Expect(err).NotTo(HaveOccurred())
		Expect(recs).To(HaveLen(1))
		Expect(recs[0].Sequence).To(Equal([]byte("ACGT")))
	})

	It("should tolerate blank lines and surrounding whitespace", func() {
		recs, err := refidx.ReadFASTA(strings.NewReader(
			"\n  >q  \n\n  AC  \n\nGT\n\n",
		))
		Expect(err).NotTo(HaveOccurred())
		Expect(recs).To(Equal([]refidx.Record{
			{Header: "q", Sequence: []byte("ACGT")},
		}))
	})

	It("should keep headerless records", func() {
		recs, err := refidx.ReadFASTA(strings.NewReader(">empty\n>full\nAC\n"))
		Expect(err).NotTo(HaveOccurred())
		Expect(recs).To(HaveLen(2))
		Expect(recs[0].Sequence).To(BeEmpty())
	})

	It("should yield no records on empty input", func() {
		recs, err := refidx.ReadFASTA(strings.NewReader(""))
		Expect(err).NotTo(HaveOccurred())
		Expect(recs).To(BeEmpty())
	})

	It("should reject sequence data before a header", func() {
		_, err := refidx.ReadFASTA(strings.NewReader("ACGT\n>late\n"))
		Expect(err).To(HaveOccurred())
	})

	It("should round-trip through WriteFASTA", func() {
		recs := []refidx.Record{
			{Header: "query-0", Sequence: []byte("ACGTAC")},
			{Header: "query-1", Sequence: []byte("TT")},
		}

		buf := new(bytes.Buffer)
		Expect(refidx.WriteFASTA(buf, recs)).To(Succeed())

		back, err := refidx.ReadFASTA(buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(back).To(Equal(recs))
	})
})
