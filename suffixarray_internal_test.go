package refidx

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("suffixArray", func() {
	It("should handle degenerate inputs", func() {
		Expect(suffixArray([]int{0})).To(Equal([]int{0}))
		Expect(suffixArray([]int{1, 0})).To(Equal([]int{1, 0}))
	})

	It("should break rank ties by the doubled offset", func() {
		Expect(suffixArray([]int{1, 2, 1, 2, 0})).To(Equal([]int{4, 2, 0, 3, 1}))
	})
})

var _ = Describe("widthFor", func() {
	It("should pick the narrowest width that fits n inclusive", func() {
		Expect(widthFor(7)).To(Equal(4))
		Expect(widthFor(1<<32 - 1)).To(Equal(4))
		Expect(widthFor(1 << 32)).To(Equal(8))
	})
})

var _ = Describe("tableSize", func() {
	It("should compute sigma^k", func() {
		size, err := tableSize(4, 3)
		Expect(err).NotTo(HaveOccurred())
		Expect(size).To(Equal(64))
	})

	It("should reject out-of-range orders", func() {
		_, err := tableSize(4, 0)
		Expect(err).To(HaveOccurred())
		_, err = tableSize(4, 1<<16)
		Expect(err).To(HaveOccurred())
		_, err = tableSize(4, 40)
		Expect(err).To(HaveOccurred())
	})
})
