package decode

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/zzstoatzz/percolation/internal/trace"
)

// newReferenceTrace mirrors testTrace for specs, which have no *testing.T.
func newReferenceTrace() *trace.Trace {
	meta := trace.Metadata{Size: 3, P: 0.5, TotalStates: 3, TopN: 2}
	sizes := [][]uint32{
		{1, 1, 1, 1, 1, 1, 1, 1, 1},
		{2, 2, 1, 1, 1, 1, 1, 1, 1},
		{2, 2, 1, 1, 2, 1, 1, 2, 1},
	}
	roots := [][]uint32{
		{0, 1, 2, 3, 4, 5, 6, 7, 8},
		{0, 0, 2, 3, 4, 5, 6, 7, 8},
		{0, 0, 2, 3, 4, 5, 6, 4, 8},
	}
	bonds := []trace.Bond{
		{Dir: trace.Horizontal, Row: 0, Col: 0},
		{Dir: trace.Vertical, Row: 1, Col: 1},
	}
	top := [][]uint32{{1, 1}, {2, 1}, {2, 2}}

	tr, err := trace.New(meta, sizes, roots, bonds, top)
	Expect(err).NotTo(HaveOccurred())
	return tr
}

var _ = Describe("round-trip through the on-disk layouts", func() {
	var original *trace.Trace

	BeforeEach(func() {
		original = newReferenceTrace()
	})

	expectSameModel := func(got *trace.Trace, withRoots bool) {
		Expect(got.Meta().Size).To(Equal(original.Meta().Size))
		Expect(got.Frames()).To(Equal(original.Frames()))
		Expect(got.Bonds()).To(Equal(original.Bonds()))
		Expect(got.HasRoots()).To(Equal(withRoots))

		for step := 0; step < original.Frames(); step++ {
			want, _ := original.SiteSizes(step)
			sizes, _ := got.SiteSizes(step)
			Expect(sizes).To(Equal(want), "sizes at step %d", step)

			wantTop, _ := original.TopSizes(step)
			top, _ := got.TopSizes(step)
			Expect(top).To(Equal(wantTop), "ranking at step %d", step)

			if withRoots {
				wantRoots, _ := original.Roots(step)
				roots, _ := got.Roots(step)
				Expect(roots).To(Equal(wantRoots), "roots at step %d", step)
			}
		}
	}

	It("survives the interleaved layout", func() {
		blobs, err := EncodeInterleaved(original)
		Expect(err).NotTo(HaveOccurred())
		Expect(blobs).To(HaveKey(BlobSteps))

		metaDoc, err := MetadataJSON(original.Meta())
		Expect(err).NotTo(HaveOccurred())

		got, err := Decode(metaDoc, blobs)
		Expect(err).NotTo(HaveOccurred())
		expectSameModel(got, true)
	})

	It("survives the split layout", func() {
		blobs := EncodeSplit(original)
		Expect(blobs).To(HaveLen(2))

		metaDoc, err := MetadataJSON(original.Meta())
		Expect(err).NotTo(HaveOccurred())

		// split drops roots; the ranking is re-derived from sizes
		got, err := Decode(metaDoc, blobs)
		Expect(err).NotTo(HaveOccurred())
		expectSameModel(got, false)
	})

	It("survives the decomposed layout", func() {
		blobs, err := EncodeDecomposed(original)
		Expect(err).NotTo(HaveOccurred())
		Expect(blobs).To(HaveKey(BlobRoots))
		Expect(blobs).To(HaveKey(BlobTopSizes))

		metaDoc, err := MetadataJSON(original.Meta())
		Expect(err).NotTo(HaveOccurred())

		got, err := Decode(metaDoc, blobs)
		Expect(err).NotTo(HaveOccurred())
		expectSameModel(got, true)
	})

	It("produces identical models from every layout", func() {
		interleaved, err := EncodeInterleaved(original)
		Expect(err).NotTo(HaveOccurred())
		decomposed, err := EncodeDecomposed(original)
		Expect(err).NotTo(HaveOccurred())

		metaDoc, err := MetadataJSON(original.Meta())
		Expect(err).NotTo(HaveOccurred())

		a, err := Decode(metaDoc, interleaved)
		Expect(err).NotTo(HaveOccurred())
		b, err := Decode(metaDoc, decomposed)
		Expect(err).NotTo(HaveOccurred())

		Expect(a).To(Equal(b))
	})
})
