package replay

import (
	"strconv"

	"github.com/zzstoatzz/percolation/internal/trace"
)

// TopK exposes the recorded largest-cluster ranking as per-rank time series
// ready for plotting. Purely a view over the trace; nothing is recomputed.
type TopK struct {
	tr *trace.Trace
}

func NewTopK(tr *trace.Trace) *TopK {
	return &TopK{tr: tr}
}

// Ranks returns the number of ranked clusters K.
func (k *TopK) Ranks() int { return k.tr.Meta().TopN }

// SeriesUpto returns, for each rank, the sequence of recorded sizes for
// steps 0 through step inclusive: result[r][t] is the size of the (r+1)-th
// largest cluster at step t. Empty when the trace carries no ranking.
func (k *TopK) SeriesUpto(step int) ([][]float64, error) {
	if step < 0 || step >= k.tr.Frames() {
		return nil, &trace.RangeError{Index: step, Len: k.tr.Frames()}
	}
	ranks := k.tr.Meta().TopN
	series := make([][]float64, ranks)
	for r := range series {
		series[r] = make([]float64, step+1)
	}
	for t := 0; t <= step; t++ {
		row, _ := k.tr.TopSizes(t)
		for r := 0; r < ranks; r++ {
			series[r][t] = float64(row[r])
		}
	}
	return series, nil
}

// Check verifies that the recorded ranking of every frame matches an
// independent per-cluster computation from that frame's sizes. Recorded
// tie-breaking is arbitrary, so only the size values are compared.
func (k *TopK) Check() error {
	ranks := k.tr.Meta().TopN
	if ranks == 0 {
		return nil
	}
	for t := 0; t < k.tr.Frames(); t++ {
		recorded, _ := k.tr.TopSizes(t)
		sizes, _ := k.tr.SiteSizes(t)
		want := trace.TopClusters(sizes, ranks)
		for r := range want {
			if recorded[r] != want[r] {
				return &trace.FormatError{Blob: "top_sizes", Want: int64(want[r]), Got: int64(recorded[r]),
					Reason: "recorded rank " + strconv.Itoa(r) + " disagrees with cluster sizes at step " + strconv.Itoa(t)}
			}
		}
	}
	return nil
}
