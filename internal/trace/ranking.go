package trace

import "sort"

// TopClusters computes the k largest cluster sizes for one frame of per-site
// sizes, descending, padded with zeros when fewer than k clusters exist.
//
// The frame stores one value per site, so a cluster of size s appears s
// times; the number of distinct clusters of size s is therefore the count of
// sites carrying s divided by s. This recovers the per-cluster ranking
// without needing union-find representatives.
func TopClusters(frame []uint32, k int) []uint32 {
	if k <= 0 {
		return nil
	}
	hist := make(map[uint32]int, len(frame))
	for _, s := range frame {
		hist[s]++
	}
	distinct := make([]uint32, 0, len(hist))
	for s := range hist {
		distinct = append(distinct, s)
	}
	sort.Slice(distinct, func(i, j int) bool { return distinct[i] > distinct[j] })

	out := make([]uint32, 0, k)
	for _, s := range distinct {
		if s == 0 {
			continue
		}
		clusters := hist[s] / int(s)
		for n := 0; n < clusters && len(out) < k; n++ {
			out = append(out, s)
		}
		if len(out) == k {
			return out
		}
	}
	for len(out) < k {
		out = append(out, 0)
	}
	return out
}
