package trace

import "strconv"

// Validate checks the whole-trace invariants the recorder is supposed to
// guarantee and returns a FormatError on the first violation:
//
//   - frame 0 has every site at size 1 (no bonds applied yet)
//   - cluster sizes never shrink between consecutive frames
//   - each recorded ranking is descending and its head equals the frame's
//     largest cluster size
//
// The ranking itself is trusted as recorded; Validate only checks that it is
// internally consistent with the size arrays.
func (tr *Trace) Validate() error {
	for i, s := range tr.sizes[0] {
		if s != 1 {
			return &FormatError{Blob: "sizes", Want: 1, Got: int64(s),
				Reason: "initial frame has site " + strconv.Itoa(i) + " in a cluster"}
		}
	}

	for t := 1; t < len(tr.sizes); t++ {
		prev, cur := tr.sizes[t-1], tr.sizes[t]
		for i := range cur {
			if cur[i] < prev[i] {
				return &FormatError{Blob: "sizes", Want: int64(prev[i]), Got: int64(cur[i]),
					Reason: "cluster shrank at step " + strconv.Itoa(t) + " site " + strconv.Itoa(i)}
			}
		}
	}

	if tr.topSizes == nil {
		return nil
	}
	for t, ranks := range tr.topSizes {
		for k := 1; k < len(ranks); k++ {
			if ranks[k] > ranks[k-1] {
				return &FormatError{Blob: "top_sizes",
					Reason: "ranking not descending at step " + strconv.Itoa(t)}
			}
		}
		if len(ranks) == 0 {
			continue
		}
		var max uint32
		for _, s := range tr.sizes[t] {
			if s > max {
				max = s
			}
		}
		if ranks[0] != max {
			return &FormatError{Blob: "top_sizes", Want: int64(max), Got: int64(ranks[0]),
				Reason: "ranking head disagrees with largest cluster at step " + strconv.Itoa(t)}
		}
	}
	return nil
}
