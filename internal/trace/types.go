package trace

import "strconv"

// Metadata describes one recorded run, read from the metadata document that
// accompanies the binary blobs.
type Metadata struct {
	Size        int     // grid side length L
	P           float64 // bond occupation probability, display only
	TotalStates int     // number of recorded steps T
	TopN        int     // ranked clusters K, 0 when the recorder tracked none
}

// Sites returns the number of lattice sites L².
func (m Metadata) Sites() int { return m.Size * m.Size }

// Direction of a bond. The on-disk encoding uses a single byte where 1
// means horizontal; every other value is vertical.
type Direction uint8

const (
	Vertical   Direction = 0
	Horizontal Direction = 1
)

func (d Direction) String() string {
	if d == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Bond is the edge added at one step. A horizontal bond joins (Row,Col) to
// (Row,Col+1); a vertical bond joins (Row,Col) to (Row+1,Col). Bond b is the
// one applied transitioning from frame b to frame b+1.
type Bond struct {
	Dir Direction
	Row int
	Col int
}

// Endpoints returns the two sites the bond connects, as (row, col) pairs.
func (b Bond) Endpoints() (r0, c0, r1, c1 int) {
	if b.Dir == Horizontal {
		return b.Row, b.Col, b.Row, b.Col + 1
	}
	return b.Row, b.Col, b.Row + 1, b.Col
}

// Site returns the linear index of the bond's first endpoint on an L-wide
// grid, and Other the second.
func (b Bond) Site(l int) int { return b.Row*l + b.Col }

func (b Bond) Other(l int) int {
	if b.Dir == Horizontal {
		return b.Row*l + b.Col + 1
	}
	return (b.Row+1)*l + b.Col
}

// Trace is the normalized model every format variant decodes into. It owns
// the decoded arrays; downstream components reference them and never copy
// or mutate. Accessors return internal slices which callers must treat as
// read-only.
type Trace struct {
	meta     Metadata
	sizes    [][]uint32 // T × L², cluster size of the component containing each site
	roots    [][]uint32 // T × L², union-find representative per site; nil if not recorded
	bonds    []Bond     // T−1, in application order
	topSizes [][]uint32 // T × K, descending; nil when K == 0
}

// New assembles a Trace from decoded arrays, rejecting any shape that
// disagrees with the metadata. Deeper per-step invariants are left to
// Validate so that a caller can decide how strictly to check.
func New(meta Metadata, sizes, roots [][]uint32, bonds []Bond, topSizes [][]uint32) (*Trace, error) {
	if meta.Size < 1 {
		return nil, &FormatError{Blob: "metadata", Reason: "size must be at least 1"}
	}
	if meta.TotalStates < 1 {
		return nil, &FormatError{Blob: "metadata", Reason: "total_states must be at least 1"}
	}
	if meta.TopN < 0 {
		return nil, &FormatError{Blob: "metadata", Reason: "top_n must not be negative"}
	}

	sites := meta.Sites()
	if len(sizes) != meta.TotalStates {
		return nil, &FormatError{Blob: "sizes", Want: int64(meta.TotalStates), Got: int64(len(sizes)), Reason: "state count mismatch"}
	}
	for t, row := range sizes {
		if len(row) != sites {
			return nil, &FormatError{Blob: "sizes", Want: int64(sites), Got: int64(len(row)), Reason: "site count mismatch at step " + strconv.Itoa(t)}
		}
	}
	if roots != nil {
		if len(roots) != meta.TotalStates {
			return nil, &FormatError{Blob: "roots", Want: int64(meta.TotalStates), Got: int64(len(roots)), Reason: "state count mismatch"}
		}
		for t, row := range roots {
			if len(row) != sites {
				return nil, &FormatError{Blob: "roots", Want: int64(sites), Got: int64(len(row)), Reason: "site count mismatch at step " + strconv.Itoa(t)}
			}
		}
	}
	if len(bonds) != meta.TotalStates-1 {
		return nil, &FormatError{Blob: "bonds", Want: int64(meta.TotalStates - 1), Got: int64(len(bonds)), Reason: "bond count mismatch"}
	}
	for i, b := range bonds {
		_, _, r1, c1 := b.Endpoints()
		if b.Row < 0 || b.Col < 0 || r1 >= meta.Size || c1 >= meta.Size {
			return nil, &FormatError{Blob: "bonds", Reason: "bond " + strconv.Itoa(i) + " endpoint outside grid"}
		}
	}
	if meta.TopN == 0 {
		if len(topSizes) != 0 {
			return nil, &FormatError{Blob: "top_sizes", Reason: "ranking present but top_n is zero"}
		}
		topSizes = nil
	} else {
		if len(topSizes) != meta.TotalStates {
			return nil, &FormatError{Blob: "top_sizes", Want: int64(meta.TotalStates), Got: int64(len(topSizes)), Reason: "state count mismatch"}
		}
		for t, row := range topSizes {
			if len(row) != meta.TopN {
				return nil, &FormatError{Blob: "top_sizes", Want: int64(meta.TopN), Got: int64(len(row)), Reason: "rank count mismatch at step " + strconv.Itoa(t)}
			}
		}
	}

	return &Trace{meta: meta, sizes: sizes, roots: roots, bonds: bonds, topSizes: topSizes}, nil
}

// Meta returns the run metadata.
func (tr *Trace) Meta() Metadata { return tr.meta }

// Frames returns the number of recorded steps T.
func (tr *Trace) Frames() int { return tr.meta.TotalStates }

// Sites returns the number of lattice sites L².
func (tr *Trace) Sites() int { return tr.meta.Sites() }

// HasRoots reports whether the recorder stored union-find representatives.
// The render core never uses them; they are kept for fidelity and export.
func (tr *Trace) HasRoots() bool { return tr.roots != nil }

// SiteSizes returns the per-site cluster sizes at the given step.
func (tr *Trace) SiteSizes(step int) ([]uint32, error) {
	if step < 0 || step >= tr.meta.TotalStates {
		return nil, &RangeError{Index: step, Len: tr.meta.TotalStates}
	}
	return tr.sizes[step], nil
}

// Roots returns the per-site representatives at the given step, or nil if
// the trace variant did not record them.
func (tr *Trace) Roots(step int) ([]uint32, error) {
	if step < 0 || step >= tr.meta.TotalStates {
		return nil, &RangeError{Index: step, Len: tr.meta.TotalStates}
	}
	if tr.roots == nil {
		return nil, nil
	}
	return tr.roots[step], nil
}

// Bonds returns all T−1 bonds in application order.
func (tr *Trace) Bonds() []Bond { return tr.bonds }

// TopSizes returns the K largest cluster sizes recorded at the given step,
// descending. It returns nil when the trace carries no ranking.
func (tr *Trace) TopSizes(step int) ([]uint32, error) {
	if step < 0 || step >= tr.meta.TotalStates {
		return nil, &RangeError{Index: step, Len: tr.meta.TotalStates}
	}
	if tr.topSizes == nil {
		return nil, nil
	}
	return tr.topSizes[step], nil
}
