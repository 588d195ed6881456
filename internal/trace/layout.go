package trace

// Layout holds the static lattice geometry a renderer needs: one (x, y)
// coordinate per site and line segments for bond endpoints. Coordinates use
// the recorder's convention of x = column, y = row, so (0, 0) is the top-left
// site. Computed once from L and never changes.
type Layout struct {
	size   int
	coords []Point
}

// Point is a site position in grid units.
type Point struct {
	X, Y float64
}

// Segment is a bond drawn between two site positions.
type Segment struct {
	From, To Point
}

// NewLayout precomputes site coordinates for an L×L grid.
func NewLayout(l int) *Layout {
	coords := make([]Point, l*l)
	for r := 0; r < l; r++ {
		for c := 0; c < l; c++ {
			coords[r*l+c] = Point{X: float64(c), Y: float64(r)}
		}
	}
	return &Layout{size: l, coords: coords}
}

// Size returns the grid side length.
func (ly *Layout) Size() int { return ly.size }

// Site returns the position of site i.
func (ly *Layout) Site(i int) Point { return ly.coords[i] }

// Sites returns the positions of all L² sites in site-index order. The
// returned slice is shared; callers must not modify it.
func (ly *Layout) Sites() []Point { return ly.coords }

// BondSegment returns the endpoints of a bond as a drawable line segment.
func (ly *Layout) BondSegment(b Bond) Segment {
	r0, c0, r1, c1 := b.Endpoints()
	return Segment{
		From: Point{X: float64(c0), Y: float64(r0)},
		To:   Point{X: float64(c1), Y: float64(r1)},
	}
}
