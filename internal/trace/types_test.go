package trace

import (
	"errors"
	"testing"
)

// tinyTrace builds the 3×3, 3-step reference run: bond (horizontal,0,0)
// merges sites 0 and 1, then bond (vertical,1,1) merges sites 4 and 7.
func tinyTrace(t *testing.T) *Trace {
	t.Helper()
	meta := Metadata{Size: 3, P: 0.5, TotalStates: 3, TopN: 2}
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
	bonds := []Bond{
		{Dir: Horizontal, Row: 0, Col: 0},
		{Dir: Vertical, Row: 1, Col: 1},
	}
	top := [][]uint32{{1, 1}, {2, 1}, {2, 2}}

	tr, err := New(meta, sizes, roots, bonds, top)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return tr
}

func TestNewShapeChecks(t *testing.T) {
	meta := Metadata{Size: 2, TotalStates: 2}
	ones := []uint32{1, 1, 1, 1}

	tests := []struct {
		name     string
		meta     Metadata
		sizes    [][]uint32
		bonds    []Bond
		topSizes [][]uint32
	}{
		{"zero grid", Metadata{Size: 0, TotalStates: 1}, [][]uint32{{}}, nil, nil},
		{"zero states", Metadata{Size: 2, TotalStates: 0}, nil, nil, nil},
		{"missing frame", meta, [][]uint32{ones}, []Bond{{}}, nil},
		{"short frame", meta, [][]uint32{ones, {1, 1}}, []Bond{{}}, nil},
		{"bond count", meta, [][]uint32{ones, ones}, nil, nil},
		{"bond outside grid", meta, [][]uint32{ones, ones}, []Bond{{Dir: Horizontal, Row: 0, Col: 1}}, nil},
		{"ranking without top_n", meta, [][]uint32{ones, ones}, []Bond{{Dir: Vertical}}, [][]uint32{{1}, {1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.meta, tt.sizes, nil, tt.bonds, tt.topSizes)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrBadFormat) {
				t.Errorf("expected ErrBadFormat, got %v", err)
			}
		})
	}
}

func TestAccessors(t *testing.T) {
	tr := tinyTrace(t)

	if tr.Frames() != 3 {
		t.Errorf("expected 3 frames, got %d", tr.Frames())
	}
	if tr.Sites() != 9 {
		t.Errorf("expected 9 sites, got %d", tr.Sites())
	}
	if !tr.HasRoots() {
		t.Error("expected roots")
	}
	if len(tr.Bonds()) != 2 {
		t.Errorf("expected 2 bonds, got %d", len(tr.Bonds()))
	}

	sizes, err := tr.SiteSizes(1)
	if err != nil {
		t.Fatalf("SiteSizes failed: %v", err)
	}
	if sizes[0] != 2 || sizes[2] != 1 {
		t.Errorf("unexpected frame 1 sizes: %v", sizes)
	}

	top, err := tr.TopSizes(2)
	if err != nil {
		t.Fatalf("TopSizes failed: %v", err)
	}
	if top[0] != 2 || top[1] != 2 {
		t.Errorf("unexpected frame 2 ranking: %v", top)
	}
}

func TestRangeErrors(t *testing.T) {
	tr := tinyTrace(t)

	for _, step := range []int{-1, 3, 100} {
		if _, err := tr.SiteSizes(step); !errors.Is(err, ErrRange) {
			t.Errorf("SiteSizes(%d): expected ErrRange, got %v", step, err)
		}
		if _, err := tr.Roots(step); !errors.Is(err, ErrRange) {
			t.Errorf("Roots(%d): expected ErrRange, got %v", step, err)
		}
		if _, err := tr.TopSizes(step); !errors.Is(err, ErrRange) {
			t.Errorf("TopSizes(%d): expected ErrRange, got %v", step, err)
		}
	}
}

func TestBondEndpoints(t *testing.T) {
	h := Bond{Dir: Horizontal, Row: 2, Col: 1}
	r0, c0, r1, c1 := h.Endpoints()
	if r0 != 2 || c0 != 1 || r1 != 2 || c1 != 2 {
		t.Errorf("horizontal endpoints wrong: (%d,%d)-(%d,%d)", r0, c0, r1, c1)
	}
	if h.Site(3) != 7 || h.Other(3) != 8 {
		t.Errorf("horizontal site indices wrong: %d, %d", h.Site(3), h.Other(3))
	}

	v := Bond{Dir: Vertical, Row: 1, Col: 1}
	r0, c0, r1, c1 = v.Endpoints()
	if r0 != 1 || c0 != 1 || r1 != 2 || c1 != 1 {
		t.Errorf("vertical endpoints wrong: (%d,%d)-(%d,%d)", r0, c0, r1, c1)
	}
	if v.Site(3) != 4 || v.Other(3) != 7 {
		t.Errorf("vertical site indices wrong: %d, %d", v.Site(3), v.Other(3))
	}

	if Horizontal.String() != "horizontal" || Vertical.String() != "vertical" {
		t.Error("direction names wrong")
	}
}
