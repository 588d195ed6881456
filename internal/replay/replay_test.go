package replay

import (
	"errors"
	"reflect"
	"testing"

	"github.com/zzstoatzz/percolation/internal/render"
	"github.com/zzstoatzz/percolation/internal/trace"
)

// testTrace builds the 3×3, 3-step reference run.
func testTrace(t *testing.T) *trace.Trace {
	t.Helper()
	meta := trace.Metadata{Size: 3, P: 0.5, TotalStates: 3, TopN: 2}
	sizes := [][]uint32{
		{1, 1, 1, 1, 1, 1, 1, 1, 1},
		{2, 2, 1, 1, 1, 1, 1, 1, 1},
		{2, 2, 1, 1, 2, 1, 1, 2, 1},
	}
	bonds := []trace.Bond{
		{Dir: trace.Horizontal, Row: 0, Col: 0},
		{Dir: trace.Vertical, Row: 1, Col: 1},
	}
	top := [][]uint32{{1, 1}, {2, 1}, {2, 2}}

	tr, err := trace.New(meta, sizes, nil, bonds, top)
	if err != nil {
		t.Fatalf("building test trace: %v", err)
	}
	return tr
}

func TestRevealPrefixes(t *testing.T) {
	tr := testTrace(t)
	r := NewReveal(tr)

	for step := 0; step < tr.Frames(); step++ {
		bonds, err := r.Upto(step)
		if err != nil {
			t.Fatalf("Upto(%d) failed: %v", step, err)
		}
		if len(bonds) != step {
			t.Errorf("Upto(%d) has %d bonds, want %d", step, len(bonds), step)
		}
	}

	one, _ := r.Upto(1)
	if one[0] != (trace.Bond{Dir: trace.Horizontal, Row: 0, Col: 0}) {
		t.Errorf("first revealed bond wrong: %+v", one[0])
	}
	two, _ := r.Upto(2)
	if two[1] != (trace.Bond{Dir: trace.Vertical, Row: 1, Col: 1}) {
		t.Errorf("second revealed bond wrong: %+v", two[1])
	}
}

func TestRevealRange(t *testing.T) {
	r := NewReveal(testTrace(t))
	for _, step := range []int{-1, 3} {
		if _, err := r.Upto(step); !errors.Is(err, trace.ErrRange) {
			t.Errorf("Upto(%d): expected ErrRange, got %v", step, err)
		}
	}
}

func TestTopKSeries(t *testing.T) {
	k := NewTopK(testTrace(t))

	if k.Ranks() != 2 {
		t.Fatalf("expected 2 ranks, got %d", k.Ranks())
	}

	series, err := k.SeriesUpto(2)
	if err != nil {
		t.Fatalf("SeriesUpto failed: %v", err)
	}
	if !reflect.DeepEqual(series[0], []float64{1, 2, 2}) {
		t.Errorf("rank 0 series = %v, want [1 2 2]", series[0])
	}
	if !reflect.DeepEqual(series[1], []float64{1, 1, 2}) {
		t.Errorf("rank 1 series = %v, want [1 1 2]", series[1])
	}

	partial, err := k.SeriesUpto(1)
	if err != nil {
		t.Fatalf("SeriesUpto(1) failed: %v", err)
	}
	if len(partial[0]) != 2 {
		t.Errorf("prefix length %d, want 2", len(partial[0]))
	}

	if _, err := k.SeriesUpto(5); !errors.Is(err, trace.ErrRange) {
		t.Errorf("expected ErrRange, got %v", err)
	}
}

func TestTopKCheck(t *testing.T) {
	if err := NewTopK(testTrace(t)).Check(); err != nil {
		t.Errorf("consistent ranking rejected: %v", err)
	}
}

func TestTopKCheckDetectsMismatch(t *testing.T) {
	meta := trace.Metadata{Size: 2, TotalStates: 2, TopN: 1}
	sizes := [][]uint32{{1, 1, 1, 1}, {2, 2, 1, 1}}
	bonds := []trace.Bond{{Dir: trace.Horizontal, Row: 0, Col: 0}}
	// rank values are plausible per Validate (head can't disagree with the
	// max) so corrupt a deeper rank via K=1 and a head-only mismatch is
	// impossible; use K over-reporting instead
	top := [][]uint32{{1}, {2}}
	tr, err := trace.New(meta, sizes, nil, bonds, top)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := NewTopK(tr).Check(); err != nil {
		t.Errorf("consistent single-rank trace rejected: %v", err)
	}

	meta.TopN = 2
	top = [][]uint32{{1, 1}, {2, 2}} // frame 1 has only one size-2 cluster
	tr, err = trace.New(meta, sizes, nil, bonds, top)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := NewTopK(tr).Check(); !errors.Is(err, trace.ErrBadFormat) {
		t.Errorf("expected ErrBadFormat, got %v", err)
	}
}

func TestGeneratorSequence(t *testing.T) {
	tr := testTrace(t)
	g := NewGenerator(tr, render.DefaultOptions(), nil)

	var steps []int
	for {
		fr, ok := g.Next()
		if !ok {
			break
		}
		steps = append(steps, fr.Step)

		if len(fr.Sizes) != tr.Sites() {
			t.Fatalf("frame %d: %d sizes", fr.Step, len(fr.Sizes))
		}
		if len(fr.Colors) != tr.Sites() || len(fr.Markers) != tr.Sites() {
			t.Fatalf("frame %d: attribute lengths wrong", fr.Step)
		}
		if len(fr.Bonds) != fr.Step {
			t.Errorf("frame %d: %d bonds revealed, want %d", fr.Step, len(fr.Bonds), fr.Step)
		}
		if len(fr.TopK) != 2 || len(fr.TopK[0]) != fr.Step+1 {
			t.Errorf("frame %d: ranking prefix shape wrong", fr.Step)
		}
	}
	if !reflect.DeepEqual(steps, []int{0, 1, 2}) {
		t.Errorf("steps = %v, want [0 1 2]", steps)
	}
}

func TestGeneratorRestartable(t *testing.T) {
	g := NewGenerator(testTrace(t), render.DefaultOptions(), nil)

	collect := func() []Frame {
		var frames []Frame
		for {
			fr, ok := g.Next()
			if !ok {
				return frames
			}
			frames = append(frames, fr)
		}
	}

	first := collect()
	g.Reset()
	second := collect()

	if !reflect.DeepEqual(first, second) {
		t.Error("second pass differs from first")
	}
}

func TestGeneratorRandomAccessMatchesSequential(t *testing.T) {
	tr := testTrace(t)
	seq := NewGenerator(tr, render.DefaultOptions(), nil)
	rnd := NewGenerator(tr, render.DefaultOptions(), nil)

	for {
		want, ok := seq.Next()
		if !ok {
			break
		}
		got, err := rnd.Frame(want.Step)
		if err != nil {
			t.Fatalf("Frame(%d) failed: %v", want.Step, err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("frame %d differs between access paths", want.Step)
		}
	}

	if _, err := rnd.Frame(99); !errors.Is(err, trace.ErrRange) {
		t.Errorf("expected ErrRange, got %v", err)
	}
}

func TestGeneratorNoPulseOnFirstFrame(t *testing.T) {
	tr := testTrace(t)
	g := NewGenerator(tr, render.DefaultOptions(), render.NewPulseTracker(0.01, 2.0, 2.0))

	fr, ok := g.Next()
	if !ok {
		t.Fatal("no first frame")
	}
	_, want := render.Map(fr.Sizes, render.DefaultOptions())
	if !reflect.DeepEqual(fr.Markers, want) {
		t.Error("first frame markers were pulsed")
	}

	// the second frame's merge must pulse with such an eager tracker
	fr2, _ := g.Next()
	_, plain := render.Map(fr2.Sizes, render.DefaultOptions())
	if reflect.DeepEqual(fr2.Markers, plain) {
		t.Error("second frame merge did not pulse")
	}
}
