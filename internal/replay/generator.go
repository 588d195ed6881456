package replay

import (
	"github.com/zzstoatzz/percolation/internal/render"
	"github.com/zzstoatzz/percolation/internal/trace"
)

// Frame carries everything a presentation driver needs to draw one step.
// Sizes and Bonds alias the trace and are read-only; Colors and Markers are
// fresh render-time copies.
type Frame struct {
	Step    int
	Sizes   []uint32
	Colors  []render.RGBA
	Markers []float64
	Bonds   []trace.Bond
	TopK    [][]float64
}

// Generator produces the finite frame sequence for one playback pass.
// Next/Reset give sequential pull-based playback; Frame gives random access
// with the pulse derived directly from the preceding step, so both paths
// render identically.
type Generator struct {
	tr     *trace.Trace
	opts   render.Options
	pulse  *render.PulseTracker
	reveal *Reveal
	topk   *TopK
	next   int
}

// NewGenerator composes the mapper, pulse tracker and trackers over one
// trace. A nil pulse tracker gets the default constants.
func NewGenerator(tr *trace.Trace, opts render.Options, pulse *render.PulseTracker) *Generator {
	if pulse == nil {
		pulse = render.DefaultPulseTracker()
	}
	return &Generator{
		tr:     tr,
		opts:   opts,
		pulse:  pulse,
		reveal: NewReveal(tr),
		topk:   NewTopK(tr),
	}
}

// Len returns the number of frames in the sequence.
func (g *Generator) Len() int { return g.tr.Frames() }

// Next returns the next frame in sequence, or ok=false once the trace is
// exhausted.
func (g *Generator) Next() (Frame, bool) {
	if g.next >= g.tr.Frames() {
		return Frame{}, false
	}
	step := g.next
	g.next++

	sizes, _ := g.tr.SiteSizes(step)
	colors, markers := render.Map(sizes, g.opts)
	markers = g.pulse.Apply(step, sizes, markers)
	return g.assemble(step, sizes, colors, markers), true
}

// Reset restarts the sequence. Pulse state is rebuilt from scratch, so a
// second pass is identical to the first.
func (g *Generator) Reset() {
	g.next = 0
	g.pulse.Reset()
}

// Frame returns the frame at an arbitrary step without disturbing the
// sequential pass. The pulse is computed against step−1 directly.
func (g *Generator) Frame(step int) (Frame, error) {
	sizes, err := g.tr.SiteSizes(step)
	if err != nil {
		return Frame{}, err
	}
	colors, markers := render.Map(sizes, g.opts)

	var prev []uint32
	if step > 0 {
		prev, _ = g.tr.SiteSizes(step - 1)
	}
	markers = g.pulse.Between(step, prev, sizes, markers)
	return g.assemble(step, sizes, colors, markers), nil
}

func (g *Generator) assemble(step int, sizes []uint32, colors []render.RGBA, markers []float64) Frame {
	bonds, _ := g.reveal.Upto(step)
	series, _ := g.topk.SeriesUpto(step)
	return Frame{
		Step:    step,
		Sizes:   sizes,
		Colors:  colors,
		Markers: markers,
		Bonds:   bonds,
		TopK:    series,
	}
}
