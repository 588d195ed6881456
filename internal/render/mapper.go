package render

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// RGBA is a color with components in [0, 1].
type RGBA struct {
	R, G, B, A float64
}

// Hex renders the color as a #rrggbb string for terminal styling. Alpha is
// dropped; terminals cannot blend.
func (c RGBA) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B))
}

func channel(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// Transform selects the compressive curve applied to the normalized size
// ratio before gradient lookup.
type Transform string

const (
	// TransformLog maps r to log1p(r)/log1p(1).
	TransformLog Transform = "log"
	// TransformPower maps r to r^gamma with gamma in (0, 1).
	TransformPower Transform = "power"
)

// Options controls the size-to-attribute mapping. Zero value is not usable;
// start from DefaultOptions.
type Options struct {
	Transform Transform
	Gamma     float64 // power-law exponent for the color transform
	SizeGamma float64 // exponent for marker growth
	BaseSize  float64 // marker size of the largest cluster
	SizeFloor float64 // fraction of BaseSize the smallest connected cluster keeps

	AlphaFloor float64 // opacity of the faintest connected site

	Unconnected     RGBA    // fixed color for size-1 sites
	UnconnectedSize float64 // fixed marker size for size-1 sites

	Stops []RGBA // ordered gradient, light to dark, at least two stops
}

// DefaultOptions mirrors the recorder's display conventions: muted isolated
// sites, a light-to-dark blue gradient and markers that grow with cluster
// size from a visible floor.
func DefaultOptions() Options {
	return Options{
		Transform:       TransformLog,
		Gamma:           0.5,
		SizeGamma:       0.5,
		BaseSize:        150,
		SizeFloor:       0.25,
		AlphaFloor:      0.5,
		Unconnected:     RGBA{R: 0.33, G: 0.33, B: 0.33, A: 0.6},
		UnconnectedSize: 5,
		Stops: []RGBA{
			{R: 0.78, G: 0.86, B: 0.94, A: 1}, // pale blue
			{R: 0.42, G: 0.68, B: 0.84, A: 1},
			{R: 0.19, G: 0.51, B: 0.74, A: 1},
			{R: 0.03, G: 0.32, B: 0.61, A: 1}, // deep blue
		},
	}
}

// Map converts one frame of per-site cluster sizes into per-site colors and
// marker sizes. Pure: identical inputs produce identical outputs, and the
// input slice is never modified.
//
// Sites still in their own cluster (size 1) get the fixed muted style.
// Connected sites are normalized against the largest connected cluster,
// compressed, and looked up in the gradient; opacity and marker size scale
// with the same ratio.
func Map(sizes []uint32, opts Options) ([]RGBA, []float64) {
	colors := make([]RGBA, len(sizes))
	markers := make([]float64, len(sizes))

	var maxConnected uint32
	for _, s := range sizes {
		if s > 1 && s > maxConnected {
			maxConnected = s
		}
	}
	// Denominator clamp keeps the math finite when every site is isolated.
	if maxConnected < 1 {
		maxConnected = 1
	}

	for i, s := range sizes {
		if s <= 1 {
			colors[i] = opts.Unconnected
			markers[i] = opts.UnconnectedSize
			continue
		}
		ratio := float64(s) / float64(maxConnected)
		c := gradientAt(opts.Stops, opts.compress(ratio))
		c.A = opts.AlphaFloor + (1-opts.AlphaFloor)*opts.compress(ratio)
		colors[i] = c
		markers[i] = opts.BaseSize * (opts.SizeFloor + (1-opts.SizeFloor)*math.Pow(ratio, opts.SizeGamma))
	}
	return colors, markers
}

func (o Options) compress(ratio float64) float64 {
	if o.Transform == TransformPower {
		return math.Pow(ratio, o.Gamma)
	}
	return math.Log1p(ratio) / math.Log1p(1)
}

// gradientAt interpolates the ordered stops at position t in [0, 1].
func gradientAt(stops []RGBA, t float64) RGBA {
	if len(stops) == 0 {
		return RGBA{A: 1}
	}
	if t <= 0 || len(stops) == 1 {
		return stops[0]
	}
	if t >= 1 {
		return stops[len(stops)-1]
	}
	pos := t * float64(len(stops)-1)
	i := int(pos)
	frac := pos - float64(i)

	a := colorful.Color{R: stops[i].R, G: stops[i].G, B: stops[i].B}
	b := colorful.Color{R: stops[i+1].R, G: stops[i+1].G, B: stops[i+1].B}
	blended := a.BlendRgb(b, frac)
	return RGBA{R: blended.R, G: blended.G, B: blended.B, A: 1}
}
