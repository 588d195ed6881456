package viz

import (
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"math"
	"os"

	"github.com/zzstoatzz/percolation/internal/render"
	"github.com/zzstoatzz/percolation/internal/replay"
	"github.com/zzstoatzz/percolation/internal/trace"
)

// RenderGIF plays the whole trace through the generator and writes an
// animated GIF: one image per frame, sites as filled dots scaled by marker
// size, revealed bonds as lines. delay is in hundredths of a second per
// frame, cell the pixel pitch between adjacent sites.
func RenderGIF(tr *trace.Trace, gen *replay.Generator, path string, delay, cell int) error {
	if cell < 4 {
		cell = 4
	}
	l := tr.Meta().Size
	layout := trace.NewLayout(l)
	pad := cell
	side := pad*2 + (l-1)*cell

	bondColor := color.RGBA{R: 0x20, G: 0x60, B: 0xc0, A: 0xff}

	gen.Reset()
	anim := gif.GIF{LoopCount: 0}
	for {
		fr, ok := gen.Next()
		if !ok {
			break
		}
		img := image.NewPaletted(image.Rect(0, 0, side, side), palette.Plan9)
		fill(img, color.White)

		for _, b := range fr.Bonds {
			seg := layout.BondSegment(b)
			drawSegment(img, pad, cell, seg, bondColor)
		}

		var maxMarker float64
		for _, m := range fr.Markers {
			if m > maxMarker {
				maxMarker = m
			}
		}
		maxRadius := float64(cell) * 0.45
		for i, pt := range layout.Sites() {
			radius := 1.0
			if maxMarker > 0 {
				// Marker values carry area semantics; radius grows with
				// the square root so doubled area reads as doubled ink.
				radius = math.Max(1, maxRadius*math.Sqrt(fr.Markers[i]/maxMarker))
			}
			cx := pad + int(pt.X*float64(cell))
			cy := pad + int(pt.Y*float64(cell))
			drawDot(img, cx, cy, int(radius), overWhite(fr.Colors[i]))
		}

		anim.Image = append(anim.Image, img)
		anim.Delay = append(anim.Delay, delay)
	}
	gen.Reset()

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gif.EncodeAll(f, &anim)
}

// overWhite composites an alpha-carrying mapper color onto the white page.
func overWhite(c render.RGBA) color.RGBA {
	blend := func(v float64) uint8 {
		out := c.A*v + (1 - c.A)
		if out > 1 {
			out = 1
		}
		return uint8(out*255 + 0.5)
	}
	return color.RGBA{R: blend(c.R), G: blend(c.G), B: blend(c.B), A: 0xff}
}

func fill(img *image.Paletted, c color.Color) {
	idx := uint8(img.Palette.Index(c))
	for i := range img.Pix {
		img.Pix[i] = idx
	}
}

func drawDot(img *image.Paletted, cx, cy, r int, c color.Color) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				img.Set(cx+dx, cy+dy, c)
			}
		}
	}
}

// drawSegment draws an axis-aligned bond two pixels thick. Bonds only ever
// join adjacent sites, so the segment is horizontal or vertical.
func drawSegment(img *image.Paletted, pad, cell int, seg trace.Segment, c color.Color) {
	x0 := pad + int(seg.From.X*float64(cell))
	y0 := pad + int(seg.From.Y*float64(cell))
	x1 := pad + int(seg.To.X*float64(cell))
	y1 := pad + int(seg.To.Y*float64(cell))

	if y0 == y1 {
		for x := x0; x <= x1; x++ {
			img.Set(x, y0, c)
			img.Set(x, y0+1, c)
		}
		return
	}
	for y := y0; y <= y1; y++ {
		img.Set(x0, y, c)
		img.Set(x0+1, y, c)
	}
}
