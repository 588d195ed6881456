package viz

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/zzstoatzz/percolation/internal/replay"
	"github.com/zzstoatzz/percolation/internal/trace"
)

// FrameToSVG renders one frame as a standalone SVG figure: revealed bonds as
// line segments, sites as circles whose fill, opacity and area follow the
// frame's render attributes. cell is the site spacing in SVG units.
func FrameToSVG(fr replay.Frame, l int, cell float64) string {
	layout := trace.NewLayout(l)
	pad := cell
	span := float64(l-1)*cell + 2*pad

	var maxMarker float64
	for _, m := range fr.Markers {
		if m > maxMarker {
			maxMarker = m
		}
	}
	maxRadius := cell * 0.4

	pos := func(p trace.Point) (float64, float64) {
		return pad + p.X*cell, pad + p.Y*cell
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#ffffff"/>
`, span, span, span, span))

	sb.WriteString(`<g stroke="#5080c0" stroke-width="2">` + "\n")
	for _, b := range fr.Bonds {
		seg := layout.BondSegment(b)
		x0, y0 := pos(seg.From)
		x1, y1 := pos(seg.To)
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
`, x0, y0, x1, y1))
	}
	sb.WriteString("</g>\n<g>\n")

	for i, p := range layout.Sites() {
		x, y := pos(p)
		// marker values are area-like; radius scales with their square root
		r := maxRadius
		if maxMarker > 0 {
			r = maxRadius * math.Sqrt(fr.Markers[i]/maxMarker)
		}
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s" fill-opacity="%.2f"/>
`, x, y, r, fr.Colors[i].Hex(), fr.Colors[i].A))
	}
	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}

// WriteSVG writes the frame figure to path.
func WriteSVG(fr replay.Frame, l int, cell float64, path string) error {
	return os.WriteFile(path, []byte(FrameToSVG(fr, l, cell)), 0644)
}
