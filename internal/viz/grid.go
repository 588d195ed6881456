package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zzstoatzz/percolation/internal/replay"
)

// Site glyphs by marker size bucket, smallest to largest. The terminal
// cannot scale a glyph continuously, so marker sizes map to three buckets
// relative to the frame's largest marker.
var siteGlyphs = [3]string{"o", "●", "◉"}

const unconnectedGlyph = "·"

// renderGrid draws one frame as a text lattice: sites on even rows/columns,
// revealed bonds on the cells between them. Site colors come from the frame;
// bond and background colors from the theme.
func renderGrid(fr replay.Frame, l int, theme Theme) string {
	span := 2*l - 1
	cells := make([][]string, span)
	for r := range cells {
		cells[r] = make([]string, span)
		for c := range cells[r] {
			cells[r][c] = " "
		}
	}

	var maxMarker float64
	for i, m := range fr.Markers {
		if fr.Sizes[i] > 1 && m > maxMarker {
			maxMarker = m
		}
	}

	mutedStyle := lipgloss.NewStyle().Foreground(theme.Muted)
	for i, s := range fr.Sizes {
		r, c := i/l, i%l
		if s <= 1 {
			cells[2*r][2*c] = mutedStyle.Render(unconnectedGlyph)
			continue
		}
		glyph := siteGlyphs[bucket(fr.Markers[i], maxMarker)]
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(fr.Colors[i].Hex()))
		cells[2*r][2*c] = style.Render(glyph)
	}

	bondStyle := lipgloss.NewStyle().Foreground(theme.Bond)
	for _, b := range fr.Bonds {
		r0, c0, r1, c1 := b.Endpoints()
		glyph := "│"
		if r0 == r1 {
			glyph = "─"
		}
		cells[r0+r1][c0+c1] = bondStyle.Render(glyph)
	}

	var sb strings.Builder
	for r, row := range cells {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c, cell := range row {
			if c > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(cell)
		}
	}
	return sb.String()
}

func bucket(marker, max float64) int {
	if max <= 0 {
		return 0
	}
	switch ratio := marker / max; {
	case ratio < 0.5:
		return 0
	case ratio < 0.9:
		return 1
	default:
		return 2
	}
}
