package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/zzstoatzz/percolation/internal/replay"
	"github.com/zzstoatzz/percolation/internal/trace"
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(45)
)

type TickMsg time.Time

// Model plays a decoded trace frame by frame. Playback pulls frames from
// the generator; scrubbing uses its random-access path so the two always
// agree.
type Model struct {
	tr      *trace.Trace
	gen     *replay.Generator
	frame   replay.Frame
	step    int
	fps     int
	running bool
	done    bool
}

// NewModel starts playback at frame 0.
func NewModel(tr *trace.Trace, gen *replay.Generator, fps int, themeName string) Model {
	if fps <= 0 {
		fps = 20
	}
	SetTheme(themeName)
	fr, _ := gen.Next()
	return Model{tr: tr, gen: gen, frame: fr, fps: fps, running: true}
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and advances playback.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.restart()
		case "[":
			m.seek(m.step - 1)
		case "]":
			m.seek(m.step + 1)
		case "t":
			names := ThemeNames()
			for i, name := range names {
				if name == CurrentTheme.Name {
					SetTheme(names[(i+1)%len(names)])
					break
				}
			}
		}
	case TickMsg:
		if m.running && !m.done {
			if fr, ok := m.gen.Next(); ok {
				m.frame = fr
				m.step = fr.Step
			} else {
				m.done = true
				m.running = false
			}
		}
		return m, m.tick()
	}
	return m, nil
}

// restart rebuilds playback from frame 0, pulse state included.
func (m *Model) restart() {
	m.gen.Reset()
	if fr, ok := m.gen.Next(); ok {
		m.frame = fr
	}
	m.step = 0
	m.done = false
	m.running = true
}

// seek pauses playback and jumps to an arbitrary frame.
func (m *Model) seek(step int) {
	fr, err := m.gen.Frame(step)
	if err != nil {
		return
	}
	m.running = false
	m.frame = fr
	m.step = step
}

// View renders the lattice beside a stats panel.
func (m Model) View() string {
	theme := CurrentTheme
	headerStyle := lipgloss.NewStyle().Foreground(theme.Header).Bold(true).MarginBottom(1)
	labelStyle := lipgloss.NewStyle().Foreground(theme.Label).Width(12)
	valueStyle := lipgloss.NewStyle().Foreground(theme.Value)
	graphStyle := lipgloss.NewStyle().Foreground(theme.Graph).Padding(1, 0)
	helpStyle := lipgloss.NewStyle().Foreground(theme.Muted).MarginTop(2)

	meta := m.tr.Meta()
	canvasView := canvasStyle.Render(renderGrid(m.frame, meta.Size, theme))

	var s strings.Builder
	s.WriteString(headerStyle.Render("PERCOLATION") + "\n")
	status := "PLAYING"
	switch {
	case m.done:
		status = "DONE"
	case !m.running:
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")

	s.WriteString(labelStyle.Render("Step") + valueStyle.Render(fmt.Sprintf("%d / %d", m.step, m.tr.Frames()-1)) + "\n")
	s.WriteString(labelStyle.Render("Grid") + valueStyle.Render(fmt.Sprintf("%d × %d", meta.Size, meta.Size)) + "\n")
	s.WriteString(labelStyle.Render("p") + valueStyle.Render(fmt.Sprintf("%.2f", meta.P)) + "\n")
	s.WriteString(labelStyle.Render("Bonds") + valueStyle.Render(fmt.Sprintf("%d shown", len(m.frame.Bonds))) + "\n")

	if len(m.frame.TopK) > 0 && m.step > 0 {
		chart := asciigraph.PlotMany(m.frame.TopK,
			asciigraph.Height(5),
			asciigraph.Width(34),
			asciigraph.Caption(fmt.Sprintf("top %d clusters", len(m.frame.TopK))),
		)
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString(helpStyle.Render("─────────────────────\nSP:Pause R:Restart Q:Quit\nT:Theme [ ]:Scrub"))
	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}
