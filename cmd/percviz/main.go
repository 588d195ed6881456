package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/zzstoatzz/percolation/internal/config"
	"github.com/zzstoatzz/percolation/internal/decode"
	"github.com/zzstoatzz/percolation/internal/replay"
	"github.com/zzstoatzz/percolation/internal/trace"
	"github.com/zzstoatzz/percolation/internal/viz"
)

var (
	configFile string
	preset     string
	fps        int
	theme      string
	transform  string
	// GIF rendering
	gifDelay int
	gifCell  int
	// SVG snapshot
	svgStep int
	svgCell float64
)

// main registers the percviz commands: inspection, playback, plotting,
// validation, export and format conversion of recorded percolation traces.
func main() {
	rootCmd := &cobra.Command{
		Use:   "percviz",
		Short: "replay and inspect recorded percolation traces",
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset display configuration")

	infoCmd := &cobra.Command{
		Use:   "info [trace_dir]",
		Short: "show trace metadata and derived counts",
		Args:  cobra.ExactArgs(1),
		RunE:  runInfo,
	}

	playCmd := &cobra.Command{
		Use:   "play [trace_dir]",
		Short: "animate the trace in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  runPlay,
	}
	playCmd.Flags().IntVar(&fps, "fps", 0, "frames per second (0 = config value)")
	playCmd.Flags().StringVar(&theme, "theme", "", "color theme")
	playCmd.Flags().StringVar(&transform, "transform", "", "compressive transform (log|power)")

	plotCmd := &cobra.Command{
		Use:   "plot [trace_dir]",
		Short: "plot the top-K cluster size series",
		Args:  cobra.ExactArgs(1),
		RunE:  runPlot,
	}

	validateCmd := &cobra.Command{
		Use:   "validate [trace_dir]",
		Short: "check trace invariants",
		Args:  cobra.ExactArgs(1),
		RunE:  runValidate,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [trace_dir]",
		Short: "export the normalized trace to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runExportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [trace_dir]",
		Short: "export per-step cluster sizes to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  runExportCSV,
	}

	convertCmd := &cobra.Command{
		Use:   "convert [trace_dir] [out_dir]",
		Short: "re-encode a trace in the current on-disk layout",
		Args:  cobra.ExactArgs(2),
		RunE:  runConvert,
	}

	gifCmd := &cobra.Command{
		Use:   "gif [trace_dir] [out.gif]",
		Short: "render the trace to an animated GIF",
		Args:  cobra.ExactArgs(2),
		RunE:  runGIF,
	}
	gifCmd.Flags().IntVar(&gifDelay, "delay", 5, "delay per frame in 1/100s")
	gifCmd.Flags().IntVar(&gifCell, "cell", 16, "pixels between adjacent sites")
	gifCmd.Flags().StringVar(&transform, "transform", "", "compressive transform (log|power)")

	svgCmd := &cobra.Command{
		Use:   "svg [trace_dir] [out.svg]",
		Short: "render a single frame to an SVG figure",
		Args:  cobra.ExactArgs(2),
		RunE:  runSVG,
	}
	svgCmd.Flags().IntVar(&svgStep, "step", -1, "frame to render (-1 = final frame)")
	svgCmd.Flags().Float64Var(&svgCell, "cell", 24, "SVG units between adjacent sites")
	svgCmd.Flags().StringVar(&transform, "transform", "", "compressive transform (log|power)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available display presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	rootCmd.AddCommand(infoCmd, playCmd, plotCmd, validateCmd, exportJSONCmd, exportCSVCmd, convertCmd, gifCmd, svgCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves display settings: defaults, then preset, then config
// file, then command-line overrides.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if fps > 0 {
		cfg.FPS = fps
	}
	if theme != "" {
		cfg.Theme = theme
	}
	if transform != "" {
		cfg.Transform = transform
	}
	return cfg, nil
}

func newGenerator(tr *trace.Trace, cfg *config.Config) *replay.Generator {
	return replay.NewGenerator(tr, cfg.RenderOptions(), cfg.PulseTracker())
}

func runInfo(cmd *cobra.Command, args []string) error {
	tr, err := decode.Load(args[0])
	if err != nil {
		return err
	}
	meta := tr.Meta()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "grid\t%d × %d (%d sites)\n", meta.Size, meta.Size, tr.Sites())
	fmt.Fprintf(w, "p\t%.4f\n", meta.P)
	fmt.Fprintf(w, "steps\t%d\n", tr.Frames())
	fmt.Fprintf(w, "bonds\t%d\n", len(tr.Bonds()))
	fmt.Fprintf(w, "top_n\t%d\n", meta.TopN)
	fmt.Fprintf(w, "roots\t%v\n", tr.HasRoots())

	last, _ := tr.SiteSizes(tr.Frames() - 1)
	var max uint32
	for _, s := range last {
		if s > max {
			max = s
		}
	}
	fmt.Fprintf(w, "largest cluster\t%d (%.1f%% of sites)\n", max, 100*float64(max)/float64(tr.Sites()))
	return w.Flush()
}

func runPlay(cmd *cobra.Command, args []string) error {
	tr, err := decode.Load(args[0])
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	m := viz.NewModel(tr, newGenerator(tr, cfg), cfg.FPS, cfg.Theme)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func runPlot(cmd *cobra.Command, args []string) error {
	tr, err := decode.Load(args[0])
	if err != nil {
		return err
	}
	topk := replay.NewTopK(tr)
	if topk.Ranks() == 0 {
		return fmt.Errorf("trace tracks no cluster ranking (top_n is zero)")
	}

	series, err := topk.SeriesUpto(tr.Frames() - 1)
	if err != nil {
		return err
	}
	for rank, data := range series {
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("cluster rank %d size vs step", rank+1)),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	// Load already validates whole-trace invariants; the extra pass here
	// cross-checks the recorded ranking against the size arrays.
	tr, err := decode.Load(args[0])
	if err != nil {
		return err
	}
	if err := replay.NewTopK(tr).Check(); err != nil {
		return err
	}
	fmt.Printf("ok: %d frames, %d bonds, %d ranked clusters\n", tr.Frames(), len(tr.Bonds()), tr.Meta().TopN)
	return nil
}

type exportData struct {
	Size        int          `json:"size"`
	P           float64      `json:"p"`
	TotalStates int          `json:"total_states"`
	TopN        int          `json:"top_n,omitempty"`
	Sizes       [][]uint32   `json:"sizes"`
	Roots       [][]uint32   `json:"roots,omitempty"`
	Bonds       []exportBond `json:"bonds"`
	TopSizes    [][]uint32   `json:"top_sizes,omitempty"`
}

type exportBond struct {
	Direction string `json:"direction"`
	Row       int    `json:"row"`
	Col       int    `json:"col"`
}

func runExportJSON(cmd *cobra.Command, args []string) error {
	tr, err := decode.Load(args[0])
	if err != nil {
		return err
	}
	meta := tr.Meta()

	data := exportData{
		Size:        meta.Size,
		P:           meta.P,
		TotalStates: meta.TotalStates,
		TopN:        meta.TopN,
		Sizes:       make([][]uint32, tr.Frames()),
		Bonds:       make([]exportBond, 0, len(tr.Bonds())),
	}
	for t := 0; t < tr.Frames(); t++ {
		data.Sizes[t], _ = tr.SiteSizes(t)
	}
	if tr.HasRoots() {
		data.Roots = make([][]uint32, tr.Frames())
		for t := 0; t < tr.Frames(); t++ {
			data.Roots[t], _ = tr.Roots(t)
		}
	}
	for _, b := range tr.Bonds() {
		data.Bonds = append(data.Bonds, exportBond{Direction: b.Dir.String(), Row: b.Row, Col: b.Col})
	}
	if meta.TopN > 0 {
		data.TopSizes = make([][]uint32, tr.Frames())
		for t := 0; t < tr.Frames(); t++ {
			data.TopSizes[t], _ = tr.TopSizes(t)
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func runExportCSV(cmd *cobra.Command, args []string) error {
	tr, err := decode.Load(args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"step"}
	for i := 0; i < tr.Sites(); i++ {
		header = append(header, fmt.Sprintf("s%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for t := 0; t < tr.Frames(); t++ {
		sizes, _ := tr.SiteSizes(t)
		row := []string{strconv.Itoa(t)}
		for _, s := range sizes {
			row = append(row, strconv.FormatUint(uint64(s), 10))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	tr, err := decode.Load(args[0])
	if err != nil {
		return err
	}

	// The decomposed layout is the current schema but needs roots; traces
	// from the middle-era recorder fall back to the split layout.
	var blobs decode.Blobs
	layout := "decomposed"
	if tr.HasRoots() {
		blobs, err = decode.EncodeDecomposed(tr)
		if err != nil {
			return err
		}
	} else {
		blobs = decode.EncodeSplit(tr)
		layout = "split"
	}

	if err := decode.WriteDir(args[1], tr.Meta(), blobs); err != nil {
		return err
	}
	fmt.Printf("wrote %s layout to %s\n", layout, args[1])
	return nil
}

func runGIF(cmd *cobra.Command, args []string) error {
	tr, err := decode.Load(args[0])
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := viz.RenderGIF(tr, newGenerator(tr, cfg), args[1], gifDelay, gifCell); err != nil {
		return err
	}
	fmt.Printf("wrote %d frames to %s\n", tr.Frames(), args[1])
	return nil
}

func runSVG(cmd *cobra.Command, args []string) error {
	tr, err := decode.Load(args[0])
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	step := svgStep
	if step < 0 {
		step = tr.Frames() - 1
	}
	fr, err := newGenerator(tr, cfg).Frame(step)
	if err != nil {
		return err
	}
	if err := viz.WriteSVG(fr, tr.Meta().Size, svgCell, args[1]); err != nil {
		return err
	}
	fmt.Printf("wrote frame %d to %s\n", step, args[1])
	return nil
}
