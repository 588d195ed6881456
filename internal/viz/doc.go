// Package viz presents decoded percolation traces in the terminal.
//
// The package implements an interactive playback TUI using the Bubble Tea
// framework plus an offline GIF renderer:
//
//   - [Model]: frame-by-frame animation of the lattice with revealed bonds,
//     cluster coloring and a top-K time-series chart
//   - [RenderGIF]: renders the whole frame sequence to an animated GIF
//   - [FrameToSVG]: renders a single frame as a vector figure
//
// # Key Bindings
//
//	Space - Pause/Resume playback
//	R     - Restart from frame 0
//	[ ]   - Step backward/forward
//	T     - Cycle color themes
//	Q     - Quit
package viz
