// Package replay turns a decoded trace into render-ready frames.
//
//   - [Reveal]: cumulative bond visibility per step
//   - [TopK]: prefix slices of the recorded largest-cluster ranking
//   - [Generator]: pull-based, restartable sequence of [Frame] values an
//     external presentation driver consumes at its own pace
//
// The trace is read-only; the only mutable state is the generator's pulse
// tracker, which Reset rebuilds from scratch so independent playback passes
// never see each other.
package replay
