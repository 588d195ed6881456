// Package render maps decoded frame states to drawable attributes.
//
// The mapping is split into a pure part and a stateful part:
//
//   - [Map]: per-site colors and marker sizes from one frame's cluster
//     sizes, a pure function of its inputs
//   - [PulseTracker]: transient emphasis of sites whose cluster jumped
//     since the previous frame, applied to render-time copies only
//
// Large clusters would saturate a linear color scale, so the normalized
// size ratio passes through a compressive transform before gradient lookup.
// Two documented variants exist in the recorder's lineage, logarithmic and
// power-law; both are selectable via [Options].
package render
