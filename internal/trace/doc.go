// Package trace defines the canonical in-memory model of a recorded
// percolation run.
//
// A trace is the artifact an external simulator writes to disk: per-step
// cluster sizes for every lattice site, the ordered bonds that merged the
// clusters, and an optional running top-K ranking of the largest clusters.
// The model is built once by the decode package and is immutable afterwards:
//
//   - [Metadata]: grid side length, occupation probability, step count
//   - [Bond]: a single horizontal or vertical edge between adjacent sites
//   - [Trace]: the decoded arrays, validated and shared read-only
//   - [Layout]: static site and bond coordinates derived from the grid size
//
// # Thread Safety
//
// A Trace never changes after construction, so any number of playback
// sessions may read it concurrently without locking.
package trace
