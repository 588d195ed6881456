// Package decode reads recorded percolation traces from disk and normalizes
// them into the canonical [trace.Trace] model.
//
// Three on-disk layouts exist, successive schema versions of one concept.
// All are little-endian fixed-width records and all converge on the same
// model:
//
//   - interleaved: a single steps.bin stream of (root, size) state blocks
//     separated by 9-byte bond records
//   - split: a flat sizes.bin array plus a bonds.bin record array
//   - decomposed: separate roots.bin, sizes.bin, bonds.bin and top_sizes.bin
//
// The variant is inferred from which blobs are present; there is no version
// header. Any length that does not divide evenly into whole records aborts
// the load with a [trace.FormatError] naming the offending blob.
package decode
