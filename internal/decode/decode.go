package decode

import (
	"encoding/binary"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/zzstoatzz/percolation/internal/trace"
)

// MetaFile is the metadata document accompanying the binary blobs.
const MetaFile = "percolation.json"

// Blob file names across the three layout variants.
const (
	BlobSteps    = "steps.bin"
	BlobSizes    = "sizes.bin"
	BlobRoots    = "roots.bin"
	BlobBonds    = "bonds.bin"
	BlobTopSizes = "top_sizes.bin"
)

const (
	u32Size     = 4
	bondRecSize = 9 // 1-byte direction + u32 row + u32 col
)

var blobNames = []string{BlobSteps, BlobSizes, BlobRoots, BlobBonds, BlobTopSizes}

// Blobs maps blob file names to their raw contents.
type Blobs map[string][]byte

// fileMeta mirrors the metadata document. Pointer fields distinguish absent
// keys from explicit zeros: total_states can be derived from the interleaved
// stream when omitted, and a missing top_n forbids a recorded ranking.
type fileMeta struct {
	Size        *int    `json:"size"`
	P           float64 `json:"p"`
	TotalStates *int    `json:"total_states"`
	TopN        *int    `json:"top_n"`
}

// Load reads the metadata document and every recognized blob under dir and
// decodes them. This is the only I/O entry point; everything downstream
// operates on in-memory bytes.
func Load(dir string) (*trace.Trace, error) {
	metaRaw, err := os.ReadFile(filepath.Join(dir, MetaFile))
	if err != nil {
		return nil, err
	}
	blobs := Blobs{}
	for _, name := range blobNames {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		blobs[name] = data
	}
	return Decode(metaRaw, blobs)
}

// Decode parses the metadata document, detects the layout variant from the
// blob set, and decodes into the normalized model. The result is validated
// against the whole-trace invariants before being returned.
func Decode(metaJSON []byte, blobs Blobs) (*trace.Trace, error) {
	var fm fileMeta
	if err := json.Unmarshal(metaJSON, &fm); err != nil {
		return nil, &trace.FormatError{Blob: "metadata", Reason: "invalid json: " + err.Error()}
	}
	if fm.Size == nil {
		return nil, &trace.FormatError{Blob: "metadata", Reason: "missing required field size"}
	}
	if _, ok := blobs[BlobTopSizes]; ok && fm.TopN == nil {
		return nil, &trace.FormatError{Blob: BlobTopSizes, Reason: "ranking blob present but metadata has no top_n"}
	}

	tr, err := decodeVariant(fm, blobs)
	if err != nil {
		return nil, err
	}
	if err := tr.Validate(); err != nil {
		return nil, err
	}
	return tr, nil
}

func decodeVariant(fm fileMeta, blobs Blobs) (*trace.Trace, error) {
	_, hasSteps := blobs[BlobSteps]
	_, hasSizes := blobs[BlobSizes]
	_, hasRoots := blobs[BlobRoots]

	switch {
	case hasSteps && (hasSizes || hasRoots):
		return nil, &trace.FormatError{Blob: BlobSteps, Reason: "ambiguous layout: interleaved stream alongside flat arrays"}
	case hasRoots && !hasSizes:
		return nil, &trace.FormatError{Blob: BlobRoots, Reason: "roots without sizes"}
	case hasSteps:
		return decodeInterleaved(fm, blobs)
	case hasSizes:
		return decodeFlat(fm, blobs, hasRoots)
	default:
		return nil, &trace.FormatError{Blob: "metadata", Reason: "no recognized trace blobs"}
	}
}

// decodeInterleaved handles the oldest layout: one state block, then
// repeating (bond record, state block) tuples concatenated in steps.bin.
// total_states may be omitted from the metadata here; the recorder that
// produced this layout derived it from the stream length.
func decodeInterleaved(fm fileMeta, blobs Blobs) (*trace.Trace, error) {
	data := blobs[BlobSteps]
	l := *fm.Size
	sites := l * l
	blockSize := sites * 2 * u32Size // (root, size) pair per site

	rem := len(data) - blockSize
	if rem < 0 || rem%(bondRecSize+blockSize) != 0 {
		return nil, &trace.FormatError{Blob: BlobSteps, Want: int64(blockSize), Got: int64(len(data)),
			Reason: "stream does not divide into state blocks and bond records"}
	}
	total := 1 + rem/(bondRecSize+blockSize)
	if fm.TotalStates != nil && *fm.TotalStates != total {
		return nil, &trace.FormatError{Blob: BlobSteps, Want: int64(*fm.TotalStates), Got: int64(total),
			Reason: "state count disagrees with metadata"}
	}

	meta := trace.Metadata{Size: l, P: fm.P, TotalStates: total}
	if fm.TopN != nil {
		meta.TopN = *fm.TopN
	}

	sizes := make([][]uint32, total)
	roots := make([][]uint32, total)
	bonds := make([]trace.Bond, 0, total-1)

	pos := 0
	roots[0], sizes[0] = readStateBlock(data[pos:pos+blockSize], sites)
	pos += blockSize
	for t := 1; t < total; t++ {
		bonds = append(bonds, readBondRecord(data[pos:pos+bondRecSize]))
		pos += bondRecSize
		roots[t], sizes[t] = readStateBlock(data[pos:pos+blockSize], sites)
		pos += blockSize
	}

	topSizes, err := rankingFor(meta, blobs)
	if err != nil {
		return nil, err
	}
	if topSizes == nil && meta.TopN > 0 {
		topSizes = deriveTopK(sizes, meta.TopN)
	}
	return trace.New(meta, sizes, roots, bonds, topSizes)
}

// decodeFlat handles the split and decomposed layouts, which share flat
// per-blob arrays and differ only in whether roots (and a recorded ranking)
// are present.
func decodeFlat(fm fileMeta, blobs Blobs, withRoots bool) (*trace.Trace, error) {
	if fm.TotalStates == nil {
		return nil, &trace.FormatError{Blob: "metadata", Reason: "missing required field total_states"}
	}
	l := *fm.Size
	total := *fm.TotalStates
	sites := l * l

	meta := trace.Metadata{Size: l, P: fm.P, TotalStates: total}
	if fm.TopN != nil {
		meta.TopN = *fm.TopN
	}

	sizes, err := readU32Grid(blobs[BlobSizes], BlobSizes, total, sites)
	if err != nil {
		return nil, err
	}

	var roots [][]uint32
	if withRoots {
		roots, err = readU32Grid(blobs[BlobRoots], BlobRoots, total, sites)
		if err != nil {
			return nil, err
		}
	}

	bondData, ok := blobs[BlobBonds]
	if !ok {
		return nil, &trace.FormatError{Blob: BlobBonds, Reason: "missing bond records"}
	}
	if len(bondData) != (total-1)*bondRecSize {
		return nil, &trace.FormatError{Blob: BlobBonds, Want: int64((total - 1) * bondRecSize), Got: int64(len(bondData)),
			Reason: "byte length does not match bond count"}
	}
	bonds := make([]trace.Bond, total-1)
	for i := range bonds {
		bonds[i] = readBondRecord(bondData[i*bondRecSize:])
	}

	topSizes, err := rankingFor(meta, blobs)
	if err != nil {
		return nil, err
	}
	if topSizes == nil && meta.TopN > 0 {
		topSizes = deriveTopK(sizes, meta.TopN)
	}
	return trace.New(meta, sizes, roots, bonds, topSizes)
}

// rankingFor decodes a recorded top_sizes blob when one is present. A nil
// result with nil error means no ranking was recorded.
func rankingFor(meta trace.Metadata, blobs Blobs) ([][]uint32, error) {
	data, ok := blobs[BlobTopSizes]
	if !ok {
		return nil, nil
	}
	if meta.TopN == 0 {
		return nil, &trace.FormatError{Blob: BlobTopSizes, Reason: "ranking blob present but top_n is zero"}
	}
	return readU32Grid(data, BlobTopSizes, meta.TotalStates, meta.TopN)
}

// readU32Grid slices a flat little-endian u32 array into rows×cols, checking
// the byte length exactly.
func readU32Grid(data []byte, blob string, rows, cols int) ([][]uint32, error) {
	want := rows * cols * u32Size
	if len(data) != want {
		return nil, &trace.FormatError{Blob: blob, Want: int64(want), Got: int64(len(data)),
			Reason: "byte length does not match expected record count"}
	}
	grid := make([][]uint32, rows)
	pos := 0
	for r := range grid {
		row := make([]uint32, cols)
		for c := range row {
			row[c] = binary.LittleEndian.Uint32(data[pos:])
			pos += u32Size
		}
		grid[r] = row
	}
	return grid, nil
}

// readStateBlock splits one interleaved state block of (root, size) pairs.
func readStateBlock(data []byte, sites int) (roots, sizes []uint32) {
	roots = make([]uint32, sites)
	sizes = make([]uint32, sites)
	for i := 0; i < sites; i++ {
		roots[i] = binary.LittleEndian.Uint32(data[i*8:])
		sizes[i] = binary.LittleEndian.Uint32(data[i*8+4:])
	}
	return roots, sizes
}

// readBondRecord decodes a 9-byte bond record. A direction byte of 1 means
// horizontal; any other value is vertical.
func readBondRecord(data []byte) trace.Bond {
	dir := trace.Vertical
	if data[0] == 1 {
		dir = trace.Horizontal
	}
	return trace.Bond{
		Dir: dir,
		Row: int(binary.LittleEndian.Uint32(data[1:])),
		Col: int(binary.LittleEndian.Uint32(data[5:])),
	}
}

// deriveTopK builds the per-frame ranking for trace variants that predate
// recorded rankings. This is load-time normalization: downstream components
// still treat the result as recorded data.
func deriveTopK(sizes [][]uint32, k int) [][]uint32 {
	top := make([][]uint32, len(sizes))
	for t, frame := range sizes {
		top[t] = trace.TopClusters(frame, k)
	}
	return top
}
