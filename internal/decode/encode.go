package decode

import (
	"encoding/binary"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/zzstoatzz/percolation/internal/trace"
)

// EncodeInterleaved writes the oldest layout: one steps.bin stream of state
// blocks separated by bond records. The layout carries (root, size) pairs,
// so the trace must have recorded roots.
func EncodeInterleaved(tr *trace.Trace) (Blobs, error) {
	if !tr.HasRoots() {
		return nil, &trace.FormatError{Blob: BlobSteps, Reason: "interleaved layout requires roots"}
	}
	sites := tr.Sites()
	total := tr.Frames()
	blockSize := sites * 2 * u32Size
	data := make([]byte, 0, blockSize+(total-1)*(bondRecSize+blockSize))

	data = appendStateBlock(data, tr, 0)
	for t, b := range tr.Bonds() {
		data = appendBondRecord(data, b)
		data = appendStateBlock(data, tr, t+1)
	}
	return Blobs{BlobSteps: data}, nil
}

// EncodeSplit writes the middle layout: a flat sizes array plus a bond
// record array. Roots and any ranking are dropped; that is what the layout
// can express.
func EncodeSplit(tr *trace.Trace) Blobs {
	return Blobs{
		BlobSizes: encodeSizes(tr),
		BlobBonds: encodeBonds(tr),
	}
}

// EncodeDecomposed writes the current layout: separate flat arrays for
// roots, sizes, bonds and, when the trace carries a ranking, top_sizes.
func EncodeDecomposed(tr *trace.Trace) (Blobs, error) {
	if !tr.HasRoots() {
		return nil, &trace.FormatError{Blob: BlobRoots, Reason: "decomposed layout requires roots"}
	}
	blobs := Blobs{
		BlobSizes: encodeSizes(tr),
		BlobBonds: encodeBonds(tr),
	}

	sites := tr.Sites()
	roots := make([]byte, 0, tr.Frames()*sites*u32Size)
	for t := 0; t < tr.Frames(); t++ {
		row, _ := tr.Roots(t)
		roots = appendU32s(roots, row)
	}
	blobs[BlobRoots] = roots

	if tr.Meta().TopN > 0 {
		top := make([]byte, 0, tr.Frames()*tr.Meta().TopN*u32Size)
		for t := 0; t < tr.Frames(); t++ {
			row, _ := tr.TopSizes(t)
			top = appendU32s(top, row)
		}
		blobs[BlobTopSizes] = top
	}
	return blobs, nil
}

// MetadataJSON renders the metadata document. top_n is written only when a
// ranking is tracked, matching recorders that predate the field.
func MetadataJSON(meta trace.Metadata) ([]byte, error) {
	doc := map[string]any{
		"size":         meta.Size,
		"p":            meta.P,
		"total_states": meta.TotalStates,
	}
	if meta.TopN > 0 {
		doc["top_n"] = meta.TopN
	}
	return json.MarshalIndent(doc, "", "  ")
}

// WriteDir persists the metadata document and blobs into dir, creating it
// if needed.
func WriteDir(dir string, meta trace.Metadata, blobs Blobs) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	metaJSON, err := MetadataJSON(meta)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, MetaFile), metaJSON, 0644); err != nil {
		return err
	}
	for name, data := range blobs {
		if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
			return err
		}
	}
	return nil
}

func encodeSizes(tr *trace.Trace) []byte {
	data := make([]byte, 0, tr.Frames()*tr.Sites()*u32Size)
	for t := 0; t < tr.Frames(); t++ {
		row, _ := tr.SiteSizes(t)
		data = appendU32s(data, row)
	}
	return data
}

func encodeBonds(tr *trace.Trace) []byte {
	data := make([]byte, 0, len(tr.Bonds())*bondRecSize)
	for _, b := range tr.Bonds() {
		data = appendBondRecord(data, b)
	}
	return data
}

func appendStateBlock(data []byte, tr *trace.Trace, step int) []byte {
	roots, _ := tr.Roots(step)
	sizes, _ := tr.SiteSizes(step)
	for i := range sizes {
		data = binary.LittleEndian.AppendUint32(data, roots[i])
		data = binary.LittleEndian.AppendUint32(data, sizes[i])
	}
	return data
}

func appendBondRecord(data []byte, b trace.Bond) []byte {
	dir := byte(0)
	if b.Dir == trace.Horizontal {
		dir = 1
	}
	data = append(data, dir)
	data = binary.LittleEndian.AppendUint32(data, uint32(b.Row))
	return binary.LittleEndian.AppendUint32(data, uint32(b.Col))
}

func appendU32s(data []byte, row []uint32) []byte {
	for _, v := range row {
		data = binary.LittleEndian.AppendUint32(data, v)
	}
	return data
}
