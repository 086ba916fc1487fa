package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/fractal/internal/field"
)

type exportDoc struct {
	Metadata *RunMetadata `json:"metadata"`
	Counts   [][]int      `json:"counts"`
}

// ExportJSON writes a run's metadata and full count matrix as one JSON
// document.
func ExportJSON(w io.Writer, meta *RunMetadata, f *field.Field) error {
	counts := make([][]int, f.Height)
	for row := range counts {
		counts[row] = f.Row(row)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(exportDoc{Metadata: meta, Counts: counts})
}

func ExportJSONStdout(meta *RunMetadata, f *field.Field) error {
	return ExportJSON(os.Stdout, meta, f)
}
