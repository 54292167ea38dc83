package storage

import (
	"encoding/json"
	"io"

	"github.com/mlund/cppm-generator/internal/experiment"
)

// runExport is the single-document form of an archived run.
type runExport struct {
	Meta    RunMetadata         `json:"meta"`
	Samples []experiment.Sample `json:"samples"`
}

// Export writes one run as an indented JSON document.
func (s *Store) Export(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	samples, err := s.LoadSamples(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(runExport{Meta: *meta, Samples: samples})
}
