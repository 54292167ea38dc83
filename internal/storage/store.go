// Package storage archives finished runs as one directory per run:
// metadata.json, the sampled trace as samples.csv and the final frame
// as final.pqr.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/facette/natsort"

	"github.com/mlund/cppm-generator/internal/analysis"
	"github.com/mlund/cppm-generator/internal/config"
	"github.com/mlund/cppm-generator/internal/experiment"
	"github.com/mlund/cppm-generator/internal/output"
)

// Store reads and writes run archives below one base directory.
type Store struct {
	baseDir string
}

// New returns a store rooted at baseDir.
func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// Init creates the base directory.
func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata is the persisted summary of one run.
type RunMetadata struct {
	ID         string                 `json:"id"`
	Timestamp  time.Time              `json:"timestamp"`
	Config     *config.Config         `json:"config"`
	Acceptance map[string]float64     `json:"acceptance"`
	Moments    analysis.MomentSummary `json:"moments"`
	Samples    int                    `json:"samples"`
	ElapsedSec float64                `json:"elapsed_seconds"`
}

// Save archives a result and returns the new run ID.
func (s *Store) Save(result *experiment.Result) (string, error) {
	runID := fmt.Sprintf("cppm_%d", time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	acceptance := make(map[string]float64, len(result.Acceptance))
	for _, st := range result.Acceptance {
		acceptance[st.Name] = st.Acceptance
	}

	meta := RunMetadata{
		ID:         runID,
		Timestamp:  time.Now(),
		Config:     result.Config,
		Acceptance: acceptance,
		Moments:    result.Moments.Summarize(),
		Samples:    len(result.Samples),
		ElapsedSec: result.Elapsed.Seconds(),
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := s.writeSamples(runDir, result.Samples); err != nil {
		return "", err
	}

	frame, err := os.Create(filepath.Join(runDir, "final.pqr"))
	if err != nil {
		return "", err
	}
	defer frame.Close()
	if err := output.WritePQR(frame, result.Particles); err != nil {
		return "", err
	}

	return runID, nil
}

func (s *Store) writeSamples(runDir string, samples []experiment.Sample) error {
	csvFile, err := os.Create(filepath.Join(runDir, "samples.csv"))
	if err != nil {
		return err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"step", "energy", "dipole"}); err != nil {
		return err
	}
	for _, sample := range samples {
		row := []string{
			strconv.Itoa(sample.Step),
			strconv.FormatFloat(sample.Energy, 'f', 6, 64),
			strconv.FormatFloat(sample.Dipole, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// List returns the metadata of every readable run in natural ID order.
// Unreadable entries are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			ids = append(ids, entry.Name())
		}
	}
	natsort.Sort(ids)

	runs := make([]RunMetadata, 0, len(ids))
	for _, id := range ids {
		meta, err := s.Load(id)
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	return runs, nil
}

// Load reads one run's metadata.
func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, fmt.Errorf("storage: run %s: %w", runID, err)
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: run %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadSamples reads one run's sampled trace. Rows that fail to parse
// are skipped.
func (s *Store) LoadSamples(runID string) ([]experiment.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "samples.csv"))
	if err != nil {
		return nil, fmt.Errorf("storage: run %s: %w", runID, err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("storage: run %s: %w", runID, err)
	}

	samples := make([]experiment.Sample, 0, len(records))
	for i, record := range records {
		if i == 0 || len(record) < 3 {
			continue
		}
		step, err := strconv.Atoi(record[0])
		if err != nil {
			continue
		}
		energy, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		dipole, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			continue
		}
		samples = append(samples, experiment.Sample{Step: step, Energy: energy, Dipole: dipole})
	}
	return samples, nil
}

// FramePath is the location of a run's final coordinate frame.
func (s *Store) FramePath(runID string) string {
	return filepath.Join(s.baseDir, runID, "final.pqr")
}
