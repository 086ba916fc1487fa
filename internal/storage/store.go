package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/fractal/internal/config"
	"github.com/san-kum/fractal/internal/field"
)

// Store persists evaluated fields under a data directory, one
// subdirectory per run holding metadata.json and field.csv.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string              `json:"id"`
	Label     string              `json:"label"`
	Strategy  string              `json:"strategy"`
	Timestamp time.Time           `json:"timestamp"`
	Width     int                 `json:"width"`
	Height    int                 `json:"height"`
	Budget    int                 `json:"budget"`
	Radius    float64             `json:"radius"`
	Region    config.RegionConfig `json:"region"`
	ElapsedMS float64             `json:"elapsed_ms"`
	Stats     map[string]float64  `json:"stats"`
}

func (s *Store) Save(label string, cfg *config.Config, elapsed time.Duration, stats map[string]float64, f *field.Field) (string, error) {
	runID := fmt.Sprintf("%s_%d", label, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Label:     label,
		Strategy:  cfg.Strategy,
		Timestamp: time.Now(),
		Width:     f.Width,
		Height:    f.Height,
		Budget:    cfg.Budget,
		Radius:    cfg.Radius,
		Region:    cfg.Region,
		ElapsedMS: float64(elapsed.Microseconds()) / 1000,
		Stats:     stats,
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "field.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	header := make([]string, f.Width)
	for col := range header {
		header[col] = fmt.Sprintf("c%d", col)
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	row := make([]string, f.Width)
	for r := 0; r < f.Height; r++ {
		for col, count := range f.Row(r) {
			row[col] = strconv.Itoa(count)
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadField(runID string) (*field.Field, error) {
	csvPath := filepath.Join(s.baseDir, runID, "field.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("run %s has no field data", runID)
	}

	width := len(records[0])
	height := len(records) - 1

	f := field.New(height, width)
	for i := 1; i < len(records); i++ {
		if len(records[i]) != width {
			return nil, fmt.Errorf("run %s: row %d has %d columns, want %d", runID, i-1, len(records[i]), width)
		}
		counts := f.Row(i - 1)
		for col, cell := range records[i] {
			count, err := strconv.Atoi(cell)
			if err != nil {
				return nil, fmt.Errorf("run %s: bad count %q: %w", runID, cell, err)
			}
			counts[col] = count
		}
	}

	return f, nil
}
