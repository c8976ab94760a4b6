package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/cnconv/internal/analysis"
	"github.com/san-kum/cnconv/internal/dynamo"
	"github.com/san-kum/cnconv/internal/report"
)

const (
	metadataFile = "metadata.json"
	errorsFile   = "errors.csv"
	stagePrefix  = ".staging-"
)

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
	ID            string        `json:"id"`
	Timestamp     time.Time     `json:"timestamp"`
	Integrator    string        `json:"integrator"`
	Order         int           `json:"order"`
	Params        dynamo.Params `json:"params"`
	Resolutions   []int         `json:"resolutions"`
	ObservedOrder *float64      `json:"observed_order,omitempty"`
}

// Save writes the table to <base>/<id>/ as metadata.json and errors.csv.
// Files are staged in a hidden directory and renamed into place, so a failed
// save leaves nothing behind.
func (s *Store) Save(table *analysis.Table) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", table.Integrator, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return "", err
	}
	stageDir, err := os.MkdirTemp(s.baseDir, stagePrefix)
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(stageDir)

	meta := RunMetadata{
		ID:          runID,
		Timestamp:   now,
		Integrator:  table.Integrator,
		Order:       table.Order,
		Params:      table.Params,
		Resolutions: make([]int, len(table.Rows)),
	}
	for i, row := range table.Rows {
		meta.Resolutions[i] = row.N
	}
	// a=0 gives log2(0/0); JSON has no encoding for NaN or Inf.
	if order, ok := table.ObservedOrder(); ok && !math.IsNaN(order) && !math.IsInf(order, 0) {
		meta.ObservedOrder = &order
	}

	if err := writeMetadata(filepath.Join(stageDir, metadataFile), &meta); err != nil {
		return "", err
	}
	if err := writeErrors(filepath.Join(stageDir, errorsFile), table); err != nil {
		return "", err
	}

	if err := os.Rename(stageDir, runDir); err != nil {
		return "", err
	}
	return runID, nil
}

func writeMetadata(path string, meta *RunMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", metadataFile, err)
	}
	return f.Close()
}

func writeErrors(path string, table *analysis.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.WriteCSV(f, table); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", errorsFile, err)
	}
	return f.Close()
}

// List returns every readable run, oldest first.
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
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadTable rebuilds the error table of a stored run.
func (s *Store) LoadTable(runID string) (*analysis.Table, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	rows, err := s.LoadRows(runID)
	if err != nil {
		return nil, err
	}
	return &analysis.Table{
		Params:     meta.Params,
		Integrator: meta.Integrator,
		Order:      meta.Order,
		Rows:       rows,
	}, nil
}

func (s *Store) LoadRows(runID string) ([]analysis.Row, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, errorsFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 4

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []analysis.Row{}, nil
	}

	rows := make([]analysis.Row, 0, len(records)-1)
	for i, record := range records[1:] {
		row, err := parseRow(record)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", errorsFile, i+2, err)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func parseRow(record []string) (analysis.Row, error) {
	var row analysis.Row
	var err error

	if row.N, err = strconv.Atoi(record[0]); err != nil {
		return row, err
	}
	if row.H, err = strconv.ParseFloat(record[1], 64); err != nil {
		return row, err
	}
	if row.MaxError, err = strconv.ParseFloat(record[2], 64); err != nil {
		return row, err
	}
	if record[3] != "" {
		if row.Rate, err = strconv.ParseFloat(record[3], 64); err != nil {
			return row, err
		}
		row.HasRate = true
	}
	return row, nil
}
