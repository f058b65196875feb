package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/projectile/internal/ballistics"
)

const (
	metadataFile = "metadata.json"
	pathFile     = "path.csv"
)

var ErrMalformedRun = errors.New("storage: malformed run data")

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
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Timestamp     time.Time `json:"timestamp"`
	InitialY      float64   `json:"initial_y"`
	Speed         float64   `json:"speed"`
	Angle         float64   `json:"angle"`
	Mass          float64   `json:"mass"`
	Acceleration  float64   `json:"acceleration"`
	Start         float64   `json:"start"`
	End           float64   `json:"end"`
	Samples       int       `json:"samples"`
	StopY         *float64  `json:"stop_y,omitempty"`
	Truncated     bool      `json:"truncated"`
	MaxHeight     float64   `json:"max_height"`
	TouchdownTime *float64  `json:"touchdown_time,omitempty"`
}

// Run is a sampled trajectory with the energies at each sample.
type Run struct {
	Path      *ballistics.Path
	Kinetic   []float64
	Potential []float64
}

// NewRun evaluates the energies of p along path.
func NewRun(p ballistics.Projectile, a float64, path *ballistics.Path) *Run {
	r := &Run{
		Path:      path,
		Kinetic:   make([]float64, path.Len()),
		Potential: make([]float64, path.Len()),
	}
	for i, t := range path.Times {
		r.Kinetic[i] = p.KineticEnergy(t, a)
		r.Potential[i] = p.PotentialEnergy(t, a)
	}
	return r
}

// Save writes a run under a new run directory. A failed save leaves no
// directory behind.
func (s *Store) Save(meta RunMetadata, run *Run) (string, error) {
	name := meta.Name
	if name == "" {
		name = "run"
	}
	runID := fmt.Sprintf("%s_%d", name, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Name = name
	meta.Timestamp = time.Now()
	meta.Samples = run.Path.Len()
	meta.Truncated = run.Path.Truncated

	if err := writeMetadata(filepath.Join(runDir, metadataFile), meta); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}
	if err := writePath(filepath.Join(runDir, pathFile), run); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}
	return runID, nil
}

func writeMetadata(path string, meta RunMetadata) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func writePath(path string, run *Run) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"t", "x", "y", "kinetic", "potential"}); err != nil {
		return err
	}

	format := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	for i := 0; i < run.Path.Len(); i++ {
		row := []string{
			format(run.Path.Times[i]),
			format(run.Path.X[i]),
			format(run.Path.Y[i]),
			format(run.Kinetic[i]),
			format(run.Potential[i]),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// List returns all readable runs, oldest first.
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

// LoadRun reads the sampled trajectory of a run. Truncated and TouchdownTime
// are restored from the metadata.
func (s *Store) LoadRun(runID string) (*Run, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, runID, pathFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 5

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRun, err)
	}

	n := max(len(records)-1, 0)
	run := &Run{
		Path: &ballistics.Path{
			Times:     make([]float64, 0, n),
			X:         make([]float64, 0, n),
			Y:         make([]float64, 0, n),
			Truncated: meta.Truncated,
		},
		Kinetic:   make([]float64, 0, n),
		Potential: make([]float64, 0, n),
	}
	if meta.TouchdownTime != nil {
		run.Path.TouchdownTime = *meta.TouchdownTime
	}

	for i := 1; i < len(records); i++ {
		var vals [5]float64
		for j, field := range records[i] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedRun, i+1, err)
			}
			vals[j] = v
		}
		run.Path.Times = append(run.Path.Times, vals[0])
		run.Path.X = append(run.Path.X, vals[1])
		run.Path.Y = append(run.Path.Y, vals[2])
		run.Kinetic = append(run.Kinetic, vals[3])
		run.Potential = append(run.Potential, vals[4])
	}

	return run, nil
}
