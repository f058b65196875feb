package ballistics

import (
	"iter"
	"math"
	"sort"
)

const (
	// DefaultSamplesPerSecond is the sample density used when no count is given.
	DefaultSamplesPerSecond = 50

	// MaxSamples caps the sample count of a single path.
	MaxSamples = 1 << 27

	// StopThreshold is how close to touchdown a sample must be before the
	// path is frozen at the stop height.
	StopThreshold = 0.01
)

// Sample is one point of a sampled trajectory.
type Sample struct {
	T, X, Y float64
}

// PathConfig controls sampling. The zero value samples the whole interval
// at DefaultSamplesPerSecond with no early stop.
type PathConfig struct {
	// Samples overrides the derived count when non-zero. Negative counts are
	// taken by absolute value.
	Samples          int
	SamplesPerSecond int

	ConditionalStop bool
	StopY           float64

	// StrictRange rejects end < start instead of sampling the reversed interval.
	StrictRange bool
}

// Path holds a materialized trajectory as parallel sequences.
type Path struct {
	Times []float64
	X     []float64
	Y     []float64

	// Truncated reports that sampling stopped at the stop height before end.
	Truncated bool
	// TouchdownTime is the stop-height crossing; zero unless ConditionalStop was set.
	TouchdownTime float64
}

func (p *Path) Len() int { return len(p.Times) }

func (p *Path) At(i int) Sample {
	return Sample{T: p.Times[i], X: p.X[i], Y: p.Y[i]}
}

// DefaultSampleCount returns round(end − start) · perSecond, rounding half to
// even, as a non-negative count. Non-finite intervals and counts above
// MaxSamples are ErrInvalidSampleRange.
func DefaultSampleCount(start, end float64, perSecond int) (int, error) {
	if perSecond <= 0 {
		perSecond = DefaultSamplesPerSecond
	}
	n := math.Abs(math.RoundToEven(end-start)) * float64(perSecond)
	if math.IsNaN(n) || n > MaxSamples {
		return 0, &ParamError{Op: "path", Start: start, End: end, Err: ErrInvalidSampleRange}
	}
	return int(n), nil
}

func sampleCount(start, end float64, cfg PathConfig) (int, error) {
	rangeErr := &ParamError{Op: "path", Start: start, End: end, Err: ErrInvalidSampleRange}
	if math.IsNaN(start) || math.IsNaN(end) || math.IsInf(start, 0) || math.IsInf(end, 0) {
		return 0, rangeErr
	}
	if cfg.StrictRange && end < start {
		return 0, rangeErr
	}
	n := cfg.Samples
	if n == 0 {
		var err error
		if n, err = DefaultSampleCount(start, end, cfg.SamplesPerSecond); err != nil {
			return 0, err
		}
	}
	if n < -MaxSamples || n > MaxSamples {
		return 0, rangeErr
	}
	if n < 0 {
		n = -n
	}
	if n == 0 {
		return 0, rangeErr
	}
	return n, nil
}

// stopCapacity bounds the samples emitted before a stop at touchdown.
func stopCapacity(start, end float64, n int, touchdown float64) int {
	if n < 2 || end <= start {
		return n
	}
	step := (end - start) / float64(n-1)
	k := math.Ceil((touchdown-StopThreshold-start)/step) + 2
	switch {
	case k < 1:
		return 1
	case k < float64(n):
		return int(k)
	}
	return n
}

// linspaceAt returns the i-th of n evenly spaced points over [start, end].
func linspaceAt(start, end float64, n, i int) float64 {
	if i == n-1 && n > 1 {
		return end
	}
	if n == 1 {
		return start
	}
	return start + float64(i)*(end-start)/float64(n-1)
}

// Linspace returns n evenly spaced points over [start, end] inclusive.
func Linspace(start, end float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = linspaceAt(start, end, n, i)
	}
	return out
}

// Samples returns a lazy sequence of trajectory samples over [start, end].
//
// With ConditionalStop the sequence ends at the first sample within
// StopThreshold of touchdown at StopY; that sample carries Y == StopY.
// The sequence can be ranged over more than once.
func (p Projectile) Samples(a, start, end float64, cfg PathConfig) (iter.Seq[Sample], error) {
	n, err := sampleCount(start, end, cfg)
	if err != nil {
		return nil, err
	}

	var touchdown float64
	if cfg.ConditionalStop {
		touchdown, err = p.TouchdownTime(cfg.StopY, a)
		if err != nil {
			return nil, err
		}
	}

	return func(yield func(Sample) bool) {
		for i := 0; i < n; i++ {
			t := linspaceAt(start, end, n, i)
			s := Sample{T: t, X: p.PositionX(t), Y: p.PositionY(t, a)}
			if cfg.ConditionalStop && touchdown-t < StopThreshold {
				s.Y = cfg.StopY
				yield(s)
				return
			}
			if !yield(s) {
				return
			}
		}
	}, nil
}

// GeneratePath materializes Samples into a Path.
func (p Projectile) GeneratePath(a, start, end float64, cfg PathConfig) (*Path, error) {
	seq, err := p.Samples(a, start, end, cfg)
	if err != nil {
		return nil, err
	}
	n, _ := sampleCount(start, end, cfg)

	size := n
	if cfg.ConditionalStop {
		touchdown, _ := p.TouchdownTime(cfg.StopY, a)
		size = stopCapacity(start, end, n, touchdown)
	}
	path := &Path{
		Times: make([]float64, 0, size),
		X:     make([]float64, 0, size),
		Y:     make([]float64, 0, size),
	}
	for s := range seq {
		path.Times = append(path.Times, s.T)
		path.X = append(path.X, s.X)
		path.Y = append(path.Y, s.Y)
	}

	if cfg.ConditionalStop {
		path.TouchdownTime, _ = p.TouchdownTime(cfg.StopY, a)
		path.Truncated = path.Len() < n
	}
	return path, nil
}

// Interpolate returns the height at t by linear interpolation between the
// bracketing samples of an ascending path. ok is false outside the sampled range.
func Interpolate(path *Path, t float64) (y float64, ok bool) {
	n := path.Len()
	if n == 0 || math.IsNaN(t) || t < path.Times[0] || t > path.Times[n-1] {
		return 0, false
	}
	i := sort.SearchFloat64s(path.Times, t)
	if path.Times[i] == t {
		return path.Y[i], true
	}
	t0, t1 := path.Times[i-1], path.Times[i]
	frac := (t - t0) / (t1 - t0)
	return path.Y[i-1]*(1-frac) + path.Y[i]*frac, true
}
