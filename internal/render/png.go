package render

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

const (
	DefaultWidth  = 16.0
	DefaultHeight = 8.0
	DefaultDir    = "img/"
)

var (
	ErrLengthMismatch = errors.New("render: x and y series differ in length")
	ErrEmptySeries    = errors.New("render: empty series")
)

type options struct {
	width, height float64
	dir           string
}

// Option configures PNG.
type Option func(*options)

// WithSize sets the image size in inches.
func WithSize(width, height float64) Option {
	return func(o *options) {
		o.width, o.height = width, height
	}
}

// WithOutputDir sets the prefix prepended to the file name. It is used as
// given, so a directory needs its trailing separator.
func WithOutputDir(dir string) Option {
	return func(o *options) {
		o.dir = dir
	}
}

func checkSeries(xs, ys []float64) error {
	if len(xs) != len(ys) {
		return fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(xs), len(ys))
	}
	if len(xs) == 0 {
		return ErrEmptySeries
	}
	return nil
}

// PNG writes a gridded line plot of ys against xs and returns the file path.
func PNG(xs, ys []float64, xLabel, yLabel, title string, opts ...Option) (string, error) {
	if err := checkSeries(xs, ys); err != nil {
		return "", err
	}
	o := options{width: DefaultWidth, height: DefaultHeight, dir: DefaultDir}
	for _, opt := range opts {
		opt(&o)
	}
	if o.width <= 0 || o.height <= 0 {
		return "", fmt.Errorf("render: invalid size %gx%g", o.width, o.height)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return "", fmt.Errorf("render: %w", err)
	}
	p.Add(line)

	out := o.dir + title + ".png"
	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", err
		}
	}
	if err := p.Save(vg.Length(o.width)*vg.Inch, vg.Length(o.height)*vg.Inch, out); err != nil {
		return "", err
	}
	return out, nil
}
