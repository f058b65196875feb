package render

import "github.com/guptarohit/asciigraph"

// ASCII renders ys as a terminal line chart. Series longer than width are
// resampled by asciigraph.
func ASCII(ys []float64, caption string, width, height int) string {
	if len(ys) == 0 {
		return ""
	}
	return asciigraph.Plot(ys,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}
