package render

import (
	"fmt"
	"strings"
)

type bounds struct {
	minX, maxX, minY, maxY float64
}

// fit returns the bounds of the series, padded by pad of each range.
func fit(xs, ys []float64, pad float64) bounds {
	b := bounds{minX: xs[0], maxX: xs[0], minY: ys[0], maxY: ys[0]}
	for i := range xs {
		b.minX = min(b.minX, xs[i])
		b.maxX = max(b.maxX, xs[i])
		b.minY = min(b.minY, ys[i])
		b.maxY = max(b.maxY, ys[i])
	}

	rangeX := b.maxX - b.minX
	rangeY := b.maxY - b.minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	b.minX -= rangeX * pad
	b.maxX += rangeX * pad
	b.minY -= rangeY * pad
	b.maxY += rangeY * pad
	if b.maxX == b.minX {
		b.minX, b.maxX = b.minX-0.5, b.maxX+0.5
	}
	if b.maxY == b.minY {
		b.minY, b.maxY = b.minY-0.5, b.maxY+0.5
	}
	return b
}

// scale maps (x, y) onto a w×h surface with y pointing down.
func (b bounds) scale(x, y, w, h float64) (float64, float64) {
	sx := (x - b.minX) / (b.maxX - b.minX) * w
	sy := h - (y-b.minY)/(b.maxY-b.minY)*h
	return sx, sy
}

// SVG renders the series as a single polyline. It returns "" for fewer than
// two points or mismatched series.
func SVG(xs, ys []float64, width, height int, strokeColor string) string {
	if len(xs) < 2 || len(xs) != len(ys) {
		return ""
	}
	b := fit(xs, ys, 0.1)

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i := range xs {
		x, y := b.scale(xs[i], ys[i], float64(width), float64(height))
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
