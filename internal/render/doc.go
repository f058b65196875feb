// Package render turns sampled (x, y) series into images and terminal plots.
//
// [PNG] is the file sink: a line plot with a grid written to
// <dir><title>.png. [SVG], [Canvas] and [ASCII] produce in-memory output
// for exports and terminal views.
package render
