package storage

import (
	"encoding/json"
	"io"
)

type ExportData struct {
	Metadata  RunMetadata `json:"metadata"`
	Steps     int         `json:"steps"`
	Times     []float64   `json:"times"`
	X         []float64   `json:"x"`
	Y         []float64   `json:"y"`
	Kinetic   []float64   `json:"kinetic"`
	Potential []float64   `json:"potential"`
}

func ExportJSON(w io.Writer, meta RunMetadata, run *Run) error {
	data := ExportData{
		Metadata:  meta,
		Steps:     run.Path.Len(),
		Times:     run.Path.Times,
		X:         run.Path.X,
		Y:         run.Path.Y,
		Kinetic:   run.Kinetic,
		Potential: run.Potential,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
