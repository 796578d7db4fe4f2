package render

import (
	"encoding/json"
	"io"

	"github.com/revelaction/tagset/dataset"
	"github.com/revelaction/tagset/feature"
)

// JSONRenderer writes a Dataset as one JSON document to a writer.
type JSONRenderer struct {
	W       io.Writer
	Columns []string
}

// Document is the JSON form of a rendered Dataset.
type Document struct {
	Width   int            `json:"width"`
	Columns []string       `json:"columns"`
	X       feature.Matrix `json:"x"`
	Y       []string       `json:"y"`
}

// NewJSONRenderer creates a JSONRenderer writing to w.
func NewJSONRenderer(w io.Writer, columns []string) *JSONRenderer {
	return &JSONRenderer{W: w, Columns: columns}
}

// Render serializes the dataset with its column names.
func (r *JSONRenderer) Render(ds dataset.Dataset) error {
	doc := Document{
		Width:   len(r.Columns),
		Columns: r.Columns,
		X:       ds.X,
		Y:       ds.Y,
	}
	if doc.X == nil {
		doc.X = feature.Matrix{}
	}
	if doc.Y == nil {
		doc.Y = []string{}
	}

	return json.NewEncoder(r.W).Encode(doc)
}

// compile-time interface check
var _ Renderer = (*JSONRenderer)(nil)
