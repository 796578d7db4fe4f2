package render

import (
	"fmt"
	"io"

	"github.com/revelaction/tagset/dataset"
	"github.com/revelaction/tagset/feature"
)

const LabelColumn = "label"

var (
	Yellow = "\033[0;33m"
	Gray   = "\033[0;37m"
	Off    = "\033[0m"
)

func SupportedFormats() []string {
	return []string{"csv", "json", "sparse"}
}

// Renderer writes a dense dataset.
type Renderer interface {
	Render(ds dataset.Dataset) error
}

// New returns the dense Renderer for format, "csv" or "json". The sparse
// format has its own renderer, see SparseRenderer.
func New(format string, w io.Writer, enc *feature.Encoder) (Renderer, error) {
	switch format {
	case "csv":
		return NewCSVRenderer(w, enc.Columns()), nil
	case "json":
		return NewJSONRenderer(w, enc.Columns()), nil
	}

	return nil, fmt.Errorf("unsupported dense format %q", format)
}
