package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/revelaction/tagset/dataset"
)

// CSVRenderer writes one line per token: the feature columns followed by
// the label. The first line is the header.
type CSVRenderer struct {
	W       io.Writer
	Columns []string
}

func NewCSVRenderer(w io.Writer, columns []string) *CSVRenderer {
	return &CSVRenderer{W: w, Columns: columns}
}

func (r *CSVRenderer) Render(ds dataset.Dataset) error {
	cw := csv.NewWriter(r.W)

	header := append(append([]string{}, r.Columns...), LabelColumn)
	if err := cw.Write(header); err != nil {
		return err
	}

	record := make([]string, len(header))
	for i, row := range ds.X {
		if len(row) != len(r.Columns) {
			return fmt.Errorf("row %d has %d columns, header has %d", i, len(row), len(r.Columns))
		}

		for j, v := range row {
			record[j] = strconv.Itoa(int(v))
		}
		record[len(row)] = ds.Y[i]

		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// compile-time interface check
var _ Renderer = (*CSVRenderer)(nil)
