package render

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/revelaction/tagset/dataset"
)

var SparseHeader = []string{"word", "prev", "end", LabelColumn}

// SparseRenderer writes the active index of each segment instead of the
// one-hot row: word index, previous tag index, end flag and label.
type SparseRenderer struct {
	W io.Writer
}

func NewSparseRenderer(w io.Writer) *SparseRenderer {
	return &SparseRenderer{W: w}
}

func (r *SparseRenderer) Render(sp dataset.Sparse) error {
	cw := csv.NewWriter(r.W)
	if err := cw.Write(SparseHeader); err != nil {
		return err
	}

	for i, ix := range sp.Rows {
		end := "0"
		if ix.End {
			end = "1"
		}

		record := []string{strconv.Itoa(ix.Word), strconv.Itoa(ix.PrevTag), end, sp.Y[i]}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
