package render

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/revelaction/tagset/dataset"
	"github.com/revelaction/tagset/feature"
)

func TestCSVRendererRender(t *testing.T) {
	enc := testEncoder()
	ds := testDataset(t, enc)

	var buf bytes.Buffer
	if err := NewCSVRenderer(&buf, enc.Columns()).Render(ds); err != nil {
		t.Fatalf("render: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("expected header and 2 rows, got %d records", len(records))
	}

	header := records[0]
	if header[len(header)-1] != LabelColumn {
		t.Errorf("expected last header column %q, got %q", LabelColumn, header[len(header)-1])
	}

	if header[0] != "w:кіт" {
		t.Errorf("expected first column w:кіт, got %q", header[0])
	}

	// first token: prev tag is the start sentinel, not the end
	first := records[1]
	if first[len(first)-2] != "0" {
		t.Errorf("expected end flag 0, got %q", first[len(first)-2])
	}
	if first[len(first)-1] != "NOUN" {
		t.Errorf("expected label NOUN, got %q", first[len(first)-1])
	}

	last := records[2]
	if last[len(last)-2] != "1" {
		t.Errorf("expected end flag 1, got %q", last[len(last)-2])
	}
}

func TestCSVRendererWidthMismatch(t *testing.T) {
	ds := dataset.Dataset{X: feature.Matrix{{1, 0, 0}}, Y: []string{"X"}}

	var buf bytes.Buffer
	err := NewCSVRenderer(&buf, []string{"a", "b"}).Render(ds)
	if err == nil {
		t.Fatal("expected error for width mismatch")
	}
}

func TestSparseRendererRender(t *testing.T) {
	sp := dataset.Sparse{
		Rows: []feature.Index{{Word: 0, PrevTag: 2}, {Word: 1, PrevTag: 0, End: true}},
		Y:    []string{"NOUN", "VERB"},
	}

	var buf bytes.Buffer
	if err := NewSparseRenderer(&buf).Render(sp); err != nil {
		t.Fatalf("render: %v", err)
	}

	want := "word,prev,end,label\n0,2,0,NOUN\n1,0,1,VERB\n"
	if got := buf.String(); got != want {
		t.Errorf("expected\n%s\ngot\n%s", want, got)
	}
}

func TestNew(t *testing.T) {
	enc := testEncoder()
	for _, format := range []string{"csv", "json"} {
		if _, err := New(format, &bytes.Buffer{}, enc); err != nil {
			t.Errorf("format %s: %v", format, err)
		}
	}

	if _, err := New("sparse", &bytes.Buffer{}, enc); err == nil {
		t.Error("expected error for sparse format")
	}

	if _, err := New("xml", &bytes.Buffer{}, enc); err == nil || !strings.Contains(err.Error(), "xml") {
		t.Errorf("expected unsupported format error, got %v", err)
	}
}
