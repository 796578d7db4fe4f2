package render

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/revelaction/tagset/dataset"
	"github.com/revelaction/tagset/feature"
	sent "github.com/revelaction/tagset/sentence"
	"github.com/revelaction/tagset/vocab"
)

func testEncoder() *feature.Encoder {
	c := sent.Corpus{
		{Words: []string{"кіт", "спати"}, Tags: []string{"NOUN", "VERB"}, Features: []string{"", ""}},
	}
	return feature.NewEncoder(vocab.Words(c), vocab.Tags(c))
}

func testDataset(t *testing.T, enc *feature.Encoder) dataset.Dataset {
	t.Helper()
	c := sent.Corpus{
		{Words: []string{"кіт", "спати"}, Tags: []string{"NOUN", "VERB"}, Features: []string{"", ""}},
	}
	ds, err := dataset.Assemble(c, enc)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	return ds
}

func TestJSONRendererRenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	r := NewJSONRenderer(&buf, []string{"w:a", "end"})
	if err := r.Render(dataset.Dataset{}); err != nil {
		t.Fatalf("render: %v", err)
	}

	var doc Document
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	if len(doc.X) != 0 || len(doc.Y) != 0 {
		t.Fatalf("expected empty dataset, got %d rows", len(doc.X))
	}

	if doc.Width != 2 {
		t.Fatalf("expected width 2, got %d", doc.Width)
	}
}

func TestJSONRendererRenderDataset(t *testing.T) {
	enc := testEncoder()
	ds := testDataset(t, enc)

	var buf bytes.Buffer
	r := NewJSONRenderer(&buf, enc.Columns())
	if err := r.Render(ds); err != nil {
		t.Fatalf("render: %v", err)
	}

	var doc Document
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	if doc.Width != enc.Width() {
		t.Errorf("expected width %d, got %d", enc.Width(), doc.Width)
	}

	if len(doc.X) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(doc.X))
	}

	for i, row := range doc.X {
		if !bytes.Equal(row, ds.X[i]) {
			t.Errorf("row %d: expected %v, got %v", i, ds.X[i], row)
		}
	}

	if doc.Y[0] != "NOUN" || doc.Y[1] != "VERB" {
		t.Errorf("unexpected labels %v", doc.Y)
	}
}
