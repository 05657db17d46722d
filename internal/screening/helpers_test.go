package screening

import (
	"archive/zip"
	"bytes"
	"context"
	"html"
	"strings"
	"sync/atomic"
	"testing"
)

// fakeLinguistics splits on whitespace, knows a handful of stop-words and lemmatizes
// a few plurals. Known people are reported when they occur in the text.
type fakeLinguistics struct {
	people []string
}

var fakeStopWords = map[string]bool{
	"a": true, "and": true, "in": true, "of": true, "the": true, "with": true, "i": true, "am": true,
}

var fakeLemmas = map[string]string{
	"models":    "model",
	"pipelines": "pipeline",
	"learned":   "learn",
}

func (f fakeLinguistics) Tokenize(text string) []string { return strings.Fields(text) }

func (f fakeLinguistics) IsStopWord(tok string) bool { return fakeStopWords[tok] }

func (f fakeLinguistics) Lemma(tok string) string {
	if l, ok := fakeLemmas[tok]; ok {
		return l
	}
	return tok
}

func (f fakeLinguistics) PersonEntities(text string) []string {
	var out []string
	for _, p := range f.people {
		if strings.Contains(text, p) {
			out = append(out, p)
		}
	}
	return out
}

// stubEmbedder returns fixed vectors and counts calls.
type stubEmbedder struct {
	vecs  [][]float32
	err   error
	calls atomic.Int32
}

func (s *stubEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.vecs, nil
}

// closingEmbedder records Close.
type closingEmbedder struct {
	stubEmbedder
	closed bool
}

func (c *closingEmbedder) Close() error {
	c.closed = true
	return nil
}

// countingLinguistics counts entity passes, the expensive step of the real pipeline.
type countingLinguistics struct {
	fakeLinguistics
	entityCalls *atomic.Int32
}

func (c countingLinguistics) PersonEntities(text string) []string {
	c.entityCalls.Add(1)
	return c.fakeLinguistics.PersonEntities(text)
}

// docxOf wraps each line in its own paragraph of a minimal .docx archive.
func docxOf(t *testing.T, lines ...string) []byte {
	t.Helper()
	var body strings.Builder
	for _, line := range lines {
		body.WriteString("<w:p><w:r><w:t>" + html.EscapeString(line) + "</w:t></w:r></w:p>")
	}
	files := map[string]string{
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
			body.String() + `</w:body></w:document>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
	}
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create zip entry: %v", err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("write zip entry: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}
