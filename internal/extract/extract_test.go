package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const documentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>
<w:p><w:r><w:t>Python developer, 3+ years</w:t></w:r><w:r><w:br/><w:t>SQL and Pandas</w:t></w:r></w:p>
</w:body>
</w:document>`

const documentRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`

func buildDocx(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create zip entry: %v", err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("write zip entry: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestTextDocx(t *testing.T) {
	data := buildDocx(t, map[string]string{
		"word/document.xml":            documentXML,
		"word/_rels/document.xml.rels": documentRels,
	})

	text := Text(context.Background(), RawDocument{Data: data, Format: FormatDOCX})
	for _, want := range []string{"Jane Doe", "3+ years", "SQL and Pandas"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in %q", want, text)
		}
	}
	if !strings.Contains(text, "Jane Doe\n") {
		t.Fatalf("expected paragraph break after name, got %q", text)
	}
}

func TestTextUnsupportedFormat(t *testing.T) {
	for _, f := range []Format{"", "txt", "rtf"} {
		if got := Text(context.Background(), RawDocument{Data: []byte("hello"), Format: f}); got != "" {
			t.Fatalf("format %q: expected empty text, got %q", f, got)
		}
	}
	_, err := TextStrict(context.Background(), RawDocument{Data: []byte("hello"), Format: "txt"})
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestTextCorruptInputIsEmpty(t *testing.T) {
	cases := []RawDocument{
		{Data: []byte("not a pdf"), Format: FormatPDF},
		{Data: []byte("not a zip"), Format: FormatDOCX},
		{Data: nil, Format: FormatDOCX},
		{Data: buildDocx(t, map[string]string{"notes.txt": "hello"}), Format: FormatDOCX},
	}
	for _, doc := range cases {
		if got := Text(context.Background(), doc); got != "" {
			t.Fatalf("format %s: expected empty text, got %q", doc.Format, got)
		}
		if _, err := TextStrict(context.Background(), doc); err == nil {
			t.Fatalf("format %s: expected strict error", doc.Format)
		}
	}
}

func TestTextCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := TextStrict(ctx, RawDocument{Format: FormatPDF}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestTextFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Resume.DOCX")
	data := buildDocx(t, map[string]string{
		"word/document.xml":            documentXML,
		"word/_rels/document.xml.rels": documentRels,
	})
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	text, err := TextFromFile(context.Background(), path)
	if err != nil {
		t.Fatalf("TextFromFile: %v", err)
	}
	if !strings.Contains(text, "Jane Doe") {
		t.Fatalf("unexpected text %q", text)
	}

	if _, err := TextFromFile(context.Background(), filepath.Join(dir, "missing.pdf")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestFormatFromFileName(t *testing.T) {
	tests := map[string]Format{
		"cv.pdf":        FormatPDF,
		"CV.PDF":        FormatPDF,
		"a/b/cv.docx":   FormatDOCX,
		"cv.doc":        "",
		"cv":            "",
		"archive.docx ": FormatDOCX,
	}
	for name, want := range tests {
		if got := FormatFromFileName(name); got != want {
			t.Fatalf("%q: expected %q, got %q", name, want, got)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if ParseFormat("application/pdf; charset=binary") != FormatPDF {
		t.Fatal("expected pdf from mime")
	}
	if ParseFormat("DOCX") != FormatDOCX {
		t.Fatal("expected docx from tag")
	}
	if ParseFormat("text/plain") != "" {
		t.Fatal("expected unsupported")
	}
}

func TestStripDocxXMLKeepsTextOnMalformedInput(t *testing.T) {
	raw := "<w:p>unterminated"
	if got := stripDocxXML(raw); got != raw {
		t.Fatalf("expected raw fallback, got %q", got)
	}
}
