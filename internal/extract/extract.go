package extract

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"resume-screener/internal/shared/telemetry"
)

// Format tags a resume payload.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

// ErrUnsupportedFormat is returned by TextStrict for formats other than pdf and docx.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// RawDocument is an uploaded resume as bytes plus its declared format.
type RawDocument struct {
	Data   []byte
	Format Format
}

// FormatFromFileName maps a file extension onto a Format, or "" when unsupported.
func FormatFromFileName(name string) Format {
	switch strings.ToLower(filepath.Ext(strings.TrimSpace(name))) {
	case ".pdf":
		return FormatPDF
	case ".docx":
		return FormatDOCX
	default:
		return ""
	}
}

// ParseFormat accepts a bare tag ("PDF", "docx") or a MIME type.
func ParseFormat(raw string) Format {
	clean := strings.ToLower(strings.TrimSpace(strings.Split(raw, ";")[0]))
	switch clean {
	case "pdf", "application/pdf":
		return FormatPDF
	case "docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return FormatDOCX
	default:
		return ""
	}
}

// Supported reports whether f can be extracted.
func (f Format) Supported() bool {
	return f == FormatPDF || f == FormatDOCX
}

// Text returns the plain text of doc. Unsupported formats yield "".
// Unreadable documents also yield "" and are logged, so a bad upload scores as an empty resume.
func Text(ctx context.Context, doc RawDocument) string {
	text, err := TextStrict(ctx, doc)
	if err != nil {
		if !errors.Is(err, ErrUnsupportedFormat) {
			telemetry.Warn("extract.failed", map[string]any{
				"format": string(doc.Format),
				"bytes":  len(doc.Data),
				"err":    err,
			})
		}
		return ""
	}
	return text
}

// TextStrict is Text with the failure returned instead of logged.
func TextStrict(ctx context.Context, doc RawDocument) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	switch doc.Format {
	case FormatPDF:
		return extractPDF(doc.Data)
	case FormatDOCX:
		return extractDOCX(doc.Data)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, doc.Format)
	}
}

// TextFromFile reads path and extracts it using the format implied by its extension.
func TextFromFile(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", path, err)
	}
	return Text(ctx, RawDocument{Data: data, Format: FormatFromFileName(path)}), nil
}

func extractPDF(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty pdf data")
	}
	pdfReader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("pdf: %w", err)
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("pdf: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("pdf: %w", err)
	}
	return buf.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty docx data")
	}
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("docx: %w", err)
	}
	defer doc.Close()

	return stripDocxXML(doc.Editable().GetContent()), nil
}

// stripDocxXML flattens WordprocessingML to text; paragraphs and breaks become newlines.
func stripDocxXML(raw string) string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return raw
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.WriteString(string(t))
		case xml.StartElement:
			if t.Name.Local == "tab" {
				buf.WriteString("\t")
			}
		case xml.EndElement:
			if (t.Name.Local == "p" || t.Name.Local == "br") && buf.Len() > 0 {
				buf.WriteString("\n")
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
