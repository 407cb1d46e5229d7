// Package textextract pulls readable text out of uploaded documents.
package textextract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

var (
	// ErrEmpty is returned for zero-length input.
	ErrEmpty = errors.New("file is empty")
	// ErrNoText is returned when nothing readable could be recovered.
	ErrNoText = errors.New("no readable text found")
)

// minHeuristicLength is the shortest printable run accepted from the binary cleanup pass.
const minHeuristicLength = 50

// Extract sniffs data by magic bytes first, then by declared MIME type or
// extension, and returns whitespace-collapsed text.
// Supported: PDF, DOCX, PPTX, plain text. Anything else goes through a
// printable-ASCII cleanup that succeeds only if enough text survives.
func Extract(name, mimeType string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmpty
	}
	ext := strings.ToLower(filepath.Ext(name))
	mt := strings.ToLower(strings.TrimSpace(mimeType))

	var (
		text string
		err  error
	)
	switch {
	case isPDF(data):
		text, err = extractPDF(data)
	case isZip(data):
		text, err = extractOpenXML(data)
	case mt == "text/plain" || ext == ".txt" || ext == ".md" || isProbablyText(data):
		text = collapseWhitespace(string(data))
	default:
		err = fmt.Errorf("unrecognized format %s (%s)", ext, mt)
	}

	if err == nil && strings.TrimSpace(text) != "" {
		return text, nil
	}

	// Scanned or malformed documents sometimes still carry plain runs.
	if readable := printableRuns(data); len(readable) >= minHeuristicLength {
		return readable, nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNoText, err)
	}
	return "", ErrNoText
}

func isPDF(b []byte) bool {
	return len(b) >= 5 && string(b[:5]) == "%PDF-"
}

func isZip(b []byte) bool {
	return len(b) >= 4 && b[0] == 'P' && b[1] == 'K' && b[2] == 3 && b[3] == 4
}

func isProbablyText(b []byte) bool {
	sample := b[:min(len(b), 4096)]
	if bytes.IndexByte(sample, 0) >= 0 {
		return false
	}
	return utf8.Valid(sample) || float64(countPrintable(sample))/float64(len(sample)) > 0.9
}

func countPrintable(b []byte) int {
	n := 0
	for _, c := range b {
		if c == '\n' || c == '\r' || c == '\t' || (c >= 0x20 && c <= 0x7E) || c >= 0x80 {
			n++
		}
	}
	return n
}

func extractPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("pdf reader: %w", err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("pdf plaintext: %w", err)
	}
	b, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("pdf read: %w", err)
	}
	return collapseWhitespace(string(b)), nil
}

// extractOpenXML reads w:t runs from DOCX or a:t runs from PPTX slides.
func extractOpenXML(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open zip: %w", err)
	}

	var out strings.Builder
	matched := false
	for _, f := range zr.File {
		isDoc := f.Name == "word/document.xml"
		isSlide := strings.HasPrefix(f.Name, "ppt/slides/slide") && strings.HasSuffix(f.Name, ".xml")
		if !isDoc && !isSlide {
			continue
		}
		matched = true

		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("open %s: %w", f.Name, err)
		}
		b, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return "", fmt.Errorf("read %s: %w", f.Name, err)
		}
		out.WriteString(textRuns(b))
		out.WriteString("\n")
	}
	if !matched {
		return "", errors.New("zip is neither docx nor pptx")
	}
	return collapseWhitespace(out.String()), nil
}

// textRuns concatenates the character data of every <*:t> element.
func textRuns(doc []byte) string {
	dec := xml.NewDecoder(bytes.NewReader(doc))
	var out strings.Builder
	inRun := false
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inRun = true
			case "p", "br", "tab":
				out.WriteString(" ")
			}
		case xml.EndElement:
			if t.Name.Local == "t" {
				inRun = false
			}
		case xml.CharData:
			if inRun {
				out.Write(t)
			}
		}
	}
	return out.String()
}

// printableRuns keeps printable ASCII and line structure, dropping blank lines.
func printableRuns(data []byte) string {
	mapped := make([]byte, len(data))
	for i, c := range data {
		if c == '\n' || c == '\r' || c == '\t' || (c >= 0x20 && c <= 0x7E) {
			mapped[i] = c
		} else {
			mapped[i] = ' '
		}
	}

	lines := strings.Split(string(mapped), "\n")
	kept := lines[:0]
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			kept = append(kept, strings.Join(strings.Fields(trimmed), " "))
		}
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

func collapseWhitespace(s string) string {
	return strings.TrimSpace(strings.Join(strings.Fields(s), " "))
}
