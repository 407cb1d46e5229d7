package textextract

import (
	"archive/zip"
	"bytes"
	"errors"
	"strings"
	"testing"
)

func buildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestExtract_Empty(t *testing.T) {
	if _, err := Extract("a.txt", "text/plain", nil); !errors.Is(err, ErrEmpty) {
		t.Fatalf("err = %v, want ErrEmpty", err)
	}
}

func TestExtract_PlainText(t *testing.T) {
	got, err := Extract("resume.txt", "text/plain", []byte("  Jane Doe\n\nGo developer\t with  five years "))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if got != "Jane Doe Go developer with five years" {
		t.Fatalf("Extract() = %q", got)
	}
}

func TestExtract_DOCX(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Experience</w:t></w:r></w:p>
    <w:p><w:r><w:t xml:space="preserve">Built </w:t></w:r><w:r><w:t>APIs</w:t></w:r></w:p>
  </w:body>
</w:document>`
	data := buildZip(t, map[string]string{
		"[Content_Types].xml": "<Types/>",
		"word/document.xml":   doc,
	})

	got, err := Extract("cv.docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", data)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if got != "Experience Built APIs" {
		t.Fatalf("Extract() = %q", got)
	}
}

func TestExtract_PPTX(t *testing.T) {
	slide := `<p:sld xmlns:p="p" xmlns:a="a"><p:txBody><a:p><a:r><a:t>Photosynthesis</a:t></a:r></a:p></p:txBody></p:sld>`
	data := buildZip(t, map[string]string{
		"ppt/slides/slide1.xml": slide,
		"ppt/presentation.xml":  "<p:presentation/>",
	})

	got, err := Extract("deck.pptx", "", data)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if !strings.Contains(got, "Photosynthesis") {
		t.Fatalf("Extract() = %q", got)
	}
}

func TestExtract_BinaryWithTextRuns(t *testing.T) {
	data := append([]byte{0x00, 0x01, 0xFE}, []byte("Curriculum vitae of a student with plenty of readable text inside it")...)
	data = append(data, 0x00, 0x02)

	got, err := Extract("legacy.doc", "application/msword", data)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if !strings.Contains(got, "Curriculum vitae") {
		t.Fatalf("Extract() = %q", got)
	}
}

func TestExtract_BinaryWithoutText(t *testing.T) {
	data := []byte{0x00, 0x01, 0x02, 0x03, 'a', 'b', 0x00}
	if _, err := Extract("blob.bin", "application/octet-stream", data); !errors.Is(err, ErrNoText) {
		t.Fatalf("err = %v, want ErrNoText", err)
	}
}
