package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestExtractTxt(t *testing.T) {
	e := NewExtractor(nil)

	text, err := e.Extract(context.Background(), "syllabus.txt", []byte("Unit 1: Trees\nUnit 2: Graphs\n"))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !strings.Contains(text, "Unit 2: Graphs") {
		t.Errorf("text = %q", text)
	}
}

func TestExtractTxtStripsBOM(t *testing.T) {
	e := NewExtractor(nil)

	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Unit 1")...)
	text, err := e.Extract(context.Background(), "s.txt", data)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if text != "Unit 1" {
		t.Errorf("text = %q", text)
	}
}

func TestExtractDocx(t *testing.T) {
	docXML := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Unit 1: Sorting</w:t></w:r></w:p>
    <w:p><w:r><w:t>Unit 2: </w:t></w:r><w:r><w:t>Searching</w:t></w:r></w:p>
  </w:body>
</w:document>`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte(docXML)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	e := NewExtractor(nil)
	text, err := e.Extract(context.Background(), "syllabus.docx", buf.Bytes())
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !strings.Contains(text, "Unit 1: Sorting") {
		t.Errorf("text = %q", text)
	}
	// Runs in one paragraph join without a break; paragraphs break.
	if !strings.Contains(text, "Unit 2: Searching") {
		t.Errorf("runs not joined: %q", text)
	}
	if !strings.Contains(text, "Sorting\n") {
		t.Errorf("paragraph break missing: %q", text)
	}
}

func TestExtractUnsupportedType(t *testing.T) {
	e := NewExtractor(nil)

	_, err := e.Extract(context.Background(), "syllabus.csv", []byte("a,b"))
	if !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("err = %v, want ErrUnsupportedType", err)
	}
}

func TestExtractEmpty(t *testing.T) {
	e := NewExtractor(nil)

	if _, err := e.Extract(context.Background(), "s.txt", nil); !errors.Is(err, ErrEmptyDocument) {
		t.Errorf("nil data: err = %v", err)
	}
	if _, err := e.Extract(context.Background(), "s.txt", []byte("   \n ")); !errors.Is(err, ErrEmptyDocument) {
		t.Errorf("blank text: err = %v", err)
	}
}

func TestExtractCorruptPDF(t *testing.T) {
	e := NewExtractor(nil)

	_, err := e.Extract(context.Background(), "s.pdf", []byte("not a pdf at all"))
	if !errors.Is(err, ErrUnreadable) {
		t.Errorf("err = %v, want ErrUnreadable", err)
	}
}

func TestExtractCorruptDocx(t *testing.T) {
	e := NewExtractor(nil)

	_, err := e.Extract(context.Background(), "s.docx", []byte("not a zip"))
	if !errors.Is(err, ErrUnreadable) {
		t.Errorf("err = %v, want ErrUnreadable", err)
	}
}
