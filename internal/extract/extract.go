package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
)

var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrUnreadable      = errors.New("file could not be read")
	ErrEmptyDocument   = errors.New("no text could be extracted")
)

// OCRService recovers text from scanned documents when plain extraction
// comes back empty. Optional; nil disables the fallback.
type OCRService interface {
	ExtractText(ctx context.Context, data []byte) (string, error)
}

type Extractor struct {
	ocr OCRService
}

func NewExtractor(ocr OCRService) *Extractor {
	return &Extractor{ocr: ocr}
}

// Extract pulls plain text from an uploaded syllabus file. The format is
// chosen by extension: .txt, .pdf and .docx are supported.
func (e *Extractor) Extract(ctx context.Context, filename string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyDocument
	}

	ext := strings.ToLower(filepath.Ext(filename))

	var text string
	var err error
	switch ext {
	case ".txt":
		text, err = extractTxt(data)
	case ".pdf":
		text, err = extractPDF(data)
	case ".docx":
		text, err = extractDocx(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, ext)
	}
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" && e.ocr != nil && ext == ".pdf" {
		log.Printf("[extract] %s yielded no text, trying OCR", filename)
		text, err = e.ocr.ExtractText(ctx, data)
		if err != nil {
			return "", fmt.Errorf("ocr fallback: %w", err)
		}
		text = strings.TrimSpace(text)
	}
	if text == "" {
		return "", ErrEmptyDocument
	}
	return text, nil
}

func extractTxt(data []byte) (string, error) {
	// Strip a UTF-8 BOM if present and drop invalid sequences.
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	return strings.ToValidUTF8(string(data), ""), nil
}
