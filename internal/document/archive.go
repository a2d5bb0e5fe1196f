package document

import (
	"archive/zip"
	"bytes"
	"fmt"
)

type ArchiveFile struct {
	Name string
	Data []byte
}

// BuildArchive packs the rendered documents into a single zip, one .pdf
// entry per file, preserving the given order.
func BuildArchive(files []ArchiveFile) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, f := range files {
		w, err := zw.Create(f.Name + ".pdf")
		if err != nil {
			return nil, fmt.Errorf("zip entry %s: %w", f.Name, err)
		}
		if _, err := w.Write(f.Data); err != nil {
			return nil, fmt.Errorf("zip write %s: %w", f.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("zip close: %w", err)
	}
	return buf.Bytes(), nil
}
