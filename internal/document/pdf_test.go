package document

import (
	"bytes"
	"compress/zlib"
	"io"
	"testing"
)

// inflatedStreams concatenates every stream object in the PDF, inflating the
// zlib-compressed ones and passing raw ones through.
func inflatedStreams(t *testing.T, data []byte) []byte {
	t.Helper()
	var out bytes.Buffer
	rest := data
	for {
		start := bytes.Index(rest, []byte("stream\n"))
		if start < 0 {
			break
		}
		rest = rest[start+len("stream\n"):]
		end := bytes.Index(rest, []byte("endstream"))
		if end < 0 {
			break
		}
		raw := bytes.TrimSuffix(rest[:end], []byte("\n"))
		if zr, err := zlib.NewReader(bytes.NewReader(raw)); err == nil {
			if inflated, err := io.ReadAll(zr); err == nil {
				out.Write(inflated)
			}
			zr.Close()
		} else {
			out.Write(raw)
		}
		rest = rest[end+len("endstream"):]
	}
	if out.Len() == 0 {
		t.Fatal("no streams found in PDF output")
	}
	return out.Bytes()
}

// Kept Latin-1 runes must reach the cp1252 core font as single bytes; raw
// UTF-8 would draw each of them as two mojibake glyphs.
func TestRenderPDFTranslatesLatin1(t *testing.T) {
	doc := Format("Accents", "café résumé")
	data, err := RenderPDF(doc)
	if err != nil {
		t.Fatalf("RenderPDF: %v", err)
	}

	content := inflatedStreams(t, data)
	if !bytes.Contains(content, []byte("caf\xe9")) {
		t.Error("expected single-byte cp1252 encoding of é in content stream")
	}
	if bytes.Contains(content, []byte("caf\xc3\xa9")) {
		t.Error("content stream carries raw UTF-8 for é")
	}
}
