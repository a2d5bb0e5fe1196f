package document

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

const (
	pageMargin      = 15.0
	pageBreakMargin = 20.0
	footerOffset    = -15.0
)

// RenderPDF draws the op sequence onto an A4 portrait PDF and returns the
// raw bytes. The document's Pages field is updated with the final count.
func RenderPDF(doc *RenderedDocument) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageBreakMargin)

	// The core fonts are cp1252; UTF-8 must be translated or every kept
	// Latin-1 rune renders as two mojibake glyphs.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Helvetica", "B", 16)
		pdf.SetTextColor(colorHeading.R, colorHeading.G, colorHeading.B)
		pdf.CellFormat(0, 12, tr(doc.Title), "", 1, "C", false, 0, "")
		pdf.Ln(8)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(footerOffset)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	for _, op := range doc.Ops {
		renderOp(pdf, tr, op)
	}

	doc.Pages = pdf.PageNo()

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf render failed: %w", err)
	}
	return buf.Bytes(), nil
}

func renderOp(pdf *gofpdf.Fpdf, tr func(string) string, op Op) {
	if op.SpaceBefore > 0 {
		pdf.Ln(op.SpaceBefore)
	}

	switch op.Kind {
	case OpSpacer:
		pdf.Ln(op.LineHeight)

	case OpRule:
		pageWidth, _ := pdf.GetPageSize()
		y := pdf.GetY()
		pdf.SetDrawColor(colorSubheading.R, colorSubheading.G, colorSubheading.B)
		pdf.Line(pageMargin, y, pageWidth-pageMargin, y)

	default:
		style := ""
		if op.Bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, op.Size)
		pdf.SetTextColor(op.Color.R, op.Color.G, op.Color.B)
		if op.Indent > 0 {
			pdf.SetX(pageMargin + op.Indent)
		}
		pdf.MultiCell(0, op.LineHeight, tr(op.Text), "", "L", false)
	}

	if op.SpaceAfter > 0 {
		pdf.Ln(op.SpaceAfter)
	}
}
