package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfMargin   = 20.0
	pdfLineH    = 6.0
	headingSize = 16.0
)

// renderPDF lays the session out the way the web exporter did: centered
// title, date, summary, bulleted key points, then the full transcript,
// paginating as needed with a "Page N of M" stamp on every page.
func renderPDF(transcript string, summary Summary) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle(summary.Title, true)
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)

	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.MultiCell(0, 10, tr(summary.Title), "", "C", false)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, pdfLineH, time.Now().Format("January 2, 2006"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	heading := func(text string) {
		pdf.SetFont("Helvetica", "B", headingSize)
		pdf.CellFormat(0, 8, text, "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 12)
	}

	heading("Summary")
	pdf.MultiCell(0, pdfLineH, tr(summary.Narrative), "", "L", false)
	pdf.Ln(4)

	heading("Key Points")
	for _, point := range summary.KeyPoints {
		pdf.MultiCell(0, pdfLineH, tr("• "+point), "", "L", false)
	}
	pdf.Ln(4)

	heading("Transcription")
	pdf.MultiCell(0, pdfLineH, tr(transcript), "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailure, err)
	}
	return buf.Bytes(), nil
}
