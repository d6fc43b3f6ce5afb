package checklist

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"
)

// PDFConfig controls the printed booth sheet
type PDFConfig struct {
	Show    string
	BaseURL string
}

// BoothURL is the link encoded in a booth sheet QR code
func BoothURL(baseURL, booth string) string {
	return fmt.Sprintf("%s/checklists?booth=%s", strings.TrimRight(baseURL, "/"), url.QueryEscape(booth))
}

// BoothPDF renders the checklist of one booth on A4 pages. When a base URL
// is set, a QR code in the top right links back to the booth in the app.
func BoothPDF(cfg PDFConfig, b Booth) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(140, 8, tr("Booth "+b.Booth), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(140, 5, tr(b.Exhibitor), "", 1, "L", false, 0, "")
	pdf.CellFormat(140, 5, tr(b.Section), "", 1, "L", false, 0, "")
	if cfg.Show != "" {
		pdf.CellFormat(140, 5, tr(cfg.Show), "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(140, 5, fmt.Sprintf("%d of %d items received (%d%%)", b.Progress.Checked, b.Progress.Total, b.Progress.Percent), "", 1, "L", false, 0, "")

	if cfg.BaseURL != "" {
		qrPng, err := qrcode.Encode(BoothURL(cfg.BaseURL, b.Booth), qrcode.Medium, 256)
		if err != nil {
			return nil, err
		}
		opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
		pdf.RegisterImageOptionsReader("booth_qr", opts, bytes.NewReader(qrPng))
		pdf.ImageOptions("booth_qr", 165, 12, 30, 30, false, opts, 0, "")
	}

	pdf.SetY(50)
	widths := []float64{10, 95, 20, 55}
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range []string{"", "Item", "Qty", "Instructions"} {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, it := range b.Items {
		mark := ""
		if it.Checked {
			mark = "X"
		}
		pdf.CellFormat(widths[0], 7, mark, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 7, tr(it.ItemName), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 7, fmt.Sprint(it.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[3], 7, tr(it.SpecialInstructions), "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
