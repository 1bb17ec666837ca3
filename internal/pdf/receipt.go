// Package pdf writes the one-page receipt kept for every submitted request.
package pdf

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/BassemGalal/QuickReceipt-clean/internal/model"

	"github.com/jung-kurt/gofpdf"
)

// Generator writes receipt files into a fixed directory.
type Generator struct {
	dir string
}

// NewGenerator creates a receipt generator writing into dir.
func NewGenerator(dir string) *Generator {
	return &Generator{dir: dir}
}

// WriteReceipt renders a request to request_YYYYMMDD_HHMMSS.pdf and returns
// the written path. Labels and values stay in Latin script: the built-in core
// fonts carry no Arabic glyphs.
func (g *Generator) WriteReceipt(req *model.Request) (string, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.AddPage()
	doc.SetFont("Arial", "B", 14)
	doc.CellFormat(0, 10, "Hospitality Request Record", "", 1, "C", false, 0, "")
	doc.Ln(10)

	doc.SetFont("Arial", "", 12)
	rows := []struct{ label, value string }{
		{"Request ID", req.ID},
		{"Owner", req.Owner},
		{"Membership", req.Membership},
		{"Bookings", strings.Join(req.Bookings, " | ")},
		{"From Date", req.FromDate},
		{"To Date", req.ToDate},
		{"Guests", strings.Join(req.Guests, " | ")},
		{"Telegram", req.Telegram},
		{"Notes", req.Notes},
	}
	for _, row := range rows {
		doc.CellFormat(0, 10, fmt.Sprintf("%s: %s", row.label, row.value), "", 1, "", false, 0, "")
	}

	path := filepath.Join(g.dir, fmt.Sprintf("request_%s.pdf", time.Now().Format("20060102_150405")))
	if err := doc.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("write pdf receipt: %w", err)
	}
	return path, nil
}
