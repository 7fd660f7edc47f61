package document

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"

	"usedcars-report/models"
	"usedcars-report/utils"
)

const (
	margin     = 72.0
	mm         = 72.0 / 25.4
	bodySize   = 10.0
	bodyLine   = 12.0
	tableSize  = 8.0
	tableRowHt = 11.0
	gridWidth  = 0.25
)

// Column widths in points, matching services.TableHeader.
var columnWidths = []float64{48, 135, 55, 28, 40, 55, 50, 35}

// PDFRenderer lays the report out on A4 pages with fpdf.
type PDFRenderer struct {
	logger *utils.Logger
}

func NewPDFRenderer(logger *utils.Logger) *PDFRenderer {
	return &PDFRenderer{logger: logger}
}

// Render writes doc to path. Every section starts on a new page and every
// page carries a "Page N" footer.
func (r *PDFRenderer) Render(ctx context.Context, doc *models.ReportDocument, path string) error {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.SetTitle(doc.Title, true)
	pdf.SetCreator("usedcars-report", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		_, pageH := pdf.GetPageSize()
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(0, 0, 0)
		label := fmt.Sprintf("Page %d", pdf.PageNo())
		pdf.Text(200*mm-pdf.GetStringWidth(label), pageH-10*mm, label)
	})

	for _, s := range doc.Sections {
		if err := ctx.Err(); err != nil {
			return err
		}
		pdf.AddPage()
		var err error
		switch s.Kind {
		case models.SectionCover:
			err = r.cover(pdf, tr, s)
		case models.SectionInsights, models.SectionGallery:
			err = r.charts(pdf, tr, s)
		case models.SectionTable:
			r.table(pdf, tr, s)
		}
		if err != nil {
			return fmt.Errorf("document: %s section: %w", s.Kind, err)
		}
		if pdf.Err() {
			return fmt.Errorf("document: %s section: %w", s.Kind, pdf.Error())
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("document: create output dir: %w", err)
	}
	pages := pdf.PageNo()
	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("document: write %q: %w", path, err)
	}
	r.logger.Info("[pdf] Wrote %d pages to %s", pages, path)
	return nil
}

func (r *PDFRenderer) cover(pdf *fpdf.Fpdf, tr func(string) string, s models.Section) error {
	if s.Logo != nil {
		if err := image(pdf, *s.Logo); err != nil {
			return err
		}
		pdf.Ln(20)
	}

	pdf.SetFont("Helvetica", "BU", 18)
	pdf.CellFormat(0, 22, tr(s.Heading), "", 1, "C", false, 0, "")
	pdf.Ln(20)

	pdf.SetFont("Helvetica", "", bodySize)
	html := pdf.HTMLBasicNew()
	for i, p := range s.Paragraphs {
		if i > 0 {
			pdf.Ln(bodyLine + 10)
		}
		html.Write(bodyLine, tr(basicHTML(p)))
	}
	return nil
}

func (r *PDFRenderer) charts(pdf *fpdf.Fpdf, tr func(string) string, s models.Section) error {
	heading(pdf, tr, s.Heading, 18)
	pdf.Ln(12)

	if len(s.Metrics) > 0 {
		for _, m := range s.Metrics {
			pdf.SetFont("Helvetica", "B", bodySize)
			pdf.Write(bodyLine, tr(m.Label+": "))
			pdf.SetFont("Helvetica", "", bodySize)
			pdf.Write(bodyLine, tr(m.Value))
			pdf.Ln(bodyLine + 2)
		}
		pdf.Ln(12)
	}

	for i, c := range s.Charts {
		if i > 0 {
			pdf.Ln(12)
		}
		if err := image(pdf, c); err != nil {
			return err
		}
	}
	return nil
}

func (r *PDFRenderer) table(pdf *fpdf.Fpdf, tr func(string) string, s models.Section) {
	heading(pdf, tr, s.Heading, 14)
	pdf.Ln(6)
	if s.Table == nil {
		return
	}

	pageW, pageH := pdf.GetPageSize()
	var total float64
	for _, w := range columnWidths {
		total += w
	}
	left := (pageW - total) / 2

	pdf.SetLineWidth(gridWidth)
	pdf.SetDrawColor(0, 0, 0)
	header := func() {
		pdf.SetX(left)
		pdf.SetFont("Helvetica", "B", tableSize)
		pdf.SetFillColor(128, 128, 128)
		pdf.SetTextColor(245, 245, 245)
		for i, h := range s.Table.Header {
			pdf.CellFormat(columnWidths[i], tableRowHt, tr(h), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(tableRowHt)
		pdf.SetFont("Helvetica", "", tableSize)
		pdf.SetTextColor(0, 0, 0)
	}

	header()
	for _, row := range s.Table.Rows {
		if pdf.GetY()+tableRowHt > pageH-margin {
			pdf.AddPage()
			header()
		}
		pdf.SetX(left)
		for i, cell := range row {
			w := columnWidths[i]
			pdf.CellFormat(w, tableRowHt, fit(pdf, tr(cell), w-2), "1", 0, "C", false, 0, "")
		}
		pdf.Ln(tableRowHt)
	}
}

func heading(pdf *fpdf.Fpdf, tr func(string) string, text string, size float64) {
	pdf.SetFont("Helvetica", "B", size)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, size+4, tr(text), "", 1, "L", false, 0, "")
}

// image places c horizontally centred at the current position, breaking
// the page when it does not fit. fpdf ignores every later call once an image
// fails to load, so the error is surfaced here.
func image(pdf *fpdf.Fpdf, c models.ChartArtifact) error {
	pageW, _ := pdf.GetPageSize()
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.ImageOptions(c.Path, (pageW-c.Width)/2, 0, c.Width, c.Height, true, opts, 0, "")
	if pdf.Err() {
		return fmt.Errorf("image %q: %w", c.Path, pdf.Error())
	}
	return nil
}

// fit trims s until it is at most w points wide in the current font.
func fit(pdf *fpdf.Fpdf, s string, w float64) string {
	if pdf.GetStringWidth(s) <= w {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"..") > w {
		s = s[:len(s)-1]
	}
	return s + ".."
}

// basicHTML adapts cover markup to the subset fpdf's HTMLBasic parses.
func basicHTML(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	s = strings.ReplaceAll(s, "<br/>", "<br>")
	return strings.ReplaceAll(s, "<br> ", "<br>")
}
