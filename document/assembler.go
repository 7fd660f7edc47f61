package document

import (
	"fmt"
	"strconv"

	"usedcars-report/models"
	"usedcars-report/services"
)

// ReportTitle heads the cover page.
const ReportTitle = "USED CARS MARKET ANALYSIS REPORT"

// Display sizes in points.
const (
	chartWidth    = 400
	chartHeight   = 250
	heatmapHeight = 150
	logoWidth     = 150
	logoHeight    = 50
)

// Assembler lays the report out as an ordered list of sections.
type Assembler struct {
	rowsPerPage int
}

// NewAssembler creates an Assembler that puts rowsPerPage rows on each table page.
func NewAssembler(rowsPerPage int) *Assembler {
	return &Assembler{rowsPerPage: rowsPerPage}
}

// Assemble builds the cover, insights, gallery and table pages in that order.
// charts must hold the six analytical charts in generation order.
func (a *Assembler) Assemble(m *models.SummaryMetrics, charts []models.ChartArtifact,
	logo models.ChartArtifact, listings []*models.Listing) (*models.ReportDocument, error) {

	if len(charts) != 6 {
		return nil, fmt.Errorf("document: expected 6 charts, got %d", len(charts))
	}
	if a.rowsPerPage <= 0 {
		return nil, fmt.Errorf("document: rows per page must be positive, got %d", a.rowsPerPage)
	}

	logo = sized(logo, logoWidth, logoHeight)
	doc := &models.ReportDocument{Title: ReportTitle}

	doc.Sections = append(doc.Sections, models.Section{
		Kind:       models.SectionCover,
		Heading:    ReportTitle,
		Logo:       &logo,
		Paragraphs: []string{coverIntro, coverBody},
	})

	doc.Sections = append(doc.Sections, models.Section{
		Kind:    models.SectionInsights,
		Heading: "Key Market Insights",
		Metrics: MetricLines(m),
		Charts: []models.ChartArtifact{
			sized(charts[0], chartWidth, chartHeight),
			sized(charts[1], chartWidth, chartHeight),
		},
	})

	doc.Sections = append(doc.Sections, models.Section{
		Kind:    models.SectionGallery,
		Heading: "Additional Visual Insights",
		Charts: []models.ChartArtifact{
			sized(charts[2], chartWidth, heatmapHeight),
			sized(charts[3], chartWidth, chartHeight),
			sized(charts[4], chartWidth, chartHeight),
			sized(charts[5], chartWidth, chartHeight),
		},
	})

	for i, rows := range services.Paginate(services.TableRows(listings), a.rowsPerPage) {
		page := &models.TablePage{Number: i + 1, Header: services.TableHeader, Rows: rows}
		doc.Sections = append(doc.Sections, models.Section{
			Kind:    models.SectionTable,
			Heading: "Full Data Table - Page " + strconv.Itoa(page.Number),
			Table:   page,
		})
	}

	return doc, nil
}

// MetricLines formats the summary metrics for the insights page.
func MetricLines(m *models.SummaryMetrics) []models.MetricLine {
	avg := "n/a"
	if m.HasAveragePrice {
		avg = fmt.Sprintf("Rs. %.2f Lakh", m.AveragePrice)
	}
	return []models.MetricLine{
		{Label: "Total Cars", Value: strconv.Itoa(m.TotalCars)},
		{Label: "Average Price", Value: avg},
		{Label: "Most Common Fuel Type", Value: m.MostCommonFuel},
		{Label: "Most Common Brand", Value: m.MostCommonBrand},
	}
}

func sized(c models.ChartArtifact, w, h float64) models.ChartArtifact {
	c.Width, c.Height = w, h
	return c
}
