package models

// ChartKind identifies one of the generated images.
type ChartKind string

const (
	ChartTopBrands      ChartKind = "top_brands"
	ChartAvgPriceBrand  ChartKind = "avg_price_brand"
	ChartSeatingHeatmap ChartKind = "seating_capacity_heatmap"
	ChartTransmission   ChartKind = "transmission_types"
	ChartPriceDist      ChartKind = "price_distribution"
	ChartCarsByYear     ChartKind = "cars_by_year"
	ChartLogo           ChartKind = "logo_placeholder"
)

// ChartArtifact is a rendered image on disk. Width and Height are the size
// it is placed at in the document, in points.
type ChartArtifact struct {
	Kind   ChartKind
	Title  string
	Path   string
	Width  float64
	Height float64
}

// SectionKind orders the parts of the report.
type SectionKind int

const (
	SectionCover SectionKind = iota
	SectionInsights
	SectionGallery
	SectionTable
)

func (k SectionKind) String() string {
	switch k {
	case SectionCover:
		return "cover"
	case SectionInsights:
		return "insights"
	case SectionGallery:
		return "gallery"
	case SectionTable:
		return "table"
	}
	return "unknown"
}

// MetricLine is a bold label followed by a value, e.g. "Total Cars: 7253".
type MetricLine struct {
	Label string
	Value string
}

// TablePage is one page worth of the full data table.
type TablePage struct {
	Number int
	Header []string
	Rows   [][]string
}

// Section is one page-started block of the report. Only the fields relevant
// to Kind are set.
type Section struct {
	Kind       SectionKind
	Heading    string
	Logo       *ChartArtifact
	Paragraphs []string
	Metrics    []MetricLine
	Charts     []ChartArtifact
	Table      *TablePage
}

// ReportDocument is the ordered, renderer-independent report.
type ReportDocument struct {
	Title    string
	Sections []Section
}

// TablePages returns the table sections in order.
func (d *ReportDocument) TablePages() []*TablePage {
	var pages []*TablePage
	for i := range d.Sections {
		if d.Sections[i].Kind == SectionTable && d.Sections[i].Table != nil {
			pages = append(pages, d.Sections[i].Table)
		}
	}
	return pages
}
