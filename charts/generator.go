package charts

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"usedcars-report/config"
	"usedcars-report/models"
	"usedcars-report/utils"
)

const dpi = 100

// ErrNoData is returned when a chart has nothing to plot.
var ErrNoData = errors.New("no data to plot")

var (
	skyBlue = color.RGBA{R: 135, G: 206, B: 235, A: 255}
	orange  = color.RGBA{R: 255, G: 165, A: 255}
	green   = color.RGBA{G: 128, A: 255}
	purple  = color.RGBA{R: 128, B: 128, A: 255}
	teal    = color.RGBA{G: 128, B: 128, A: 255}
)

// Data is the aggregated input for the six analytical charts.
type Data struct {
	TopBrands     []models.LabelValue
	AvgPriceBrand []models.LabelValue
	Seating       []models.LabelValue
	Transmission  []models.LabelValue
	Prices        []float64
	YearCounts    []models.LabelValue
}

// Generator renders charts as PNG files under a directory.
type Generator struct {
	dir    string
	logger *utils.Logger
}

// NewGenerator creates a Generator writing into dir.
func NewGenerator(dir string, logger *utils.Logger) *Generator {
	return &Generator{dir: dir, logger: logger}
}

// GenerateAll renders the six charts in report order, then the logo.
func (g *Generator) GenerateAll(d Data) ([]models.ChartArtifact, models.ChartArtifact, error) {
	if err := os.MkdirAll(g.dir, 0755); err != nil {
		return nil, models.ChartArtifact{}, fmt.Errorf("charts: create dir: %w", err)
	}

	steps := []func() (models.ChartArtifact, error){
		func() (models.ChartArtifact, error) { return g.TopBrands(d.TopBrands) },
		func() (models.ChartArtifact, error) { return g.AveragePriceByBrand(d.AvgPriceBrand) },
		func() (models.ChartArtifact, error) { return g.SeatingHeatmap(d.Seating) },
		func() (models.ChartArtifact, error) { return g.Transmission(d.Transmission) },
		func() (models.ChartArtifact, error) { return g.PriceDistribution(d.Prices) },
		func() (models.ChartArtifact, error) { return g.CarsByYear(d.YearCounts) },
	}

	out := make([]models.ChartArtifact, 0, len(steps))
	for _, step := range steps {
		a, err := step()
		if err != nil {
			return nil, models.ChartArtifact{}, err
		}
		g.logger.Debug("[charts] Saved %s", a.Path)
		out = append(out, a)
	}

	logo, err := g.Logo()
	if err != nil {
		return nil, models.ChartArtifact{}, err
	}
	g.logger.Info("[charts] Rendered %d charts and logo into %s", len(out), g.dir)
	return out, logo, nil
}

// TopBrands plots listing counts for the most common brands.
func (g *Generator) TopBrands(counts []models.LabelValue) (models.ChartArtifact, error) {
	return g.bar(models.ChartTopBrands, config.TopBrandsFile, "Top 10 Brands (By Count)",
		"", "Number of Cars", counts, skyBlue, math.Pi/4, 6*vg.Inch)
}

// AveragePriceByBrand plots the brands with the highest mean price.
func (g *Generator) AveragePriceByBrand(avgs []models.LabelValue) (models.ChartArtifact, error) {
	return g.bar(models.ChartAvgPriceBrand, config.AvgPriceBrandFile, "Average Price by Brand (Top 10)",
		"", "Avg Price (Lakh Rs.)", avgs, orange, math.Pi/4, 6*vg.Inch)
}

// Transmission plots listing counts per transmission type.
func (g *Generator) Transmission(counts []models.LabelValue) (models.ChartArtifact, error) {
	return g.bar(models.ChartTransmission, config.TransmissionFile, "Transmission Types",
		"", "Number of Cars", counts, green, 0, 6*vg.Inch)
}

// CarsByYear plots listing counts per model year.
func (g *Generator) CarsByYear(counts []models.LabelValue) (models.ChartArtifact, error) {
	return g.bar(models.ChartCarsByYear, config.CarsByYearFile, "Number of Cars by Year",
		"Year", "Number of Cars", counts, teal, math.Pi/2, 8*vg.Inch)
}

// PriceDistribution plots a 30-bin histogram of prices.
func (g *Generator) PriceDistribution(prices []float64) (models.ChartArtifact, error) {
	a := g.artifact(models.ChartPriceDist, config.PriceDistFile, "Price Distribution")
	if len(prices) == 0 {
		return a, fmt.Errorf("charts: %s: %w", a.Kind, ErrNoData)
	}

	p := newPlot(a.Title, "Price (Lakh Rs.)", "Number of Cars")
	h, err := plotter.NewHist(plotter.Values(prices), 30)
	if err != nil {
		return a, fmt.Errorf("charts: %s: %w", a.Kind, err)
	}
	h.FillColor = purple
	h.LineStyle.Color = color.Black
	h.LineStyle.Width = vg.Points(0.5)
	p.Add(h)

	return a, save(p, a.Path, 6*vg.Inch, 4*vg.Inch, color.White)
}

func (g *Generator) bar(kind models.ChartKind, file, title, xLabel, yLabel string,
	series []models.LabelValue, fill color.Color, rotation float64, width vg.Length) (models.ChartArtifact, error) {

	a := g.artifact(kind, file, title)
	if len(series) == 0 {
		return a, fmt.Errorf("charts: %s: %w", kind, ErrNoData)
	}

	values := make(plotter.Values, len(series))
	names := make([]string, len(series))
	for i, lv := range series {
		values[i] = lv.Value
		names[i] = lv.Label
	}

	p := newPlot(title, xLabel, yLabel)
	bars, err := plotter.NewBarChart(values, barWidth(width, len(series)))
	if err != nil {
		return a, fmt.Errorf("charts: %s: %w", kind, err)
	}
	bars.Color = fill
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalX(names...)
	if rotation != 0 {
		p.X.Tick.Label.Rotation = rotation
		p.X.Tick.Label.XAlign = text.XRight
		p.X.Tick.Label.YAlign = text.YCenter
	}

	return a, save(p, a.Path, width, 4*vg.Inch, color.White)
}

func (g *Generator) artifact(kind models.ChartKind, file, title string) models.ChartArtifact {
	return models.ChartArtifact{Kind: kind, Title: title, Path: filepath.Join(g.dir, file)}
}

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	return p
}

// barWidth spreads bars over roughly 70% of the plotting width.
func barWidth(width vg.Length, n int) vg.Length {
	w := width * 0.7 / vg.Length(n)
	if w > vg.Points(40) {
		w = vg.Points(40)
	}
	return w
}

// save draws p onto a fresh canvas and writes it as PNG. Nothing is shared
// between calls, so one chart cannot bleed into the next.
func save(p *plot.Plot, path string, w, h vg.Length, bg color.Color) error {
	c := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(dpi), vgimg.UseBackgroundColor(bg))
	p.Draw(draw.New(c))
	return writePNG(c, path)
}

func writePNG(c *vgimg.Canvas, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("charts: create %q: %w", path, err)
	}
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("charts: encode %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("charts: close %q: %w", path, err)
	}
	return nil
}
