package charts

import (
	"fmt"
	"image/color"
	"strconv"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"

	"usedcars-report/config"
	"usedcars-report/models"
)

// rowGrid lays a series out as a single-row grid for plotter.HeatMap.
type rowGrid []models.LabelValue

func (g rowGrid) Dims() (c, r int)   { return len(g), 1 }
func (g rowGrid) Z(c, _ int) float64 { return g[c].Value }
func (g rowGrid) X(c int) float64    { return float64(c) }
func (g rowGrid) Y(int) float64      { return 0 }

// reds runs from near white to dark red.
type reds []color.Color

func (r reds) Colors() []color.Color { return r }

func newReds(n int) reds {
	out := make(reds, n)
	for i := range out {
		t := float64(i) / float64(n-1)
		out[i] = color.RGBA{
			R: uint8(255 - t*(255-103)),
			G: uint8(245 - t*245),
			B: uint8(240 - t*(240-13)),
			A: 255,
		}
	}
	return out
}

// SeatingHeatmap renders seating capacity counts as an annotated one-row heatmap.
func (g *Generator) SeatingHeatmap(dist []models.LabelValue) (models.ChartArtifact, error) {
	a := g.artifact(models.ChartSeatingHeatmap, config.SeatingHeatmapFile, "Distribution of Cars by Seating Capacity")
	if len(dist) == 0 {
		return a, fmt.Errorf("charts: %s: %w", a.Kind, ErrNoData)
	}

	p := newPlot(a.Title, "Seating Capacity", "")
	pal := newReds(64)
	hm := plotter.NewHeatMap(rowGrid(dist), pal)
	if hm.Max == hm.Min {
		hm.Max = hm.Min + 1
	}
	p.Add(hm)

	xys := make(plotter.XYs, len(dist))
	labels := make([]string, len(dist))
	for i, lv := range dist {
		xys[i] = plotter.XY{X: float64(i), Y: 0}
		labels[i] = strconv.Itoa(int(lv.Value))
	}
	annot, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return a, fmt.Errorf("charts: %s: %w", a.Kind, err)
	}
	for i, lv := range dist {
		annot.TextStyle[i].XAlign = text.XCenter
		annot.TextStyle[i].YAlign = text.YCenter
		if (lv.Value-hm.Min)/(hm.Max-hm.Min) > 0.6 {
			annot.TextStyle[i].Color = color.White
		}
	}
	p.Add(annot)

	names := make([]string, len(dist))
	for i, lv := range dist {
		names[i] = lv.Label
	}
	p.NominalX(names...)
	p.HideY()

	return a, save(p, a.Path, 6*vg.Inch, 2.5*vg.Inch, color.White)
}
