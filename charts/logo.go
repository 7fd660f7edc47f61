package charts

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"usedcars-report/config"
	"usedcars-report/models"
)

// LogoText is printed on the placeholder logo.
const LogoText = "....Analysed Car Data...."

// Logo renders the placeholder logo on a transparent background.
func (g *Generator) Logo() (models.ChartArtifact, error) {
	a := g.artifact(models.ChartLogo, config.LogoFile, "Logo")

	w, h := 4.5*vg.Inch, 1.5*vg.Inch
	c := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(dpi), vgimg.UseBackgroundColor(color.Transparent))
	dc := draw.New(c)

	sty := text.Style{
		Color:   color.Black,
		Font:    plot.DefaultFont,
		XAlign:  text.XCenter,
		YAlign:  text.YCenter,
		Handler: plot.DefaultTextHandler,
	}
	sty.Font.Size = vg.Points(20)
	dc.FillText(sty, vg.Point{X: w / 2, Y: h / 2}, LogoText)

	return a, writePNG(c, a.Path)
}
