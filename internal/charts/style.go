package charts

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// bandColors are used for the age-group bars, in band order.
var bandColors = []color.Color{
	color.RGBA{R: 0xFF, G: 0x6B, B: 0x6B, A: 0xFF},
	color.RGBA{R: 0x4E, G: 0xCD, B: 0xC4, A: 0xFF},
	color.RGBA{R: 0x45, G: 0xB7, B: 0xD1, A: 0xFF},
	color.RGBA{R: 0x96, G: 0xCE, B: 0xB4, A: 0xFF},
	color.RGBA{R: 0xFF, G: 0xEA, B: 0xA7, A: 0xFF},
}

// sliceColors are used for the category pie.
var sliceColors = []color.Color{
	color.RGBA{R: 0xFF, G: 0x99, B: 0x99, A: 0xFF},
	color.RGBA{R: 0x66, G: 0xB2, B: 0xFF, A: 0xFF},
	color.RGBA{R: 0x99, G: 0xFF, B: 0x99, A: 0xFF},
}

func cycle(colors []color.Color, i int) color.Color {
	if i < len(colors) {
		return colors[i]
	}
	return plotutil.Color(i)
}

// seriesColor is the color of the i-th gender series.
func seriesColor(i int) color.Color {
	return plotutil.Color(i)
}

// translucent returns c at roughly 60% opacity for overlaid histograms.
func translucent(c color.Color) color.Color {
	r, g, b, _ := c.RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 0x99}
}

func textStyle(size vg.Length, xalign text.XAlignment, yalign text.YAlignment) text.Style {
	return text.Style{
		Color:   color.Black,
		Font:    font.From(plot.DefaultFont, size),
		Handler: plot.DefaultTextHandler,
		XAlign:  xalign,
		YAlign:  yalign,
	}
}

// newPlot returns a plot with a title, axis labels and a light grid.
func newPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.Padding = vg.Points(6)
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel

	grid := plotter.NewGrid()
	grid.Vertical.Color = color.Gray{Y: 0xDD}
	grid.Horizontal.Color = color.Gray{Y: 0xDD}
	p.Add(grid)
	return p
}

// rotateXTicks tilts the X tick labels for long nominal values.
func rotateXTicks(p *plot.Plot) {
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
}
