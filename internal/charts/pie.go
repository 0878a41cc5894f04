package charts

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// pieChart draws shares of a whole as slices starting at 12 o'clock and going
// counter-clockwise. It sizes itself to the canvas and ignores the axes.
type pieChart struct {
	values []float64
	labels []string
	colors []color.Color
}

func (pc pieChart) total() float64 {
	var sum float64
	for _, v := range pc.values {
		sum += v
	}
	return sum
}

// Plot implements plot.Plotter.
func (pc pieChart) Plot(c draw.Canvas, _ *plot.Plot) {
	total := pc.total()
	if total <= 0 {
		return
	}

	center := c.Center()
	radius := min(c.Max.X-c.Min.X, c.Max.Y-c.Min.Y) / 2 * 0.8

	start := math.Pi / 2
	for i, v := range pc.values {
		if v <= 0 {
			continue
		}
		sweep := 2 * math.Pi * v / total

		var path vg.Path
		path.Move(center)
		path.Arc(center, radius, start, sweep)
		path.Close()
		c.SetColor(cycle(pc.colors, i))
		c.Fill(path)

		mid := start + sweep/2
		c.FillText(textStyle(vg.Points(11), draw.XCenter, draw.YCenter),
			polar(center, radius*0.6, mid), fmt.Sprintf("%.1f%%", 100*v/total))
		c.FillText(textStyle(vg.Points(12), draw.XCenter, draw.YCenter),
			polar(center, radius*1.15, mid), pc.labels[i])

		start += sweep
	}
}

func polar(center vg.Point, r vg.Length, angle float64) vg.Point {
	return vg.Point{
		X: center.X + vg.Length(math.Cos(angle))*r,
		Y: center.Y + vg.Length(math.Sin(angle))*r,
	}
}
