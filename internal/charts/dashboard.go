package charts

import (
	"fmt"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/vvka-141/retailsql/pkg/retailsql"
)

// figure is a grid of plots saved as one image.
type figure struct {
	title  string
	width  vg.Length
	height vg.Length
	plots  [][]*plot.Plot
}

// save draws the figure at dpi and writes it to path as PNG.
func (f *figure) save(path string, dpi int) error {
	img := vgimg.NewWith(vgimg.UseWH(f.width, f.height), vgimg.UseDPI(dpi))
	dc := draw.New(img)

	tiles := draw.Tiles{
		Rows:      len(f.plots),
		Cols:      len(f.plots[0]),
		PadX:      vg.Millimeter * 12,
		PadY:      vg.Millimeter * 12,
		PadLeft:   vg.Millimeter * 6,
		PadRight:  vg.Millimeter * 6,
		PadBottom: vg.Millimeter * 6,
		PadTop:    vg.Millimeter * 6,
	}
	if f.title != "" {
		tiles.PadTop = vg.Millimeter * 18
		dc.FillText(textStyle(vg.Points(22), draw.XCenter, draw.YTop),
			vg.Point{X: dc.Center().X, Y: dc.Max.Y - vg.Millimeter*4}, f.title)
	}

	canvases := plot.Align(f.plots, tiles, dc)
	for j := range f.plots {
		for i, p := range f.plots[j] {
			p.Draw(canvases[j][i])
		}
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w: %w", path, retailsql.ErrRenderFailed, err)
	}
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(out); err != nil {
		out.Close()
		return fmt.Errorf("writing %s: %w: %w", path, retailsql.ErrRenderFailed, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing %s: %w: %w", path, retailsql.ErrRenderFailed, err)
	}
	return nil
}
