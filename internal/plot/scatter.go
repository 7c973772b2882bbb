// Package plot renders the scatter-plot projection of a cleaned dataset.
package plot

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/KaramelBytes/tablesift/internal/dataset"
)

// ErrUnknownColumn indicates an axis names a column the dataset lacks.
var ErrUnknownColumn = errors.New("unknown column")

// maxTickLabels caps how many category labels are drawn on one axis.
const maxTickLabels = 25

// Options controls the rendered image.
type Options struct {
	Title    string
	WidthIn  float64
	HeightIn float64
	// Format is any gonum/plot image format: png, svg, pdf, ...
	Format string
}

// DefaultOptions returns a 6x4 inch PNG titled "Scatter Plot".
func DefaultOptions() Options {
	return Options{Title: "Scatter Plot", WidthIn: 6, HeightIn: 4, Format: "png"}
}

// Scatter plots column y against column x. Numeric columns are used as-is;
// object columns are placed on categorical positions in first-seen order.
func Scatter(ds *dataset.Dataset, x, y string, opt Options) ([]byte, error) {
	xc, ok := ds.Column(x)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, x)
	}
	yc, ok := ds.Column(y)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, y)
	}
	def := DefaultOptions()
	if opt.WidthIn <= 0 {
		opt.WidthIn = def.WidthIn
	}
	if opt.HeightIn <= 0 {
		opt.HeightIn = def.HeightIn
	}
	if opt.Format == "" {
		opt.Format = def.Format
	}

	p := plot.New()
	p.Title.Text = opt.Title
	p.X.Label.Text = x
	p.Y.Label.Text = y

	xs, xticks := axisValues(xc)
	ys, yticks := axisValues(yc)
	if len(xs) > 0 {
		pts := make(plotter.XYs, len(xs))
		for i := range xs {
			pts[i].X = xs[i]
			pts[i].Y = ys[i]
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, fmt.Errorf("build scatter: %w", err)
		}
		s.GlyphStyle.Color = color.RGBA{R: 50, G: 50, B: 255, A: 255}
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		s.GlyphStyle.Radius = vg.Points(3)
		p.Add(s)
		p.Add(plotter.NewGrid())
	}
	if xticks != nil {
		p.X.Tick.Marker = plot.ConstantTicks(xticks)
		p.X.Min, p.X.Max = -0.5, float64(len(xticks))-0.5
	}
	if yticks != nil {
		p.Y.Tick.Marker = plot.ConstantTicks(yticks)
		p.Y.Min, p.Y.Max = -0.5, float64(len(yticks))-0.5
	}

	w, err := p.WriterTo(vg.Length(opt.WidthIn)*vg.Inch, vg.Length(opt.HeightIn)*vg.Inch, opt.Format)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", opt.Format, err)
	}
	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode %s: %w", opt.Format, err)
	}
	return buf.Bytes(), nil
}

// axisValues maps a column onto plot coordinates. For object columns it
// also returns one tick per category (labels thinned past maxTickLabels).
func axisValues(c dataset.Column) ([]float64, []plot.Tick) {
	if c.Type == dataset.Numeric {
		return append([]float64(nil), c.Nums...), nil
	}
	pos := make(map[string]int)
	var labels []string
	vals := make([]float64, len(c.Cells))
	for i, cell := range c.Cells {
		key := cell.String()
		idx, ok := pos[key]
		if !ok {
			idx = len(labels)
			pos[key] = idx
			labels = append(labels, key)
		}
		vals[i] = float64(idx)
	}
	step := 1
	if len(labels) > maxTickLabels {
		step = (len(labels) + maxTickLabels - 1) / maxTickLabels
	}
	ticks := make([]plot.Tick, len(labels))
	for i, l := range labels {
		ticks[i].Value = float64(i)
		if i%step == 0 {
			ticks[i].Label = l
		}
	}
	return vals, ticks
}
