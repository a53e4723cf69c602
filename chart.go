package main

import (
	"fmt"
	"io"
	"log"
	"math"
	"strconv"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var CHART_MIMETYPES = map[string]string{
	"svg":  "image/svg+xml",
	"png":  "image/png",
	"pdf":  "application/pdf",
	"eps":  "application/postscript",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"tif":  "image/tiff",
	"tiff": "image/tiff",
}

func val_format_for_printing(v float64) string {
	return strconv.FormatFloat(v, 'g', 3, 64)
}

// CellTicker puts a labeled tick on every multiple of Step, the same
// spacing the canvas graph uses for its tick marks.
type CellTicker struct {
	Step float64
}

func (t CellTicker) Ticks(min, max float64) []plot.Tick {
	if t.Step <= 0 || max < min {
		return plot.DefaultTicks{}.Ticks(min, max)
	}
	ret := []plot.Tick{}
	first := int(math.Ceil(min / t.Step))
	last := int(math.Floor(max / t.Step))
	for i := first; i <= last; i++ {
		v := float64(i) * t.Step
		ret = append(ret, plot.Tick{Value: v, Label: val_format_for_printing(v)})
	}
	return ret
}

func (gc *graph_config) drawing_to_data(p drawing_point) plotter.XY {
	return plotter.XY{X: p.x - gc.center_x, Y: gc.center_y - p.y}
}

// region_data_polygons traces the region in data space. The disc becomes
// the quadrant its clears leave behind, approximated with arc_steps
// segments.
func region_data_polygons(gc *graph_config, reg *region_shape, arc_steps int) []plotter.XYs {
	if reg == nil {
		return nil
	}
	disc := plotter.XYs{gc.drawing_to_data(reg.disc_center)}
	center := disc[0]
	for i := 0; i <= arc_steps; i++ {
		a := math.Pi / 2 * float64(i) / float64(arc_steps)
		disc = append(disc, plotter.XY{
			X: center.X + reg.disc_radius*math.Cos(a),
			Y: center.Y + reg.disc_radius*math.Sin(a),
		})
	}

	rc := reg.rect.normalized()
	rect := plotter.XYs{
		gc.drawing_to_data(drawing_point{x: rc.x, y: rc.y}),
		gc.drawing_to_data(drawing_point{x: rc.x + rc.w, y: rc.y}),
		gc.drawing_to_data(drawing_point{x: rc.x + rc.w, y: rc.y + rc.h}),
		gc.drawing_to_data(drawing_point{x: rc.x, y: rc.y + rc.h}),
	}

	triangle := plotter.XYs{}
	for _, p := range reg.triangle {
		triangle = append(triangle, gc.drawing_to_data(p))
	}
	return []plotter.XYs{disc, rect, triangle}
}

// chart_generate plots the region for R together with the samples taken
// for R using gonum/plot, in any format plot.WriterTo understands.
func chart_generate(gc *graph_config, r float64, samples []sample,
	format string, width, height int, w io.Writer) error {

	t0 := time.Now()

	p := plot.New()
	p.BackgroundColor = COLOR_BG
	p.Title.Text = fmt.Sprintf("R = %s", val_format_for_printing(r))
	p.X.LineStyle.Color = COLOR_AXIS
	p.Y.LineStyle.Color = COLOR_AXIS
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	if reg := region_for(gc, r); reg != nil {
		for _, xys := range region_data_polygons(gc, reg, DEFAULT_CHART_ARC_STEPS) {
			poly, err := plotter.NewPolygon(xys)
			if err != nil {
				return err
			}
			poly.Color = COLOR_REGION
			poly.LineStyle.Width = 0
			p.Add(poly)
		}
	} else {
		p.Title.Text += " (outside range)"
	}

	xys := plotter.XYs{}
	inside := []bool{}
	for _, s := range samples {
		if s.r != r || !is_finite(s.x, s.y) {
			continue
		}
		xys = append(xys, plotter.XY{X: s.x, Y: s.y})
		inside = append(inside, s.inside)
	}
	if len(xys) > 0 {
		sc, err := NewSampleScatter(xys, inside)
		if err != nil {
			return err
		}
		p.Add(sc)
	}
	p.Add(plotter.NewGrid())

	p.X.Min = gc.graph_left - gc.center_x
	p.X.Max = gc.graph_right - gc.center_x
	p.Y.Min = gc.center_y - gc.graph_bottom
	p.Y.Max = gc.center_y - gc.graph_top
	p.X.Tick.Marker = CellTicker{Step: gc.cell_size}
	p.Y.Tick.Marker = CellTicker{Step: gc.cell_size}

	wt, err := p.WriterTo(vg.Length(width), vg.Length(height), format)
	if err != nil {
		return err
	}
	if _, err := wt.WriteTo(w); err != nil {
		return err
	}

	log.Println("chart_generate: ", len(xys), "samples, took", time.Since(t0))
	return nil
}
