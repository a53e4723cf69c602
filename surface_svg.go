package main

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"

	svg "github.com/ajstarks/svgo"
)

// SVG coordinates are integers, so everything is written in thousandths
// of a drawing unit and scaled back by the outermost group.
const SVG_UNITS_PER_DRAWING_UNIT = 1000

// svg_surface keeps the body separate from the definitions so that a
// clear can wrap everything drawn so far in a masked group. Later
// elements are appended outside the group and stay visible.
type svg_surface struct {
	gc     *graph_config
	body   bytes.Buffer
	defs   bytes.Buffer
	canvas *svg.SVG
	masks  int
}

func new_svg_surface(gc *graph_config) (surface, error) {
	s := &svg_surface{gc: gc}
	s.canvas = svg.New(&s.body)
	return s, nil
}

func svg_units(v float64) int {
	return int(math.Round(v * SVG_UNITS_PER_DRAWING_UNIT))
}

func svg_rect(r drawing_rect) (int, int, int, int) {
	r = r.normalized()
	return svg_units(r.x), svg_units(r.y), svg_units(r.w), svg_units(r.h)
}

func svg_fill(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf(
		"fill:rgb(%d,%d,%d);fill-opacity:%s",
		n.R, n.G, n.B, strconv.FormatFloat(float64(n.A)/255, 'f', 3, 64))
}

func svg_stroke(c color.Color, width float64) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf(
		"stroke:rgb(%d,%d,%d);stroke-opacity:%s;stroke-width:%d",
		n.R, n.G, n.B, strconv.FormatFloat(float64(n.A)/255, 'f', 3, 64),
		svg_units(width))
}

func (s *svg_surface) clear_rect(x, y, w, h float64) {
	cleared := drawing_rect{x: x, y: y, w: w, h: h}
	if cleared.contains(s.gc.bounds()) {
		s.body.Reset()
		s.defs.Reset()
		s.masks = 0
		return
	}
	if s.body.Len() == 0 {
		return
	}
	id := fmt.Sprintf("clear%d", s.masks)
	s.masks++

	bx, by, bw, bh := svg_rect(s.gc.bounds())
	cx, cy, cw, ch := svg_rect(cleared)
	d := svg.New(&s.defs)
	d.Mask(id, bx, by, bw, bh, `maskUnits="userSpaceOnUse"`)
	d.Rect(bx, by, bw, bh, "fill:white")
	d.Rect(cx, cy, cw, ch, "fill:black")
	d.MaskEnd()

	wrapped := bytes.Buffer{}
	g := svg.New(&wrapped)
	g.Group(fmt.Sprintf(`mask="url(#%s)"`, id))
	wrapped.Write(s.body.Bytes())
	g.Gend()
	s.body.Reset()
	s.body.Write(wrapped.Bytes())
}

func (s *svg_surface) fill_circle(cx, cy, radius float64, c color.Color) {
	s.canvas.Circle(svg_units(cx), svg_units(cy), svg_units(radius), svg_fill(c))
}

func (s *svg_surface) fill_rect(x, y, w, h float64, c color.Color) {
	rx, ry, rw, rh := svg_rect(drawing_rect{x: x, y: y, w: w, h: h})
	s.canvas.Rect(rx, ry, rw, rh, svg_fill(c))
}

func (s *svg_surface) fill_polygon(pts []drawing_point, c color.Color) {
	xs := make([]int, len(pts))
	ys := make([]int, len(pts))
	for i, p := range pts {
		xs[i] = svg_units(p.x)
		ys[i] = svg_units(p.y)
	}
	s.canvas.Polygon(xs, ys, svg_fill(c))
}

func (s *svg_surface) stroke_line(x0, y0, x1, y1, width float64, c color.Color) {
	s.canvas.Line(
		svg_units(x0), svg_units(y0), svg_units(x1), svg_units(y1),
		svg_stroke(c, width))
}

func (s *svg_surface) fill_text(text string, x, y, size float64, c color.Color) {
	s.canvas.Text(
		svg_units(x), svg_units(y), text,
		fmt.Sprintf("font-family:Arial,sans-serif;font-size:%d;%s", svg_units(size), svg_fill(c)))
}

func (s *svg_surface) encode(w io.Writer) error {
	b := bytes.Buffer{}
	out := svg.New(&b)
	out.Start(s.gc.width_px(), s.gc.height_px())
	if s.defs.Len() > 0 {
		out.Def()
		b.Write(s.defs.Bytes())
		out.DefEnd()
	}
	out.Gtransform(fmt.Sprintf(
		"scale(%s)",
		strconv.FormatFloat(s.gc.scale/SVG_UNITS_PER_DRAWING_UNIT, 'g', -1, 64)))
	b.Write(s.body.Bytes())
	out.Gend()
	out.End()
	_, err := w.Write(b.Bytes())
	return err
}
