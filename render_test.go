package main

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"
	"testing"
)

type draw_op struct {
	kind string
	args []float64
	text string
	c    color.Color
}

// recording_surface remembers every call in order.
type recording_surface struct {
	ops []draw_op
}

func (s *recording_surface) add(kind string, c color.Color, args ...float64) {
	s.ops = append(s.ops, draw_op{kind: kind, args: args, c: c})
}

func (s *recording_surface) clear_rect(x, y, w, h float64) {
	s.add("clear_rect", nil, x, y, w, h)
}

func (s *recording_surface) fill_circle(cx, cy, radius float64, c color.Color) {
	s.add("fill_circle", c, cx, cy, radius)
}

func (s *recording_surface) fill_rect(x, y, w, h float64, c color.Color) {
	s.add("fill_rect", c, x, y, w, h)
}

func (s *recording_surface) fill_polygon(pts []drawing_point, c color.Color) {
	args := []float64{}
	for _, p := range pts {
		args = append(args, p.x, p.y)
	}
	s.add("fill_polygon", c, args...)
}

func (s *recording_surface) stroke_line(x0, y0, x1, y1, width float64, c color.Color) {
	s.add("stroke_line", c, x0, y0, x1, y1, width)
}

func (s *recording_surface) fill_text(text string, x, y, size float64, c color.Color) {
	s.ops = append(s.ops, draw_op{kind: "fill_text", args: []float64{x, y, size}, text: text, c: c})
}

func (s *recording_surface) encode(w io.Writer) error {
	for _, op := range s.ops {
		if _, err := fmt.Fprintf(w, "%s %s %v\n", op.kind, op.text, op.args); err != nil {
			return err
		}
	}
	return nil
}

func (s *recording_surface) kinds() []string {
	ret := []string{}
	for _, op := range s.ops {
		ret = append(ret, op.kind)
	}
	return ret
}

func (s *recording_surface) count(kind string) int {
	n := 0
	for _, op := range s.ops {
		if op.kind == kind {
			n++
		}
	}
	return n
}

func args_equal(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > 1e-9 {
			return false
		}
	}
	return true
}

func TestRedrawOrder(t *testing.T) {
	gc := graph_config_default()
	s := &recording_surface{}
	drawn := redraw(s, gc, &view_state{r: 2})
	assert(t, drawn == 0, "no samples should be drawn", drawn)
	// clear, region, 2 axis lines with 11 ticks each, 4 labels
	assert(t, len(s.ops) == 35, "unexpected amount of draw ops", len(s.ops))

	want := []struct {
		kind string
		args []float64
	}{
		{"clear_rect", []float64{0, 0, 10, 10}},
		{"fill_circle", []float64{5, 5, 1}},
		{"clear_rect", []float64{5, 5, -2, -2}},
		{"clear_rect", []float64{5, 5, 2, 2}},
		{"clear_rect", []float64{5, 5, -2, 2}},
		{"fill_rect", []float64{3, 5, 2, 1}},
		{"fill_polygon", []float64{5, 5, 7, 5, 5, 6}},
		{"stroke_line", []float64{0, 5, 10, 5, 0.05}},
		{"stroke_line", []float64{0, 4.9, 0, 5.1, 0.05}},
	}
	for n, w := range want {
		op := s.ops[n]
		assertf(t, op.kind == w.kind && args_equal(op.args, w.args),
			"op %d: wanted %s %v, got %s %v", n, w.kind, w.args, op.kind, op.args)
	}
	assert(t, s.ops[1].c == COLOR_REGION, "region should use the region colour")

	// y axis right after the 11 x ticks
	op := s.ops[7+12]
	assertf(t, op.kind == "stroke_line" && args_equal(op.args, []float64{5, 0, 5, 10, 0.05}),
		"unexpected y axis %s %v", op.kind, op.args)

	labels := s.ops[31:]
	want_labels := []struct {
		text string
		x, y float64
	}{
		{"-R", 2.75, 5.7},
		{"R", 6.85, 5.7},
		{"R", 5.25, 3.15},
		{"-R", 5.25, 7.15},
	}
	for n, w := range want_labels {
		l := labels[n]
		assertf(t, l.kind == "fill_text" && l.text == w.text && args_equal(l.args[:2], []float64{w.x, w.y}),
			"label %d: wanted %q at (%g, %g), got %s %q %v", n, w.text, w.x, w.y, l.kind, l.text, l.args)
	}
}

func TestRedrawUndefinedR(t *testing.T) {
	gc := graph_config_default()
	for _, r := range []float64{5, 0.5, math.NaN()} {
		t.Run(fmt.Sprint(r), func(t *testing.T) {
			s := &recording_surface{}
			state := &view_state{
				r:       r,
				samples: []sample{{x: 1, y: 1, r: r, inside: true}},
			}
			drawn := redraw(s, gc, state)
			assert(t, drawn == 0, "nothing should be drawn", drawn)
			assertf(t, strings.Join(s.kinds(), ",") == "clear_rect",
				"wanted a single clear, got %v", s.kinds())
		})
	}
}

func TestRedrawSamples(t *testing.T) {
	gc := graph_config_default()
	state := &view_state{
		r: 1,
		samples: []sample{
			{id: 1, x: 1, y: 1, r: 1, inside: true},
			{id: 2, x: -1, y: 2, r: 1, inside: false},
			{id: 3, x: 0, y: 0, r: 2, inside: true},
			{id: 4, x: math.NaN(), y: 0, r: 1, inside: true},
		},
	}

	s := &recording_surface{}
	drawn := redraw(s, gc, state)
	assert(t, drawn == 2, "unexpected amount of dots", drawn)
	dots := s.ops[len(s.ops)-2:]
	assertf(t, dots[0].kind == "fill_circle" && args_equal(dots[0].args, []float64{6, 4, 0.1}),
		"unexpected first dot %s %v", dots[0].kind, dots[0].args)
	assert(t, dots[0].c == COLOR_INSIDE, "inside sample should use the inside colour")
	assertf(t, args_equal(dots[1].args, []float64{4, 3, 0.1}),
		"unexpected second dot %v", dots[1].args)
	assert(t, dots[1].c == COLOR_MISS, "missed sample should use the miss colour")

	state.r = 2
	s = &recording_surface{}
	drawn = redraw(s, gc, state)
	assert(t, drawn == 1, "only the R=2 sample should be drawn", drawn)
	last := s.ops[len(s.ops)-1]
	assertf(t, last.kind == "fill_circle" && args_equal(last.args, []float64{5, 5, 0.1}),
		"unexpected dot %s %v", last.kind, last.args)
}

func TestRedrawIdempotent(t *testing.T) {
	gc := graph_config_default()
	state := &view_state{r: 3, samples: []sample{{x: 0.5, y: -0.5, r: 3, inside: true}}}
	s := &recording_surface{}
	redraw(s, gc, state)
	first := len(s.ops)
	redraw(s, gc, state)
	assert(t, len(s.ops) == 2*first, "second redraw should repeat the first", first, len(s.ops))
	assert(t, s.ops[first].kind == "clear_rect", "second redraw should start with a clear")
	assert(t, s.count("fill_circle") == 4, "unexpected amount of circles", s.count("fill_circle"))
}
