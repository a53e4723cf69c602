package main

import (
	"errors"
	"math"
	"strconv"
)

var ErrInvalidCoordinate = errors.New("invalid coordinate")

func is_finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// round_fixed rounds v the way a decimal string with the given amount of
// fractional digits would.
func round_fixed(v float64, digits int) float64 {
	s := strconv.FormatFloat(v, 'f', digits, 64)
	ret, err := strconv.ParseFloat(s, 64)
	if err != nil {
		panic("This is a bug: cannot parse formatted float " + s)
	}
	return ret
}

// to_drawing maps data space to drawing units. Drawing y grows downward.
func (gc *graph_config) to_drawing(x, y float64) (drawing_point, error) {
	if !is_finite(x, y) {
		return drawing_point{}, ErrInvalidCoordinate
	}
	return drawing_point{x: gc.center_x + x, y: gc.center_y - y}, nil
}

// to_pixel is to_drawing followed by the surface scale.
func (gc *graph_config) to_pixel(x, y float64) (float64, float64, error) {
	p, err := gc.to_drawing(x, y)
	if err != nil {
		return 0, 0, err
	}
	return p.x * gc.scale, p.y * gc.scale, nil
}

// from_drawing maps a pixel offset on the rendered graph back to data
// space, rounded to the configured precision.
func (gc *graph_config) from_drawing(px, py float64) (float64, float64, error) {
	if !is_finite(px, py) {
		return 0, 0, ErrInvalidCoordinate
	}
	x := (px - gc.center_x*gc.scale) / gc.scale
	y := -(py - gc.center_y*gc.scale) / gc.scale
	return round_fixed(x, gc.precision), round_fixed(y, gc.precision), nil
}

// Pixel dimensions of the full drawing bounds.
func (gc *graph_config) width_px() int {
	return int(math.Ceil(gc.graph_right * gc.scale))
}

func (gc *graph_config) height_px() int {
	return int(math.Ceil(gc.graph_bottom * gc.scale))
}

func (gc *graph_config) bounds() drawing_rect {
	return drawing_rect{
		x: gc.graph_left,
		y: gc.graph_top,
		w: gc.graph_right - gc.graph_left,
		h: gc.graph_bottom - gc.graph_top,
	}
}

// normalized flips negative widths and heights so that (x, y) is the top
// left corner.
func (r drawing_rect) normalized() drawing_rect {
	if r.w < 0 {
		r.x += r.w
		r.w = -r.w
	}
	if r.h < 0 {
		r.y += r.h
		r.h = -r.h
	}
	return r
}

func (r drawing_rect) contains(o drawing_rect) bool {
	r = r.normalized()
	o = o.normalized()
	return o.x >= r.x && o.y >= r.y && o.x+o.w <= r.x+r.w && o.y+o.h <= r.y+r.h
}
