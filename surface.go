package main

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"sort"
)

var ErrUnknownFormat = errors.New("unknown graph format")

// surface is an immediate-mode drawing target addressed in drawing units.
// Implementations apply graph_config.scale themselves.
type surface interface {
	// clear_rect erases everything drawn so far inside the rectangle.
	// Negative widths and heights extend left and up.
	clear_rect(x, y, w, h float64)
	fill_circle(cx, cy, radius float64, c color.Color)
	fill_rect(x, y, w, h float64, c color.Color)
	fill_polygon(pts []drawing_point, c color.Color)
	stroke_line(x0, y0, x1, y1, width float64, c color.Color)
	// fill_text draws text with its baseline starting at (x, y).
	fill_text(text string, x, y, size float64, c color.Color)
	encode(w io.Writer) error
}

type surface_factory func(gc *graph_config) (surface, error)

var surface_factories = map[string]surface_factory{
	"png": new_raster_surface,
	"svg": new_svg_surface,
}

var SURFACE_MIMETYPES = map[string]string{
	"png": "image/png",
	"svg": "image/svg+xml",
}

func surface_new(format string, gc *graph_config) (surface, error) {
	factory, ok := surface_factories[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return factory(gc)
}

func surface_formats() []string {
	ret := []string{}
	for k := range surface_factories {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}
