package main

import (
	"errors"
	"fmt"
	"math"
	"testing"
)

func TestToDrawing(t *testing.T) {
	gc := graph_config_default()
	table := []struct {
		x, y float64
		want drawing_point
	}{
		{0, 0, drawing_point{5, 5}},
		{1, 1, drawing_point{6, 4}},
		{-2.5, 3, drawing_point{2.5, 2}},
		{4, -4, drawing_point{9, 9}},
	}
	for n, entry := range table {
		t.Run(fmt.Sprintf("%d_%g_%g", n+1, entry.x, entry.y), func(t *testing.T) {
			got, err := gc.to_drawing(entry.x, entry.y)
			if err != nil {
				t.Fatal(err)
			}
			assertf(t, got == entry.want, "wanted %v, got %v", entry.want, got)
		})
	}
}

func TestFromDrawing(t *testing.T) {
	gc := graph_config_default()
	table := []struct {
		px, py float64
		x, y   float64
	}{
		{125, 125, 0, 0},
		{150, 100, 1, 1},
		{0, 0, -5, 5},
		{250, 250, 5, -5},
		{137, 112, 0.48, 0.52},
		{1, 1, -4.96, 4.96},
		{125.0000001, 124.9999999, 0, 0},
		{133.3333333, 125, 0.333333, 0},
	}
	for n, entry := range table {
		t.Run(fmt.Sprintf("%d_%g_%g", n+1, entry.px, entry.py), func(t *testing.T) {
			x, y, err := gc.from_drawing(entry.px, entry.py)
			if err != nil {
				t.Fatal(err)
			}
			assertf(t, x == entry.x && y == entry.y,
				"wanted (%g, %g), got (%g, %g)", entry.x, entry.y, x, y)
		})
	}
}

func TestInvalidCoordinate(t *testing.T) {
	gc := graph_config_default()
	bad := []float64{math.NaN(), math.Inf(1), math.Inf(-1)}
	for _, v := range bad {
		_, err := gc.to_drawing(v, 0)
		assert(t, errors.Is(err, ErrInvalidCoordinate), "to_drawing x:", v, err)
		_, err = gc.to_drawing(0, v)
		assert(t, errors.Is(err, ErrInvalidCoordinate), "to_drawing y:", v, err)
		_, _, err = gc.to_pixel(v, v)
		assert(t, errors.Is(err, ErrInvalidCoordinate), "to_pixel:", v, err)
		_, _, err = gc.from_drawing(v, 1)
		assert(t, errors.Is(err, ErrInvalidCoordinate), "from_drawing:", v, err)
	}
}

func TestRoundTrip(t *testing.T) {
	gc := graph_config_default()
	for x := -5.0; x <= 5.0; x += 0.37 {
		for y := -5.0; y <= 5.0; y += 0.41 {
			px, py, err := gc.to_pixel(x, y)
			if err != nil {
				t.Fatal(err)
			}
			gx, gy, err := gc.from_drawing(px, py)
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(gx-x) > 1e-6 || math.Abs(gy-y) > 1e-6 {
				t.Errorf("(%g, %g) came back as (%g, %g)", x, y, gx, gy)
			}
		}
	}
}

func TestRoundFixed(t *testing.T) {
	assert(t, round_fixed(0.1234565, 6) == 0.123457 || round_fixed(0.1234565, 6) == 0.123456,
		"unexpected rounding", round_fixed(0.1234565, 6))
	assert(t, round_fixed(-4.9999999, 6) == -5, "unexpected rounding", round_fixed(-4.9999999, 6))
	assert(t, round_fixed(2, 0) == 2, "unexpected rounding", round_fixed(2, 0))
}
