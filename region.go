package main

// region_shape holds the three primitives of the target region for one R,
// in drawing units. The disc is filled whole and then cut down to a single
// quadrant by clearing disc_clears, in order.
type region_shape struct {
	r float64

	disc_center drawing_point
	disc_radius float64
	disc_clears [3]drawing_rect

	rect     drawing_rect
	triangle [3]drawing_point
}

func (gc *graph_config) r_valid(r float64) bool {
	return r >= gc.r_min && r <= gc.r_max
}

// region_for returns nil when R is outside [r_min, r_max]; the region is
// undefined there and nothing but the clear gets drawn.
func region_for(gc *graph_config, r float64) *region_shape {
	if !gc.r_valid(r) {
		return nil
	}
	cx, cy := gc.center_x, gc.center_y
	return &region_shape{
		r:           r,
		disc_center: drawing_point{x: cx, y: cy},
		disc_radius: r / 2,
		disc_clears: [3]drawing_rect{
			{x: cx, y: cy, w: -r, h: -r},
			{x: cx, y: cy, w: r, h: r},
			{x: cx, y: cy, w: -r, h: r},
		},
		rect: drawing_rect{x: cx - r, y: cy, w: r, h: r * 0.5},
		triangle: [3]drawing_point{
			{x: cx, y: cy},
			{x: cx + r, y: cy},
			{x: cx, y: cy + r/2},
		},
	}
}
