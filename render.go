package main

import (
	"log"
)

// draw_region fills the disc, cuts it down to its quadrant and only then
// fills the rectangle and the triangle so the cuts cannot touch them.
func draw_region(s surface, reg *region_shape) {
	if reg == nil {
		return
	}
	s.fill_circle(reg.disc_center.x, reg.disc_center.y, reg.disc_radius, COLOR_REGION)
	for _, c := range reg.disc_clears {
		s.clear_rect(c.x, c.y, c.w, c.h)
	}
	s.fill_rect(reg.rect.x, reg.rect.y, reg.rect.w, reg.rect.h, COLOR_REGION)
	s.fill_polygon(reg.triangle[:], COLOR_REGION)
}

func draw_axes(s surface, gc *graph_config) {
	// x
	s.stroke_line(gc.graph_left, gc.center_y, gc.graph_right, gc.center_y, gc.line_width, COLOR_AXIS)
	for i := 0; i <= gc.cell_count; i++ {
		x := float64(i) * gc.cell_size
		s.stroke_line(x, gc.center_y-gc.padding, x, gc.center_y+gc.padding, gc.line_width, COLOR_AXIS)
	}

	// y
	s.stroke_line(gc.center_x, gc.graph_top, gc.center_x, gc.graph_bottom, gc.line_width, COLOR_AXIS)
	for i := 0; i <= gc.cell_count; i++ {
		y := float64(i) * gc.cell_size
		s.stroke_line(gc.center_x-gc.padding, y, gc.center_x+gc.padding, y, gc.line_width, COLOR_AXIS)
	}
}

// draw_r_labels marks -R and R on both axes. The offsets keep the text
// clear of the axis strokes.
func draw_r_labels(s surface, gc *graph_config, r float64) {
	cx, cy, size := gc.center_x, gc.center_y, gc.font_size
	s.fill_text("-R", cx-r-0.25, cy+0.7, size, COLOR_AXIS)
	s.fill_text("R", cx+r-0.15, cy+0.7, size, COLOR_AXIS)

	s.fill_text("R", cx+0.25, cy-r+0.15, size, COLOR_AXIS)
	s.fill_text("-R", cx+0.25, cy+r+0.15, size, COLOR_AXIS)
}

// draw_samples draws one dot per sample taken for exactly R and returns
// how many were drawn. The colour comes from the stored flag; nothing here
// decides whether a point is inside the region.
func draw_samples(s surface, gc *graph_config, r float64, samples []sample) int {
	drawn := 0
	for _, smp := range samples {
		if smp.r != r {
			continue
		}
		p, err := gc.to_drawing(smp.x, smp.y)
		if err != nil {
			log.Printf("draw_samples: skipping sample %d: %v\n", smp.id, err)
			continue
		}
		c := COLOR_MISS
		if smp.inside {
			c = COLOR_INSIDE
		}
		s.fill_circle(p.x, p.y, gc.dot_radius, c)
		drawn++
	}
	return drawn
}

// redraw clears the whole drawing and, when R is valid, draws the region,
// the axes, the labels and the samples for R, in that order.
func redraw(s surface, gc *graph_config, state *view_state) int {
	s.clear_rect(gc.graph_left, gc.graph_top, gc.graph_right, gc.graph_bottom)
	reg := region_for(gc, state.r)
	if reg == nil {
		return 0
	}
	draw_region(s, reg)
	draw_axes(s, gc)
	draw_r_labels(s, gc, state.r)
	return draw_samples(s, gc, state.r, state.samples)
}
