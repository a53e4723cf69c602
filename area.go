package main

// area_check classifies a point against the region for R. It is the
// classifier the sample store runs when accepting a submission; the
// renderers never call it and only display the stored flag.
//
// The shapes match what region_for leaves on the canvas: a quarter disc
// of radius R/2 in the first quadrant, an R x R/2 rectangle in the third
// and a right triangle with legs R and R/2 in the fourth.
func area_check(x, y, r float64) bool {
	if !is_finite(x, y, r) || r <= 0 {
		return false
	}
	switch {
	case x >= 0 && y >= 0:
		return x*x+y*y <= (r/2)*(r/2)
	case x <= 0 && y <= 0:
		return x >= -r && y >= -r/2
	case x >= 0 && y <= 0:
		return y >= x/2-r/2
	}
	return false
}
