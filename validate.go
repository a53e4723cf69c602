package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidForm = errors.New("invalid form data")

func is_available(v string, available []string) bool {
	for _, a := range available {
		if a == v {
			return true
		}
	}
	return false
}

// form_validate checks a manual submission the way the entry form
// presents it: x and R come from fixed lists, y is free text accepting
// either decimal separator and must lie strictly between y_min and y_max.
func form_validate(gc *graph_config, x_raw, y_raw, r_raw string) (float64, float64, float64, error) {
	x_raw = strings.TrimSpace(x_raw)
	y_raw = strings.Replace(strings.TrimSpace(y_raw), ",", ".", 1)
	r_raw = strings.TrimSpace(r_raw)

	if !is_available(x_raw, AVAILABLE_X) {
		return 0, 0, 0, fmt.Errorf("%w: x %q not offered", ErrInvalidForm, x_raw)
	}
	if !is_available(r_raw, AVAILABLE_R) {
		return 0, 0, 0, fmt.Errorf("%w: r %q not offered", ErrInvalidForm, r_raw)
	}
	if !RE_Y.MatchString(y_raw) {
		return 0, 0, 0, fmt.Errorf("%w: y %q is not a number", ErrInvalidForm, y_raw)
	}
	y, err := strconv.ParseFloat(y_raw, 64)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%w: y %q: %v", ErrInvalidForm, y_raw, err)
	}
	if !(y > gc.y_min && y < gc.y_max) {
		return 0, 0, 0, fmt.Errorf("%w: y must be within (%g, %g)", ErrInvalidForm, gc.y_min, gc.y_max)
	}
	x, _ := strconv.ParseFloat(x_raw, 64)
	r, _ := strconv.ParseFloat(r_raw, 64)
	if !gc.r_valid(r) {
		return 0, 0, 0, fmt.Errorf("%w: r must be within [%g, %g]", ErrInvalidForm, gc.r_min, gc.r_max)
	}
	return x, y, r, nil
}
