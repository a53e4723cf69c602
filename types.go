package main

import "time"

type config_paths struct {
	config_path string
}

type params_serve struct {
	config_paths
}

type params_render struct {
	config_paths
	r      float64
	format string
	out    string
	chart  bool
}

// sample is one classified point. The inside flag is set by whoever
// stored the sample and is only ever read by the renderers.
type sample struct {
	id      int64
	x, y, r float64
	inside  bool
	created time.Time
}

// view_state is everything a redraw depends on besides the graph
// configuration.
type view_state struct {
	r       float64
	samples []sample
}

type drawing_point struct {
	x, y float64
}

type drawing_rect struct {
	x, y, w, h float64
}

type graph_config struct {
	center_x, center_y float64
	scale              float64
	padding            float64
	cell_size          float64
	cell_count         int
	line_width         float64
	r_min, r_max       float64
	y_min, y_max       float64

	graph_left, graph_top, graph_right, graph_bottom float64

	dot_radius float64
	font_size  float64
	precision  int
}

type config_serve struct {
	path_db   string
	db_driver string

	listen_addr     string
	graph_format    string
	cache_ttl       time.Duration
	retention_time  time.Duration
	prune_db_period time.Duration
	path_template   string

	chart_width  int
	chart_height int
	chart_format string
}

const (
	DB_TASK_PRUNE = iota
	DB_TASK_INSERT
)

type db_task struct {
	kind int

	prune_retention_period time.Duration

	insert_sample *sample
	reply         chan error
}
