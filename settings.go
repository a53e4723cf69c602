package main

import (
	"image/color"
	"regexp"
	"time"
)

const (
	FLAG_CONFIG_PATH    = "config-path"
	DEFAULT_CONFIG_PATH = ""
	HELP_CONFIG_PATH    = "Filepath to areagraph configuration file, empty for built-in defaults"

	FLAG_R    = "r"
	DEFAULT_R = 1.0
	HELP_R    = "Scale parameter R to render"

	FLAG_FORMAT = "format"
	HELP_FORMAT = "Output format: png or svg, or anything gonum/plot supports with -chart"

	FLAG_OUT    = "out"
	DEFAULT_OUT = "-"
	HELP_OUT    = "Output file, - for stdout"

	FLAG_CHART = "chart"
	HELP_CHART = "Render the overview chart instead of the canvas graph"

	DEFAULT_DB_PATH       = "/var/areagraph/db/areagraph.sqlite"
	DEFAULT_DB_DRIVER     = "sqlite"
	DEFAULT_ADDR          = "localhost:15515"
	DEFAULT_TEMPLATE_PATH = ""
)

const (
	DEFAULT_CENTER_X     = 5.0
	DEFAULT_CENTER_Y     = 5.0
	DEFAULT_SCALE        = 25.0
	DEFAULT_PADDING      = 0.1
	DEFAULT_CELL_SIZE    = 1.0
	DEFAULT_CELL_COUNT   = 10
	DEFAULT_LINE_WIDTH   = 0.05
	DEFAULT_R_MIN        = 1.0
	DEFAULT_R_MAX        = 4.0
	DEFAULT_Y_MIN        = -3.0
	DEFAULT_Y_MAX        = 3.0
	DEFAULT_GRAPH_LEFT   = 0.0
	DEFAULT_GRAPH_TOP    = 0.0
	DEFAULT_GRAPH_RIGHT  = 10.0
	DEFAULT_GRAPH_BOTTOM = 10.0
	DEFAULT_DOT_RADIUS   = 0.1
	DEFAULT_FONT_SIZE    = 0.6
	DEFAULT_PRECISION    = 6
)

const (
	DEFAULT_GRAPH_FORMAT    = "png"
	DEFAULT_CHART_FORMAT    = "svg"
	DEFAULT_CHART_WIDTH     = 400
	DEFAULT_CHART_HEIGHT    = 400
	DEFAULT_CACHE_TTL       = 30 * time.Second
	DEFAULT_RETENTION_TIME  = time.Duration(0)
	DEFAULT_PRUNE_PERIOD    = 15 * time.Minute
	DEFAULT_DB_CONNECT_TRY  = 5
	DEFAULT_DB_CONNECT_WAIT = 1 * time.Second
	DEFAULT_CHART_ARC_STEPS = 32
)

var (
	COLOR_REGION = color.NRGBA{138, 43, 226, 166}
	COLOR_AXIS   = color.NRGBA{0, 0, 0, 255}
	COLOR_INSIDE = color.NRGBA{0, 140, 0, 204}
	COLOR_MISS   = color.NRGBA{140, 0, 0, 204}
	COLOR_BG     = color.NRGBA{255, 255, 255, 255}

	TIMESTAMP_FORMAT = "2006-01-02 15:04:05"
)

var (
	AVAILABLE_X = []string{"4", "3", "2", "1", "0", "-1", "-2", "-3", "-4"}
	AVAILABLE_R = []string{"4", "3", "2", "1"}

	RE_Y = regexp.MustCompile(`^-?\d*([.,]{1}\d*)?$`)
)
