package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/susji/tinyini"
)

type config_pair struct {
	value  string
	lineno int
}

type config struct {
	sections map[string]map[string][]config_pair
}

func config_load(r io.Reader) (*config, error) {
	sections, errs := tinyini.Parse(r)
	if len(errs) != 0 {
		log.Println("errors when reading configuration file")
		for n, err := range errs {
			log.Printf("[%d] %v\n", n+1, err)
		}
		return nil, errors.New("invalid configuration file")
	}
	c := &config{sections: map[string]map[string][]config_pair{}}
	for section, keys := range sections {
		c.sections[section] = map[string][]config_pair{}
		for k, pairs := range keys {
			for _, pair := range pairs {
				c.sections[section][k] = append(
					c.sections[section][k],
					config_pair{value: pair.Value, lineno: int(pair.Lineno)})
			}
		}
	}
	return c, nil
}

func config_load_file(filepath string) (*config, error) {
	if filepath == "" {
		log.Println("no configuration file given, using built-in defaults")
		return &config{sections: map[string]map[string][]config_pair{}}, nil
	}
	log.Println("attempting to read settings from ", filepath)
	f, err := os.Open(filepath)
	if err != nil {
		log.Println("cannot open configuration file for reading: ", err)
		return nil, err
	}
	defer f.Close()
	c, err := config_load(f)
	if err != nil {
		return nil, fmt.Errorf("unable to handle configuration file %q: %w", filepath, err)
	}
	return c, nil
}

func (c *config) parse_common() (string, string, error) {
	path_db := DEFAULT_DB_PATH
	db_driver := DEFAULT_DB_DRIVER

	in_err := false

	for k, pairs := range c.sections[""] {
		for _, pair := range pairs {
			var err error
			switch k {
			case "path_db":
				path_db = pair.value
			case "db_driver":
				db_driver = pair.value
				if !is_db_driver_valid(db_driver) {
					err = fmt.Errorf("unsupported driver %q", db_driver)
				}
			default:
				err = fmt.Errorf("%d: unrecognized config item: %s",
					pair.lineno, k)
			}
			if err != nil {
				log.Printf("%s: invalid value: %v", k, err)
				in_err = true
			}
		}
	}
	if in_err {
		return "", "", errors.New("errors in common section")
	}
	if path_db == "" {
		return "", "", errors.New("no database path in common section")
	}
	return path_db, db_driver, nil
}

func graph_config_default() *graph_config {
	return &graph_config{
		center_x:     DEFAULT_CENTER_X,
		center_y:     DEFAULT_CENTER_Y,
		scale:        DEFAULT_SCALE,
		padding:      DEFAULT_PADDING,
		cell_size:    DEFAULT_CELL_SIZE,
		cell_count:   DEFAULT_CELL_COUNT,
		line_width:   DEFAULT_LINE_WIDTH,
		r_min:        DEFAULT_R_MIN,
		r_max:        DEFAULT_R_MAX,
		y_min:        DEFAULT_Y_MIN,
		y_max:        DEFAULT_Y_MAX,
		graph_left:   DEFAULT_GRAPH_LEFT,
		graph_top:    DEFAULT_GRAPH_TOP,
		graph_right:  DEFAULT_GRAPH_RIGHT,
		graph_bottom: DEFAULT_GRAPH_BOTTOM,
		dot_radius:   DEFAULT_DOT_RADIUS,
		font_size:    DEFAULT_FONT_SIZE,
		precision:    DEFAULT_PRECISION,
	}
}

func (gc *graph_config) validate() error {
	switch {
	case gc.scale <= 0:
		return errors.New("scale must be positive")
	case gc.cell_size <= 0:
		return errors.New("cell_size must be positive")
	case gc.cell_count < 0:
		return errors.New("cell_count must not be negative")
	case gc.r_min > gc.r_max:
		return errors.New("r_min is greater than r_max")
	case gc.y_min >= gc.y_max:
		return errors.New("y_min must be less than y_max")
	case gc.graph_left >= gc.graph_right:
		return errors.New("graph_left must be less than graph_right")
	case gc.graph_top >= gc.graph_bottom:
		return errors.New("graph_top must be less than graph_bottom")
	case gc.precision < 0:
		return errors.New("precision must not be negative")
	}
	return nil
}

func (c *config) parse_graph() (*graph_config, error) {
	ret := graph_config_default()
	floats := map[string]*float64{
		"center_x":     &ret.center_x,
		"center_y":     &ret.center_y,
		"scale":        &ret.scale,
		"padding":      &ret.padding,
		"cell_size":    &ret.cell_size,
		"line_width":   &ret.line_width,
		"r_min":        &ret.r_min,
		"r_max":        &ret.r_max,
		"y_min":        &ret.y_min,
		"y_max":        &ret.y_max,
		"graph_left":   &ret.graph_left,
		"graph_top":    &ret.graph_top,
		"graph_right":  &ret.graph_right,
		"graph_bottom": &ret.graph_bottom,
		"dot_radius":   &ret.dot_radius,
		"font_size":    &ret.font_size,
	}

	in_err := false

	for k, pairs := range c.sections["graph"] {
		for _, pair := range pairs {
			var err error
			if dst, ok := floats[k]; ok {
				*dst, err = strconv.ParseFloat(pair.value, 64)
			} else {
				switch k {
				case "cell_count":
					ret.cell_count, err = strconv.Atoi(pair.value)
				case "precision":
					ret.precision, err = strconv.Atoi(pair.value)
				default:
					err = fmt.Errorf(
						"%d: unrecognized config item: %s",
						pair.lineno, k)
				}
			}
			if err != nil {
				log.Printf("%s: invalid value: %v", k, err)
				in_err = true
			}
		}
	}
	if in_err {
		return nil, errors.New("parsing graph config failed")
	}
	if err := ret.validate(); err != nil {
		return nil, fmt.Errorf("invalid graph config: %w", err)
	}
	return ret, nil
}

func (c *config) parse_serve() (*config_serve, error) {
	ret := &config_serve{
		path_db:   DEFAULT_DB_PATH,
		db_driver: DEFAULT_DB_DRIVER,

		listen_addr:     DEFAULT_ADDR,
		graph_format:    DEFAULT_GRAPH_FORMAT,
		cache_ttl:       DEFAULT_CACHE_TTL,
		retention_time:  DEFAULT_RETENTION_TIME,
		prune_db_period: DEFAULT_PRUNE_PERIOD,
		path_template:   DEFAULT_TEMPLATE_PATH,

		chart_width:  DEFAULT_CHART_WIDTH,
		chart_height: DEFAULT_CHART_HEIGHT,
		chart_format: DEFAULT_CHART_FORMAT,
	}

	in_err := false

	if path_db, db_driver, cerr := c.parse_common(); cerr == nil {
		ret.path_db = path_db
		ret.db_driver = db_driver
	} else {
		in_err = true
		log.Println(cerr)
	}

	for k, pairs := range c.sections["serve"] {
		for _, pair := range pairs {
			var err error
			switch k {
			case "listen_addr":
				ret.listen_addr = pair.value
			case "graph_format":
				ret.graph_format = pair.value
				if _, ok := SURFACE_MIMETYPES[ret.graph_format]; !ok {
					err = ErrUnknownFormat
				}
			case "cache_ttl":
				ret.cache_ttl, err = time.ParseDuration(pair.value)
			case "retention_time":
				ret.retention_time, err = time.ParseDuration(pair.value)
			case "prune_db_period":
				ret.prune_db_period, err = time.ParseDuration(pair.value)
				if err == nil && ret.prune_db_period.Seconds() < 1 {
					err = errors.New("must be at least 1 second")
				}
			case "path_template":
				ret.path_template = pair.value
			case "chart_width":
				ret.chart_width, err = strconv.Atoi(pair.value)
			case "chart_height":
				ret.chart_height, err = strconv.Atoi(pair.value)
			case "chart_format":
				ret.chart_format = pair.value
			default:
				err = fmt.Errorf(
					"%d: unrecognized config item: %s",
					pair.lineno, k)
			}
			if err != nil {
				log.Printf("%s: invalid value: %v", k, err)
				in_err = true
			}
		}
	}
	if in_err {
		return nil, errors.New("parsing serve config failed")
	}

	return ret, nil
}
