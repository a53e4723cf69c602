package main

import (
	"context"
	"io"
	"log"
	"os"
)

func render_main(p *params_render) {
	config, err := config_load_file(p.config_path)
	if err != nil {
		log.Fatal(err)
	}
	gc, err := config.parse_graph()
	if err != nil {
		log.Fatal(err)
	}
	sc, err := config.parse_serve()
	if err != nil {
		log.Fatal(err)
	}

	format := p.format
	if format == "" {
		format = sc.graph_format
		if p.chart {
			format = sc.chart_format
		}
	}

	ctx, cf := context.WithCancel(context.Background())
	defer cf()

	db, err := db_init(ctx, sc.db_driver, sc.path_db)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Println("warning: error when closing database: ", err)
		}
	}()
	if err := db_migrate(ctx, db, sc.db_driver); err != nil {
		log.Fatal("cannot proceed with render: ", err)
	}

	ctl := new_graph_controller(gc, db_source_start(ctx, db, sc.db_driver))
	ctl.set_r(p.r)
	if err := ctl.reload(ctx); err != nil {
		log.Fatal(err)
	}

	var w io.Writer = os.Stdout
	if p.out != DEFAULT_OUT {
		f, err := os.Create(p.out)
		if err != nil {
			log.Fatal("cannot create output file: ", err)
		}
		defer func() {
			if err := f.Close(); err != nil {
				log.Println("warning: error when closing output: ", err)
			}
		}()
		w = f
	}

	if p.chart {
		err = chart_generate(gc, p.r, ctl.state.samples, format, sc.chart_width, sc.chart_height, w)
	} else {
		err = ctl.render_to(format, w)
	}
	if err != nil {
		log.Fatal("rendering failed: ", err)
	}
}
