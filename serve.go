package main

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"golang.org/x/sync/errgroup"
)

//go:embed index.html.tmpl
var DEFAULT_TEMPLATE string

type render_cache = ttlcache.Cache[string, []byte]

type sample_view struct {
	ID      int64   `json:"id"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	R       float64 `json:"r"`
	Inside  bool    `json:"inside"`
	Created string  `json:"created"`
}

func sample_views(samples []sample) []sample_view {
	ret := make([]sample_view, 0, len(samples))
	for _, s := range samples {
		ret = append(ret, sample_view{
			ID:      s.id,
			X:       s.x,
			Y:       s.y,
			R:       s.r,
			Inside:  s.inside,
			Created: s.created.Format(TIMESTAMP_FORMAT),
		})
	}
	return ret
}

type index_data struct {
	R          string
	Rs, Xs     []string
	YMin, YMax float64
	Width      int
	Height     int
	GraphURL   string
	ChartURL   string
	Samples    []sample_view
	Error      string
	Now        string
}

func template_load(path_template string) (*template.Template, error) {
	if path_template == "" {
		return template.New("index").Parse(DEFAULT_TEMPLATE)
	}
	log.Println("loading index template from ", path_template)
	b, err := os.ReadFile(path_template)
	if err != nil {
		return nil, err
	}
	return template.New("index").Parse(string(b))
}

func http_error(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	fmt.Fprintln(w, msg)
}

func query_r(v url.Values) (float64, string, error) {
	raw := v.Get("r")
	if raw == "" {
		raw = strconv.FormatFloat(DEFAULT_R, 'g', -1, 64)
	}
	r, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, "", err
	}
	return r, raw, nil
}

func cache_key(kind, format string, r float64, samples []sample) string {
	var last int64
	if len(samples) > 0 {
		last = samples[len(samples)-1].id
	}
	return fmt.Sprintf("%s|%s|%g|%d|%d", kind, format, r, len(samples), last)
}

func write_image(w http.ResponseWriter, mimetype string, b []byte) {
	w.Header().Set("Content-Type", mimetype)
	w.Header().Set("Content-Length", strconv.Itoa(len(b)))
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

func redirect_index(w http.ResponseWriter, req *http.Request, r string, err error) {
	v := url.Values{}
	v.Set("r", r)
	if err != nil {
		v.Set("error", err.Error())
	}
	http.Redirect(w, req, "/?"+v.Encode(), http.StatusSeeOther)
}

func serve_index_gen(gc *graph_config, source sample_source, tmpl *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path != "/" {
			http.NotFound(w, req)
			return
		}
		v := req.URL.Query()
		_, r_raw, err := query_r(v)
		if err != nil {
			log.Println("serve_index: bad r: ", err)
			http_error(w, http.StatusBadRequest, "bad r")
			return
		}
		samples, err := source.retrieve_samples(req.Context())
		if err != nil {
			log.Println("serve_index: cannot retrieve samples: ", err)
			http_error(w, http.StatusInternalServerError, "cannot retrieve samples")
			return
		}
		q := url.Values{}
		q.Set("r", r_raw)
		data := index_data{
			R:        r_raw,
			Rs:       AVAILABLE_R,
			Xs:       AVAILABLE_X,
			YMin:     gc.y_min,
			YMax:     gc.y_max,
			Width:    gc.width_px(),
			Height:   gc.height_px(),
			GraphURL: "/graph?" + q.Encode(),
			ChartURL: "/plot?" + q.Encode(),
			Samples:  sample_views(samples),
			Error:    v.Get("error"),
			Now:      time.Now().Format(TIMESTAMP_FORMAT),
		}
		b := bytes.Buffer{}
		if err := tmpl.Execute(&b, data); err != nil {
			log.Println("serve_index: template failed: ", err)
			http_error(w, http.StatusInternalServerError, "template failed")
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(b.Bytes())
	}
}

func serve_graph_gen(gc *graph_config, source sample_source, cache *render_cache, default_format string) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		v := req.URL.Query()
		r, _, err := query_r(v)
		if err != nil {
			log.Println("serve_graph: bad r: ", err)
			http_error(w, http.StatusBadRequest, "bad r")
			return
		}
		format := v.Get("format")
		if format == "" {
			format = default_format
		}
		mimetype, ok := SURFACE_MIMETYPES[format]
		if !ok {
			log.Println("serve_graph: unknown format: ", format)
			http_error(w, http.StatusBadRequest, "unknown format")
			return
		}

		ctl := new_graph_controller(gc, source)
		ctl.set_r(r)
		if err := ctl.reload(req.Context()); err != nil {
			log.Println("serve_graph: ", err)
			http_error(w, http.StatusInternalServerError, "cannot retrieve samples")
			return
		}

		key := cache_key("graph", format, r, ctl.state.samples)
		if item := cache.Get(key); item != nil {
			write_image(w, mimetype, item.Value())
			return
		}

		log.Printf("serve_graph: Drawing graph for R=%g as %s\n", r, format)
		b := bytes.Buffer{}
		if err := ctl.render_to(format, &b); err != nil {
			log.Println("serve_graph: rendering failed: ", err)
			http_error(w, http.StatusInternalServerError, "graph generation failed")
			return
		}
		cache.Set(key, b.Bytes(), ttlcache.DefaultTTL)
		write_image(w, mimetype, b.Bytes())
	}
}

func serve_plot_gen(gc *graph_config, sc *config_serve, source sample_source, cache *render_cache) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		v := req.URL.Query()
		r, _, err := query_r(v)
		if err != nil {
			log.Println("serve_plot: bad r: ", err)
			http_error(w, http.StatusBadRequest, "bad r")
			return
		}
		format := v.Get("format")
		if format == "" {
			format = sc.chart_format
		}
		mimetype, ok := CHART_MIMETYPES[format]
		if !ok {
			log.Println("serve_plot: unknown format: ", format)
			http_error(w, http.StatusBadRequest, "unknown format")
			return
		}
		samples, err := source.retrieve_samples(req.Context())
		if err != nil {
			log.Println("serve_plot: cannot retrieve samples: ", err)
			http_error(w, http.StatusInternalServerError, "cannot retrieve samples")
			return
		}

		key := cache_key("plot", format, r, samples)
		if item := cache.Get(key); item != nil {
			write_image(w, mimetype, item.Value())
			return
		}

		b := bytes.Buffer{}
		if err := chart_generate(gc, r, samples, format, sc.chart_width, sc.chart_height, &b); err != nil {
			log.Println("serve_plot: chart generation failed: ", err)
			http_error(w, http.StatusInternalServerError, "chart generation failed")
			return
		}
		cache.Set(key, b.Bytes(), ttlcache.DefaultTTL)
		write_image(w, mimetype, b.Bytes())
	}
}

func serve_submit_gen(gc *graph_config, source sample_source) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			http_error(w, http.StatusMethodNotAllowed, "POST only")
			return
		}
		if err := req.ParseForm(); err != nil {
			http_error(w, http.StatusBadRequest, "bad form")
			return
		}
		r_raw := req.PostForm.Get("r")
		x, y, r, err := form_validate(gc, req.PostForm.Get("x"), req.PostForm.Get("y"), r_raw)
		if err != nil {
			log.Println("serve_submit: ", err)
			redirect_index(w, req, r_raw, err)
			return
		}
		ctl := new_graph_controller(gc, source)
		ctl.set_r(r)
		s, err := ctl.submit(req.Context(), x, y)
		if err != nil {
			log.Println("serve_submit: ", err)
			redirect_index(w, req, r_raw, err)
			return
		}
		log.Printf("serve_submit: stored sample %d (%g, %g, %g) inside=%t\n", s.id, s.x, s.y, s.r, s.inside)
		redirect_index(w, req, r_raw, nil)
	}
}

func serve_click_gen(gc *graph_config, source sample_source) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		v := req.URL.Query()
		r, r_raw, err := query_r(v)
		if err != nil {
			log.Println("serve_click: bad r: ", err)
			http_error(w, http.StatusBadRequest, "bad r")
			return
		}
		px, err1 := strconv.ParseFloat(v.Get("canvas.x"), 64)
		py, err2 := strconv.ParseFloat(v.Get("canvas.y"), 64)
		if err1 != nil || err2 != nil {
			log.Println("serve_click: bad click position: ", err1, err2)
			http_error(w, http.StatusBadRequest, "bad click position")
			return
		}
		ctl := new_graph_controller(gc, source)
		ctl.set_r(r)
		if _, err := ctl.click(req.Context(), px, py); err != nil {
			log.Println("serve_click: ", err)
			if errors.Is(err, ErrInvalidCoordinate) {
				http_error(w, http.StatusBadRequest, "bad click position")
				return
			}
			redirect_index(w, req, r_raw, err)
			return
		}
		redirect_index(w, req, r_raw, nil)
	}
}

func serve_samples_gen(source sample_source) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		samples, err := source.retrieve_samples(req.Context())
		if err != nil {
			log.Println("serve_samples: cannot retrieve samples: ", err)
			http_error(w, http.StatusInternalServerError, "cannot retrieve samples")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(sample_views(samples)); err != nil {
			log.Println("serve_samples: encoding failed: ", err)
		}
	}
}

func serve_mux(gc *graph_config, sc *config_serve, source sample_source,
	cache *render_cache, tmpl *template.Template) *http.ServeMux {

	mux := http.NewServeMux()
	mux.HandleFunc("/", serve_index_gen(gc, source, tmpl))
	mux.HandleFunc("/graph", serve_graph_gen(gc, source, cache, sc.graph_format))
	mux.HandleFunc("/plot", serve_plot_gen(gc, sc, source, cache))
	mux.HandleFunc("/submit", serve_submit_gen(gc, source))
	mux.HandleFunc("/click", serve_click_gen(gc, source))
	mux.HandleFunc("/samples", serve_samples_gen(source))
	return mux
}

func render_cache_new(ttl time.Duration) *render_cache {
	return ttlcache.New[string, []byte](
		ttlcache.WithTTL[string, []byte](ttl),
		ttlcache.WithDisableTouchOnHit[string, []byte]())
}

func serve(p *params_serve) {
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
	tmpl, err := template_load(sc.path_template)
	if err != nil {
		log.Fatal("cannot load index template: ", err)
	}

	ctx, cf := context.WithCancel(context.Background())
	defer cf()

	ci := make(chan os.Signal, 1)
	signal.Notify(ci, os.Interrupt)
	go func() {
		for range ci {
			cf()
			fmt.Println("got SIGINT -- bailing")
		}
	}()

	log.Printf("Opening %s database at %s\n", sc.db_driver, sc.path_db)
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
		log.Fatal("cannot proceed with serve: ", err)
	}
	if err := protect_serve(sc); err != nil {
		log.Fatal("cannot protect serve: ", err)
	}

	source := db_source_start(ctx, db, sc.db_driver)
	cache := render_cache_new(sc.cache_ttl)
	srv := &http.Server{
		Addr:    sc.listen_addr,
		Handler: serve_mux(gc, sc, source, cache, tmpl),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cache.Start()
		return nil
	})
	g.Go(func() error {
		db_pruner(gctx, source.tasks, sc.retention_time, sc.prune_db_period)
		return nil
	})
	g.Go(func() error {
		log.Println("Listening at address ", sc.listen_addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		cache.Stop()
		sctx, scf := context.WithTimeout(context.Background(), 5*time.Second)
		defer scf()
		return srv.Shutdown(sctx)
	})
	if err := g.Wait(); err != nil {
		log.Println("serve: ", err)
	}
}
