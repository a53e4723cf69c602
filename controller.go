package main

import (
	"context"
	"fmt"
	"io"
	"log"
)

// graph_controller owns the view state of one graph: the selected R and
// the samples last retrieved from the source. It is not safe for
// concurrent use; each request or session gets its own.
type graph_controller struct {
	gc     *graph_config
	source sample_source
	state  view_state
}

func new_graph_controller(gc *graph_config, source sample_source) *graph_controller {
	return &graph_controller{
		gc:     gc,
		source: source,
		state:  view_state{r: DEFAULT_R},
	}
}

func (g *graph_controller) set_r(r float64) {
	g.state.r = r
}

// reload replaces the owned samples with whatever the source returns. On
// failure the previous samples are kept.
func (g *graph_controller) reload(ctx context.Context) error {
	samples, err := g.source.retrieve_samples(ctx)
	if err != nil {
		return fmt.Errorf("cannot retrieve samples: %w", err)
	}
	g.state.samples = samples
	return nil
}

// submit stores a point for the current R and appends the classified
// sample only once the source has accepted it.
func (g *graph_controller) submit(ctx context.Context, x, y float64) (sample, error) {
	s, err := g.source.submit_sample(ctx, x, y, g.state.r)
	if err != nil {
		return sample{}, fmt.Errorf("cannot submit sample: %w", err)
	}
	g.state.samples = append(g.state.samples, s)
	return s, nil
}

// click turns a pixel offset on the rendered graph into a submission.
func (g *graph_controller) click(ctx context.Context, px, py float64) (sample, error) {
	x, y, err := g.gc.from_drawing(px, py)
	if err != nil {
		return sample{}, err
	}
	log.Printf("click: (%g, %g) px -> (%g, %g) for R=%g\n", px, py, x, y, g.state.r)
	return g.submit(ctx, x, y)
}

func (g *graph_controller) redraw(s surface) int {
	return redraw(s, g.gc, &g.state)
}

// render_to draws the current state on a fresh surface of the given
// format and encodes it.
func (g *graph_controller) render_to(format string, w io.Writer) error {
	s, err := surface_new(format, g.gc)
	if err != nil {
		return err
	}
	drawn := g.redraw(s)
	log.Printf("render: R=%g, %d/%d samples drawn as %s\n",
		g.state.r, drawn, len(g.state.samples), format)
	return s.encode(w)
}
