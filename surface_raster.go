package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"log"
	"math"

	"git.sr.ht/~sbinet/gg"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

type raster_surface struct {
	gc    *graph_config
	img   *image.RGBA
	dc    *gg.Context
	font  *opentype.Font
	faces map[float64]font.Face
}

func new_raster_surface(gc *graph_config) (surface, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("cannot parse label font: %w", err)
	}
	img := image.NewRGBA(image.Rect(0, 0, gc.width_px(), gc.height_px()))
	dc := gg.NewContextForRGBA(img)
	dc.Scale(gc.scale, gc.scale)
	return &raster_surface{
		gc:    gc,
		img:   img,
		dc:    dc,
		font:  f,
		faces: map[float64]font.Face{},
	}, nil
}

func (s *raster_surface) device_rect(x, y, w, h float64) image.Rectangle {
	x0, y0 := s.dc.TransformPoint(x, y)
	x1, y1 := s.dc.TransformPoint(x+w, y+h)
	return image.Rect(
		int(math.Round(x0)), int(math.Round(y0)),
		int(math.Round(x1)), int(math.Round(y1)))
}

func (s *raster_surface) clear_rect(x, y, w, h float64) {
	draw.Draw(s.img, s.device_rect(x, y, w, h), image.Transparent, image.Point{}, draw.Src)
}

func (s *raster_surface) fill_circle(cx, cy, radius float64, c color.Color) {
	s.dc.NewSubPath()
	s.dc.DrawArc(cx, cy, radius, 0, 2*math.Pi)
	s.dc.SetColor(c)
	s.dc.Fill()
}

func (s *raster_surface) fill_rect(x, y, w, h float64, c color.Color) {
	s.dc.DrawRectangle(x, y, w, h)
	s.dc.SetColor(c)
	s.dc.Fill()
}

func (s *raster_surface) fill_polygon(pts []drawing_point, c color.Color) {
	if len(pts) == 0 {
		return
	}
	s.dc.MoveTo(pts[0].x, pts[0].y)
	for _, p := range pts[1:] {
		s.dc.LineTo(p.x, p.y)
	}
	s.dc.ClosePath()
	s.dc.SetColor(c)
	s.dc.Fill()
}

func (s *raster_surface) stroke_line(x0, y0, x1, y1, width float64, c color.Color) {
	// Stroke widths are not affected by the context matrix.
	s.dc.SetLineWidth(width * s.gc.scale)
	s.dc.MoveTo(x0, y0)
	s.dc.LineTo(x1, y1)
	s.dc.SetColor(c)
	s.dc.Stroke()
}

func (s *raster_surface) face(size float64) (font.Face, error) {
	if f, ok := s.faces[size]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(s.font, &opentype.FaceOptions{
		Size:    size * s.gc.scale,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	s.faces[size] = f
	return f, nil
}

func (s *raster_surface) fill_text(text string, x, y, size float64, c color.Color) {
	face, err := s.face(size)
	if err != nil {
		log.Printf("raster_surface: cannot create font face of size %f: %v\n", size, err)
		return
	}
	px, py := s.dc.TransformPoint(x, y)
	d := &font.Drawer{
		Dst:  s.img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(int(math.Round(px)), int(math.Round(py))),
	}
	d.DrawString(text)
}

func (s *raster_surface) encode(w io.Writer) error {
	return png.Encode(w, s.img)
}
