package source

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"

	"ambilight-agent/internal/model"
	"github.com/disintegration/imaging"
)

// Image samples the left and right edge bands of a screenshot file. The file
// is re-read on every Fetch so an external grabber can keep replacing it.
type Image struct {
	path    string
	samples int
	bandPct int
}

func NewImage(path string, samples, bandPct int) *Image {
	if samples < 2 {
		samples = 2
	}
	if bandPct <= 0 || bandPct > 50 {
		bandPct = 10
	}
	return &Image{path: path, samples: samples, bandPct: bandPct}
}

func (s *Image) Fetch(_ context.Context) (model.SampleFrame, error) {
	img, err := imaging.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.SampleFrame{}, fmt.Errorf("%w: %v", ErrTransport, err)
		}
		return model.SampleFrame{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return s.Sample(img)
}

// Sample reduces each edge band of img to a column of s.samples colors,
// top to bottom.
func (s *Image) Sample(img image.Image) (model.SampleFrame, error) {
	b := img.Bounds()
	if b.Dx() < 2 || b.Dy() < 1 {
		return model.SampleFrame{}, fmt.Errorf("%w: image %dx%d too small", ErrSchema, b.Dx(), b.Dy())
	}
	band := b.Dx() * s.bandPct / 100
	if band < 1 {
		band = 1
	}
	left := imaging.Crop(img, image.Rect(b.Min.X, b.Min.Y, b.Min.X+band, b.Max.Y))
	right := imaging.Crop(img, image.Rect(b.Max.X-band, b.Min.Y, b.Max.X, b.Max.Y))
	return model.SampleFrame{
		Left:  s.column(left),
		Right: s.column(right),
	}, nil
}

func (s *Image) column(band image.Image) []model.RGB {
	col := imaging.Resize(band, 1, s.samples, imaging.Box)
	out := make([]model.RGB, 0, s.samples)
	for y := 0; y < s.samples; y++ {
		c := col.NRGBAAt(0, y)
		out = append(out, model.RGB{R: c.R, G: c.G, B: c.B})
	}
	return out
}
