package engine

import (
	"errors"
	"fmt"

	"ambilight-agent/internal/model"
)

var ErrFrame = errors.New("invalid sample frame")

// MinSamples is the smallest edge sequence a frame may carry.
const MinSamples = 2

// Update is one (strip index, target color) pair handed to the smoother.
type Update struct {
	Index  int
	Target model.RGB
}

// Plan holds the targets of one cycle in the order they are applied.
type Plan struct {
	Resampled []Update
	Glow      []Update
}

// Strip is the persistent LED state. It is not safe for concurrent use;
// callers publish copies obtained from Pixels.
type Strip struct {
	geo    Geometry
	pixels []model.RGB
}

func NewStrip(geo Geometry) (*Strip, error) {
	if err := geo.Validate(); err != nil {
		return nil, err
	}
	return &Strip{geo: geo, pixels: make([]model.RGB, geo.Total)}, nil
}

func (s *Strip) Geometry() Geometry {
	return s.geo
}

func (s *Strip) Len() int {
	return len(s.pixels)
}

func (s *Strip) Pixels() []model.RGB {
	out := make([]model.RGB, len(s.pixels))
	copy(out, s.pixels)
	return out
}

func (s *Strip) Reset() {
	for i := range s.pixels {
		s.pixels[i] = model.RGB{}
	}
}

func CheckFrame(f model.SampleFrame) error {
	if len(f.Left) < MinSamples {
		return fmt.Errorf("%w: left edge has %d samples, need %d", ErrFrame, len(f.Left), MinSamples)
	}
	if len(f.Right) < MinSamples {
		return fmt.Errorf("%w: right edge has %d samples, need %d", ErrFrame, len(f.Right), MinSamples)
	}
	return nil
}

// Plan computes the targets for f without touching the strip.
func (s *Strip) Plan(f model.SampleFrame) (Plan, error) {
	if err := CheckFrame(f); err != nil {
		return Plan{}, err
	}
	g := s.geo
	p := Plan{
		Resampled: make([]Update, 0, g.Total),
		Glow:      make([]Update, 0, g.RightGlow+g.LeftGlow),
	}
	for i, c := range Resample(f.Right, g.Right) {
		p.Resampled = append(p.Resampled, Update{Index: g.RightIndex(i), Target: c})
	}
	for i, c := range Resample(f.Left, g.Left) {
		p.Resampled = append(p.Resampled, Update{Index: g.LeftIndex(i), Target: c})
	}

	bl, br := f.BottomLeft(), f.BottomRight()
	start := g.RightGlowStart()
	for j, c := range Glow(bl, br, g.RightGlow) {
		p.Glow = append(p.Glow, Update{Index: start + j, Target: c})
	}
	start = g.LeftGlowStart()
	for j, c := range Glow(bl, br, g.LeftGlow) {
		p.Glow = append(p.Glow, Update{Index: start + j, Target: c})
	}
	return p, nil
}

// Apply runs one resample, glow and smoothing pass. An invalid frame leaves
// the strip untouched.
func (s *Strip) Apply(f model.SampleFrame) error {
	p, err := s.Plan(f)
	if err != nil {
		return err
	}
	alpha := s.geo.Alpha
	if s.geo.GlowBlend == GlowBlendSingle {
		targets := make([]model.RGB, len(s.pixels))
		for _, u := range p.Resampled {
			targets[u.Index] = u.Target
		}
		for _, u := range p.Glow {
			targets[u.Index] = u.Target
		}
		for i := range s.pixels {
			s.pixels[i] = Blend(s.pixels[i], targets[i], alpha)
		}
		return nil
	}
	for _, u := range p.Resampled {
		s.pixels[u.Index] = Blend(s.pixels[u.Index], u.Target, alpha)
	}
	for _, u := range p.Glow {
		s.pixels[u.Index] = Blend(s.pixels[u.Index], u.Target, alpha)
	}
	return nil
}
