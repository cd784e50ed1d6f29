package engine

import (
	"errors"
	"testing"

	"ambilight-agent/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	black = model.RGB{}
	white = model.RGB{R: 255, G: 255, B: 255}
)

func scale(c model.RGB, f float64) model.RGB {
	return model.RGB{R: uint8(float64(c.R) * f), G: uint8(float64(c.G) * f), B: uint8(float64(c.B) * f)}
}

func TestStripScenario(t *testing.T) {
	s, err := NewStrip(DefaultGeometry())
	require.NoError(t, err)
	frame := model.SampleFrame{
		Left:  []model.RGB{black, black},
		Right: []model.RGB{black, white},
	}

	p, err := s.Plan(frame)
	require.NoError(t, err)
	require.Len(t, p.Resampled, 38)
	require.Len(t, p.Glow, 16)
	assert.Equal(t, Update{Index: 0, Target: black}, p.Resampled[0])
	assert.Equal(t, Update{Index: 18, Target: white}, p.Resampled[18])

	gradient := Glow(black, white, 8)
	want := make([]model.RGB, 38)
	want[18] = white
	for j, c := range gradient {
		want[5+j] = c
		want[24+j] = c
	}
	for j, u := range p.Glow[:8] {
		assert.Equal(t, 5+j, u.Index)
		assert.Equal(t, gradient[j], u.Target)
	}
	for j, u := range p.Glow[8:] {
		assert.Equal(t, 24+j, u.Index)
		assert.Equal(t, gradient[j], u.Target)
	}

	require.NoError(t, s.Apply(frame))
	got := s.Pixels()
	for i := range want {
		assert.Equal(t, scale(want[i], 0.8), got[i], "led %d", i)
	}
	assert.Equal(t, model.RGB{R: 204, G: 204, B: 204}, got[18])
}

func TestStripDoubleBlendInGlow(t *testing.T) {
	red := model.RGB{R: 240}
	blue := model.RGB{B: 200}
	// Right edge is red all the way down, so resampled targets are red while
	// the glow range fades from blue (bottom left) to red.
	frame := model.SampleFrame{
		Left:  []model.RGB{black, blue},
		Right: []model.RGB{red, red, red},
	}

	s, err := NewStrip(DefaultGeometry())
	require.NoError(t, err)
	require.NoError(t, s.Apply(frame))
	got := s.Pixels()

	idx := s.Geometry().RightGlowStart()
	glowTarget := blue
	double := Blend(Blend(black, red, 0.8), glowTarget, 0.8)
	single := Blend(black, glowTarget, 0.8)
	assert.Equal(t, double, got[idx])
	assert.NotEqual(t, single, got[idx])

	geo := DefaultGeometry()
	geo.GlowBlend = GlowBlendSingle
	s2, err := NewStrip(geo)
	require.NoError(t, err)
	require.NoError(t, s2.Apply(frame))
	assert.Equal(t, single, s2.Pixels()[idx])
	// Outside the glow range both modes agree.
	assert.Equal(t, got[0], s2.Pixels()[0])
}

func TestStripRejectsShortFrames(t *testing.T) {
	s, err := NewStrip(DefaultGeometry())
	require.NoError(t, err)
	require.NoError(t, s.Apply(model.SampleFrame{
		Left:  []model.RGB{white, white},
		Right: []model.RGB{white, white},
	}))
	before := s.Pixels()

	frames := []model.SampleFrame{
		{Left: []model.RGB{white}, Right: []model.RGB{white, white}},
		{Left: []model.RGB{white, white}, Right: nil},
		{},
	}
	for _, f := range frames {
		err := s.Apply(f)
		assert.True(t, errors.Is(err, ErrFrame), "got %v", err)
		assert.Equal(t, before, s.Pixels())
	}
}

func TestStripStableUnderRepeatedFrame(t *testing.T) {
	frame := model.SampleFrame{
		Left:  []model.RGB{{R: 10, G: 200, B: 30}, {R: 90, G: 5, B: 250}, {R: 0, G: 0, B: 0}},
		Right: []model.RGB{{R: 255, G: 0, B: 0}, {R: 12, G: 34, B: 56}, {R: 200, G: 180, B: 160}, {R: 77, G: 200, B: 1}},
	}
	for _, mode := range []GlowBlend{GlowBlendDouble, GlowBlendSingle} {
		geo := DefaultGeometry()
		geo.GlowBlend = mode
		s, err := NewStrip(geo)
		require.NoError(t, err)

		p, err := s.Plan(frame)
		require.NoError(t, err)
		final := make([]model.RGB, s.Len())
		inGlow := make([]bool, s.Len())
		for _, u := range p.Resampled {
			final[u.Index] = u.Target
		}
		for _, u := range p.Glow {
			final[u.Index] = u.Target
			inGlow[u.Index] = true
		}

		history := [][]model.RGB{s.Pixels()}
		for n := 0; n < 30; n++ {
			require.NoError(t, s.Apply(frame))
			history = append(history, s.Pixels())
		}

		for i := 0; i < s.Len(); i++ {
			for ch := 0; ch < 3; ch++ {
				seq := make([]int, len(history))
				for n, px := range history {
					seq[n] = channel(px[i], ch)
				}
				assertMonotonic(t, seq, "mode=%s led=%d ch=%d", mode, i, ch)
				if mode == GlowBlendDouble && inGlow[i] {
					continue
				}
				target := channel(final[i], ch)
				for n := 1; n < len(seq); n++ {
					if dist(seq[n], target) > dist(seq[n-1], target) {
						t.Fatalf("mode=%s led=%d ch=%d: moved away from target at cycle %d", mode, i, ch, n)
					}
				}
				assert.LessOrEqual(t, dist(seq[len(seq)-1], target), 1)
			}
		}
	}
}

func channel(c model.RGB, ch int) int {
	switch ch {
	case 0:
		return int(c.R)
	case 1:
		return int(c.G)
	default:
		return int(c.B)
	}
}

func dist(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

func assertMonotonic(t *testing.T, seq []int, msg string, args ...interface{}) {
	t.Helper()
	up, down := true, true
	for n := 1; n < len(seq); n++ {
		if seq[n] < seq[n-1] {
			up = false
		}
		if seq[n] > seq[n-1] {
			down = false
		}
	}
	assert.True(t, up || down, append([]interface{}{msg + ": %v"}, append(args, seq)...)...)
}
