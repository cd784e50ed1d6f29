package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultGeometryLayout(t *testing.T) {
	g := DefaultGeometry()
	assert.NoError(t, g.Validate())
	assert.Equal(t, 5, g.RightGlowStart())
	assert.Equal(t, 24, g.LeftGlowStart())
	assert.Equal(t, 0, g.RightIndex(0))
	assert.Equal(t, 18, g.RightIndex(18))
	assert.Equal(t, 37, g.LeftIndex(0))
	assert.Equal(t, 19, g.LeftIndex(18))
}

func TestGeometryExplicitOffsets(t *testing.T) {
	g := DefaultGeometry()
	g.RightGlowOffset = 11
	g.LeftGlowOffset = 0
	assert.NoError(t, g.Validate())
	assert.Equal(t, 11, g.RightGlowStart())
	assert.Equal(t, 19, g.LeftGlowStart())
}

func TestGeometryValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Geometry)
	}{
		{"zero total", func(g *Geometry) { g.Total = 0 }},
		{"segments do not add up", func(g *Geometry) { g.Left = 18 }},
		{"empty right segment", func(g *Geometry) { g.Right, g.Left = 0, 38 }},
		{"glow larger than segment", func(g *Geometry) { g.RightGlow = 20 }},
		{"negative glow", func(g *Geometry) { g.LeftGlow = -2 }},
		{"offset past segment end", func(g *Geometry) { g.RightGlowOffset = 12 }},
		{"negative offset", func(g *Geometry) { g.LeftGlowOffset = -3 }},
		{"zero alpha", func(g *Geometry) { g.Alpha = 0 }},
		{"alpha above one", func(g *Geometry) { g.Alpha = 1.5 }},
		{"unknown blend", func(g *Geometry) { g.GlowBlend = "triple" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := DefaultGeometry()
			tt.mutate(&g)
			assert.Error(t, g.Validate())
		})
	}
}

func TestGeometrySingleLedSegments(t *testing.T) {
	g := Geometry{Total: 2, Right: 1, Left: 1, RightGlow: 1, LeftGlow: 1,
		RightGlowOffset: Centered, LeftGlowOffset: Centered, Alpha: 1, GlowBlend: GlowBlendSingle}
	assert.NoError(t, g.Validate())
	assert.Equal(t, 0, g.RightGlowStart())
	assert.Equal(t, 1, g.LeftGlowStart())
}
