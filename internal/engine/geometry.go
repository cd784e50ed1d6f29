package engine

import (
	"errors"
	"fmt"
)

type GlowBlend string

const (
	// GlowBlendDouble blends glow LEDs toward the resampled color and then
	// again toward the glow color within the same cycle.
	GlowBlendDouble GlowBlend = "double"
	// GlowBlendSingle lets the glow color replace the resampled color before
	// the one and only blend.
	GlowBlendSingle GlowBlend = "single"
)

// Centered places a glow range in the middle of its segment.
const Centered = -1

// Geometry describes the physical strip. Right LEDs occupy strip indices
// 0..Right-1 top to bottom; left LEDs occupy Right..Total-1 bottom to top.
type Geometry struct {
	Total           int       `yaml:"total"`
	Right           int       `yaml:"right"`
	Left            int       `yaml:"left"`
	RightGlow       int       `yaml:"right_glow"`
	LeftGlow        int       `yaml:"left_glow"`
	RightGlowOffset int       `yaml:"right_glow_offset"`
	LeftGlowOffset  int       `yaml:"left_glow_offset"`
	Alpha           float64   `yaml:"alpha"`
	GlowBlend       GlowBlend `yaml:"glow_blend"`
}

func DefaultGeometry() Geometry {
	return Geometry{
		Total:           38,
		Right:           19,
		Left:            19,
		RightGlow:       8,
		LeftGlow:        8,
		RightGlowOffset: Centered,
		LeftGlowOffset:  Centered,
		Alpha:           0.8,
		GlowBlend:       GlowBlendDouble,
	}
}

func (g Geometry) Validate() error {
	if g.Total <= 0 {
		return errors.New("total led count must be > 0")
	}
	if g.Right <= 0 || g.Left <= 0 {
		return errors.New("right and left segment counts must be > 0")
	}
	if g.Right+g.Left != g.Total {
		return fmt.Errorf("right (%d) + left (%d) must equal total (%d)", g.Right, g.Left, g.Total)
	}
	if g.RightGlow < 0 || g.RightGlow > g.Right {
		return fmt.Errorf("right glow size %d must be in [0,%d]", g.RightGlow, g.Right)
	}
	if g.LeftGlow < 0 || g.LeftGlow > g.Left {
		return fmt.Errorf("left glow size %d must be in [0,%d]", g.LeftGlow, g.Left)
	}
	if err := checkOffset("right", g.RightGlowOffset, g.RightGlow, g.Right); err != nil {
		return err
	}
	if err := checkOffset("left", g.LeftGlowOffset, g.LeftGlow, g.Left); err != nil {
		return err
	}
	if !(g.Alpha > 0 && g.Alpha <= 1) {
		return fmt.Errorf("smoothing alpha %v must be in (0,1]", g.Alpha)
	}
	switch g.GlowBlend {
	case GlowBlendDouble, GlowBlendSingle:
	default:
		return fmt.Errorf("unsupported glow blend %q", g.GlowBlend)
	}
	return nil
}

func checkOffset(side string, offset, size, count int) error {
	if offset == Centered {
		return nil
	}
	if offset < 0 || offset+size > count {
		return fmt.Errorf("%s glow offset %d with size %d exceeds segment of %d", side, offset, size, count)
	}
	return nil
}

// RightIndex returns the strip index of right LED position i.
func (g Geometry) RightIndex(i int) int {
	return i
}

// LeftIndex returns the strip index of left LED position i.
func (g Geometry) LeftIndex(i int) int {
	return g.Total - 1 - i
}

// RightGlowStart is the first strip index of the right glow range.
func (g Geometry) RightGlowStart() int {
	return glowOffset(g.RightGlowOffset, g.RightGlow, g.Right)
}

// LeftGlowStart is the first strip index of the left glow range.
func (g Geometry) LeftGlowStart() int {
	return g.Total - g.Left + glowOffset(g.LeftGlowOffset, g.LeftGlow, g.Left)
}

func glowOffset(offset, size, count int) int {
	if offset == Centered {
		return (count - size) / 2
	}
	return offset
}
