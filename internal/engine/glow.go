package engine

import "ambilight-agent/internal/model"

// Glow builds an n-step gradient from bottomLeft to bottomRight.
// A single LED gets bottomLeft.
func Glow(bottomLeft, bottomRight model.RGB, n int) []model.RGB {
	if n <= 0 {
		return nil
	}
	out := make([]model.RGB, n)
	if n == 1 {
		out[0] = bottomLeft
		return out
	}
	for j := range out {
		t := float64(j) / float64(n-1)
		out[j] = Interpolate(bottomLeft, bottomRight, t)
	}
	return out
}
