package engine

import "ambilight-agent/internal/model"

// Blend moves old toward target by alpha of the remaining distance.
// The result always lies between old and target for alpha in (0,1].
func Blend(old, target model.RGB, alpha float64) model.RGB {
	return model.RGB{
		R: lerpChannel(old.R, target.R, alpha),
		G: lerpChannel(old.G, target.G, alpha),
		B: lerpChannel(old.B, target.B, alpha),
	}
}

// Interpolate returns a + (b-a)*t per channel. t=0 yields a and t=1 yields b exactly.
func Interpolate(a, b model.RGB, t float64) model.RGB {
	return model.RGB{
		R: lerpChannel(a.R, b.R, t),
		G: lerpChannel(a.G, b.G, t),
		B: lerpChannel(a.B, b.B, t),
	}
}

func lerpChannel(a, b uint8, t float64) uint8 {
	v := float64(a) + (float64(b)-float64(a))*t
	return uint8(clampFloat(v, 0, 255))
}

func clampFloat(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
