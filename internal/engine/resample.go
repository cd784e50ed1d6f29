package engine

import "ambilight-agent/internal/model"

// SourceIndex maps LED position i of k LEDs onto a sequence of l samples.
// The first LED always reads sample 0 and the last LED always reads sample l-1.
func SourceIndex(i, k, l int) int {
	if k <= 1 || l <= 1 {
		return 0
	}
	return i * (l - 1) / (k - 1)
}

// Resample picks k colors out of seq by nearest-neighbor lookup.
func Resample(seq []model.RGB, k int) []model.RGB {
	if len(seq) == 0 || k <= 0 {
		return nil
	}
	out := make([]model.RGB, k)
	for i := range out {
		out[i] = seq[SourceIndex(i, k, len(seq))]
	}
	return out
}
