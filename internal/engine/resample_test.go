package engine

import (
	"testing"

	"ambilight-agent/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ramp(n int) []model.RGB {
	out := make([]model.RGB, n)
	for i := range out {
		out[i] = model.RGB{R: uint8(i), G: uint8(255 - i), B: uint8(i * 3)}
	}
	return out
}

func TestResampleEndpoints(t *testing.T) {
	for l := 2; l <= 64; l++ {
		seq := ramp(l)
		for k := 2; k <= 40; k++ {
			out := Resample(seq, k)
			require.Len(t, out, k)
			assert.Equal(t, seq[0], out[0], "l=%d k=%d first", l, k)
			assert.Equal(t, seq[l-1], out[k-1], "l=%d k=%d last", l, k)
		}
	}
}

func TestSourceIndexMonotonic(t *testing.T) {
	for l := 1; l <= 50; l++ {
		for k := 1; k <= 50; k++ {
			prev := 0
			for i := 0; i < k; i++ {
				idx := SourceIndex(i, k, l)
				if idx < prev {
					t.Fatalf("l=%d k=%d: index went back from %d to %d at i=%d", l, k, prev, idx, i)
				}
				if idx < 0 || idx >= l {
					t.Fatalf("l=%d k=%d: index %d out of range at i=%d", l, k, idx, i)
				}
				prev = idx
			}
		}
	}
}

func TestSourceIndexDegenerate(t *testing.T) {
	assert.Equal(t, 0, SourceIndex(0, 1, 10), "single led reads the top sample")
	for i := 0; i < 19; i++ {
		assert.Equal(t, 0, SourceIndex(i, 19, 1))
	}
	assert.Nil(t, Resample(nil, 19))
	assert.Nil(t, Resample(ramp(4), 0))
}

func TestSourceIndexTwoSamples(t *testing.T) {
	// With two samples only the last LED reaches the bottom corner.
	for i := 0; i < 18; i++ {
		assert.Equal(t, 0, SourceIndex(i, 19, 2))
	}
	assert.Equal(t, 1, SourceIndex(18, 19, 2))
}
