package source

import (
	"context"
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"ambilight-agent/internal/model"
	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func splitImage(w, h int, left, right color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x < w/2 {
				img.SetNRGBA(x, y, left)
			} else {
				img.SetNRGBA(x, y, right)
			}
		}
	}
	return img
}

func assertNear(t *testing.T, want, got model.RGB) {
	t.Helper()
	assert.InDelta(t, want.R, got.R, 1)
	assert.InDelta(t, want.G, got.G, 1)
	assert.InDelta(t, want.B, got.B, 1)
}

func TestImageSampleEdges(t *testing.T) {
	img := splitImage(40, 30, color.NRGBA{R: 200, A: 255}, color.NRGBA{B: 150, A: 255})
	f, err := NewImage("", 6, 10).Sample(img)
	require.NoError(t, err)
	require.Len(t, f.Left, 6)
	require.Len(t, f.Right, 6)
	for i := range f.Left {
		assertNear(t, model.RGB{R: 200}, f.Left[i])
		assertNear(t, model.RGB{B: 150}, f.Right[i])
	}
}

func TestImageSampleTopToBottom(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 20, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 20; x++ {
			if y < 20 {
				img.SetNRGBA(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
			} else {
				img.SetNRGBA(x, y, color.NRGBA{A: 255})
			}
		}
	}
	f, err := NewImage("", 4, 10).Sample(img)
	require.NoError(t, err)
	assert.Greater(t, f.Left[0].R, f.Left[3].R)
	assert.Greater(t, f.Right[0].G, f.Right[3].G)
}

func TestImageFetchFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "screen.png")
	require.NoError(t, imaging.Save(splitImage(32, 18, color.NRGBA{G: 90, A: 255}, color.NRGBA{R: 30, A: 255}), path))

	f, err := NewImage(path, 3, 25).Fetch(context.Background())
	require.NoError(t, err)
	assertNear(t, model.RGB{G: 90}, f.BottomLeft())
	assertNear(t, model.RGB{R: 30}, f.BottomRight())

	_, err = NewImage(filepath.Join(t.TempDir(), "missing.png"), 3, 25).Fetch(context.Background())
	assert.True(t, errors.Is(err, ErrTransport), "got %v", err)
}
