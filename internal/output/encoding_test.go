package output

import (
	"testing"

	"ambilight-agent/internal/model"
)

func TestEncodeRGB24(t *testing.T) {
	in := []model.RGB{{R: 1, G: 2, B: 3}, {R: 4, G: 5, B: 6}}
	out := EncodeRGB24(in)
	if len(out) != 6 {
		t.Fatalf("unexpected length: %d", len(out))
	}
	if out[0] != 1 || out[1] != 2 || out[2] != 3 || out[3] != 4 || out[4] != 5 || out[5] != 6 {
		t.Fatalf("unexpected payload: %v", out)
	}
}

func TestEncodeRGB24Empty(t *testing.T) {
	if out := EncodeRGB24(nil); len(out) != 0 {
		t.Fatalf("unexpected payload: %v", out)
	}
}
