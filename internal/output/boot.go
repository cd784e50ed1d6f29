package output

import (
	"context"
	"time"

	"ambilight-agent/internal/model"
)

// BootColor is the color lit while the downstream display is still booting.
var BootColor = model.RGB{R: 10, G: 70, B: 80}

// BootSweep lights the strip one LED at a time, waiting step after each. It
// holds off the first real update until the display had time to come up.
func BootSweep(ctx context.Context, w Writer, count int, c model.RGB, step time.Duration) error {
	if step <= 0 || count <= 0 {
		return nil
	}
	pixels := make([]model.RGB, count)
	for i := range pixels {
		pixels[i] = c
		frame := make([]model.RGB, count)
		copy(frame, pixels)
		if err := w.Write(frame); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(step):
		}
	}
	return nil
}
