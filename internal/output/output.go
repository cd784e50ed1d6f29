// Package output delivers finished strip frames to hardware and observers.
package output

import (
	"errors"

	"ambilight-agent/internal/model"
	"github.com/rs/zerolog"
)

// Writer receives the whole strip, in strip index order, once per cycle.
type Writer interface {
	Write(pixels []model.RGB) error
}

type WriterFunc func(pixels []model.RGB) error

func (f WriterFunc) Write(pixels []model.RGB) error { return f(pixels) }

type multi []Writer

// Multi fans a frame out to every writer; failures are joined, not short-circuited.
func Multi(ws ...Writer) Writer {
	return multi(ws)
}

func (m multi) Write(pixels []model.RGB) error {
	var errs []error
	for _, w := range m {
		if err := w.Write(pixels); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Log prints a compact summary of each frame, useful without hardware.
type Log struct {
	logger zerolog.Logger
	count  int
}

func NewLog(logger zerolog.Logger) *Log {
	return &Log{logger: logger.With().Str("component", "log_writer").Logger()}
}

func (l *Log) Write(pixels []model.RGB) error {
	l.count++
	var r, g, b int
	for _, p := range pixels {
		r += int(p.R)
		g += int(p.G)
		b += int(p.B)
	}
	n := len(pixels)
	if n == 0 {
		n = 1
	}
	ev := l.logger.Debug().
		Int("frame", l.count).
		Int("leds", len(pixels)).
		Ints("avg", []int{r / n, g / n, b / n})
	if len(pixels) > 0 {
		first := pixels[0]
		ev = ev.Ints("first", []int{int(first.R), int(first.G), int(first.B)})
	}
	ev.Msg("strip frame")
	return nil
}

// Discard drops every frame.
var Discard Writer = WriterFunc(func([]model.RGB) error { return nil })
