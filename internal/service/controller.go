package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"ambilight-agent/internal/engine"
	"ambilight-agent/internal/metrics"
	"ambilight-agent/internal/model"
	"ambilight-agent/internal/output"
	"ambilight-agent/internal/source"
	"ambilight-agent/internal/storage"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	DefaultInterval = 200 * time.Millisecond
	DefaultCooldown = time.Second
)

type State int32

const (
	Idle State = iota
	Updating
)

func (s State) String() string {
	if s == Updating {
		return "updating"
	}
	return "idle"
}

// Controller runs the fetch → resample → glow → smooth → emit cycle. The strip
// state it owns is only touched from the goroutine calling Run or Cycle.
type Controller struct {
	strip    *engine.Strip
	src      source.Source
	out      output.Writer
	store    *storage.Store
	logger   zerolog.Logger
	interval time.Duration
	cooldown time.Duration
	now      func() time.Time
	sleep    func(ctx context.Context, d time.Duration) error

	state      atomic.Int32
	lastUpdate time.Time
}

type Option func(*Controller)

// WithInterval sets the minimum time between the starts of two cycles.
func WithInterval(d time.Duration) Option {
	return func(c *Controller) { c.interval = d }
}

// WithCooldown sets the flat pause after a transport failure.
func WithCooldown(d time.Duration) Option {
	return func(c *Controller) { c.cooldown = d }
}

func WithStore(s *storage.Store) Option {
	return func(c *Controller) { c.store = s }
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithClock replaces the wall clock, mostly for tests.
func WithClock(now func() time.Time, sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Controller) {
		c.now = now
		c.sleep = sleep
	}
}

func NewController(geo engine.Geometry, src source.Source, out output.Writer, opts ...Option) (*Controller, error) {
	if src == nil {
		return nil, errors.New("sample source is required")
	}
	strip, err := engine.NewStrip(geo)
	if err != nil {
		return nil, fmt.Errorf("strip geometry: %w", err)
	}
	if out == nil {
		out = output.Discard
	}
	c := &Controller{
		strip:    strip,
		src:      src,
		out:      out,
		logger:   zerolog.Nop(),
		interval: DefaultInterval,
		cooldown: DefaultCooldown,
		now:      time.Now,
		sleep:    sleepContext,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.interval <= 0 {
		return nil, errors.New("update interval must be > 0")
	}
	if c.cooldown < 0 {
		return nil, errors.New("failure cooldown must be >= 0")
	}
	c.logger = c.logger.With().Str("component", "controller").Logger()
	return c, nil
}

func (c *Controller) State() State {
	return State(c.state.Load())
}

// Snapshot copies the strip state. Only call it while Run is not active.
func (c *Controller) Snapshot() []model.RGB {
	return c.strip.Pixels()
}

// Run loops until ctx is done. Each cycle starts no sooner than the interval
// after the previous one started; a transport failure adds the cooldown.
func (c *Controller) Run(ctx context.Context) error {
	c.logger.Info().
		Dur("interval", c.interval).
		Dur("cooldown", c.cooldown).
		Int("leds", c.strip.Len()).
		Msg("controller started")
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if wait := c.interval - c.now().Sub(c.lastUpdate); wait > 0 {
			if err := c.sleep(ctx, wait); err != nil {
				return err
			}
			continue
		}
		err := c.Cycle(ctx)
		if errors.Is(err, source.ErrTransport) && c.cooldown > 0 {
			if err := c.sleep(ctx, c.cooldown); err != nil {
				return err
			}
		}
	}
}

// Cycle performs one update pass. On a fetch or frame error the strip state
// is left as it was and nothing is emitted.
func (c *Controller) Cycle(ctx context.Context) error {
	start := c.now()
	c.lastUpdate = start
	c.state.Store(int32(Updating))
	defer c.state.Store(int32(Idle))

	cycleID := uuid.NewString()
	logger := c.logger.With().Str("cycle_id", cycleID).Logger()
	if c.store != nil {
		if err := c.store.BeginCycle(cycleID); err != nil {
			logger.Warn().Err(err).Msg("status store update failed")
		}
	}

	frame, err := c.src.Fetch(ctx)
	if err != nil {
		c.fail(logger, source.Kind(err), err, start)
		return err
	}
	if err := c.strip.Apply(frame); err != nil {
		c.fail(logger, model.ErrorSchema, err, start)
		return err
	}
	metrics.SetEdgeSamples(len(frame.Left), len(frame.Right))

	pixels := c.strip.Pixels()
	if err := c.out.Write(pixels); err != nil {
		err = fmt.Errorf("emit: %w", err)
		c.fail(logger, model.ErrorEmit, err, start)
		return err
	}

	metrics.SetMeanLevel(meanLevel(pixels))
	if c.store != nil {
		err := c.store.SetLatestFrame(model.StripFrame{
			CycleID:      cycleID,
			LedCount:     len(pixels),
			Pixels:       pixels,
			LeftSamples:  len(frame.Left),
			RightSamples: len(frame.Right),
			CreatedAt:    c.now().UnixMilli(),
		})
		if err != nil {
			logger.Warn().Err(err).Msg("status store update failed")
		}
	}
	elapsed := c.now().Sub(start)
	metrics.ObserveCycle("ok", elapsed.Seconds())
	logger.Debug().
		Int("left_samples", len(frame.Left)).
		Int("right_samples", len(frame.Right)).
		Dur("took", elapsed).
		Msg("strip updated")
	return nil
}

func (c *Controller) fail(logger zerolog.Logger, kind model.ErrorKind, err error, start time.Time) {
	metrics.ObserveCycle(string(kind), c.now().Sub(start).Seconds())
	ev := logger.Warn()
	if kind == model.ErrorEmit {
		ev = logger.Error()
	}
	ev.Err(err).Str("kind", string(kind)).Msg("cycle failed")
	if c.store != nil {
		if serr := c.store.RecordFailure(kind, err); serr != nil {
			logger.Warn().Err(serr).Msg("status store update failed")
		}
	}
}

func meanLevel(pixels []model.RGB) float64 {
	if len(pixels) == 0 {
		return 0
	}
	var sum int
	for _, p := range pixels {
		sum += int(p.R) + int(p.G) + int(p.B)
	}
	return float64(sum) / float64(len(pixels)*3)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
