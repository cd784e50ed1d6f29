package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ambilight-agent/internal/api"
	"ambilight-agent/internal/config"
	"ambilight-agent/internal/output"
	"ambilight-agent/internal/service"
	"ambilight-agent/internal/source"
	"ambilight-agent/internal/storage"
	"ambilight-agent/internal/ws"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"periph.io/x/conn/v3/physic"
)

func main() {
	envFile := pflag.String("env-file", "", "dotenv file to load before reading the environment (default .env)")
	geometryFile := pflag.String("geometry", "", "optional YAML file overriding the strip geometry")
	pflag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})

	cfg, err := config.Load(*envFile, *geometryFile)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		log.Warn().Str("level", cfg.LogLevel).Msg("unknown log level, using info")
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(lvl)
	}

	store, err := storage.NewStore(cfg.StatusPath)
	if err != nil {
		log.Fatal().Err(err).Msg("init store")
	}

	hub := ws.NewHub()
	go hub.Run()
	deviceHub := ws.NewDeviceHub()

	var src source.Source
	switch cfg.SourceKind {
	case config.SourceImage:
		src = source.NewImage(cfg.SourceImagePath, cfg.EdgeSamples, cfg.EdgeBandPct)
	default:
		src = source.NewHTTP(cfg.SourceURL, cfg.SourceTimeout)
	}

	geo := cfg.Geometry
	var hw output.Writer = output.Discard
	var nrz *output.NRZ
	switch cfg.Output {
	case config.OutputNRZ:
		nrz, err = output.OpenNRZ(cfg.SPIPort, geo.Total, physic.Frequency(cfg.SPIFreqKHz)*physic.KiloHertz)
		if err != nil {
			log.Fatal().Err(err).Msg("open led strip")
		}
		log.Info().Str("device", nrz.String()).Msg("led strip ready")
		hw = nrz
	case config.OutputLog:
		hw = output.NewLog(log.Logger)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := output.BootSweep(ctx, hw, geo.Total, output.BootColor, cfg.BootStep); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("boot sweep failed")
	}

	ctrl, err := service.NewController(geo, src, output.Multi(hw, hub, deviceHub),
		service.WithInterval(cfg.UpdateInterval),
		service.WithCooldown(cfg.FailureCooldown),
		service.WithStore(store),
		service.WithLogger(log.Logger),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("init controller")
	}

	router := api.NewRouter(store, hub, deviceHub, func() string { return ctrl.State().String() })
	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.ListenAddr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	log.Info().
		Str("source", string(cfg.SourceKind)).
		Str("output", string(cfg.Output)).
		Int("leds", geo.Total).
		Msg("ambilight agent started")
	if err := ctrl.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("controller stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
	if nrz != nil {
		if err := nrz.Close(); err != nil {
			log.Warn().Err(err).Msg("close led strip")
		}
	}
}
