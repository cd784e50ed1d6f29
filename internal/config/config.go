package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"ambilight-agent/internal/engine"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type SourceKind string

const (
	SourceHTTP  SourceKind = "http"
	SourceImage SourceKind = "image"
)

type OutputKind string

const (
	OutputLog  OutputKind = "log"
	OutputNRZ  OutputKind = "nrz"
	OutputNone OutputKind = "none"
)

type Config struct {
	ListenAddr string
	StatusPath string
	LogLevel   string

	SourceKind      SourceKind
	SourceURL       string
	SourceTimeout   time.Duration
	SourceImagePath string
	EdgeSamples     int
	EdgeBandPct     int

	Geometry        engine.Geometry
	UpdateInterval  time.Duration
	FailureCooldown time.Duration

	Output     OutputKind
	SPIPort    string
	SPIFreqKHz int
	BootStep   time.Duration
}

// Load reads envFile (a missing file is fine), then the process environment,
// then the optional YAML geometry file, and validates the result.
func Load(envFile, geometryFile string) (Config, error) {
	if envFile == "" {
		_ = godotenv.Load()
	} else if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	geo := engine.Geometry{
		Total:           getEnvInt("LEDS_TOTAL", 38),
		Right:           getEnvInt("LEDS_RIGHT", 19),
		Left:            getEnvInt("LEDS_LEFT", 19),
		RightGlow:       getEnvInt("GLOW_RIGHT", 8),
		LeftGlow:        getEnvInt("GLOW_LEFT", 8),
		RightGlowOffset: getEnvInt("GLOW_RIGHT_OFFSET", engine.Centered),
		LeftGlowOffset:  getEnvInt("GLOW_LEFT_OFFSET", engine.Centered),
		Alpha:           getEnvFloat("SMOOTHING_ALPHA", 0.8),
		GlowBlend:       engine.GlowBlend(strings.ToLower(getEnv("GLOW_BLEND", string(engine.GlowBlendDouble)))),
	}
	if geometryFile != "" {
		if err := loadGeometry(geometryFile, &geo); err != nil {
			return Config{}, err
		}
	}

	cfg := Config{
		ListenAddr:      getEnv("LISTEN_ADDR", ":8090"),
		StatusPath:      getEnv("STATUS_PATH", ""),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		SourceKind:      SourceKind(strings.ToLower(getEnv("SOURCE_KIND", string(SourceHTTP)))),
		SourceURL:       getEnv("SOURCE_URL", ""),
		SourceTimeout:   getEnvMillis("SOURCE_TIMEOUT_MS", 2000),
		SourceImagePath: getEnv("SOURCE_IMAGE_PATH", ""),
		EdgeSamples:     getEnvInt("EDGE_SAMPLES", 16),
		EdgeBandPct:     getEnvInt("EDGE_BAND_PCT", 10),
		Geometry:        geo,
		UpdateInterval:  getEnvMillis("UPDATE_INTERVAL_MS", 200),
		FailureCooldown: getEnvMillis("FAILURE_COOLDOWN_MS", 1000),
		Output:          OutputKind(strings.ToLower(getEnv("OUTPUT", string(OutputLog)))),
		SPIPort:         getEnv("SPI_PORT", ""),
		SPIFreqKHz:      getEnvInt("SPI_FREQ_KHZ", 2500),
		BootStep:        getEnvMillis("BOOT_SWEEP_STEP_MS", 0),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if err := c.Geometry.Validate(); err != nil {
		return fmt.Errorf("geometry: %w", err)
	}
	switch c.SourceKind {
	case SourceHTTP:
		if c.SourceURL == "" {
			return errors.New("SOURCE_URL is required for the http source")
		}
	case SourceImage:
		if c.SourceImagePath == "" {
			return errors.New("SOURCE_IMAGE_PATH is required for the image source")
		}
		if c.EdgeSamples < 2 {
			return errors.New("edge samples must be >= 2")
		}
		if c.EdgeBandPct <= 0 || c.EdgeBandPct > 50 {
			return errors.New("edge band pct must be in (0,50]")
		}
	default:
		return fmt.Errorf("unsupported source kind %q", c.SourceKind)
	}
	switch c.Output {
	case OutputLog, OutputNRZ, OutputNone:
	default:
		return fmt.Errorf("unsupported output %q", c.Output)
	}
	if c.SourceTimeout <= 0 {
		return errors.New("source timeout must be > 0")
	}
	if c.UpdateInterval <= 0 {
		return errors.New("update interval must be > 0")
	}
	if c.FailureCooldown < 0 {
		return errors.New("failure cooldown must be >= 0")
	}
	if c.SPIFreqKHz <= 0 {
		return errors.New("spi frequency must be > 0")
	}
	if c.BootStep < 0 {
		return errors.New("boot sweep step must be >= 0")
	}
	return nil
}

// loadGeometry overlays the keys present in a YAML file onto geo.
func loadGeometry(path string, geo *engine.Geometry) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read geometry file: %w", err)
	}
	if err := yaml.Unmarshal(b, geo); err != nil {
		return fmt.Errorf("parse geometry file: %w", err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func getEnvMillis(key string, fallback int) time.Duration {
	return time.Duration(getEnvInt(key, fallback)) * time.Millisecond
}
