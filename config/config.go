package config

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/targodan/go-errors"

	"electrorustogram/model"
	"electrorustogram/monitor"
)

const (
	EnvConfig        = "ECG_CONFIG"
	EnvFPS           = "ECG_FPS"
	EnvFPSStep       = "ECG_FPS_STEP"
	EnvWarnThreshold = "ECG_WARN_THRESHOLD"
	EnvCritThreshold = "ECG_CRIT_THRESHOLD"
	EnvSource        = "ECG_SOURCE"
	EnvLogLevel      = "ECG_LOG_LEVEL"

	maxFPSStep = 50
)

// DefaultPath is ~/.electrorustogram/config.json, or $ECG_CONFIG when set.
func DefaultPath() string {
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv("HOME")
	}
	return filepath.Join(home, ".electrorustogram", "config.json")
}

func Default() *Config {
	return &Config{
		FPS:           int(model.FPSDefault),
		FPSStep:       model.DefaultFPSStep,
		WarnThreshold: model.DefaultWarnThreshold,
		CritThreshold: model.DefaultCritThreshold,
		Source:        monitor.SourceAuto,
		LogLevel:      "info",
	}
}

// LoadDotEnv loads .env files into the environment. Missing files are not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		err := godotenv.Load(f)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return errors.Errorf("could not load %s, reason: %w", f, err)
		}
	}
	return nil
}

// Load reads the config file at path, then applies environment overrides.
// A missing file yields the defaults. The file is never written.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, errors.Errorf("could not parse config file %s, reason: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, errors.Errorf("could not read config file %s, reason: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	var err error
	if v, ok := lookupEnv(EnvFPS); ok {
		c.FPS, err = strconv.Atoi(v)
		if err != nil {
			return errors.Errorf("invalid %s, reason: %w", EnvFPS, err)
		}
	}
	if v, ok := lookupEnv(EnvFPSStep); ok {
		c.FPSStep, err = strconv.Atoi(v)
		if err != nil {
			return errors.Errorf("invalid %s, reason: %w", EnvFPSStep, err)
		}
	}
	if v, ok := lookupEnv(EnvWarnThreshold); ok {
		c.WarnThreshold, err = strconv.ParseFloat(v, 64)
		if err != nil {
			return errors.Errorf("invalid %s, reason: %w", EnvWarnThreshold, err)
		}
	}
	if v, ok := lookupEnv(EnvCritThreshold); ok {
		c.CritThreshold, err = strconv.ParseFloat(v, 64)
		if err != nil {
			return errors.Errorf("invalid %s, reason: %w", EnvCritThreshold, err)
		}
	}
	if v, ok := lookupEnv(EnvSource); ok {
		c.Source = v
	}
	if v, ok := lookupEnv(EnvLogLevel); ok {
		c.LogLevel = v
	}
	return nil
}

func lookupEnv(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

// Normalize fills zero values with defaults and clamps the frame rate.
func (c *Config) Normalize() {
	def := Default()
	if c.FPS == 0 {
		c.FPS = def.FPS
	}
	c.FPS = int(model.ClampFPS(c.FPS))
	if c.FPSStep == 0 {
		c.FPSStep = def.FPSStep
	}
	if c.WarnThreshold == 0 && c.CritThreshold == 0 {
		c.WarnThreshold, c.CritThreshold = def.WarnThreshold, def.CritThreshold
	}
	c.Source = strings.ToLower(strings.TrimSpace(c.Source))
	if c.Source == "" {
		c.Source = def.Source
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
}

func (c *Config) Validate() error {
	var err error
	if c.FPSStep < 1 || c.FPSStep > maxFPSStep {
		err = errors.NewMultiError(err, errors.Newf("fps_step must be between 1 and %d, got %d", maxFPSStep, c.FPSStep))
	}
	if c.WarnThreshold <= 0 || c.WarnThreshold > c.CritThreshold || c.CritThreshold > 100 {
		err = errors.NewMultiError(err, errors.Newf("thresholds must satisfy 0 < warn <= crit <= 100, got warn=%g crit=%g", c.WarnThreshold, c.CritThreshold))
	}
	known := false
	for _, s := range monitor.Sources {
		if c.Source == s {
			known = true
		}
	}
	if !known {
		err = errors.NewMultiError(err, errors.Newf("unknown source \"%s\", expected one of %s", c.Source, strings.Join(monitor.Sources, ", ")))
	}
	return err
}

func (c *Config) Thresholds() model.Thresholds {
	return model.Thresholds{Warn: c.WarnThreshold, Crit: c.CritThreshold}
}

func (c *Config) TraceConfig() model.TraceConfig {
	tc := model.DefaultTraceConfig()
	tc.FPS = model.ClampFPS(c.FPS)
	tc.FPSStep = c.FPSStep
	tc.Thresholds = c.Thresholds()
	return tc
}
