// Package config handles tool configuration: compiled defaults, an optional
// YAML file, then environment overrides.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/shiho2717/silence-fade-system/internal/errors"
)

type Config struct {
	// Audio capture
	SampleRate    int     `yaml:"sample_rate" env:"SILENCEFADE_SAMPLE_RATE"`
	CheckInterval float64 `yaml:"check_interval" env:"SILENCEFADE_CHECK_INTERVAL"` // seconds; loudness window and tick length
	ThresholdDB   float64 `yaml:"threshold_db" env:"SILENCEFADE_THRESHOLD_DB"`     // below this the window counts as silent

	// Fade dynamics
	FadeStartDelay float64 `yaml:"fade_start_delay" env:"SILENCEFADE_FADE_START_DELAY"` // seconds of silence before dimming
	FadeOutStep    float64 `yaml:"fade_out_step" env:"SILENCEFADE_FADE_OUT_STEP"`       // per silent tick
	FadeInStep     float64 `yaml:"fade_in_step" env:"SILENCEFADE_FADE_IN_STEP"`         // per active tick
	MinGlow        float64 `yaml:"min_glow" env:"SILENCEFADE_MIN_GLOW"`
	MaxGlow        float64 `yaml:"max_glow" env:"SILENCEFADE_MAX_GLOW"`

	// Puppeteer connection
	Host            string `yaml:"host" env:"SILENCEFADE_HOST"`
	Port            int    `yaml:"port" env:"SILENCEFADE_PORT"`
	PluginName      string `yaml:"plugin_name" env:"SILENCEFADE_PLUGIN_NAME"`
	PluginDeveloper string `yaml:"plugin_developer" env:"SILENCEFADE_PLUGIN_DEVELOPER"`
	AuthToken       string `yaml:"auth_token" env:"SILENCEFADE_AUTH_TOKEN"`
	AuthTokenFile   string `yaml:"auth_token_file" env:"SILENCEFADE_AUTH_TOKEN_FILE"`
	ParameterID     string `yaml:"parameter_id" env:"SILENCEFADE_PARAMETER_ID"`

	// Loop pacing
	RestInterval float64 `yaml:"rest_interval" env:"SILENCEFADE_REST_INTERVAL"` // seconds slept after each tick
}

// Default returns the compiled-in configuration.
func Default() *Config {
	return &Config{
		SampleRate:      16000,
		CheckInterval:   0.1,
		ThresholdDB:     -55.0,
		FadeStartDelay:  10.0,
		FadeOutStep:     0.007,
		FadeInStep:      0.6,
		MinGlow:         0.0,
		MaxGlow:         1.0,
		Host:            "localhost",
		Port:            8001,
		PluginName:      "SilenceFadeSystem",
		PluginDeveloper: "Shiho",
		ParameterID:     "Param_EyeGlow",
		RestInterval:    0.01,
	}
}

// Load builds the configuration: defaults first, then the YAML file at
// path (skipped when path is empty), then environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeConfig, "read config file")
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrap(err, errors.CodeConfig, "parse config file")
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(err, errors.CodeConfig, "parse env")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the capture loop or protocol cannot run with.
func (c *Config) Validate() error {
	if c.SampleRate <= 0 {
		return errors.Newf(errors.CodeConfig, "sample_rate must be positive, got %d", c.SampleRate)
	}
	if c.CheckInterval <= 0 {
		return errors.Newf(errors.CodeConfig, "check_interval must be positive, got %g", c.CheckInterval)
	}
	if c.FadeStartDelay < 0 {
		return errors.Newf(errors.CodeConfig, "fade_start_delay must not be negative, got %g", c.FadeStartDelay)
	}
	if c.FadeOutStep <= 0 {
		return errors.Newf(errors.CodeConfig, "fade_out_step must be positive, got %g", c.FadeOutStep)
	}
	if c.FadeInStep <= 0 {
		return errors.Newf(errors.CodeConfig, "fade_in_step must be positive, got %g", c.FadeInStep)
	}
	if c.MinGlow >= c.MaxGlow {
		return errors.Newf(errors.CodeConfig, "min_glow %g must be below max_glow %g", c.MinGlow, c.MaxGlow)
	}
	if c.Host == "" {
		return errors.New(errors.CodeConfig, "host must not be empty")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return errors.Newf(errors.CodeConfig, "port %d out of range", c.Port)
	}
	if c.PluginName == "" {
		return errors.New(errors.CodeConfig, "plugin_name must not be empty")
	}
	if c.ParameterID == "" {
		return errors.New(errors.CodeConfig, "parameter_id must not be empty")
	}
	if c.RestInterval < 0 {
		return errors.Newf(errors.CodeConfig, "rest_interval must not be negative, got %g", c.RestInterval)
	}
	return nil
}

// Window returns the loudness window (and tick) length.
func (c *Config) Window() time.Duration {
	return time.Duration(c.CheckInterval * float64(time.Second))
}

// StartDelay returns the silence grace period before dimming begins.
func (c *Config) StartDelay() time.Duration {
	return time.Duration(c.FadeStartDelay * float64(time.Second))
}

// Rest returns the residual sleep applied after each tick.
func (c *Config) Rest() time.Duration {
	return time.Duration(c.RestInterval * float64(time.Second))
}

// Endpoint returns the puppeteer WebSocket URL.
func (c *Config) Endpoint() string {
	return fmt.Sprintf("ws://%s:%d", c.Host, c.Port)
}

// ResolveToken returns the auth token: the inline value when set,
// otherwise the trimmed contents of AuthTokenFile. Empty when neither
// is configured, which disables pushing.
func (c *Config) ResolveToken() (string, error) {
	if c.AuthToken != "" {
		return c.AuthToken, nil
	}
	if c.AuthTokenFile == "" {
		return "", nil
	}
	data, err := os.ReadFile(c.AuthTokenFile)
	if err != nil {
		return "", errors.Wrap(err, errors.CodeConfig, "read auth token file")
	}
	return strings.TrimSpace(string(data)), nil
}
