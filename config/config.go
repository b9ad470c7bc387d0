// Package config loads runtime settings from .env and the environment.
package config

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"avquoter/services"
)

type Config struct {
	Env               string  `mapstructure:"QUOTER_ENV"`
	LogLevel          string  `mapstructure:"QUOTER_LOG_LEVEL"`
	OutputDir         string  `mapstructure:"QUOTER_OUTPUT_DIR"`
	Pricelist         string  `mapstructure:"QUOTER_PRICELIST"`
	Signatory         string  `mapstructure:"QUOTER_SIGNATORY"`
	DataDir           string  `mapstructure:"QUOTER_DATA_DIR"`
	BookingPanelPrice float64 `mapstructure:"QUOTER_BOOKING_PANEL_PRICE"`
}

// Load reads .env (if present) and the environment. Environment variables
// win over the file.
func Load() (Config, error) {
	return load(".env")
}

func load(envFile string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(envFile)
	v.SetConfigType("env")
	v.AutomaticEnv()
	_ = v.ReadInConfig()

	v.SetDefault("QUOTER_ENV", "dev")
	v.SetDefault("QUOTER_LOG_LEVEL", "info")
	v.SetDefault("QUOTER_OUTPUT_DIR", services.DefaultOutputDir())
	v.SetDefault("QUOTER_PRICELIST", "")
	v.SetDefault("QUOTER_SIGNATORY", services.DefaultSignatory)
	v.SetDefault("QUOTER_DATA_DIR", "pb_data")
	v.SetDefault("QUOTER_BOOKING_PANEL_PRICE", services.DefaultBookingPanelPrice.InexactFloat64())

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// IsProduction reports whether logs should be emitted as JSON.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "prod") || strings.EqualFold(c.Env, "production")
}

// NewLogger builds the application logger. Development environments get a
// human readable console writer; production writes JSON lines to w.
func NewLogger(cfg Config, w io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}

	out := w
	if !cfg.IsProduction() {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: true}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Str("service", "avquoter").Logger()
}
