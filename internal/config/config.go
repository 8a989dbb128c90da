// Package config reads process settings from the environment, after loading
// any .env file present in the working directory.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	APIBaseURL string        `env:"API_BASE_URL" envDefault:"http://127.0.0.1:8000/api/v1"`
	APITimeout time.Duration `env:"API_TIMEOUT" envDefault:"10s"`

	UIAddr      string `env:"UI_ADDR" envDefault:":8080"`
	BackendAddr string `env:"BACKEND_ADDR" envDefault:":8000"`
	DBPath      string `env:"DB_PATH" envDefault:"employees.db"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	EmailDomainCO  string `env:"EMAIL_DOMAIN_CO" envDefault:"cidenet.com.co"`
	EmailDomainUS  string `env:"EMAIL_DOMAIN_US" envDefault:"cidenet.com.us"`
	HireWindowDays int    `env:"HIRE_WINDOW_DAYS" envDefault:"30"`
}

// LoadEnv loads each of files that exists and reports how many it loaded.
// Variables already set in the process win over file values.
func LoadEnv(files ...string) int {
	n := 0
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			slog.Warn("error loading env file", "file", f, "err", err)
			continue
		}
		n++
	}
	return n
}

// Load reads .env if present and parses the environment.
func Load() (Config, error) {
	if LoadEnv(".env") == 0 {
		slog.Debug("no .env file loaded")
	}
	return Parse()
}

// Parse reads the current environment only.
func Parse() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return c, fmt.Errorf("config: %w", err)
	}
	if c.HireWindowDays < 0 {
		return c, fmt.Errorf("config: HIRE_WINDOW_DAYS must not be negative, got %d", c.HireWindowDays)
	}
	if _, err := c.Level(); err != nil {
		return c, err
	}
	return c, nil
}

// Level maps LOG_LEVEL onto slog.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("config: LOG_LEVEL: %w", err)
	}
	return l, nil
}

// Logger builds the process logger writing to w.
func (c Config) Logger(w io.Writer) *slog.Logger {
	level, _ := c.Level()
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
