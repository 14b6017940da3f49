// Package logging настраивает структурированный журнал (log/slog).
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

type Config struct {
	// debug | info | warn | error
	Level string `yaml:"level"`
	// text | json
	Format string `yaml:"format"`
}

func DefaultConfig() Config {
	return Config{Level: "info", Format: "text"}
}

// ParseLevel переводит строковый уровень в slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("неизвестный уровень журнала %q", s)
	}
}

// New создаёт логгер, пишущий в w.
func New(cfg Config, w io.Writer) (*slog.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "", "text":
		handler = slog.NewTextHandler(w, opts)
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("неизвестный формат журнала %q", cfg.Format)
	}
	return slog.New(handler), nil
}
