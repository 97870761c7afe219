package configs

import (
	"io"
	"log/slog"
	"strings"
)

// Logger configures the service's slog output.
type Logger struct {
	// Level is one of debug, info, warn or error. Anything else means info.
	Level string `env:"LEVEL" envDefault:"info"`
	// Format is text or json. Anything else means text.
	Format string `env:"FORMAT" envDefault:"text"`
	// Source adds the calling file and line to each record.
	Source bool `env:"SOURCE"`
}

// SlogLevel returns the configured minimum level.
func (c Logger) SlogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SlogFormat returns "json" or "text".
func (c Logger) SlogFormat() string {
	if strings.EqualFold(c.Format, "json") {
		return "json"
	}
	return "text"
}

// New builds a logger writing to w. attrs are attached to every record,
// e.g. the deployment environment.
func (c Logger) New(w io.Writer, attrs ...slog.Attr) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.SlogLevel(), AddSource: c.Source}
	var h slog.Handler
	if c.SlogFormat() == "json" {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	if len(attrs) > 0 {
		h = h.WithAttrs(attrs)
	}
	return slog.New(h)
}
