package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

const timeFormat = "060102 15:04:05.000"

// ParseLevel maps a config string to a slog level. Unknown values fall back
// to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "trace":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "critical":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New returns a tint-backed logger writing to w. Colors are only used when
// requested and w is a terminal.
func New(w io.Writer, level string, color bool) *slog.Logger {
	noColor := !color
	if f, ok := w.(*os.File); !ok || !isatty.IsTerminal(f.Fd()) {
		noColor = true
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		AddSource:  true,
		Level:      ParseLevel(level),
		TimeFormat: timeFormat,
		NoColor:    noColor,
	}))
}

// Setup installs a stdout logger as the process default.
func Setup(level string, color bool) *slog.Logger {
	logger := New(os.Stdout, level, color)
	slog.SetDefault(logger)
	return logger
}
