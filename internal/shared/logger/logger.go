// Package logger builds the structured logger handed to every component.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/term"

	"github.com/hotline-inc/hotline/internal/shared/config"
)

// New builds a logger from cfg. In debug server mode every record carries
// its source location; otherwise only warnings and errors do.
func New(cfg config.LoggerConfig, serverMode string) (Interface, io.Closer, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}

	writer, closer, err := openOutput(cfg.OutputPath)
	if err != nil {
		return nil, nil, err
	}

	sourceLevel := slog.LevelWarn
	if serverMode == "debug" {
		sourceLevel = slog.LevelDebug
	}

	var base slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		base = slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: level})
	} else {
		base = tint.NewHandler(writer, &tint.Options{
			Level:       level,
			TimeFormat:  time.DateTime,
			NoColor:     !isTerminal(writer),
			ReplaceAttr: replaceErrorAttr,
		})
	}

	return FromSlog(slog.New(NewSourceHandler(base, sourceLevel))), closer, nil
}

// ParseLevel maps a config level name to a slog level. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func openOutput(path string) (io.Writer, io.Closer, error) {
	switch strings.ToLower(path) {
	case "stdout", "":
		return os.Stdout, nopCloser{}, nil
	case "stderr":
		return os.Stderr, nopCloser{}, nil
	default:
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log output %s: %w", path, err)
		}
		return file, file, nil
	}
}

func replaceErrorAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Key == "error" && a.Value.Kind() == slog.KindAny {
		if err, ok := a.Value.Any().(error); ok {
			return tint.Err(err)
		}
	}
	return a
}

func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// NewConsole returns a colourised info-level logger on stderr, used by CLI
// commands before the configuration is loaded.
func NewConsole() Interface {
	base := tint.NewHandler(os.Stderr, &tint.Options{
		Level:       slog.LevelInfo,
		TimeFormat:  time.DateTime,
		NoColor:     !isTerminal(os.Stderr),
		ReplaceAttr: replaceErrorAttr,
	})
	return FromSlog(slog.New(NewSourceHandler(base, slog.LevelWarn)))
}

// NewNop returns a logger that discards everything.
func NewNop() Interface {
	return FromSlog(slog.New(slog.DiscardHandler))
}
