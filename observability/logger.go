// Package observability wires zerolog to the runtime value renderer.
package observability

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/najoast/sngofmt/config"
	"github.com/najoast/sngofmt/core"
	"github.com/najoast/sngofmt/stringify"
)

// InitLogger builds the process logger from cfg and installs it as the
// zerolog global logger. The configured level is applied globally so that
// Reconfigure can change it later. The returned closer releases a log
// file, if any.
func InitLogger(app string, node core.NodeID, cfg config.LogConfig) (zerolog.Logger, io.Closer, error) {
	out, closer, err := openOutput(cfg.Output)
	if err != nil {
		return zerolog.Nop(), nil, err
	}

	if cfg.Format != "json" {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
			NoColor:    !cfg.Color,
		}
	}

	ctx := zerolog.New(out).With().
		Timestamp().
		Str("app", app).
		Str("node", stringify.NodeID(node))
	for k, v := range cfg.Fields {
		ctx = ctx.Str(k, v)
	}

	zerolog.SetGlobalLevel(ParseLevel(cfg.Level))
	logger := ctx.Logger()
	log.Logger = logger
	return logger, closer, nil
}

// ParseLevel maps a configured level to zerolog, defaulting to info.
func ParseLevel(level config.LogLevel) zerolog.Level {
	lvl, err := zerolog.ParseLevel(string(level))
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func openOutput(output string) (io.Writer, io.Closer, error) {
	switch output {
	case "", "stdout":
		return os.Stdout, nopCloser{}, nil
	case "stderr":
		return os.Stderr, nopCloser{}, nil
	default:
		f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log output %s: %w", output, err)
		}
		return f, f, nil
	}
}
