package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Output formats accepted by New.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatZap  = "zap"
)

// Options selects how New builds a Logger.
type Options struct {
	Level  string // debug, info, warn, error
	Format string // text, json or zap
	File   string // optional extra destination, appended to
}

// New builds a Logger writing to w, and additionally to opts.File when set.
// The returned close function releases the file and flushes buffers; it is
// never nil.
func New(opts Options, w io.Writer) (Logger, func() error, error) {
	var file *os.File
	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		file = f
	}
	closeFile := func() error {
		if file == nil {
			return nil
		}
		return file.Close()
	}

	switch opts.Format {
	case FormatZap:
		lvl, err := zapcore.ParseLevel(levelOrDefault(opts.Level))
		if err != nil {
			_ = closeFile()
			return nil, nil, fmt.Errorf("parse log level: %w", err)
		}
		sinks := []zapcore.WriteSyncer{zapcore.AddSync(w)}
		if file != nil {
			sinks = append(sinks, zapcore.AddSync(file))
		}
		core := zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.NewMultiWriteSyncer(sinks...),
			lvl,
		)
		zl := NewZapLogger(zap.New(core))
		return zl, func() error {
			_ = zl.Sync()
			return closeFile()
		}, nil

	case FormatText, FormatJSON, "":
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(levelOrDefault(opts.Level))); err != nil {
			_ = closeFile()
			return nil, nil, fmt.Errorf("parse log level: %w", err)
		}
		ho := &slog.HandlerOptions{Level: lvl}
		handlers := []slog.Handler{newSlogHandler(opts.Format, w, ho)}
		if file != nil {
			handlers = append(handlers, slog.NewJSONHandler(file, ho))
		}
		var h slog.Handler = handlers[0]
		if len(handlers) > 1 {
			h = NewMultiHandler(handlers...)
		}
		return NewSlogLogger(slog.New(h)), closeFile, nil

	default:
		_ = closeFile()
		return nil, nil, fmt.Errorf("unknown log format %q", opts.Format)
	}
}

func newSlogHandler(format string, w io.Writer, ho *slog.HandlerOptions) slog.Handler {
	if format == FormatJSON {
		return slog.NewJSONHandler(w, ho)
	}
	return slog.NewTextHandler(w, ho)
}

func levelOrDefault(level string) string {
	if level == "" {
		return "info"
	}
	return level
}
