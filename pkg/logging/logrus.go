package logging

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// LogrusLogger implements Logger on top of a logrus entry.
type LogrusLogger struct {
	entry *logrus.Entry
}

func NewLogrusLogger(l *logrus.Logger) *LogrusLogger {
	return &LogrusLogger{entry: logrus.NewEntry(l)}
}

// New builds a logger writing to out. format is "json" or "text".
func New(level, format string, out io.Writer) (*LogrusLogger, error) {
	l := logrus.New()
	l.SetOutput(out)

	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	l.SetLevel(lvl)

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	case "text":
		l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	return NewLogrusLogger(l), nil
}

// Nop returns a logger that discards everything.
func Nop() *LogrusLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return NewLogrusLogger(l)
}

func (l *LogrusLogger) Debug(ctx context.Context, msg string, args ...any) {
	l.at(ctx, args).Debug(msg)
}

func (l *LogrusLogger) Info(ctx context.Context, msg string, args ...any) {
	l.at(ctx, args).Info(msg)
}

func (l *LogrusLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.at(ctx, args).Warn(msg)
}

func (l *LogrusLogger) Error(ctx context.Context, msg string, args ...any) {
	l.at(ctx, args).Error(msg)
}

func (l *LogrusLogger) With(args ...any) Logger {
	return &LogrusLogger{entry: l.entry.WithFields(fields(args))}
}

func (l *LogrusLogger) at(ctx context.Context, args []any) *logrus.Entry {
	e := l.entry
	if ctx != nil {
		e = e.WithContext(ctx)
	}
	if len(args) > 0 {
		e = e.WithFields(fields(args))
	}
	return e
}

// fields turns key–value pairs into logrus fields. A trailing key without a
// value is kept under "!BADKEY", like slog does.
func fields(args []any) logrus.Fields {
	out := make(logrus.Fields, len(args)/2+1)
	for i := 0; i < len(args); i += 2 {
		if i+1 >= len(args) {
			out["!BADKEY"] = args[i]
			break
		}
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprint(args[i])
		}
		val := args[i+1]
		if err, isErr := val.(error); isErr {
			val = err.Error()
		}
		out[key] = val
	}
	return out
}
