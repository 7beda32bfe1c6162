package log

import (
	"fmt"
	"io"
	"os"
	"strings"
)

type Logger interface {
	Debug(args ...interface{})
	Debugf(format string, args ...interface{})
	Debugln(args ...interface{})

	Info(args ...interface{})
	Infof(format string, args ...interface{})
	Infoln(args ...interface{})

	Warning(args ...interface{})
	Warningf(format string, args ...interface{})
	Warningln(args ...interface{})

	Error(args ...interface{})
	Errorf(format string, args ...interface{})
	Errorln(args ...interface{})

	Fatal(args ...interface{})
	Fatalf(format string, args ...interface{})
	Fatalln(args ...interface{})

	Level() Level
	SetLevel(level Level)
	V(level int) bool
	Flush() error
}

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
	LevelFatal
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	case LevelFatal:
		return "fatal"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarning, nil
	case "error":
		return LevelError, nil
	case "fatal":
		return LevelFatal, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level: %s", s)
	}
}

const (
	TypeStd = "std"
	TypeZap = "zap"
)

type options struct {
	Level   Level
	Prefix  string
	Format  string
	Outputs []string
	Writer  io.Writer

	levelErr error
}

type Option func(*options)

// WithLevel sets the minimum level; an unknown name makes NewLogger fail.
func WithLevel(level string) Option {
	return func(o *options) {
		o.Level, o.levelErr = ParseLevel(level)
	}
}

func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.Prefix = prefix
	}
}

// WithFormat selects "console" or "json" encoding. Only the zap logger uses it.
func WithFormat(format string) Option {
	return func(o *options) {
		o.Format = format
	}
}

// WithOutputs lists "stdout", "stderr" or file paths. Only the zap logger
// uses it; file paths are rotated.
func WithOutputs(outputs ...string) Option {
	return func(o *options) {
		o.Outputs = outputs
	}
}

// WithOutput writes to w instead of the configured outputs.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.Writer = w
	}
}

func NewLogger(typ string, opts ...Option) (Logger, error) {
	o := &options{Level: LevelInfo}
	for _, opt := range opts {
		opt(o)
	}

	if o.levelErr != nil {
		return nil, o.levelErr
	}

	switch strings.ToLower(typ) {
	case "", TypeStd:
		out := o.Writer
		if out == nil {
			out = os.Stderr
		}
		return NewStdLogger(out, o), nil
	case TypeZap:
		return NewZapLogger(o)
	default:
		return nil, fmt.Errorf("unknown logger type: %s", typ)
	}
}
