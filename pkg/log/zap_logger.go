package log

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var _ Logger = (*ZapLogger)(nil)

const (
	defaultMaxSizeMB  = 100
	defaultMaxBackups = 3
	defaultMaxAgeDays = 7
)

type ZapLogger struct {
	sugar *zap.SugaredLogger
	level zap.AtomicLevel

	mu       sync.RWMutex
	logLevel Level
}

func NewZapLogger(opts *options) (*ZapLogger, error) {
	level := zap.NewAtomicLevelAt(toZapLevel(opts.Level))

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if strings.ToLower(opts.Format) == "json" {
		encoder = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encCfg)
	}

	var cores []zapcore.Core
	if opts.Writer != nil {
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(opts.Writer), level))
	} else {
		outputs := opts.Outputs
		if len(outputs) == 0 {
			outputs = []string{"stderr"}
		}

		for _, out := range outputs {
			cores = append(cores, zapcore.NewCore(encoder, writeSyncer(out), level))
		}
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1))
	if opts.Prefix != "" {
		logger = logger.Named(strings.TrimSpace(opts.Prefix))
	}

	return &ZapLogger{
		sugar:    logger.Sugar(),
		level:    level,
		logLevel: opts.Level,
	}, nil
}

func writeSyncer(out string) zapcore.WriteSyncer {
	switch strings.ToLower(out) {
	case "stdout":
		return zapcore.AddSync(os.Stdout)
	case "stderr":
		return zapcore.AddSync(os.Stderr)
	default:
		return zapcore.AddSync(&lumberjack.Logger{
			Filename:   out,
			MaxSize:    defaultMaxSizeMB,
			MaxBackups: defaultMaxBackups,
			MaxAge:     defaultMaxAgeDays,
		})
	}
}

func toZapLevel(l Level) zapcore.Level {
	switch l {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelWarning:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	case LevelFatal:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

func (l *ZapLogger) Debug(args ...interface{}) { l.sugar.Debug(args...) }

func (l *ZapLogger) Debugf(format string, args ...interface{}) { l.sugar.Debugf(format, args...) }

func (l *ZapLogger) Debugln(args ...interface{}) { l.sugar.Debug(args...) }

func (l *ZapLogger) Info(args ...interface{}) { l.sugar.Info(args...) }

func (l *ZapLogger) Infof(format string, args ...interface{}) { l.sugar.Infof(format, args...) }

func (l *ZapLogger) Infoln(args ...interface{}) { l.sugar.Info(args...) }

func (l *ZapLogger) Warning(args ...interface{}) { l.sugar.Warn(args...) }

func (l *ZapLogger) Warningf(format string, args ...interface{}) { l.sugar.Warnf(format, args...) }

func (l *ZapLogger) Warningln(args ...interface{}) { l.sugar.Warn(args...) }

func (l *ZapLogger) Error(args ...interface{}) { l.sugar.Error(args...) }

func (l *ZapLogger) Errorf(format string, args ...interface{}) { l.sugar.Errorf(format, args...) }

func (l *ZapLogger) Errorln(args ...interface{}) { l.sugar.Error(args...) }

func (l *ZapLogger) Fatal(args ...interface{}) { l.sugar.Fatal(args...) }

func (l *ZapLogger) Fatalf(format string, args ...interface{}) { l.sugar.Fatalf(format, args...) }

func (l *ZapLogger) Fatalln(args ...interface{}) { l.sugar.Fatal(args...) }

func (l *ZapLogger) Level() Level {
	l.mu.RLock()
	v := l.logLevel
	l.mu.RUnlock()
	return v
}

func (l *ZapLogger) SetLevel(level Level) {
	l.mu.Lock()
	l.logLevel = level
	l.level.SetLevel(toZapLevel(level))
	l.mu.Unlock()
}

func (l *ZapLogger) V(level int) bool {
	return Level(level) >= l.Level()
}

func (l *ZapLogger) Flush() error {
	return l.sugar.Sync()
}
