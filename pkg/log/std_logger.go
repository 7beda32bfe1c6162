package log

import (
	"fmt"
	"io"
	stdlog "log"
	"os"
	"strings"
	"sync"
)

var _ Logger = (*StdLogger)(nil)

// StdLogger writes leveled lines through the standard library logger.
type StdLogger struct {
	*stdlog.Logger
	mu sync.RWMutex

	logLevel Level
}

func NewStdLogger(out io.Writer, opts *options) *StdLogger {
	prefix := opts.Prefix
	if prefix != "" && !strings.HasSuffix(prefix, " ") {
		prefix += " "
	}

	return &StdLogger{
		Logger:   stdlog.New(out, prefix, stdlog.Ldate|stdlog.Ltime|stdlog.Lmicroseconds|stdlog.LUTC|stdlog.Lmsgprefix),
		logLevel: opts.Level,
	}
}

var levelTags = map[Level]string{
	LevelDebug:   "DEBUG: ",
	LevelInfo:    "INFO: ",
	LevelWarning: "WARNING: ",
	LevelError:   "ERROR: ",
	LevelFatal:   "FATAL: ",
}

func (l *StdLogger) Debug(args ...interface{})   { l.print(LevelDebug, args...) }
func (l *StdLogger) Debugln(args ...interface{}) { l.println(LevelDebug, args...) }
func (l *StdLogger) Debugf(format string, args ...interface{}) {
	l.print(LevelDebug, fmt.Sprintf(format, args...))
}

func (l *StdLogger) Info(args ...interface{})   { l.print(LevelInfo, args...) }
func (l *StdLogger) Infoln(args ...interface{}) { l.println(LevelInfo, args...) }
func (l *StdLogger) Infof(format string, args ...interface{}) {
	l.print(LevelInfo, fmt.Sprintf(format, args...))
}

func (l *StdLogger) Warning(args ...interface{})   { l.print(LevelWarning, args...) }
func (l *StdLogger) Warningln(args ...interface{}) { l.println(LevelWarning, args...) }
func (l *StdLogger) Warningf(format string, args ...interface{}) {
	l.print(LevelWarning, fmt.Sprintf(format, args...))
}

func (l *StdLogger) Error(args ...interface{})   { l.print(LevelError, args...) }
func (l *StdLogger) Errorln(args ...interface{}) { l.println(LevelError, args...) }
func (l *StdLogger) Errorf(format string, args ...interface{}) {
	l.print(LevelError, fmt.Sprintf(format, args...))
}

func (l *StdLogger) Fatal(args ...interface{}) {
	l.print(LevelFatal, args...)
	os.Exit(1)
}

func (l *StdLogger) Fatalln(args ...interface{}) {
	l.println(LevelFatal, args...)
	os.Exit(1)
}

func (l *StdLogger) Fatalf(format string, args ...interface{}) {
	l.Fatal(fmt.Sprintf(format, args...))
}

func (l *StdLogger) Level() Level {
	l.mu.RLock()
	v := l.logLevel
	l.mu.RUnlock()
	return v
}

func (l *StdLogger) SetLevel(level Level) {
	l.mu.Lock()
	l.logLevel = level
	l.mu.Unlock()
}

// V reports whether messages at level would be written.
func (l *StdLogger) V(level int) bool {
	return l.canLogAt(Level(level))
}

func (l *StdLogger) Flush() error {
	return nil
}

func (l *StdLogger) print(level Level, args ...interface{}) {
	if !l.canLogAt(level) {
		return
	}
	l.Print(append([]interface{}{levelTags[level]}, args...)...)
}

func (l *StdLogger) println(level Level, args ...interface{}) {
	if !l.canLogAt(level) {
		return
	}
	l.Println(append([]interface{}{strings.TrimSpace(levelTags[level])}, args...)...)
}

func (l *StdLogger) canLogAt(v Level) bool {
	return v >= l.Level()
}
