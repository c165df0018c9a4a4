package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the printf-style logger shared by every layer of the service.
type Logger struct {
	entry *logrus.Entry
}

// New returns a Logger writing text records with full timestamps to stdout.
func New() *Logger {
	return NewWithOutput(os.Stdout, "info")
}

// NewWithOutput builds a Logger on its own logrus instance. Unknown levels fall
// back to info.
func NewWithOutput(out io.Writer, level string) *Logger {
	base := logrus.New()
	base.SetOutput(out)

	formatter := new(logrus.TextFormatter)
	formatter.TimestampFormat = "2006-01-02 15:04:05"
	formatter.FullTimestamp = true
	base.SetFormatter(formatter)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	base.SetLevel(lvl)

	return &Logger{entry: logrus.NewEntry(base)}
}

// WithField returns a child logger that adds key=value to every record.
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{entry: l.entry.WithField(key, value)}
}

func (l *Logger) Debug(format string, v ...interface{}) {
	l.entry.Debugf(format, v...)
}

func (l *Logger) Info(format string, v ...interface{}) {
	l.entry.Infof(format, v...)
}

func (l *Logger) Warn(format string, v ...interface{}) {
	l.entry.Warnf(format, v...)
}

func (l *Logger) Error(format string, v ...interface{}) {
	l.entry.Errorf(format, v...)
}
