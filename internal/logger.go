package internal

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

const (
	LogFormatText = "text"
	LogFormatJSON = "json"

	// componentField tags entries written on behalf of a subsystem, such as the
	// completion HTTP client.
	componentField = "component"
)

var (
	once   sync.Once
	logger *logrus.Logger
)

// GetLogger returns the process-wide logger. It starts as an info-level text
// logger on stdout; SetLogLevel and SetLogFormat adjust it once config is loaded.
func GetLogger() *logrus.Logger {
	once.Do(func() {
		logger = logrus.New()
		logger.Out = os.Stdout
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(newFormatter(LogFormatText))
	})

	return logger
}

func SetLogLevel(level logrus.Level) {
	GetLogger().SetLevel(level)
}

// SetLogFormat switches between human-readable text and one JSON object per
// line. JSON keeps the request logger's fields machine-readable.
func SetLogFormat(format string) error {
	switch strings.ToLower(format) {
	case "", LogFormatText:
		GetLogger().SetFormatter(newFormatter(LogFormatText))
	case LogFormatJSON:
		GetLogger().SetFormatter(newFormatter(LogFormatJSON))
	default:
		return fmt.Errorf("unknown log format %q", format)
	}
	return nil
}

// SetLogOutput redirects the logger, mostly so tests can capture entries.
func SetLogOutput(w io.Writer) {
	GetLogger().SetOutput(w)
}

func newFormatter(format string) logrus.Formatter {
	if format == LogFormatJSON {
		return &logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyMsg: "message",
			},
		}
	}
	return &logrus.TextFormatter{
		FullTimestamp: true,
		PadLevelText:  true,
	}
}

// LeveledLogger is the key/value logger interface retryablehttp accepts.
type LeveledLogger interface {
	Error(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

var _ LeveledLogger = &LeveledLogrus{}

// LeveledLogrus adapts a logrus logger to LeveledLogger, tagging every entry
// with the component it logs for.
type LeveledLogrus struct {
	entry *logrus.Entry
}

func NewLeveledLogrus(logger *logrus.Logger, component string) *LeveledLogrus {
	return &LeveledLogrus{
		entry: logger.WithField(componentField, component),
	}
}

// fields pairs up keysAndValues. A trailing key without a value and
// non-string keys are skipped.
func (l *LeveledLogrus) fields(keysAndValues ...interface{}) logrus.Fields {
	fields := make(logrus.Fields, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		if key, ok := keysAndValues[i].(string); ok {
			fields[key] = keysAndValues[i+1]
		}
	}
	return fields
}

func (l *LeveledLogrus) Error(msg string, keysAndValues ...interface{}) {
	l.entry.WithFields(l.fields(keysAndValues...)).Error(msg)
}

func (l *LeveledLogrus) Info(msg string, keysAndValues ...interface{}) {
	l.entry.WithFields(l.fields(keysAndValues...)).Info(msg)
}

func (l *LeveledLogrus) Warn(msg string, keysAndValues ...interface{}) {
	l.entry.WithFields(l.fields(keysAndValues...)).Warn(msg)
}

// Debug is used by retryablehttp for every request attempt, so it is logged at trace.
func (l *LeveledLogrus) Debug(msg string, keysAndValues ...interface{}) {
	l.entry.WithFields(l.fields(keysAndValues...)).Trace(msg)
}
