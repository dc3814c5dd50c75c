package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Fields mirrors logrus.Fields.
type Fields map[string]interface{}

// Log is the process logger. It embeds *logrus.Logger, so SetOutput,
// SetLevel and SetFormatter are available directly.
type Log struct {
	*logrus.Logger
}

// Entry is a Log with fields attached.
type Entry struct {
	*logrus.Entry
}

// Options selects level, format and destination for Configure.
type Options struct {
	Level  string
	Format string
	// Output is stderr, stdout or a file path. Files rotate when MaxAge > 0.
	Output string
	MaxAge int
	// Fields are added to every entry.
	Fields Fields
}

// logFileMaxSizeMB is the lumberjack rotation size.
const logFileMaxSizeMB = 100

var globalLogger = Logger()

func callerPrettyfier(f *runtime.Frame) (string, string) {
	return "", fmt.Sprintf("%s:%d", filepath.Base(f.File), f.Line)
}

func jsonFormatter() *logrus.JSONFormatter {
	return &logrus.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
		CallerPrettyfier: callerPrettyfier,
	}
}

// parseLevel accepts the logrus level names plus "report", which logs at
// info and enables the periodic report.
func parseLevel(level string) (logrus.Level, error) {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "report" {
		return logrus.InfoLevel, nil
	}
	return logrus.ParseLevel(level)
}

func formatterFor(format string) (logrus.Formatter, error) {
	switch strings.ToLower(format) {
	case "json", "":
		return jsonFormatter(), nil
	case "text":
		return &logrus.TextFormatter{
			FullTimestamp:    true,
			TimestampFormat:  time.RFC3339,
			CallerPrettyfier: callerPrettyfier,
		}, nil
	}
	return nil, fmt.Errorf("invalid log format '%s'", format)
}

func outputFor(output string, maxAge int) (io.Writer, error) {
	switch output {
	case "stderr", "":
		return os.Stderr, nil
	case "stdout":
		return os.Stdout, nil
	}
	if maxAge > 0 {
		return &lumberjack.Logger{
			Filename: output,
			MaxAge:   maxAge,
			MaxSize:  logFileMaxSizeMB,
			Compress: true,
		}, nil
	}
	file, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file '%s': %w", output, err)
	}
	return file, nil
}

// Logger builds a JSON logger on stderr at LOG_LEVEL, or info when unset.
func Logger() *Log {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetReportCaller(true)
	l.SetFormatter(jsonFormatter())
	l.SetLevel(logrus.InfoLevel)
	if lvl, err := parseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		l.SetLevel(lvl)
	}
	l.AddHook(&callerHook{})
	return &Log{Logger: l}
}

func GetLogger() *Log {
	return globalLogger
}

// Configure applies opts. LOG_LEVEL, when set, wins over opts.Level.
func (l *Log) Configure(opts Options) error {
	level := opts.Level
	if env := os.Getenv("LOG_LEVEL"); env != "" {
		level = env
	}
	lvl, err := parseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level '%s'", level)
	}
	formatter, err := formatterFor(opts.Format)
	if err != nil {
		return err
	}
	out, err := outputFor(opts.Output, opts.MaxAge)
	if err != nil {
		return err
	}

	l.SetLevel(lvl)
	l.SetFormatter(formatter)
	l.SetOutput(out)
	if len(opts.Fields) > 0 {
		l.AddHook(&staticFieldsHook{fields: opts.Fields})
	}
	return nil
}

// staticFieldsHook adds fixed fields to entries that do not set them.
type staticFieldsHook struct {
	fields Fields
}

func (h *staticFieldsHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h *staticFieldsHook) Fire(entry *logrus.Entry) error {
	for k, v := range h.fields {
		if _, ok := entry.Data[k]; !ok {
			entry.Data[k] = v
		}
	}
	return nil
}

func (l *Log) entry() *Entry {
	return &Entry{Entry: logrus.NewEntry(l.Logger)}
}

func (l *Log) WithComponent(component string) *Entry { return l.entry().WithComponent(component) }
func (l *Log) WithFields(fields Fields) *Entry       { return l.entry().WithFields(fields) }
func (l *Log) WithError(err error) *Entry            { return l.entry().WithError(err) }

// WithEnv attaches the values of the named environment variables.
func (l *Log) WithEnv(names ...string) *Entry { return l.entry().WithEnv(names...) }

func (e *Entry) WithComponent(component string) *Entry {
	return &Entry{Entry: e.Entry.WithField("component", component)}
}

func (e *Entry) WithFields(fields Fields) *Entry {
	return &Entry{Entry: e.Entry.WithFields(logrus.Fields(fields))}
}

func (e *Entry) WithError(err error) *Entry {
	return &Entry{Entry: e.Entry.WithError(err)}
}

func (e *Entry) WithEnv(names ...string) *Entry {
	fields := make(Fields, len(names))
	for _, name := range names {
		fields[name] = os.Getenv(name)
	}
	return e.WithFields(fields)
}

func (e *Entry) component() (string, bool) {
	c, ok := e.Entry.Data["component"].(string)
	return c, ok
}

// Warn logs and counts the warning against the entry's component.
func (e *Entry) Warn(args ...interface{}) {
	if c, ok := e.component(); ok {
		recordWarn(c)
	}
	e.Entry.Warn(args...)
}

// Error logs and counts the error against the entry's component.
func (e *Entry) Error(args ...interface{}) {
	if c, ok := e.component(); ok {
		recordError(c)
	}
	e.Entry.Error(args...)
}

// Performance logs how long operation took, in milliseconds.
func (e *Entry) Performance(operation string, took time.Duration, fields Fields) {
	out := make(Fields, len(fields)+2)
	for k, v := range fields {
		out[k] = v
	}
	out["operation"] = operation
	out["duration_ms"] = float64(took.Microseconds()) / 1e3
	e.WithFields(out).Info("performance metric")
}

// DataFlow logs count records of kind moving from source to destination.
func (e *Entry) DataFlow(source, destination string, count int, kind string) {
	e.WithFields(Fields{
		"source":       source,
		"destination":  destination,
		"record_count": count,
		"data_type":    kind,
		"flow_type":    "data_flow",
	}).Info("data flow metric")
}
