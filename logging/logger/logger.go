package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/epoint/springlab/config"
	"github.com/epoint/springlab/ctxutil"
	"github.com/sirupsen/logrus"
)

// Key constants
const (
	VersionKey = "version"
	TraceKey   = ctxutil.TraceIDKey
)

const rotateEvery = 24 * time.Hour

// Logger wraps logrus with context-aware helpers.
type Logger struct {
	*logrus.Logger

	version string

	mu      sync.Mutex
	logFile *os.File
	logPath string
	stop    chan struct{}
}

var (
	standardLogger *Logger
	once           sync.Once
)

// NewLogger returns an unconfigured logger writing text to stderr.
func NewLogger() *Logger {
	l := &Logger{Logger: logrus.New()}
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return l
}

// StdLogger returns the process wide logger.
func StdLogger() *Logger {
	once.Do(func() {
		standardLogger = NewLogger()
	})
	return standardLogger
}

// New configures the standard logger.
func New(c *config.Logger) (func(), error) {
	return StdLogger().Init(c)
}

// SetVersion sets the version for logging
func (l *Logger) SetVersion(v string) {
	l.version = v
}

// Init applies c to the logger and returns a cleanup function that stops
// rotation and closes the log file.
func (l *Logger) Init(c *config.Logger) (func(), error) {
	if c == nil {
		return func() {}, nil
	}

	level, err := logrus.ParseLevel(c.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", c.Level, err)
	}
	l.SetLevel(level)

	switch c.Format {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	switch c.Output {
	case "stderr":
		l.SetOutput(os.Stderr)
	case "file":
		l.logPath = c.OutputFile
		if err := l.setupLogFile(); err != nil {
			return nil, err
		}
		l.stop = make(chan struct{})
		go l.periodicLogRotation(l.stop)
	default:
		l.SetOutput(os.Stdout)
	}

	hooks, err := searchHooks(c)
	if err != nil {
		l.closeFile()
		return nil, err
	}
	for _, hook := range hooks {
		l.AddHook(hook)
	}

	return l.closeFile, nil
}

// searchHooks returns a shipping hook for every configured search backend
func searchHooks(c *config.Logger) ([]logrus.Hook, error) {
	var hooks []logrus.Hook
	if c.Elasticsearch != nil && len(c.Elasticsearch.Addresses) > 0 {
		hook, err := NewElasticsearchHook(c.Elasticsearch, c.IndexName)
		if err != nil {
			return nil, err
		}
		hooks = append(hooks, hook)
	}
	if c.OpenSearch.Enabled() {
		hook, err := NewOpenSearchHook(c.OpenSearch, c.IndexName)
		if err != nil {
			return nil, err
		}
		hooks = append(hooks, hook)
	}
	if c.Meilisearch.Enabled() {
		hook, err := NewMeilisearchHook(c.Meilisearch, c.IndexName)
		if err != nil {
			return nil, err
		}
		hooks = append(hooks, hook)
	}
	return hooks, nil
}

func (l *Logger) setupLogFile() error {
	if err := os.MkdirAll(filepath.Dir(l.logPath), 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	return l.rotateLog(time.Now())
}

// logFileName returns <path without .log>.<date>.log
func (l *Logger) logFileName(t time.Time) string {
	return fmt.Sprintf("%s.%s.log", strings.TrimSuffix(l.logPath, ".log"), t.Format("2006-01-02"))
}

func (l *Logger) rotateLog(t time.Time) error {
	f, err := os.OpenFile(l.logFileName(t), os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	l.mu.Lock()
	old := l.logFile
	l.logFile = f
	l.SetOutput(f)
	l.mu.Unlock()

	if old != nil {
		_ = old.Close()
	}
	return nil
}

func (l *Logger) periodicLogRotation(stop <-chan struct{}) {
	ticker := time.NewTicker(rotateEvery)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			if err := l.rotateLog(now); err != nil {
				l.Logger.Errorf("Error rotating log: %v", err)
			}
		}
	}
}

func (l *Logger) closeFile() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.stop != nil {
		close(l.stop)
		l.stop = nil
	}
	if l.logFile != nil {
		l.SetOutput(os.Stdout)
		_ = l.logFile.Close()
		l.logFile = nil
	}
}

// entryFromContext creates a new log entry with fields from context
func (l *Logger) entryFromContext(ctx context.Context) *logrus.Entry {
	fields := logrus.Fields{}

	if traceID := ctxutil.GetTraceID(ctx); traceID != "" {
		fields[TraceKey] = traceID
	}
	if l.version != "" {
		fields[VersionKey] = l.version
	}

	entry := l.WithFields(fields)
	if ctx != nil {
		entry = entry.WithContext(ctx)
	}
	return entry
}

// EntryWithFields returns an entry carrying the context fields plus fields.
func (l *Logger) EntryWithFields(ctx context.Context, fields logrus.Fields) *logrus.Entry {
	return l.entryFromContext(ctx).WithFields(fields)
}

func (l *Logger) log(ctx context.Context, level logrus.Level, args ...any) {
	l.entryFromContext(ctx).Log(level, args...)
}

func (l *Logger) logf(ctx context.Context, level logrus.Level, format string, args ...any) {
	l.entryFromContext(ctx).Logf(level, format, args...)
}

func (l *Logger) Trace(ctx context.Context, args ...any) { l.log(ctx, logrus.TraceLevel, args...) }
func (l *Logger) Debug(ctx context.Context, args ...any) { l.log(ctx, logrus.DebugLevel, args...) }
func (l *Logger) Info(ctx context.Context, args ...any)  { l.log(ctx, logrus.InfoLevel, args...) }
func (l *Logger) Warn(ctx context.Context, args ...any)  { l.log(ctx, logrus.WarnLevel, args...) }
func (l *Logger) Error(ctx context.Context, args ...any) { l.log(ctx, logrus.ErrorLevel, args...) }

func (l *Logger) Tracef(ctx context.Context, format string, args ...any) {
	l.logf(ctx, logrus.TraceLevel, format, args...)
}
func (l *Logger) Debugf(ctx context.Context, format string, args ...any) {
	l.logf(ctx, logrus.DebugLevel, format, args...)
}
func (l *Logger) Infof(ctx context.Context, format string, args ...any) {
	l.logf(ctx, logrus.InfoLevel, format, args...)
}
func (l *Logger) Warnf(ctx context.Context, format string, args ...any) {
	l.logf(ctx, logrus.WarnLevel, format, args...)
}
func (l *Logger) Errorf(ctx context.Context, format string, args ...any) {
	l.logf(ctx, logrus.ErrorLevel, format, args...)
}

// Package level helpers on the standard logger.

func SetVersion(v string)      { StdLogger().SetVersion(v) }
func SetOutput(out io.Writer)  { StdLogger().SetOutput(out) }
func AddHook(hook logrus.Hook) { StdLogger().AddHook(hook) }

func EntryWithFields(ctx context.Context, fields logrus.Fields) *logrus.Entry {
	return StdLogger().EntryWithFields(ctx, fields)
}

func Trace(ctx context.Context, args ...any) { StdLogger().Trace(ctx, args...) }
func Debug(ctx context.Context, args ...any) { StdLogger().Debug(ctx, args...) }
func Info(ctx context.Context, args ...any)  { StdLogger().Info(ctx, args...) }
func Warn(ctx context.Context, args ...any)  { StdLogger().Warn(ctx, args...) }
func Error(ctx context.Context, args ...any) { StdLogger().Error(ctx, args...) }

func Tracef(ctx context.Context, format string, args ...any) {
	StdLogger().Tracef(ctx, format, args...)
}
func Debugf(ctx context.Context, format string, args ...any) {
	StdLogger().Debugf(ctx, format, args...)
}
func Infof(ctx context.Context, format string, args ...any) {
	StdLogger().Infof(ctx, format, args...)
}
func Warnf(ctx context.Context, format string, args ...any) {
	StdLogger().Warnf(ctx, format, args...)
}
func Errorf(ctx context.Context, format string, args ...any) {
	StdLogger().Errorf(ctx, format, args...)
}
