package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
)

// Log starts out as a plain stdout text logger so package-level Module
// calls made before Init (e.g. a package var in internal/daemon) are
// safe; Init replaces it with the configured handler.
var Log = slog.New(&componentHandler{inner: slog.NewTextHandler(os.Stdout, nil)})

// Format selects the handler used by Init.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// levels holds the process-wide base level plus any per-component
// overrides registered through SetComponentLevel, guarded by mu since
// the VC engine's builder goroutine (started by daemon.go under --watch)
// and the request-handling goroutine both log through the same Module
// loggers.
var levels = struct {
	sync.RWMutex
	base      slog.Level
	overrides map[string]slog.Level
}{overrides: map[string]slog.Level{}}

// Init initializes the global logger, writing to stdout and, if logFile is
// non-empty, also appending to that file.
func Init(level string, logFile string, format Format) error {
	logLevel := parseLevel(level)

	levels.Lock()
	levels.base = logLevel
	levels.overrides = map[string]slog.Level{}
	levels.Unlock()

	writers := []io.Writer{os.Stdout}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return err
		}
		writers = append(writers, f)
	}
	multiWriter := io.MultiWriter(writers...)

	opts := &slog.HandlerOptions{
		// Level is re-checked per record by componentHandler.Enabled rather
		// than fixed here, so SetComponentLevel can raise or lower a single
		// module's verbosity without rebuilding the handler.
		Level: slog.LevelDebug,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.String("time", a.Value.Time().Format("15:04:05"))
			}
			return a
		},
	}

	var handler slog.Handler
	if format == FormatJSON {
		handler = slog.NewJSONHandler(multiWriter, opts)
	} else {
		handler = slog.NewTextHandler(multiWriter, opts)
	}

	Log = slog.New(&componentHandler{inner: handler})
	slog.SetDefault(Log)

	return nil
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}

// SetComponentLevel overrides the level for one Module logger's
// "component" tag (e.g. "vc", "solver") independently of the process-wide
// base level, so a caller driving the VC engine can turn on
// debug-level AND/OR closure tracing without also drowning the daemon's
// request log in debug noise. An empty level clears the override, falling
// back to the base level from Init.
func SetComponentLevel(component, level string) {
	levels.Lock()
	defer levels.Unlock()
	if level == "" {
		delete(levels.overrides, component)
		return
	}
	levels.overrides[component] = parseLevel(level)
}

func effectiveLevel(component string) slog.Level {
	levels.RLock()
	defer levels.RUnlock()
	if l, ok := levels.overrides[component]; ok {
		return l
	}
	return levels.base
}

// componentHandler wraps a base slog.Handler, consulting
// effectiveLevel(component) instead of a single fixed level so
// SetComponentLevel's overrides take effect per record.
type componentHandler struct {
	inner     slog.Handler
	component string
}

func (h *componentHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= effectiveLevel(h.component)
}

func (h *componentHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.inner.Handle(ctx, r)
}

func (h *componentHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	component := h.component
	for _, a := range attrs {
		if a.Key == "component" {
			component = a.Value.String()
		}
	}
	return &componentHandler{inner: h.inner.WithAttrs(attrs), component: component}
}

func (h *componentHandler) WithGroup(name string) slog.Handler {
	return &componentHandler{inner: h.inner.WithGroup(name), component: h.component}
}

// Module returns a child logger tagged with a "component" attribute, used
// so daemon/solver/protocol log lines can be told apart at a glance without
// each call site repeating the tag, and so SetComponentLevel can single
// one out.
func Module(name string) *slog.Logger {
	return Log.With("component", name)
}

// Debug logs at debug level
func Debug(msg string, args ...any) {
	Log.Debug(msg, args...)
}

// Info logs at info level
func Info(msg string, args ...any) {
	Log.Info(msg, args...)
}

// Warn logs at warn level
func Warn(msg string, args ...any) {
	Log.Warn(msg, args...)
}

// Error logs at error level
func Error(msg string, args ...any) {
	Log.Error(msg, args...)
}
