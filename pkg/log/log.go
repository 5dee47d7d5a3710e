// Package log provides the structured logging facade used across the
// stepwise selection library, backed by rs/zerolog.
//
// Components obtain a named logger and attach structured key/value pairs:
//
//	logger := log.GetLoggerWithName("selection").With(
//		log.ComponentKey, "forward",
//	)
//	logger.Info("Variable entered", log.VariableKey, name, log.PValueKey, p)
//
// The global level defaults to Warn so library consumers see configuration
// warnings but not per-round progress unless they opt in via SetLevel.
package log

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// Standard structured field keys.
const (
	ComponentKey  = "component"
	ModelNameKey  = "model"
	OperationKey  = "operation"
	RoundKey      = "round"
	VariableKey   = "variable"
	PValueKey     = "p_value"
	CriterionKey  = "criterion"
	SamplesKey    = "samples"
	FeaturesKey   = "features"
	DurationMsKey = "duration_ms"
)

// Standard operation values.
const (
	OperationFit    = "fit"
	OperationEncode = "encode"
	OperationSelect = "select"
)

// Logger is the logging interface exposed to the rest of the library.
// Keys and values alternate in keysAndValues; a trailing odd value is
// ignored.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	With(keysAndValues ...interface{}) Logger
}

var (
	mu   sync.RWMutex
	root zerolog.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.WarnLevel).
		With().Timestamp().Logger()
)

// SetOutput redirects all library logging to w.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	root = root.Output(w)
}

// SetLevel sets the global log level ("debug", "info", "warn", "error").
// Unknown levels leave the current level unchanged.
func SetLevel(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	root = root.Level(lvl)
}

// GetLogger returns the root library logger.
func GetLogger() Logger {
	mu.RLock()
	defer mu.RUnlock()
	return &zeroLogger{l: root}
}

// GetLoggerWithName returns a logger tagged with a subsystem name.
func GetLoggerWithName(name string) Logger {
	mu.RLock()
	defer mu.RUnlock()
	return &zeroLogger{l: root.With().Str("logger", name).Logger()}
}

type zeroLogger struct {
	l zerolog.Logger
}

func (z *zeroLogger) Debug(msg string, keysAndValues ...interface{}) {
	emit(z.l.Debug(), msg, keysAndValues)
}

func (z *zeroLogger) Info(msg string, keysAndValues ...interface{}) {
	emit(z.l.Info(), msg, keysAndValues)
}

func (z *zeroLogger) Warn(msg string, keysAndValues ...interface{}) {
	emit(z.l.Warn(), msg, keysAndValues)
}

func (z *zeroLogger) Error(msg string, keysAndValues ...interface{}) {
	emit(z.l.Error(), msg, keysAndValues)
}

func (z *zeroLogger) With(keysAndValues ...interface{}) Logger {
	ctx := z.l.With()
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		ctx = ctx.Interface(key(keysAndValues[i]), keysAndValues[i+1])
	}
	return &zeroLogger{l: ctx.Logger()}
}

func emit(ev *zerolog.Event, msg string, keysAndValues []interface{}) {
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		ev = ev.Interface(key(keysAndValues[i]), keysAndValues[i+1])
	}
	ev.Msg(msg)
}

func key(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return "field"
}
