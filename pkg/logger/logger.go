// Package logger is the process-wide structured logger built on zerolog.
//
// Calls take a message followed by alternating key/value pairs:
//
//	logger.Info("Server starting", "address", addr)
//	logger.Error("Failed to load model", err)
//
// A bare error among the arguments is attached as the "error" field.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu  sync.RWMutex
	log zerolog.Logger
	out io.Writer = os.Stderr
	env           = "development"
)

func init() {
	build()
}

// Init configures output for the given environment: console for development, JSON otherwise.
func Init(environment string) {
	mu.Lock()
	defer mu.Unlock()
	env = environment
	build()
}

// SetLevel sets the minimum level: debug, info, warn or error.
func SetLevel(level string) {
	zerolog.SetGlobalLevel(parseLevel(level))
}

// SetOutput redirects log output, mainly for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
	build()
}

// build must be called with mu held (or from init).
func build() {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.MessageFieldName = "message"

	var w io.Writer = out
	if isDevelopment(env) {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05", NoColor: out != os.Stderr}
	}
	log = zerolog.New(w).With().Timestamp().Logger()
}

func isDevelopment(environment string) bool {
	switch strings.ToLower(environment) {
	case "", "dev", "development", "local":
		return true
	}
	return false
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

func Debug(msg string, args ...any) { emit(current().Debug(), msg, args) }

func Info(msg string, args ...any) { emit(current().Info(), msg, args) }

func Warn(msg string, args ...any) { emit(current().Warn(), msg, args) }

func Error(msg string, args ...any) { emit(current().Error(), msg, args) }

// Fatal logs and exits the process.
func Fatal(msg string, args ...any) { emit(current().Fatal(), msg, args) }

func current() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := log
	return &l
}

func emit(ev *zerolog.Event, msg string, args []any) {
	if ev == nil {
		return
	}
	for i := 0; i < len(args); i++ {
		switch v := args[i].(type) {
		case error:
			ev = ev.Err(v)
		case string:
			if i+1 >= len(args) {
				ev = ev.Str("detail", v)
				continue
			}
			if err, ok := args[i+1].(error); ok {
				ev = ev.AnErr(v, err)
			} else {
				ev = ev.Interface(v, args[i+1])
			}
			i++
		default:
			ev = ev.Str(fmt.Sprintf("arg%d", i), fmt.Sprint(v))
		}
	}
	ev.Msg(msg)
}
