package logger

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu  sync.RWMutex
	log = zerolog.New(os.Stdout).With().Timestamp().Logger()
)

func Init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	SetOutput(os.Stdout)
	Info("logger initialized", nil)
}

// SetOutput redirects all log output to w.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	log = zerolog.New(w).With().Timestamp().Logger()
}

func Info(msg string, fields map[string]any) {
	emit(current().Info(), msg, fields)
}

func Warn(msg string, fields map[string]any) {
	emit(current().Warn(), msg, fields)
}

func Error(msg string, fields map[string]any) {
	emit(current().Error(), msg, fields)
}

func Fatal(msg string, fields map[string]any) {
	emit(current().WithLevel(zerolog.FatalLevel), msg, fields)
	os.Exit(1)
}

func current() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := log
	return &l
}

func emit(e *zerolog.Event, msg string, fields map[string]any) {
	if len(fields) > 0 {
		e = e.Fields(redactFields(fields))
	}
	e.Msg(msg)
}
