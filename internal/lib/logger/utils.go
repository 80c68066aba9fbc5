package logger

import (
	"bytes"
	"io"
	"log"
	"log/slog"
	"os"
	"vidly/proj/internal/lib/logger/handlers/slogpretty"
)

// SetupLogger builds the process logger. attrs are attached to every record,
// e.g. "service", "api".
func SetupLogger(debug bool, attrs ...any) *slog.Logger {
	return newLogger(os.Stdout, debug).With(attrs...)
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	if debug {
		return slog.New(slogpretty.NewPrettyHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

// Discard returns a logger that drops every record, handy in tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// serverErrorWriter turns lines written by net/http into error records.
type serverErrorWriter struct {
	log *slog.Logger
}

func (w serverErrorWriter) Write(p []byte) (int, error) {
	w.log.Error(string(bytes.TrimRight(p, "\n")))
	return len(p), nil
}

// LogAdapter is meant for http.Server.ErrorLog.
func LogAdapter(logger *slog.Logger) *log.Logger {
	return log.New(serverErrorWriter{logger.With("source", "http.Server")}, "", 0)
}
