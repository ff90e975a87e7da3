package testhelpers

import (
	"io"
	"log/slog"

	"github.com/myrjola/boxlevels/internal/logging"
)

// NewLogger creates a debug level logger writing to logSink such as the Writer returned by NewWriter.
func NewLogger(logSink io.Writer) *slog.Logger {
	return logging.New(logSink, slog.LevelDebug)
}
