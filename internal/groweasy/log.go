package groweasy

import (
	"os"

	"github.com/rs/zerolog"
)

// logger writes to a file when GROWEASY_DEBUG_LOG is set, otherwise nowhere.
// Stdout belongs to the TUI, so nothing may print there directly.
var logger = zerolog.Nop()

// InitLogger opens the debug log file. Failures fall back to a no-op logger;
// a broken log path must never take the client down.
func InitLogger(path string) {
	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return
	}
	logger = zerolog.New(f).With().Timestamp().Logger()
	logger.Info().Msg("logger initialized")
}
