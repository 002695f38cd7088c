package util

import (
	"log/slog"
	"os"
	"strings"
)

// InitSlog installs a text handler on stderr with the level taken from the
// LOG_LEVEL environment variable (debug, info, warn, error; default info).
func InitSlog() {
	level := slog.LevelInfo
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
