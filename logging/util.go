package logging

import (
	"log/slog"
	"strings"
)

// LevelFromString maps a config level string ("DEBUG", "INFO", "WARN",
// "ERROR") to its slog.Level. Unset, empty or unknown values fall back
// to INFO.
func LevelFromString(str *string) slog.Level {
	if str == nil || *str == "" {
		return slog.LevelInfo
	}
	switch strings.ToUpper(*str) {
	case slog.LevelDebug.String():
		return slog.LevelDebug
	case slog.LevelInfo.String():
		return slog.LevelInfo
	case slog.LevelWarn.String():
		return slog.LevelWarn
	case slog.LevelError.String():
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
