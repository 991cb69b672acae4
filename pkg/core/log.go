package core

import "log/slog"

var pkgLogger *slog.Logger

// SetLogger sets the logger used for diagnostics. Nil restores slog.Default().
func SetLogger(l *slog.Logger) {
	pkgLogger = l
}

func log() *slog.Logger {
	if pkgLogger != nil {
		return pkgLogger
	}
	return slog.Default()
}
