package logging

import (
	"log/slog"
	"os"
)

// Setup installs the global slog logger: JSON to stdout, info level. The
// Postgres handler is layered on later, once the database is up.
func Setup() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}
