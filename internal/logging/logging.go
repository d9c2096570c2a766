// Package logging configures the process-wide slog default.
package logging

import (
	"log/slog"
	"os"

	"github.com/phsym/console-slog"
)

// Setup installs a console handler as the default logger. Call it before
// anything else in main so early failures are formatted consistently.
func Setup() {
	slog.SetDefault(slog.New(console.NewHandler(os.Stderr, &console.HandlerOptions{
		AddSource: true,
		Level:     slog.LevelDebug,
	})))
}
