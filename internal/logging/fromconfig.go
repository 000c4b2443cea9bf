package logging

import (
	"log/slog"

	"mediasort/internal/config"
)

// NewFromConfig creates a logger using application config. The run log
// file always receives output; stderr is added (and the level dropped to
// debug) when verbose is set, so interactive output stays quiet enough
// for the progress display otherwise.
func NewFromConfig(cfg *config.Config, verbose bool) (*slog.Logger, error) {
	if cfg == nil {
		return New(Options{Level: "info", Format: "console"})
	}

	level := cfg.Logging.Level
	outputs := []string{cfg.LogFilePath()}
	if verbose {
		level = "debug"
		outputs = append(outputs, "stderr")
	}

	return New(Options{
		Level:       level,
		Format:      cfg.Logging.Format,
		OutputPaths: outputs,
	})
}
