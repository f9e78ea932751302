package logging

import (
	"log/slog"
	"path/filepath"

	"specgrid/internal/config"
)

// NewFromConfig creates a logger using application config defaults. When a
// log directory is configured, records are mirrored to specgrid.log there.
func NewFromConfig(cfg *config.Config) (*slog.Logger, error) {
	if cfg == nil {
		return New(Options{Level: "info", Format: "console"})
	}

	paths := []string{"stderr"}
	if cfg.Paths.LogDir != "" {
		paths = append(paths, filepath.Join(cfg.Paths.LogDir, "specgrid.log"))
	}

	return New(Options{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		OutputPaths: paths,
	})
}
