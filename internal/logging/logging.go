// Package logging sets up the diagnostics log. The HUD owns the terminal,
// so diagnostics go to a file instead of stderr.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Open returns a JSON logger appending to the given path, creating parent
// directories as needed, and a closer for the underlying file.
func Open(path string) (zerolog.Logger, func() error, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log := zerolog.New(f).With().Timestamp().Logger()
	return log, f.Close, nil
}
