package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"

	"resume-screener/internal/shared/telemetry"
)

// loadEnvFiles loads KEY=VALUE files that exist. Variables already set in the
// environment win over file values.
func loadEnvFiles(paths ...string) {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			telemetry.Warn("config.env_file_invalid", map[string]any{"path": path, "err": err})
		}
	}
}
