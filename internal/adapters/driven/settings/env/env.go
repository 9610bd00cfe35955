// Package env reads settings from the process environment.
package env

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/sercha-connect/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-connect/internal/logger"
)

// Ensure Settings implements the interface.
var _ driven.Settings = (*Settings)(nil)

// Settings reads values from the environment on every call.
type Settings struct {
	lookup func(string) (string, bool)
}

// New returns environment-backed settings.
func New() *Settings {
	return &Settings{lookup: os.LookupEnv}
}

// Load reads dotenv files into the environment before returning settings.
// Variables already set in the environment are never overridden, and
// missing files are skipped.
func Load(files ...string) (*Settings, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		err := godotenv.Load(f)
		switch {
		case err == nil:
			logger.Debug("loaded environment from %s", f)
		case errors.Is(err, fs.ErrNotExist):
			continue
		default:
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return New(), nil
}

// Get returns the environment value for key.
func (s *Settings) Get(key string) string {
	v, _ := s.lookup(key)
	return v
}
