// Package file stores settings in a TOML file and reloads it on change.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/sercha-connect/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-connect/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.WritableSettings = (*Store)(nil)

// DefaultFileName is the settings file created inside the config directory.
const DefaultFileName = "settings.toml"

// Store is a TOML-backed settings source. Nested tables are flattened
// into dot-notation keys; all values are exposed as strings.
type Store struct {
	mu       sync.RWMutex
	filePath string
	data     map[string]string
}

// NewStore opens the settings file at path.
// If path is empty, defaults to ~/.sercha-connect/settings.toml.
func NewStore(path string) (*Store, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(home, ".sercha-connect", DefaultFileName)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, err
	}

	s := &Store{
		filePath: path,
		data:     make(map[string]string),
	}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Get returns the value stored for key.
func (s *Store) Get(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data[key]
}

// Set stores a value and persists immediately. An empty value removes the key.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if value == "" {
		delete(s.data, key)
	} else {
		s.data[key] = value
	}
	return s.save()
}

// Keys returns all keys with a value, sorted.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// save writes settings to the TOML file (caller must hold lock).
func (s *Store) save() error {
	data, err := toml.Marshal(s.data)
	if err != nil {
		return err
	}

	// Write with restricted permissions
	return os.WriteFile(s.filePath, data, 0600)
}

// Load reads settings from the TOML file. A missing file yields no settings.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			s.replace(make(map[string]string))
			return nil
		}
		return err
	}

	var loaded map[string]any
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("parse %s: %w", s.filePath, err)
	}

	s.replace(flattenMap(loaded, ""))
	return nil
}

func (s *Store) replace(data map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
}

// Watch reloads the file whenever it changes until ctx is cancelled.
// The parent directory is watched so editors that replace the file
// by renaming are picked up.
func (s *Store) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(s.filePath)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(s.filePath), err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				s.handleEvent(event)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("settings watcher: %v", err)
			}
		}
	}()
	return nil
}

// handleEvent reloads the file when event touches it. Returns true when a
// reload was attempted.
func (s *Store) handleEvent(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != filepath.Clean(s.filePath) {
		return false
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	if err := s.Load(); err != nil {
		// Keep the previous values when a half-written file fails to parse.
		logger.Warn("settings reload: %v", err)
		return true
	}
	logger.Debug("settings reloaded from %s", s.filePath)
	return true
}

// Path returns the settings file path.
func (s *Store) Path() string {
	return s.filePath
}

// flattenMap converts nested maps to dot-notation keys with string values.
// E.g., {"a": {"b": 1}} becomes {"a.b": "1"}.
func flattenMap(m map[string]any, prefix string) map[string]string {
	result := make(map[string]string)

	for key, value := range m {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		if nested, ok := value.(map[string]any); ok {
			for k, v := range flattenMap(nested, fullKey) {
				result[k] = v
			}
			continue
		}
		result[fullKey] = fmt.Sprint(value)
	}

	return result
}
