// Package config loads plugin settings from YAML or TOML files.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	tt "github.com/asplogic/jshint/internal/types"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is the settings file looked up next to the plugin.
const DefaultFileName = "jshint.yaml"

// Load reads the settings file at path. Keys absent from the file keep
// their defaults. Files ending in .toml are decoded as TOML, anything else
// as YAML.
func Load(path string) (tt.Settings, error) {
	settings := tt.DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		return settings, err
	}

	if err := Decode(path, data, &settings); err != nil {
		return settings, fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}
	return settings, nil
}

// Decode decodes data into settings using the format implied by path.
func Decode(path string, data []byte, settings *tt.Settings) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		_, err := toml.Decode(string(data), settings)
		return err
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	return yaml.NewDecoder(bytes.NewReader(data)).Decode(settings)
}

// Write stores settings as YAML at path, refusing to overwrite.
func Write(path string, settings tt.Settings) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("settings file already exists: %s", path)
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("error marshaling settings: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("error writing settings file: %w", err)
	}
	return nil
}

// Store holds the current settings and reloads them from disk on request.
// Readers always see a complete snapshot.
type Store struct {
	mu       sync.RWMutex
	path     string
	current  tt.Settings
	logger   *zap.Logger
	onReload []func(tt.Settings)
}

// NewStore loads path. An empty path yields the defaults.
func NewStore(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Store{path: path, current: tt.DefaultSettings(), logger: logger}
	if path == "" {
		return s, nil
	}

	settings, err := Load(path)
	if err != nil {
		return nil, err
	}
	s.current = settings
	return s, nil
}

func (s *Store) Settings() tt.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *Store) Path() string {
	return s.path
}

// OnReload registers fn to be called with the new settings after each
// successful reload.
func (s *Store) OnReload(fn func(tt.Settings)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onReload = append(s.onReload, fn)
}

// Reload re-reads the settings file. On failure the previous settings stay
// in effect.
func (s *Store) Reload() error {
	if s.path == "" {
		return nil
	}

	settings, err := Load(s.path)
	if err != nil {
		s.logger.Warn("Keeping previous settings", zap.String("path", s.path), zap.Error(err))
		return err
	}

	s.mu.Lock()
	s.current = settings
	hooks := append([]func(tt.Settings){}, s.onReload...)
	s.mu.Unlock()

	s.logger.Info("Settings reloaded", zap.String("path", s.path))
	for _, fn := range hooks {
		fn(settings)
	}
	return nil
}
