// Package config wraps viper with a small manager that owns one config
// file on disk and persists individual keys as they change.
package config

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"
)

// Manager owns a single YAML config file. Path is the directory that
// holds it.
type Manager struct {
	Path string

	mu sync.Mutex
	v  *viper.Viper
}

// New loads (or creates) the config file for the given app name. When
// configPath is empty the file lives under the user config directory.
func New(appName, configPath string) (*Manager, error) {
	if configPath == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			base = "."
		}
		configPath = filepath.Join(base, appName)
	}
	if err := os.MkdirAll(configPath, 0o755); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		if err := v.SafeWriteConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileAlreadyExistsError); !ok {
				return nil, err
			}
		}
	}

	return &Manager{Path: configPath, v: v}, nil
}

// SetConfig stores one key and writes the file through.
func (m *Manager) SetConfig(key string, value interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.v.Set(key, value)
	return m.v.WriteConfig()
}

// GetString reads one string key.
func (m *Manager) GetString(key string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.v.GetString(key)
}

// Unmarshal decodes the whole file into out via mapstructure tags.
func (m *Manager) Unmarshal(out interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.v.Unmarshal(out)
}
