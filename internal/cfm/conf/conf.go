package conf

import (
	"github.com/mitchellh/mapstructure"
	"github.com/rs/zerolog/log"

	"github.com/jkwiatkowski/cfm/internal/model"
	"github.com/jkwiatkowski/cfm/pkg/config"
)

// ArchiveConfig is the remembered state for one previously opened
// archive root.
type ArchiveConfig struct {
	Root     string `mapstructure:"root" json:"root"`
	Username string `mapstructure:"username" json:"username"`
	FromDate string `mapstructure:"from_date" json:"from_date"`
	ToDate   string `mapstructure:"to_date" json:"to_date"`
}

// AppConfig is the persisted application configuration. Dates are kept
// as raw YYYY-MM-DD strings on disk and normalized into a typed
// DateRange exactly once, at the boundary.
type AppConfig struct {
	LastRoot    string `mapstructure:"last_root" json:"last_root"`
	Username    string `mapstructure:"username" json:"username"`
	Language    string `mapstructure:"language" json:"language"`
	FromDate    string `mapstructure:"from_date" json:"from_date"`
	ToDate      string `mapstructure:"to_date" json:"to_date"`
	HTTPEnabled bool   `mapstructure:"http_enabled" json:"http_enabled"`
	HTTPAddr    string `mapstructure:"http_addr" json:"http_addr"`

	// History is kept in its raw form; ParseHistory decodes it. Writing
	// goes through ArchiveConfig.AsMap so the on-disk keys stay stable.
	History []map[string]interface{} `mapstructure:"history" json:"-"`
}

// AsMap renders the entry with its persisted key names.
func (a ArchiveConfig) AsMap() map[string]interface{} {
	return map[string]interface{}{
		"root":      a.Root,
		"username":  a.Username,
		"from_date": a.FromDate,
		"to_date":   a.ToDate,
	}
}

// Load reads the config file, creating a default one on first run.
func Load(configPath string) (*AppConfig, *config.Manager, error) {
	cm, err := config.New("cfm", configPath)
	if err != nil {
		return nil, nil, err
	}

	conf := &AppConfig{}
	if err := cm.Unmarshal(conf); err != nil {
		return nil, nil, err
	}
	if conf.Language == "" {
		conf.Language = "en"
	}
	return conf, cm, nil
}

// ParseHistory indexes the remembered archives by root path. Entries
// that fail to decode are dropped with a log line rather than failing
// the load.
func (c *AppConfig) ParseHistory() map[string]ArchiveConfig {
	history := make(map[string]ArchiveConfig, len(c.History))
	for _, raw := range c.History {
		var entry ArchiveConfig
		if err := mapstructure.Decode(raw, &entry); err != nil {
			log.Debug().Err(err).Msg("skipping malformed history entry")
			continue
		}
		if entry.Root == "" {
			continue
		}
		history[entry.Root] = entry
	}
	return history
}

// DateRange normalizes the raw date strings into the typed range the
// core consumes. Missing or malformed bounds fall back to the widest
// sensible window.
func (c *AppConfig) DateRange() model.DateRange {
	return model.ParseDateRange(c.FromDate, c.ToDate)
}
