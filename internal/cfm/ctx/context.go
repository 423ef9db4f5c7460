package ctx

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jkwiatkowski/cfm/internal/cfm/conf"
	"github.com/jkwiatkowski/cfm/internal/model"
	"github.com/jkwiatkowski/cfm/pkg/config"
	"github.com/jkwiatkowski/cfm/pkg/util"
)

const DefaultHTTPAddr = "127.0.0.1:5040"

// Context carries the application state shared between the manager, the
// HTTP service and the console UI: the configured identity and archive
// root, the active date range, and the headline figures of the last
// completed scan.
type Context struct {
	conf *conf.AppConfig
	cm   *config.Manager
	mu   sync.RWMutex

	History map[string]conf.ArchiveConfig

	// Archive selection state
	Root      string
	Username  string
	FromDate  string
	ToDate    string
	RootUsage string

	// Presentation state
	Language string

	// HTTP service state
	HTTPEnabled bool
	HTTPAddr    string

	// Last scan summary
	LastScanAt    time.Time
	LastScanID    string
	Conversations int
	Totals        model.GlobalTotals
	Truncated     bool
}

func New(configPath string) (*Context, error) {
	appConf, cm, err := conf.Load(configPath)
	if err != nil {
		return nil, err
	}

	c := &Context{
		conf: appConf,
		cm:   cm,
	}
	c.loadConfig()
	return c, nil
}

func (c *Context) loadConfig() {
	c.History = c.conf.ParseHistory()
	c.Language = c.conf.Language
	c.HTTPEnabled = c.conf.HTTPEnabled
	c.HTTPAddr = c.conf.HTTPAddr
	c.SwitchHistory(c.conf.LastRoot)
	if c.Username == "" {
		c.Username = c.conf.Username
	}
	if c.FromDate == "" {
		c.FromDate = c.conf.FromDate
	}
	if c.ToDate == "" {
		c.ToDate = c.conf.ToDate
	}
	c.Refresh()
}

// SwitchHistory loads the remembered settings for the given archive
// root, or clears the selection state when the root is unknown.
func (c *Context) SwitchHistory(root string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.History[root]
	if ok {
		c.Root = entry.Root
		c.Username = entry.Username
		c.FromDate = entry.FromDate
		c.ToDate = entry.ToDate
	} else {
		c.Root = root
		c.Username = ""
		c.FromDate = ""
		c.ToDate = ""
	}
	c.RootUsage = ""
}

// Refresh recomputes derived display state.
func (c *Context) Refresh() {
	if c.RootUsage == "" && c.Root != "" {
		go func() {
			c.RootUsage = util.GetDirSize(c.Root)
		}()
	}
}

func (c *Context) GetRoot() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Root
}

func (c *Context) GetUsername() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Username
}

func (c *Context) GetLanguage() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Language
}

// GetDateRange produces the typed range from the stored date strings.
func (c *Context) GetDateRange() model.DateRange {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return model.ParseDateRange(c.FromDate, c.ToDate)
}

func (c *Context) GetHTTPAddr() string {
	if c.HTTPAddr == "" {
		c.HTTPAddr = DefaultHTTPAddr
	}
	return c.HTTPAddr
}

func (c *Context) IsHTTPEnabled() bool {
	return c.HTTPEnabled
}

func (c *Context) SetRoot(root string) {
	c.mu.Lock()
	changed := c.Root != root
	c.mu.Unlock()
	if !changed {
		return
	}
	c.SwitchHistory(root)
	c.UpdateConfig()
	c.Refresh()
}

func (c *Context) SetUsername(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Username == name {
		return
	}
	c.Username = name
	c.updateConfigLocked()
}

func (c *Context) SetDates(from, to string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.FromDate == from && c.ToDate == to {
		return
	}
	c.FromDate = from
	c.ToDate = to
	c.updateConfigLocked()
}

func (c *Context) SetLanguage(language string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Language == language {
		return
	}
	c.Language = language
	c.updateConfigLocked()
}

func (c *Context) SetHTTPEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.HTTPEnabled == enabled {
		return
	}
	c.HTTPEnabled = enabled
	c.updateConfigLocked()
}

func (c *Context) SetHTTPAddr(addr string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.HTTPAddr == addr {
		return
	}
	c.HTTPAddr = addr
	c.updateConfigLocked()
}

// SetScanSummary records the headline figures of a completed scan.
func (c *Context) SetScanSummary(scanID string, conversations int, totals model.GlobalTotals, truncated bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.LastScanAt = time.Now()
	c.LastScanID = scanID
	c.Conversations = conversations
	c.Totals = totals
	c.Truncated = truncated
}

// UpdateConfig persists the current state, folding the active archive
// into the history list.
func (c *Context) UpdateConfig() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updateConfigLocked()
}

func (c *Context) updateConfigLocked() {
	entry := conf.ArchiveConfig{
		Root:     c.Root,
		Username: c.Username,
		FromDate: c.FromDate,
		ToDate:   c.ToDate,
	}

	if c.Root != "" {
		c.History[c.Root] = entry
	}

	history := make([]map[string]interface{}, 0, len(c.History))
	for _, h := range c.History {
		history = append(history, h.AsMap())
	}

	if err := c.cm.SetConfig("last_root", c.Root); err != nil {
		log.Error().Err(err).Msg("set last_root failed")
		return
	}
	if err := c.cm.SetConfig("username", c.Username); err != nil {
		log.Error().Err(err).Msg("set username failed")
		return
	}
	if err := c.cm.SetConfig("from_date", c.FromDate); err != nil {
		log.Error().Err(err).Msg("set from_date failed")
		return
	}
	if err := c.cm.SetConfig("to_date", c.ToDate); err != nil {
		log.Error().Err(err).Msg("set to_date failed")
		return
	}
	if err := c.cm.SetConfig("language", c.Language); err != nil {
		log.Error().Err(err).Msg("set language failed")
		return
	}
	if err := c.cm.SetConfig("http_enabled", c.HTTPEnabled); err != nil {
		log.Error().Err(err).Msg("set http_enabled failed")
		return
	}
	if err := c.cm.SetConfig("http_addr", c.HTTPAddr); err != nil {
		log.Error().Err(err).Msg("set http_addr failed")
		return
	}
	if err := c.cm.SetConfig("history", history); err != nil {
		log.Error().Err(err).Msg("set history failed")
	}
}
