package cfm

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/jkwiatkowski/cfm/internal/cfm/ctx"
	"github.com/jkwiatkowski/cfm/internal/cfm/http"
	"github.com/jkwiatkowski/cfm/internal/cfm/stats"
	"github.com/jkwiatkowski/cfm/pkg/util"
)

type RunMode int

const (
	RunModeHeadless RunMode = iota
	RunModeConsole
)

type RunOptions struct {
	Mode               RunMode
	AutoOpenBrowser    bool
	AutoOpenBrowserSet bool
}

// Manager wires the application together: context, scan service, HTTP
// service and the console UI.
type Manager struct {
	ctx *ctx.Context

	db   *stats.Service
	http *http.Service

	app *App

	options RunOptions

	httpMu      sync.Mutex
	httpRunning bool

	shutdownCh     chan struct{}
	shutdownOnce   sync.Once
	shutdownReason string
}

func New() *Manager {
	return &Manager{
		options: RunOptions{
			Mode:               RunModeHeadless,
			AutoOpenBrowser:    true,
			AutoOpenBrowserSet: true,
		},
		shutdownCh: make(chan struct{}),
	}
}

func (m *Manager) SetRunOptions(opts RunOptions) {
	if opts.Mode != RunModeConsole {
		opts.Mode = RunModeHeadless
	}
	if !opts.AutoOpenBrowserSet {
		opts.AutoOpenBrowser = m.options.AutoOpenBrowser
		opts.AutoOpenBrowserSet = m.options.AutoOpenBrowserSet
	}
	m.options = opts
}

func (m *Manager) Run(configPath string) error {
	var err error
	m.ctx, err = ctx.New(configPath)
	if err != nil {
		return err
	}

	m.db = stats.NewService(m.ctx)
	m.http = http.NewService(m.ctx, m.db, m)

	if m.ctx.GetRoot() != "" {
		if err := m.db.Start(); err != nil {
			log.Warn().Err(err).Str("root", m.ctx.GetRoot()).Msg("configured archive root unavailable")
		}
	}

	wantHTTP := m.ctx.IsHTTPEnabled() || m.options.Mode == RunModeHeadless
	if wantHTTP {
		if err := m.StartService(); err != nil {
			m.stopService()
			if m.options.Mode == RunModeHeadless {
				return err
			}
			log.Err(err).Msg("failed to start HTTP service")
		}
	}

	if m.options.Mode == RunModeConsole {
		m.app = NewApp(m.ctx, m)
		defer m.stopService()
		return m.app.Run()
	}

	if url := m.webInterfaceURL(); url != "" {
		log.Info().Str("url", url).Msg("cfm API available")
		if m.options.AutoOpenBrowser {
			m.launchBrowser(url)
		}
	}

	log.Info().Msg("cfm is running in headless mode. Press Ctrl+C to exit.")
	m.waitForShutdown()
	return nil
}

// Scan runs (or reuses) a scan for the current configuration and
// records its summary on the context.
func (m *Manager) Scan(force bool) error {
	if err := m.db.Start(); err != nil {
		return err
	}
	result, scanID, err := m.db.Scan(force)
	if err != nil {
		return err
	}
	m.ctx.SetScanSummary(scanID, len(result.Aggregates), result.Totals, result.Truncated)
	return nil
}

// Rescan implements http.Control: force a fresh pass over the archive.
func (m *Manager) Rescan() error {
	return m.Scan(true)
}

// SetRoot switches to a different archive root and reopens the scan
// service on it.
func (m *Manager) SetRoot(root string) error {
	m.ctx.SetRoot(root)
	if root == "" {
		return m.db.Stop()
	}
	return m.db.Start()
}

func (m *Manager) SetUsername(name string) {
	m.ctx.SetUsername(name)
	m.db.Invalidate()
}

func (m *Manager) SetDates(from, to string) {
	m.ctx.SetDates(from, to)
	m.db.Invalidate()
}

func (m *Manager) SetLanguage(language string) {
	m.ctx.SetLanguage(language)
}

// SetHTTPAddr moves the HTTP listener, restarting it when running.
func (m *Manager) SetHTTPAddr(addr string) error {
	m.httpMu.Lock()
	running := m.httpRunning
	m.httpMu.Unlock()

	if running {
		m.stopService()
	}
	m.ctx.SetHTTPAddr(addr)
	if running {
		return m.StartService()
	}
	return nil
}

func (m *Manager) StartService() error {
	m.httpMu.Lock()
	defer m.httpMu.Unlock()
	if m.httpRunning {
		return nil
	}
	if err := m.http.Start(); err != nil {
		return err
	}
	m.httpRunning = true
	m.ctx.SetHTTPEnabled(true)
	return nil
}

func (m *Manager) StopService() error {
	m.stopService()
	m.ctx.SetHTTPEnabled(false)
	return nil
}

func (m *Manager) stopService() {
	m.httpMu.Lock()
	defer m.httpMu.Unlock()
	if !m.httpRunning {
		return
	}
	if err := m.http.Stop(); err != nil {
		log.Debug().Err(err).Msg("stop HTTP service failed")
	}
	m.httpRunning = false
}

func (m *Manager) webInterfaceURL() string {
	m.httpMu.Lock()
	defer m.httpMu.Unlock()
	if !m.httpRunning {
		return ""
	}
	return "http://" + m.ctx.GetHTTPAddr() + "/api/v1/chats"
}

func (m *Manager) launchBrowser(url string) {
	if err := util.OpenBrowser(url); err != nil {
		log.Warn().Err(err).Str("url", url).Msg("failed to open browser")
	}
}

func (m *Manager) requestShutdown(reason string) {
	m.shutdownOnce.Do(func() {
		m.shutdownReason = reason
		close(m.shutdownCh)
	})
}

func (m *Manager) waitForShutdown() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		m.requestShutdown("signal: " + sig.String())
	case <-m.shutdownCh:
	}

	log.Info().Str("reason", m.shutdownReason).Msg("shutting down")
	m.stopService()
	if err := m.db.Stop(); err != nil {
		log.Debug().Err(err).Msg("stop scan service failed")
	}
}
