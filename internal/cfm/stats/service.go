// Package stats owns the scan lifecycle: it opens the archive for the
// configured root, runs scans on demand, caches the resulting row set
// and serves sorted/filtered/searched views of it.
package stats

import (
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jkwiatkowski/cfm/internal/archive"
	"github.com/jkwiatkowski/cfm/internal/errors"
	"github.com/jkwiatkowski/cfm/internal/model"
	"github.com/jkwiatkowski/cfm/internal/rowstore"
)

// Config is the slice of application state the service reads.
type Config interface {
	GetRoot() string
	GetUsername() string
	GetDateRange() model.DateRange
}

// Service caches one scan at a time. A cached result is reused until
// the archive fingerprint changes, the filesystem watcher reports a
// change, or the caller forces a rescan (date range or owner edits go
// through force).
type Service struct {
	conf Config

	mu          sync.Mutex
	archive     *archive.Archive
	store       *rowstore.Store
	result      *archive.ScanResult
	scanID      string
	fingerprint string
	stale       bool

	progress archive.ProgressFunc
}

func NewService(conf Config) *Service {
	return &Service{conf: conf}
}

// SetProgressSink installs the observer that receives per-folder scan
// progress. The UI sets this once; a nil sink is fine.
func (s *Service) SetProgressSink(fn archive.ProgressFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress = fn
}

// Start opens the archive for the configured root and begins watching
// it for changes. Safe to call again after the root changes.
func (s *Service) Start() error {
	root := s.conf.GetRoot()
	if root == "" {
		return errors.ErrNoArchiveRoot
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.archive != nil {
		if s.archive.Root() == root {
			return nil
		}
		s.closeLocked()
	}

	a, err := archive.New(root)
	if err != nil {
		return err
	}
	if err := a.Watch(func(event fsnotify.Event) {
		log.Debug().Str("file", event.Name).Msg("archive changed, invalidating cached scan")
		s.Invalidate()
	}); err != nil {
		log.Warn().Err(err).Msg("archive watcher unavailable, rescans are manual only")
	}

	s.archive = a
	s.stale = true
	return nil
}

// Stop releases the archive and drops the cache.
func (s *Service) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeLocked()
	return nil
}

func (s *Service) closeLocked() {
	if s.archive != nil {
		if err := s.archive.Close(); err != nil {
			log.Debug().Err(err).Msg("close archive failed")
		}
		s.archive = nil
	}
	s.store = nil
	s.result = nil
	s.scanID = ""
	s.fingerprint = ""
}

// Invalidate marks the cached scan stale so the next query rescans.
func (s *Service) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stale = true
}

// Scan returns the cached result when the archive is unchanged, or runs
// a fresh scan. force bypasses the fingerprint check entirely.
func (s *Service) Scan(force bool) (*archive.ScanResult, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scanLocked(force)
}

func (s *Service) scanLocked(force bool) (*archive.ScanResult, string, error) {
	if s.archive == nil {
		return nil, "", errors.ErrNoArchiveRoot
	}

	if s.result != nil && !force && !s.stale {
		return s.result, s.scanID, nil
	}

	fp, err := s.archive.Fingerprint()
	if err != nil {
		log.Debug().Err(err).Msg("fingerprint archive failed")
		fp = ""
	}
	if s.result != nil && !force && fp != "" && fp == s.fingerprint {
		s.stale = false
		return s.result, s.scanID, nil
	}

	result, err := s.archive.Scan(s.conf.GetDateRange(), s.conf.GetUsername(), s.progress)
	if err != nil {
		return nil, "", err
	}

	s.result = result
	s.scanID = uuid.NewString()
	s.fingerprint = fp
	s.stale = false
	s.store = rowstore.NewFromAggregates(result.Aggregates)

	log.Info().
		Str("scan_id", s.scanID).
		Int("conversations", len(result.Aggregates)).
		Bool("truncated", result.Truncated).
		Int64("messages", result.Totals.TotalMessages).
		Msg("archive scan completed")

	return result, s.scanID, nil
}

// QueryOptions shapes one view over the row set. Zero values leave the
// scan order untouched.
type QueryOptions struct {
	Search string
	Filter rowstore.Filter
	Sort   []rowstore.SortKey
}

// Query runs (or reuses) a scan and returns the requested view of the
// rows along with the scan ID it came from.
func (s *Service) Query(opts QueryOptions) ([]rowstore.Row, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, _, err := s.scanLocked(false); err != nil {
		return nil, "", err
	}

	view := rowstore.New()
	view.Reset(s.store.Rows())
	if len(opts.Sort) > 0 {
		if err := view.MultiSort(opts.Sort); err != nil {
			return nil, "", errors.InvalidArg("sort")
		}
	}

	rows := view.Filter(opts.Filter)
	if opts.Search != "" {
		filtered := rowstore.New()
		filtered.Reset(rows)
		rows = filtered.Search(opts.Search)
	}
	return rows, s.scanID, nil
}

// Detail re-aggregates one conversation folder on demand.
func (s *Service) Detail(folderID string) (*model.ConversationAggregate, error) {
	s.mu.Lock()
	a := s.archive
	s.mu.Unlock()
	if a == nil {
		return nil, errors.ErrNoArchiveRoot
	}
	return a.AggregateOne(folderID, s.conf.GetDateRange(), s.conf.GetUsername())
}

// Totals returns the global counters of the current scan together with
// the conversation count and the truncation flag.
func (s *Service) Totals() (model.GlobalTotals, int, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result, _, err := s.scanLocked(false)
	if err != nil {
		return model.GlobalTotals{}, 0, false, err
	}
	return result.Totals, len(result.Aggregates), result.Truncated, nil
}
