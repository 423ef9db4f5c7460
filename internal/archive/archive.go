package archive

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"

	"github.com/jkwiatkowski/cfm/internal/errors"
	"github.com/jkwiatkowski/cfm/internal/model"
)

// Archive is the entry point to one export directory tree. It owns the
// reader and exposes full scans, single-folder re-aggregation and
// change notification over the root.
type Archive struct {
	root   string
	reader *Reader

	watchMu  sync.Mutex
	watcher  *fsnotify.Watcher
	onChange func(fsnotify.Event)
}

// New opens the archive rooted at path. The root must exist and be a
// directory; a bad path is the one failure a scan cannot recover from,
// so it is reported up front.
func New(root string) (*Archive, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.RootNotFound(root, err)
	}
	if !info.IsDir() {
		return nil, errors.RootNotFound(root, nil)
	}
	return &Archive{root: root, reader: NewReader()}, nil
}

func (a *Archive) Root() string {
	return a.root
}

// Scan runs a full pass over every conversation folder, applying the
// date range and owner identity, reporting progress after each folder.
func (a *Archive) Scan(dates model.DateRange, owner string, progress ProgressFunc) (*ScanResult, error) {
	agg := NewAggregator(a.reader, owner, dates)
	return NewScanner(a.root, agg, progress).Scan()
}

// AggregateOne re-aggregates a single conversation folder, used when a
// caller drills into one row without re-scanning everything.
func (a *Archive) AggregateOne(folderID string, dates model.DateRange, owner string) (*model.ConversationAggregate, error) {
	dir := filepath.Join(a.root, folderID)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil, errors.FolderNotFound(folderID)
	}
	agg := NewAggregator(a.reader, owner, dates)
	return agg.AggregateFolder(dir, folderID)
}

// Watch installs a filesystem watcher on the root and its immediate
// subdirectories and invokes fn on every change event. Used to
// invalidate cached scan results when the export tree is replaced.
func (a *Archive) Watch(fn func(fsnotify.Event)) error {
	a.watchMu.Lock()
	defer a.watchMu.Unlock()

	if a.watcher != nil {
		a.onChange = fn
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(a.root); err != nil {
		watcher.Close()
		return err
	}
	if entries, err := os.ReadDir(a.root); err == nil {
		for _, e := range entries {
			if !e.IsDir() {
				continue
			}
			if err := watcher.Add(filepath.Join(a.root, e.Name())); err != nil {
				log.Debug().Err(err).Str("folder", e.Name()).Msg("watch conversation folder failed")
			}
		}
	}

	a.watcher = watcher
	a.onChange = fn

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !(event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Write) ||
					event.Op.Has(fsnotify.Rename) || event.Op.Has(fsnotify.Remove)) {
					continue
				}
				a.watchMu.Lock()
				fn := a.onChange
				a.watchMu.Unlock()
				if fn != nil {
					fn(event)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Debug().Err(err).Msg("archive watcher error")
			}
		}
	}()

	return nil
}

// Close releases the filesystem watcher if one was installed.
func (a *Archive) Close() error {
	a.watchMu.Lock()
	defer a.watchMu.Unlock()
	if a.watcher != nil {
		err := a.watcher.Close()
		a.watcher = nil
		return err
	}
	return nil
}
