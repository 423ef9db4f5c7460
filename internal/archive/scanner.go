package archive

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/jkwiatkowski/cfm/internal/errors"
	"github.com/jkwiatkowski/cfm/internal/model"
)

// ProgressFunc receives (processed, total) after every completed
// folder. Implementations must be cheap; the scan calls them inline.
type ProgressFunc func(processed, total int)

// ScanResult is the outcome of one full archive scan. Aggregates are in
// directory-listing order. Truncated is set when the stop-on-first-
// empty-folder heuristic fired before the listing was exhausted.
type ScanResult struct {
	Aggregates []*model.ConversationAggregate
	Totals     model.GlobalTotals
	Truncated  bool
}

// Scanner walks every conversation folder under an archive root and
// produces the full row set plus global totals in one pass.
type Scanner struct {
	root     string
	agg      *Aggregator
	progress ProgressFunc
}

func NewScanner(root string, agg *Aggregator, progress ProgressFunc) *Scanner {
	return &Scanner{root: root, agg: agg, progress: progress}
}

// Scan visits the immediate subdirectories of the root in listing
// order. The first folder that parses successfully but yields zero
// participants stops the whole scan: the selected root is then taken to
// be something other than an inbox export, and the aggregates collected
// so far are returned as a truncated result. Folders that fail with a
// structural error are logged and skipped without triggering the stop.
func (s *Scanner) Scan() (*ScanResult, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, errors.RootNotFound(s.root, err)
	}

	dirs := make([]os.DirEntry, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e)
		}
	}

	result := &ScanResult{Aggregates: make([]*model.ConversationAggregate, 0, len(dirs))}
	total := len(dirs)

	for i, entry := range dirs {
		folderID := entry.Name()
		agg, err := s.agg.AggregateFolder(filepath.Join(s.root, folderID), folderID)
		if err != nil {
			log.Warn().Err(err).Str("folder", folderID).Msg("skipping unreadable conversation folder")
			s.report(i+1, total)
			continue
		}
		if agg.Empty() {
			// Not a conversation folder. One of these is enough to
			// conclude the root is the wrong directory; stop here and
			// hand back whatever was collected.
			log.Info().Str("folder", folderID).Msg("empty conversation folder, stopping scan")
			result.Truncated = true
			s.report(i+1, total)
			break
		}

		result.Aggregates = append(result.Aggregates, agg)
		result.Totals.Add(agg)
		s.report(i+1, total)
	}

	return result, nil
}

func (s *Scanner) report(processed, total int) {
	if s.progress != nil {
		s.progress(processed, total)
	}
}
