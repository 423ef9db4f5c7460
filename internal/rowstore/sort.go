package rowstore

import (
	"fmt"
	"sort"
	"strings"
)

// SortKey is one element of a multi-sort ordering.
type SortKey struct {
	Column   string `json:"column"`
	Reversed bool   `json:"reversed"`
}

// Sort orders the rows by a single column with its declared bias.
func (s *Store) Sort(column string, descending bool) error {
	return s.MultiSort([]SortKey{{Column: column, Reversed: descending}})
}

// MultiSort orders the rows by the given keys in priority order: ties
// on an earlier key are broken by the next one, and rows tying on every
// key keep their prior relative order. The tie-break chain is a flat
// loop over the keys, not a comparator-of-comparators.
func (s *Store) MultiSort(keys []SortKey) error {
	for _, k := range keys {
		if _, ok := ColumnBiases[k.Column]; !ok {
			return fmt.Errorf("unknown sort column %q", k.Column)
		}
	}
	sort.SliceStable(s.rows, func(i, j int) bool {
		for _, k := range keys {
			c := compareColumn(s.rows[i], s.rows[j], k.Column)
			if k.Reversed {
				c = -c
			}
			if c != 0 {
				return c < 0
			}
		}
		return false
	})
	return nil
}

func compareColumn(a, b Row, column string) int {
	if ColumnBiases[column] == Numberwise {
		av, bv := numericValue(a, column), numericValue(b, column)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
		return 0
	}
	return strings.Compare(stringValue(a, column), stringValue(b, column))
}

func numericValue(r Row, column string) int64 {
	switch column {
	case ColParticipants:
		return int64(len(r.Participants))
	case ColMessages:
		return r.Messages
	case ColCall:
		return r.CallDuration
	case ColPhotos:
		return r.Photos
	case ColGifs:
		return r.Gifs
	case ColVideos:
		return r.Videos
	case ColFiles:
		return r.Files
	case ColCharacters:
		return r.Characters
	}
	return 0
}

func stringValue(r Row, column string) string {
	switch column {
	case ColName:
		return r.Name
	case ColType:
		return string(r.Kind)
	}
	return ""
}
