package rowstore

import (
	"sort"
	"strconv"
	"strings"

	"github.com/jkwiatkowski/cfm/internal/model"
)

// Column identifiers for the displayed row set. Sorting and filtering
// address columns by these keys.
const (
	ColName         = "name"
	ColParticipants = "pep"
	ColType         = "type"
	ColMessages     = "msg"
	ColCall         = "call"
	ColPhotos       = "photos"
	ColGifs         = "gifs"
	ColVideos       = "videos"
	ColFiles        = "files"
	ColCharacters   = "chars"
)

// Bias declares how a column's values compare.
type Bias string

const (
	Stringwise Bias = "stringwise"
	Numberwise Bias = "numberwise"
)

// ColumnBiases maps every sortable column to its comparison bias. The
// participants column sorts by participant count.
var ColumnBiases = map[string]Bias{
	ColName:         Stringwise,
	ColParticipants: Numberwise,
	ColType:         Stringwise,
	ColMessages:     Numberwise,
	ColCall:         Numberwise,
	ColPhotos:       Numberwise,
	ColGifs:         Numberwise,
	ColVideos:       Numberwise,
	ColFiles:        Numberwise,
	ColCharacters:   Numberwise,
}

// Row is one displayed conversation. Participants holds the full name
// set in sorted order; its length is the value the participants column
// sorts on.
type Row struct {
	Name         string         `json:"name"`
	Participants []string       `json:"participants"`
	Kind         model.ChatKind `json:"type"`
	Messages     int64          `json:"message_count"`
	CallDuration int64          `json:"call_duration"`
	Photos       int64          `json:"photo_count"`
	Gifs         int64          `json:"gif_count"`
	Videos       int64          `json:"video_count"`
	Files        int64          `json:"file_count"`
	Characters   int64          `json:"character_count"`
	FolderID     string         `json:"folder_id"`
}

// FromAggregate maps a completed aggregate onto its display row.
func FromAggregate(a *model.ConversationAggregate) Row {
	names := make([]string, 0, len(a.Participants))
	for name := range a.Participants {
		names = append(names, name)
	}
	sort.Strings(names)
	return Row{
		Name:         a.Title,
		Participants: names,
		Kind:         a.Kind,
		Messages:     a.TotalMessages,
		CallDuration: a.CallDuration,
		Photos:       a.PhotoCount,
		Gifs:         a.GifCount,
		Videos:       a.VideoCount,
		Files:        a.FileCount,
		Characters:   a.TotalCharacters,
		FolderID:     a.FolderID,
	}
}

// Store holds the full scanned row set in memory and answers sort,
// search and filter requests from the presentation layer. It is not
// safe for concurrent mutation; callers serialize access the same way
// the scan itself is serialized.
type Store struct {
	rows []Row
}

func New() *Store {
	return &Store{}
}

// NewFromAggregates builds a store over the aggregates of one scan,
// preserving their order.
func NewFromAggregates(aggs []*model.ConversationAggregate) *Store {
	rows := make([]Row, 0, len(aggs))
	for _, a := range aggs {
		rows = append(rows, FromAggregate(a))
	}
	return &Store{rows: rows}
}

// Reset replaces the row set.
func (s *Store) Reset(rows []Row) {
	s.rows = rows
}

func (s *Store) Len() int {
	return len(s.rows)
}

// Rows returns a copy of the current row set in its current order.
func (s *Store) Rows() []Row {
	out := make([]Row, len(s.rows))
	copy(out, s.rows)
	return out
}

// Search returns the rows whose displayed values contain the query as a
// substring, ignoring case. An empty query matches everything.
func (s *Store) Search(query string) []Row {
	if query == "" {
		return s.Rows()
	}
	q := strings.ToLower(query)
	out := make([]Row, 0)
	for _, r := range s.rows {
		if rowMatchesQuery(r, q) {
			out = append(out, r)
		}
	}
	return out
}

func rowMatchesQuery(r Row, q string) bool {
	for _, v := range displayedValues(r) {
		if strings.Contains(strings.ToLower(v), q) {
			return true
		}
	}
	return false
}

// displayedValues lists every cell of the row as it would appear in the
// table, numbers included.
func displayedValues(r Row) []string {
	return []string{
		r.Name,
		strings.Join(r.Participants, ", "),
		string(r.Kind),
		strconv.FormatInt(r.Messages, 10),
		strconv.FormatInt(r.CallDuration, 10),
		strconv.FormatInt(r.Photos, 10),
		strconv.FormatInt(r.Gifs, 10),
		strconv.FormatInt(r.Videos, 10),
		strconv.FormatInt(r.Files, 10),
		strconv.FormatInt(r.Characters, 10),
	}
}
