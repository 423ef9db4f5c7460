package model

import "time"

// ChatKind classifies a conversation. GROUP is derived from the
// joinable_mode marker in the export; everything else is PRIVATE.
type ChatKind string

const (
	ChatPrivate ChatKind = "private"
	ChatGroup   ChatKind = "group"
)

// ConversationAggregate is the summarized record of one conversation
// folder after date filtering. Participants maps every name ever seen
// as a declared participant or sender to that participant's message
// count inside the filtered range; declared participants who never sent
// a filtered-in message stay at zero.
type ConversationAggregate struct {
	Title        string           `json:"title"`
	Kind         ChatKind         `json:"kind"`
	Participants map[string]int64 `json:"participants"`

	TotalMessages   int64 `json:"total_messages"`
	TotalCharacters int64 `json:"total_characters"`
	SentByOwner     int64 `json:"sent_by_owner"`
	CallDuration    int64 `json:"call_duration_seconds"`

	// EarliestTimestampMs is the minimum timestamp among filtered-in
	// messages, 0 when nothing matched the filter.
	EarliestTimestampMs int64 `json:"earliest_timestamp_ms"`

	PhotoCount int64 `json:"photo_count"`
	GifCount   int64 `json:"gif_count"`
	VideoCount int64 `json:"video_count"`
	FileCount  int64 `json:"file_count"`

	// FolderID is the conversation folder name under the archive root,
	// used for on-demand detail re-fetch.
	FolderID string `json:"folder_id"`
}

// Empty reports whether the folder produced no usable conversation
// data. The scanner treats the first empty aggregate as proof that the
// selected root is not an inbox-style export directory.
func (a *ConversationAggregate) Empty() bool {
	return len(a.Participants) == 0
}

// MessageAverages is the per-period message rate for one conversation,
// measured from the earliest filtered-in message to now. All zero when
// no message matched or no time has elapsed.
type MessageAverages struct {
	PerDay   float64 `json:"per_day"`
	PerWeek  float64 `json:"per_week"`
	PerMonth float64 `json:"per_month"`
	PerYear  float64 `json:"per_year"`
}

// Averages computes the message-rate summary at the given instant.
func (a *ConversationAggregate) Averages(now time.Time) MessageAverages {
	if a.EarliestTimestampMs == 0 {
		return MessageAverages{}
	}
	elapsed := now.Unix() - a.EarliestTimestampMs/1000
	if elapsed <= 0 {
		return MessageAverages{}
	}
	msgs := float64(a.TotalMessages)
	sec := float64(elapsed)
	return MessageAverages{
		PerDay:   msgs / (sec / 86400),
		PerWeek:  msgs / (sec / (7 * 86400)),
		PerMonth: msgs / (sec / (30 * 86400)),
		PerYear:  msgs / (sec / (365 * 86400)),
	}
}

// GlobalTotals accumulates archive-wide counters across one scan. It is
// reset at scan start and owned by the scan's caller afterwards.
type GlobalTotals struct {
	TotalMessages   int64 `json:"total_messages"`
	SentByOwner     int64 `json:"sent_by_owner"`
	TotalCharacters int64 `json:"total_characters"`
}

// Add folds one completed aggregate into the running totals.
func (t *GlobalTotals) Add(a *ConversationAggregate) {
	t.TotalMessages += a.TotalMessages
	t.SentByOwner += a.SentByOwner
	t.TotalCharacters += a.TotalCharacters
}
