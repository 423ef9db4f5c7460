package model

import "encoding/json"

// Participant is a declared member of a conversation as listed in the
// export's participants array.
type Participant struct {
	Name string `json:"name"`
}

// Attachment is a single media entry inside a message. The export lists
// metadata only; payloads live elsewhere and are never read.
type Attachment struct {
	URI               string `json:"uri,omitempty"`
	CreationTimestamp int64  `json:"creation_timestamp,omitempty"`
}

// RawMessage is one message object as it appears in an export file.
// Content and CallDuration are optional in the source format; each
// attachment list may be absent entirely.
type RawMessage struct {
	TimestampMs  int64        `json:"timestamp_ms"`
	SenderName   string       `json:"sender_name"`
	Content      string       `json:"content,omitempty"`
	CallDuration int64        `json:"call_duration,omitempty"`
	Photos       []Attachment `json:"photos,omitempty"`
	Gifs         []Attachment `json:"gifs,omitempty"`
	Videos       []Attachment `json:"videos,omitempty"`
	Files        []Attachment `json:"files,omitempty"`
}

// ArchiveDocument is one decoded message_N.json file. A conversation
// folder may split its history across several numbered documents.
//
// JoinableMode is kept as a raw JSON fragment: the exporter only emits
// the key for group conversations and its value carries no information
// we use, so presence of the key is the whole signal.
type ArchiveDocument struct {
	Participants []Participant   `json:"participants"`
	Messages     []RawMessage    `json:"messages"`
	Title        string          `json:"title"`
	JoinableMode json.RawMessage `json:"joinable_mode,omitempty"`
}

// IsGroup reports whether this document carries the group marker.
// A present key with any value, including null, counts.
func (d *ArchiveDocument) IsGroup() bool {
	return len(d.JoinableMode) > 0
}
