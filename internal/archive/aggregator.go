package archive

import (
	"unicode/utf8"

	"github.com/jkwiatkowski/cfm/internal/model"
)

// Aggregator folds the raw message stream of one conversation folder
// into a single ConversationAggregate, applying the date filter and the
// owner identity.
type Aggregator struct {
	reader *Reader
	owner  string
	dates  model.DateRange
}

func NewAggregator(reader *Reader, owner string, dates model.DateRange) *Aggregator {
	return &Aggregator{reader: reader, owner: owner, dates: dates}
}

// AggregateFolder reads and folds every export file in dir. folderID is
// recorded verbatim on the result for later detail re-fetch. An
// aggregate with no participants means the folder held no usable
// conversation data.
func (g *Aggregator) AggregateFolder(dir string, folderID string) (*model.ConversationAggregate, error) {
	docs, err := g.reader.ReadFolder(dir)
	if err != nil {
		return nil, err
	}
	return g.fold(docs, folderID), nil
}

func (g *Aggregator) fold(docs []*model.ArchiveDocument, folderID string) *model.ConversationAggregate {
	agg := &model.ConversationAggregate{
		Kind:         model.ChatPrivate,
		Participants: make(map[string]int64),
		FolderID:     folderID,
	}

	for _, doc := range docs {
		// Declared participants are registered at zero even when every
		// one of their messages falls outside the date range.
		for _, p := range doc.Participants {
			if _, ok := agg.Participants[p.Name]; !ok {
				agg.Participants[p.Name] = 0
			}
		}

		for i := range doc.Messages {
			g.foldMessage(agg, &doc.Messages[i])
		}

		// Files of one conversation are expected to agree on the title;
		// when they disagree the last one wins.
		agg.Title = doc.Title
		if doc.IsGroup() {
			agg.Kind = model.ChatGroup
		}
	}
	return agg
}

func (g *Aggregator) foldMessage(agg *model.ConversationAggregate, msg *model.RawMessage) {
	if !g.dates.Contains(msg.TimestampMs) {
		return
	}

	agg.TotalMessages++
	agg.TotalCharacters += int64(utf8.RuneCountInString(msg.Content))
	if msg.SenderName == g.owner {
		agg.SentByOwner++
	}

	// Senders outside the declared participant list still get a tally;
	// departed group members keep showing up on old messages.
	agg.Participants[msg.SenderName]++

	agg.CallDuration += msg.CallDuration
	if agg.EarliestTimestampMs == 0 || msg.TimestampMs < agg.EarliestTimestampMs {
		agg.EarliestTimestampMs = msg.TimestampMs
	}

	agg.PhotoCount += int64(len(msg.Photos))
	agg.GifCount += int64(len(msg.Gifs))
	agg.VideoCount += int64(len(msg.Videos))
	agg.FileCount += int64(len(msg.Files))
}
