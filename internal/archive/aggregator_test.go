package archive

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jkwiatkowski/cfm/internal/model"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func makeConversation(t *testing.T, docs ...string) string {
	t.Helper()
	dir := t.TempDir()
	for i, doc := range docs {
		writeFile(t, dir, "message_"+string(rune('1'+i))+".json", doc)
	}
	return dir
}

const aliceBobDoc = `{
	"participants": [{"name": "Alice"}, {"name": "Bob"}],
	"messages": [
		{"timestamp_ms": 1700000000000, "sender_name": "Alice", "content": "hi"},
		{"timestamp_ms": 1700000100000, "sender_name": "Bob", "content": "hello there"}
	],
	"title": "Alice & Bob"
}`

func wideRange() model.DateRange {
	return model.ParseDateRange("2023-11-13", "2023-11-16")
}

func aggregate(t *testing.T, dir, owner string, dates model.DateRange) *model.ConversationAggregate {
	t.Helper()
	agg, err := NewAggregator(NewReader(), owner, dates).AggregateFolder(dir, filepath.Base(dir))
	if err != nil {
		t.Fatalf("AggregateFolder: %v", err)
	}
	return agg
}

func TestAggregateBasicConversation(t *testing.T) {
	dir := makeConversation(t, aliceBobDoc)
	agg := aggregate(t, dir, "Alice", wideRange())

	if agg.TotalMessages != 2 {
		t.Errorf("TotalMessages = %d, want 2", agg.TotalMessages)
	}
	if agg.TotalCharacters != 13 {
		t.Errorf("TotalCharacters = %d, want 13", agg.TotalCharacters)
	}
	if agg.SentByOwner != 1 {
		t.Errorf("SentByOwner = %d, want 1", agg.SentByOwner)
	}
	if agg.Kind != model.ChatPrivate {
		t.Errorf("Kind = %q, want private", agg.Kind)
	}
	if agg.Title != "Alice & Bob" {
		t.Errorf("Title = %q", agg.Title)
	}
	if agg.Participants["Alice"] != 1 || agg.Participants["Bob"] != 1 {
		t.Errorf("Participants = %v", agg.Participants)
	}
	if agg.EarliestTimestampMs != 1700000000000 {
		t.Errorf("EarliestTimestampMs = %d", agg.EarliestTimestampMs)
	}
}

func TestAggregateInvariantTotalEqualsParticipantSum(t *testing.T) {
	dir := makeConversation(t, aliceBobDoc)
	agg := aggregate(t, dir, "Alice", wideRange())

	var sum int64
	for _, n := range agg.Participants {
		sum += n
	}
	if sum != agg.TotalMessages {
		t.Errorf("participant sum %d != total %d", sum, agg.TotalMessages)
	}
	if agg.SentByOwner > agg.TotalMessages {
		t.Errorf("SentByOwner %d > TotalMessages %d", agg.SentByOwner, agg.TotalMessages)
	}
}

func TestAggregateDateFilterExcludesEverything(t *testing.T) {
	dir := makeConversation(t, aliceBobDoc)
	agg := aggregate(t, dir, "Alice", model.ParseDateRange("2020-01-01", "2020-12-31"))

	if agg.TotalMessages != 0 {
		t.Errorf("TotalMessages = %d, want 0", agg.TotalMessages)
	}
	// Declared participants stay registered at zero.
	if len(agg.Participants) != 2 {
		t.Errorf("Participants = %v, want Alice and Bob at zero", agg.Participants)
	}
	if agg.Participants["Alice"] != 0 || agg.Participants["Bob"] != 0 {
		t.Errorf("Participants = %v", agg.Participants)
	}
	if agg.EarliestTimestampMs != 0 {
		t.Errorf("EarliestTimestampMs = %d, want sentinel 0", agg.EarliestTimestampMs)
	}
	if agg.Empty() {
		t.Error("aggregate with declared participants must not be empty")
	}
}

func TestAggregateMissingContentCountsZeroCharacters(t *testing.T) {
	doc := `{
		"participants": [{"name": "Alice"}],
		"messages": [{"timestamp_ms": 1700000000000, "sender_name": "Alice"}],
		"title": "Solo"
	}`
	agg := aggregate(t, makeConversation(t, doc), "Alice", wideRange())

	if agg.TotalMessages != 1 {
		t.Errorf("TotalMessages = %d, want 1", agg.TotalMessages)
	}
	if agg.TotalCharacters != 0 {
		t.Errorf("TotalCharacters = %d, want 0", agg.TotalCharacters)
	}
}

func TestAggregateJoinableModeMeansGroup(t *testing.T) {
	doc := `{
		"participants": [{"name": "Alice"}, {"name": "Bob"}],
		"messages": [{"timestamp_ms": 1700000000000, "sender_name": "Alice", "content": "yo"}],
		"title": "The Crew",
		"joinable_mode": {"mode": 1, "link": ""}
	}`
	agg := aggregate(t, makeConversation(t, doc), "Alice", wideRange())
	if agg.Kind != model.ChatGroup {
		t.Errorf("Kind = %q, want group", agg.Kind)
	}
}

func TestAggregateGroupMarkerInAnyFileWins(t *testing.T) {
	group := `{
		"participants": [{"name": "Alice"}],
		"messages": [],
		"title": "The Crew",
		"joinable_mode": {}
	}`
	private := `{
		"participants": [{"name": "Alice"}],
		"messages": [],
		"title": "The Crew 2"
	}`
	agg := aggregate(t, makeConversation(t, group, private), "Alice", wideRange())

	if agg.Kind != model.ChatGroup {
		t.Errorf("Kind = %q, want group when any file carries the marker", agg.Kind)
	}
	// Title is last-seen-wins across files in glob order.
	if agg.Title != "The Crew 2" {
		t.Errorf("Title = %q, want last file's title", agg.Title)
	}
}

func TestAggregateCallsAndMedia(t *testing.T) {
	doc := `{
		"participants": [{"name": "Alice"}, {"name": "Bob"}],
		"messages": [
			{"timestamp_ms": 1700000000000, "sender_name": "Alice", "call_duration": 120},
			{"timestamp_ms": 1700000100000, "sender_name": "Bob", "photos": [{"uri": "a"}, {"uri": "b"}], "gifs": [{"uri": "c"}]},
			{"timestamp_ms": 1700000200000, "sender_name": "Bob", "videos": [{"uri": "d"}], "files": [{"uri": "e"}, {"uri": "f"}, {"uri": "g"}]}
		],
		"title": "Media"
	}`
	agg := aggregate(t, makeConversation(t, doc), "Alice", wideRange())

	if agg.CallDuration != 120 {
		t.Errorf("CallDuration = %d, want 120", agg.CallDuration)
	}
	if agg.PhotoCount != 2 || agg.GifCount != 1 || agg.VideoCount != 1 || agg.FileCount != 3 {
		t.Errorf("media counts = %d/%d/%d/%d", agg.PhotoCount, agg.GifCount, agg.VideoCount, agg.FileCount)
	}
}

func TestAggregateUndeclaredSenderGetsTally(t *testing.T) {
	doc := `{
		"participants": [{"name": "Alice"}],
		"messages": [{"timestamp_ms": 1700000000000, "sender_name": "Ghost", "content": "boo"}],
		"title": "Departed"
	}`
	agg := aggregate(t, makeConversation(t, doc), "Alice", wideRange())

	if agg.Participants["Ghost"] != 1 {
		t.Errorf("Participants = %v, want Ghost counted", agg.Participants)
	}
	if agg.Participants["Alice"] != 0 {
		t.Errorf("Alice tally = %d, want 0", agg.Participants["Alice"])
	}
}

func TestAggregateRedecodesNames(t *testing.T) {
	// "Zoé" mis-encoded in the export; the owner string is the
	// corrected form and must still match.
	doc := `{
		"participants": [{"name": "ZoÃ©"}],
		"messages": [{"timestamp_ms": 1700000000000, "sender_name": "ZoÃ©", "content": "salut"}],
		"title": "ZoÃ©"
	}`
	agg := aggregate(t, makeConversation(t, doc), "Zoé", wideRange())

	if agg.Participants["Zoé"] != 1 {
		t.Errorf("Participants = %v, want corrected name", agg.Participants)
	}
	if agg.SentByOwner != 1 {
		t.Errorf("SentByOwner = %d, want owner matched against corrected form", agg.SentByOwner)
	}
	if agg.Title != "Zoé" {
		t.Errorf("Title = %q", agg.Title)
	}
}

func TestAggregateSkipsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "message_1.json", aliceBobDoc)
	writeFile(t, dir, "message_2.json", "{not json")

	agg := aggregate(t, dir, "Alice", wideRange())
	if agg.TotalMessages != 2 {
		t.Errorf("TotalMessages = %d, want the good file still counted", agg.TotalMessages)
	}
}

func TestAggregateFoldsMultipleFiles(t *testing.T) {
	part1 := `{
		"participants": [{"name": "Alice"}, {"name": "Bob"}],
		"messages": [{"timestamp_ms": 1700000100000, "sender_name": "Bob", "content": "hello there"}],
		"title": "Alice & Bob"
	}`
	part2 := `{
		"participants": [{"name": "Alice"}, {"name": "Bob"}],
		"messages": [{"timestamp_ms": 1700000000000, "sender_name": "Alice", "content": "hi"}],
		"title": "Alice & Bob"
	}`
	agg := aggregate(t, makeConversation(t, part1, part2), "Alice", wideRange())

	if agg.TotalMessages != 2 {
		t.Errorf("TotalMessages = %d, want 2 across files", agg.TotalMessages)
	}
	if agg.EarliestTimestampMs != 1700000000000 {
		t.Errorf("EarliestTimestampMs = %d, want minimum across files", agg.EarliestTimestampMs)
	}
}
