package archive

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	cfmerrors "github.com/jkwiatkowski/cfm/internal/errors"
)

func writeFolder(t *testing.T, root, folderID, doc string) {
	t.Helper()
	dir := filepath.Join(root, folderID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if doc != "" {
		writeFile(t, dir, "message_1.json", doc)
	}
}

func conversationDoc(sender, content string) string {
	return `{
		"participants": [{"name": "Alice"}, {"name": "` + sender + `"}],
		"messages": [{"timestamp_ms": 1700000000000, "sender_name": "` + sender + `", "content": "` + content + `"}],
		"title": "` + sender + `"
	}`
}

func scanRoot(t *testing.T, root string, progress ProgressFunc) *ScanResult {
	t.Helper()
	agg := NewAggregator(NewReader(), "Alice", wideRange())
	result, err := NewScanner(root, agg, progress).Scan()
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	return result
}

func TestScanAggregatesEveryFolder(t *testing.T) {
	root := t.TempDir()
	writeFolder(t, root, "bob_100", conversationDoc("Bob", "hello there"))
	writeFolder(t, root, "carol_200", conversationDoc("Carol", "hi"))

	result := scanRoot(t, root, nil)

	if len(result.Aggregates) != 2 {
		t.Fatalf("got %d aggregates, want 2", len(result.Aggregates))
	}
	if result.Truncated {
		t.Error("Truncated = true, want false")
	}
	// os.ReadDir lists lexically, so folder order is deterministic.
	if result.Aggregates[0].FolderID != "bob_100" || result.Aggregates[1].FolderID != "carol_200" {
		t.Errorf("folder order = %q, %q", result.Aggregates[0].FolderID, result.Aggregates[1].FolderID)
	}
	if result.Totals.TotalMessages != 2 {
		t.Errorf("Totals.TotalMessages = %d, want 2", result.Totals.TotalMessages)
	}
	if result.Totals.TotalCharacters != 13 {
		t.Errorf("Totals.TotalCharacters = %d, want 13", result.Totals.TotalCharacters)
	}
	if result.Totals.SentByOwner != 0 {
		t.Errorf("Totals.SentByOwner = %d, want 0", result.Totals.SentByOwner)
	}
}

func TestScanStopsAtFirstEmptyFolder(t *testing.T) {
	root := t.TempDir()
	writeFolder(t, root, "a_bob", conversationDoc("Bob", "hi"))
	writeFolder(t, root, "b_empty", "") // no export files at all
	writeFolder(t, root, "c_carol", conversationDoc("Carol", "hi"))

	result := scanRoot(t, root, nil)

	if !result.Truncated {
		t.Fatal("Truncated = false, want true")
	}
	if len(result.Aggregates) != 1 {
		t.Fatalf("got %d aggregates, want only the folder before the stop", len(result.Aggregates))
	}
	if result.Aggregates[0].FolderID != "a_bob" {
		t.Errorf("FolderID = %q", result.Aggregates[0].FolderID)
	}
}

func TestScanEmptyDeclaredParticipantsStops(t *testing.T) {
	root := t.TempDir()
	// Parses fine but declares nobody and contains no messages.
	writeFolder(t, root, "junk", `{"participants": [], "messages": [], "title": ""}`)

	result := scanRoot(t, root, nil)
	if !result.Truncated {
		t.Error("Truncated = false, want true")
	}
	if len(result.Aggregates) != 0 {
		t.Errorf("got %d aggregates, want 0", len(result.Aggregates))
	}
}

func TestScanIgnoresPlainFilesAtRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "autofill_information.json", "{}")
	writeFolder(t, root, "bob_100", conversationDoc("Bob", "hi"))

	result := scanRoot(t, root, nil)
	if len(result.Aggregates) != 1 {
		t.Fatalf("got %d aggregates, want 1", len(result.Aggregates))
	}
}

func TestScanMissingRoot(t *testing.T) {
	agg := NewAggregator(NewReader(), "Alice", wideRange())
	_, err := NewScanner(filepath.Join(t.TempDir(), "nope"), agg, nil).Scan()
	if err == nil {
		t.Fatal("Scan on missing root returned nil error")
	}
	var e *cfmerrors.Error
	if !errors.As(err, &e) || e.Code != http.StatusNotFound {
		t.Errorf("error = %v, want root-not-found", err)
	}
}

func TestScanReportsProgress(t *testing.T) {
	root := t.TempDir()
	writeFolder(t, root, "bob_100", conversationDoc("Bob", "hi"))
	writeFolder(t, root, "carol_200", conversationDoc("Carol", "hi"))

	var calls [][2]int
	scanRoot(t, root, func(processed, total int) {
		calls = append(calls, [2]int{processed, total})
	})

	want := [][2]int{{1, 2}, {2, 2}}
	if len(calls) != len(want) {
		t.Fatalf("got %d progress calls, want %d", len(calls), len(want))
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("call %d = %v, want %v", i, calls[i], want[i])
		}
	}
}

func TestScanProgressOnTruncation(t *testing.T) {
	root := t.TempDir()
	writeFolder(t, root, "a_empty", "")
	writeFolder(t, root, "b_bob", conversationDoc("Bob", "hi"))

	var last [2]int
	result := scanRoot(t, root, func(processed, total int) {
		last = [2]int{processed, total}
	})

	if !result.Truncated {
		t.Fatal("Truncated = false, want true")
	}
	// The stopping folder still reports before the scan ends.
	if last != [2]int{1, 2} {
		t.Errorf("last progress = %v, want {1 2}", last)
	}
}
