package archive

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	cfmerrors "github.com/jkwiatkowski/cfm/internal/errors"
)

func TestNewRejectsMissingRoot(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Fatal("New on missing root returned nil error")
	}
}

func TestNewRejectsPlainFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "file.json", "{}")
	_, err := New(filepath.Join(root, "file.json"))
	if err == nil {
		t.Fatal("New on plain file returned nil error")
	}
}

func TestAggregateOne(t *testing.T) {
	root := t.TempDir()
	writeFolder(t, root, "bob_100", conversationDoc("Bob", "hello there"))

	a, err := New(root)
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	agg, err := a.AggregateOne("bob_100", wideRange(), "Alice")
	if err != nil {
		t.Fatalf("AggregateOne: %v", err)
	}
	if agg.FolderID != "bob_100" || agg.TotalMessages != 1 {
		t.Errorf("got folder %q with %d messages", agg.FolderID, agg.TotalMessages)
	}
}

func TestAggregateOneMissingFolder(t *testing.T) {
	a, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	_, err = a.AggregateOne("gone_1", wideRange(), "Alice")
	var e *cfmerrors.Error
	if !errors.As(err, &e) || e.Code != http.StatusNotFound {
		t.Errorf("error = %v, want folder-not-found", err)
	}
}

func TestFingerprintStableAndSensitive(t *testing.T) {
	root := t.TempDir()
	writeFolder(t, root, "bob_100", conversationDoc("Bob", "hi"))

	a, err := New(root)
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	fp1, err := a.Fingerprint()
	if err != nil {
		t.Fatal(err)
	}
	fp2, err := a.Fingerprint()
	if err != nil {
		t.Fatal(err)
	}
	if fp1 == "" {
		t.Fatal("fingerprint of non-empty tree is empty")
	}
	if fp1 != fp2 {
		t.Errorf("fingerprint not stable: %q vs %q", fp1, fp2)
	}

	// Touching a file must change the fingerprint.
	path := filepath.Join(root, "bob_100", "message_1.json")
	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(path, past, past); err != nil {
		t.Fatal(err)
	}
	fp3, err := a.Fingerprint()
	if err != nil {
		t.Fatal(err)
	}
	if fp3 == fp1 {
		t.Error("fingerprint unchanged after mtime change")
	}
}

func TestFingerprintEmptyTree(t *testing.T) {
	a, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	fp, err := a.Fingerprint()
	if err != nil {
		t.Fatal(err)
	}
	if fp != "" {
		t.Errorf("fingerprint = %q, want empty string", fp)
	}
}

func TestArchiveScan(t *testing.T) {
	root := t.TempDir()
	writeFolder(t, root, "bob_100", conversationDoc("Bob", "hi"))

	a, err := New(root)
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	result, err := a.Scan(wideRange(), "Alice", nil)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(result.Aggregates) != 1 {
		t.Errorf("got %d aggregates, want 1", len(result.Aggregates))
	}
}
