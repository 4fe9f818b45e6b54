package cli

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/angeloromano11/bitiacora/internal/db"
	"github.com/angeloromano11/bitiacora/internal/memory"
)

func setupTestStore(t *testing.T) *memory.Store {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return memory.NewStore(database)
}

func TestSplitParagraphs(t *testing.T) {
	text := "First paragraph\nwith a wrapped line.\n\n\nSecond paragraph.\n\n   \n"
	got := splitParagraphs(text)
	want := []string{"First paragraph with a wrapped line.", "Second paragraph."}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSplitParagraphs_Empty(t *testing.T) {
	if got := splitParagraphs("  \n \n\n"); got != nil {
		t.Errorf("got %v, want nil", got)
	}
}

func TestIngestFile(t *testing.T) {
	store := setupTestStore(t)

	path := filepath.Join(t.TempDir(), "diary.txt")
	content := "My mother took me to Paris when I was young. I was so happy.\n\nWe visited the lake every summer with my grandmother.\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	n, err := ingestFile(store, path, "", "memory")
	if err != nil {
		t.Fatalf("ingestFile: %v", err)
	}
	if n != 2 {
		t.Errorf("imported %d, want 2", n)
	}

	sessions, err := store.Sessions()
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 1 {
		t.Fatalf("sessions = %d, want 1", len(sessions))
	}
	if sessions[0].Title != "diary" {
		t.Errorf("title = %q, want diary", sessions[0].Title)
	}

	entries, err := store.EntriesForSession(sessions[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	// Extraction ran during import.
	if len(entries[0].People) == 0 {
		t.Error("first entry has no extracted people")
	}
	if len(entries[0].Places) == 0 {
		t.Error("first entry has no extracted places")
	}
}

func TestIsTextFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"diary.txt", true},
		{"notes.MD", true},
		{"photo.jpg", false},
		{"archive.tar.gz", false},
	}
	for _, tt := range tests {
		if got := isTextFile(tt.path); got != tt.want {
			t.Errorf("isTextFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestPreview(t *testing.T) {
	if got := preview("short", 10); got != "short" {
		t.Errorf("got %q", got)
	}
	if got := preview("a much longer string here", 10); got != "a much ..." {
		t.Errorf("got %q", got)
	}
	if len(preview("a much longer string here", 10)) != 10 {
		t.Error("preview exceeds max")
	}
}
