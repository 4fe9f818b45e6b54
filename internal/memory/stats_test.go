package memory

import (
	"reflect"
	"testing"
)

func TestAggregator_EmptyCorpus(t *testing.T) {
	_, store := setupTestDB(t)
	stats := NewAggregator(store).Compute()

	if stats.TotalEntries != 0 || stats.TotalSessions != 0 {
		t.Errorf("expected zeroed stats, got %+v", stats)
	}
	if len(stats.TopTopics) != 0 || len(stats.TopEmotions) != 0 {
		t.Errorf("expected empty rankings, got %+v", stats)
	}
}

func TestAggregator_CountsAndRankings(t *testing.T) {
	_, store := setupTestDB(t)

	seedEntry(t, store, Entry{SessionID: "s1", Content: "a", Topics: []string{"family", "travel"}, Emotions: []string{"happy"}, People: []string{"my mother"}})
	seedEntry(t, store, Entry{SessionID: "s1", Content: "b", Topics: []string{"family"}, Emotions: []string{"happy", "proud"}})
	seedEntry(t, store, Entry{SessionID: "s2", Content: "c", Topics: []string{"work"}, People: []string{"My Mother", "Dr. Ruiz"}})

	stats := NewAggregator(store).Compute()

	if stats.TotalEntries != 3 {
		t.Errorf("total entries: got %d, want 3", stats.TotalEntries)
	}
	if stats.TotalSessions != 2 {
		t.Errorf("total sessions: got %d, want 2", stats.TotalSessions)
	}
	if stats.TotalTopics != 3 {
		t.Errorf("total topics: got %d, want 3", stats.TotalTopics)
	}
	// "my mother" and "My Mother" collapse case-insensitively.
	if stats.TotalPeople != 2 {
		t.Errorf("total people: got %d, want 2", stats.TotalPeople)
	}
	if len(stats.TopTopics) == 0 || stats.TopTopics[0].Label != "family" || stats.TopTopics[0].Count != 2 {
		t.Errorf("top topics: got %v", stats.TopTopics)
	}
	if len(stats.TopEmotions) == 0 || stats.TopEmotions[0].Label != "happy" {
		t.Errorf("top emotions: got %v", stats.TopEmotions)
	}
}

func TestAggregator_Idempotent(t *testing.T) {
	_, store := setupTestDB(t)
	seedEntry(t, store, Entry{SessionID: "s1", Content: "a", Topics: []string{"family"}})

	agg := NewAggregator(store)
	first := agg.Compute()
	second := agg.Compute()
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated Compute differs:\n%+v\n%+v", first, second)
	}
}

func TestAggregator_ReflectsNewWrites(t *testing.T) {
	_, store := setupTestDB(t)
	agg := NewAggregator(store)

	if agg.Compute().TotalEntries != 0 {
		t.Fatal("expected empty corpus")
	}
	seedEntry(t, store, Entry{SessionID: "s1", Content: "a"})
	if agg.Compute().TotalEntries != 1 {
		t.Error("expected fresh scan to see the new entry")
	}
}

func TestTopCounts_Truncates(t *testing.T) {
	counts := map[string]int{"a": 1, "b": 2, "c": 3, "d": 4, "e": 5, "f": 6}
	top := topCounts(counts, 5)
	if len(top) != 5 {
		t.Fatalf("expected 5, got %d", len(top))
	}
	if top[0].Label != "f" || top[0].Count != 6 {
		t.Errorf("top entry: got %+v", top[0])
	}
}
