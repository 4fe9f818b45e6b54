package memory

import (
	"sort"
	"strings"
)

const topN = 5

// Aggregator computes corpus-wide statistics. Every call is a fresh full
// scan; nothing is cached.
type Aggregator struct {
	store *Store
}

// NewAggregator creates an Aggregator over the given store.
func NewAggregator(store *Store) *Aggregator {
	return &Aggregator{store: store}
}

// Compute scans all entries and returns totals plus top-5 rankings.
// An empty or unreadable corpus yields zero-valued statistics.
func (a *Aggregator) Compute() Statistics {
	var stats Statistics
	if a == nil || a.store == nil {
		return stats
	}
	entries, err := a.store.AllEntries()
	if err != nil {
		return stats
	}

	sessions := make(map[string]bool)
	topics := make(map[string]int)
	emotions := make(map[string]int)
	people := make(map[string]int)

	for _, en := range entries {
		sessions[en.SessionID] = true
		countInto(topics, en.Topics)
		countInto(emotions, en.Emotions)
		countInto(people, en.People)
	}

	stats.TotalEntries = len(entries)
	stats.TotalSessions = len(sessions)
	stats.TotalTopics = len(topics)
	stats.TotalPeople = len(people)
	stats.TopTopics = topCounts(topics, topN)
	stats.TopEmotions = topCounts(emotions, topN)
	stats.TopPeople = topCounts(people, topN)
	return stats
}

func countInto(counts map[string]int, values []string) {
	for _, v := range values {
		counts[strings.ToLower(v)]++
	}
}

// topCounts ranks labels by raw frequency, highest first. Equal counts are
// ordered by label so repeated calls stay deterministic.
func topCounts(counts map[string]int, n int) []LabelCount {
	out := make([]LabelCount, 0, len(counts))
	for label, count := range counts {
		out = append(out, LabelCount{Label: label, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
