package memory

import (
	"sort"
	"strings"
)

// Field weights for relevance scoring. A term may match several fields of
// the same entry; contributions are additive.
const (
	weightContent = 1.0
	weightTopic   = 1.5
	weightPerson  = 2.0
	weightPlace   = 1.8
	weightEmotion = 1.3

	// Responses carry richer evidence than the interviewer's own prompts.
	responseBoost = 1.1

	defaultLimit = 10
)

// Engine ranks memory entries against free-text queries.
type Engine struct {
	store *Store
}

// NewEngine creates a search Engine over the given store. A nil store
// behaves as an empty corpus.
func NewEngine(store *Store) *Engine {
	return &Engine{store: store}
}

// Search scores every entry against the query and returns at most limit
// results, descending by score. An empty or whitespace-only query yields an
// empty result. Never returns an error: a failing store reads as empty.
func (e *Engine) Search(query string, limit int) []SearchResult {
	terms := normalizeQuery(query)
	if len(terms) == 0 {
		return nil
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	var results []SearchResult
	for _, entry := range e.allEntries() {
		if r, ok := scoreEntry(entry, terms); ok {
			results = append(results, r)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// SearchByTopic returns entries tagged with the topic label (case-insensitive
// equality), newest first, at most limit.
func (e *Engine) SearchByTopic(topic string, limit int) []Entry {
	topic = strings.ToLower(strings.TrimSpace(topic))
	if topic == "" {
		return nil
	}
	return e.filterRecent(limit, func(en Entry) bool {
		for _, t := range en.Topics {
			if strings.ToLower(t) == topic {
				return true
			}
		}
		return false
	})
}

// SearchByPerson returns entries whose people field contains the substring,
// case-insensitively, newest first, at most limit.
func (e *Engine) SearchByPerson(substr string, limit int) []Entry {
	substr = strings.ToLower(strings.TrimSpace(substr))
	if substr == "" {
		return nil
	}
	return e.filterRecent(limit, func(en Entry) bool {
		for _, p := range en.People {
			if strings.Contains(strings.ToLower(p), substr) {
				return true
			}
		}
		return false
	})
}

func (e *Engine) filterRecent(limit int, keep func(Entry) bool) []Entry {
	if limit <= 0 {
		limit = defaultLimit
	}
	var out []Entry
	for _, en := range e.allEntries() {
		if keep(en) {
			out = append(out, en)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (e *Engine) allEntries() []Entry {
	if e == nil || e.store == nil {
		return nil
	}
	entries, err := e.store.AllEntries()
	if err != nil {
		return nil
	}
	return entries
}

// normalizeQuery lower-cases the query, splits on whitespace, and drops
// terms of length <= 2.
func normalizeQuery(query string) []string {
	var terms []string
	for _, t := range strings.Fields(strings.ToLower(query)) {
		if len(t) > 2 {
			terms = append(terms, t)
		}
	}
	return terms
}

// scoreEntry computes the weighted score of one entry against the query
// terms. The match type keeps the last field written in evaluation order
// (content, topic, person, place, emotion); person and place override an
// earlier topic label, while topic and emotion only replace the default
// content classification.
func scoreEntry(entry Entry, terms []string) (SearchResult, bool) {
	content := strings.ToLower(entry.Content)
	score := 0.0
	match := MatchContent
	var matched []string

	for _, term := range terms {
		hit := false
		if strings.Contains(content, term) {
			score += weightContent
			hit = true
		}
		if fieldContains(entry.Topics, term) {
			score += weightTopic
			hit = true
			if match == MatchContent {
				match = MatchTopic
			}
		}
		if fieldContains(entry.People, term) {
			score += weightPerson
			hit = true
			match = MatchPerson
		}
		if fieldContains(entry.Places, term) {
			score += weightPlace
			hit = true
			match = MatchPlace
		}
		if fieldContains(entry.Emotions, term) {
			score += weightEmotion
			hit = true
			if match == MatchContent {
				match = MatchEmotion
			}
		}
		if hit {
			matched = append(matched, term)
		}
	}

	if score == 0 {
		return SearchResult{}, false
	}
	if entry.Type == EntryResponse {
		score *= responseBoost
	}

	return SearchResult{
		Entry:        entry,
		Score:        score,
		MatchedTerms: matched,
		Match:        match,
	}, true
}

func fieldContains(values []string, term string) bool {
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), term) {
			return true
		}
	}
	return false
}
