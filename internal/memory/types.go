// Package memory defines types for Bitácora's memory corpus: extracted
// entries, recording sessions, search results, and chat turns.
package memory

import "time"

// EntryType classifies the provenance of a stored entry.
type EntryType string

const (
	EntryQuestion EntryType = "question"
	EntryResponse EntryType = "response"
	EntrySummary  EntryType = "summary"
)

// ParseEntryType maps a stored string to an EntryType. Unknown values
// default to EntryResponse so that rows written by older builds keep loading.
func ParseEntryType(s string) EntryType {
	switch EntryType(s) {
	case EntryQuestion, EntrySummary:
		return EntryType(s)
	default:
		return EntryResponse
	}
}

// Entry is a single immutable fact extracted from a recording session.
// Entries are never mutated after insertion and are removed only when the
// owning session is deleted.
type Entry struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Type      EntryType `json:"entry_type"`
	Content   string    `json:"content"`
	Topics    []string  `json:"topics,omitempty"`
	People    []string  `json:"people,omitempty"`
	Places    []string  `json:"places,omitempty"`
	Emotions  []string  `json:"emotions,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is one recorded interview or practice take.
type Session struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Type      string    `json:"session_type"`
	CreatedAt time.Time `json:"created_at"`
}

// MatchType labels the dominant signal behind a search hit.
type MatchType string

const (
	MatchContent MatchType = "content"
	MatchTopic   MatchType = "topic"
	MatchPerson  MatchType = "person"
	MatchPlace   MatchType = "place"
	MatchEmotion MatchType = "emotion"
)

// SearchResult wraps an Entry with its computed relevance. Results are
// ephemeral: recomputed on every query, never persisted.
type SearchResult struct {
	Entry
	Score        float64
	MatchedTerms []string
	Match        MatchType
}

// Role identifies a chat turn's author.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is one turn in the assistant conversation. SourceCount is the
// number of memory records that grounded an assistant reply; it stays zero
// on user turns.
type ChatMessage struct {
	Role        Role
	Content     string
	CreatedAt   time.Time
	SourceCount int
}

// LabelCount pairs a label with its occurrence count.
type LabelCount struct {
	Label string
	Count int
}

// Statistics summarises the corpus. Derived on demand, never persisted.
type Statistics struct {
	TotalEntries  int
	TotalSessions int
	TotalTopics   int
	TotalPeople   int
	TopTopics     []LabelCount
	TopEmotions   []LabelCount
	TopPeople     []LabelCount
}
