package memory

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/angeloromano11/bitiacora/internal/db"
)

// Store provides read/write access to the Bitácora SQLite database. It is an
// append-only log: entries are inserted, scanned, and cascade-deleted with
// their session, never updated.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given DB.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Conn exposes the underlying *sql.DB for low-level queries.
func (s *Store) Conn() *sql.DB {
	return s.db.Conn()
}

// ---- Sessions ----

// CreateSession inserts a new session record, generating its id when absent.
func (s *Store) CreateSession(sess Session) (Session, error) {
	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = time.Now().UTC()
	}
	if sess.Type == "" {
		sess.Type = "memory"
	}
	_, err := s.db.Conn().Exec(`
		INSERT INTO sessions (id, title, session_type, created_at)
		VALUES (?, ?, ?, ?)`,
		sess.ID, sess.Title, sess.Type, sess.CreatedAt.Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return Session{}, fmt.Errorf("store: create session: %w", err)
	}
	return sess, nil
}

// Sessions returns all sessions, newest first.
func (s *Store) Sessions() ([]Session, error) {
	rows, err := s.db.Conn().Query(
		`SELECT id, title, session_type, created_at FROM sessions ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("store: list sessions: %w", err)
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		var sess Session
		var createdAt string
		if err := rows.Scan(&sess.ID, &sess.Title, &sess.Type, &createdAt); err != nil {
			return nil, err
		}
		sess.CreatedAt = parseTime(createdAt)
		out = append(out, sess)
	}
	return out, rows.Err()
}

// DeleteSession removes a session; its entries are cascade-deleted by SQLite.
func (s *Store) DeleteSession(id string) error {
	res, err := s.db.Conn().Exec(`DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete session: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("store: session %q not found", id)
	}
	return nil
}

// ---- Entries ----

// Append inserts a new entry, generating its id and timestamp when absent,
// and returns the stored entry. The owning session row is created on demand
// so that appends from the transcript pipeline never race session setup.
func (s *Store) Append(e Entry) (Entry, error) {
	if e.SessionID == "" {
		return Entry{}, fmt.Errorf("store: append: empty session id")
	}
	if e.ID == "" {
		e.ID = ulid.Make().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	if e.Type == "" {
		e.Type = EntryResponse
	}

	if _, err := s.db.Conn().Exec(
		`INSERT OR IGNORE INTO sessions (id) VALUES (?)`, e.SessionID,
	); err != nil {
		return Entry{}, fmt.Errorf("store: ensure session: %w", err)
	}

	_, err := s.db.Conn().Exec(`
		INSERT INTO entries (id, session_id, entry_type, content, topics, people, places, emotions, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.SessionID, string(e.Type), e.Content,
		marshalList(e.Topics), marshalList(e.People), marshalList(e.Places), marshalList(e.Emotions),
		e.CreatedAt.Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("store: append entry: %w", err)
	}
	return e, nil
}

// EntriesForSession returns a session's entries ordered by timestamp
// ascending (entry id breaks ties — ULIDs sort by creation time).
func (s *Store) EntriesForSession(sessionID string) ([]Entry, error) {
	rows, err := s.db.Conn().Query(`
		SELECT id, session_id, entry_type, content, topics, people, places, emotions, created_at
		FROM entries WHERE session_id = ? ORDER BY created_at, id`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("store: entries for session: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// AllEntries returns every entry in the corpus. No order is guaranteed.
func (s *Store) AllEntries() ([]Entry, error) {
	rows, err := s.db.Conn().Query(`
		SELECT id, session_id, entry_type, content, topics, people, places, emotions, created_at
		FROM entries`,
	)
	if err != nil {
		return nil, fmt.Errorf("store: all entries: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// DeleteForSession removes all entries belonging to a session, keeping the
// session record itself.
func (s *Store) DeleteForSession(sessionID string) error {
	_, err := s.db.Conn().Exec(`DELETE FROM entries WHERE session_id = ?`, sessionID)
	if err != nil {
		return fmt.Errorf("store: delete for session: %w", err)
	}
	return nil
}

// CountEntries returns the total number of stored entries.
func (s *Store) CountEntries() (int, error) {
	var n int
	err := s.db.Conn().QueryRow(`SELECT COUNT(*) FROM entries`).Scan(&n)
	return n, err
}

// ---- Helpers ----

func marshalList(values []string) string {
	if len(values) == 0 {
		return "[]"
	}
	b, _ := json.Marshal(values)
	return string(b)
}

func unmarshalList(raw string) []string {
	if raw == "" || raw == "[]" {
		return nil
	}
	var out []string
	_ = json.Unmarshal([]byte(raw), &out)
	return out
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var out []Entry
	for rows.Next() {
		var e Entry
		var entryType, topics, people, places, emotions, createdAt string
		if err := rows.Scan(&e.ID, &e.SessionID, &entryType, &e.Content,
			&topics, &people, &places, &emotions, &createdAt); err != nil {
			return nil, err
		}
		e.Type = ParseEntryType(entryType)
		e.Topics = unmarshalList(topics)
		e.People = unmarshalList(people)
		e.Places = unmarshalList(places)
		e.Emotions = unmarshalList(emotions)
		e.CreatedAt = parseTime(createdAt)
		out = append(out, e)
	}
	return out, rows.Err()
}

// parseTime tries multiple SQLite timestamp layouts. go-sqlite3 may return
// RFC3339 or the plain "2006-01-02 15:04:05" format depending on the
// connection string and platform.
func parseTime(s string) time.Time {
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
