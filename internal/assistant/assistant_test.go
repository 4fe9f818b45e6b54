package assistant

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/angeloromano11/bitiacora/internal/db"
	"github.com/angeloromano11/bitiacora/internal/genai"
	"github.com/angeloromano11/bitiacora/internal/memory"
)

// fakeGenerator captures the prompt and returns scripted replies.
type fakeGenerator struct {
	prompts []string
	reply   string
	err     error
}

func (f *fakeGenerator) Generate(ctx context.Context, req genai.Request) (string, error) {
	f.prompts = append(f.prompts, req.Prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeGenerator) Info() genai.ModelInfo {
	return genai.ModelInfo{Name: "fake", Provider: "fake"}
}

func (f *fakeGenerator) lastPrompt(t *testing.T) string {
	t.Helper()
	if len(f.prompts) == 0 {
		t.Fatal("generator was never called")
	}
	return f.prompts[len(f.prompts)-1]
}

func setupTestStore(t *testing.T) *memory.Store {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return memory.NewStore(database)
}

func seedEntry(t *testing.T, store *memory.Store, sessionID, content string) {
	t.Helper()
	e := memory.Entry{SessionID: sessionID, Content: content}
	memory.Extract(&e)
	if _, err := store.Append(e); err != nil {
		t.Fatalf("append: %v", err)
	}
}

func newTestAssistant(t *testing.T, gen genai.Generator, store *memory.Store) *Assistant {
	t.Helper()
	return New(gen, memory.NewEngine(store), memory.NewAggregator(store))
}

func TestAskQuestion_NotConfigured(t *testing.T) {
	a := newTestAssistant(t, nil, setupTestStore(t))
	_, err := a.AskQuestion(context.Background(), "What do I remember?")
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("err = %v, want ErrNotConfigured", err)
	}
	if len(a.History()) != 0 {
		t.Error("unconfigured ask should not record history")
	}
}

func TestAskQuestion_Pipeline(t *testing.T) {
	store := setupTestStore(t)
	seedEntry(t, store, "s1", "My grandmother told wonderful stories about her farm in Ohio.")
	seedEntry(t, store, "s2", "I visited my grandmother every summer as a child.")

	gen := &fakeGenerator{reply: "You spent summers with your grandmother."}
	a := newTestAssistant(t, gen, store)

	ans, err := a.AskQuestion(context.Background(), "grandmother summers")
	if err != nil {
		t.Fatalf("AskQuestion: %v", err)
	}
	if ans.Message.Content != "You spent summers with your grandmother." {
		t.Errorf("answer = %q", ans.Message.Content)
	}
	if ans.Sources != 2 {
		t.Errorf("sources = %d, want 2", ans.Sources)
	}
	if ans.Sessions != 2 {
		t.Errorf("sessions = %d, want 2", ans.Sessions)
	}
	if ans.Message.SourceCount != 2 {
		t.Errorf("message source count = %d, want 2", ans.Message.SourceCount)
	}

	prompt := gen.lastPrompt(t)
	if !strings.Contains(prompt, "grandmother") {
		t.Error("prompt missing excerpt content")
	}
	if !strings.Contains(prompt, "Question: grandmother summers") {
		t.Error("prompt missing literal question")
	}

	hist := a.History()
	if len(hist) != 2 {
		t.Fatalf("history length = %d, want 2", len(hist))
	}
	if hist[0].Role != memory.RoleUser || hist[1].Role != memory.RoleAssistant {
		t.Errorf("history roles = %v, %v", hist[0].Role, hist[1].Role)
	}
}

func TestAskQuestion_EmptyCorpus(t *testing.T) {
	gen := &fakeGenerator{reply: "I have no memories of that."}
	a := newTestAssistant(t, gen, setupTestStore(t))

	ans, err := a.AskQuestion(context.Background(), "grandmother")
	if err != nil {
		t.Fatalf("AskQuestion: %v", err)
	}
	if ans.Sources != 0 || ans.Sessions != 0 {
		t.Errorf("sources = %d, sessions = %d, want 0, 0", ans.Sources, ans.Sessions)
	}
	if !strings.Contains(gen.lastPrompt(t), "do not invent details") {
		t.Error("empty-corpus prompt missing no-fabrication instruction")
	}
}

func TestAskQuestion_GenerationError(t *testing.T) {
	genErr := errors.New("provider down")
	gen := &fakeGenerator{err: genErr}
	a := newTestAssistant(t, gen, setupTestStore(t))

	_, err := a.AskQuestion(context.Background(), "anything")
	if !errors.Is(err, genErr) {
		t.Errorf("err = %v, want wrapped provider error", err)
	}
	// The question stays in history so a retry carries context.
	hist := a.History()
	if len(hist) != 1 || hist[0].Role != memory.RoleUser {
		t.Errorf("history after failure = %+v", hist)
	}
}

func TestAskQuestion_HistoryInPrompt(t *testing.T) {
	gen := &fakeGenerator{reply: "ok"}
	a := newTestAssistant(t, gen, setupTestStore(t))

	if _, err := a.AskQuestion(context.Background(), "first question"); err != nil {
		t.Fatal(err)
	}
	if _, err := a.AskQuestion(context.Background(), "second question"); err != nil {
		t.Fatal(err)
	}

	prompt := gen.lastPrompt(t)
	if !strings.Contains(prompt, "User: first question") {
		t.Error("prompt missing prior user turn")
	}
	if !strings.Contains(prompt, "Assistant: ok") {
		t.Error("prompt missing prior assistant turn")
	}
}

func TestHistoryBound(t *testing.T) {
	gen := &fakeGenerator{reply: "ok"}
	a := newTestAssistant(t, gen, setupTestStore(t))

	for i := 0; i < 60; i++ {
		if _, err := a.AskQuestion(context.Background(), "q"); err != nil {
			t.Fatal(err)
		}
	}
	if got := len(a.History()); got != maxHistory {
		t.Errorf("history length = %d, want %d", got, maxHistory)
	}
}

func TestClearHistory(t *testing.T) {
	gen := &fakeGenerator{reply: "ok"}
	a := newTestAssistant(t, gen, setupTestStore(t))
	if _, err := a.AskQuestion(context.Background(), "q"); err != nil {
		t.Fatal(err)
	}
	a.ClearHistory()
	if len(a.History()) != 0 {
		t.Error("history not cleared")
	}
}

func TestSuggestedQuestions_EmptyCorpus(t *testing.T) {
	a := newTestAssistant(t, nil, setupTestStore(t))

	got := a.SuggestedQuestions()
	if len(got) != 3 {
		t.Fatalf("got %d suggestions, want 3", len(got))
	}
	seen := make(map[string]bool)
	for _, q := range got {
		if seen[q] {
			t.Errorf("duplicate suggestion %q", q)
		}
		seen[q] = true
		if !containsString(genericPrompts, q) {
			t.Errorf("suggestion %q not from generic pool", q)
		}
	}
}

func TestSuggestedQuestions_Derived(t *testing.T) {
	store := setupTestStore(t)
	seedEntry(t, store, "s1", "I loved traveling with my mother. We were so happy on vacation.")
	seedEntry(t, store, "s2", "My father and I took a trip to the mountains. It was a happy journey.")

	a := newTestAssistant(t, nil, store)
	got := a.SuggestedQuestions()
	if len(got) != 4 {
		t.Fatalf("got %d suggestions, want 4", len(got))
	}

	var derived int
	for _, q := range got {
		if strings.HasPrefix(q, "What do I remember about ") || strings.HasPrefix(q, "When have I felt ") {
			derived++
		} else if !containsString(genericPrompts, q) {
			t.Errorf("unexpected suggestion %q", q)
		}
	}
	if derived == 0 {
		t.Error("expected at least one derived suggestion")
	}
}

func containsString(pool []string, s string) bool {
	for _, p := range pool {
		if p == s {
			return true
		}
	}
	return false
}
