// Package assistant answers questions about stored memories using a
// generation provider grounded on relevance-searched journal entries.
package assistant

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/angeloromano11/bitiacora/internal/genai"
	"github.com/angeloromano11/bitiacora/internal/memory"
)

// ErrNotConfigured is returned when no generation provider has been set.
var ErrNotConfigured = errors.New("assistant: no generation provider configured")

const (
	// History is bounded so a long-running chat session cannot grow
	// without limit. Older turns fall off the front.
	maxHistory = 100

	defaultTopK = 10
)

// Answer is the result of a single question.
type Answer struct {
	Message  memory.ChatMessage
	Sources  int // number of memory excerpts that grounded the answer
	Sessions int // distinct sessions those excerpts came from
}

// Assistant holds conversation state for memory question answering.
// It is safe for concurrent use.
type Assistant struct {
	mu      sync.Mutex
	gen     genai.Generator
	engine  *memory.Engine
	stats   *memory.Aggregator
	tok     *Tokenizer
	params  genai.Params
	topK    int
	history []memory.ChatMessage
}

// New creates an Assistant over the given search engine and aggregator.
// gen may be nil; AskQuestion returns ErrNotConfigured until a provider
// is set.
func New(gen genai.Generator, engine *memory.Engine, stats *memory.Aggregator) *Assistant {
	tok, err := NewTokenizer()
	if err != nil {
		tok = nil // Fall back to untruncated prompts.
	}
	return &Assistant{
		gen:    gen,
		engine: engine,
		stats:  stats,
		tok:    tok,
		params: genai.DefaultParams(),
		topK:   defaultTopK,
	}
}

// SetGenerator replaces the generation provider.
func (a *Assistant) SetGenerator(gen genai.Generator) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.gen = gen
}

// SetParams replaces the sampling parameters.
func (a *Assistant) SetParams(p genai.Params) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.params = p
}

// SetTopK sets how many search results ground each answer.
func (a *Assistant) SetTopK(k int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if k > 0 {
		a.topK = k
	}
}

// Configured reports whether a generation provider is set.
func (a *Assistant) Configured() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.gen != nil
}

// AskQuestion records the question in history, searches stored memories,
// and asks the provider for a grounded answer. The question is kept in
// history even when generation fails, so a retry carries the context.
func (a *Assistant) AskQuestion(ctx context.Context, question string) (Answer, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.gen == nil {
		return Answer{}, ErrNotConfigured
	}

	userMsg := memory.ChatMessage{
		Role:      memory.RoleUser,
		Content:   question,
		CreatedAt: time.Now().UTC(),
	}
	a.appendLocked(userMsg)

	results := a.engine.Search(question, a.topK)

	// History passed to the prompt excludes the question itself; it is
	// appended separately as the literal question.
	prompt := buildPrompt(a.tok, results, a.history[:len(a.history)-1], question)

	text, err := a.gen.Generate(ctx, genai.Request{Prompt: prompt, Params: a.params})
	if err != nil {
		return Answer{}, err
	}

	msg := memory.ChatMessage{
		Role:        memory.RoleAssistant,
		Content:     text,
		CreatedAt:   time.Now().UTC(),
		SourceCount: len(results),
	}
	a.appendLocked(msg)

	return Answer{
		Message:  msg,
		Sources:  len(results),
		Sessions: distinctSessions(results),
	}, nil
}

// History returns a copy of the conversation so far.
func (a *Assistant) History() []memory.ChatMessage {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]memory.ChatMessage, len(a.history))
	copy(out, a.history)
	return out
}

// ClearHistory discards the conversation.
func (a *Assistant) ClearHistory() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.history = nil
}

func (a *Assistant) appendLocked(m memory.ChatMessage) {
	a.history = append(a.history, m)
	if len(a.history) > maxHistory {
		a.history = a.history[len(a.history)-maxHistory:]
	}
}

func distinctSessions(results []memory.SearchResult) int {
	seen := make(map[string]struct{}, len(results))
	for _, r := range results {
		seen[r.SessionID] = struct{}{}
	}
	return len(seen)
}
