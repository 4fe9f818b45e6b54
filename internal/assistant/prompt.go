package assistant

import (
	"fmt"
	"strings"

	"github.com/angeloromano11/bitiacora/internal/memory"
)

const (
	// Token budget for the memory excerpt block. History and instructions
	// are small and bounded, so only excerpts need truncation.
	excerptTokenBudget = 4000

	// How many recent conversation turns to replay into the prompt.
	promptHistoryTurns = 6
)

const noMatchesInstruction = "No stored memories matched this question. Say so plainly and do not invent details."

// buildPrompt assembles the assistant prompt from search results, recent
// conversation history, and the literal question.
func buildPrompt(tok *Tokenizer, results []memory.SearchResult, history []memory.ChatMessage, question string) string {
	var b strings.Builder

	b.WriteString("You are a personal memory assistant. Answer the question using only the memory excerpts below.\n\n")

	if len(results) == 0 {
		b.WriteString(noMatchesInstruction)
		b.WriteString("\n")
	} else {
		excerpts := formatExcerpts(results)
		if tok != nil && tok.Count(excerpts) > excerptTokenBudget {
			excerpts = tok.Truncate(excerpts, excerptTokenBudget)
		}
		b.WriteString("Memory excerpts:\n")
		b.WriteString(excerpts)
	}

	if turns := recentTurns(history, promptHistoryTurns); len(turns) > 0 {
		b.WriteString("\nRecent conversation:\n")
		for _, m := range turns {
			b.WriteString(fmt.Sprintf("%s: %s\n", roleLabel(m.Role), m.Content))
		}
	}

	b.WriteString("\nQuestion: ")
	b.WriteString(question)
	return b.String()
}

func formatExcerpts(results []memory.SearchResult) string {
	var b strings.Builder
	for i, r := range results {
		b.WriteString(fmt.Sprintf("%d. %s\n", i+1, r.Content))
		var meta []string
		if len(r.Topics) > 0 {
			meta = append(meta, "topics: "+strings.Join(r.Topics, ", "))
		}
		if len(r.People) > 0 {
			meta = append(meta, "people: "+strings.Join(r.People, ", "))
		}
		if len(r.Emotions) > 0 {
			meta = append(meta, "emotions: "+strings.Join(r.Emotions, ", "))
		}
		if len(meta) > 0 {
			b.WriteString("   (" + strings.Join(meta, "; ") + ")\n")
		}
	}
	return b.String()
}

// recentTurns returns the last n messages, oldest first.
func recentTurns(history []memory.ChatMessage, n int) []memory.ChatMessage {
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}

func roleLabel(r memory.Role) string {
	if r == memory.RoleAssistant {
		return "Assistant"
	}
	return "User"
}
