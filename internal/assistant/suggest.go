package assistant

import (
	"fmt"
	"math/rand"
)

// genericPrompts pads suggestions when the corpus yields too few derived
// questions.
var genericPrompts = []string{
	"What is one of my earliest memories?",
	"Who has had the biggest influence on my life?",
	"What moment am I most proud of?",
	"What tradition matters most to my family?",
	"What place do I think about returning to?",
	"What advice would I give my younger self?",
}

// SuggestedQuestions derives conversation starters from the corpus
// statistics: up to two from the top topics, one from the top emotion,
// padded from a generic pool. An empty corpus yields three generic
// questions.
func (a *Assistant) SuggestedQuestions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()

	var derived []string
	if a.stats != nil {
		s := a.stats.Compute()
		for i, t := range s.TopTopics {
			if i == 2 {
				break
			}
			derived = append(derived, fmt.Sprintf("What do I remember about %s?", t.Label))
		}
		if len(s.TopEmotions) > 0 {
			derived = append(derived, fmt.Sprintf("When have I felt %s?", s.TopEmotions[0].Label))
		}
	}

	want := 4
	if len(derived) == 0 {
		want = 3
	}
	return padFromPool(derived, want)
}

// padFromPool fills questions up to want from genericPrompts, chosen
// randomly without replacement.
func padFromPool(questions []string, want int) []string {
	if len(questions) >= want {
		return questions[:want]
	}
	perm := rand.Perm(len(genericPrompts))
	for _, i := range perm {
		if len(questions) >= want {
			break
		}
		questions = append(questions, genericPrompts[i])
	}
	return questions
}
