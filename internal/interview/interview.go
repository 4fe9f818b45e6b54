// Package interview runs guided memory-capture interviews: a fixed
// opener per interview type, model-generated follow-up questions with a
// deterministic fallback pool, and a fixed closing.
package interview

import (
	"context"
	"encoding/base64"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/angeloromano11/bitiacora/internal/genai"
	"github.com/angeloromano11/bitiacora/internal/memory"
)

// Interview types.
const (
	TypeMemory = "memory"
	TypeLegacy = "legacy"
	TypeLife   = "life"
	TypeJob    = "job"
	TypeSpeech = "speech"
)

// Context is the state of one interview session.
type Context struct {
	SessionID      string
	UserName       string
	Type           string
	Subcategory    string
	QuestionsAsked []string
	Messages       []memory.ChatMessage
	Active         bool
	StartedAt      time.Time
}

// Generator produces interview questions. A nil model is valid; every
// follow-up then comes from the fallback pool, so the interview never
// stalls on provider trouble.
type Generator struct {
	mu     sync.Mutex
	gen    genai.Generator
	params genai.Params
	rng    *rand.Rand
	ctx    *Context
}

// New creates an interview Generator. gen may be nil.
func New(gen genai.Generator) *Generator {
	return &Generator{
		gen:    gen,
		params: genai.DefaultParams(),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetGenerator replaces the generation provider.
func (g *Generator) SetGenerator(gen genai.Generator) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.gen = gen
}

// openers maps interview type (and optional subcategory) to the fixed
// first question.
var openers = map[string]map[string]string{
	TypeMemory: {
		"":          "What memory would you like to capture today?",
		"childhood": "What is a childhood moment you still think about?",
		"family":    "Tell me about a family moment you never want to forget.",
	},
	TypeLegacy: {
		"": "What is something you want future generations to know about you?",
	},
	TypeLife: {
		"": "Let's start at the beginning. Where were you born, and what was it like there?",
	},
	TypeJob: {
		"": "Tell me about your work. What do you do, and how did you get started?",
	},
	TypeSpeech: {
		"": "What is the occasion for this speech, and who will be listening?",
	},
}

// fallbackQuestions keeps an interview moving when no model is available
// or a generation call fails.
var fallbackQuestions = []string{
	"Can you tell me more about that?",
	"How did that make you feel?",
	"What happened next?",
	"Who else was part of that moment?",
	"Why was that important to you?",
	"Is there a detail you remember most vividly?",
}

// closings end an interview by type.
var closings = map[string]string{
	TypeMemory: "Thank you for sharing that memory. It has been saved to your journal.",
	TypeLegacy: "Thank you. These words will be kept for the people who come after you.",
	TypeLife:   "Thank you for walking me through your story. We can pick it up again anytime.",
	TypeJob:    "Thank you. Your work story has been recorded.",
	TypeSpeech: "Thank you. You have everything you need to write that speech.",
}

const genericClosing = "Thank you for sharing. Your session has been saved."

// personas holds the interviewer system prompt per interview type.
var personas = map[string]string{
	TypeMemory: "You are a warm, curious interviewer helping someone capture a personal memory. Ask one short follow-up question that draws out sensory detail, people, and feeling. Ask only the question.",
	TypeLegacy: "You are a thoughtful interviewer recording messages for future generations. Ask one short follow-up question about values, lessons, and hopes. Ask only the question.",
	TypeLife:   "You are a biographer conducting a life-story interview. Ask one short follow-up question that moves the story forward in time or deepens a chapter. Ask only the question.",
	TypeJob:    "You are an interviewer documenting someone's working life. Ask one short follow-up question about their craft, colleagues, or a turning point. Ask only the question.",
	TypeSpeech: "You are a speechwriter gathering material. Ask one short follow-up question that surfaces anecdotes and feelings fit for the occasion. Ask only the question.",
}

// StartInterview begins a new interview and returns the opening question.
// The opener is fixed per type and never requires a provider call. When a
// user name is known it is used as a direct address prefix.
func (g *Generator) StartInterview(sessionID, userName, interviewType, subcategory string) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	opener := lookupOpener(interviewType, subcategory)
	if userName != "" {
		opener = userName + ", " + opener
	}

	g.ctx = &Context{
		SessionID:      sessionID,
		UserName:       userName,
		Type:           interviewType,
		Subcategory:    subcategory,
		QuestionsAsked: []string{opener},
		Messages: []memory.ChatMessage{
			{Role: memory.RoleAssistant, Content: opener, CreatedAt: time.Now().UTC()},
		},
		Active:    true,
		StartedAt: time.Now().UTC(),
	}
	return opener
}

func lookupOpener(interviewType, subcategory string) string {
	byType, ok := openers[interviewType]
	if !ok {
		byType = openers[TypeMemory]
	}
	if q, ok := byType[subcategory]; ok {
		return q
	}
	return byType[""]
}

// GenerateFollowUp records the response and returns the next question.
// Any provider failure is swallowed and answered from the fallback pool.
func (g *Generator) GenerateFollowUp(ctx context.Context, responseText string) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.recordResponse(responseText)

	question := g.fallback()
	if g.gen != nil && g.ctx != nil && g.ctx.Active {
		if q, err := g.generate(ctx, genai.Request{
			Prompt: g.buildFollowUpPrompt(),
			Params: g.params,
		}); err == nil {
			question = q
		}
	}

	g.recordQuestion(question)
	return question
}

// GenerateFollowUpFromAudio is like GenerateFollowUp but the response is
// a base64-encoded audio recording, passed to the provider as inline
// data. Providers without audio support fail the call, which lands in
// the fallback pool like any other error.
func (g *Generator) GenerateFollowUpFromAudio(ctx context.Context, audioB64 string) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.recordResponse("[audio response]")

	question := g.fallback()
	audio, decodeErr := base64.StdEncoding.DecodeString(audioB64)
	if decodeErr == nil && g.gen != nil && g.ctx != nil && g.ctx.Active {
		prompt := g.buildFollowUpPrompt() +
			"\nThe user's latest response is the attached audio recording. Infer what they said from it."
		if q, err := g.generate(ctx, genai.Request{
			Prompt:    prompt,
			Audio:     audio,
			AudioMIME: "audio/mp4",
			Params:    g.params,
		}); err == nil {
			question = q
		}
	}

	g.recordQuestion(question)
	return question
}

// EndInterview returns the closing line for the active interview and
// discards its state.
func (g *Generator) EndInterview() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.ctx == nil {
		return genericClosing
	}
	closing, ok := closings[g.ctx.Type]
	if !ok {
		closing = genericClosing
	}
	g.ctx = nil
	return closing
}

// Current returns the active interview context, or nil.
func (g *Generator) Current() *Context {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.ctx
}

func (g *Generator) generate(ctx context.Context, req genai.Request) (string, error) {
	text, err := g.gen.Generate(ctx, req)
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", genai.ErrNoText
	}
	return text, nil
}

// buildFollowUpPrompt renders the persona plus the interview transcript,
// which already includes the latest user response.
func (g *Generator) buildFollowUpPrompt() string {
	var b strings.Builder
	persona, ok := personas[g.ctx.Type]
	if !ok {
		persona = personas[TypeMemory]
	}
	b.WriteString(persona)
	b.WriteString("\n\nInterview so far:\n")
	for _, m := range g.ctx.Messages {
		if m.Role == memory.RoleAssistant {
			fmt.Fprintf(&b, "Interviewer: %s\n", m.Content)
		} else {
			fmt.Fprintf(&b, "User: %s\n", m.Content)
		}
	}
	return b.String()
}

func (g *Generator) fallback() string {
	return fallbackQuestions[g.rng.Intn(len(fallbackQuestions))]
}

func (g *Generator) recordResponse(text string) {
	if g.ctx == nil {
		return
	}
	g.ctx.Messages = append(g.ctx.Messages, memory.ChatMessage{
		Role:      memory.RoleUser,
		Content:   text,
		CreatedAt: time.Now().UTC(),
	})
}

func (g *Generator) recordQuestion(q string) {
	if g.ctx == nil {
		return
	}
	g.ctx.Messages = append(g.ctx.Messages, memory.ChatMessage{
		Role:      memory.RoleAssistant,
		Content:   q,
		CreatedAt: time.Now().UTC(),
	})
	g.ctx.QuestionsAsked = append(g.ctx.QuestionsAsked, q)
}
