package memory

import (
	"regexp"
	"strings"
)

// Extraction is deliberately heuristic: fixed keyword tables and a handful of
// regex patterns stand in for real NER. The false positives (any two
// capitalized words read as a person name, "at Christmas" read as a place)
// are part of the contract and must not be "improved" silently.

const (
	maxMentions = 10
	minMatchLen = 3
)

// labelKeywords binds a label to its trigger keywords. Tables are slices,
// not maps, so extraction order is fixed.
type labelKeywords struct {
	label    string
	keywords []string
}

var topicTable = []labelKeywords{
	{"family", []string{"family", "mother", "father", "mom", "dad", "sister", "brother", "grandmother", "grandfather", "grandma", "grandpa", "aunt", "uncle", "cousin", "wife", "husband", "son", "daughter", "parents"}},
	{"travel", []string{"travel", "trip", "visit", "vacation", "journey", "abroad", "flight", "airport", "tour"}},
	{"work", []string{"work", "job", "career", "office", "boss", "colleague", "business", "profession", "retire"}},
	{"childhood", []string{"childhood", "when i was young", "as a kid", "growing up", "school days", "playground", "toys"}},
	{"education", []string{"school", "university", "college", "teacher", "classroom", "study", "degree", "graduat", "exam"}},
	{"health", []string{"health", "doctor", "hospital", "sick", "illness", "surgery", "medicine", "recovery", "diagnos"}},
	{"food", []string{"food", "cook", "recipe", "meal", "dinner", "lunch", "breakfast", "kitchen", "bake"}},
	{"celebration", []string{"birthday", "wedding", "holiday", "christmas", "anniversary", "party", "celebrat", "graduation", "festival"}},
	{"love", []string{"love", "romance", "boyfriend", "girlfriend", "partner", "falling for", "marriage", "honeymoon"}},
	{"friendship", []string{"friend", "friendship", "buddy", "companion", "best man", "bridesmaid"}},
	{"hobbies", []string{"hobby", "music", "painting", "reading", "garden", "sport", "fishing", "dancing", "singing", "knitting"}},
}

var emotionTable = []labelKeywords{
	{"happy", []string{"happy", "joy", "glad", "delighted", "cheerful", "wonderful", "excited", "thrilled", "fun", "laugh"}},
	{"sad", []string{"sad", "cry", "cried", "tears", "heartbroken", "grief", "mourn", "lonely"}},
	{"angry", []string{"angry", "mad at", "furious", "frustrated", "annoyed", "outraged"}},
	{"scared", []string{"scared", "afraid", "fear", "terrified", "frightened", "panic"}},
	{"proud", []string{"proud", "accomplish", "achievement", "triumph"}},
	{"nostalgic", []string{"nostalgi", "remember when", "back then", "those days", "used to", "miss those"}},
	{"grateful", []string{"grateful", "thankful", "blessed", "appreciate"}},
	{"peaceful", []string{"peaceful", "calm", "relaxed", "serene", "tranquil"}},
	{"anxious", []string{"anxious", "worried", "stressed", "nervous", "uneasy"}},
	{"surprised", []string{"surprised", "shocked", "unexpected", "amazed", "astonished"}},
}

var (
	// Possessive kinship/role mentions: "my mother", "our neighbor Joe" keeps
	// just the relation phrase.
	rePossessiveRelation = regexp.MustCompile(`(?i)\b(?:my|our)\s+(?:mother|father|mom|dad|sister|brother|grandmother|grandfather|grandma|grandpa|aunt|uncle|cousin|wife|husband|son|daughter|friend|neighbor|neighbour|boss|teacher|doctor|coach|mentor|colleague|partner)\b`)

	// Two consecutive capitalized words, a crude full-name detector.
	reFullName = regexp.MustCompile(`\b[A-Z][a-z]+ [A-Z][a-z]+\b`)

	// Honorific followed by a capitalized name.
	reHonorific = regexp.MustCompile(`\b(?:Mr|Mrs|Ms|Dr|Prof)\.? [A-Z][a-z]+\b`)

	// Preposition or travel verb followed by a capitalized phrase.
	rePlaceTrigger = regexp.MustCompile(`\b(?:in|at|from|to|near|visited|went to|moved to|traveled to|travelled to) ([A-Z][a-zA-Z]+(?: [A-Z][a-zA-Z]+)*)`)

	// "City, ST" with a two-letter region code.
	reCityRegion = regexp.MustCompile(`\b[A-Z][a-z]+(?: [A-Z][a-z]+)*, [A-Z]{2}\b`)

	// Fixed vocabulary of common place nouns.
	rePlaceNoun = regexp.MustCompile(`(?i)\b(home|school|hospital|church|beach|park|office|university|college|restaurant|farm|lake|mountains|downtown|neighborhood|library|cemetery)\b`)
)

// ExtractTopics returns the topic labels whose trigger keywords occur in
// text, case-insensitively. Pure; an empty result is a normal outcome.
func ExtractTopics(text string) []string {
	return matchLabels(text, topicTable)
}

// ExtractEmotions returns the emotion labels triggered by text.
func ExtractEmotions(text string) []string {
	return matchLabels(text, emotionTable)
}

func matchLabels(text string, table []labelKeywords) []string {
	lower := strings.ToLower(text)
	var out []string
	for _, row := range table {
		for _, kw := range row.keywords {
			if strings.Contains(lower, kw) {
				out = append(out, row.label)
				break
			}
		}
	}
	return out
}

// ExtractPeople returns up to 10 person mentions found in text, in pattern
// order then text order, deduplicated case-insensitively.
func ExtractPeople(text string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, re := range []*regexp.Regexp{rePossessiveRelation, reFullName, reHonorific} {
		out = collectMatches(out, seen, re.FindAllString(text, -1))
		if len(out) >= maxMentions {
			break
		}
	}
	return out
}

// ExtractPlaces returns up to 10 place mentions found in text.
func ExtractPlaces(text string) []string {
	var out []string
	seen := make(map[string]bool)

	var triggered []string
	for _, m := range rePlaceTrigger.FindAllStringSubmatch(text, -1) {
		triggered = append(triggered, m[1])
	}
	out = collectMatches(out, seen, triggered)

	if len(out) < maxMentions {
		out = collectMatches(out, seen, reCityRegion.FindAllString(text, -1))
	}
	if len(out) < maxMentions {
		var nouns []string
		for _, m := range rePlaceNoun.FindAllString(text, -1) {
			nouns = append(nouns, strings.ToLower(m))
		}
		out = collectMatches(out, seen, nouns)
	}
	return out
}

// collectMatches appends matches to out, skipping duplicates (case-insensitive)
// and matches shorter than 3 characters, stopping at the mention cap.
func collectMatches(out []string, seen map[string]bool, matches []string) []string {
	for _, m := range matches {
		if len(out) >= maxMentions {
			break
		}
		m = strings.TrimSpace(m)
		if len(m) < minMatchLen {
			continue
		}
		key := strings.ToLower(m)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, m)
	}
	return out
}

// Extract annotates an entry's content in place, filling the four metadata
// fields. Question entries are stored with empty metadata by callers; this
// helper is for transcribed responses and summaries.
func Extract(e *Entry) {
	e.Topics = ExtractTopics(e.Content)
	e.People = ExtractPeople(e.Content)
	e.Places = ExtractPlaces(e.Content)
	e.Emotions = ExtractEmotions(e.Content)
}
