package memory

import (
	"reflect"
	"strings"
	"testing"
)

func TestExtractTopics(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"My mother and I visited Paris in the summer, I was so happy", []string{"family", "travel"}},
		{"I started a new job at the office downtown", []string{"work"}},
		{"We baked a cake for her birthday dinner", []string{"food", "celebration"}},
		{"Nothing notable here", nil},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := ExtractTopics(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractTopics(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractTopics_Deterministic(t *testing.T) {
	text := "My grandmother cooked dinner for the whole family on Christmas"
	first := ExtractTopics(text)
	for i := 0; i < 10; i++ {
		if got := ExtractTopics(text); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d: got %v, want %v", i, got, first)
		}
	}
}

func TestExtractEmotions(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"I was so happy that day", []string{"happy"}},
		{"I cried for hours, completely heartbroken", []string{"sad"}},
		{"I was so proud of my achievement, truly grateful", []string{"proud", "grateful"}},
		{"The weather was fine", nil},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := ExtractEmotions(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractEmotions(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractPeople(t *testing.T) {
	people := ExtractPeople("My mother and I visited Paris in the summer, I was so happy")
	if !containsFold(t, people, "my mother") {
		t.Errorf("expected a 'my mother' mention, got %v", people)
	}
}

func TestExtractPeople_Patterns(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"possessive relation", "I talked to my grandfather about the war", "my grandfather"},
		{"full name", "We met Maria Lopez at the reunion", "Maria Lopez"},
		{"honorific", "Dr. Ramirez delivered the news", "Dr. Ramirez"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractPeople(tt.text)
			if !containsFold(t, got, tt.want) {
				t.Errorf("ExtractPeople(%q) = %v, want a %q mention", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractPeople_DedupAndCap(t *testing.T) {
	text := strings.Repeat("my mother and my father. ", 3) +
		"Ana Garcia Bob Harris Carl Iver Dan Jones Eve Kent Fay Lund Gil Moss Hal Nash Ivy Orr Jay Pitt"
	got := ExtractPeople(text)
	if len(got) > 10 {
		t.Fatalf("expected at most 10 mentions, got %d: %v", len(got), got)
	}
	seen := make(map[string]bool)
	for _, p := range got {
		key := strings.ToLower(p)
		if seen[key] {
			t.Errorf("duplicate mention %q", p)
		}
		seen[key] = true
	}
}

func TestExtractPlaces(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"travel verb", "My mother and I visited Paris in the summer", "Paris"},
		{"preposition", "We lived in Buenos Aires for a decade", "Buenos Aires"},
		{"city region", "I grew up in Austin, TX back then", "Austin, TX"},
		{"common noun", "they kept me at the hospital overnight", "hospital"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractPlaces(tt.text)
			if !containsFold(t, got, tt.want) {
				t.Errorf("ExtractPlaces(%q) = %v, want a %q mention", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractPlaces_NoMatches(t *testing.T) {
	if got := ExtractPlaces("nothing here"); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}

func TestExtract_FillsEntryMetadata(t *testing.T) {
	e := Entry{Content: "My mother and I visited Paris in the summer, I was so happy"}
	Extract(&e)
	if len(e.Topics) == 0 || len(e.People) == 0 || len(e.Places) == 0 || len(e.Emotions) == 0 {
		t.Errorf("expected all metadata fields populated, got %+v", e)
	}
}

// containsFold reports whether values contains want, case-insensitively.
func containsFold(t *testing.T, values []string, want string) bool {
	t.Helper()
	for _, v := range values {
		if strings.EqualFold(v, want) {
			return true
		}
	}
	return false
}
