package match

import (
	"testing"
)

func TestSuggest(t *testing.T) {
	candidates := []string{"Alarm", "AlarmCreateInfo", "TimeOfDay", "Tab"}

	tests := []struct {
		target   string
		limit    int
		expected []string
	}{
		// Close misspelling ranks the intended name first
		{"Alarrm", 1, []string{"Alarm"}},
		{"alarm", 1, []string{"Alarm"}},

		// Case and separator variants count as near-identical
		{"alarm_create_info", 1, []string{"AlarmCreateInfo"}},

		// Unrelated names produce no suggestions
		{"WindowState", 3, []string{}},

		// Distant candidates fall below the similarity floor
		{"Alar", 2, []string{"Alarm"}},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			got := Suggest(tt.target, candidates, tt.limit)
			if len(got) != len(tt.expected) {
				t.Fatalf("Suggest(%q) = %v, want %v", tt.target, got, tt.expected)
			}

			for i := range got {
				if got[i] != tt.expected[i] {
					t.Fatalf("Suggest(%q) = %v, want %v", tt.target, got, tt.expected)
				}
			}
		})
	}
}

func TestSuggestDeterministicTieBreak(t *testing.T) {
	// Both candidates are one edit away; alphabetical order decides.
	got := Suggest("abcd", []string{"abcx", "abca"}, 2)
	if len(got) != 2 || got[0] != "abca" || got[1] != "abcx" {
		t.Fatalf("Suggest tie break = %v, want [abca abcx]", got)
	}

	// The limit caps how many survive.
	got = Suggest("abcd", []string{"abcx", "abca"}, 1)
	if len(got) != 1 || got[0] != "abca" {
		t.Fatalf("Suggest with limit = %v, want [abca]", got)
	}
}
