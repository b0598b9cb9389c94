package reader

import "testing"

func TestCountWordsAndCharacters(t *testing.T) {
	tests := []struct {
		text  string
		words int
		chars int
	}{
		{"", 0, 0},
		{"   \n\t ", 0, 6},
		{"hello world", 2, 11},
		{"  leading and   trailing  ", 3, 26},
		{"héllo", 1, 5},
		{"a 😀", 2, 4},
	}
	for _, tt := range tests {
		if got := countWords(tt.text); got != tt.words {
			t.Errorf("countWords(%q) = %d, want %d", tt.text, got, tt.words)
		}
		if got := countCharacters(tt.text); got != tt.chars {
			t.Errorf("countCharacters(%q) = %d, want %d", tt.text, got, tt.chars)
		}
	}
}
