package reader

import "strings"

// countWords returns the number of whitespace-delimited runs in text.
func countWords(text string) int {
	return len(strings.Fields(text))
}

// countCharacters returns the length of text in UTF-16 code units, so
// characters outside the BMP count twice.
func countCharacters(text string) int {
	n := 0
	for _, r := range text {
		if r > 0xFFFF {
			n += 2
		} else {
			n++
		}
	}
	return n
}

func newMetadata(text, name string, size int64) *Metadata {
	return &Metadata{
		Words:      countWords(text),
		Characters: countCharacters(text),
		FileSize:   size,
		FileName:   name,
	}
}
