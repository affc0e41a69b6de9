package extract

import (
	"strings"

	"github.com/studybuddy/backend/internal/model"
)

// Normalize trims every line, drops empty lines and collapses runs of 3+
// newlines down to exactly 2, so paragraphs stay separated by one blank
// line at most.
func Normalize(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	result := strings.Join(cleaned, "\n")
	for strings.Contains(result, "\n\n\n") {
		result = strings.ReplaceAll(result, "\n\n\n", "\n\n")
	}
	return result
}

func Stats(text string) model.TextStats {
	words := strings.Fields(text)
	sentences := 0
	for _, s := range strings.Split(text, ".") {
		if strings.TrimSpace(s) != "" {
			sentences++
		}
	}
	paragraphs := 0
	for _, p := range strings.Split(text, "\n\n") {
		if strings.TrimSpace(p) != "" {
			paragraphs++
		}
	}
	return model.TextStats{
		WordCount:      len(words),
		SentenceCount:  sentences,
		ParagraphCount: paragraphs,
		CharacterCount: len([]rune(text)),
	}
}
