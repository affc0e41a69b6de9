package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize_TrimsAndCollapses(t *testing.T) {
	raw := "  Heading  \n\n\n\nFirst paragraph line.   \n   \n\nSecond line.\t\n"
	got := Normalize(raw)

	require.NotEmpty(t, got)
	require.NotContains(t, got, "\n\n\n")
	for _, line := range strings.Split(got, "\n") {
		require.Equal(t, strings.TrimSpace(line), line)
		require.NotEmpty(t, line)
	}
	require.Equal(t, "Heading\nFirst paragraph line.\nSecond line.", got)
}

func TestNormalize_EmptyInput(t *testing.T) {
	require.Empty(t, Normalize(""))
	require.Empty(t, Normalize("   \n\t\n   "))
}

func TestStats_Counts(t *testing.T) {
	text := "One two three. Four five.\n\nSecond paragraph here."
	stats := Stats(text)

	require.Equal(t, 8, stats.WordCount)
	require.Equal(t, 3, stats.SentenceCount)
	require.Equal(t, 2, stats.ParagraphCount)
	require.Equal(t, len([]rune(text)), stats.CharacterCount)
}

func TestStats_Empty(t *testing.T) {
	stats := Stats("")
	require.Zero(t, stats.WordCount)
	require.Zero(t, stats.SentenceCount)
	require.Zero(t, stats.ParagraphCount)
	require.Zero(t, stats.CharacterCount)
}
