package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/studybuddy/backend/internal/pkg/errors"
)

type fakeGenerator struct {
	prompts []string
	respond func(prompt string) (string, error)
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.respond != nil {
		return f.respond(prompt)
	}
	return "ok", nil
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "abc", Truncate("abc", 10))
	require.Equal(t, "ab", Truncate("abcdef", 2))
	require.Equal(t, "abcdef", Truncate("abcdef", 0))
	require.Equal(t, "héll", Truncate("héllo", 4))
}

func TestGatewayCapsDocumentExcerpt(t *testing.T) {
	gen := &fakeGenerator{}
	gw := NewGateway(gen, GatewayConfig{MaxInputChars: 100})

	doc := strings.Repeat("x", 10000)
	_, err := gw.QuizContent(context.Background(), doc, "multiple_choice", 5)
	require.NoError(t, err)
	require.Len(t, gen.prompts, 1)
	require.NotContains(t, gen.prompts[0], strings.Repeat("x", 101))
	require.Contains(t, gen.prompts[0], strings.Repeat("x", 100))
}

func TestGatewayWrapsProviderFailure(t *testing.T) {
	gen := &fakeGenerator{respond: func(string) (string, error) {
		return "", errors.New("connection refused")
	}}
	gw := NewGateway(gen, GatewayConfig{})

	_, err := gw.KeyPoints(context.Background(), "some text")
	require.ErrorIs(t, err, apperrors.ErrGeneration)
	require.Contains(t, err.Error(), "connection refused")
}

func TestGatewayRejectsEmptyCompletion(t *testing.T) {
	gen := &fakeGenerator{respond: func(string) (string, error) {
		return "   \n ", nil
	}}
	gw := NewGateway(gen, GatewayConfig{})

	_, err := gw.Answer(context.Background(), "why?", "")
	require.ErrorIs(t, err, apperrors.ErrGeneration)
}
