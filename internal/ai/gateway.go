package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/studybuddy/backend/internal/pkg/errors"
)

type GatewayConfig struct {
	Timeout       int
	MaxInputChars int
}

// Gateway is the single path to the remote generation service. Prompt
// builders cap embedded excerpts at MaxInputChars; one attempt per call,
// no retry.
type Gateway struct {
	gen IGenerator
	cfg GatewayConfig
}

func NewGateway(gen IGenerator, cfg GatewayConfig) *Gateway {
	if cfg.MaxInputChars <= 0 {
		cfg.MaxInputChars = 3000
	}
	return &Gateway{gen: gen, cfg: cfg}
}

func (g *Gateway) MaxInputChars() int {
	return g.cfg.MaxInputChars
}

func (g *Gateway) KeyPoints(ctx context.Context, docText string) (string, error) {
	prompt := fmt.Sprintf(`You are a study assistant.
Extract the key points of the following study material as a short bullet list.
- Keep factual accuracy, cover every major topic.
- Output ONLY the bullet list.

CONTENT:
%s`, Truncate(docText, g.cfg.MaxInputChars))
	return g.generateText(ctx, prompt)
}

func (g *Gateway) Answer(ctx context.Context, question string, grounding string) (string, error) {
	prompt := fmt.Sprintf(`You are an intelligent study assistant helping a student understand their study material.
You have access to their uploaded document and conversation history.

Context:
%s

Student Question: %s

Instructions:
- Answer the question based on the provided document content when possible.
- If the answer isn't in the document, clearly mention this and provide general knowledge.
- Be educational and encouraging in your tone.
- Keep responses focused and not too lengthy.

Response:`, Truncate(grounding, g.cfg.MaxInputChars+1000), question)
	return g.generateText(ctx, prompt)
}

func (g *Gateway) QuizContent(ctx context.Context, docText string, kind string, count int) (string, error) {
	prompt := fmt.Sprintf(`Create a quiz based on the following educational content. Generate exactly %d questions.

Content:
%s

Quiz Type: %s

Instructions:
- Create %d questions that test understanding of key concepts.
- For multiple choice questions: provide 4 options (A, B, C, D) with only one correct answer.
- For short answer questions: provide an expected answer.
- Include brief explanations for multiple choice answers.
- Focus on important concepts, not trivial details.

Return the quiz in this EXACT JSON format:
[
    {
        "question": "Question text here",
        "type": "multiple_choice",
        "options": ["A) Option 1", "B) Option 2", "C) Option 3", "D) Option 4"],
        "correct_answer": "A) Option 1",
        "explanation": "Explanation of why this is correct"
    },
    {
        "question": "Question text here",
        "type": "short_answer",
        "expected_answer": "Expected answer here"
    }
]

Generate the quiz now:`, count, Truncate(docText, g.cfg.MaxInputChars), kind, count)
	return g.generateText(ctx, prompt)
}

func (g *Gateway) generateText(ctx context.Context, prompt string) (string, error) {
	if g.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(g.cfg.Timeout)*time.Second)
		defer cancel()
	}
	resp, err := g.gen.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrGeneration, err)
	}
	text := strings.TrimSpace(resp)
	if text == "" {
		return "", fmt.Errorf("%w: empty response", apperrors.ErrGeneration)
	}
	return text, nil
}

// Truncate caps s at max runes. The remote service enforces a token
// ceiling; char-capping the excerpt keeps prompts under it.
func Truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
