package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/studybuddy/backend/internal/ai"
	"github.com/studybuddy/backend/internal/model"
	apperrors "github.com/studybuddy/backend/internal/pkg/errors"
)

func newQuizFixture(respond func(string) (string, error)) *QuizService {
	gen := &fakeGenerator{respond: respond}
	return NewQuizService(ai.NewGateway(gen, ai.GatewayConfig{MaxInputChars: 3000}))
}

func TestQuizGenerateRejectsEmptyDocument(t *testing.T) {
	svc := newQuizFixture(nil)
	_, err := svc.Generate(context.Background(), "   ", model.QuizKindMultipleChoice, 5)
	require.ErrorIs(t, err, apperrors.ErrInvalid)
}

func TestQuizGenerateRejectsBadCount(t *testing.T) {
	svc := newQuizFixture(nil)
	for _, count := range []int{0, -1, 11} {
		_, err := svc.Generate(context.Background(), "doc", model.QuizKindMultipleChoice, count)
		require.ErrorIs(t, err, apperrors.ErrInvalid)
		require.Contains(t, err.Error(), "between 1 and 10")
	}
}

func TestQuizGenerateRejectsUnknownKind(t *testing.T) {
	svc := newQuizFixture(nil)
	_, err := svc.Generate(context.Background(), "doc", "essay", 5)
	require.ErrorIs(t, err, apperrors.ErrInvalid)
}

func TestQuizGenerateParsesJSONFromNoisyOutput(t *testing.T) {
	svc := newQuizFixture(func(string) (string, error) {
		return `Sure! Here is your quiz:
[
  {"question": "What is Go?", "type": "multiple_choice",
   "options": ["A) A language", "B) A game", "C) A fish", "D) A car"],
   "correct_answer": "A) A language", "explanation": "Go is a language."},
  {"question": "Name the Go mascot.", "type": "short_answer", "expected_answer": "Gopher"}
]
Hope this helps!`, nil
	})

	questions, err := svc.Generate(context.Background(), "doc", model.QuizKindMixed, 5)
	require.NoError(t, err)
	require.Len(t, questions, 2)
	require.Equal(t, model.QuizKindMultipleChoice, questions[0].Type)
	require.Equal(t, "A) A language", questions[0].CorrectAnswer)
	require.Equal(t, "Gopher", questions[1].ExpectedAnswer)
}

func TestQuizGenerateRepairsCorrectAnswer(t *testing.T) {
	svc := newQuizFixture(func(string) (string, error) {
		return `[{"question": "Pick one.", "type": "multiple_choice",
  "options": ["A) First", "B) Second"], "correct_answer": "C) Missing"}]`, nil
	})

	questions, err := svc.Generate(context.Background(), "doc", model.QuizKindMultipleChoice, 5)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	require.Equal(t, "A) First", questions[0].CorrectAnswer)
	require.Contains(t, questions[0].Options, questions[0].CorrectAnswer)
}

func TestQuizGenerateDropsMalformedEntries(t *testing.T) {
	svc := newQuizFixture(func(string) (string, error) {
		return `[
  {"type": "multiple_choice", "options": ["A", "B"], "correct_answer": "A"},
  {"question": "No type given."},
  {"question": "One option only.", "type": "multiple_choice", "options": ["A"], "correct_answer": "A"},
  {"question": "Missing expected.", "type": "short_answer"},
  {"question": "Good.", "type": "multiple_choice", "options": ["A", "B"], "correct_answer": "B"}
]`, nil
	})

	questions, err := svc.Generate(context.Background(), "doc", model.QuizKindMixed, 10)
	require.NoError(t, err)
	require.Len(t, questions, 2)
	require.Equal(t, "Missing expected.", questions[0].Question)
	require.Equal(t, "Answer not provided", questions[0].ExpectedAnswer)
	require.Equal(t, "Good.", questions[1].Question)
}

func TestQuizGenerateCapsAtRequestedCount(t *testing.T) {
	svc := newQuizFixture(func(string) (string, error) {
		return `[
  {"question": "Q1?", "type": "short_answer", "expected_answer": "a"},
  {"question": "Q2?", "type": "short_answer", "expected_answer": "b"},
  {"question": "Q3?", "type": "short_answer", "expected_answer": "c"}
]`, nil
	})

	questions, err := svc.Generate(context.Background(), "doc", model.QuizKindShortAnswer, 2)
	require.NoError(t, err)
	require.Len(t, questions, 2)
}

func TestQuizGenerateFallbackFromFreeText(t *testing.T) {
	svc := newQuizFixture(func(string) (string, error) {
		return "I could not produce JSON.\nWhat is a goroutine?\nSome filler.\nHow do channels work?\n", nil
	})

	questions, err := svc.Generate(context.Background(), "doc", model.QuizKindMultipleChoice, 5)
	require.NoError(t, err)
	require.Len(t, questions, 2)
	for _, q := range questions {
		require.Equal(t, model.QuizKindMultipleChoice, q.Type)
		require.Len(t, q.Options, 4)
		require.Equal(t, q.Options[0], q.CorrectAnswer)
	}
	require.Equal(t, "What is a goroutine?", questions[0].Question)
	require.Equal(t, "How do channels work?", questions[1].Question)
}

func TestQuizGenerateFallbackWithoutQuestionLines(t *testing.T) {
	svc := newQuizFixture(func(string) (string, error) {
		return "The model rambled with no structure at all.", nil
	})

	questions, err := svc.Generate(context.Background(), "doc", model.QuizKindShortAnswer, 5)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	require.Equal(t, model.QuizKindShortAnswer, questions[0].Type)
	require.Equal(t, "What are the main topics covered in this study material?", questions[0].Question)
}

func TestQuizGenerateFallbackCappedAtThree(t *testing.T) {
	svc := newQuizFixture(func(string) (string, error) {
		return "A?\nB?\nC?\nD?\nE?", nil
	})

	questions, err := svc.Generate(context.Background(), "doc", model.QuizKindShortAnswer, 10)
	require.NoError(t, err)
	require.Len(t, questions, 3)
}

func TestQuizGenerateWrapsGatewayFailure(t *testing.T) {
	svc := newQuizFixture(func(string) (string, error) {
		return "", context.DeadlineExceeded
	})
	_, err := svc.Generate(context.Background(), "doc", model.QuizKindMixed, 3)
	require.ErrorIs(t, err, apperrors.ErrQuiz)
}

func TestStatisticsScoring(t *testing.T) {
	questions := []model.QuizQuestion{
		{Question: "Q1", Type: model.QuizKindMultipleChoice, Options: []string{"A) Option 1", "B) Option 2"}, CorrectAnswer: "A) Option 1"},
		{Question: "Q2", Type: model.QuizKindShortAnswer, ExpectedAnswer: "x"},
	}
	answers := map[int]string{0: "A) Option 1"}

	stats := Statistics(questions, answers)
	require.Equal(t, 2, stats.TotalQuestions)
	require.Equal(t, 1, stats.AnsweredQuestions)
	require.Equal(t, 1, stats.MultipleChoiceQuestions)
	require.Equal(t, 1, stats.CorrectAnswers)
	require.Equal(t, 100.0, stats.AccuracyPercentage)
	require.Equal(t, 50.0, stats.CompletionPercentage)
}

func TestStatisticsIsPure(t *testing.T) {
	questions := []model.QuizQuestion{
		{Question: "Q1", Type: model.QuizKindMultipleChoice, Options: []string{"A", "B"}, CorrectAnswer: "B"},
	}
	answers := map[int]string{0: "A"}

	first := Statistics(questions, answers)
	second := Statistics(questions, answers)
	require.Equal(t, first, second)
}

func TestStatisticsEmpty(t *testing.T) {
	stats := Statistics(nil, nil)
	require.Zero(t, stats.TotalQuestions)
	require.Zero(t, stats.AccuracyPercentage)
	require.Zero(t, stats.CompletionPercentage)
}
