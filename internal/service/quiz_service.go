package service

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/studybuddy/backend/internal/ai"
	"github.com/studybuddy/backend/internal/model"
	apperrors "github.com/studybuddy/backend/internal/pkg/errors"
)

const (
	minQuestionCount = 1
	maxQuestionCount = 10
	// maxFallbackQuestions caps how many question stems are salvaged from
	// free-form model output when JSON parsing fails.
	maxFallbackQuestions = 3

	placeholderAnswer = "Answer not provided"
)

var jsonArraySpan = regexp.MustCompile(`(?s)\[.*\]`)

// QuizService turns document text into a validated question sequence via
// one model call. Malformed model output is an expected condition handled
// by fallback generation, not an error.
type QuizService struct {
	gateway *ai.Gateway
}

func NewQuizService(gateway *ai.Gateway) *QuizService {
	return &QuizService{gateway: gateway}
}

func (s *QuizService) Generate(ctx context.Context, docText string, kind string, count int) ([]model.QuizQuestion, error) {
	if strings.TrimSpace(docText) == "" {
		return nil, fmt.Errorf("%w: document content is empty", apperrors.ErrInvalid)
	}
	if count < minQuestionCount || count > maxQuestionCount {
		return nil, fmt.Errorf("%w: number of questions must be between 1 and 10", apperrors.ErrInvalid)
	}
	switch kind {
	case model.QuizKindMultipleChoice, model.QuizKindShortAnswer, model.QuizKindMixed:
	default:
		return nil, fmt.Errorf("%w: unsupported quiz kind: %s", apperrors.ErrInvalid, kind)
	}

	raw, err := s.gateway.QuizContent(ctx, docText, kind, count)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrQuiz, err)
	}
	questions := parseQuizResponse(ctx, raw, kind, count)
	return questions, nil
}

// parseQuizResponse extracts the first JSON array span from the raw model
// output and decodes it; when no span exists or decoding fails it builds
// fallback questions from the free text instead.
func parseQuizResponse(ctx context.Context, raw string, kind string, count int) []model.QuizQuestion {
	span := jsonArraySpan.FindString(raw)
	if span != "" {
		var decoded []model.QuizQuestion
		if err := json.Unmarshal([]byte(span), &decoded); err == nil {
			return validateQuestions(ctx, decoded, count)
		}
		logutil.GetLogger(ctx).Warn("quiz response is not valid json, using fallback questions")
	}
	return validateQuestions(ctx, fallbackQuestions(raw, kind, count), count)
}

// validateQuestions cleans decoded items in order, capped at count. Items
// missing required fields are dropped; a correct answer outside the option
// list is replaced with the first option. The repair is logged because it
// usually signals a prompt or model defect.
func validateQuestions(ctx context.Context, questions []model.QuizQuestion, count int) []model.QuizQuestion {
	validated := make([]model.QuizQuestion, 0, len(questions))
	for _, q := range questions {
		if len(validated) >= count {
			break
		}
		if q.Question == "" || q.Type == "" {
			continue
		}
		switch q.Type {
		case model.QuizKindMultipleChoice:
			if len(q.Options) < 2 || q.CorrectAnswer == "" {
				continue
			}
			if !containsString(q.Options, q.CorrectAnswer) {
				logutil.GetLogger(ctx).Warn("correct answer not in options, substituting first option",
					zap.String("question", q.Question),
					zap.String("correct_answer", q.CorrectAnswer),
				)
				q.CorrectAnswer = q.Options[0]
			}
		case model.QuizKindShortAnswer:
			if q.ExpectedAnswer == "" {
				q.ExpectedAnswer = placeholderAnswer
			}
		default:
			continue
		}
		validated = append(validated, q)
	}
	return validated
}

// fallbackQuestions scavenges question stems (lines containing "?") from
// free-form output. The items are deliberately generic so the client can
// tell they are placeholders.
func fallbackQuestions(raw string, kind string, count int) []model.QuizQuestion {
	var stems []string
	for _, line := range strings.Split(raw, "\n") {
		if strings.Contains(line, "?") {
			stems = append(stems, strings.TrimSpace(line))
		}
	}
	limit := count
	if len(stems) < limit {
		limit = len(stems)
	}
	if limit > maxFallbackQuestions {
		limit = maxFallbackQuestions
	}

	questions := make([]model.QuizQuestion, 0, limit)
	for i := 0; i < limit; i++ {
		if kind == model.QuizKindMultipleChoice || kind == model.QuizKindMixed {
			questions = append(questions, model.QuizQuestion{
				Question:      stems[i],
				Type:          model.QuizKindMultipleChoice,
				Options:       []string{"A) Option 1", "B) Option 2", "C) Option 3", "D) Option 4"},
				CorrectAnswer: "A) Option 1",
				Explanation:   "This is a fallback question due to parsing issues.",
			})
		} else {
			questions = append(questions, model.QuizQuestion{
				Question:       stems[i],
				Type:           model.QuizKindShortAnswer,
				ExpectedAnswer: "Please refer to the study material for the complete answer.",
			})
		}
	}
	if len(questions) == 0 {
		questions = append(questions, model.QuizQuestion{
			Question:       "What are the main topics covered in this study material?",
			Type:           model.QuizKindShortAnswer,
			ExpectedAnswer: "Please summarize the key topics from the uploaded document.",
		})
	}
	return questions
}

// Statistics derives score data from a quiz and the recorded answers. It
// is a pure function: identical inputs always yield identical results.
func Statistics(questions []model.QuizQuestion, answers map[int]string) model.QuizStats {
	stats := model.QuizStats{
		TotalQuestions:    len(questions),
		AnsweredQuestions: len(answers),
	}
	for i, q := range questions {
		if q.Type != model.QuizKindMultipleChoice {
			continue
		}
		stats.MultipleChoiceQuestions++
		if answer, ok := answers[i]; ok && answer == q.CorrectAnswer {
			stats.CorrectAnswers++
		}
	}
	if stats.MultipleChoiceQuestions > 0 {
		stats.AccuracyPercentage = float64(stats.CorrectAnswers) / float64(stats.MultipleChoiceQuestions) * 100
	}
	if stats.TotalQuestions > 0 {
		stats.CompletionPercentage = float64(stats.AnsweredQuestions) / float64(stats.TotalQuestions) * 100
	}
	return stats
}

func containsString(list []string, target string) bool {
	for _, item := range list {
		if item == target {
			return true
		}
	}
	return false
}
