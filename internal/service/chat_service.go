package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/studybuddy/backend/internal/ai"
	apperrors "github.com/studybuddy/backend/internal/pkg/errors"
	"github.com/studybuddy/backend/internal/session"
)

var (
	sentenceSpacing = regexp.MustCompile(`([.!?])([A-Za-z])`)
	excessBlanks    = regexp.MustCompile(`\n\s*\n\s*\n`)
)

// ChatService answers questions grounded in the session's document. Key
// points per document are cached by content hash so repeated questions
// against the same upload trigger a single summarization call.
type ChatService struct {
	gateway   *ai.Gateway
	keyPoints *expirable.LRU[string, string]
}

func NewChatService(gateway *ai.Gateway, cacheCap int, cacheTTL time.Duration) *ChatService {
	return &ChatService{
		gateway:   gateway,
		keyPoints: expirable.NewLRU[string, string](cacheCap, nil, cacheTTL),
	}
}

// Answer produces a formatted answer to question using the session's
// document and recent history as grounding. It does not append to the
// conversation history; the caller owns that.
func (s *ChatService) Answer(ctx context.Context, sess *session.Session, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", fmt.Errorf("%w: question cannot be empty", apperrors.ErrInvalid)
	}
	grounding, err := s.buildContext(ctx, sess)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrChat, err)
	}
	answer, err := s.gateway.Answer(ctx, question, grounding)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrChat, err)
	}
	return formatResponse(answer), nil
}

func (s *ChatService) buildContext(ctx context.Context, sess *session.Session) (string, error) {
	var parts []string
	if doc := sess.Document(); doc != nil && doc.Content != "" {
		keyPoints, err := s.keyPointsFor(ctx, doc.Content)
		if err != nil {
			return "", err
		}
		parts = append(parts, "Document Key Points:\n"+ai.Truncate(keyPoints, s.gateway.MaxInputChars()))
	}
	if history := sess.RecentHistory(); history != "" {
		parts = append(parts, "Recent Conversation:\n"+history)
	}
	return strings.Join(parts, "\n\n"), nil
}

func (s *ChatService) keyPointsFor(ctx context.Context, docText string) (string, error) {
	hash := sha256.Sum256([]byte(docText))
	key := hex.EncodeToString(hash[:])
	if cached, ok := s.keyPoints.Get(key); ok {
		logutil.GetLogger(ctx).Debug("key point cache hit", zap.String("doc_hash", key[:12]))
		return cached, nil
	}
	keyPoints, err := s.gateway.KeyPoints(ctx, docText)
	if err != nil {
		return "", err
	}
	s.keyPoints.Add(key, keyPoints)
	return keyPoints, nil
}

// ClearKeyPointCache drops every cached summary; the next question per
// document triggers a fresh summarization call.
func (s *ChatService) ClearKeyPointCache() {
	s.keyPoints.Purge()
}

func formatResponse(response string) string {
	formatted := strings.TrimSpace(response)
	formatted = sentenceSpacing.ReplaceAllString(formatted, "$1 $2")
	formatted = excessBlanks.ReplaceAllString(formatted, "\n\n")
	return formatted
}
