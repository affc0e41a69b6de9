package session

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/studybuddy/backend/internal/model"
)

// historyWindow is the number of recent messages (3 exchanges) handed to
// the model as conversation context.
const historyWindow = 6

// Session owns all per-user mutable state: the active document, the
// conversation history, the current quiz and its answers. Concurrent
// requests may carry the same session id, so every access goes through
// the session's own mutex.
type Session struct {
	ID    string
	Ctime time.Time
	Atime time.Time

	mu       sync.Mutex
	document *model.Document
	history  []model.ChatMessage
	quiz     []model.QuizQuestion
	quizKind string
	answers  map[int]string
}

// SetDocument replaces the active document wholesale and resets quiz state,
// mirroring a fresh upload.
func (s *Session) SetDocument(doc *model.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.document = doc
	s.quiz = nil
	s.quizKind = ""
	s.answers = make(map[int]string)
}

func (s *Session) Document() *model.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.document
}

func (s *Session) AppendMessage(role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, model.ChatMessage{Role: role, Content: content})
}

func (s *Session) ClearHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
}

// History returns a copy of the full conversation history.
func (s *Session) History() []model.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.ChatMessage, len(s.history))
	copy(out, s.history)
	return out
}

// RecentHistory returns the last few messages rendered as "Role: content"
// lines for grounding context.
func (s *Session) RecentHistory() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	history := s.history
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	lines := make([]string, 0, len(history))
	for _, msg := range history {
		lines = append(lines, fmt.Sprintf("%s: %s", capitalize(msg.Role), msg.Content))
	}
	return strings.Join(lines, "\n")
}

func (s *Session) SetQuiz(kind string, questions []model.QuizQuestion) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quiz = questions
	s.quizKind = kind
	s.answers = make(map[int]string)
}

// QuizState returns copies of the current quiz, the recorded answers and
// the quiz kind, taken under one lock so they are mutually consistent.
func (s *Session) QuizState() ([]model.QuizQuestion, map[int]string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	quiz := make([]model.QuizQuestion, len(s.quiz))
	copy(quiz, s.quiz)
	answers := make(map[int]string, len(s.answers))
	for index, answer := range s.answers {
		answers[index] = answer
	}
	return quiz, answers, s.quizKind
}

func (s *Session) RecordAnswer(index int, answer string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.quiz) {
		return fmt.Errorf("question index %d out of range", index)
	}
	if s.answers == nil {
		s.answers = make(map[int]string)
	}
	s.answers[index] = answer
	return nil
}

// ResetAnswers clears submitted answers for a retake, keeping the quiz.
func (s *Session) ResetAnswers() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answers = make(map[int]string)
}

func (s *Session) Summary() model.ConversationSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	var userCount, assistantCount int
	var userLen, assistantLen int
	for _, msg := range s.history {
		switch msg.Role {
		case model.RoleUser:
			userCount++
			userLen += len(msg.Content)
		case model.RoleAssistant:
			assistantCount++
			assistantLen += len(msg.Content)
		}
	}
	summary := model.ConversationSummary{
		TotalExchanges:    userCount,
		UserMessages:      userCount,
		AssistantMessages: assistantCount,
	}
	if userCount > 0 {
		summary.AvgUserMessageLen = float64(userLen) / float64(userCount)
	}
	if assistantCount > 0 {
		summary.AvgAssistantMsgLen = float64(assistantLen) / float64(assistantCount)
	}
	return summary
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
