package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/studybuddy/backend/internal/model"
	"github.com/studybuddy/backend/internal/pkg/errcode"
	"github.com/studybuddy/backend/internal/pkg/response"
	"github.com/studybuddy/backend/internal/repo"
	"github.com/studybuddy/backend/internal/service"
	"github.com/studybuddy/backend/internal/session"
)

type QuizHandler struct {
	quiz     *service.QuizService
	attempts *repo.QuizAttemptRepo
	sessions *session.Store
}

func NewQuizHandler(quiz *service.QuizService, attempts *repo.QuizAttemptRepo, sessions *session.Store) *QuizHandler {
	return &QuizHandler{quiz: quiz, attempts: attempts, sessions: sessions}
}

type generateRequest struct {
	Kind  string `json:"kind"`
	Count int    `json:"count"`
}

func (h *QuizHandler) Generate(c *gin.Context) {
	sess, ok := getSession(c, h.sessions)
	if !ok {
		return
	}
	doc := sess.Document()
	if doc == nil {
		response.Error(c, errcode.ErrNoDocument, "upload a document first")
		return
	}
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	if req.Kind == "" {
		req.Kind = model.QuizKindMultipleChoice
	}
	questions, err := h.quiz.Generate(c.Request.Context(), doc.Content, req.Kind, req.Count)
	if err != nil {
		handleError(c, err)
		return
	}
	sess.SetQuiz(req.Kind, questions)
	response.Success(c, gin.H{"questions": questions})
}

type answerRequest struct {
	Index  int    `json:"index"`
	Answer string `json:"answer"`
}

func (h *QuizHandler) Answer(c *gin.Context) {
	sess, ok := getSession(c, h.sessions)
	if !ok {
		return
	}
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	if err := sess.RecordAnswer(req.Index, req.Answer); err != nil {
		response.Error(c, errcode.ErrInvalid, err.Error())
		return
	}
	quiz, answers, _ := sess.QuizState()
	response.Success(c, service.Statistics(quiz, answers))
}

func (h *QuizHandler) Statistics(c *gin.Context) {
	sess, ok := getSession(c, h.sessions)
	if !ok {
		return
	}
	quiz, answers, _ := sess.QuizState()
	response.Success(c, service.Statistics(quiz, answers))
}

// Retake keeps the generated quiz but clears every submitted answer.
func (h *QuizHandler) Retake(c *gin.Context) {
	sess, ok := getSession(c, h.sessions)
	if !ok {
		return
	}
	sess.ResetAnswers()
	response.Success(c, nil)
}

// Finish records the attempt so quiz history survives the session.
func (h *QuizHandler) Finish(c *gin.Context) {
	sess, ok := getSession(c, h.sessions)
	if !ok {
		return
	}
	doc := sess.Document()
	if doc == nil {
		response.Error(c, errcode.ErrNoDocument, "upload a document first")
		return
	}
	quiz, answers, kind := sess.QuizState()
	if len(quiz) == 0 {
		response.Error(c, errcode.ErrInvalid, "no quiz in progress")
		return
	}
	stats := service.Statistics(quiz, answers)
	attempt := &model.QuizAttempt{
		ID:         uuid.NewString(),
		DocumentID: doc.ID,
		Kind:       kind,
		Questions:  quiz,
		Answers:    answers,
		Correct:    stats.CorrectAnswers,
		Total:      stats.TotalQuestions,
		Ctime:      time.Now().UnixMilli(),
	}
	if err := h.attempts.Create(c.Request.Context(), attempt); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"attempt_id": attempt.ID, "stats": stats})
}

func (h *QuizHandler) Attempts(c *gin.Context) {
	sess, ok := getSession(c, h.sessions)
	if !ok {
		return
	}
	docID := c.Query("document_id")
	if docID == "" {
		if doc := sess.Document(); doc != nil {
			docID = doc.ID
		}
	}
	if docID == "" {
		response.Error(c, errcode.ErrInvalid, "document_id is required")
		return
	}
	attempts, err := h.attempts.ListByDocuments(c.Request.Context(), []string{docID})
	if err != nil {
		handleError(c, err)
		return
	}
	if attempts == nil {
		attempts = []*model.QuizAttempt{}
	}
	response.Success(c, gin.H{"items": attempts})
}
