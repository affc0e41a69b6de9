package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/studybuddy/backend/internal/middleware"
	"github.com/studybuddy/backend/internal/model"
	"github.com/studybuddy/backend/internal/pkg/errcode"
	"github.com/studybuddy/backend/internal/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func finishRequest(t *testing.T, sessions *session.Store, sessionID string) (int, string) {
	t.Helper()
	h := NewQuizHandler(nil, nil, sessions)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/quiz/finish", nil)
	c.Request.Header.Set(middleware.SessionIDHeader, sessionID)
	h.Finish(c)

	var result struct {
		Code int    `json:"code"`
		Msg  string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	return result.Code, result.Msg
}

func TestQuizFinishWithoutDocument(t *testing.T) {
	sessions := session.NewStore(time.Hour)
	sess := sessions.Create()
	sess.SetQuiz(model.QuizKindShortAnswer, []model.QuizQuestion{
		{Question: "q", Type: model.QuizKindShortAnswer, ExpectedAnswer: "a"},
	})

	code, msg := finishRequest(t, sessions, sess.ID)
	require.Equal(t, errcode.ErrNoDocument, code)
	require.Equal(t, "upload a document first", msg)
}

func TestQuizFinishWithoutQuiz(t *testing.T) {
	sessions := session.NewStore(time.Hour)
	sess := sessions.Create()
	sess.SetDocument(&model.Document{ID: "doc-1", Content: "text"})

	code, msg := finishRequest(t, sessions, sess.ID)
	require.Equal(t, errcode.ErrInvalid, code)
	require.Equal(t, "no quiz in progress", msg)
}
