package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/studybuddy/backend/internal/middleware"
	"github.com/studybuddy/backend/internal/pkg/errcode"
	apperrors "github.com/studybuddy/backend/internal/pkg/errors"
	"github.com/studybuddy/backend/internal/pkg/response"
	"github.com/studybuddy/backend/internal/session"
)

func getSession(c *gin.Context, store *session.Store) (*session.Session, bool) {
	id := c.GetHeader(middleware.SessionIDHeader)
	if id == "" {
		response.Error(c, errcode.ErrSessionNotFound, "session header is required")
		return nil, false
	}
	sess, err := store.Get(id)
	if err != nil {
		response.Error(c, errcode.ErrSessionNotFound, "session not found or expired")
		return nil, false
	}
	return sess, true
}

func handleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	logutil.GetLogger(c.Request.Context()).Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		response.Error(c, errcode.ErrNotFound, "not found")
	case errors.Is(err, apperrors.ErrInvalid):
		response.Error(c, errcode.ErrInvalid, err.Error())
	case errors.Is(err, apperrors.ErrExtraction):
		response.Error(c, errcode.ErrExtractionFailed, err.Error())
	case errors.Is(err, apperrors.ErrChat):
		response.Error(c, errcode.ErrChatFailed, err.Error())
	case errors.Is(err, apperrors.ErrQuiz):
		response.Error(c, errcode.ErrQuizFailed, err.Error())
	case errors.Is(err, apperrors.ErrGeneration):
		response.Error(c, errcode.ErrGenerationFailed, err.Error())
	default:
		response.Error(c, errcode.ErrInternal, "internal error")
	}
}
