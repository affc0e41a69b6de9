package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/studybuddy/backend/internal/middleware"
	"github.com/studybuddy/backend/internal/pkg/response"
	"github.com/studybuddy/backend/internal/session"
)

type SessionHandler struct {
	sessions *session.Store
}

func NewSessionHandler(sessions *session.Store) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

func (h *SessionHandler) Create(c *gin.Context) {
	sess := h.sessions.Create()
	response.Success(c, gin.H{"session_id": sess.ID})
}

func (h *SessionHandler) Delete(c *gin.Context) {
	if id := c.GetHeader(middleware.SessionIDHeader); id != "" {
		h.sessions.Delete(id)
	}
	response.Success(c, nil)
}
