package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yuin/goldmark"

	"github.com/studybuddy/backend/internal/model"
	"github.com/studybuddy/backend/internal/pkg/errcode"
	"github.com/studybuddy/backend/internal/pkg/response"
	"github.com/studybuddy/backend/internal/service"
	"github.com/studybuddy/backend/internal/session"
)

type ChatHandler struct {
	chat     *service.ChatService
	sessions *session.Store
}

func NewChatHandler(chat *service.ChatService, sessions *session.Store) *ChatHandler {
	return &ChatHandler{chat: chat, sessions: sessions}
}

type askRequest struct {
	Question string `json:"question"`
}

func (h *ChatHandler) Ask(c *gin.Context) {
	sess, ok := getSession(c, h.sessions)
	if !ok {
		return
	}
	if sess.Document() == nil {
		response.Error(c, errcode.ErrNoDocument, "upload a document first")
		return
	}
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}

	// The engine reads history but never writes it; the user turn goes in
	// before the call so it is part of the grounding context, the
	// assistant turn after.
	sess.AppendMessage(model.RoleUser, req.Question)
	answer, err := h.chat.Answer(c.Request.Context(), sess, req.Question)
	if err != nil {
		handleError(c, err)
		return
	}
	sess.AppendMessage(model.RoleAssistant, answer)
	response.Success(c, gin.H{"answer": answer})
}

func (h *ChatHandler) History(c *gin.Context) {
	sess, ok := getSession(c, h.sessions)
	if !ok {
		return
	}
	response.Success(c, gin.H{"messages": sess.History()})
}

func (h *ChatHandler) ClearHistory(c *gin.Context) {
	sess, ok := getSession(c, h.sessions)
	if !ok {
		return
	}
	sess.ClearHistory()
	response.Success(c, nil)
}

func (h *ChatHandler) Summary(c *gin.Context) {
	sess, ok := getSession(c, h.sessions)
	if !ok {
		return
	}
	response.Success(c, sess.Summary())
}

// Export renders the conversation as markdown, or as HTML when
// ?format=html is given.
func (h *ChatHandler) Export(c *gin.Context) {
	sess, ok := getSession(c, h.sessions)
	if !ok {
		return
	}
	markdown := exportMarkdown(sess.History())
	if c.Query("format") == "html" {
		var buf bytes.Buffer
		if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
			handleError(c, err)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
		return
	}
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(markdown))
}

// ClearKeyPoints drops every cached document summary.
func (h *ChatHandler) ClearKeyPoints(c *gin.Context) {
	h.chat.ClearKeyPointCache()
	response.Success(c, nil)
}

func exportMarkdown(history []model.ChatMessage) string {
	if len(history) == 0 {
		return "No chat history available.\n"
	}
	var buf bytes.Buffer
	buf.WriteString("# Chat History - Study Buddy\n\n")
	for _, msg := range history {
		role := "AI Assistant"
		if msg.Role == model.RoleUser {
			role = "You"
		}
		fmt.Fprintf(&buf, "## %s:\n%s\n\n", role, msg.Content)
	}
	return buf.String()
}
