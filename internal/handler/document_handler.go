package handler

import (
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/studybuddy/backend/internal/pkg/errcode"
	"github.com/studybuddy/backend/internal/pkg/response"
	"github.com/studybuddy/backend/internal/service"
	"github.com/studybuddy/backend/internal/session"
)

// maxUploadSize bounds a single PDF upload.
const maxUploadSize = 20 << 20

type DocumentHandler struct {
	documents *service.DocumentService
	sessions  *session.Store
}

func NewDocumentHandler(documents *service.DocumentService, sessions *session.Store) *DocumentHandler {
	return &DocumentHandler{documents: documents, sessions: sessions}
}

func (h *DocumentHandler) Upload(c *gin.Context) {
	sess, ok := getSession(c, h.sessions)
	if !ok {
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, errcode.ErrInvalidFile, "file is required")
		return
	}
	if file.Size > maxUploadSize {
		response.Error(c, errcode.ErrInvalidFile, "file exceeds the 20MB limit")
		return
	}
	if !strings.EqualFold(filepath.Ext(file.Filename), ".pdf") {
		response.Error(c, errcode.ErrInvalidFile, "only pdf files are supported")
		return
	}
	opened, err := file.Open()
	if err != nil {
		response.Error(c, errcode.ErrInvalidFile, "failed to open file")
		return
	}
	defer opened.Close()
	content, err := io.ReadAll(opened)
	if err != nil {
		response.Error(c, errcode.ErrInvalidFile, "failed to read file")
		return
	}

	doc, err := h.documents.Process(c.Request.Context(), file.Filename, content)
	if err != nil {
		handleError(c, err)
		return
	}
	sess.SetDocument(doc)
	response.Success(c, doc)
}

func (h *DocumentHandler) Get(c *gin.Context) {
	doc, err := h.documents.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, doc)
}

func (h *DocumentHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	docs, err := h.documents.List(c.Request.Context(), limit)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"items": docs})
}
