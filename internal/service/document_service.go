package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/studybuddy/backend/internal/extract"
	"github.com/studybuddy/backend/internal/filestore"
	"github.com/studybuddy/backend/internal/model"
	apperrors "github.com/studybuddy/backend/internal/pkg/errors"
	"github.com/studybuddy/backend/internal/repo"
)

// DocumentService handles an upload end to end: persist the raw bytes,
// extract and normalize the text, record the document row.
type DocumentService struct {
	extractor *extract.Extractor
	store     filestore.Store
	docs      *repo.DocumentRepo
}

func NewDocumentService(extractor *extract.Extractor, store filestore.Store, docs *repo.DocumentRepo) *DocumentService {
	return &DocumentService{extractor: extractor, store: store, docs: docs}
}

func (s *DocumentService) Process(ctx context.Context, title string, content []byte) (*model.Document, error) {
	if len(content) == 0 {
		return nil, fmt.Errorf("%w: empty upload", apperrors.ErrInvalid)
	}
	hash := sha256.Sum256(content)
	storageKey := hex.EncodeToString(hash[:8]) + ".pdf"
	if err := s.store.Save(ctx, storageKey, content); err != nil {
		return nil, fmt.Errorf("save upload: %w", err)
	}

	text, err := s.extractor.ExtractText(ctx, content)
	if err != nil {
		return nil, err
	}

	doc := &model.Document{
		ID:         uuid.NewString(),
		Title:      title,
		Content:    text,
		StorageKey: storageKey,
		Stats:      extract.Stats(text),
		Ctime:      time.Now().UnixMilli(),
	}
	if err := s.docs.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}
	logutil.GetLogger(ctx).Info("document processed",
		zap.String("doc_id", doc.ID),
		zap.String("title", doc.Title),
		zap.Int("words", doc.Stats.WordCount),
	)
	return doc, nil
}

func (s *DocumentService) Get(ctx context.Context, id string) (*model.Document, error) {
	return s.docs.GetByID(ctx, id)
}

func (s *DocumentService) List(ctx context.Context, limit int) ([]*model.Document, error) {
	return s.docs.List(ctx, limit)
}
