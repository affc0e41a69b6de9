package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"
	"github.com/jmoiron/sqlx"

	"github.com/studybuddy/backend/internal/model"
	apperrors "github.com/studybuddy/backend/internal/pkg/errors"
)

var (
	documentFields = []string{"id", "title", "content", "storage_key",
		"word_count", "sentence_count", "paragraph_count", "character_count", "ctime"}
	// content omitted to keep listings light
	documentListFields = []string{"id", "title", "storage_key",
		"word_count", "sentence_count", "paragraph_count", "character_count", "ctime"}
)

type DocumentRepo struct {
	db *sql.DB
}

func NewDocumentRepo(db *sql.DB) *DocumentRepo {
	return &DocumentRepo{db: db}
}

// gendry emits mysql-style `?` placeholders; every built query is rebound
// to `$N` before it reaches the pq driver.

func buildDocumentInsert(doc *model.Document) (string, []interface{}, error) {
	data := map[string]interface{}{
		"id":              doc.ID,
		"title":           doc.Title,
		"content":         doc.Content,
		"storage_key":     doc.StorageKey,
		"word_count":      doc.Stats.WordCount,
		"sentence_count":  doc.Stats.SentenceCount,
		"paragraph_count": doc.Stats.ParagraphCount,
		"character_count": doc.Stats.CharacterCount,
		"ctime":           doc.Ctime,
	}
	sqlStr, args, err := builder.BuildInsert("documents", []map[string]interface{}{data})
	if err != nil {
		return "", nil, err
	}
	return sqlx.Rebind(sqlx.DOLLAR, sqlStr), args, nil
}

func buildDocumentGet(id string) (string, []interface{}, error) {
	sqlStr, args, err := builder.BuildSelect("documents", map[string]interface{}{"id": id}, documentFields)
	if err != nil {
		return "", nil, err
	}
	return sqlx.Rebind(sqlx.DOLLAR, sqlStr), args, nil
}

func buildDocumentList(limit int) (string, []interface{}, error) {
	where := map[string]interface{}{
		"_orderby": "ctime desc",
	}
	sqlStr, args, err := builder.BuildSelect("documents", where, documentListFields)
	if err != nil {
		return "", nil, err
	}
	// gendry's _limit renders as mysql `LIMIT ?,?`, so the limit clause is
	// appended by hand before rebinding.
	sqlStr += " LIMIT ?"
	args = append(args, limit)
	return sqlx.Rebind(sqlx.DOLLAR, sqlStr), args, nil
}

func (r *DocumentRepo) Create(ctx context.Context, doc *model.Document) error {
	sqlStr, args, err := buildDocumentInsert(doc)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *DocumentRepo) GetByID(ctx context.Context, id string) (*model.Document, error) {
	sqlStr, args, err := buildDocumentGet(id)
	if err != nil {
		return nil, err
	}
	row := r.db.QueryRowContext(ctx, sqlStr, args...)
	doc := &model.Document{}
	err = row.Scan(&doc.ID, &doc.Title, &doc.Content, &doc.StorageKey,
		&doc.Stats.WordCount, &doc.Stats.SentenceCount, &doc.Stats.ParagraphCount, &doc.Stats.CharacterCount,
		&doc.Ctime)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// List returns document metadata newest first; content is omitted to keep
// the listing light.
func (r *DocumentRepo) List(ctx context.Context, limit int) ([]*model.Document, error) {
	if limit <= 0 {
		limit = 50
	}
	sqlStr, args, err := buildDocumentList(limit)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var docs []*model.Document
	for rows.Next() {
		doc := &model.Document{}
		if err := rows.Scan(&doc.ID, &doc.Title, &doc.StorageKey,
			&doc.Stats.WordCount, &doc.Stats.SentenceCount, &doc.Stats.ParagraphCount, &doc.Stats.CharacterCount,
			&doc.Ctime); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}
