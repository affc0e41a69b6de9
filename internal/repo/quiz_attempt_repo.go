package repo

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/didi/gendry/builder"
	"github.com/jmoiron/sqlx"

	"github.com/studybuddy/backend/internal/model"
)

type QuizAttemptRepo struct {
	db *sql.DB
}

func NewQuizAttemptRepo(db *sql.DB) *QuizAttemptRepo {
	return &QuizAttemptRepo{db: db}
}

func buildAttemptInsert(attempt *model.QuizAttempt) (string, []interface{}, error) {
	questions, err := json.Marshal(attempt.Questions)
	if err != nil {
		return "", nil, err
	}
	answers, err := json.Marshal(attempt.Answers)
	if err != nil {
		return "", nil, err
	}
	data := map[string]interface{}{
		"id":          attempt.ID,
		"document_id": attempt.DocumentID,
		"kind":        attempt.Kind,
		"questions":   string(questions),
		"answers":     string(answers),
		"correct":     attempt.Correct,
		"total":       attempt.Total,
		"ctime":       attempt.Ctime,
	}
	sqlStr, args, err := builder.BuildInsert("quiz_attempts", []map[string]interface{}{data})
	if err != nil {
		return "", nil, err
	}
	return sqlx.Rebind(sqlx.DOLLAR, sqlStr), args, nil
}

func (r *QuizAttemptRepo) Create(ctx context.Context, attempt *model.QuizAttempt) error {
	sqlStr, args, err := buildAttemptInsert(attempt)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

// ListByDocuments fetches attempts for any of the given documents, newest
// first.
func (r *QuizAttemptRepo) ListByDocuments(ctx context.Context, docIDs []string) ([]*model.QuizAttempt, error) {
	if len(docIDs) == 0 {
		return nil, nil
	}
	query := `SELECT id, document_id, kind, questions, answers, correct, total, ctime
FROM quiz_attempts WHERE document_id IN (?) ORDER BY ctime DESC`
	query, args, err := sqlx.In(query, docIDs)
	if err != nil {
		return nil, err
	}
	query = sqlx.Rebind(sqlx.DOLLAR, query)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var attempts []*model.QuizAttempt
	for rows.Next() {
		attempt := &model.QuizAttempt{}
		var questions, answers string
		if err := rows.Scan(&attempt.ID, &attempt.DocumentID, &attempt.Kind,
			&questions, &answers, &attempt.Correct, &attempt.Total, &attempt.Ctime); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(questions), &attempt.Questions); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(answers), &attempt.Answers); err != nil {
			return nil, err
		}
		attempts = append(attempts, attempt)
	}
	return attempts, rows.Err()
}
