package repo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/studybuddy/backend/internal/model"
)

// The pq driver only accepts $N placeholders, so no built query may reach
// it with mysql-style `?` markers.

func TestDocumentQueriesUseDollarPlaceholders(t *testing.T) {
	doc := &model.Document{ID: "d1", Title: "notes.pdf", Content: "text", StorageKey: "abc.pdf", Ctime: 1}

	insertSQL, args, err := buildDocumentInsert(doc)
	require.NoError(t, err)
	require.NotContains(t, insertSQL, "?")
	require.Contains(t, insertSQL, "$1")
	require.Len(t, args, 9)

	getSQL, args, err := buildDocumentGet("d1")
	require.NoError(t, err)
	require.NotContains(t, getSQL, "?")
	require.Contains(t, getSQL, "$1")
	require.Len(t, args, 1)
}

func TestDocumentListQueryLimit(t *testing.T) {
	listSQL, args, err := buildDocumentList(10)
	require.NoError(t, err)
	require.NotContains(t, listSQL, "?")
	require.Contains(t, strings.ToLower(listSQL), "order by ctime desc")
	require.True(t, strings.HasSuffix(listSQL, "LIMIT $1"), listSQL)
	require.Equal(t, []interface{}{10}, args)
}

func TestAttemptInsertUsesDollarPlaceholders(t *testing.T) {
	attempt := &model.QuizAttempt{
		ID:         "a1",
		DocumentID: "d1",
		Kind:       model.QuizKindMixed,
		Questions:  []model.QuizQuestion{{Question: "q", Type: model.QuizKindShortAnswer, ExpectedAnswer: "a"}},
		Answers:    map[int]string{0: "a"},
		Correct:    0,
		Total:      1,
		Ctime:      1,
	}
	insertSQL, args, err := buildAttemptInsert(attempt)
	require.NoError(t, err)
	require.NotContains(t, insertSQL, "?")
	require.Contains(t, insertSQL, "$1")
	require.Len(t, args, 8)
}
