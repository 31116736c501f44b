package repository

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Progress rows share the enrollment reset semantics: the delete must be
// unscoped so the composite unique key is free for re-created records.
func TestProgressRepositoryDeleteByCourse(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProgressRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `progress_records` WHERE course_id = ?")).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectCommit()

	require.NoError(t, repo.DeleteByCourse(db, 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}
