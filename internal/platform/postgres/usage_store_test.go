package postgres

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mockmate/mockmate-api/internal/store"
)

func newUsageStoreWithMock(t *testing.T) (*PostgresUsageStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewPostgresUsageStore(db, nil), mock
}

func TestUsageStoreCountDistinctUsed(t *testing.T) {
	usageStore, mock := newUsageStoreWithMock(t)
	userID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(DISTINCT qu.question_id)")).
		WithArgs(userID, "algorithms").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := usageStore.CountDistinctUsed(context.Background(), userID, "algorithms")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsageStoreListUsedIDs(t *testing.T) {
	usageStore, mock := newUsageStoreWithMock(t)
	userID := uuid.New()
	q1, q2 := uuid.New(), uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT qu.question_id")).
		WithArgs(userID, "algorithms").
		WillReturnRows(sqlmock.NewRows([]string{"question_id"}).AddRow(q1).AddRow(q2))

	ids, err := usageStore.ListUsedIDs(context.Background(), userID, "algorithms")
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{q1, q2}, ids)
}

func TestUsageStoreListUsedIDsEmpty(t *testing.T) {
	usageStore, mock := newUsageStoreWithMock(t)
	userID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT qu.question_id")).
		WithArgs(userID, "algorithms").
		WillReturnRows(sqlmock.NewRows([]string{"question_id"}))

	ids, err := usageStore.ListUsedIDs(context.Background(), userID, "algorithms")
	require.NoError(t, err)
	assert.NotNil(t, ids)
	assert.Empty(t, ids)
}

func TestUsageStoreInsertUsage(t *testing.T) {
	usageStore, mock := newUsageStoreWithMock(t)
	userID, questionID := uuid.New(), uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO question_usage")).
		WithArgs(userID, questionID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, usageStore.InsertUsage(context.Background(), userID, questionID))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsageStoreInsertUsageDuplicateIsNoop(t *testing.T) {
	usageStore, mock := newUsageStoreWithMock(t)
	userID, questionID := uuid.New(), uuid.New()

	// ON CONFLICT DO NOTHING reports zero rows affected without erroring.
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO question_usage")).
		WithArgs(userID, questionID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, usageStore.InsertUsage(context.Background(), userID, questionID))
}

func TestUsageStoreInsertUsageUnknownReference(t *testing.T) {
	usageStore, mock := newUsageStoreWithMock(t)
	userID, questionID := uuid.New(), uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO question_usage")).
		WithArgs(userID, questionID).
		WillReturnError(&pgconn.PgError{Code: foreignKeyViolationCode})

	err := usageStore.InsertUsage(context.Background(), userID, questionID)
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
}

func TestUsageStoreResetUsage(t *testing.T) {
	usageStore, mock := newUsageStoreWithMock(t)
	userID := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM question_usage")).
		WithArgs(userID, "algorithms").
		WillReturnResult(sqlmock.NewResult(0, 5))

	require.NoError(t, usageStore.ResetUsage(context.Background(), userID, "algorithms"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
