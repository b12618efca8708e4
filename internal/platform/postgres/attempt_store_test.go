package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mockmate/mockmate-api/internal/domain"
	"github.com/mockmate/mockmate-api/internal/store"
)

func newAttemptStoreWithMock(t *testing.T) (*PostgresAttemptStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewPostgresAttemptStore(db, nil), mock
}

func attemptColumns() []string {
	return []string{
		"id", "user_id", "topic", "score", "total_questions", "correct_answers",
		"duration_minutes", "confidence_score", "facial_expression_score", "attempt_date",
	}
}

func TestAttemptStoreCreate(t *testing.T) {
	attemptStore, mock := newAttemptStoreWithMock(t)

	attempt, err := domain.NewInterviewAttempt(uuid.New(), "algorithms", 80.0, 5, 4)
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO interview_attempts")).
		WithArgs(
			attempt.ID, attempt.UserID, attempt.Topic, attempt.Score,
			attempt.TotalQuestions, attempt.CorrectAnswers,
			attempt.DurationMinutes, attempt.ConfidenceScore,
			attempt.FacialExpressionScore, attempt.AttemptDate,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, attemptStore.Create(context.Background(), attempt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttemptStoreCreateRejectsInvalid(t *testing.T) {
	attemptStore, mock := newAttemptStoreWithMock(t)

	invalid := &domain.InterviewAttempt{
		ID:             uuid.New(),
		UserID:         uuid.New(),
		Topic:          "algorithms",
		TotalQuestions: 5,
		CorrectAnswers: 9,
		AttemptDate:    time.Now().UTC(),
	}

	err := attemptStore.Create(context.Background(), invalid)
	assert.ErrorIs(t, err, domain.ErrAttemptCorrectAnswersInvalid)
	assert.NoError(t, mock.ExpectationsWereMet(), "invalid attempts never reach the database")
}

func TestAttemptStoreCreateUnknownUser(t *testing.T) {
	attemptStore, mock := newAttemptStoreWithMock(t)

	attempt, err := domain.NewInterviewAttempt(uuid.New(), "algorithms", 80.0, 5, 4)
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO interview_attempts")).
		WillReturnError(&pgconn.PgError{Code: foreignKeyViolationCode})

	err = attemptStore.Create(context.Background(), attempt)
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
}

func TestAttemptStoreListByUser(t *testing.T) {
	attemptStore, mock := newAttemptStoreWithMock(t)
	userID := uuid.New()

	newer, err := domain.NewInterviewAttempt(userID, "algorithms", 90.0, 5, 5)
	require.NoError(t, err)
	older, err := domain.NewInterviewAttempt(userID, "databases", 40.0, 5, 2)
	require.NoError(t, err)
	older.AttemptDate = newer.AttemptDate.Add(-time.Hour)
	duration := 15.0
	newer.DurationMinutes = &duration

	rows := sqlmock.NewRows(attemptColumns()).
		AddRow(newer.ID, newer.UserID, newer.Topic, newer.Score, newer.TotalQuestions,
			newer.CorrectAnswers, newer.DurationMinutes, nil, nil, newer.AttemptDate).
		AddRow(older.ID, older.UserID, older.Topic, older.Score, older.TotalQuestions,
			older.CorrectAnswers, nil, nil, nil, older.AttemptDate)

	mock.ExpectQuery(regexp.QuoteMeta("FROM interview_attempts")).
		WithArgs(userID).
		WillReturnRows(rows)

	attempts, err := attemptStore.ListByUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, attempts, 2)

	assert.Equal(t, newer.ID, attempts[0].ID)
	require.NotNil(t, attempts[0].DurationMinutes)
	assert.Equal(t, 15.0, *attempts[0].DurationMinutes)
	assert.Nil(t, attempts[0].ConfidenceScore)

	assert.Equal(t, older.ID, attempts[1].ID)
	assert.Nil(t, attempts[1].DurationMinutes)
}

func TestAttemptStoreListByUserEmpty(t *testing.T) {
	attemptStore, mock := newAttemptStoreWithMock(t)
	userID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM interview_attempts")).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows(attemptColumns()))

	attempts, err := attemptStore.ListByUser(context.Background(), userID)
	require.NoError(t, err)
	assert.NotNil(t, attempts)
	assert.Empty(t, attempts, "no history is an empty slice, not an error")
}
