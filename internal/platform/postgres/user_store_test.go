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

func newUserStoreWithMock(t *testing.T) (*PostgresUserStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewPostgresUserStore(db, nil), mock
}

func storedUser() *domain.User {
	now := time.Now().UTC()
	return &domain.User{
		ID:             uuid.New(),
		Email:          "test@example.com",
		HashedPassword: "$2a$10$notarealhashbutlongenough",
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func userRows(users ...*domain.User) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "email", "hashed_password", "created_at", "updated_at"})
	for _, u := range users {
		rows.AddRow(u.ID, u.Email, u.HashedPassword, u.CreatedAt, u.UpdatedAt)
	}
	return rows
}

func TestUserStoreCreate(t *testing.T) {
	userStore, mock := newUserStoreWithMock(t)
	user := storedUser()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs(user.ID, user.Email, user.HashedPassword, user.CreatedAt, user.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, userStore.Create(context.Background(), user))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStoreCreateRequiresHash(t *testing.T) {
	userStore, mock := newUserStoreWithMock(t)
	user := storedUser()
	user.HashedPassword = ""

	err := userStore.Create(context.Background(), user)
	assert.ErrorIs(t, err, domain.ErrEmptyHashedPassword)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStoreCreateDuplicateEmail(t *testing.T) {
	userStore, mock := newUserStoreWithMock(t)
	user := storedUser()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&pgconn.PgError{Code: uniqueViolationCode})

	err := userStore.Create(context.Background(), user)
	assert.ErrorIs(t, err, store.ErrEmailExists)
	assert.True(t, store.IsDuplicateError(err))
}

func TestUserStoreGetByEmail(t *testing.T) {
	userStore, mock := newUserStoreWithMock(t)
	user := storedUser()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
		WithArgs(user.Email).
		WillReturnRows(userRows(user))

	got, err := userStore.GetByEmail(context.Background(), user.Email)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, user.HashedPassword, got.HashedPassword)
}

func TestUserStoreGetByEmailNotFound(t *testing.T) {
	userStore, mock := newUserStoreWithMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
		WithArgs("missing@example.com").
		WillReturnRows(userRows())

	_, err := userStore.GetByEmail(context.Background(), "missing@example.com")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestUserStoreGetByID(t *testing.T) {
	userStore, mock := newUserStoreWithMock(t)
	user := storedUser()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
		WithArgs(user.ID).
		WillReturnRows(userRows(user))

	got, err := userStore.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)
}

func TestUserStoreGetByIDNotFound(t *testing.T) {
	userStore, mock := newUserStoreWithMock(t)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
		WithArgs(id).
		WillReturnRows(userRows())

	_, err := userStore.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
	assert.True(t, store.IsNotFoundError(err))
}
