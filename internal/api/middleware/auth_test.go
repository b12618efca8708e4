package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mockmate/mockmate-api/internal/service/auth"
)

type stubJWTService struct {
	claims *auth.Claims
	err    error
}

func (s *stubJWTService) GenerateToken(_ context.Context, _ uuid.UUID) (string, error) {
	return "", nil
}

func (s *stubJWTService) ValidateToken(_ context.Context, _ string) (*auth.Claims, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.claims, nil
}

func runAuthenticate(t *testing.T, jwtService auth.JWTService, header string) (*httptest.ResponseRecorder, bool, uuid.UUID) {
	t.Helper()

	var reached bool
	var gotUserID uuid.UUID
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		gotUserID, _ = GetUserID(r)
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/topics", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}

	rr := httptest.NewRecorder()
	NewAuthMiddleware(jwtService).Authenticate(next).ServeHTTP(rr, req)
	return rr, reached, gotUserID
}

func TestAuthenticateValidToken(t *testing.T) {
	userID := uuid.New()
	jwtService := &stubJWTService{claims: &auth.Claims{UserID: userID}}

	rr, reached, gotUserID := runAuthenticate(t, jwtService, "Bearer good-token")

	require.True(t, reached)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, userID, gotUserID, "user ID flows to the handler via context")
}

func TestAuthenticateMissingHeader(t *testing.T) {
	rr, reached, _ := runAuthenticate(t, &stubJWTService{}, "")

	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	for _, header := range []string{"good-token", "Basic abc", "Bearer a b"} {
		rr, reached, _ := runAuthenticate(t, &stubJWTService{}, header)
		assert.False(t, reached, "header %q", header)
		assert.Equal(t, http.StatusUnauthorized, rr.Code, "header %q", header)
	}
}

func TestAuthenticateExpiredToken(t *testing.T) {
	rr, reached, _ := runAuthenticate(t,
		&stubJWTService{err: auth.ErrExpiredToken}, "Bearer stale-token")

	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "Token expired")
}

func TestAuthenticateInvalidToken(t *testing.T) {
	rr, reached, _ := runAuthenticate(t,
		&stubJWTService{err: auth.ErrInvalidToken}, "Bearer forged-token")

	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "Invalid token")
}
