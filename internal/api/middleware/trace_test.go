package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mockmate/mockmate-api/internal/api/shared"
	"github.com/mockmate/mockmate-api/internal/platform/logger"
)

func TestTraceScopedLoggerUsesProvidedLogger(t *testing.T) {
	var buf bytes.Buffer
	appLogger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	var traceID string
	handler := Trace(appLogger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = shared.GetTraceID(r.Context())
		logger.FromContext(r.Context()).Info("handling request")
	}))

	req := httptest.NewRequest(http.MethodGet, "/traced", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.NotEmpty(t, traceID)

	// Both the middleware's own line and the handler's line must land on the
	// supplied logger's handler, each carrying the trace ID.
	output := buf.String()
	assert.Contains(t, output, "request started")
	assert.Contains(t, output, "handling request")
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		assert.Contains(t, line, traceID)
	}
}

func TestTraceNilLoggerFallsBackToDefault(t *testing.T) {
	var reached bool
	handler := Trace(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		assert.NotEmpty(t, shared.GetTraceID(r.Context()))
	}))

	req := httptest.NewRequest(http.MethodGet, "/traced", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.True(t, reached)
}
