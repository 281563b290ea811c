package server

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/BrandishShop/internal/logger"
)

func captureDefaultLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestLoggingMiddleware_RedactsSecrets(t *testing.T) {
	// ARRANGE
	buf := captureDefaultLogger(t)
	mw := loggingMiddleware(okHandler())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/shop/gold", nil)
	req.Header.Set(HeaderAPIKey, "super-secret-key")
	req.Header.Set(HeaderAuthorization, "Bearer token-value")

	// ACT
	mw.ServeHTTP(httptest.NewRecorder(), req)

	// ASSERT
	out := buf.String()
	assert.NotContains(t, out, "super-secret-key")
	assert.NotContains(t, out, "token-value")
	assert.Contains(t, out, RedactedValue)
	assert.Contains(t, out, LogMsgRequestCompleted)
}

func TestLoggingMiddleware_SetsRequestID(t *testing.T) {
	// ARRANGE
	captureDefaultLogger(t)
	var seenID string
	mw := loggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID, _ = logger.RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusCreated)
	}))
	rec := httptest.NewRecorder()

	// ACT
	mw.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/shop/buy", nil))

	// ASSERT
	require.NotEmpty(t, seenID)
	assert.Equal(t, seenID, rec.Header().Get(HeaderRequestID))
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestLoggingMiddleware_SkipsProbes(t *testing.T) {
	// ARRANGE
	buf := captureDefaultLogger(t)
	mw := loggingMiddleware(okHandler())
	rec := httptest.NewRecorder()

	// ACT
	mw.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	// ASSERT
	assert.Empty(t, buf.String())
	assert.Empty(t, rec.Header().Get(HeaderRequestID))
}
