package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	const apiKey = "test-api-key"

	tests := []struct {
		name       string
		path       string
		key        string
		wantStatus int
	}{
		{"valid key", "/api/v1/shop/gold", apiKey, http.StatusOK},
		{"wrong key", "/api/v1/shop/gold", "nope", http.StatusUnauthorized},
		{"missing key", "/api/v1/shop/buy", "", http.StatusUnauthorized},
		{"healthz is public", "/healthz", "", http.StatusOK},
		{"readyz is public", "/readyz", "", http.StatusOK},
		{"metrics is public", "/metrics", "", http.StatusOK},
		{"swagger prefix is public", "/swagger/index.html", "", http.StatusOK},
		{"public paths match exactly", "/healthz/extra", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// ARRANGE
			mw := AuthMiddleware(apiKey, nil, NewSuspiciousActivityDetector())(okHandler())
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.key != "" {
				req.Header.Set(HeaderAPIKey, tt.key)
			}
			rec := httptest.NewRecorder()

			// ACT
			mw.ServeHTTP(rec, req)

			// ASSERT
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestAuthMiddleware_RecordsFailedAuth(t *testing.T) {
	// ARRANGE
	detector := NewSuspiciousActivityDetector()
	mw := AuthMiddleware("secret", nil, detector)(okHandler())

	// ACT
	for i := 0; i < FailedAuthAlertAfter; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/shop/buy", nil)
		req.RemoteAddr = "10.0.0.7:5555"
		mw.ServeHTTP(httptest.NewRecorder(), req)
	}

	// ASSERT
	detector.mu.Lock()
	defer detector.mu.Unlock()
	assert.Equal(t, FailedAuthAlertAfter, detector.failedAuthByIP["10.0.0.7"])
}

func TestRequestSizeLimitMiddleware(t *testing.T) {
	// ARRANGE
	var readErr error
	mw := RequestSizeLimitMiddleware(10)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, 100)
		for readErr == nil {
			_, readErr = r.Body.Read(buf)
		}
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("x", 50)))

	// ACT
	mw.ServeHTTP(httptest.NewRecorder(), req)

	// ASSERT
	var maxErr *http.MaxBytesError
	assert.ErrorAs(t, readErr, &maxErr)
}

func TestSecurityLoggingMiddleware_BlocksHighRate(t *testing.T) {
	// ARRANGE
	detector := NewSuspiciousActivityDetector()
	mw := SecurityLoggingMiddleware(nil, detector)(okHandler())
	send := func() int {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/shop/gold", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		rec := httptest.NewRecorder()
		mw.ServeHTTP(rec, req)
		return rec.Code
	}

	// ACT
	for i := 0; i < MaxRequestsPerWindow; i++ {
		require.Equal(t, http.StatusOK, send())
	}
	blocked := send()

	// ASSERT
	assert.Equal(t, http.StatusTooManyRequests, blocked)
}

func TestSuspiciousActivityDetector_WindowReset(t *testing.T) {
	// ARRANGE
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	detector := NewSuspiciousActivityDetector()
	detector.now = func() time.Time { return now }
	detector.reset()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	for i := 0; i < MaxRequestsPerWindow; i++ {
		detector.RecordRequest(req, "203.0.113.9")
	}
	require.False(t, detector.RecordRequest(req, "203.0.113.9"))

	// ACT
	now = now.Add(ActivityWindow + time.Second)
	allowed := detector.RecordRequest(req, "203.0.113.9")

	// ASSERT
	assert.True(t, allowed)
}

func TestSuspiciousActivityDetector_PerIP(t *testing.T) {
	// ARRANGE
	detector := NewSuspiciousActivityDetector()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for i := 0; i <= MaxRequestsPerWindow; i++ {
		detector.RecordRequest(req, "198.51.100.1")
	}

	// ACT
	allowed := detector.RecordRequest(req, "198.51.100.2")

	// ASSERT
	assert.True(t, allowed)
}

func TestExtractIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		forwarded  string
		trusted    []string
		want       string
	}{
		{"direct peer", "192.0.2.10:4000", "", nil, "192.0.2.10"},
		{"untrusted forwarded header ignored", "192.0.2.10:4000", "1.2.3.4", nil, "192.0.2.10"},
		{"trusted proxy uses last hop", "10.0.0.1:80", "1.2.3.4, 5.6.7.8", []string{"10.0.0.1"}, "5.6.7.8"},
		{"trusted proxy without header", "10.0.0.1:80", "", []string{"10.0.0.1"}, "10.0.0.1"},
		{"remote addr without port", "192.0.2.10", "", nil, "192.0.2.10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				req.Header.Set(HeaderForwardedFor, tt.forwarded)
			}

			assert.Equal(t, tt.want, extractIP(req, tt.trusted))
		})
	}
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	// ARRANGE
	mw := SecurityHeadersMiddleware()(okHandler())
	rec := httptest.NewRecorder()

	// ACT
	mw.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	// ASSERT
	assert.Equal(t, HeaderValueNoSniff, rec.Header().Get(HeaderContentType))
	assert.Equal(t, HeaderValueSameOrigin, rec.Header().Get(HeaderFrameOptions))
	assert.Equal(t, HeaderValueXSSBlock, rec.Header().Get(HeaderXSSProtection))
	assert.Equal(t, HeaderValueReferrerStrictOrigin, rec.Header().Get(HeaderReferrerPolicy))
}
