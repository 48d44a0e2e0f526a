package httpx

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIPKeyExtractor(t *testing.T) {
	t.Run("RemoteAddr", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = "10.0.0.1:51234"
		assert.Equal(t, "10.0.0.1", IPKeyExtractor(r))
	})

	t.Run("XForwardedFor", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
		assert.Equal(t, "203.0.113.7", IPKeyExtractor(r))
	})

	t.Run("XRealIP", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("X-Real-IP", "198.51.100.4")
		assert.Equal(t, "198.51.100.4", IPKeyExtractor(r))
	})
}

func TestFormFieldKeyExtractor(t *testing.T) {
	body := strings.NewReader("email=pessoa%40example.com")
	r := httptest.NewRequest(http.MethodPost, "/", body)
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	assert.Equal(t, "pessoa@example.com", FormFieldKeyExtractor("email")(r))
}

func TestRateLimitMiddleware_BlocksAfterBurst(t *testing.T) {
	cfg := RateLimitConfig{RequestsPerWindow: 3, Window: time.Minute, Burst: 3}
	handler := RateLimitByIP(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	do := func() *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = "10.1.2.3:4000"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		return w
	}

	for range 3 {
		require.Equal(t, http.StatusNoContent, do().Code)
	}

	w := do()
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, "3", w.Header().Get("X-RateLimit-Limit"))
}

func TestRateLimitMiddleware_KeysAreIndependent(t *testing.T) {
	cfg := RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1}
	handler := RateLimitByIP(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	do := func(addr string) int {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = addr
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		return w.Code
	}

	require.Equal(t, http.StatusNoContent, do("10.0.0.1:1"))
	require.Equal(t, http.StatusTooManyRequests, do("10.0.0.1:2"))
	assert.Equal(t, http.StatusNoContent, do("10.0.0.2:1"))
}
