package rest

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/wotracker/internal/common"
	"github.com/stretchr/testify/assert"
)

func TestRequestID_GeneratesAndReuses(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(common.RequestIDHeaderName))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(common.RequestIDHeaderName, "abc")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc", seen)
	assert.Equal(t, "abc", rec.Header().Get(common.RequestIDHeaderName))
}

func TestRateLimiter_PerClient(t *testing.T) {
	l := newRateLimiter(RateLimitConfig{RequestsPerSecond: 0.001, Burst: 1})
	h := l.middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	call := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, call("10.0.0.1:1"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1:2"))
	assert.Equal(t, http.StatusNoContent, call("10.0.0.2:1"))
}

func TestRateLimiter_DropsIdleClients(t *testing.T) {
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	l := newRateLimiter(RateLimitConfig{RequestsPerSecond: 1, Burst: 1})
	l.now = func() time.Time { return now }

	l.get("a")
	l.get("b")
	assert.Len(t, l.clients, 2)

	now = now.Add(limiterIdleAfter + time.Minute)
	l.get("b")
	assert.Len(t, l.clients, 1)
	assert.Contains(t, l.clients, "b")
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:5555"
	req.Header.Set("X-Forwarded-For", "203.0.113.9")
	assert.Equal(t, "192.0.2.1", clientIP(req))

	req.RemoteAddr = "no-port"
	assert.Equal(t, "no-port", clientIP(req))
}
