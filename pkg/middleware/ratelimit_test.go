package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"planetarium-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// countingLimiter allows the first limit hits per key.
type countingLimiter struct {
	limit int
	hits  map[string]int
	err   error
}

func (l *countingLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	if l.err != nil {
		return false, 0, l.err
	}
	l.hits[key]++
	if l.hits[key] > l.limit {
		return false, 2500 * time.Millisecond, nil
	}
	return true, 0, nil
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
}

func TestRateLimit_PerUser(t *testing.T) {
	limiter := &countingLimiter{limit: 2, hits: map[string]int{}}
	h := RateLimit(limiter, zap.NewNop())(okHandler())

	userA, userB := uuid.New(), uuid.New()
	post := func(user uuid.UUID) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/planetarium/reservations", nil)
		req = req.WithContext(utils.SetUserContext(req.Context(), user, "customer"))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusCreated, post(userA).Code)
	assert.Equal(t, http.StatusCreated, post(userA).Code)

	rec := post(userA)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "3", rec.Header().Get("Retry-After"))

	// other users have their own window
	assert.Equal(t, http.StatusCreated, post(userB).Code)
	assert.Equal(t, 3, limiter.hits["user:"+userA.String()])
}

func TestRateLimit_AnonymousByIP(t *testing.T) {
	limiter := &countingLimiter{limit: 1, hits: map[string]int{}}
	h := RateLimit(limiter, zap.NewNop())(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/user/login", nil)
	req.RemoteAddr = "203.0.113.9:51234"
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, 1, limiter.hits["ip:203.0.113.9"])
}

func TestRateLimit_FailsOpen(t *testing.T) {
	limiter := &countingLimiter{err: errors.New("redis down")}
	h := RateLimit(limiter, zap.NewNop())(okHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/planetarium/reservations", nil))

	assert.Equal(t, http.StatusCreated, rec.Code)
}
