package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"planetarium-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRecover(t *testing.T) {
	h := Recover(zap.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("nil dome")
	}))

	rec := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/planetarium/planetarium-domes", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body utils.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Status)
}

func TestLogger_CapturesStatus(t *testing.T) {
	var seen *responseWriter
	h := Logger(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = w.(*responseWriter)
		w.WriteHeader(http.StatusConflict)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("taken"))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/planetarium/reservations", nil))

	require.NotNil(t, seen)
	assert.Equal(t, http.StatusConflict, seen.statusCode)
	assert.Equal(t, 5, seen.bytesWritten)
	assert.Equal(t, http.StatusConflict, rec.Code)
}
