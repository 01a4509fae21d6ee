package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jerikareyna/modasnansi-backend-main/app/logger"
	"github.com/jerikareyna/modasnansi-backend-main/app/respond"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithRequestID(t *testing.T) {
	testCases := []struct {
		name     string
		incoming string
		check    func(t *testing.T, seen, header string)
	}{
		{
			name:     "Keeps caller id",
			incoming: "abc-123",
			check: func(t *testing.T, seen, header string) {
				assert.Equal(t, "abc-123", seen)
				assert.Equal(t, "abc-123", header)
			},
		},
		{
			name: "Assigns new id",
			check: func(t *testing.T, seen, header string) {
				assert.Len(t, seen, 36)
				assert.Equal(t, seen, header)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			var seen string
			h := WithRequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = RequestIDFromContext(r.Context())
			}))
			req := httptest.NewRequest("GET", "/products", nil)
			if tc.incoming != "" {
				req.Header.Set(RequestIDHeader, tc.incoming)
			}
			rec := httptest.NewRecorder()

			// Act
			h.ServeHTTP(rec, req)

			// Assert
			tc.check(t, seen, rec.Header().Get(RequestIDHeader))
		})
	}
}

func TestWithAccessLog(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := WithRequestID(WithAccessLog(logger.FromCore(core), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	})))
	req := httptest.NewRequest("POST", "/inventory/decrease", nil)
	req.Header.Set(RequestIDHeader, "req-1")

	h.ServeHTTP(httptest.NewRecorder(), req)

	entries := logs.FilterMessage("http request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "POST", fields["method"])
	assert.Equal(t, "/inventory/decrease", fields["path"])
	assert.Equal(t, int64(http.StatusTeapot), fields["status"])
	assert.Equal(t, int64(15), fields["bytes"])
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Contains(t, fields, "duration")
}

func TestWithRecovery(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	h := WithRecovery(logger.FromCore(core), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()

	assert.NotPanics(t, func() {
		h.ServeHTTP(rec, httptest.NewRequest("GET", "/products/1", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body respond.ErrorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "internal_error", body.Type)
	assert.Equal(t, "/products/1", body.Path)

	entries := logs.FilterMessage("handler panic").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "boom", entries[0].ContextMap()["panic"])
}
