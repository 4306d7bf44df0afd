package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahsanfayaz52/notesapi/internal/logging"
)

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log, err := logging.New(&buf, "info", "text")
	require.NoError(t, err)

	h := RequestLogger(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(`{"password":"secret1"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	out := buf.String()
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Contains(t, out, "method=POST")
	assert.Contains(t, out, "path=/api/auth/login")
	assert.Contains(t, out, "status=418")
	assert.NotContains(t, out, "secret1")
}

func TestRecoverer(t *testing.T) {
	var buf bytes.Buffer
	log, err := logging.New(&buf, "info", "text")
	require.NoError(t, err)

	h := Recoverer(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/notes", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"msg":"Server error"}`, rec.Body.String())
	assert.Contains(t, buf.String(), "boom")
}
