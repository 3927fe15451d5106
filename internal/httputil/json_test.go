package httputil

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusCreated, map[string]string{"id": "abc"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":"abc"}`, rec.Body.String())
}

func TestErrorHelpers(t *testing.T) {
	testCases := []struct {
		name     string
		write    func(w http.ResponseWriter)
		status   int
		expected string
	}{
		{name: "bad request", write: func(w http.ResponseWriter) { BadRequest(w, "Invalid match ID", nil) }, status: http.StatusBadRequest, expected: `{"error":"Invalid match ID"}`},
		{name: "not found", write: func(w http.ResponseWriter) { NotFound(w, "Match not found", assert.AnError) }, status: http.StatusNotFound, expected: `{"error":"Match not found"}`},
		{name: "conflict", write: func(w http.ResponseWriter) { Conflict(w, "Nothing to undo", nil) }, status: http.StatusConflict, expected: `{"error":"Nothing to undo"}`},
		{name: "internal", write: func(w http.ResponseWriter) { InternalServerError(w, "boom", assert.AnError) }, status: http.StatusInternalServerError, expected: `{"error":"Internal Server Error"}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tc.write(rec)
			assert.Equal(t, tc.status, rec.Code)
			assert.JSONEq(t, tc.expected, rec.Body.String())
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	var body struct {
		Name string `json:"name"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Cup"}`))
	require.NoError(t, DecodeJSON(req, &body))
	assert.Equal(t, "Cup", body.Name)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"other":1}`))
	assert.Error(t, DecodeJSON(req, &body))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`not json`))
	assert.Error(t, DecodeJSON(req, &body))
}
