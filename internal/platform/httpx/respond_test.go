package httpx

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var errGone = errors.New("gone")

func TestRespondErrorUsesFirstMatchingMapping(t *testing.T) {
	rr := httptest.NewRecorder()
	RespondError(rr, fmt.Errorf("lookup: %w", errGone),
		ErrorMapping{Err: errGone, Status: http.StatusGone},
		ErrorMapping{Err: errGone, Status: http.StatusNotFound},
	)
	require.Equal(t, http.StatusGone, rr.Code)
	require.Equal(t, "application/problem+json", rr.Header().Get("Content-Type"))
	require.JSONEq(t, `{"title": "Gone", "status": 410, "detail": "lookup: gone"}`, rr.Body.String())
}

func TestRespondErrorHidesUnmappedErrors(t *testing.T) {
	rr := httptest.NewRecorder()
	RespondError(rr, errors.New("dial tcp 10.0.0.1:5432: refused"))
	require.Equal(t, http.StatusInternalServerError, rr.Code)
	require.NotContains(t, rr.Body.String(), "10.0.0.1")
}

func TestReadBodyLimit(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"a":1}`))
	body, err := ReadBody(req)
	require.NoError(t, err)
	require.Equal(t, `{"a":1}`, string(body))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("x", MaxBodyBytes+1)))
	_, err = ReadBody(req)
	require.ErrorIs(t, err, ErrBodyTooLarge)
}

func TestJSONAndEmpty(t *testing.T) {
	rr := httptest.NewRecorder()
	JSON(rr, http.StatusCreated, map[string]int{"id": 1})
	require.Equal(t, http.StatusCreated, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	require.JSONEq(t, `{"id": 1}`, rr.Body.String())

	rr = httptest.NewRecorder()
	Empty(rr, http.StatusNoContent)
	require.Equal(t, http.StatusNoContent, rr.Code)
	require.Zero(t, rr.Body.Len())
}
