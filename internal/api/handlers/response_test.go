package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Ana"}`))
	require.NoError(t, DecodeJSON(r, &v))
	assert.Equal(t, "Ana", v.Name)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	assert.ErrorIs(t, DecodeJSON(r, &v), ErrEmptyBody)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{"))
	assert.Error(t, DecodeJSON(r, &v))
}

func TestRespondError(t *testing.T) {
	w := httptest.NewRecorder()
	RespondConflict(w, "занято")

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error":"занято"}`, w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
}

func TestOptionalTime(t *testing.T) {
	q := url.Values{"from": {"2026-05-15"}, "to": {"2026-05-15T12:00:00-03:00"}, "bad": {"tomorrow"}}

	from, err := OptionalTime(q, "from")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC), *from)

	to, err := OptionalTime(q, "to")
	require.NoError(t, err)
	assert.True(t, to.Equal(time.Date(2026, 5, 15, 15, 0, 0, 0, time.UTC)))

	missing, err := OptionalTime(q, "missing")
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = OptionalTime(q, "bad")
	assert.Error(t, err)
}

func TestValidateID(t *testing.T) {
	assert.NoError(t, ValidateID("3f2b8c1e-5d4a-4e6f-9a7b-1c2d3e4f5a6b"))

	for _, id := range []string{
		"",
		"abc",
		"staff-1",
		"3f2b8c1e5d4a4e6f9a7b1c2d3e4f5a6b",
		"{3f2b8c1e-5d4a-4e6f-9a7b-1c2d3e4f5a6b}",
		"3f2b8c1e-5d4a-4e6f-9a7b-1c2d3e4f5a6z",
	} {
		assert.ErrorIs(t, ValidateID(id), ErrInvalidID, id)
	}
}

func TestOptionalID(t *testing.T) {
	q := url.Values{"staffId": {"3f2b8c1e-5d4a-4e6f-9a7b-1c2d3e4f5a6b"}, "bad": {"abc"}}

	id, err := OptionalID(q, "staffId")
	require.NoError(t, err)
	assert.Equal(t, "3f2b8c1e-5d4a-4e6f-9a7b-1c2d3e4f5a6b", *id)

	missing, err := OptionalID(q, "missing")
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = OptionalID(q, "bad")
	assert.ErrorIs(t, err, ErrInvalidID)
}
