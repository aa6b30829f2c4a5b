package shared_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexicard/lexicard-api/internal/api/shared"
)

func TestUserIDFromContext(t *testing.T) {
	t.Parallel()

	_, ok := shared.UserIDFromContext(context.Background())
	assert.False(t, ok)

	_, ok = shared.UserIDFromContext(shared.WithUserID(context.Background(), uuid.Nil))
	assert.False(t, ok, "nil UUID is not an authenticated user")

	id := uuid.New()
	got, ok := shared.UserIDFromContext(shared.WithUserID(context.Background(), id))
	require.True(t, ok)
	assert.Equal(t, id, got)
}

func TestTraceID(t *testing.T) {
	t.Parallel()

	assert.Empty(t, shared.GetTraceID(context.Background()))

	a := shared.GetTraceID(shared.SetTraceID(context.Background()))
	b := shared.GetTraceID(shared.SetTraceID(context.Background()))
	assert.Len(t, a, shared.TraceIDLength*2)
	assert.NotEqual(t, a, b)
}

func TestRespondWithError_CarriesTraceID(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(shared.SetTraceID(req.Context()))
	rr := httptest.NewRecorder()

	shared.RespondWithErrorAndLog(rr, req, http.StatusInternalServerError, "An unexpected error occurred",
		errors.New("dial postgres://admin:hunter2@db:5432 failed"))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var env shared.Envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	assert.False(t, env.Success)
	assert.Equal(t, "An unexpected error occurred", env.Message)
	assert.Equal(t, shared.GetTraceID(req.Context()), env.TraceID)
	assert.NotContains(t, rr.Body.String(), "hunter2")
}

func TestRespondWithSuccess(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	shared.RespondWithSuccess(rr, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusCreated, "Created",
		map[string]int{"count": 2})

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.JSONEq(t, `{"success":true,"message":"Created","data":{"count":2}}`, rr.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	type payload struct {
		Name string `json:"name" validate:"required"`
	}

	decode := func(body string) (payload, error) {
		var p payload
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		return p, shared.DecodeJSON(req, &p)
	}

	p, err := decode(`{"name":"Kitchen"}`)
	require.NoError(t, err)
	assert.Equal(t, "Kitchen", p.Name)

	_, err = decode("")
	assert.ErrorIs(t, err, shared.ErrEmptyBody)

	_, err = decode(`{"name":"x","extra":1}`)
	assert.Error(t, err)

	_, err = decode(`{"name":`)
	assert.Error(t, err)

	assert.Error(t, shared.ValidateRequest(&payload{}))
	assert.NoError(t, shared.ValidateRequest(&payload{Name: "ok"}))
}
