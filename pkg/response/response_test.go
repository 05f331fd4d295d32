package response

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	customError "github.com/segyhp/landsale-engine/pkg/errors"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", customError.WrapValidation(customError.NewValidationError("f", "bad")), http.StatusBadRequest},
		{"sale not found", customError.WrapSaleNotFound("s"), http.StatusNotFound},
		{"payment not found", customError.WrapPaymentNotFound("p"), http.StatusNotFound},
		{"parcel sold", customError.WrapParcelAlreadySold("x"), http.StatusConflict},
		{"already paid", customError.WrapPaymentAlreadyRecorded("p"), http.StatusConflict},
		{"database", customError.WrapDatabaseError(errors.New("boom")), http.StatusInternalServerError},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.err))
		})
	}
}

func TestFromError_HidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()

	FromError(rec, customError.WrapDatabaseError(errors.New("pq: password authentication failed")))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestFromError_Conflict(t *testing.T) {
	rec := httptest.NewRecorder()

	FromError(rec, customError.WrapParcelAlreadySold("abc"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.False(t, body.Success)
	assert.Equal(t, customError.ErrCodeParcelAlreadySold, body.Code)
}

func TestCreated(t *testing.T) {
	rec := httptest.NewRecorder()

	Created(rec, map[string]string{"id": "1"})

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, body.Success)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	handler := LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/sales", nil))

	assert.Contains(t, buf.String(), "status=418")
	assert.Contains(t, buf.String(), "path=/api/v1/sales")
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	called := false
	handler := CORSMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/v1/sales", nil))

	assert.False(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
