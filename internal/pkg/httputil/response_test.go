package httputil_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcos-nsantos/user-management-backend/internal/pkg/apperror"
	"github.com/marcos-nsantos/user-management-backend/internal/pkg/httputil"
	"github.com/marcos-nsantos/user-management-backend/internal/pkg/validation"
)

func encode(t *testing.T, v any) map[string]any {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out))
	return out
}

func TestSuccess(t *testing.T) {
	t.Run("defaults to 200 and omits empty fields", func(t *testing.T) {
		resp := httputil.Success("", nil)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := encode(t, resp.Body)
		assert.Equal(t, map[string]any{"success": true}, body)
	})

	t.Run("keeps an empty list as data", func(t *testing.T) {
		resp := httputil.Success("", []string{})

		body := encode(t, resp.Body)
		assert.Equal(t, []any{}, body["data"])
	})

	t.Run("custom status", func(t *testing.T) {
		resp := httputil.Success("User created successfully", map[string]int64{"id": 7}).WithStatus(http.StatusCreated)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		body := encode(t, resp.Body)
		assert.Equal(t, "User created successfully", body["message"])
		assert.Equal(t, float64(7), body["data"].(map[string]any)["id"])
	})
}

func TestFailure(t *testing.T) {
	resp := httputil.Failure("Invalid user ID", nil)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := encode(t, resp.Body)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Invalid user ID", body["message"])
	assert.NotContains(t, body, "errors")
}

func TestValidationFailure(t *testing.T) {
	errs := validation.FieldErrors{}
	errs.Add("email", "Invalid email format")

	resp := httputil.ValidationFailure(errs)

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	body := encode(t, resp.Body)
	assert.Equal(t, "Validation failed", body["message"])
	assert.Equal(t, []any{"Invalid email format"}, body["errors"].(map[string]any)["email"])
}

func TestHandleError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"app error", apperror.NotFound("User not found"), http.StatusNotFound, "User not found"},
		{"plain error hides details", errors.New("connection refused"), http.StatusInternalServerError, "Internal server error"},
		{"internal app error hides details", apperror.Internal(errors.New("disk i/o")), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			httputil.HandleError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantMsg, body["message"])
			assert.Equal(t, false, body["success"])
		})
	}
}

func TestGetRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("returns the stored id", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Set(httputil.RequestIDKey, "abc-123")

		assert.Equal(t, "abc-123", httputil.GetRequestID(c))
	})

	t.Run("missing id is empty", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())

		assert.Empty(t, httputil.GetRequestID(c))
	})

	t.Run("non-string value does not panic", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Set(httputil.RequestIDKey, 42)

		assert.NotPanics(t, func() {
			assert.Empty(t, httputil.GetRequestID(c))
		})
	})
}
