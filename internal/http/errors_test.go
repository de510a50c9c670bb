package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fullsco/portal/internal/auth"
	"github.com/fullsco/portal/internal/config"
	"github.com/fullsco/portal/internal/http/response"
	"github.com/fullsco/portal/internal/logging"
	"github.com/fullsco/portal/internal/services"
)

func runHandleError(t *testing.T, err error) (int, response.Envelope) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	handleError(c, logging.Nop(), err, "test")

	var env response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w.Code, env
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"typed not found", fmt.Errorf("load: %w", services.NotFound("course")), http.StatusNotFound, "الدورة غير موجود"},
		{"already enrolled", services.ErrAlreadyEnrolled, http.StatusConflict, "المستخدم مسجل بالفعل في هذه الدورة"},
		{"unauthorized by message", errors.New("unauthorized access to resource"), http.StatusUnauthorized, auth.MessageUnauthorized},
		{"arabic unauthorized by message", errors.New("غير مصرح لهذا المستخدم"), http.StatusUnauthorized, auth.MessageUnauthorized},
		{"not found by message", errors.New("row not found"), http.StatusNotFound, messageNotFound},
		{"anything else", errors.New("disk full"), http.StatusInternalServerError, messageServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := runHandleError(t, tt.err)
			assert.Equal(t, tt.status, status)
			assert.False(t, env.Success)
			assert.Equal(t, tt.message, env.Message)
		})
	}
}

func TestUnauthorizedMessageMatchesMiddleware(t *testing.T) {
	srv := setupTestServer(t, config.AuthModeLocal)

	w, fromMiddleware := srv.do(t, http.MethodPost, "/api/categories", `{"name":"Business"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	_, fromHandler := runHandleError(t, errors.New("unauthorized"))

	assert.Equal(t, "غير مصرح", fromMiddleware.Message)
	assert.Equal(t, fromMiddleware.Message, fromHandler.Message)
}
