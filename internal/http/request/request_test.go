package request

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fullsco/portal/internal/http/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type sampleRequest struct {
	Name   string    `json:"name" binding:"required,max=20"`
	Slug   string    `json:"slug" binding:"omitempty,slug"`
	Email  string    `json:"email" binding:"omitempty,email"`
	Active *FlexBool `json:"active"`
}

func serve(t *testing.T, method, target, contentType, body string, handler gin.HandlerFunc) (*httptest.ResponseRecorder, response.Envelope) {
	t.Helper()
	router := gin.New()
	router.Handle(method, "/items/:id", handler)
	router.Handle(method, "/items", handler)

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env response.Envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func bindHandler(got *sampleRequest) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !BindJSON(c, got) {
			return
		}
		response.JSON(c, http.StatusOK, got)
	}
}

func TestBindJSON(t *testing.T) {
	t.Run("valid body", func(t *testing.T) {
		var got sampleRequest
		w, _ := serve(t, http.MethodPost, "/items", "application/json", `{"name":"Medicine","slug":"medicine","active":"true"}`, bindHandler(&got))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Medicine", got.Name)
		require.NotNil(t, got.Active)
		assert.True(t, bool(*got.Active))
	})

	t.Run("unknown field is rejected", func(t *testing.T) {
		var got sampleRequest
		w, env := serve(t, http.MethodPost, "/items", "application/json", `{"name":"x","color":"red"}`, bindHandler(&got))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, env.Success)
		assert.Equal(t, MessageValidationFailed, env.Message)
		assert.Equal(t, map[string]any{"color": "unknown field"}, env.Errors)
	})

	t.Run("missing required field is itemized", func(t *testing.T) {
		var got sampleRequest
		w, env := serve(t, http.MethodPost, "/items", "application/json", `{"email":"nope"}`, bindHandler(&got))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		errs, ok := env.Errors.(map[string]any)
		require.True(t, ok)
		assert.Contains(t, errs, "name")
		assert.Contains(t, errs, "email")
		assert.Nil(t, env.Data)
	})

	t.Run("bad slug", func(t *testing.T) {
		var got sampleRequest
		w, env := serve(t, http.MethodPost, "/items", "application/json", `{"name":"x","slug":"Bad Slug"}`, bindHandler(&got))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		errs, ok := env.Errors.(map[string]any)
		require.True(t, ok)
		assert.Contains(t, errs, "slug")
	})

	t.Run("malformed json", func(t *testing.T) {
		var got sampleRequest
		w, _ := serve(t, http.MethodPost, "/items", "application/json", `{"name":`, bindHandler(&got))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("wrong type", func(t *testing.T) {
		var got sampleRequest
		w, env := serve(t, http.MethodPost, "/items", "application/json", `{"name":5}`, bindHandler(&got))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		errs, ok := env.Errors.(map[string]any)
		require.True(t, ok)
		assert.Contains(t, errs, "name")
	})
}

func TestBind_Form(t *testing.T) {
	var got sampleRequest
	handler := func(c *gin.Context) {
		if !Bind(c, &got) {
			return
		}
		c.Status(http.StatusNoContent)
	}

	form := url.Values{"name": {"Settings"}, "active": {"false"}, "gorilla.csrf.Token": {"abc"}}
	w, _ := serve(t, http.MethodPut, "/items", "application/x-www-form-urlencoded", form.Encode(), handler)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "Settings", got.Name)
	require.NotNil(t, got.Active)
	assert.False(t, bool(*got.Active))
}

func TestParseID(t *testing.T) {
	called := false
	handler := func(c *gin.Context) {
		id, ok := ParseID(c, "id")
		if !ok {
			return
		}
		called = true
		response.JSON(c, http.StatusOK, id)
	}

	for _, raw := range []string{"abc", "0", "-1", "1.5"} {
		called = false
		w, env := serve(t, http.MethodGet, "/items/"+raw, "", "", handler)
		assert.Equal(t, http.StatusBadRequest, w.Code, raw)
		assert.Equal(t, "invalid id", env.Message)
		assert.False(t, called)
	}

	w, env := serve(t, http.MethodGet, "/items/42", "", "", handler)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(42), env.Data)
}

func TestFlexBool(t *testing.T) {
	tests := []struct {
		in      string
		want    bool
		wantErr bool
	}{
		{`true`, true, false},
		{`false`, false, false},
		{`"true"`, true, false},
		{`"false"`, false, false},
		{`"on"`, true, false},
		{`"0"`, false, false},
		{`"maybe"`, false, true},
		{`3`, false, true},
	}
	for _, tt := range tests {
		var b FlexBool
		err := json.Unmarshal([]byte(tt.in), &b)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, bool(b), tt.in)
	}

	var nilFlex *FlexBool
	assert.Nil(t, nilFlex.Ptr())
}

func TestQueryHelpers(t *testing.T) {
	handler := func(c *gin.Context) {
		featured, ok := QueryBool(c, "featured")
		if !ok {
			return
		}
		category, ok := QueryUint(c, "category")
		if !ok {
			return
		}
		page, ok := QueryInt(c, "page", 1)
		if !ok {
			return
		}
		response.JSON(c, http.StatusOK, gin.H{"featured": featured, "category": category, "page": page})
	}

	w, env := serve(t, http.MethodGet, "/items?featured=true&category=3", "", "", handler)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{"featured": true, "category": float64(3), "page": float64(1)}, env.Data)

	w, env = serve(t, http.MethodGet, "/items?category=x", "", "", handler)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid category", env.Message)

	w, _ = serve(t, http.MethodGet, "/items?featured=perhaps", "", "", handler)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
