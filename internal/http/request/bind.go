package request

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/fullsco/portal/internal/http/response"
)

// MessageValidationFailed is the message of every 400 caused by the body.
const MessageValidationFailed = "validation failed"

// formIgnoredFields are posted by browsers alongside the settings form.
var formIgnoredFields = map[string]bool{
	"gorilla.csrf.Token": true,
}

// BindJSON decodes the JSON body into dst, rejecting unknown fields, then
// validates dst. On failure it writes a 400 envelope and returns false.
func BindJSON(c *gin.Context, dst any) bool {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Abort(c, http.StatusBadRequest, "failed to read request body")
		return false
	}
	return decodeAndValidate(c, body, dst)
}

// Bind accepts a JSON body or an urlencoded/multipart form. Form values are
// strings, so dst fields receiving them must accept strings (string,
// FlexBool).
func Bind(c *gin.Context, dst any) bool {
	contentType := c.ContentType()
	if contentType != binding.MIMEPOSTForm && contentType != binding.MIMEMultipartPOSTForm {
		return BindJSON(c, dst)
	}

	if err := c.Request.ParseMultipartForm(32 << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		response.Abort(c, http.StatusBadRequest, "invalid form body")
		return false
	}
	values := make(map[string]string, len(c.Request.PostForm))
	for name, vs := range c.Request.PostForm {
		if formIgnoredFields[name] || len(vs) == 0 {
			continue
		}
		values[name] = vs[0]
	}
	body, err := json.Marshal(values)
	if err != nil {
		response.Abort(c, http.StatusBadRequest, "invalid form body")
		return false
	}
	return decodeAndValidate(c, body, dst)
}

func decodeAndValidate(c *gin.Context, body []byte, dst any) bool {
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		response.Abort(c, http.StatusBadRequest, MessageValidationFailed, decodeErrors(err))
		return false
	}

	if err := Validator().Struct(dst); err != nil {
		if fields := FieldErrors(err); fields != nil {
			response.Abort(c, http.StatusBadRequest, MessageValidationFailed, fields)
			return false
		}
		response.Abort(c, http.StatusBadRequest, MessageValidationFailed)
		return false
	}
	return true
}

// decodeErrors itemizes JSON decoding failures the same way validation
// failures are itemized.
func decodeErrors(err error) map[string]string {
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &typeErr):
		return map[string]string{typeErr.Field: fmt.Sprintf("%s must be a %s", typeErr.Field, typeErr.Type.String())}
	case errors.As(err, &syntaxErr):
		return map[string]string{"body": "malformed JSON"}
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		return map[string]string{field: "unknown field"}
	}
	return map[string]string{"body": err.Error()}
}

// ParseID reads a positive integer path parameter. On failure it writes
// 400 "invalid <param>" and returns false.
func ParseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		response.Abort(c, http.StatusBadRequest, "invalid "+param)
		return 0, false
	}
	return uint(id), true
}

// QueryUint parses an optional unsigned query value. Absent or empty gives nil.
func QueryUint(c *gin.Context, name string) (*uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		response.Abort(c, http.StatusBadRequest, "invalid "+name)
		return nil, false
	}
	id := uint(v)
	return &id, true
}

// QueryBool parses an optional boolean query value with NormalizeBool rules.
func QueryBool(c *gin.Context, name string) (*bool, bool) {
	raw, present := c.GetQuery(name)
	if !present || raw == "" {
		return nil, true
	}
	var b FlexBool
	if err := b.UnmarshalText([]byte(raw)); err != nil {
		response.Abort(c, http.StatusBadRequest, "invalid "+name)
		return nil, false
	}
	v := bool(b)
	return &v, true
}

// QueryInt parses an optional integer query value, returning def when absent.
func QueryInt(c *gin.Context, name string, def int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		response.Abort(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return v, true
}
