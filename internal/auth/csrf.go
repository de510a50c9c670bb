package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"

	"github.com/fullsco/portal/internal/http/response"
)

// CSRFTokenHeader is the header clients send the token in.
const CSRFTokenHeader = "X-CSRF-Token"

const csrfContextKey = "csrf_token"

// CSRFMiddleware protects cookie-authenticated requests. A request that
// carries no session cookie has no ambient credentials to abuse and skips
// the check, as do safe methods (gorilla/csrf ignores GET, HEAD, OPTIONS, TRACE).
// When secure is false plain HTTP requests are accepted without the TLS
// referer check.
func CSRFMiddleware(secret []byte, secure bool, sessionCookie string) gin.HandlerFunc {
	protect := csrf.Protect(
		secret,
		csrf.Secure(secure),
		csrf.HttpOnly(true),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.Path("/"),
		csrf.RequestHeader(CSRFTokenHeader),
		csrf.ErrorHandler(http.HandlerFunc(csrfErrorHandler)),
	)

	return func(c *gin.Context) {
		if sessionCookie != "" && !hasCookie(c.Request, sessionCookie) && !isSafeMethod(c.Request.Method) {
			c.Next()
			return
		}

		req := c.Request
		if !secure && req.TLS == nil {
			req = csrf.PlaintextHTTPRequest(req)
		}

		passed := false
		protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			passed = true
			c.Set(csrfContextKey, csrf.Token(r))
			c.Request = r
		})).ServeHTTP(c.Writer, req)

		if !passed {
			c.Abort()
			return
		}
		c.Next()
	}
}

func csrfErrorHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusForbidden)
	_, _ = w.Write([]byte(`{"success":false,"message":"CSRF token invalid or missing"}`))
}

func hasCookie(r *http.Request, name string) bool {
	_, err := r.Cookie(name)
	return err == nil
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	}
	return false
}

// GetCSRFToken returns the token issued for this request, or "" when the
// CSRF middleware did not run.
func GetCSRFToken(c *gin.Context) string {
	if token, exists := c.Get(csrfContextKey); exists {
		if t, ok := token.(string); ok {
			return t
		}
	}
	return ""
}

// CSRFToken answers GET /auth/csrf with the token to echo in CSRFTokenHeader.
func CSRFToken(c *gin.Context) {
	response.JSON(c, http.StatusOK, gin.H{"csrfToken": GetCSRFToken(c), "header": CSRFTokenHeader})
}
