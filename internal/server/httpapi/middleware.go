package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kongenga/kongenga/internal/common"
	"github.com/kongenga/kongenga/internal/logging"
	"github.com/kongenga/kongenga/internal/server/auth"
)

const (
	ctxUserID    = "user_id"
	ctxRole      = "role"
	ctxRequestID = "request_id"
)

// RequestLogger tags each request with an X-Request-Id and logs it once it
// completes, at a level chosen by status class.
func RequestLogger(l logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		reqID := c.GetHeader(common.RequestIDHeaderName)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Header(common.RequestIDHeaderName, reqID)
		c.Set(ctxRequestID, reqID)

		c.Next()

		status := c.Writer.Status()
		args := []any{
			"request_id", reqID,
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"ip", c.ClientIP(),
		}
		if uid := c.GetString(ctxUserID); uid != "" {
			args = append(args, "user_id", uid)
		}
		if len(c.Errors) > 0 {
			args = append(args, "errors", c.Errors.String())
		}

		ctx := c.Request.Context()
		switch {
		case status >= 500:
			l.Error(ctx, "request", args...)
		case status >= 400:
			l.Warn(ctx, "request", args...)
		default:
			l.Info(ctx, "request", args...)
		}
	}
}

// JWTAuth requires a valid bearer token and stores its user id and role in
// the gin context.
func JWTAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(common.AuthorizationHeaderName)
		if !strings.HasPrefix(header, common.BearerPrefix) {
			abortWithDetail(c, http.StatusUnauthorized, "Not authenticated")
			return
		}

		raw := strings.TrimSpace(strings.TrimPrefix(header, common.BearerPrefix))
		claims, err := auth.ParseToken(raw, secret)
		if err != nil {
			abortWithDetail(c, http.StatusUnauthorized, "Could not validate credentials")
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxRole, claims.Role)
		c.Next()
	}
}

// RequireRole lets through only tokens whose role is one of allowed. It
// must run after JWTAuth.
func RequireRole(allowed ...string) gin.HandlerFunc {
	allow := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		allow[a] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := allow[c.GetString(ctxRole)]; !ok {
			abortWithDetail(c, http.StatusForbidden, "Not enough permissions")
			return
		}
		c.Next()
	}
}
