package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kongenga/kongenga/internal/common"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// detail returns the text wrapped after sentinel ("sentinel: text"), or def.
func detail(err, sentinel error, def string) string {
	if d, ok := strings.CutPrefix(err.Error(), sentinel.Error()+": "); ok && d != "" {
		return d
	}
	return def
}

// notFound rewrites a bare common.ErrorNotFound so its detail reads msg.
func notFound(err error, msg string) error {
	if errors.Is(err, common.ErrorNotFound) {
		return fmt.Errorf("%w: %s", common.ErrorNotFound, msg)
	}
	return err
}

func abortWithDetail(c *gin.Context, status int, msg string) {
	if status == http.StatusUnauthorized {
		c.Header("WWW-Authenticate", "Bearer")
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Detail: msg})
}

// writeError maps service errors to status codes. failed is the detail of
// unexpected errors, whose text is logged but never returned.
func (s *Server) writeError(c *gin.Context, err error, failed string) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		abortWithDetail(c, http.StatusBadRequest, detail(err, common.ErrorValidation, "Invalid request"))
	case errors.Is(err, common.ErrorUnauthorized):
		abortWithDetail(c, http.StatusUnauthorized, "Incorrect email or password")
	case errors.Is(err, common.ErrorForbidden):
		abortWithDetail(c, http.StatusForbidden, detail(err, common.ErrorForbidden, "Not enough permissions"))
	case errors.Is(err, common.ErrorNotFound):
		abortWithDetail(c, http.StatusNotFound, detail(err, common.ErrorNotFound, "Not found"))
	case errors.Is(err, common.ErrorAlreadyExists):
		abortWithDetail(c, http.StatusConflict, detail(err, common.ErrorAlreadyExists, "Already exists"))
	default:
		_ = c.Error(err)
		s.logger.Error(c.Request.Context(), failed, "error", err)
		abortWithDetail(c, http.StatusInternalServerError, failed)
	}
}
