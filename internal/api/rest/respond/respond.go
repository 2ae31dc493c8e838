// Package respond writes the JSON bodies shared by every REST handler.
package respond

import (
	"errors"
	"net/http"

	"github.com/hubverse/hub-services/internal/pkg/apperr"

	"github.com/gin-gonic/gin"
)

// InternalErrorMessage is returned for every error without a known category.
const InternalErrorMessage = "internal server error"

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Message string `json:"message"`
}

// InfoResponse carries a plain message on success.
type InfoResponse struct {
	Message string `json:"message"`
}

// StatusFor maps an error category to its HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperr.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperr.ErrForbidden):
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

// Error aborts the request with the status for err. Uncategorised errors are
// attached to the context for the access log and answered with a generic message.
func Error(c *gin.Context, err error) {
	status := StatusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		message = InternalErrorMessage
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Message: message})
}

// Message aborts the request with status and message.
func Message(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Message: message})
}
