// Package handlers implements the HTTP API endpoints.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/juristech/prazojus/pkg/errors"
)

// ErrorResponse is the standard error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// respondError maps application errors onto HTTP statuses.  Server-side
// codes are masked so internals never leak to API clients.
func respondError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	status := errors.HTTPStatusForCode(code)

	message := err.Error()
	if !errors.IsClientError(code) {
		message = "internal server error"
	}

	c.AbortWithStatusJSON(status, ErrorResponse{
		Code:    code.String(),
		Message: message,
	})
}

func badRequest(c *gin.Context, message string) {
	respondError(c, errors.New(errors.ErrCodeBadRequest, message))
}

// parseDate accepts ISO dates with or without a time component.
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, errors.Newf(errors.ErrCodeBadRequest, "invalid date %q, want YYYY-MM-DD", raw)
	}
	return t, nil
}

func ok(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}
