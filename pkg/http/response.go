package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// APIResponse is the envelope every JSON endpoint returns.
type APIResponse struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     *APIError   `json:"error,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// APIError carries a machine-readable code and a human message.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// OK writes a 200 response with data.
func OK(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC(),
	})
}

// Fail writes an error response with the given HTTP status.
func Fail(c echo.Context, status int, code, message string) error {
	return c.JSON(status, APIResponse{
		Success:   false,
		Error:     &APIError{Code: code, Message: message},
		Timestamp: time.Now().UTC(),
	})
}

// FailFromError maps an AppError (or generic error) to a JSON response.
func FailFromError(c echo.Context, err error) error {
	if app, ok := err.(*AppError); ok {
		return Fail(c, app.Status, app.Code, app.Message)
	}
	return Fail(c, http.StatusInternalServerError, CodeInternal, "internal server error")
}
