// Package apperrors defines the error taxonomy for the API. Every
// user-visible failure carries a stable machine-readable code plus a
// human detail string; store errors never leak to clients.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

type Kind int

const (
	KindValidation Kind = iota
	KindAlreadyExists
	KindNotFound
	KindPermission
	KindAuthentication
)

// Error is a domain error with a stable code. Handlers return these and
// the HTTP error handler renders them; nothing else reaches the client.
type Error struct {
	Kind   Kind
	Code   string
	Detail string
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Detail
}

// Status maps the error kind to its HTTP status.
func (e *Error) Status() int {
	switch e.Kind {
	case KindAlreadyExists, KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindPermission:
		return http.StatusForbidden
	case KindAuthentication:
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

func Validation(code, detail string) *Error {
	return &Error{Kind: KindValidation, Code: code, Detail: detail}
}

func AlreadyExists(code, detail string) *Error {
	return &Error{Kind: KindAlreadyExists, Code: code, Detail: detail}
}

func NotFound(code, detail string) *Error {
	return &Error{Kind: KindNotFound, Code: code, Detail: detail}
}

func Permission(code, detail string) *Error {
	return &Error{Kind: KindPermission, Code: code, Detail: detail}
}

func Authentication(code, detail string) *Error {
	return &Error{Kind: KindAuthentication, Code: code, Detail: detail}
}

// HTTPErrorHandler renders every error as {"error": [code], "detail": msg}.
// Unknown errors collapse to a generic 500 so internals stay hidden.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		_ = c.JSON(appErr.Status(), echo.Map{
			"error":  []string{appErr.Code},
			"detail": appErr.Detail,
		})
		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		_ = c.JSON(httpErr.Code, echo.Map{
			"error":  []string{codeForStatus(httpErr.Code)},
			"detail": fmt.Sprint(httpErr.Message),
		})
		return
	}

	c.Logger().Error(err)
	_ = c.JSON(http.StatusInternalServerError, echo.Map{
		"error":  []string{"internal_error"},
		"detail": "Something went wrong",
	})
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "invalid_request"
	case http.StatusUnauthorized:
		return "authentication_failed"
	case http.StatusForbidden:
		return "permission_denied"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusMethodNotAllowed:
		return "method_not_allowed"
	}
	return "error"
}
