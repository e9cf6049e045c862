package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/chirper-app/backend/internal/apperrors"
	"github.com/chirper-app/backend/internal/models"
	"github.com/chirper-app/backend/internal/validators"
)

// newContext builds an echo context the way the router would, with the
// request validator installed and JWT claims already resolved. A nil
// user means an anonymous request.
func newContext(t *testing.T, method, path, body string, user *models.User) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = validators.NewValidator()

	request := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		request.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(request, rec)
	if user != nil {
		c.Set("user", &models.JwtCustomClaims{UserID: user.ID, Username: user.Username})
	}
	return c, rec
}

// requireAppError asserts that err is a domain error with the given code.
func requireAppError(t *testing.T, err error, code string) *apperrors.Error {
	t.Helper()

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, code, appErr.Code)
	return appErr
}
