package handlers

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/chirper-app/backend/internal/apperrors"
	"github.com/chirper-app/backend/internal/models"
)

// currentClaims returns the JWT claims placed in the context by the auth
// middleware, or nil on unauthenticated routes.
func currentClaims(c echo.Context) *models.JwtCustomClaims {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok {
		return nil
	}
	return claims
}

// currentUserID returns the authenticated user's id, or 0 when anonymous.
func currentUserID(c echo.Context) uint {
	if claims := currentClaims(c); claims != nil {
		return claims.UserID
	}
	return 0
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, apperrors.Validation("invalid_id", "Invalid "+name+" parameter")
	}
	return uint(id), nil
}
