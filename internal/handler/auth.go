package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Context keys set by the auth middleware
const (
	ContextKeyRole = "auth.role"
	ContextKeyUser = "auth.user"
)

// Roles permitted to trigger exports
var exportRoles = map[string]bool{
	"admin":   true,
	"manager": true,
	"buyer":   true,
}

// BearerAuth verifies the Authorization bearer token and the role claim.
// Missing or invalid credentials fail with 401, a disallowed role with
// 403, both before any data access happens downstream.
func BearerAuth(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				return responseError(c, http.StatusUnauthorized, "Missing credentials", nil)
			}
			raw := strings.TrimPrefix(header, "Bearer ")

			token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
				}
				return secret, nil
			})
			if err != nil || !token.Valid {
				return responseError(c, http.StatusUnauthorized, "Invalid credentials", err)
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return responseError(c, http.StatusUnauthorized, "Invalid credentials", nil)
			}

			role, _ := claims["role"].(string)
			if !exportRoles[role] {
				return responseError(c, http.StatusForbidden, "Role not permitted", nil)
			}

			user, _ := claims["sub"].(string)
			c.Set(ContextKeyRole, role)
			c.Set(ContextKeyUser, user)

			return next(c)
		}
	}
}
