package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func signedToken(t *testing.T, role, sub string, secret []byte) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": role,
		"sub":  sub,
	})
	raw, err := token.SignedString(secret)
	require.NoError(t, err)
	return raw
}

func invokeAuth(t *testing.T, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/orders/export", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	err := BearerAuth(testSecret)(next)(c)
	require.NoError(t, err)
	return rec, c
}

func TestBearerAuth_MissingHeader(t *testing.T) {
	rec, _ := invokeAuth(t, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBearerAuth_MalformedHeader(t *testing.T) {
	rec, _ := invokeAuth(t, "Token abc")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBearerAuth_InvalidToken(t *testing.T) {
	rec, _ := invokeAuth(t, "Bearer not.a.token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBearerAuth_WrongSignature(t *testing.T) {
	raw := signedToken(t, "buyer", "buyer1", []byte("other-secret"))
	rec, _ := invokeAuth(t, "Bearer "+raw)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBearerAuth_DisallowedRole(t *testing.T) {
	raw := signedToken(t, "viewer", "viewer1", testSecret)
	rec, _ := invokeAuth(t, "Bearer "+raw)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestBearerAuth_AllowedRoles(t *testing.T) {
	for _, role := range []string{"admin", "manager", "buyer"} {
		t.Run(role, func(t *testing.T) {
			raw := signedToken(t, role, "user1", testSecret)
			rec, c := invokeAuth(t, "Bearer "+raw)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, role, c.Get(ContextKeyRole))
			assert.Equal(t, "user1", c.Get(ContextKeyUser))
		})
	}
}
