package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

func signAdmin(t *testing.T, secret string, method jwt.SigningMethod, claims AdminClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func validClaims() AdminClaims {
	return AdminClaims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "ops",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func runAdmin(t *testing.T, header string) (*httptest.ResponseRecorder, bool, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/admin/districts", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	err := AdminAuth("secret")(func(c echo.Context) error {
		called = true
		if c.Get("role") != RoleAdmin || c.Get("subject") != "ops" {
			t.Fatalf("claims not stored: role=%v subject=%v", c.Get("role"), c.Get("subject"))
		}
		return c.NoContent(http.StatusOK)
	})(c)
	return rec, called, err
}

func TestAdminAuth_ValidToken(t *testing.T) {
	rec, called, err := runAdmin(t, "Bearer "+signAdmin(t, "secret", jwt.SigningMethodHS256, validClaims()))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected next to run, code=%d", rec.Code)
	}
}

func TestAdminAuth_Rejects(t *testing.T) {
	expired := validClaims()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	noExpiry := validClaims()
	noExpiry.ExpiresAt = nil

	cases := map[string]string{
		"missing header": "",
		"wrong scheme":   "Basic abc",
		"wrong secret":   "Bearer " + signAdmin(t, "other", jwt.SigningMethodHS256, validClaims()),
		"wrong alg":      "Bearer " + signAdmin(t, "secret", jwt.SigningMethodHS512, validClaims()),
		"expired":        "Bearer " + signAdmin(t, "secret", jwt.SigningMethodHS256, expired),
		"no expiry":      "Bearer " + signAdmin(t, "secret", jwt.SigningMethodHS256, noExpiry),
		"garbage":        "Bearer not.a.jwt",
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			_, called, err := runAdmin(t, header)
			if called {
				t.Fatal("next must not run")
			}
			he, ok := err.(*echo.HTTPError)
			if !ok || he.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401 HTTPError, got %v", err)
			}
		})
	}
}
