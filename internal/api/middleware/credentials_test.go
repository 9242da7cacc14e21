package middleware

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gradepeek/svue-api/internal/core/domain"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

// stubSealer "seals" by prefixing the username so tests can craft tokens.
type stubSealer struct {
	tokens map[string]*domain.AuthToken
	err    error
}

func (s *stubSealer) Seal(t *domain.AuthToken) (string, error) {
	if s.tokens == nil {
		s.tokens = map[string]*domain.AuthToken{}
	}
	key := "sealed-" + t.Username
	s.tokens[key] = t.Clone()
	return key, nil
}

func (s *stubSealer) Open(sealed string) (*domain.AuthToken, error) {
	if s.err != nil {
		return nil, s.err
	}
	t, ok := s.tokens[sealed]
	if !ok {
		return nil, domain.ErrTokenDecrypt
	}
	return t.Clone(), nil
}

type stubDistricts struct {
	hosts map[string]string
}

func (d *stubDistricts) Resolve(_ context.Context, ref string) (string, error) {
	if h, ok := d.hosts[ref]; ok {
		return h, nil
	}
	return "", domain.ErrDistrictNotFound
}

func (d *stubDistricts) Get(context.Context, string) (*domain.District, error) {
	return nil, domain.ErrDistrictNotFound
}

func (d *stubDistricts) List(context.Context) ([]*domain.District, error) { return nil, nil }

func (d *stubDistricts) Register(context.Context, domain.District) (*domain.District, error) {
	return nil, errors.New("not implemented")
}

func (d *stubDistricts) Remove(context.Context, string) error { return errors.New("not implemented") }

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var fixedNow = time.UnixMilli(1_700_000_000_000)

func newCredentialsConfig(sealer *stubSealer) CredentialsConfig {
	return CredentialsConfig{
		Sealer:          sealer,
		Districts:       &stubDistricts{hosts: map[string]string{"fcps": "va-fcps-psv.edupoint.com"}},
		DefaultDistrict: "md-mcps-psv.edupoint.com",
		TokenTTL:        24 * time.Hour,
		Now:             func() time.Time { return fixedNow },
	}
}

func basic(user, pass string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+pass))
}

// runCredentials executes the middleware and returns the token handed to the
// next handler, if any.
func runCredentials(t *testing.T, cfg CredentialsConfig, headers map[string]string) (*domain.AuthToken, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/grades", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var got *domain.AuthToken
	err := Credentials(cfg)(func(c echo.Context) error {
		tok, ok := TokenFromContext(c)
		if !ok {
			t.Fatal("token missing from context")
		}
		got = tok
		return c.NoContent(http.StatusOK)
	})(c)
	return got, err
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestCredentials_Basic(t *testing.T) {
	tok, err := runCredentials(t, newCredentialsConfig(&stubSealer{}), map[string]string{
		echo.HeaderAuthorization: basic("jdoe", "pa:ss"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.Username != "jdoe" || tok.Password.Value() != "pa:ss" {
		t.Fatalf("unexpected credentials %q/%q", tok.Username, tok.Password.Value())
	}
	if tok.Cookie != "" {
		t.Fatalf("fresh token must have no cookie, got %q", tok.Cookie)
	}
	if tok.DistrictURL != "md-mcps-psv.edupoint.com" {
		t.Fatalf("expected default district, got %q", tok.DistrictURL)
	}
	if want := fixedNow.Add(24 * time.Hour).UnixMilli(); tok.Expiry != want {
		t.Fatalf("expiry = %d, want %d", tok.Expiry, want)
	}
}

func TestCredentials_BasicWithDistrict(t *testing.T) {
	cfg := newCredentialsConfig(&stubSealer{})

	tok, err := runCredentials(t, cfg, map[string]string{
		echo.HeaderAuthorization: basic("jdoe", "secret"),
		HeaderDistrict:           "fcps",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.DistrictURL != "va-fcps-psv.edupoint.com" {
		t.Fatalf("district = %q", tok.DistrictURL)
	}

	_, err = runCredentials(t, cfg, map[string]string{
		echo.HeaderAuthorization: basic("jdoe", "secret"),
		HeaderDistrict:           "unknown",
	})
	if !errors.Is(err, domain.ErrDistrictNotFound) {
		t.Fatalf("expected ErrDistrictNotFound, got %v", err)
	}
}

func TestCredentials_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		wantErr error
	}{
		{"missing", "", domain.ErrEmptyCredentials},
		{"empty password", basic("jdoe", ""), domain.ErrEmptyCredentials},
		{"empty username", basic("", "secret"), domain.ErrEmptyCredentials},
		{"no colon", "Basic " + base64.StdEncoding.EncodeToString([]byte("jdoe")), domain.ErrInvalidCredentials},
		{"bad base64", "Basic !!!", domain.ErrInvalidCredentials},
		{"unknown scheme", "Digest abc", domain.ErrInvalidCredentials},
		{"empty bearer", "Bearer ", domain.ErrEmptyCredentials},
		{"bearer bad base64", "Bearer !!!", domain.ErrTokenDecrypt},
		{"bearer unknown", "Bearer " + EncodeToken("nope"), domain.ErrTokenDecrypt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{}
			if tt.header != "" {
				headers[echo.HeaderAuthorization] = tt.header
			}
			_, err := runCredentials(t, newCredentialsConfig(&stubSealer{}), headers)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCredentials_Bearer(t *testing.T) {
	sealer := &stubSealer{}
	issued := domain.NewAuthToken("jdoe", "secret", "va-fcps-psv.edupoint.com", time.Hour, fixedNow)
	issued.Cookie = "ASP.NET_SessionId=abc; "
	sealed, _ := sealer.Seal(issued)

	tok, err := runCredentials(t, newCredentialsConfig(sealer), map[string]string{
		echo.HeaderAuthorization: "bearer " + EncodeToken(sealed),
		HeaderDistrict:           "fcps-ignored-for-bearer",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tok.Equal(issued) {
		t.Fatalf("token = %+v, want %+v", tok, issued)
	}
}

func TestCredentials_BearerExpired(t *testing.T) {
	sealer := &stubSealer{}
	issued := domain.NewAuthToken("jdoe", "secret", "d.example.com", time.Hour, fixedNow.Add(-2*time.Hour))
	sealed, _ := sealer.Seal(issued)

	_, err := runCredentials(t, newCredentialsConfig(sealer), map[string]string{
		echo.HeaderAuthorization: "Bearer " + EncodeToken(sealed),
	})
	if !errors.Is(err, domain.ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestCredentials_BearerOpenError(t *testing.T) {
	sealer := &stubSealer{err: domain.ErrInvalidCredentials}

	_, err := runCredentials(t, newCredentialsConfig(sealer), map[string]string{
		echo.HeaderAuthorization: "Bearer " + EncodeToken("anything"),
	})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestTokenFromContext_Missing(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if _, ok := TokenFromContext(c); ok {
		t.Fatal("expected no token")
	}
}
