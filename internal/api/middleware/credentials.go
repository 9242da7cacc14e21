package middleware

import (
	"encoding/base64"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gradepeek/svue-api/internal/api/metrics"
	"github.com/gradepeek/svue-api/internal/core/domain"
	"github.com/gradepeek/svue-api/internal/core/ports"
)

const (
	tokenKey = "svue_token"

	// HeaderDistrict selects the district for Basic credentials, by ID or
	// registered host.
	HeaderDistrict = "X-District"
)

// CredentialsConfig configures the Credentials middleware.
type CredentialsConfig struct {
	Sealer          ports.TokenSealer
	Districts       ports.DistrictService
	DefaultDistrict string
	TokenTTL        time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
}

// Credentials turns the Authorization header into a domain.AuthToken:
//
//	Basic base64(user:pass)  fresh token, district from X-District or the default
//	Bearer <sealed token>    previously issued token, rejected once expired
//
// The token is stored on the context for TokenFromContext.
func Credentials(cfg CredentialsConfig) echo.MiddlewareFunc {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := strings.TrimSpace(c.Request().Header.Get(echo.HeaderAuthorization))
			if header == "" {
				metrics.TokenRejectionsTotal.WithLabelValues("empty").Inc()
				return domain.ErrEmptyCredentials
			}

			scheme, payload, _ := strings.Cut(header, " ")
			payload = strings.TrimSpace(payload)

			var (
				token *domain.AuthToken
				err   error
			)
			switch strings.ToLower(scheme) {
			case "basic":
				token, err = fromBasic(c, cfg, payload, now())
			case "bearer":
				token, err = fromBearer(cfg, payload, now())
			default:
				metrics.TokenRejectionsTotal.WithLabelValues("malformed").Inc()
				return domain.ErrInvalidCredentials
			}
			if err != nil {
				return err
			}

			c.Set(tokenKey, token)
			return next(c)
		}
	}
}

func fromBasic(c echo.Context, cfg CredentialsConfig, payload string, now time.Time) (*domain.AuthToken, error) {
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		metrics.TokenRejectionsTotal.WithLabelValues("malformed").Inc()
		return nil, domain.ErrInvalidCredentials
	}
	username, password, ok := strings.Cut(string(raw), ":")
	if !ok {
		metrics.TokenRejectionsTotal.WithLabelValues("malformed").Inc()
		return nil, domain.ErrInvalidCredentials
	}
	if username == "" || password == "" {
		metrics.TokenRejectionsTotal.WithLabelValues("empty").Inc()
		return nil, domain.ErrEmptyCredentials
	}

	district := cfg.DefaultDistrict
	if ref := strings.TrimSpace(c.Request().Header.Get(HeaderDistrict)); ref != "" {
		district, err = cfg.Districts.Resolve(c.Request().Context(), ref)
		if err != nil {
			return nil, err
		}
	}

	return domain.NewAuthToken(username, password, district, cfg.TokenTTL, now), nil
}

func fromBearer(cfg CredentialsConfig, payload string, now time.Time) (*domain.AuthToken, error) {
	if payload == "" {
		metrics.TokenRejectionsTotal.WithLabelValues("empty").Inc()
		return nil, domain.ErrEmptyCredentials
	}
	sealed, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		metrics.TokenRejectionsTotal.WithLabelValues("decrypt").Inc()
		return nil, domain.ErrTokenDecrypt
	}

	token, err := cfg.Sealer.Open(string(sealed))
	if err != nil {
		metrics.TokenRejectionsTotal.WithLabelValues("decrypt").Inc()
		return nil, err
	}
	if token.Expired(now) {
		metrics.TokenRejectionsTotal.WithLabelValues("expired").Inc()
		return nil, domain.ErrExpiredToken
	}
	if token.IsEmpty() {
		metrics.TokenRejectionsTotal.WithLabelValues("empty").Inc()
		return nil, domain.ErrEmptyCredentials
	}
	return token, nil
}

// TokenFromContext returns the token stored by Credentials.
func TokenFromContext(c echo.Context) (*domain.AuthToken, bool) {
	token, ok := c.Get(tokenKey).(*domain.AuthToken)
	return token, ok && token != nil
}

// EncodeToken renders a sealed token for the Set-Token header and Bearer
// credentials.
func EncodeToken(sealed string) string {
	return base64.StdEncoding.EncodeToString([]byte(sealed))
}
