package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gradepeek/svue-api/internal/api/metrics"
	"github.com/gradepeek/svue-api/internal/api/middleware"
	"github.com/gradepeek/svue-api/internal/core/domain"
	"github.com/gradepeek/svue-api/internal/core/ports"
)

// HeaderSetToken carries a re-sealed bearer token after the district issued
// a new session.
const HeaderSetToken = "Set-Token"

// ctxToken returns the caller's token plus a snapshot to diff against once
// the upstream call returns. A missing token means the Credentials
// middleware did not run.
func ctxToken(c echo.Context) (token, before *domain.AuthToken, err error) {
	token, ok := middleware.TokenFromContext(c)
	if !ok {
		return nil, nil, domain.ErrEmptyCredentials
	}
	return token, token.Clone(), nil
}

// refreshToken adds Set-Token when the call changed the token. Sealing
// failures are logged; the response itself is still valid.
func refreshToken(c echo.Context, sealer ports.TokenSealer, log zerolog.Logger, token, before *domain.AuthToken) {
	if token.Equal(before) {
		return
	}
	sealed, err := sealer.Seal(token)
	if err != nil {
		log.Warn().Err(err).Msg("could not reseal refreshed token")
		return
	}
	c.Response().Header().Set(HeaderSetToken, middleware.EncodeToken(sealed))
	metrics.TokensIssuedTotal.Inc()
}
