package api

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gradepeek/svue-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that maps domain and
// upstream errors to status codes and renders {"error": "<message>"}.
// Unexpected errors are logged and reported as a generic 500.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	var ue *domain.UpstreamError
	if errors.As(err, &ue) {
		return http.StatusBadRequest, ue.Message
	}

	switch {
	// Caller credentials.
	case errors.Is(err, domain.ErrEmptyCredentials):
		return http.StatusBadRequest, domain.ErrEmptyCredentials.Error()
	case errors.Is(err, domain.ErrTokenDecrypt):
		return http.StatusBadRequest, domain.ErrTokenDecrypt.Error()
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, domain.ErrInvalidCredentials.Error()
	case errors.Is(err, domain.ErrExpiredToken):
		return http.StatusUnauthorized, domain.ErrExpiredToken.Error()

	// District directory.
	case errors.Is(err, domain.ErrDistrictNotFound):
		return http.StatusNotFound, domain.ErrDistrictNotFound.Error()
	case errors.Is(err, domain.ErrDistrictExists):
		return http.StatusConflict, domain.ErrDistrictExists.Error()
	case errors.Is(err, domain.ErrInvalidDistrict):
		return http.StatusUnprocessableEntity, fromSentinel(err, domain.ErrInvalidDistrict)
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, domain.ErrForbidden.Error()

	// StudentVue.
	case errors.Is(err, domain.ErrMaintenance):
		return http.StatusServiceUnavailable, domain.ErrMaintenance.Error()
	case errors.Is(err, domain.ErrUpstreamParse):
		logUpstream(log, c, err)
		return http.StatusBadGateway, domain.ErrUpstreamParse.Error() + ": " +
			base64.StdEncoding.EncodeToString([]byte(err.Error()))
	case errors.Is(err, domain.ErrUpstreamNetwork),
		errors.Is(err, domain.ErrUpstreamStatus),
		errors.Is(err, domain.ErrGradebookField):
		logUpstream(log, c, err)
		return http.StatusBadGateway, rootMessage(err)
	case errors.Is(err, domain.ErrUnknownUpstream):
		return http.StatusInternalServerError, domain.ErrUnknownUpstream.Error()
	case errors.Is(err, domain.ErrVersionKey):
		logUpstream(log, c, err)
		return http.StatusInternalServerError, domain.ErrVersionKey.Error()
	case errors.Is(err, domain.ErrMissingKey):
		log.Error().Err(err).Msg("encryption key is not configured")
		return http.StatusInternalServerError, domain.ErrMissingKey.Error()
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

func logUpstream(log zerolog.Logger, c echo.Context, err error) {
	log.Warn().
		Err(err).
		Str("path", c.Path()).
		Msg("upstream failure")
}

// fromSentinel drops the operation prefixes wrapped around sentinel and
// keeps the sentinel text with its trailing detail.
func fromSentinel(err, sentinel error) string {
	msg := err.Error()
	if i := strings.Index(msg, sentinel.Error()); i >= 0 {
		return msg[i:]
	}
	return sentinel.Error()
}

// rootMessage returns the sentinel text without wrapped upstream detail.
func rootMessage(err error) string {
	for _, sentinel := range []error{
		domain.ErrUpstreamNetwork,
		domain.ErrUpstreamStatus,
		domain.ErrGradebookField,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}
