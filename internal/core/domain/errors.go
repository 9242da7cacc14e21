package domain

import (
	"errors"
	"strings"
)

var (
	ErrEmptyCredentials   = errors.New("username or password is empty")
	ErrInvalidCredentials = errors.New("invalid credentials provided")
	ErrExpiredToken       = errors.New("this key has expired")
	ErrTokenDecrypt       = errors.New("token could not be decrypted")
	ErrMissingKey         = errors.New("no encryption key configured")

	ErrMaintenance      = errors.New("StudentVue is currently undergoing maintenance")
	ErrUpstreamNetwork  = errors.New("unable to reach StudentVue")
	ErrUpstreamStatus   = errors.New("unexpected StudentVue response status")
	ErrUpstreamParse    = errors.New("cannot parse response")
	ErrUnknownUpstream  = errors.New("unknown error (code: x_dll)")
	ErrVersionKey       = errors.New("unable to create access key")
	ErrGradebookField   = errors.New("unable to load gradebook")
	ErrDistrictNotFound = errors.New("district not found")
	ErrDistrictExists   = errors.New("district already exists")
	ErrInvalidDistrict  = errors.New("invalid district")
	ErrForbidden        = errors.New("access forbidden")
)

// UpstreamError is an RT_ERROR message returned by StudentVue itself
// (bad password, locked account, unknown method and so on).
type UpstreamError struct {
	Message string
}

func (e *UpstreamError) Error() string {
	return e.Message
}

// NewUpstreamError classifies an RT_ERROR message. Messages that leak server
// internals (DLL names) collapse to ErrUnknownUpstream.
func NewUpstreamError(msg string) error {
	if strings.Contains(msg, ".dll") {
		return ErrUnknownUpstream
	}
	return &UpstreamError{Message: msg}
}

// IsUpstreamFailure reports whether err originated from the district rather
// than from the caller.
func IsUpstreamFailure(err error) bool {
	var ue *UpstreamError
	return errors.Is(err, ErrMaintenance) ||
		errors.Is(err, ErrUpstreamNetwork) ||
		errors.Is(err, ErrUpstreamStatus) ||
		errors.Is(err, ErrUpstreamParse) ||
		errors.Is(err, ErrUnknownUpstream) ||
		errors.As(err, &ue)
}
