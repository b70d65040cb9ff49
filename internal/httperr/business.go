package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	CodeInvalidCredentials  = "invalid_credentials"
	CodeForbidden           = "forbidden"
	CodeEmailAlreadyExists  = "email_already_exists"
	CodeUserNotFound        = "user_not_found"
	CodeInvalidRegistration = "invalid_registration"
	CodeInvalidRequest      = "invalid_request"
	CodeUnauthenticated     = "unauthenticated"
	CodeRateLimited         = "rate_limited"
	CodeNotFound            = "not_found"
	CodeInternal            = "internal_error"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// Code returns the business code carried by err, or CodeInternal.
func Code(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return CodeInternal
}

// IsUniqueViolation reports a postgres unique constraint failure (23505).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
