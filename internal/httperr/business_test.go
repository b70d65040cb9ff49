package httperr

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsBusiness(t *testing.T) {
	err := fmt.Errorf("register: %w", ErrBusiness(CodeEmailAlreadyExists))

	assert.True(t, IsBusiness(err, CodeEmailAlreadyExists))
	assert.False(t, IsBusiness(err, CodeInvalidCredentials))
	assert.False(t, IsBusiness(fmt.Errorf("plain"), CodeEmailAlreadyExists))
	assert.Equal(t, CodeEmailAlreadyExists, ErrBusiness(CodeEmailAlreadyExists).Error())
}

func TestCode(t *testing.T) {
	assert.Equal(t, CodeForbidden, Code(ErrBusiness(CodeForbidden)))
	assert.Equal(t, CodeUserNotFound, Code(fmt.Errorf("load: %w", ErrBusiness(CodeUserNotFound))))
	assert.Equal(t, CodeInternal, Code(fmt.Errorf("timeout")))
}

func TestIsUniqueViolation(t *testing.T) {
	dup := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	other := &pgconn.PgError{Code: "23503"}

	assert.True(t, IsUniqueViolation(dup))
	assert.False(t, IsUniqueViolation(other))
	assert.False(t, IsUniqueViolation(nil))
}
