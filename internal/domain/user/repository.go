package user

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/clinic-booking/internal/httperr"
	"github.com/BruksfildServices01/clinic-booking/internal/models"
)

var (
	ErrNotFound  = httperr.ErrBusiness(httperr.CodeUserNotFound)
	ErrDuplicate = httperr.ErrBusiness(httperr.CodeEmailAlreadyExists)
)

// Repository is the credential store. FindByEmail returns ErrNotFound
// when no user matches; Save returns ErrDuplicate when the email is
// already taken.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Save(ctx context.Context, u *models.User) error
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
