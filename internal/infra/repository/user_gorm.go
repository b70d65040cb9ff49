package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/clinic-booking/internal/domain/user"
	"github.com/BruksfildServices01/clinic-booking/internal/httperr"
	"github.com/BruksfildServices01/clinic-booking/internal/models"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) FindByEmail(
	ctx context.Context,
	email string,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&u).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return &u, nil
}

// Save inserts new users and updates existing ones. The unique index on
// email is what finally settles two concurrent registrations.
func (r *UserGormRepository) Save(
	ctx context.Context,
	u *models.User,
) error {

	var err error
	if u.ID == 0 {
		err = r.db.WithContext(ctx).Create(u).Error
	} else {
		err = r.db.WithContext(ctx).Save(u).Error
	}

	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || httperr.IsUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return err
	}

	return nil
}

var _ domain.Repository = (*UserGormRepository)(nil)
