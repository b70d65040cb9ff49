package repository

import (
	"context"
	"sync"
	"time"

	domain "github.com/BruksfildServices01/clinic-booking/internal/domain/user"
	"github.com/BruksfildServices01/clinic-booking/internal/models"
)

// UserMemoryRepository enforces email uniqueness the same way the
// postgres unique index does.
type UserMemoryRepository struct {
	mu      sync.Mutex
	nextID  uint
	byEmail map[string]models.User
}

func NewUserMemoryRepository() *UserMemoryRepository {
	return &UserMemoryRepository{
		nextID:  1,
		byEmail: map[string]models.User{},
	}
}

func (r *UserMemoryRepository) FindByEmail(
	_ context.Context,
	email string,
) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (r *UserMemoryRepository) Save(
	_ context.Context,
	u *models.User,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()

	if u.ID == 0 {
		if _, taken := r.byEmail[u.Email]; taken {
			return domain.ErrDuplicate
		}
		u.ID = r.nextID
		u.CreatedAt = now
		r.nextID++
	}
	u.UpdatedAt = now

	r.byEmail[u.Email] = *u
	return nil
}

var _ domain.Repository = (*UserMemoryRepository)(nil)
