package appointment

import (
	"context"

	"github.com/BruksfildServices01/clinic-booking/internal/models"
)

// Repository stores appointments. UpdateNotes and Delete on an unknown
// id succeed without doing anything.
type Repository interface {
	Create(
		ctx context.Context,
		ap *models.Appointment,
	) error

	List(
		ctx context.Context,
	) ([]models.Appointment, error)

	UpdateNotes(
		ctx context.Context,
		id uint,
		notes string,
	) error

	Delete(
		ctx context.Context,
		id uint,
	) error
}
