package appointment

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/clinic-booking/internal/audit"
	domain "github.com/BruksfildServices01/clinic-booking/internal/domain/appointment"
)

type DeleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	actorEmail string,
	id uint,
) error {

	if err := uc.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}

	dispatch(uc.audit, audit.Event{
		UserEmail: actorEmail,
		Action:    "appointment_deleted",
		Entity:    "appointment",
		EntityID:  &id,
	})

	return nil
}
