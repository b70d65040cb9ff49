package appointment

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/clinic-booking/internal/audit"
	domain "github.com/BruksfildServices01/clinic-booking/internal/domain/appointment"
)

type UpdateNotes struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateNotes(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateNotes {
	return &UpdateNotes{
		repo:  repo,
		audit: audit,
	}
}

// Execute replaces the notes of appointment id. An unknown id is not an
// error.
func (uc *UpdateNotes) Execute(
	ctx context.Context,
	actorEmail string,
	id uint,
	notes string,
) error {

	if err := uc.repo.UpdateNotes(ctx, id, notes); err != nil {
		return fmt.Errorf("update notes: %w", err)
	}

	dispatch(uc.audit, audit.Event{
		UserEmail: actorEmail,
		Action:    "appointment_notes_updated",
		Entity:    "appointment",
		EntityID:  &id,
		Metadata:  map[string]any{"notes": notes},
	})

	return nil
}
