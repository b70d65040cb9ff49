package appointment

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/clinic-booking/internal/audit"
	domain "github.com/BruksfildServices01/clinic-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-booking/internal/logger"
	"github.com/BruksfildServices01/clinic-booking/internal/models"
)

type CreateAppointmentInput struct {
	ActorEmail string

	Name  string
	Date  string
	Time  string
	Notes *string
}

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	log   zerolog.Logger
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
		log:   logger.With("appointments"),
	}
}

// Execute stores the submission as given. Date and time are not checked
// against anything.
func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	ap := domain.NewAppointment(domain.Booking{
		Name:  in.Name,
		Date:  in.Date,
		Time:  in.Time,
		Notes: in.Notes,
	})

	uc.log.Debug().
		Str("name", ap.Name).
		Str("date", ap.Date).
		Str("time", ap.Time).
		Msg("creating appointment")

	if err := uc.repo.Create(ctx, ap); err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	dispatch(uc.audit, audit.Event{
		UserEmail: in.ActorEmail,
		Action:    "appointment_created",
		Entity:    "appointment",
		EntityID:  &ap.ID,
		Metadata: map[string]any{
			"name": ap.Name,
			"date": ap.Date,
			"time": ap.Time,
		},
	})

	return ap, nil
}

func dispatch(d *audit.Dispatcher, ev audit.Event) {
	if d == nil {
		return
	}
	d.Dispatch(ev)
}
