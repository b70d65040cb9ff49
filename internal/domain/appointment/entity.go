package appointment

import (
	"strings"

	"github.com/BruksfildServices01/clinic-booking/internal/models"
)

// Booking is what a patient (or API client) submits.
type Booking struct {
	Name  string
	Date  string
	Time  string
	Notes *string
}

func NewAppointment(b Booking) *models.Appointment {
	ap := &models.Appointment{
		Name: strings.TrimSpace(b.Name),
		Date: strings.TrimSpace(b.Date),
		Time: strings.TrimSpace(b.Time),
	}
	if b.Notes != nil {
		SetNotes(ap, *b.Notes)
	}
	return ap
}

func SetNotes(ap *models.Appointment, text string) {
	notes := text
	ap.Notes = &notes
}
