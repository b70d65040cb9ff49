package dto

import "github.com/BruksfildServices01/clinic-booking/internal/models"

type AppointmentDTO struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Date  string `json:"date"`
	Time  string `json:"time"`
	Notes string `json:"notes"`
}

func FromAppointment(ap models.Appointment) AppointmentDTO {
	return AppointmentDTO{
		ID:    ap.ID,
		Name:  ap.Name,
		Date:  ap.Date,
		Time:  ap.Time,
		Notes: ap.NotesText(),
	}
}
