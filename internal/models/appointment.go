package models

import "time"

// Appointment records what a caller submitted. Date and Time are kept
// as entered; nothing validates or compares them.
type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name string `gorm:"size:100" json:"name"`
	Date string `gorm:"size:20" json:"date"`
	Time string `gorm:"size:20" json:"time"`

	Notes *string `gorm:"size:255" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a Appointment) NotesText() string {
	if a.Notes == nil {
		return ""
	}
	return *a.Notes
}
