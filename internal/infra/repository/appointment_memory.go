package repository

import (
	"context"
	"sync"
	"time"

	domain "github.com/BruksfildServices01/clinic-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-booking/internal/models"
)

// AppointmentMemoryRepository keeps appointments in insertion order.
type AppointmentMemoryRepository struct {
	mu     sync.Mutex
	nextID uint
	items  []models.Appointment
}

func NewAppointmentMemoryRepository() *AppointmentMemoryRepository {
	return &AppointmentMemoryRepository{nextID: 1}
}

func (r *AppointmentMemoryRepository) Create(
	_ context.Context,
	ap *models.Appointment,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	ap.ID = r.nextID
	ap.CreatedAt = now
	ap.UpdatedAt = now
	r.nextID++

	r.items = append(r.items, cloneAppointment(*ap))
	return nil
}

func (r *AppointmentMemoryRepository) List(
	_ context.Context,
) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Appointment, 0, len(r.items))
	for _, ap := range r.items {
		out = append(out, cloneAppointment(ap))
	}
	return out, nil
}

func (r *AppointmentMemoryRepository) UpdateNotes(
	_ context.Context,
	id uint,
	notes string,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID == id {
			domain.SetNotes(&r.items[i], notes)
			r.items[i].UpdatedAt = time.Now()
			return nil
		}
	}
	return nil
}

func (r *AppointmentMemoryRepository) Delete(
	_ context.Context,
	id uint,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func cloneAppointment(ap models.Appointment) models.Appointment {
	if ap.Notes != nil {
		n := *ap.Notes
		ap.Notes = &n
	}
	return ap
}

var _ domain.Repository = (*AppointmentMemoryRepository)(nil)
