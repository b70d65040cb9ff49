package audit

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-booking/internal/models"
)

type Event struct {
	UserEmail string
	Action    string
	Entity    string
	EntityID  *uint
	Metadata  any
}

// Sink persists audit events.
type Sink interface {
	Log(ctx context.Context, ev Event) error
}

// Logger writes events to the audit_logs table.
type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	log := models.AuditLog{
		UserEmail: ev.UserEmail,
		Action:    ev.Action,
		Entity:    ev.Entity,
		EntityID:  ev.EntityID,
		Metadata:  encodeMetadata(ev.Metadata),
	}

	return l.db.WithContext(ctx).Create(&log).Error
}

// LogSink emits events as structured log lines, for deployments
// without a database.
type LogSink struct {
	log zerolog.Logger
}

func NewLogSink(l zerolog.Logger) *LogSink {
	return &LogSink{log: l}
}

func (s *LogSink) Log(_ context.Context, ev Event) error {
	e := s.log.Info().
		Str("action", ev.Action).
		Str("entity", ev.Entity).
		Str("user_email", ev.UserEmail)
	if ev.EntityID != nil {
		e = e.Uint("entity_id", *ev.EntityID)
	}
	if meta := encodeMetadata(ev.Metadata); meta != "" {
		e = e.RawJSON("metadata", []byte(meta))
	}
	e.Msg("audit")
	return nil
}

func encodeMetadata(metadata any) string {
	if metadata == nil {
		return ""
	}
	b, err := json.Marshal(metadata)
	if err != nil {
		return ""
	}
	return string(b)
}
