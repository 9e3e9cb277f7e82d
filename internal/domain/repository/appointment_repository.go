package repository

import (
	"context"

	"ishara/internal/domain/entity"
)

// AppointmentListener receives the requester's appointment list, newest
// first, on every snapshot.
type AppointmentListener func(appointments []*entity.Appointment, err error)

type AppointmentRepository interface {
	// Create writes the appointment under its deterministic id and fails
	// with a CONFLICT error when a document for that pair already exists.
	Create(ctx context.Context, appointment *entity.Appointment) error
	Delete(ctx context.Context, id string) error
	ListByDeafUser(ctx context.Context, deafUserID string) ([]*entity.Appointment, error)
	ListByTranslator(ctx context.Context, translatorID string) ([]*entity.Appointment, error)

	Listen(ctx context.Context, deafUserID string, fn AppointmentListener) (stop func())
}
