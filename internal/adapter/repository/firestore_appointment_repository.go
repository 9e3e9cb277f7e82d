package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"ishara/internal/domain/entity"
	"ishara/internal/domain/repository"
	"ishara/pkg/errors"
	"ishara/pkg/logger"
)

const appointmentsCollection = "appointments"

type firestoreAppointmentRepository struct {
	client *firestore.Client
}

func NewFirestoreAppointmentRepository(client *firestore.Client) repository.AppointmentRepository {
	return &firestoreAppointmentRepository{
		client: client,
	}
}

func (r *firestoreAppointmentRepository) Create(ctx context.Context, appointment *entity.Appointment) error {
	if appointment.ID == "" {
		appointment.ID = entity.RoomID(appointment.DeafUserID, appointment.TranslatorID)
	}

	// Create (not Set) so two clients racing for the same pair collide here
	// instead of both committing.
	_, err := r.client.Collection(appointmentsCollection).Doc(appointment.ID).Create(ctx, appointment)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return errors.Conflict("You have already requested this translator")
		}
		return errors.Internal("Failed to create appointment", err)
	}
	return nil
}

func (r *firestoreAppointmentRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.client.Collection(appointmentsCollection).Doc(id).Delete(ctx); err != nil {
		return errors.Internal("Failed to delete appointment", err)
	}
	return nil
}

func (r *firestoreAppointmentRepository) ListByDeafUser(ctx context.Context, deafUserID string) ([]*entity.Appointment, error) {
	query := r.client.Collection(appointmentsCollection).
		Where("deafUserId", "==", deafUserID).
		OrderBy("createdAt", firestore.Desc)
	return r.list(ctx, query)
}

func (r *firestoreAppointmentRepository) ListByTranslator(ctx context.Context, translatorID string) ([]*entity.Appointment, error) {
	query := r.client.Collection(appointmentsCollection).
		Where("translatorId", "==", translatorID).
		OrderBy("createdAt", firestore.Desc)
	return r.list(ctx, query)
}

func (r *firestoreAppointmentRepository) list(ctx context.Context, query firestore.Query) ([]*entity.Appointment, error) {
	iter := query.Documents(ctx)
	var appointments []*entity.Appointment

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate appointments", err)
		}

		var appointment entity.Appointment
		if err := doc.DataTo(&appointment); err != nil {
			logger.Warn("Skipping appointment document %s: %v", doc.Ref.ID, err)
			continue
		}
		appointment.ID = doc.Ref.ID
		appointments = append(appointments, &appointment)
	}

	return appointments, nil
}

func (r *firestoreAppointmentRepository) Listen(ctx context.Context, deafUserID string, fn repository.AppointmentListener) func() {
	ctx, cancel := context.WithCancel(ctx)

	query := r.client.Collection(appointmentsCollection).
		Where("deafUserId", "==", deafUserID).
		OrderBy("createdAt", firestore.Desc)

	go func() {
		it := query.Snapshots(ctx)
		defer it.Stop()

		for {
			snap, err := it.Next()
			if err != nil {
				if status.Code(err) == codes.Canceled {
					return
				}
				fn(nil, errors.Internal("Appointment subscription failed", err))
				return
			}

			docs, err := snap.Documents.GetAll()
			if err != nil {
				fn(nil, errors.Internal("Failed to read appointment snapshot", err))
				return
			}

			var appointments []*entity.Appointment
			for _, doc := range docs {
				var appointment entity.Appointment
				if err := doc.DataTo(&appointment); err != nil {
					logger.Warn("Skipping appointment document %s: %v", doc.Ref.ID, err)
					continue
				}
				appointment.ID = doc.Ref.ID
				appointments = append(appointments, &appointment)
			}

			fn(appointments, nil)
		}
	}()

	return cancel
}
