package usecase

import (
	"context"
	"encoding/json"
	"sync"

	"ishara/internal/domain/entity"
	"ishara/internal/domain/repository"
	"ishara/pkg/errors"
	"ishara/pkg/logger"
)

// AppointmentUseCase manages appointment requests: a per-requester snapshot
// subscription, conflict-safe creation, and the cascading cancel that also
// removes the chat thread and conversation summary.
type AppointmentUseCase struct {
	appointmentRepo  repository.AppointmentRepository
	conversationRepo repository.ConversationRepository
	translatorRepo   repository.TranslatorRepository
	conversations    *ConversationUseCase
	directory        *DirectoryUseCase
	publisher        Publisher

	mu       sync.RWMutex
	watchers map[string]*appointmentWatcher
}

type appointmentWatcher struct {
	appointments []*entity.Appointment
	errMsg       string
	stop         func()
}

func NewAppointmentUseCase(
	appointmentRepo repository.AppointmentRepository,
	conversationRepo repository.ConversationRepository,
	translatorRepo repository.TranslatorRepository,
	conversations *ConversationUseCase,
	directory *DirectoryUseCase,
	publisher Publisher,
) *AppointmentUseCase {
	return &AppointmentUseCase{
		appointmentRepo:  appointmentRepo,
		conversationRepo: conversationRepo,
		translatorRepo:   translatorRepo,
		conversations:    conversations,
		directory:        directory,
		publisher:        publisher,
		watchers:         make(map[string]*appointmentWatcher),
	}
}

// Watch opens the requester's appointment subscription. Idempotent per user.
// The subscription is not tied to any request; it runs until Unwatch.
func (uc *AppointmentUseCase) Watch(deafUserID string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if _, ok := uc.watchers[deafUserID]; ok {
		return
	}

	watcher := &appointmentWatcher{}
	watcher.stop = uc.appointmentRepo.Listen(context.Background(), deafUserID, func(appointments []*entity.Appointment, err error) {
		uc.onSnapshot(deafUserID, appointments, err)
	})
	uc.watchers[deafUserID] = watcher
}

// Unwatch tears down the requester's subscription.
func (uc *AppointmentUseCase) Unwatch(deafUserID string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if watcher, ok := uc.watchers[deafUserID]; ok {
		watcher.stop()
		delete(uc.watchers, deafUserID)
	}
}

func (uc *AppointmentUseCase) onSnapshot(deafUserID string, appointments []*entity.Appointment, err error) {
	uc.mu.Lock()
	watcher, ok := uc.watchers[deafUserID]
	if !ok {
		uc.mu.Unlock()
		return
	}
	if err != nil {
		logger.Error("Appointment subscription error for %s: %v", deafUserID, err)
		watcher.appointments = nil
		watcher.errMsg = "Failed to load appointments"
		uc.mu.Unlock()
		uc.pushUpdate(deafUserID, nil, "Failed to load appointments")
		return
	}
	watcher.appointments = appointments
	watcher.errMsg = ""
	uc.mu.Unlock()

	// Re-run the matcher against the current directory and push the joined
	// view to the owning user.
	translators, _ := uc.directory.Current()
	uc.pushUpdate(deafUserID, MatchAppointments(appointments, translators), "")
}

func (uc *AppointmentUseCase) pushUpdate(deafUserID string, matched []*entity.AppointmentWithTranslator, errMsg string) {
	payload := map[string]interface{}{
		"type":         "appointments_update",
		"appointments": matched,
	}
	if errMsg != "" {
		payload["error"] = errMsg
	}
	update, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal appointments update: %v", err)
		return
	}
	uc.publisher.SendToUser(deafUserID, update)
}

// List returns the requester's appointments joined with the unfiltered
// directory.
func (uc *AppointmentUseCase) List(ctx context.Context, deafUserID string) ([]*entity.AppointmentWithTranslator, error) {
	appointments, err := uc.cachedOrFetch(ctx, deafUserID)
	if err != nil {
		return nil, err
	}

	translators, err := uc.translatorRepo.List(ctx, "")
	if err != nil {
		return nil, err
	}

	return MatchAppointments(appointments, translators), nil
}

// cachedOrFetch serves the watcher's cached list when one is open. A broken
// subscription is an error, not an empty list.
func (uc *AppointmentUseCase) cachedOrFetch(ctx context.Context, deafUserID string) ([]*entity.Appointment, error) {
	uc.mu.RLock()
	watcher, ok := uc.watchers[deafUserID]
	var cached []*entity.Appointment
	var errMsg string
	if ok {
		cached = watcher.appointments
		errMsg = watcher.errMsg
	}
	uc.mu.RUnlock()

	if ok {
		if errMsg != "" {
			return nil, errors.Internal(errMsg, nil)
		}
		return cached, nil
	}
	return uc.appointmentRepo.ListByDeafUser(ctx, deafUserID)
}

// Create requests a translator. The cached list gives a fast duplicate
// check; the deterministic document id makes concurrent creates collide at
// the store even when both clients pass that check.
func (uc *AppointmentUseCase) Create(ctx context.Context, deafUserID, deafName, translatorID string) (*entity.AppointmentWithTranslator, error) {
	existing, err := uc.cachedOrFetch(ctx, deafUserID)
	if err != nil {
		return nil, err
	}
	for _, a := range existing {
		if a.TranslatorID == translatorID {
			return nil, errors.Conflict("You have already requested this translator")
		}
	}

	translator, err := uc.translatorRepo.GetByID(ctx, translatorID)
	if err != nil {
		return nil, err
	}

	appointment := &entity.Appointment{
		ID:           entity.RoomID(deafUserID, translatorID),
		DeafUserID:   deafUserID,
		DeafName:     deafName,
		TranslatorID: translatorID,
	}
	if err := uc.appointmentRepo.Create(ctx, appointment); err != nil {
		return nil, err
	}

	if _, err := uc.conversations.CreateConversation(ctx, deafUserID, deafName, translator); err != nil {
		logger.Error("Failed to create conversation for appointment %s: %v", appointment.ID, err)
	}

	return &entity.AppointmentWithTranslator{
		Appointment: appointment,
		Translator:  translator,
	}, nil
}

// Cancel removes the appointment and cascades: message sub-collection, room
// marker, conversation summary. A failing sub-operation is logged and the
// chain continues; the first failure is reported after the whole chain ran.
func (uc *AppointmentUseCase) Cancel(ctx context.Context, deafUserID, translatorID string) error {
	roomID := entity.RoomID(deafUserID, translatorID)
	var firstErr error

	if err := uc.appointmentRepo.Delete(ctx, roomID); err != nil {
		logger.Error("Cancel: failed to delete appointment %s: %v", roomID, err)
		firstErr = err
	}
	if err := uc.conversationRepo.DeleteMessages(ctx, roomID); err != nil {
		logger.Error("Cancel: failed to delete messages for room %s: %v", roomID, err)
		if firstErr == nil {
			firstErr = err
		}
	}
	if err := uc.conversationRepo.DeleteRoom(ctx, roomID); err != nil {
		logger.Error("Cancel: failed to delete room %s: %v", roomID, err)
		if firstErr == nil {
			firstErr = err
		}
	}
	if err := uc.conversations.RemoveConversation(ctx, deafUserID, translatorID); err != nil {
		logger.Error("Cancel: failed to remove conversation for room %s: %v", roomID, err)
		if firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}
