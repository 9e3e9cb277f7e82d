package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"ishara/internal/domain/entity"
	"ishara/pkg/errors"
)

func newAppointmentFixture(translators ...*entity.Translator) (*AppointmentUseCase, *stubAppointmentRepo, *stubConversationRepo, *stubPublisher) {
	translatorRepo := &stubTranslatorRepo{translators: translators}
	appointmentRepo := &stubAppointmentRepo{}
	conversationRepo := newStubConversationRepo()
	publisher := newStubPublisher()

	conversations := NewConversationUseCase(conversationRepo, 50)
	directory := NewDirectoryUseCase(translatorRepo, publisher)

	uc := NewAppointmentUseCase(appointmentRepo, conversationRepo, translatorRepo, conversations, directory, publisher)
	return uc, appointmentRepo, conversationRepo, publisher
}

func TestCreateAppointmentCreatesConversation(t *testing.T) {
	uc, appointmentRepo, conversationRepo, _ := newAppointmentFixture(
		&entity.Translator{ID: "t1", Name: "Sara", Level: entity.LevelAdvanced},
	)

	matched, err := uc.Create(context.Background(), "u1", "Lina", "t1")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if matched.Appointment.ID != "t1_u1" {
		t.Fatalf("expected the deterministic id t1_u1, got %q", matched.Appointment.ID)
	}
	if matched.Translator == nil || matched.Translator.Name != "Sara" {
		t.Fatalf("expected the joined translator, got %+v", matched.Translator)
	}
	if len(appointmentRepo.appointments) != 1 {
		t.Fatalf("expected one stored appointment, got %d", len(appointmentRepo.appointments))
	}
	if len(conversationRepo.roomsCreated) != 1 || conversationRepo.roomsCreated[0] != "t1_u1" {
		t.Fatalf("expected the chat room to be created, got %v", conversationRepo.roomsCreated)
	}
	if conversationRepo.summaries["t1_u1"].LastMessage != entity.ConversationCreatedMessage {
		t.Fatal("expected the conversation summary with the created preview")
	}
}

func TestCreateAppointmentRejectsDuplicate(t *testing.T) {
	uc, _, _, _ := newAppointmentFixture(
		&entity.Translator{ID: "t1", Name: "Sara"},
	)

	if _, err := uc.Create(context.Background(), "u1", "Lina", "t1"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err := uc.Create(context.Background(), "u1", "Lina", "t1")
	if err == nil {
		t.Fatal("expected a conflict for the repeated request")
	}
	if !errors.Is(err, "CONFLICT") {
		t.Fatalf("expected a CONFLICT error, got %v", err)
	}
}

func TestCreateAppointmentConcurrentCollisionAtStore(t *testing.T) {
	// Both requests pass the list pre-check; the store-level id collision
	// still rejects the second one.
	uc, appointmentRepo, _, _ := newAppointmentFixture(
		&entity.Translator{ID: "t1", Name: "Sara"},
	)
	appointmentRepo.appointments = append(appointmentRepo.appointments, &entity.Appointment{
		ID:           entity.RoomID("u1", "t1"),
		DeafUserID:   "u2", // pre-check scans the requester's list only
		TranslatorID: "t1",
	})

	_, err := uc.Create(context.Background(), "u1", "Lina", "t1")
	if err == nil {
		t.Fatal("expected the store-level conflict to surface")
	}
	if !errors.Is(err, "CONFLICT") {
		t.Fatalf("expected a CONFLICT error, got %v", err)
	}
}

func TestCreateAppointmentUnknownTranslator(t *testing.T) {
	uc, _, _, _ := newAppointmentFixture()

	_, err := uc.Create(context.Background(), "u1", "Lina", "missing")
	if !errors.Is(err, "NOT_FOUND") {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestListJoinsDirectoryUnfiltered(t *testing.T) {
	uc, appointmentRepo, _, _ := newAppointmentFixture(
		&entity.Translator{ID: "t1", Name: "Sara", Level: entity.LevelBeginner},
	)
	appointmentRepo.appointments = []*entity.Appointment{
		{ID: "t1_u1", DeafUserID: "u1", TranslatorID: "t1"},
		{ID: "t9_u1", DeafUserID: "u1", TranslatorID: "t9"},
	}

	matched, err := uc.List(context.Background(), "u1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	if len(matched) != 2 {
		t.Fatalf("expected both appointments, got %d", len(matched))
	}
	if matched[0].Translator == nil || matched[0].Translator.ID != "t1" {
		t.Fatal("expected t1 to be joined")
	}
	if matched[1].Translator != nil {
		t.Fatal("expected the vanished translator to join as nil")
	}
}

func TestCancelCascadesAndContinuesPastFailures(t *testing.T) {
	uc, appointmentRepo, conversationRepo, _ := newAppointmentFixture(
		&entity.Translator{ID: "t1", Name: "Sara"},
	)
	if _, err := uc.Create(context.Background(), "u1", "Lina", "t1"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	conversationRepo.deleteMessagesErr = fmt.Errorf("messages unavailable")

	err := uc.Cancel(context.Background(), "u1", "t1")
	if err == nil {
		t.Fatal("expected the first failure to be reported")
	}

	// Every cascade step still ran.
	if len(appointmentRepo.deleted) != 1 || appointmentRepo.deleted[0] != "t1_u1" {
		t.Fatalf("expected the appointment delete, got %v", appointmentRepo.deleted)
	}
	if len(conversationRepo.messagesDeleted) != 1 {
		t.Fatalf("expected the messages delete to be attempted, got %v", conversationRepo.messagesDeleted)
	}
	if len(conversationRepo.roomsDeleted) != 1 {
		t.Fatalf("expected the room delete to run despite the earlier failure, got %v", conversationRepo.roomsDeleted)
	}
	if _, ok := conversationRepo.summaries["t1_u1"]; ok {
		t.Fatal("expected the conversation summary to be removed")
	}
}

func TestWatchPushesMatchedAppointments(t *testing.T) {
	uc, appointmentRepo, _, publisher := newAppointmentFixture(
		&entity.Translator{ID: "t1", Name: "Sara"},
	)

	uc.Watch("u1")
	if appointmentRepo.listener == nil {
		t.Fatal("expected the subscription to be opened")
	}
	if appointmentRepo.listenCtx == nil || appointmentRepo.listenCtx.Err() != nil {
		t.Fatal("expected a subscription context that outlives the caller")
	}

	appointmentRepo.listener([]*entity.Appointment{
		{ID: "t1_u1", DeafUserID: "u1", TranslatorID: "t1"},
	}, nil)

	if len(publisher.sent["u1"]) != 1 {
		t.Fatalf("expected one realtime frame for u1, got %d", len(publisher.sent["u1"]))
	}

	// The cached list feeds the duplicate pre-check.
	if _, err := uc.Create(context.Background(), "u1", "Lina", "t1"); !errors.Is(err, "CONFLICT") {
		t.Fatalf("expected the cached list to reject the duplicate, got %v", err)
	}

	uc.Unwatch("u1")
}

func TestWatchSubscriptionErrorSurfaces(t *testing.T) {
	uc, appointmentRepo, _, publisher := newAppointmentFixture()

	uc.Watch("u1")
	appointmentRepo.listener(nil, fmt.Errorf("stream broken"))

	// The broken feed reaches the user as an error frame.
	if len(publisher.sent["u1"]) != 1 {
		t.Fatalf("expected one realtime frame, got %d", len(publisher.sent["u1"]))
	}
	var frame struct {
		Type  string `json:"type"`
		Error string `json:"error"`
	}
	if err := json.Unmarshal(publisher.sent["u1"][0], &frame); err != nil {
		t.Fatalf("unmarshal frame: %v", err)
	}
	if frame.Type != "appointments_update" || frame.Error == "" {
		t.Fatalf("expected an appointments_update error frame, got %+v", frame)
	}

	// List reports the failure instead of pretending the list is empty.
	if _, err := uc.List(context.Background(), "u1"); err == nil {
		t.Fatal("expected the broken subscription to surface as an error")
	}

	// A healthy snapshot recovers.
	appointmentRepo.listener(nil, nil)
	if _, err := uc.List(context.Background(), "u1"); err != nil {
		t.Fatalf("List after recovery: %v", err)
	}
}

func TestWatchIsIdempotentPerUser(t *testing.T) {
	uc, appointmentRepo, _, _ := newAppointmentFixture()

	uc.Watch("u1")
	first := appointmentRepo.listener
	uc.Watch("u1")

	if fmt.Sprintf("%p", first) != fmt.Sprintf("%p", appointmentRepo.listener) {
		t.Fatal("expected the second Watch to be a no-op")
	}
}
