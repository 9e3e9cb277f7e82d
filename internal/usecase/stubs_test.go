package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ishara/internal/domain/entity"
	"ishara/internal/domain/repository"
	"ishara/pkg/errors"
)

// stubTranslatorRepo serves a fixed directory and records listener callbacks
// so tests can drive snapshots by hand.
type stubTranslatorRepo struct {
	translators []*entity.Translator
	listener    repository.TranslatorListener
	listenLevel entity.Level
	listenCtx   context.Context
	stopped     bool
}

func (s *stubTranslatorRepo) List(_ context.Context, level entity.Level) ([]*entity.Translator, error) {
	if level == "" {
		return s.translators, nil
	}
	var out []*entity.Translator
	for _, t := range s.translators {
		if t.Level == level {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *stubTranslatorRepo) GetByID(_ context.Context, id string) (*entity.Translator, error) {
	for _, t := range s.translators {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, errors.NotFound("Translator not found", nil)
}

func (s *stubTranslatorRepo) Listen(ctx context.Context, level entity.Level, fn repository.TranslatorListener) func() {
	s.listener = fn
	s.listenLevel = level
	s.listenCtx = ctx
	s.stopped = false
	return func() { s.stopped = true }
}

func (s *stubTranslatorRepo) SaveProfile(_ context.Context, _ *entity.UserProfile) (string, error) {
	return "doc-1", nil
}

func (s *stubTranslatorRepo) UpdateProfile(_ context.Context, _ string, _ *entity.UserProfile) error {
	return nil
}

func (s *stubTranslatorRepo) DeleteProfile(_ context.Context, _ string) error {
	return nil
}

// stubAppointmentRepo keeps appointments in a slice and enforces the
// deterministic-id conflict the real store provides.
type stubAppointmentRepo struct {
	appointments []*entity.Appointment
	listener     repository.AppointmentListener
	listenCtx    context.Context
	deleteErr    error
	deleted      []string
}

func (s *stubAppointmentRepo) Create(_ context.Context, appointment *entity.Appointment) error {
	for _, a := range s.appointments {
		if a.ID == appointment.ID {
			return errors.Conflict("You have already requested this translator")
		}
	}
	s.appointments = append(s.appointments, appointment)
	return nil
}

func (s *stubAppointmentRepo) Delete(_ context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	if s.deleteErr != nil {
		return s.deleteErr
	}
	kept := s.appointments[:0]
	for _, a := range s.appointments {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	s.appointments = kept
	return nil
}

func (s *stubAppointmentRepo) ListByDeafUser(_ context.Context, deafUserID string) ([]*entity.Appointment, error) {
	var out []*entity.Appointment
	for _, a := range s.appointments {
		if a.DeafUserID == deafUserID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *stubAppointmentRepo) ListByTranslator(_ context.Context, translatorID string) ([]*entity.Appointment, error) {
	var out []*entity.Appointment
	for _, a := range s.appointments {
		if a.TranslatorID == translatorID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *stubAppointmentRepo) Listen(ctx context.Context, _ string, fn repository.AppointmentListener) func() {
	s.listener = fn
	s.listenCtx = ctx
	return func() {}
}

// stubConversationRepo records the registry and room writes.
type stubConversationRepo struct {
	summaries map[string]*entity.ConversationSummary
	byUser    map[string][]*entity.ConversationSummary
	byName    map[string][]*entity.ConversationSummary
	recent    []*entity.ConversationSummary

	messages        map[string][]*entity.Message
	messageListener repository.MessageListener
	listenCtx       context.Context

	roomsCreated    []string
	roomsDeleted    []string
	messagesDeleted []string

	deleteMessagesErr error
	deleteRoomErr     error
	createMessageErr  error
}

func newStubConversationRepo() *stubConversationRepo {
	return &stubConversationRepo{
		summaries: make(map[string]*entity.ConversationSummary),
		byUser:    make(map[string][]*entity.ConversationSummary),
		byName:    make(map[string][]*entity.ConversationSummary),
		messages:  make(map[string][]*entity.Message),
	}
}

func (s *stubConversationRepo) SaveSummary(_ context.Context, summary *entity.ConversationSummary) error {
	s.summaries[summary.RoomID] = summary
	return nil
}

func (s *stubConversationRepo) GetSummary(_ context.Context, roomID string) (*entity.ConversationSummary, error) {
	summary, ok := s.summaries[roomID]
	if !ok {
		return nil, errors.NotFound("Conversation not found", nil)
	}
	return summary, nil
}

func (s *stubConversationRepo) DeleteSummary(_ context.Context, roomID string) error {
	delete(s.summaries, roomID)
	return nil
}

func (s *stubConversationRepo) UpdateLastMessage(_ context.Context, roomID, preview string, at time.Time) error {
	if summary, ok := s.summaries[roomID]; ok {
		summary.LastMessage = preview
		summary.Timestamp = at
	}
	return nil
}

func (s *stubConversationRepo) ListByUserID(_ context.Context, userID string) ([]*entity.ConversationSummary, error) {
	return s.byUser[userID], nil
}

func (s *stubConversationRepo) ListByName(_ context.Context, name string) ([]*entity.ConversationSummary, error) {
	return s.byName[name], nil
}

func (s *stubConversationRepo) ListRecent(_ context.Context, limit int) ([]*entity.ConversationSummary, error) {
	if len(s.recent) > limit {
		return s.recent[:limit], nil
	}
	return s.recent, nil
}

func (s *stubConversationRepo) CreateRoom(_ context.Context, roomID string, _ []string) error {
	s.roomsCreated = append(s.roomsCreated, roomID)
	return nil
}

func (s *stubConversationRepo) DeleteRoom(_ context.Context, roomID string) error {
	s.roomsDeleted = append(s.roomsDeleted, roomID)
	return s.deleteRoomErr
}

func (s *stubConversationRepo) CreateMessage(_ context.Context, roomID string, message *entity.Message) error {
	if s.createMessageErr != nil {
		return s.createMessageErr
	}
	s.messages[roomID] = append(s.messages[roomID], message)
	return nil
}

func (s *stubConversationRepo) ListMessages(_ context.Context, roomID string, limit, offset int) ([]*entity.Message, int64, error) {
	all := s.messages[roomID]
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (s *stubConversationRepo) DeleteMessages(_ context.Context, roomID string) error {
	s.messagesDeleted = append(s.messagesDeleted, roomID)
	if s.deleteMessagesErr != nil {
		return s.deleteMessagesErr
	}
	delete(s.messages, roomID)
	return nil
}

func (s *stubConversationRepo) ListenMessages(ctx context.Context, _ string, fn repository.MessageListener) func() {
	s.messageListener = fn
	s.listenCtx = ctx
	return func() {}
}

// stubPublisher records realtime frames and fakes room presence.
type stubPublisher struct {
	sent     map[string][][]byte
	rooms    map[string]string
	everyone [][]byte
}

func newStubPublisher() *stubPublisher {
	return &stubPublisher{
		sent:  make(map[string][][]byte),
		rooms: make(map[string]string),
	}
}

func (s *stubPublisher) SendToUser(userID string, message []byte) {
	s.sent[userID] = append(s.sent[userID], message)
}

func (s *stubPublisher) Broadcast(message []byte) {
	s.everyone = append(s.everyone, message)
}

func (s *stubPublisher) InRoom(userID, roomID string) bool {
	return s.rooms[userID] == roomID
}

// stubUserRepo keeps user records in a map keyed by id.
type stubUserRepo struct {
	users map[string]*entity.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*entity.User)}
}

func (s *stubUserRepo) Create(_ context.Context, user *entity.User) error {
	s.users[user.ID] = user
	return nil
}

func (s *stubUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	return user, nil
}

func (s *stubUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (s *stubUserRepo) Update(_ context.Context, user *entity.User) error {
	if _, ok := s.users[user.ID]; !ok {
		return errors.NotFound("User", nil)
	}
	s.users[user.ID] = user
	return nil
}

func (s *stubUserRepo) Delete(_ context.Context, id string) error {
	delete(s.users, id)
	return nil
}

// stubSessionStore is an in-memory SessionStore.
type stubSessionStore struct {
	roles   map[string]entity.Role
	docIDs  map[string]string
	cleared []string
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{
		roles:  make(map[string]entity.Role),
		docIDs: make(map[string]string),
	}
}

func (s *stubSessionStore) SaveRole(_ context.Context, userID string, role entity.Role) error {
	s.roles[userID] = role
	return nil
}

func (s *stubSessionStore) Role(_ context.Context, userID string) (entity.Role, error) {
	return s.roles[userID], nil
}

func (s *stubSessionStore) SaveProfileDocID(_ context.Context, userID, docID string) error {
	s.docIDs[userID] = docID
	return nil
}

func (s *stubSessionStore) ProfileDocID(_ context.Context, userID string) (string, error) {
	return s.docIDs[userID], nil
}

func (s *stubSessionStore) DeleteProfileDocID(_ context.Context, userID string) error {
	delete(s.docIDs, userID)
	return nil
}

func (s *stubSessionStore) Clear(_ context.Context, userID string) error {
	delete(s.roles, userID)
	delete(s.docIDs, userID)
	s.cleared = append(s.cleared, userID)
	return nil
}

// stubFirebaseAuth fakes the auth provider: any created user signs in with
// the same credentials, and tokens carry the uid.
type stubFirebaseAuth struct {
	passwords map[string]string // email -> password
	uids      map[string]string // email -> uid
	nextUID   int
}

func newStubFirebaseAuth() *stubFirebaseAuth {
	return &stubFirebaseAuth{
		passwords: make(map[string]string),
		uids:      make(map[string]string),
	}
}

func (s *stubFirebaseAuth) CreateUser(_ context.Context, email, password, _ string) (string, error) {
	s.nextUID++
	uid := fmt.Sprintf("uid-%d", s.nextUID)
	s.passwords[email] = password
	s.uids[email] = uid
	return uid, nil
}

func (s *stubFirebaseAuth) VerifyToken(_ context.Context, token string) (string, error) {
	const prefix = "token-"
	if !strings.HasPrefix(token, prefix) {
		return "", fmt.Errorf("bad token")
	}
	return strings.TrimPrefix(token, prefix), nil
}

func (s *stubFirebaseAuth) SignInWithEmailPassword(email, password string) (string, error) {
	if s.passwords[email] != password || password == "" {
		return "", fmt.Errorf("invalid credentials")
	}
	return "token-" + s.uids[email], nil
}

func (s *stubFirebaseAuth) DeleteUser(_ context.Context, uid string) error {
	for email, id := range s.uids {
		if id == uid {
			delete(s.uids, email)
			delete(s.passwords, email)
		}
	}
	return nil
}

type notification struct {
	userID, title, body, roomID string
}

type stubNotifier struct {
	notifications []notification
}

func (s *stubNotifier) Notify(userID, title, body, roomID string) {
	s.notifications = append(s.notifications, notification{userID, title, body, roomID})
}
