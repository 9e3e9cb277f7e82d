package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"ishara/internal/domain/entity"
	"ishara/internal/domain/repository"
	"ishara/internal/infrastructure/ratelimit"
	"ishara/pkg/errors"
	"ishara/pkg/logger"
)

// SessionState tracks a chat session's lifecycle.
type SessionState int

const (
	SessionIdle SessionState = iota
	SessionListening
	SessionClosed
)

func (s SessionState) String() string {
	switch s {
	case SessionListening:
		return "listening"
	case SessionClosed:
		return "closed"
	default:
		return "idle"
	}
}

// ChatUseCase owns per-(user, room) chat sessions. A session holds the
// message subscription for one room and detects newly arrived counterparty
// messages to notify on.
type ChatUseCase struct {
	conversationRepo repository.ConversationRepository
	conversations    *ConversationUseCase
	publisher        Publisher
	notifier         Notifier
	rateLimiter      *ratelimit.RateLimiter

	mu       sync.Mutex
	sessions map[string]*ChatSession
}

func NewChatUseCase(
	conversationRepo repository.ConversationRepository,
	conversations *ConversationUseCase,
	publisher Publisher,
	notifier Notifier,
) *ChatUseCase {
	rateLimiter := ratelimit.NewRateLimiter()
	rateLimiter.StartCleanupRoutine()

	return &ChatUseCase{
		conversationRepo: conversationRepo,
		conversations:    conversations,
		publisher:        publisher,
		notifier:         notifier,
		rateLimiter:      rateLimiter,
		sessions:         make(map[string]*ChatSession),
	}
}

// ChatSession is one user's live view of one room.
type ChatSession struct {
	RoomID string

	uc       *ChatUseCase
	userID   string
	userName string

	mu       sync.Mutex
	state    SessionState
	messages []*entity.Message
	errMsg   string
	stop     func()
}

func sessionKey(userID, roomID string) string {
	return userID + "|" + roomID
}

// OpenSession establishes the message subscription for a room, moving the
// session from Idle to Listening. Reopening an existing session returns it.
// The subscription is not tied to any request; it runs until CloseSession or
// CloseAllForUser tears it down.
func (uc *ChatUseCase) OpenSession(userID, userName, roomID string) (*ChatSession, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	key := sessionKey(userID, roomID)
	if session, ok := uc.sessions[key]; ok {
		return session, nil
	}

	session := &ChatSession{
		RoomID:   roomID,
		uc:       uc,
		userID:   userID,
		userName: userName,
		state:    SessionIdle,
	}
	session.stop = uc.conversationRepo.ListenMessages(context.Background(), roomID, session.onSnapshot)
	session.state = SessionListening

	uc.sessions[key] = session
	return session, nil
}

// CloseSession tears down the user's subscription for a room.
func (uc *ChatUseCase) CloseSession(userID, roomID string) {
	uc.mu.Lock()
	session, ok := uc.sessions[sessionKey(userID, roomID)]
	if ok {
		delete(uc.sessions, sessionKey(userID, roomID))
	}
	uc.mu.Unlock()

	if ok {
		session.close()
	}
}

// CloseAllForUser closes every session the user holds. Called when the
// realtime connection drops.
func (uc *ChatUseCase) CloseAllForUser(userID string) {
	prefix := userID + "|"

	uc.mu.Lock()
	var closing []*ChatSession
	for key, session := range uc.sessions {
		if strings.HasPrefix(key, prefix) {
			delete(uc.sessions, key)
			closing = append(closing, session)
		}
	}
	uc.mu.Unlock()

	for _, session := range closing {
		session.close()
	}
}

func (s *ChatSession) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == SessionClosed {
		return
	}
	s.stop()
	s.state = SessionClosed
}

func (s *ChatSession) onSnapshot(messages []*entity.Message, err error) {
	s.mu.Lock()
	if s.state == SessionClosed {
		s.mu.Unlock()
		return
	}
	if err != nil {
		logger.Error("Chat subscription error in room %s: %v", s.RoomID, err)
		s.messages = nil
		s.errMsg = "Failed to load messages"
		s.mu.Unlock()
		s.uc.pushUpdate(s.userID, s.RoomID, nil, "Failed to load messages")
		return
	}

	previousCount := len(s.messages)
	s.messages = messages
	s.errMsg = ""

	var inbound *entity.Message
	if len(messages) > previousCount {
		latest := messages[len(messages)-1]
		if latest.SenderID != s.userID {
			inbound = latest
		}
	}
	s.mu.Unlock()

	s.uc.pushUpdate(s.userID, s.RoomID, messages, "")

	// Notify about the counterparty's message unless the user has the room
	// open right now.
	if inbound != nil && !s.uc.publisher.InRoom(s.userID, s.RoomID) {
		s.uc.notifier.Notify(s.userID, inbound.SenderName, inbound.Text, s.RoomID)
	}
}

func (uc *ChatUseCase) pushUpdate(userID, roomID string, messages []*entity.Message, errMsg string) {
	payload := map[string]interface{}{
		"type":     "chat_update",
		"room_id":  roomID,
		"messages": messages,
	}
	if errMsg != "" {
		payload["error"] = errMsg
	}
	update, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal chat update for room %s: %v", roomID, err)
		return
	}
	uc.publisher.SendToUser(userID, update)
}

// State returns the session's lifecycle state.
func (s *ChatSession) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// ErrMsg returns the user-facing message when the subscription is broken,
// empty while the feed is healthy.
func (s *ChatSession) ErrMsg() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// Messages returns a copy of the session's current message list.
func (s *ChatSession) Messages() []*entity.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entity.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// SendMessage writes a message to the room. Blank text is a no-op. The write
// result is returned to the caller so send failures are never silent.
func (uc *ChatUseCase) SendMessage(ctx context.Context, userID, userName, roomID, text string) (*entity.Message, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	if !uc.rateLimiter.Allow(userID, "send_message") {
		return nil, errors.TooManyRequests("You are sending messages too quickly")
	}

	message := &entity.Message{
		ID:         uuid.New().String(),
		Text:       text,
		SenderID:   userID,
		SenderName: userName,
	}

	if err := uc.conversationRepo.CreateMessage(ctx, roomID, message); err != nil {
		return nil, err
	}

	uc.conversations.UpdatePreview(ctx, roomID, text, time.Now())
	return message, nil
}

// History returns a page of the room's messages, oldest first.
func (uc *ChatUseCase) History(ctx context.Context, roomID string, limit, offset int) ([]*entity.Message, int64, error) {
	return uc.conversationRepo.ListMessages(ctx, roomID, limit, offset)
}
