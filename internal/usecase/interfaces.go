package usecase

import (
	"context"

	"ishara/internal/domain/entity"
)

type FirebaseAuthClient interface {
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	VerifyToken(ctx context.Context, token string) (string, error)
	SignInWithEmailPassword(email, password string) (string, error)
	DeleteUser(ctx context.Context, uid string) error
}

// Publisher pushes realtime frames to connected users and tracks room
// presence.
type Publisher interface {
	SendToUser(userID string, message []byte)
	Broadcast(message []byte)
	InRoom(userID, roomID string) bool
}

// Notifier delivers a user-facing notification for an inbound message.
type Notifier interface {
	Notify(userID, title, body, roomID string)
}

// SessionStore caches each user's chosen role and profile document id.
type SessionStore interface {
	SaveRole(ctx context.Context, userID string, role entity.Role) error
	Role(ctx context.Context, userID string) (entity.Role, error)
	SaveProfileDocID(ctx context.Context, userID, docID string) error
	ProfileDocID(ctx context.Context, userID string) (string, error)
	DeleteProfileDocID(ctx context.Context, userID string) error
	Clear(ctx context.Context, userID string) error
}
