package repository

import (
	"context"
	"time"

	"ishara/internal/domain/entity"
)

// MessageListener receives a room's full message list, ordered by timestamp
// ascending, on every snapshot.
type MessageListener func(messages []*entity.Message, err error)

type ConversationRepository interface {
	// Conversation summaries, keyed by room id.
	SaveSummary(ctx context.Context, summary *entity.ConversationSummary) error
	GetSummary(ctx context.Context, roomID string) (*entity.ConversationSummary, error)
	DeleteSummary(ctx context.Context, roomID string) error
	UpdateLastMessage(ctx context.Context, roomID, preview string, at time.Time) error
	ListByUserID(ctx context.Context, userID string) ([]*entity.ConversationSummary, error)
	ListByName(ctx context.Context, name string) ([]*entity.ConversationSummary, error)
	ListRecent(ctx context.Context, limit int) ([]*entity.ConversationSummary, error)

	// Chat rooms and their message sub-collections.
	CreateRoom(ctx context.Context, roomID string, participants []string) error
	DeleteRoom(ctx context.Context, roomID string) error
	CreateMessage(ctx context.Context, roomID string, message *entity.Message) error
	ListMessages(ctx context.Context, roomID string, limit, offset int) ([]*entity.Message, int64, error)
	DeleteMessages(ctx context.Context, roomID string) error

	ListenMessages(ctx context.Context, roomID string, fn MessageListener) (stop func())
}
