package usecase

import (
	"context"
	"sync"
	"time"

	"ishara/internal/domain/entity"
	"ishara/internal/domain/repository"
	"ishara/pkg/logger"
)

// ConversationUseCase is the conversation registry: it derives room ids,
// keeps the per-user active list (mirroring appointment lifecycle), and
// persists the denormalized summaries.
type ConversationUseCase struct {
	conversationRepo repository.ConversationRepository
	recentLimit      int

	mu     sync.RWMutex
	active map[string][]*entity.ConversationSummary
}

func NewConversationUseCase(conversationRepo repository.ConversationRepository, recentLimit int) *ConversationUseCase {
	return &ConversationUseCase{
		conversationRepo: conversationRepo,
		recentLimit:      recentLimit,
		active:           make(map[string][]*entity.ConversationSummary),
	}
}

// CreateConversation creates the room and summary for a deaf user and a
// translator. Idempotent: a second call for the same translator returns the
// existing summary.
func (uc *ConversationUseCase) CreateConversation(ctx context.Context, deafUserID, deafName string, translator *entity.Translator) (*entity.ConversationSummary, error) {
	uc.mu.Lock()
	for _, existing := range uc.active[deafUserID] {
		if existing.TranslatorID == translator.ID {
			uc.mu.Unlock()
			return existing, nil
		}
	}
	uc.mu.Unlock()

	roomID := entity.RoomID(deafUserID, translator.ID)
	summary := &entity.ConversationSummary{
		RoomID:           roomID,
		DeafUserID:       deafUserID,
		DeafName:         deafName,
		TranslatorID:     translator.ID,
		TranslatorName:   translator.Name,
		TranslatorGender: translator.Gender,
		LastMessage:      entity.ConversationCreatedMessage,
		Timestamp:        time.Now(),
	}

	if err := uc.conversationRepo.CreateRoom(ctx, roomID, []string{deafUserID, translator.ID}); err != nil {
		return nil, err
	}
	if err := uc.conversationRepo.SaveSummary(ctx, summary); err != nil {
		return nil, err
	}

	uc.mu.Lock()
	uc.active[deafUserID] = append(uc.active[deafUserID], summary)
	uc.mu.Unlock()

	return summary, nil
}

// RemoveConversation deletes every active entry for the translator and the
// persisted summary.
func (uc *ConversationUseCase) RemoveConversation(ctx context.Context, deafUserID, translatorID string) error {
	uc.mu.Lock()
	kept := uc.active[deafUserID][:0]
	for _, s := range uc.active[deafUserID] {
		if s.TranslatorID != translatorID {
			kept = append(kept, s)
		}
	}
	uc.active[deafUserID] = kept
	uc.mu.Unlock()

	return uc.conversationRepo.DeleteSummary(ctx, entity.RoomID(deafUserID, translatorID))
}

// Active returns the user's active conversation list. After a restart the
// in-memory registry is rehydrated from the persisted summaries. The result
// is a snapshot; UpdatePreview keeps mutating the registry's own structs.
func (uc *ConversationUseCase) Active(ctx context.Context, userID string) ([]*entity.ConversationSummary, error) {
	uc.mu.RLock()
	cached := copySummaries(uc.active[userID])
	uc.mu.RUnlock()
	if len(cached) > 0 {
		return cached, nil
	}

	summaries, err := uc.conversationRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	uc.mu.Lock()
	uc.active[userID] = summaries
	out := copySummaries(summaries)
	uc.mu.Unlock()
	return out, nil
}

func copySummaries(in []*entity.ConversationSummary) []*entity.ConversationSummary {
	out := make([]*entity.ConversationSummary, len(in))
	for i, s := range in {
		c := *s
		out[i] = &c
	}
	return out
}

// Previous looks up a user's historical conversations. Identifier drift in
// old documents means a thread may be keyed by name rather than id, so the
// lookup falls back: by id, then by display name, then to a bounded
// unfiltered recent query so no thread becomes permanently inaccessible.
func (uc *ConversationUseCase) Previous(ctx context.Context, userID, displayName string) ([]*entity.ConversationSummary, error) {
	summaries, err := uc.conversationRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(summaries) > 0 {
		return summaries, nil
	}

	if displayName != "" {
		summaries, err = uc.conversationRepo.ListByName(ctx, displayName)
		if err != nil {
			return nil, err
		}
		if len(summaries) > 0 {
			return summaries, nil
		}
	}

	return uc.conversationRepo.ListRecent(ctx, uc.recentLimit)
}

// UpdatePreview refreshes the denormalized last-message preview after a send.
func (uc *ConversationUseCase) UpdatePreview(ctx context.Context, roomID, preview string, at time.Time) {
	uc.mu.Lock()
	for _, summaries := range uc.active {
		for _, s := range summaries {
			if s.RoomID == roomID {
				s.LastMessage = preview
				s.Timestamp = at
			}
		}
	}
	uc.mu.Unlock()

	if err := uc.conversationRepo.UpdateLastMessage(ctx, roomID, preview, at); err != nil {
		logger.Warn("Failed to update conversation preview for room %s: %v", roomID, err)
	}
}
