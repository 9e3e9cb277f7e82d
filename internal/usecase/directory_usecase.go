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

// DirectoryUseCase maintains the live translator directory. It owns a single
// snapshot subscription, optionally scoped server-side to a proficiency
// level, and republishes the full list on every change. On a transport error
// the list is discarded rather than kept stale.
type DirectoryUseCase struct {
	translatorRepo repository.TranslatorRepository
	publisher      Publisher

	mu          sync.RWMutex
	ctx         context.Context
	translators []*entity.Translator
	level       entity.Level
	errMsg      string
	stop        func()
}

func NewDirectoryUseCase(translatorRepo repository.TranslatorRepository, publisher Publisher) *DirectoryUseCase {
	return &DirectoryUseCase{
		translatorRepo: translatorRepo,
		publisher:      publisher,
	}
}

// Start opens the unscoped directory subscription. The context governs the
// subscription's lifetime, including every reissue SetLevelFilter triggers,
// so callers pass the application context rather than a request-scoped one.
func (uc *DirectoryUseCase) Start(ctx context.Context) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.ctx = ctx
	uc.subscribeLocked()
}

// SetLevelFilter reissues the subscription scoped to a proficiency level.
// An empty level clears the filter.
func (uc *DirectoryUseCase) SetLevelFilter(rawLevel string) error {
	var level entity.Level
	if rawLevel != "" {
		parsed, ok := entity.ParseLevel(rawLevel)
		if !ok {
			return errors.BadRequest("Unknown proficiency level", nil)
		}
		level = parsed
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	if level == uc.level && uc.stop != nil {
		return nil
	}
	uc.level = level
	uc.subscribeLocked()
	return nil
}

func (uc *DirectoryUseCase) subscribeLocked() {
	if uc.stop != nil {
		uc.stop()
	}
	ctx := uc.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	uc.stop = uc.translatorRepo.Listen(ctx, uc.level, uc.onSnapshot)
}

func (uc *DirectoryUseCase) onSnapshot(translators []*entity.Translator, err error) {
	uc.mu.Lock()
	if err != nil {
		logger.Error("Directory subscription error: %v", err)
		uc.translators = nil
		uc.errMsg = "Failed to load translators"
		uc.mu.Unlock()
		return
	}
	uc.translators = translators
	uc.errMsg = ""
	uc.mu.Unlock()

	update, err := json.Marshal(map[string]interface{}{
		"type":        "directory_update",
		"translators": translators,
	})
	if err != nil {
		logger.Error("Failed to marshal directory update: %v", err)
		return
	}
	uc.publisher.Broadcast(update)
}

// List fetches the directory once, optionally scoped to a level. Used by the
// HTTP surface; the live feed goes through the subscription.
func (uc *DirectoryUseCase) List(ctx context.Context, rawLevel string) ([]*entity.Translator, error) {
	var level entity.Level
	if rawLevel != "" {
		parsed, ok := entity.ParseLevel(rawLevel)
		if !ok {
			return nil, errors.BadRequest("Unknown proficiency level", nil)
		}
		level = parsed
	}
	return uc.translatorRepo.List(ctx, level)
}

// Current returns the latest published list and the user-visible error
// state, if any. The two are mutually exclusive.
func (uc *DirectoryUseCase) Current() ([]*entity.Translator, string) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.translators, uc.errMsg
}

// Level returns the active proficiency filter, empty when unscoped.
func (uc *DirectoryUseCase) Level() entity.Level {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.level
}

// Close tears the subscription down.
func (uc *DirectoryUseCase) Close() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.stop != nil {
		uc.stop()
		uc.stop = nil
	}
}
