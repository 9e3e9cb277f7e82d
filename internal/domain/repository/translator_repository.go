package repository

import (
	"context"

	"ishara/internal/domain/entity"
)

// TranslatorListener receives the full directory on every snapshot, or an
// error when the subscription fails. A failed subscription is terminal; the
// caller reissues it.
type TranslatorListener func(translators []*entity.Translator, err error)

type TranslatorRepository interface {
	List(ctx context.Context, level entity.Level) ([]*entity.Translator, error)
	GetByID(ctx context.Context, id string) (*entity.Translator, error)

	// Listen opens a continuous subscription to the directory, optionally
	// scoped server-side to a proficiency level. The returned stop function
	// tears the subscription down.
	Listen(ctx context.Context, level entity.Level, fn TranslatorListener) (stop func())

	// Profile mirror: translator self-service writes into the same collection.
	SaveProfile(ctx context.Context, profile *entity.UserProfile) (docID string, err error)
	UpdateProfile(ctx context.Context, docID string, profile *entity.UserProfile) error
	DeleteProfile(ctx context.Context, docID string) error
}
