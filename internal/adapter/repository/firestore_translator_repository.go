package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"ishara/internal/domain/entity"
	"ishara/internal/domain/repository"
	"ishara/pkg/errors"
	"ishara/pkg/logger"
)

const translatorsCollection = "translators"

type firestoreTranslatorRepository struct {
	client *firestore.Client
}

func NewFirestoreTranslatorRepository(client *firestore.Client) repository.TranslatorRepository {
	return &firestoreTranslatorRepository{
		client: client,
	}
}

func (r *firestoreTranslatorRepository) query(level entity.Level) firestore.Query {
	q := r.client.Collection(translatorsCollection).Query
	if level != "" {
		q = q.Where("level", "==", string(level))
	}
	return q
}

func (r *firestoreTranslatorRepository) List(ctx context.Context, level entity.Level) ([]*entity.Translator, error) {
	docs, err := r.query(level).Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to fetch translators", err)
	}
	return decodeTranslatorDocs(docs), nil
}

func (r *firestoreTranslatorRepository) GetByID(ctx context.Context, id string) (*entity.Translator, error) {
	doc, err := r.client.Collection(translatorsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Translator", err)
		}
		return nil, errors.Internal("Failed to get translator", err)
	}

	translator, err := entity.TranslatorFromDoc(doc.Ref.ID, doc.Data())
	if err != nil {
		return nil, errors.Internal("Failed to parse translator data", err)
	}
	return translator, nil
}

func (r *firestoreTranslatorRepository) Listen(ctx context.Context, level entity.Level, fn repository.TranslatorListener) func() {
	ctx, cancel := context.WithCancel(ctx)

	go func() {
		it := r.query(level).Snapshots(ctx)
		defer it.Stop()

		for {
			snap, err := it.Next()
			if err != nil {
				if status.Code(err) == codes.Canceled {
					return
				}
				fn(nil, errors.Internal("Translator subscription failed", err))
				return
			}

			docs, err := snap.Documents.GetAll()
			if err != nil {
				fn(nil, errors.Internal("Failed to read translator snapshot", err))
				return
			}

			fn(decodeTranslatorDocs(docs), nil)
		}
	}()

	return cancel
}

func (r *firestoreTranslatorRepository) SaveProfile(ctx context.Context, profile *entity.UserProfile) (string, error) {
	ref := r.client.Collection(translatorsCollection).NewDoc()
	profile.ID = ref.ID
	profile.UpdatedAt = time.Now()

	if _, err := ref.Set(ctx, profile); err != nil {
		return "", errors.Internal("Failed to save profile", err)
	}
	return ref.ID, nil
}

func (r *firestoreTranslatorRepository) UpdateProfile(ctx context.Context, docID string, profile *entity.UserProfile) error {
	profile.ID = docID
	profile.UpdatedAt = time.Now()

	if _, err := r.client.Collection(translatorsCollection).Doc(docID).Set(ctx, profile); err != nil {
		return errors.Internal("Failed to update profile", err)
	}
	return nil
}

func (r *firestoreTranslatorRepository) DeleteProfile(ctx context.Context, docID string) error {
	if _, err := r.client.Collection(translatorsCollection).Doc(docID).Delete(ctx); err != nil {
		return errors.Internal("Failed to delete profile", err)
	}
	return nil
}

// decodeTranslatorDocs decodes a snapshot defensively: malformed records are
// logged and skipped, never fatal.
func decodeTranslatorDocs(docs []*firestore.DocumentSnapshot) []*entity.Translator {
	var translators []*entity.Translator
	for _, doc := range docs {
		translator, err := entity.TranslatorFromDoc(doc.Ref.ID, doc.Data())
		if err != nil {
			logger.Warn("Skipping translator document: %v", err)
			continue
		}
		translators = append(translators, translator)
	}
	return translators
}
