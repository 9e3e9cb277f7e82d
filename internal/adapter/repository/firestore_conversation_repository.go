package repository

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"ishara/internal/domain/entity"
	"ishara/internal/domain/repository"
	"ishara/pkg/errors"
	"ishara/pkg/logger"
)

const (
	conversationsCollection = "conversations"
	roomsCollection         = "rooms"
	messagesSubcollection   = "messages"
)

type firestoreConversationRepository struct {
	client *firestore.Client
}

func NewFirestoreConversationRepository(client *firestore.Client) repository.ConversationRepository {
	return &firestoreConversationRepository{
		client: client,
	}
}

func (r *firestoreConversationRepository) SaveSummary(ctx context.Context, summary *entity.ConversationSummary) error {
	if summary.Timestamp.IsZero() {
		summary.Timestamp = time.Now()
	}
	_, err := r.client.Collection(conversationsCollection).Doc(summary.RoomID).Set(ctx, summary)
	if err != nil {
		return errors.Internal("Failed to save conversation", err)
	}
	return nil
}

func (r *firestoreConversationRepository) GetSummary(ctx context.Context, roomID string) (*entity.ConversationSummary, error) {
	doc, err := r.client.Collection(conversationsCollection).Doc(roomID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Conversation", err)
		}
		return nil, errors.Internal("Failed to get conversation", err)
	}

	var summary entity.ConversationSummary
	if err := doc.DataTo(&summary); err != nil {
		return nil, errors.Internal("Failed to parse conversation data", err)
	}
	summary.RoomID = doc.Ref.ID
	return &summary, nil
}

func (r *firestoreConversationRepository) DeleteSummary(ctx context.Context, roomID string) error {
	if _, err := r.client.Collection(conversationsCollection).Doc(roomID).Delete(ctx); err != nil {
		return errors.Internal("Failed to delete conversation", err)
	}
	return nil
}

func (r *firestoreConversationRepository) UpdateLastMessage(ctx context.Context, roomID, preview string, at time.Time) error {
	_, err := r.client.Collection(conversationsCollection).Doc(roomID).Update(ctx, []firestore.Update{
		{Path: "lastMessage", Value: preview},
		{Path: "timestamp", Value: at},
	})
	if err != nil {
		return errors.Internal("Failed to update conversation preview", err)
	}
	return nil
}

func (r *firestoreConversationRepository) ListByUserID(ctx context.Context, userID string) ([]*entity.ConversationSummary, error) {
	base := r.client.Collection(conversationsCollection).Query

	asDeaf, err := r.listSummaries(ctx, base.Where("deafUserId", "==", userID))
	if err != nil {
		return nil, err
	}
	asTranslator, err := r.listSummaries(ctx, base.Where("translatorId", "==", userID))
	if err != nil {
		return nil, err
	}

	return mergeSummaries(asDeaf, asTranslator), nil
}

func (r *firestoreConversationRepository) ListByName(ctx context.Context, name string) ([]*entity.ConversationSummary, error) {
	base := r.client.Collection(conversationsCollection).Query

	asDeaf, err := r.listSummaries(ctx, base.Where("deafName", "==", name))
	if err != nil {
		return nil, err
	}
	asTranslator, err := r.listSummaries(ctx, base.Where("translatorName", "==", name))
	if err != nil {
		return nil, err
	}

	return mergeSummaries(asDeaf, asTranslator), nil
}

func (r *firestoreConversationRepository) ListRecent(ctx context.Context, limit int) ([]*entity.ConversationSummary, error) {
	query := r.client.Collection(conversationsCollection).
		OrderBy("timestamp", firestore.Desc).
		Limit(limit)
	return r.listSummaries(ctx, query)
}

func (r *firestoreConversationRepository) listSummaries(ctx context.Context, query firestore.Query) ([]*entity.ConversationSummary, error) {
	iter := query.Documents(ctx)
	var summaries []*entity.ConversationSummary

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate conversations", err)
		}

		var summary entity.ConversationSummary
		if err := doc.DataTo(&summary); err != nil {
			logger.Warn("Skipping conversation document %s: %v", doc.Ref.ID, err)
			continue
		}
		summary.RoomID = doc.Ref.ID
		summaries = append(summaries, &summary)
	}

	return summaries, nil
}

// mergeSummaries joins two result sets, dropping room-id duplicates and
// ordering newest first.
func mergeSummaries(a, b []*entity.ConversationSummary) []*entity.ConversationSummary {
	seen := make(map[string]bool, len(a)+len(b))
	var merged []*entity.ConversationSummary
	for _, s := range append(a, b...) {
		if seen[s.RoomID] {
			continue
		}
		seen[s.RoomID] = true
		merged = append(merged, s)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Timestamp.After(merged[j].Timestamp)
	})
	return merged
}

func (r *firestoreConversationRepository) CreateRoom(ctx context.Context, roomID string, participants []string) error {
	_, err := r.client.Collection(roomsCollection).Doc(roomID).Set(ctx, map[string]interface{}{
		"id":           roomID,
		"participants": participants,
		"createdAt":    firestore.ServerTimestamp,
	})
	if err != nil {
		return errors.Internal("Failed to create chat room", err)
	}
	return nil
}

func (r *firestoreConversationRepository) DeleteRoom(ctx context.Context, roomID string) error {
	if _, err := r.client.Collection(roomsCollection).Doc(roomID).Delete(ctx); err != nil {
		return errors.Internal("Failed to delete chat room", err)
	}
	return nil
}

func (r *firestoreConversationRepository) messages(roomID string) *firestore.CollectionRef {
	return r.client.Collection(roomsCollection).Doc(roomID).Collection(messagesSubcollection)
}

func (r *firestoreConversationRepository) CreateMessage(ctx context.Context, roomID string, message *entity.Message) error {
	if _, err := r.messages(roomID).Doc(message.ID).Set(ctx, message); err != nil {
		return errors.Internal("Failed to send message", err)
	}
	return nil
}

func (r *firestoreConversationRepository) ListMessages(ctx context.Context, roomID string, limit, offset int) ([]*entity.Message, int64, error) {
	query := r.messages(roomID).OrderBy("timestamp", firestore.Asc)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to fetch messages", err)
	}
	total := int64(len(docs))

	messages := decodeMessageDocs(docs, roomID)

	// Paginate in memory; rooms are small two-party threads.
	start := offset
	if start > len(messages) {
		start = len(messages)
	}
	end := len(messages)
	if limit > 0 && start+limit < end {
		end = start + limit
	}

	return messages[start:end], total, nil
}

func (r *firestoreConversationRepository) DeleteMessages(ctx context.Context, roomID string) error {
	refs := r.messages(roomID).DocumentRefs(ctx)
	bw := r.client.BulkWriter(ctx)

	for {
		ref, err := refs.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			bw.End()
			return errors.Internal("Failed to enumerate messages for deletion", err)
		}
		if _, err := bw.Delete(ref); err != nil {
			bw.End()
			return errors.Internal("Failed to delete messages", err)
		}
	}

	bw.End()
	return nil
}

func (r *firestoreConversationRepository) ListenMessages(ctx context.Context, roomID string, fn repository.MessageListener) func() {
	ctx, cancel := context.WithCancel(ctx)

	query := r.messages(roomID).OrderBy("timestamp", firestore.Asc)

	go func() {
		it := query.Snapshots(ctx)
		defer it.Stop()

		for {
			snap, err := it.Next()
			if err != nil {
				if status.Code(err) == codes.Canceled {
					return
				}
				fn(nil, errors.Internal("Message subscription failed", err))
				return
			}

			docs, err := snap.Documents.GetAll()
			if err != nil {
				fn(nil, errors.Internal("Failed to read message snapshot", err))
				return
			}

			fn(decodeMessageDocs(docs, roomID), nil)
		}
	}()

	return cancel
}

func decodeMessageDocs(docs []*firestore.DocumentSnapshot, roomID string) []*entity.Message {
	var messages []*entity.Message
	for _, doc := range docs {
		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			logger.Warn("Skipping message document %s in room %s: %v", doc.Ref.ID, roomID, err)
			continue
		}
		if message.ID == "" {
			message.ID = doc.Ref.ID
		}
		messages = append(messages, &message)
	}
	return messages
}
