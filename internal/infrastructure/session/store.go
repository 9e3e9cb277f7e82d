package session

import (
	"context"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"ishara/internal/domain/entity"
)

// Store is the server-side rendition of the app's local key-value storage:
// it holds each user's chosen role and the backend document id their profile
// writes route through. Cleared on logout.
type Store struct {
	client valkey.Client
}

func NewStore(addr, password string) (*Store, error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{addr},
		Password:    password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to valkey: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping valkey: %w", err)
	}

	return &Store{client: client}, nil
}

func roleKey(userID string) string    { return fmt.Sprintf("role:%s", userID) }
func profileKey(userID string) string { return fmt.Sprintf("profile_doc:%s", userID) }

func (s *Store) SaveRole(ctx context.Context, userID string, role entity.Role) error {
	cmd := s.client.B().Set().Key(roleKey(userID)).Value(string(role)).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("failed to save role: %w", err)
	}
	return nil
}

// Role returns the stored role, or empty when none was chosen yet.
func (s *Store) Role(ctx context.Context, userID string) (entity.Role, error) {
	result := s.client.Do(ctx, s.client.B().Get().Key(roleKey(userID)).Build())
	if err := result.Error(); err != nil {
		if valkey.IsValkeyNil(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get role: %w", err)
	}

	value, err := result.ToString()
	if err != nil {
		return "", fmt.Errorf("failed to parse role: %w", err)
	}
	return entity.Role(value), nil
}

func (s *Store) SaveProfileDocID(ctx context.Context, userID, docID string) error {
	cmd := s.client.B().Set().Key(profileKey(userID)).Value(docID).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("failed to save profile doc id: %w", err)
	}
	return nil
}

// ProfileDocID returns the cached backend document id, or empty when the
// profile has never been saved.
func (s *Store) ProfileDocID(ctx context.Context, userID string) (string, error) {
	result := s.client.Do(ctx, s.client.B().Get().Key(profileKey(userID)).Build())
	if err := result.Error(); err != nil {
		if valkey.IsValkeyNil(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get profile doc id: %w", err)
	}

	value, err := result.ToString()
	if err != nil {
		return "", fmt.Errorf("failed to parse profile doc id: %w", err)
	}
	return value, nil
}

// DeleteProfileDocID forgets the cached document id after a profile delete.
func (s *Store) DeleteProfileDocID(ctx context.Context, userID string) error {
	cmd := s.client.B().Del().Key(profileKey(userID)).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("failed to delete profile doc id: %w", err)
	}
	return nil
}

// Clear removes all cached identity state for a user.
func (s *Store) Clear(ctx context.Context, userID string) error {
	cmd := s.client.B().Del().Key(roleKey(userID), profileKey(userID)).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

func (s *Store) Close() {
	s.client.Close()
}
