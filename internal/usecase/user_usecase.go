package usecase

import (
	"context"

	"ishara/internal/domain/entity"
	"ishara/internal/domain/repository"
	"ishara/pkg/errors"
)

// UserUseCase covers the identity/role store and the translator profile:
// role selection cached in the session store and mirrored to the user
// record, and profile writes routed through the cached backend document id.
type UserUseCase struct {
	userRepo       repository.UserRepository
	translatorRepo repository.TranslatorRepository
	sessions       SessionStore
}

func NewUserUseCase(userRepo repository.UserRepository, translatorRepo repository.TranslatorRepository, sessions SessionStore) *UserUseCase {
	return &UserUseCase{
		userRepo:       userRepo,
		translatorRepo: translatorRepo,
		sessions:       sessions,
	}
}

type SaveProfileInput struct {
	Name       string
	Gender     string
	Age        int
	Level      string
	Plan       string
	HourlyRate float64
}

func (uc *UserUseCase) ChooseRole(ctx context.Context, userID string, role entity.Role) error {
	if role != entity.RoleDeaf && role != entity.RoleTranslator {
		return errors.BadRequest("Unknown role", nil)
	}

	if err := uc.sessions.SaveRole(ctx, userID, role); err != nil {
		return errors.Internal("Failed to save role", err)
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	user.Role = role
	return uc.userRepo.Update(ctx, user)
}

// Role returns the user's chosen role, consulting the cache first and
// falling back to the user record.
func (uc *UserUseCase) Role(ctx context.Context, userID string) (entity.Role, error) {
	role, err := uc.sessions.Role(ctx, userID)
	if err == nil && role != "" {
		return role, nil
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if user.Role != "" {
		uc.sessions.SaveRole(ctx, userID, user.Role)
	}
	return user.Role, nil
}

// GetUser returns the stored user record.
func (uc *UserUseCase) GetUser(ctx context.Context, userID string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

// SaveProfile creates the translator profile on first save (the backend
// assigns the document id, which is cached) and updates the same document on
// every save after that.
func (uc *UserUseCase) SaveProfile(ctx context.Context, userID string, input SaveProfileInput) (*entity.UserProfile, error) {
	gender, ok := entity.ParseGender(input.Gender)
	if !ok {
		return nil, errors.BadRequest("Unknown gender", nil)
	}
	level, ok := entity.ParseLevel(input.Level)
	if !ok {
		return nil, errors.BadRequest("Unknown proficiency level", nil)
	}
	plan, ok := entity.ParsePlan(input.Plan)
	if !ok {
		return nil, errors.BadRequest("Unknown plan", nil)
	}
	if input.Name == "" {
		return nil, errors.BadRequest("Name is required", nil)
	}

	profile := &entity.UserProfile{
		Name:       input.Name,
		Gender:     gender,
		Age:        input.Age,
		Level:      level,
		Plan:       plan,
		HourlyRate: input.HourlyRate,
	}
	profile.Normalize()

	docID, err := uc.sessions.ProfileDocID(ctx, userID)
	if err != nil {
		return nil, errors.Internal("Failed to read cached profile id", err)
	}

	if docID == "" {
		docID, err = uc.translatorRepo.SaveProfile(ctx, profile)
		if err != nil {
			return nil, err
		}
		if err := uc.sessions.SaveProfileDocID(ctx, userID, docID); err != nil {
			return nil, errors.Internal("Failed to cache profile id", err)
		}
	} else {
		if err := uc.translatorRepo.UpdateProfile(ctx, docID, profile); err != nil {
			return nil, err
		}
	}

	return profile, nil
}

// GetProfile returns the user's translator record as currently stored.
func (uc *UserUseCase) GetProfile(ctx context.Context, userID string) (*entity.Translator, error) {
	docID, err := uc.sessions.ProfileDocID(ctx, userID)
	if err != nil {
		return nil, errors.Internal("Failed to read cached profile id", err)
	}
	if docID == "" {
		return nil, errors.NotFound("Profile", nil)
	}
	return uc.translatorRepo.GetByID(ctx, docID)
}

// DeleteProfile removes the profile document. Deleting without a cached
// document id is a precondition error, not a retryable failure.
func (uc *UserUseCase) DeleteProfile(ctx context.Context, userID string) error {
	docID, err := uc.sessions.ProfileDocID(ctx, userID)
	if err != nil {
		return errors.Internal("Failed to read cached profile id", err)
	}
	if docID == "" {
		return errors.BadRequest("No saved profile to delete", nil)
	}

	if err := uc.translatorRepo.DeleteProfile(ctx, docID); err != nil {
		return err
	}
	if err := uc.sessions.DeleteProfileDocID(ctx, userID); err != nil {
		return errors.Internal("Failed to clear cached profile id", err)
	}
	return nil
}

// Logout clears all cached identity state for the user.
func (uc *UserUseCase) Logout(ctx context.Context, userID string) error {
	if err := uc.sessions.Clear(ctx, userID); err != nil {
		return errors.Internal("Failed to clear session", err)
	}
	return nil
}
