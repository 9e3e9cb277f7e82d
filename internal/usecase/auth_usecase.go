package usecase

import (
	"context"
	"time"

	"ishara/internal/domain/entity"
	"ishara/internal/domain/repository"
	"ishara/pkg/errors"
)

type AuthUseCase struct {
	userRepo     repository.UserRepository
	firebaseAuth FirebaseAuthClient
	sessions     SessionStore
}

func NewAuthUseCase(userRepo repository.UserRepository, firebaseAuth FirebaseAuthClient, sessions SessionStore) *AuthUseCase {
	return &AuthUseCase{
		userRepo:     userRepo,
		firebaseAuth: firebaseAuth,
		sessions:     sessions,
	}
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Role     entity.Role
}

type AuthResult struct {
	User  *entity.User `json:"user"`
	Token string       `json:"token"`
}

func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if input.Role != entity.RoleDeaf && input.Role != entity.RoleTranslator {
		return nil, errors.BadRequest("Unknown role", nil)
	}

	existing, err := uc.userRepo.GetByEmail(ctx, input.Email)
	if err == nil && existing != nil {
		return nil, errors.BadRequest("Email already in use", nil)
	}
	if err != nil && !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	uid, err := uc.firebaseAuth.CreateUser(ctx, input.Email, input.Password, input.Name)
	if err != nil {
		return nil, errors.Internal("Failed to create user in authentication provider", err)
	}

	now := time.Now()
	user := &entity.User{
		ID:        uid,
		Email:     input.Email,
		Name:      input.Name,
		Role:      input.Role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := uc.sessions.SaveRole(ctx, uid, input.Role); err != nil {
		return nil, errors.Internal("Failed to save role", err)
	}

	token, err := uc.firebaseAuth.SignInWithEmailPassword(input.Email, input.Password)
	if err != nil {
		return nil, errors.Internal("Failed to generate authentication token", err)
	}

	return &AuthResult{User: user, Token: token}, nil
}

func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	token, err := uc.firebaseAuth.SignInWithEmailPassword(email, password)
	if err != nil {
		return nil, errors.Unauthorized("Invalid email or password", err)
	}

	uid, err := uc.firebaseAuth.VerifyToken(ctx, token)
	if err != nil {
		return nil, errors.Unauthorized("Invalid token", err)
	}

	user, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}

	if user.Role != "" {
		uc.sessions.SaveRole(ctx, uid, user.Role)
	}

	return &AuthResult{User: user, Token: token}, nil
}
