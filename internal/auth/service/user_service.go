package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/storyverse/story-service/internal/auth/domain"
	"github.com/storyverse/story-service/internal/auth/dto"
	autherror "github.com/storyverse/story-service/internal/errors"
)

type UserService struct {
	repo         domain.UserRepository
	tokenService TokenGenerator
}

func NewUserService(repo domain.UserRepository, tokenService TokenGenerator) *UserService {
	return &UserService{
		repo:         repo,
		tokenService: tokenService,
	}
}

// Register creates a new identity and issues its first token pair. The
// plaintext password is hashed immediately and never stored or logged.
// Uniqueness of the username is enforced by the store: when two concurrent
// registrations race on the same name, exactly one insert succeeds and the
// other surfaces the conflict error.
func (s *UserService) Register(ctx context.Context, input dto.RegisterInput) (*dto.RegisterOutput, error) {
	if input.Username == "" {
		return nil, fmt.Errorf("%w: username is required", autherror.ErrValidation)
	}
	if input.Email == "" {
		return nil, fmt.Errorf("%w: email is required", autherror.ErrValidation)
	}
	if input.Password == "" {
		return nil, fmt.Errorf("%w: password is required", autherror.ErrValidation)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	user := &domain.User{
		ID:           uuid.New().String(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	accessToken, refreshToken, err := s.tokenService.Generate(user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	return &dto.RegisterOutput{
		Username: user.Username,
		Tokens: dto.TokenResponse{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
		},
	}, nil
}

// Login verifies credentials and issues a fresh token pair. Unknown
// usernames and wrong passwords produce the same error.
func (s *UserService) Login(ctx context.Context, input dto.LoginInput) (*dto.TokenResponse, error) {
	user, err := s.repo.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}

	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		return nil, autherror.ErrInvalidCredentials
	}

	accessToken, refreshToken, err := s.tokenService.Generate(user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh mints a new token pair from a valid refresh token. Validity is
// determined entirely by signature and expiry; no token state is kept
// server-side.
func (s *UserService) Refresh(ctx context.Context, input dto.RefreshInput) (*dto.TokenResponse, error) {
	claims, err := s.tokenService.VerifyRefreshToken(input.RefreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, autherror.ErrInvalidToken
	}

	accessToken, refreshToken, err := s.tokenService.Generate(user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
