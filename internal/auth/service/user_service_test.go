package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/storyverse/story-service/internal/auth/domain"
	"github.com/storyverse/story-service/internal/auth/dto"
	"github.com/storyverse/story-service/internal/auth/service"
	autherror "github.com/storyverse/story-service/internal/errors"
	"github.com/storyverse/story-service/internal/mocks"
)

func TestUserService_Register_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockUserRepository(ctrl)
	mockTokens := mocks.NewMockTokenGenerator(ctrl)
	s := service.NewUserService(mockRepo, mockTokens)

	input := dto.RegisterInput{Username: "alice", Email: "a@x.com", Password: "pw1"}

	var created *domain.User
	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, user *domain.User) error {
			created = user
			return nil
		})
	mockTokens.EXPECT().Generate(gomock.Any(), "alice").Return("access", "refresh", nil)

	out, err := s.Register(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, "alice", out.Username)
	assert.Equal(t, "access", out.Tokens.AccessToken)
	assert.Equal(t, "refresh", out.Tokens.RefreshToken)

	require.NotNil(t, created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "a@x.com", created.Email)
	assert.NotEqual(t, "pw1", created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("pw1")))
}

func TestUserService_Register_MissingFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockUserRepository(ctrl)
	mockTokens := mocks.NewMockTokenGenerator(ctrl)
	s := service.NewUserService(mockRepo, mockTokens)

	cases := []dto.RegisterInput{
		{Email: "a@x.com", Password: "pw1"},
		{Username: "alice", Password: "pw1"},
		{Username: "alice", Email: "a@x.com"},
	}

	for _, input := range cases {
		_, err := s.Register(context.Background(), input)
		assert.ErrorIs(t, err, autherror.ErrValidation)
	}
}

func TestUserService_Register_UsernameTaken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockUserRepository(ctrl)
	mockTokens := mocks.NewMockTokenGenerator(ctrl)
	s := service.NewUserService(mockRepo, mockTokens)

	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(autherror.ErrUsernameTaken)

	_, err := s.Register(context.Background(), dto.RegisterInput{Username: "alice", Email: "a@x.com", Password: "pw1"})
	assert.ErrorIs(t, err, autherror.ErrUsernameTaken)
}

func TestUserService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockUserRepository(ctrl)
	mockTokens := mocks.NewMockTokenGenerator(ctrl)
	s := service.NewUserService(mockRepo, mockTokens)

	hash, err := bcrypt.GenerateFromPassword([]byte("pw1"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &domain.User{ID: "user-123", Username: "alice", PasswordHash: string(hash)}

	t.Run("success", func(t *testing.T) {
		mockRepo.EXPECT().GetByUsername(gomock.Any(), "alice").Return(user, nil)
		mockTokens.EXPECT().Generate("user-123", "alice").Return("access", "refresh", nil)

		tokens, err := s.Login(context.Background(), dto.LoginInput{Username: "alice", Password: "pw1"})
		require.NoError(t, err)
		assert.Equal(t, "access", tokens.AccessToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		mockRepo.EXPECT().GetByUsername(gomock.Any(), "alice").Return(user, nil)

		_, err := s.Login(context.Background(), dto.LoginInput{Username: "alice", Password: "nope"})
		assert.ErrorIs(t, err, autherror.ErrInvalidCredentials)
	})

	t.Run("unknown user reports the same error", func(t *testing.T) {
		mockRepo.EXPECT().GetByUsername(gomock.Any(), "bob").Return(nil, nil)

		_, err := s.Login(context.Background(), dto.LoginInput{Username: "bob", Password: "pw1"})
		assert.ErrorIs(t, err, autherror.ErrInvalidCredentials)
	})
}

func TestUserService_Refresh(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockUserRepository(ctrl)
	mockTokens := mocks.NewMockTokenGenerator(ctrl)
	s := service.NewUserService(mockRepo, mockTokens)

	claims := &service.JWTCustomClaims{UserID: "user-123", Username: "alice", TokenType: service.TokenTypeRefresh}

	t.Run("success", func(t *testing.T) {
		mockTokens.EXPECT().VerifyRefreshToken("refresh").Return(claims, nil)
		mockRepo.EXPECT().GetByID(gomock.Any(), "user-123").Return(&domain.User{ID: "user-123", Username: "alice"}, nil)
		mockTokens.EXPECT().Generate("user-123", "alice").Return("access2", "refresh2", nil)

		tokens, err := s.Refresh(context.Background(), dto.RefreshInput{RefreshToken: "refresh"})
		require.NoError(t, err)
		assert.Equal(t, "access2", tokens.AccessToken)
		assert.Equal(t, "refresh2", tokens.RefreshToken)
	})

	t.Run("invalid token", func(t *testing.T) {
		mockTokens.EXPECT().VerifyRefreshToken("bad").Return(nil, autherror.ErrInvalidToken)

		_, err := s.Refresh(context.Background(), dto.RefreshInput{RefreshToken: "bad"})
		assert.ErrorIs(t, err, autherror.ErrInvalidToken)
	})

	t.Run("user no longer exists", func(t *testing.T) {
		mockTokens.EXPECT().VerifyRefreshToken("refresh").Return(claims, nil)
		mockRepo.EXPECT().GetByID(gomock.Any(), "user-123").Return(nil, nil)

		_, err := s.Refresh(context.Background(), dto.RefreshInput{RefreshToken: "refresh"})
		assert.ErrorIs(t, err, autherror.ErrInvalidToken)
	})

	t.Run("storage error", func(t *testing.T) {
		mockTokens.EXPECT().VerifyRefreshToken("refresh").Return(claims, nil)
		mockRepo.EXPECT().GetByID(gomock.Any(), "user-123").Return(nil, errors.New("db down"))

		_, err := s.Refresh(context.Background(), dto.RefreshInput{RefreshToken: "refresh"})
		assert.Error(t, err)
	})
}
