package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/storyverse/story-service/internal/auth/domain"
	"github.com/storyverse/story-service/internal/auth/dto"
	"github.com/storyverse/story-service/internal/auth/handler"
	"github.com/storyverse/story-service/internal/auth/service"
	autherror "github.com/storyverse/story-service/internal/errors"
	"github.com/storyverse/story-service/internal/logging"
	"github.com/storyverse/story-service/internal/middleware"
	"github.com/storyverse/story-service/internal/mocks"
)

func newAuthApp(t *testing.T, repo domain.UserRepository) *fiber.App {
	t.Helper()

	tokenService := service.NewTokenService("access-secret", "refresh-secret", 15, 10080)
	userService := service.NewUserService(repo, tokenService)
	authHandler := handler.NewAuthHandler(userService, logging.Discard())
	guard := middleware.NewGuard(tokenService, repo)

	app := fiber.New()
	handler.RegisterRoutes(app, authHandler, guard)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, payload any) (int, []byte) {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(fiber.MethodPost, path, bytes.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, buf.Bytes()
}

func TestRegister(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockUserRepository(ctrl)
	app := newAuthApp(t, mockRepo)

	t.Run("success returns tokens and username", func(t *testing.T) {
		mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		code, body := postJSON(t, app, "/api/register", dto.RegisterInput{Username: "alice", Email: "a@x.com", Password: "pw1"})
		assert.Equal(t, fiber.StatusCreated, code)

		var out dto.RegisterOutput
		require.NoError(t, json.Unmarshal(body, &out))
		assert.Equal(t, "alice", out.Username)
		assert.NotEmpty(t, out.Tokens.AccessToken)
		assert.NotEmpty(t, out.Tokens.RefreshToken)
	})

	t.Run("missing field", func(t *testing.T) {
		code, body := postJSON(t, app, "/api/register", dto.RegisterInput{Username: "alice", Password: "pw1"})
		assert.Equal(t, fiber.StatusBadRequest, code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(body, &resp))
		assert.Equal(t, "validation_error", resp["kind"])
	})

	t.Run("username taken", func(t *testing.T) {
		mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(autherror.ErrUsernameTaken)

		code, body := postJSON(t, app, "/api/register", dto.RegisterInput{Username: "alice", Email: "a@x.com", Password: "pw1"})
		assert.Equal(t, fiber.StatusBadRequest, code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(body, &resp))
		assert.Equal(t, "conflict_error", resp["kind"])
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(fiber.MethodPost, "/api/register", bytes.NewReader([]byte("{")))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("storage failure hides details", func(t *testing.T) {
		mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))

		code, body := postJSON(t, app, "/api/register", dto.RegisterInput{Username: "alice", Email: "a@x.com", Password: "pw1"})
		assert.Equal(t, fiber.StatusInternalServerError, code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(body, &resp))
		assert.Equal(t, "internal server error", resp["error"])
	})
}

func TestLogin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockUserRepository(ctrl)
	app := newAuthApp(t, mockRepo)

	hash, err := bcrypt.GenerateFromPassword([]byte("pw1"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &domain.User{ID: "user-123", Username: "alice", PasswordHash: string(hash)}

	t.Run("success", func(t *testing.T) {
		mockRepo.EXPECT().GetByUsername(gomock.Any(), "alice").Return(user, nil)

		code, body := postJSON(t, app, "/api/login", dto.LoginInput{Username: "alice", Password: "pw1"})
		assert.Equal(t, fiber.StatusOK, code)

		var tokens dto.TokenResponse
		require.NoError(t, json.Unmarshal(body, &tokens))
		assert.NotEmpty(t, tokens.AccessToken)
	})

	t.Run("bad credentials", func(t *testing.T) {
		mockRepo.EXPECT().GetByUsername(gomock.Any(), "alice").Return(user, nil)

		code, _ := postJSON(t, app, "/api/login", dto.LoginInput{Username: "alice", Password: "wrong"})
		assert.Equal(t, fiber.StatusUnauthorized, code)
	})
}

func TestRefresh(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockUserRepository(ctrl)
	app := newAuthApp(t, mockRepo)

	tokenService := service.NewTokenService("access-secret", "refresh-secret", 15, 10080)
	_, refreshToken, err := tokenService.Generate("user-123", "alice")
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		mockRepo.EXPECT().GetByID(gomock.Any(), "user-123").Return(&domain.User{ID: "user-123", Username: "alice"}, nil)

		code, body := postJSON(t, app, "/api/token/refresh", dto.RefreshInput{RefreshToken: refreshToken})
		assert.Equal(t, fiber.StatusOK, code)

		var tokens dto.TokenResponse
		require.NoError(t, json.Unmarshal(body, &tokens))
		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEmpty(t, tokens.RefreshToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		code, _ := postJSON(t, app, "/api/token/refresh", dto.RefreshInput{RefreshToken: "garbage"})
		assert.Equal(t, fiber.StatusUnauthorized, code)
	})

	t.Run("access token is not a refresh token", func(t *testing.T) {
		accessToken, _, err := tokenService.Generate("user-123", "alice")
		require.NoError(t, err)

		code, _ := postJSON(t, app, "/api/token/refresh", dto.RefreshInput{RefreshToken: accessToken})
		assert.Equal(t, fiber.StatusUnauthorized, code)
	})
}
