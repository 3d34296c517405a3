package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/emrekrt/placementhub/internal/app/models"
	"github.com/emrekrt/placementhub/internal/app/models/dto"
	"github.com/emrekrt/placementhub/internal/pkg/apperrors"
	"github.com/emrekrt/placementhub/internal/pkg/auth"
)

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret-key",
		AccessTokenExp:  15 * time.Minute,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "placementhub.test",
	})
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the account and signs it in", func(t *testing.T) {
		userStore := new(mockUserStore)
		tokenStore := new(mockTokenStore)
		svc := NewAuthService(userStore, tokenStore, testJWTService())

		userStore.On("CreateUser", ctx, mock.MatchedBy(func(u *models.User) bool {
			return u.Email == "ravi@campus.edu" &&
				u.RoleType == models.RoleStudent &&
				u.IsActive &&
				u.Password != "hunter2secret"
		})).Return(int64(5), nil)
		tokenStore.On("CreateToken", ctx, mock.AnythingOfType("string"), int64(5), mock.AnythingOfType("time.Time")).Return(nil)

		resp, err := svc.Register(ctx, &dto.RegisterRequest{
			Email:      " Ravi@Campus.edu ",
			Password:   "hunter2secret",
			FirstName:  "Ravi",
			LastName:   "Kumar",
			RoleType:   models.RoleStudent,
			Department: "CSE",
		})

		require.NoError(t, err)
		assert.Equal(t, int64(5), resp.User.ID)
		assert.NotEmpty(t, resp.Token.AccessToken)
		assert.NotEmpty(t, resp.Token.RefreshToken)
		assert.Equal(t, "Bearer", resp.Token.TokenType)
		userStore.AssertExpectations(t)
		tokenStore.AssertExpectations(t)
	})

	t.Run("rejects short password", func(t *testing.T) {
		svc := NewAuthService(new(mockUserStore), new(mockTokenStore), testJWTService())

		_, err := svc.Register(ctx, &dto.RegisterRequest{
			Email:      "ravi@campus.edu",
			Password:   "short",
			FirstName:  "Ravi",
			LastName:   "Kumar",
			RoleType:   models.RoleStudent,
			Department: "CSE",
		})

		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("officer accounts cannot be self-registered", func(t *testing.T) {
		userStore := new(mockUserStore)
		svc := NewAuthService(userStore, new(mockTokenStore), testJWTService())

		_, err := svc.Register(ctx, &dto.RegisterRequest{
			Email:      "mallory@campus.edu",
			Password:   "hunter2secret",
			FirstName:  "Mallory",
			LastName:   "Iyer",
			RoleType:   models.RolePlacementOfficer,
			Department: "CSE",
		})

		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
		userStore.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		svc := NewAuthService(new(mockUserStore), new(mockTokenStore), testJWTService())

		_, err := svc.Register(ctx, &dto.RegisterRequest{
			Email:      "not-an-email",
			Password:   "hunter2secret",
			FirstName:  "Ravi",
			LastName:   "Kumar",
			RoleType:   models.RoleStudent,
			Department: "CSE",
		})

		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	hashed, err := auth.HashPassword("hunter2secret")
	require.NoError(t, err)

	activeUser := func() *models.User {
		return &models.User{
			ID:       5,
			Email:    "ravi@campus.edu",
			Password: hashed,
			RoleType: models.RoleStudent,
			IsActive: true,
		}
	}

	t.Run("valid credentials sign in", func(t *testing.T) {
		userStore := new(mockUserStore)
		tokenStore := new(mockTokenStore)
		svc := NewAuthService(userStore, tokenStore, testJWTService())

		userStore.On("GetUserByEmail", ctx, "ravi@campus.edu").Return(activeUser(), nil)
		userStore.On("UpdateLastLogin", ctx, int64(5)).Return(nil)
		tokenStore.On("CreateToken", ctx, mock.AnythingOfType("string"), int64(5), mock.AnythingOfType("time.Time")).Return(nil)

		resp, err := svc.Login(ctx, &dto.LoginRequest{Email: "Ravi@Campus.edu", Password: "hunter2secret"})

		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token.AccessToken)
	})

	t.Run("wrong password and unknown email read the same", func(t *testing.T) {
		userStore := new(mockUserStore)
		svc := NewAuthService(userStore, new(mockTokenStore), testJWTService())

		userStore.On("GetUserByEmail", ctx, "ravi@campus.edu").Return(activeUser(), nil)
		userStore.On("GetUserByEmail", ctx, "ghost@campus.edu").Return(nil, apperrors.ErrUserNotFound)

		_, wrongPass := svc.Login(ctx, &dto.LoginRequest{Email: "ravi@campus.edu", Password: "wrong-password"})
		_, unknown := svc.Login(ctx, &dto.LoginRequest{Email: "ghost@campus.edu", Password: "hunter2secret"})

		assert.ErrorIs(t, wrongPass, apperrors.ErrInvalidCredentials)
		assert.ErrorIs(t, unknown, apperrors.ErrInvalidCredentials)
	})

	t.Run("disabled account is refused", func(t *testing.T) {
		userStore := new(mockUserStore)
		svc := NewAuthService(userStore, new(mockTokenStore), testJWTService())

		disabled := activeUser()
		disabled.IsActive = false
		userStore.On("GetUserByEmail", ctx, "ravi@campus.edu").Return(disabled, nil)

		_, err := svc.Login(ctx, &dto.LoginRequest{Email: "ravi@campus.edu", Password: "hunter2secret"})

		assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
	})
}

func TestRefreshToken(t *testing.T) {
	ctx := context.Background()

	t.Run("rotates the refresh token", func(t *testing.T) {
		userStore := new(mockUserStore)
		tokenStore := new(mockTokenStore)
		svc := NewAuthService(userStore, tokenStore, testJWTService())

		tokenStore.On("GetTokenUser", ctx, "old-refresh-token").Return(int64(5), nil)
		userStore.On("GetUserByID", ctx, int64(5)).Return(&models.User{
			ID: 5, Email: "ravi@campus.edu", RoleType: models.RoleStudent, IsActive: true,
		}, nil)
		tokenStore.On("RevokeToken", ctx, "old-refresh-token").Return(nil)
		tokenStore.On("CreateToken", ctx, mock.AnythingOfType("string"), int64(5), mock.AnythingOfType("time.Time")).Return(nil)

		resp, err := svc.RefreshToken(ctx, "old-refresh-token")

		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEqual(t, "old-refresh-token", resp.RefreshToken)
		tokenStore.AssertExpectations(t)
	})

	t.Run("unknown token is rejected", func(t *testing.T) {
		tokenStore := new(mockTokenStore)
		svc := NewAuthService(new(mockUserStore), tokenStore, testJWTService())

		tokenStore.On("GetTokenUser", ctx, "bogus").Return(int64(0), apperrors.ErrTokenNotFound)

		_, err := svc.RefreshToken(ctx, "bogus")

		assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()

	tokenStore := new(mockTokenStore)
	svc := NewAuthService(new(mockUserStore), tokenStore, testJWTService())

	tokenStore.On("RevokeToken", ctx, "refresh-token").Return(nil)

	require.NoError(t, svc.Logout(ctx, "refresh-token"))
	tokenStore.AssertExpectations(t)
}
