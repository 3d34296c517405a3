package services

import (
	"context"
	"errors"
	"strings"

	"github.com/emrekrt/placementhub/internal/app/models"
	"github.com/emrekrt/placementhub/internal/app/models/dto"
	"github.com/emrekrt/placementhub/internal/pkg/apperrors"
	"github.com/emrekrt/placementhub/internal/pkg/auth"
	"github.com/emrekrt/placementhub/internal/pkg/logger"
	"github.com/emrekrt/placementhub/internal/pkg/validation"
)

// AuthService defines the authentication operations
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
}

type authService struct {
	userStore  UserStore
	tokenStore TokenStore
	jwtService *auth.JWTService
}

// NewAuthService creates a new AuthService
func NewAuthService(userStore UserStore, tokenStore TokenStore, jwtService *auth.JWTService) AuthService {
	return &authService{
		userStore:  userStore,
		tokenStore: tokenStore,
		jwtService: jwtService,
	}
}

// Register creates a new account and signs it in
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !validation.IsValidEmail(email) {
		return nil, apperrors.NewValidationError("invalid email address")
	}
	if !validation.IsValidPassword(req.Password) {
		return nil, apperrors.NewValidationError("password must be at least 8 characters")
	}
	if !validation.IsValidName(req.FirstName) || !validation.IsValidName(req.LastName) {
		return nil, apperrors.NewValidationError("first and last name must be between 2 and 100 characters")
	}
	if strings.TrimSpace(req.Department) == "" {
		return nil, apperrors.NewValidationError("department is required")
	}
	// Officer accounts are provisioned by the seed, never self-registered;
	// otherwise anyone could grant themselves the all-drives manage role.
	if req.RoleType != models.RoleStudent && req.RoleType != models.RolePlacementRep {
		return nil, apperrors.NewForbiddenError("this role cannot be self-registered")
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to hash password")
		return nil, err
	}

	user := &models.User{
		Email:      email,
		Password:   hashed,
		FirstName:  strings.TrimSpace(req.FirstName),
		LastName:   strings.TrimSpace(req.LastName),
		RoleType:   req.RoleType,
		Department: strings.TrimSpace(req.Department),
		IsActive:   true,
	}

	userID, err := s.userStore.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = userID

	logger.Info().
		Int64("userId", userID).
		Str("role", string(user.RoleType)).
		Msg("User registered")

	return s.issueTokens(ctx, user)
}

// Login authenticates a user by email and password
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userStore.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			// Same response as a wrong password so the endpoint does not
			// reveal which accounts exist.
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := s.userStore.UpdateLastLogin(ctx, user.ID); err != nil {
		logger.Warn().Err(err).Int64("userId", user.ID).Msg("Failed to update last login time")
	}

	return s.issueTokens(ctx, user)
}

// RefreshToken exchanges a valid refresh token for a new token pair.
// The presented token is revoked so each refresh token is single use.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	userID, err := s.tokenStore.GetTokenUser(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userStore.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.tokenStore.RevokeToken(ctx, refreshToken); err != nil {
		logger.Warn().Err(err).Int64("userId", userID).Msg("Failed to revoke used refresh token")
	}

	resp, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}
	return &resp.Token, nil
}

// Logout revokes the refresh token
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	return s.tokenStore.RevokeToken(ctx, refreshToken)
}

func (s *authService) issueTokens(ctx context.Context, user *models.User) (*dto.AuthResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		logger.Error().Err(err).Int64("userId", user.ID).Msg("Failed to generate token pair")
		return nil, err
	}

	if err := s.tokenStore.CreateToken(ctx, refreshToken, user.ID, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		logger.Error().Err(err).Int64("userId", user.ID).Msg("Failed to persist refresh token")
		return nil, err
	}

	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken:           accessToken,
			TokenType:             "Bearer",
			ExpiresIn:             int64(expiresIn),
			RefreshToken:          refreshToken,
			RefreshTokenExpiresIn: int64(refreshExpiresIn),
		},
		User: dto.FromUser(user),
	}, nil
}
