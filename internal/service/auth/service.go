package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/ujoors/payroll-backend-go/internal/domain/auth"
	"github.com/ujoors/payroll-backend-go/internal/domain/user"
	"github.com/ujoors/payroll-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	userRepo user.UserRepository
	jwt      jwt.Service
}

func NewAuthService(userRepo user.UserRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		userRepo: userRepo,
		jwt:      jwtService,
	}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	userData, err := a.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if userData.PasswordHash == nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	var tokenResponse auth.TokenResponse
	tokenResponse.AccessToken, tokenResponse.AccessTokenExpiresIn, err = a.jwt.GenerateAccessToken(
		userData.ID, userData.Email, userData.EmployeeID, userData.CompanyID, userData.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}
	tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, err = a.jwt.GenerateRefreshToken(userData.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create refresh token: %w", err)
	}

	return tokenResponse, nil
}

// RefreshToken implements auth.AuthService.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.AccessTokenResponse{}, err
	}

	if a.jwt.IsTokenRevoked(req.RefreshToken) {
		return auth.AccessTokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	token, err := a.jwt.JWTAuth().Decode(req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != "refresh" {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}
	userIDVal, ok := token.Get("user_id")
	if !ok {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}
	userID, ok := userIDVal.(string)
	if !ok {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	userData, err := a.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.AccessTokenResponse{}, auth.ErrUserNotFound
		}
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	var resp auth.AccessTokenResponse
	resp.AccessToken, resp.AccessTokenExpiresIn, err = a.jwt.GenerateAccessToken(
		userData.ID, userData.Email, userData.EmployeeID, userData.CompanyID, userData.Role)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	return resp, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, req auth.RefreshTokenRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	a.jwt.RevokeToken(req.RefreshToken)
	return nil
}
