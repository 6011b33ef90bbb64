package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/ujoors/payroll-backend-go/internal/domain/auth"
	"github.com/ujoors/payroll-backend-go/internal/handler/http/response"
	"github.com/ujoors/payroll-backend-go/internal/pkg/jwt"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	RefreshToken(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	jwtService  jwt.Service
	authService auth.AuthService
}

func NewAuthHandler(jwtService jwt.Service, authService auth.AuthService) AuthHandler {
	return &AuthHandlerImpl{
		jwtService:  jwtService,
		authService: authService,
	}
}

// Login implements AuthHandler.
func (a *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq auth.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	tokenResponse, err := a.authService.Login(r.Context(), loginReq)
	if err != nil {
		slog.Error("Login service error", "error", err)
		response.HandleError(w, err)
		return
	}

	// Refresh token also travels as an HTTP-only cookie.
	http.SetCookie(w, a.jwtService.RefreshTokenCookie(tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn))

	response.Success(w, tokenResponse)
}

// RefreshToken implements AuthHandler.
func (a *AuthHandlerImpl) RefreshToken(w http.ResponseWriter, r *http.Request) {
	refreshReq := a.refreshRequestFrom(r)

	result, err := a.authService.RefreshToken(r.Context(), refreshReq)
	if err != nil {
		slog.Error("RefreshToken service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Logout implements AuthHandler.
func (a *AuthHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	refreshReq := a.refreshRequestFrom(r)

	if err := a.authService.Logout(r.Context(), refreshReq); err != nil {
		response.HandleError(w, err)
		return
	}

	// Expire the cookie
	http.SetCookie(w, a.jwtService.RefreshTokenCookie("", 0))

	response.SuccessWithMessage(w, "Logged out", nil)
}

// refreshRequestFrom reads the refresh token from the cookie, falling back
// to the JSON body for non-browser clients.
func (a *AuthHandlerImpl) refreshRequestFrom(r *http.Request) auth.RefreshTokenRequest {
	if cookie, err := r.Cookie("refresh_token"); err == nil && cookie.Value != "" {
		return auth.RefreshTokenRequest{RefreshToken: cookie.Value}
	}

	var req auth.RefreshTokenRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	return req
}
