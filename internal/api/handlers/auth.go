package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/quarzen/tradebook/internal/api/auth"
	"github.com/quarzen/tradebook/internal/api/middleware"
	"github.com/quarzen/tradebook/internal/logger"
	"github.com/quarzen/tradebook/internal/telemetry"
	"github.com/quarzen/tradebook/pkg/journal/models"
	"github.com/quarzen/tradebook/pkg/journal/store"
)

// MinPasswordLength is the minimum accepted password length for signup
// and password changes.
const MinPasswordLength = 8

// AuthHandler handles authentication-related API endpoints.
type AuthHandler struct {
	store      store.Store
	jwtService *auth.JWTService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(s store.Store, jwtService *auth.JWTService) *AuthHandler {
	return &AuthHandler{
		store:      s,
		jwtService: jwtService,
	}
}

// SignupRequest is the request body for POST /api/v1/auth/signup.
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

// LoginRequest is the request body for POST /api/v1/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the response body for login, signup and refresh.
type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int64        `json:"expires_in"`
	ExpiresAt    time.Time    `json:"expires_at"`
	User         UserResponse `json:"user"`
}

// UserResponse is a sanitized user representation for API responses.
type UserResponse struct {
	ID        uint       `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

// RefreshRequest is the request body for POST /api/v1/auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Signup handles POST /api/v1/auth/signup.
// Creates an account and returns a JWT token pair so the client is logged
// in immediately.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if req.Username == "" {
		BadRequest(w, "Username is required")
		return
	}
	if len(req.Password) < MinPasswordLength {
		UnprocessableEntity(w, "Password must be at least 8 characters")
		return
	}

	ctx, span := telemetry.StartSpan(r.Context(), telemetry.SpanAuthSignup)
	defer span.End()
	span.SetAttributes(telemetry.Username(req.Username))

	user, err := h.store.CreateUser(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, models.ErrDuplicateUser) {
			Conflict(w, "Username is already taken")
			return
		}
		telemetry.RecordError(ctx, err)
		InternalServerError(w, "Failed to create user")
		return
	}

	tokenPair, err := h.jwtService.GenerateTokenPair(user)
	if err != nil {
		InternalServerError(w, "Failed to generate token")
		return
	}

	WriteJSONCreated(w, h.loginResponse(tokenPair, user))
}

// Login handles POST /api/v1/auth/login.
// Authenticates user credentials and returns a JWT token pair.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if req.Username == "" || req.Password == "" {
		BadRequest(w, "Username and password are required")
		return
	}

	ctx, span := telemetry.StartSpan(r.Context(), telemetry.SpanAuthLogin)
	defer span.End()
	span.SetAttributes(telemetry.Username(req.Username))
	r = r.WithContext(ctx)

	user, err := h.store.ValidateCredentials(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			Unauthorized(w, "Invalid username or password")
			return
		}
		telemetry.RecordError(ctx, err)
		InternalServerError(w, "Authentication failed")
		return
	}

	tokenPair, err := h.jwtService.GenerateTokenPair(user)
	if err != nil {
		InternalServerError(w, "Failed to generate token")
		return
	}

	// Update last login time (non-critical, log error for debugging)
	if err := h.store.UpdateLastLogin(r.Context(), user.Username, time.Now()); err != nil {
		logger.WarnCtx(r.Context(), "failed to update last login time",
			logger.KeyUsername, user.Username, logger.KeyError, err)
	}

	WriteJSONOK(w, h.loginResponse(tokenPair, user))
}

// Refresh handles POST /api/v1/auth/refresh.
// Returns a new token pair using a valid refresh token.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if req.RefreshToken == "" {
		BadRequest(w, "Refresh token is required")
		return
	}

	ctx, span := telemetry.StartSpan(r.Context(), telemetry.SpanAuthRefresh)
	defer span.End()

	claims, err := h.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			Unauthorized(w, "Refresh token has expired")
			return
		}
		Unauthorized(w, "Invalid refresh token")
		return
	}
	span.SetAttributes(telemetry.Username(claims.Username))

	// Fetch fresh user data
	user, err := h.store.GetUser(ctx, claims.Username)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			Unauthorized(w, "User not found")
			return
		}
		InternalServerError(w, "Failed to fetch user")
		return
	}

	tokenPair, err := h.jwtService.GenerateTokenPair(user)
	if err != nil {
		InternalServerError(w, "Failed to generate token")
		return
	}

	WriteJSONOK(w, h.loginResponse(tokenPair, user))
}

// Me handles GET /api/v1/auth/me.
// Returns the current authenticated user's information.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaimsFromContext(r.Context())
	if claims == nil {
		Unauthorized(w, "Authentication required")
		return
	}

	user, err := h.store.GetUser(r.Context(), claims.Username)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			Unauthorized(w, "User not found")
			return
		}
		InternalServerError(w, "Failed to fetch user")
		return
	}

	WriteJSONOK(w, userToResponse(user))
}

func (h *AuthHandler) loginResponse(tokenPair *auth.TokenPair, user *models.User) LoginResponse {
	return LoginResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		TokenType:    tokenPair.TokenType,
		ExpiresIn:    tokenPair.ExpiresIn,
		ExpiresAt:    tokenPair.ExpiresAt,
		User:         userToResponse(user),
	}
}

// userToResponse converts a User to a UserResponse for API output.
func userToResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		LastLogin: user.LastLogin,
	}
}
