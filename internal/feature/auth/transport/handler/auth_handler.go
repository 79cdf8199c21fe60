// Package handler provides the HTTP handlers for the auth feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SeraphielSpark/contentcreator/internal/api"
	"github.com/SeraphielSpark/contentcreator/internal/feature/auth/domain/entity"
	"github.com/SeraphielSpark/contentcreator/internal/feature/auth/usecase"
)

// AuthUsecase defines the authentication operations used by this handler.
// Following Go convention, the interface is defined by the consumer (handler),
// not the provider (usecase).
type AuthUsecase interface {
	// Register creates a new user and returns a signed token with the stored user.
	Register(ctx context.Context, email, password string) (string, *entity.User, error)
	// Login authenticates a user and returns a JWT token on success.
	Login(ctx context.Context, email, password string) (string, *entity.User, error)
	// Verify consumes a pending verification code for the account.
	Verify(ctx context.Context, email, code string) error
	// ResendCode issues a fresh verification code.
	ResendCode(ctx context.Context, email string) error
}

// AuthHandler handles HTTP requests for authentication operations.
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// userSummary converts a user entity into its public representation.
func userSummary(u *entity.User) api.UserSummary {
	return api.UserSummary{
		ID:       u.ID,
		Email:    u.Email,
		Plan:     u.Plan,
		Credits:  u.Credits,
		Verified: u.Verified,
	}
}

// Register handles POST /auth/register.
// - 400 on validation errors (missing fields, short password)
// - 409 on duplicate email
// - 201 with token and user summary on success
func (h *AuthHandler) Register(c *gin.Context) {
	var req api.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Email and password required"})
		return
	}
	token, user, err := h.auth.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrEmailAlreadyExists) {
			slog.Warn("register rejected: duplicate email", "email", req.Email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Email already exists"})
			return
		}
		slog.Error("register failed", "error", err, "email", req.Email)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Registration failed"})
		return
	}
	slog.Info("user registered", "user_id", user.ID, "email", user.Email)
	c.JSON(http.StatusCreated, api.AuthResponse{Token: token, User: userSummary(user)})
}

// Login handles POST /auth/login.
// - 400 on validation errors
// - 401 on invalid credentials
// - 200 with token and user summary on success
func (h *AuthHandler) Login(c *gin.Context) {
	var req api.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Email and password required"})
		return
	}
	token, user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// Do not distinguish unknown accounts from wrong passwords.
		slog.Warn("login failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Invalid credentials"})
		return
	}
	slog.Info("user login successful", "user_id", user.ID, "email", user.Email)
	c.JSON(http.StatusOK, api.AuthResponse{Token: token, User: userSummary(user)})
}

// Verify handles POST /auth/verify.
func (h *AuthHandler) Verify(c *gin.Context) {
	var req api.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("verify validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Email and code required"})
		return
	}
	if err := h.auth.Verify(c.Request.Context(), req.Email, req.Code); err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "User not found"})
		case errors.Is(err, usecase.ErrCodeExpired):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Verification code has expired"})
		case errors.Is(err, usecase.ErrInvalidCode), errors.Is(err, usecase.ErrVerificationNotFound):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid verification code"})
		case errors.Is(err, usecase.ErrAlreadyVerified):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Account is already verified"})
		default:
			slog.Error("verify failed", "error", err, "email", req.Email)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Verification failed"})
		}
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Account verified"})
}

// ResendCode handles POST /auth/resend-code.
func (h *AuthHandler) ResendCode(c *gin.Context) {
	var req api.ResendCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("resend-code validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Email required"})
		return
	}
	if err := h.auth.ResendCode(c.Request.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "User not found"})
		case errors.Is(err, usecase.ErrAlreadyVerified):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Account is already verified"})
		default:
			slog.Error("resend-code failed", "error", err, "email", req.Email)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Could not send verification code"})
		}
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Verification code sent"})
}
