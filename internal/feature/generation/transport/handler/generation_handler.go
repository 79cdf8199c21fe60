// Package handler provides the HTTP handlers for the generation feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SeraphielSpark/contentcreator/internal/api"
	authusecase "github.com/SeraphielSpark/contentcreator/internal/feature/auth/usecase"
	"github.com/SeraphielSpark/contentcreator/internal/feature/generation/usecase"
	jwtmw "github.com/SeraphielSpark/contentcreator/internal/platform/jwt"
)

// GenerateUsecase defines the generation operations used by this handler.
// Following Go convention, the interface is defined by the consumer (handler).
type GenerateUsecase interface {
	GenerateImage(ctx context.Context, userID uint, req usecase.Request) (*usecase.Result, error)
}

// GenerationHandler handles HTTP requests for image generation.
type GenerationHandler struct {
	uc GenerateUsecase
}

// NewGenerationHandler creates a new GenerationHandler instance.
func NewGenerationHandler(uc GenerateUsecase) *GenerationHandler {
	return &GenerationHandler{uc: uc}
}

// GenerateImage handles POST /generate-image.
//
// Status mapping:
//   - 400 validation failure (missing fields, undecodable reference)
//   - 401 token does not identify an existing user
//   - 403 insufficient credits (checked before the remote call)
//   - 404 reference image missing
//   - 502 endpoint unreachable, or generation blocked by safety policy
//   - 504 upstream timeout
//   - 500 other upstream failures (status logged, not echoed)
func (h *GenerationHandler) GenerateImage(c *gin.Context) {
	userID := c.GetUint(jwtmw.ContextUserID)

	var req api.GenerateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("generate-image validation failed", "error", err, "user_id", userID)
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "reference_filename, theme and look are required"})
		return
	}

	result, err := h.uc.GenerateImage(c.Request.Context(), userID, usecase.Request{
		ReferenceFilename: req.ReferenceFilename,
		Style:             req.Style,
		Category:          req.Category,
		Theme:             req.Theme,
		Look:              req.Look,
		ColorTone:         req.ColorTone,
		Usage:             req.Usage,
		CustomPrompt:      req.CustomPrompt,
	})
	if err != nil {
		h.writeError(c, userID, err)
		return
	}

	slog.Info("image generated", "user_id", userID, "url", result.GeneratedImageURL, "credits_left", result.NewCreditCount)
	c.JSON(http.StatusOK, api.GenerateImageResponse{
		GeneratedImageURL: result.GeneratedImageURL,
		NewCreditCount:    result.NewCreditCount,
	})
}

// writeError translates pipeline failures into the structured error body.
// Nothing upstream-specific beyond the status code reaches the client.
func (h *GenerationHandler) writeError(c *gin.Context, userID uint, err error) {
	var upstream *usecase.UpstreamError
	switch {
	case errors.Is(err, usecase.ErrMissingStyleFields):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Theme and look are required"})
	case errors.Is(err, usecase.ErrInvalidReferenceImage):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Reference file is not a valid image"})
	case errors.Is(err, authusecase.ErrUserNotFound):
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Unknown user"})
	case errors.Is(err, usecase.ErrInsufficientCredits):
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "Not enough credits"})
	case errors.Is(err, usecase.ErrReferenceNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Reference image not found"})
	case errors.Is(err, usecase.ErrPolicyBlocked):
		slog.Warn("generation blocked by safety policy", "user_id", userID, "error", err)
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "Generation blocked by safety policy"})
	case errors.Is(err, usecase.ErrUpstreamTimeout):
		slog.Error("generation timed out", "user_id", userID, "error", err)
		c.JSON(http.StatusGatewayTimeout, api.ErrorResponse{Error: "Generation request timed out"})
	case errors.Is(err, usecase.ErrUpstreamUnreachable):
		slog.Error("generation service unreachable", "user_id", userID, "error", err)
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "Generation service unavailable"})
	case errors.As(err, &upstream):
		slog.Error("generation API failure", "user_id", userID, "status", upstream.StatusCode, "body", upstream.Body)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Generation failed"})
	case errors.Is(err, usecase.ErrEmptyResponse):
		slog.Error("generation returned no image", "user_id", userID, "error", err)
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "Generation returned no image"})
	default:
		slog.Error("generate-image failed", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Generation failed"})
	}
}
