// Package handler provides the HTTP handlers for the content feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SeraphielSpark/contentcreator/internal/api"
	"github.com/SeraphielSpark/contentcreator/internal/feature/content/usecase"
	jwtmw "github.com/SeraphielSpark/contentcreator/internal/platform/jwt"
)

// ContentUsecase defines the content operations used by this handler.
// Following Go convention, the interface is defined by the consumer (handler).
type ContentUsecase interface {
	GenerateHashtags(ctx context.Context, userID uint, post string) (string, []string, error)
	Respond(ctx context.Context, userID uint, prompt, chatID string, maxSentences int) (string, string, error)
}

// ContentHandler handles HTTP requests for hashtag and chat generation.
type ContentHandler struct {
	uc ContentUsecase
}

// NewContentHandler creates a new ContentHandler instance.
func NewContentHandler(uc ContentUsecase) *ContentHandler {
	return &ContentHandler{uc: uc}
}

// GenerateHashtags handles POST /generate.
// Auth is optional; authenticated calls are recorded in history.
func (h *ContentHandler) GenerateHashtags(c *gin.Context) {
	var req api.HashtagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("generate validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "No post content provided"})
		return
	}

	userID := c.GetUint(jwtmw.ContextUserID)
	result, tags, err := h.uc.GenerateHashtags(c.Request.Context(), userID, req.Post)
	if err != nil {
		writeContentError(c, userID, err, "No post content provided", "Hashtag generation failed")
		return
	}
	c.JSON(http.StatusOK, api.HashtagResponse{Result: result, Hashtags: tags})
}

// Respond handles POST /respond.
func (h *ContentHandler) Respond(c *gin.Context) {
	var req api.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("respond validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "No prompt content provided"})
		return
	}

	userID := c.GetUint(jwtmw.ContextUserID)
	result, chatID, err := h.uc.Respond(c.Request.Context(), userID, req.Prompt, req.ChatID, req.MaxSentences)
	if err != nil {
		writeContentError(c, userID, err, "No prompt content provided", "Chat response failed")
		return
	}
	c.JSON(http.StatusOK, api.ChatResponse{Result: result, Meta: api.ChatMeta{ChatID: chatID}})
}

// writeContentError translates generation failures into the structured error
// body. Blank input that slipped past binding is a 400; upstream trouble keeps
// its gateway status instead of collapsing into 500.
func writeContentError(c *gin.Context, userID uint, err error, emptyMsg, failMsg string) {
	switch {
	case errors.Is(err, usecase.ErrEmptyPost), errors.Is(err, usecase.ErrEmptyPrompt):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: emptyMsg})
	case errors.Is(err, usecase.ErrUpstreamTimeout):
		slog.Error("text generation timed out", "error", err, "user_id", userID)
		c.JSON(http.StatusGatewayTimeout, api.ErrorResponse{Error: "Generation request timed out"})
	case errors.Is(err, usecase.ErrUpstreamUnreachable):
		slog.Error("text generation service unreachable", "error", err, "user_id", userID)
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "Generation service unavailable"})
	default:
		slog.Error("text generation failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: failMsg})
	}
}
