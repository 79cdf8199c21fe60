// Package handler provides the HTTP handlers for the history feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SeraphielSpark/contentcreator/internal/api"
	"github.com/SeraphielSpark/contentcreator/internal/feature/history/domain/entity"
	"github.com/SeraphielSpark/contentcreator/internal/feature/history/usecase"
	jwtmw "github.com/SeraphielSpark/contentcreator/internal/platform/jwt"
)

// HistoryUsecase defines the history operations used by this handler.
// Following Go convention, the interface is defined by the consumer (handler).
type HistoryUsecase interface {
	Save(ctx context.Context, userID uint, prompt, result string) (*entity.HistoryRecord, error)
	List(ctx context.Context, userID uint) ([]entity.HistoryRecord, error)
	Get(ctx context.Context, userID, id uint) (*entity.HistoryRecord, error)
}

// HistoryHandler handles HTTP requests for history records.
type HistoryHandler struct {
	uc HistoryUsecase
}

// NewHistoryHandler creates a new HistoryHandler instance.
func NewHistoryHandler(uc HistoryUsecase) *HistoryHandler {
	return &HistoryHandler{uc: uc}
}

// toItem converts a history entity into its API representation.
func toItem(rec *entity.HistoryRecord) api.HistoryItemResponse {
	return api.HistoryItemResponse{
		ID:              rec.ID,
		Title:           rec.Title,
		PromptContent:   rec.PromptContent,
		GeneratedResult: rec.GeneratedResult,
		Timestamp:       rec.CreatedAt.Format(time.RFC3339),
	}
}

// List handles GET /api/history. Records are returned newest first.
func (h *HistoryHandler) List(c *gin.Context) {
	userID := c.GetUint(jwtmw.ContextUserID)
	recs, err := h.uc.List(c.Request.Context(), userID)
	if err != nil {
		slog.Error("history list failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to load history"})
		return
	}
	out := make([]api.HistoryItemResponse, 0, len(recs))
	for i := range recs {
		out = append(out, toItem(&recs[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Save handles POST /api/history.
func (h *HistoryHandler) Save(c *gin.Context) {
	userID := c.GetUint(jwtmw.ContextUserID)
	var req api.SaveHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("history save validation failed", "error", err, "user_id", userID)
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Prompt and result required"})
		return
	}
	rec, err := h.uc.Save(c.Request.Context(), userID, req.Prompt, req.Result)
	if err != nil {
		slog.Error("history save failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to save history"})
		return
	}
	c.JSON(http.StatusCreated, api.SaveHistoryResponse{Message: "History saved", HistoryID: rec.ID})
}

// Get handles GET /api/history/:id.
func (h *HistoryHandler) Get(c *gin.Context) {
	userID := c.GetUint(jwtmw.ContextUserID)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid history id"})
		return
	}
	rec, err := h.uc.Get(c.Request.Context(), userID, uint(id))
	if err != nil {
		if errors.Is(err, usecase.ErrHistoryNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "History record not found"})
			return
		}
		slog.Error("history get failed", "error", err, "user_id", userID, "history_id", id)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to load history"})
		return
	}
	c.JSON(http.StatusOK, toItem(rec))
}
