// Package usecase implements the business logic for the history feature.
package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/SeraphielSpark/contentcreator/internal/feature/history/domain/entity"
)

// maxTitleLength is the number of prompt characters kept in the derived title.
const maxTitleLength = 40

// ErrHistoryNotFound is returned when a record does not exist or belongs to
// another user.
var ErrHistoryNotFound = errors.New("history record not found")

// HistoryRepository abstracts persistence for history records.
// Following Go convention, the interface is defined by the consumer (usecase).
type HistoryRepository interface {
	// Create persists a new history record.
	Create(ctx context.Context, rec *entity.HistoryRecord) error

	// ListByUser returns all records owned by the user, newest first.
	ListByUser(ctx context.Context, userID uint) ([]entity.HistoryRecord, error)

	// FindByID returns the record with the given ID, or ErrHistoryNotFound.
	FindByID(ctx context.Context, id uint) (*entity.HistoryRecord, error)
}

// historyUsecase implements the history business logic.
type historyUsecase struct {
	records HistoryRepository
}

// NewHistoryUsecase creates a new historyUsecase instance.
func NewHistoryUsecase(records HistoryRepository) *historyUsecase {
	return &historyUsecase{records: records}
}

// TitleFromPrompt derives the short record title from the prompt text:
// the first 40 characters, with an ellipsis when truncated.
func TitleFromPrompt(prompt string) string {
	runes := []rune(prompt)
	if len(runes) > maxTitleLength {
		return string(runes[:maxTitleLength]) + "..."
	}
	return prompt
}

// Save stores a new record for the user and returns it.
func (u *historyUsecase) Save(ctx context.Context, userID uint, prompt, result string) (*entity.HistoryRecord, error) {
	rec := &entity.HistoryRecord{
		UserID:          userID,
		Title:           TitleFromPrompt(prompt),
		PromptContent:   prompt,
		GeneratedResult: result,
	}
	if err := u.records.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to save history: %w", err)
	}
	return rec, nil
}

// List returns the user's records in reverse chronological order.
func (u *historyUsecase) List(ctx context.Context, userID uint) ([]entity.HistoryRecord, error) {
	return u.records.ListByUser(ctx, userID)
}

// Get returns one record. Records owned by other users are reported as not
// found rather than forbidden, so record IDs cannot be probed.
func (u *historyUsecase) Get(ctx context.Context, userID, id uint) (*entity.HistoryRecord, error) {
	rec, err := u.records.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.UserID != userID {
		return nil, ErrHistoryNotFound
	}
	return rec, nil
}
