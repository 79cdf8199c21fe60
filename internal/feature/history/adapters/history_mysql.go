// Package adapters provides the repository implementations for the history feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/SeraphielSpark/contentcreator/internal/feature/history/domain/entity"
	"github.com/SeraphielSpark/contentcreator/internal/feature/history/usecase"
)

// historyMySQL is the MySQL implementation of the HistoryRepository interface.
type historyMySQL struct {
	db *gorm.DB
}

// Compile-time check that historyMySQL implements HistoryRepository.
var _ usecase.HistoryRepository = (*historyMySQL)(nil)

// NewHistoryMySQL creates a new historyMySQL instance.
func NewHistoryMySQL(db *gorm.DB) *historyMySQL {
	return &historyMySQL{db: db}
}

// Create adds a history record to the database.
func (r *historyMySQL) Create(ctx context.Context, rec *entity.HistoryRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

// ListByUser returns all records owned by the user, newest first.
func (r *historyMySQL) ListByUser(ctx context.Context, userID uint) ([]entity.HistoryRecord, error) {
	recs := make([]entity.HistoryRecord, 0)
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return recs, nil
}

// FindByID fetches a record by ID.
// It returns usecase.ErrHistoryNotFound when no record exists.
func (r *historyMySQL) FindByID(ctx context.Context, id uint) (*entity.HistoryRecord, error) {
	var rec entity.HistoryRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrHistoryNotFound
		}
		return nil, err
	}
	return &rec, nil
}
