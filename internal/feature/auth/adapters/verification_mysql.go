package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SeraphielSpark/contentcreator/internal/feature/auth/domain/entity"
	"github.com/SeraphielSpark/contentcreator/internal/feature/auth/usecase"
)

// verificationMySQL is the MySQL implementation of the VerificationRepository interface.
type verificationMySQL struct {
	db *gorm.DB
}

// Compile-time check that verificationMySQL implements VerificationRepository.
var _ usecase.VerificationRepository = (*verificationMySQL)(nil)

// NewVerificationMySQL creates a new verificationMySQL instance.
func NewVerificationMySQL(db *gorm.DB) *verificationMySQL {
	return &verificationMySQL{db: db}
}

// Upsert stores the pending verification for its user. A row already present
// for the same user is replaced, which supersedes the previous code.
func (r *verificationMySQL) Upsert(ctx context.Context, pv *entity.PendingVerification) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"code_hash", "expires_at", "created_at"}),
	}).Create(pv).Error
}

// FindByUserID fetches the pending verification for a user.
// It returns usecase.ErrVerificationNotFound when none exists.
func (r *verificationMySQL) FindByUserID(ctx context.Context, userID uint) (*entity.PendingVerification, error) {
	var pv entity.PendingVerification
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&pv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrVerificationNotFound
		}
		return nil, err
	}
	return &pv, nil
}

// Delete removes the pending verification for a user.
func (r *verificationMySQL) Delete(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&entity.PendingVerification{}).Error
}
