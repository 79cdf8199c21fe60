// Package adapters provides the persistence implementations for the generation feature.
package adapters

import (
	"context"

	"gorm.io/gorm"

	authentity "github.com/SeraphielSpark/contentcreator/internal/feature/auth/domain/entity"
	"github.com/SeraphielSpark/contentcreator/internal/feature/generation/usecase"
	histentity "github.com/SeraphielSpark/contentcreator/internal/feature/history/domain/entity"
	histusecase "github.com/SeraphielSpark/contentcreator/internal/feature/history/usecase"
)

// ledgerMySQL implements the CreditLedger interface over the users and
// history tables.
type ledgerMySQL struct {
	db *gorm.DB
}

// Compile-time check that ledgerMySQL implements CreditLedger.
var _ usecase.CreditLedger = (*ledgerMySQL)(nil)

// NewLedgerMySQL creates a new ledgerMySQL instance.
func NewLedgerMySQL(db *gorm.DB) *ledgerMySQL {
	return &ledgerMySQL{db: db}
}

// RecordGeneration debits the user and inserts the history record in one
// transaction. The debit is a single conditional UPDATE guarded by the
// balance, so two concurrent requests cannot interleave a check-then-write
// and drive the balance negative: the second one simply affects zero rows
// and the whole transaction rolls back.
func (r *ledgerMySQL) RecordGeneration(ctx context.Context, userID uint, cost int64, prompt, resultURL string) (int64, error) {
	var newBalance int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&authentity.User{}).
			Where("id = ? AND credits >= ?", userID, cost).
			UpdateColumn("credits", gorm.Expr("credits - ?", cost))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrInsufficientCredits
		}

		rec := &histentity.HistoryRecord{
			UserID:          userID,
			Title:           histusecase.TitleFromPrompt(prompt),
			PromptContent:   prompt,
			GeneratedResult: resultURL,
		}
		if err := tx.Create(rec).Error; err != nil {
			return err
		}

		var u authentity.User
		if err := tx.Select("credits").Where("id = ?", userID).First(&u).Error; err != nil {
			return err
		}
		newBalance = u.Credits
		return nil
	})
	if err != nil {
		return 0, err
	}
	return newBalance, nil
}
