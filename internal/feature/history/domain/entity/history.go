// Package entity defines the domain entities for the history feature.
package entity

import "time"

// HistoryRecord is one saved prompt/result pair. Records are immutable once
// created and always belong to exactly one user.
type HistoryRecord struct {
	ID uint `gorm:"primaryKey"`

	// UserID references the owning user.
	UserID uint `gorm:"index;not null"`

	// Title is a short label derived from the prompt.
	Title string `gorm:"size:100;not null"`

	// PromptContent is the full prompt text as submitted.
	PromptContent string `gorm:"type:text;not null"`

	// GeneratedResult is the generated text or the URL of a generated asset.
	GeneratedResult string `gorm:"type:text;not null"`

	CreatedAt time.Time
}
