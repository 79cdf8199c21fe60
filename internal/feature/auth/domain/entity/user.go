// Package entity defines the domain entities for the auth feature.
package entity

import "time"

const (
	// PlanFree is the plan tier assigned to newly registered users.
	PlanFree = "free"

	// StartingCredits is the credit allotment granted on registration.
	StartingCredits int64 = 200
)

// User represents a registered account.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Email is the canonical identity field and must be unique.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the bcrypt hash of the user's password. It is empty for
	// accounts created through an external identity provider.
	Password string `gorm:"size:255"`

	// Plan is the pricing tier ("free" by default).
	Plan string `gorm:"size:32;not null;default:free"`

	// Credits is the remaining generation credit balance. It never goes
	// negative: debits are conditional updates guarded by the balance.
	Credits int64 `gorm:"not null;default:200"`

	// Verified reports whether the email address has been confirmed.
	Verified bool `gorm:"not null;default:false"`

	// ProviderID identifies the external identity provider account, if any.
	ProviderID string `gorm:"size:255"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PendingVerification holds the hashed one-time code issued at registration.
// At most one row exists per user; issuing a new code supersedes the old one.
type PendingVerification struct {
	ID uint `gorm:"primaryKey"`

	// UserID references the unverified account the code was issued for.
	UserID uint `gorm:"uniqueIndex;not null"`

	// CodeHash is the bcrypt hash of the one-time code. The plaintext code
	// is only ever sent by mail and compared via this hash.
	CodeHash string `gorm:"size:255;not null"`

	// ExpiresAt is the moment after which the code is rejected.
	ExpiresAt time.Time `gorm:"not null"`

	CreatedAt time.Time
}
