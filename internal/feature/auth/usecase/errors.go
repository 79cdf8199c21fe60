// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when attempting to create a user with an email that already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrInvalidCredentials is returned when the email/password pair does not match an account.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidCode is returned when a verification code does not match the pending one.
	ErrInvalidCode = errors.New("invalid verification code")

	// ErrCodeExpired is returned when a verification code is past its expiry.
	ErrCodeExpired = errors.New("verification code has expired")

	// ErrAlreadyVerified is returned when verification is attempted on a verified account.
	ErrAlreadyVerified = errors.New("account is already verified")

	// ErrVerificationNotFound is returned when no pending verification exists for the user.
	ErrVerificationNotFound = errors.New("no pending verification")
)
