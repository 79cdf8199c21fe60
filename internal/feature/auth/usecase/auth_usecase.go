package usecase

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/SeraphielSpark/contentcreator/internal/feature/auth/domain/entity"
)

const (
	// codeLength is the number of digits in a verification code.
	codeLength = 6

	// codeTTL is how long a verification code stays valid.
	codeTTL = 10 * time.Minute
)

// UserRepository abstracts persistence for user entities.
// Following Go convention, the interface is defined by the consumer (usecase),
// not the provider (adapters).
type UserRepository interface {
	// Create persists a new user. It returns ErrEmailAlreadyExists when a
	// user with the same email is already stored.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail returns the user matching the given email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID returns the user matching the given ID.
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// MarkVerified sets the verified flag on the given user.
	MarkVerified(ctx context.Context, id uint) error
}

// VerificationRepository abstracts persistence for pending verification codes.
type VerificationRepository interface {
	// Upsert stores the pending verification for its user, replacing any
	// previously issued code.
	Upsert(ctx context.Context, pv *entity.PendingVerification) error

	// FindByUserID returns the pending verification for a user, or
	// ErrVerificationNotFound.
	FindByUserID(ctx context.Context, userID uint) (*entity.PendingVerification, error)

	// Delete removes the pending verification for a user. Deleting a
	// missing row is not an error.
	Delete(ctx context.Context, userID uint) error
}

// JWTGenerator defines the interface for JWT token generation.
type JWTGenerator interface {
	// GenerateToken creates a signed JWT token for the given user.
	GenerateToken(userID uint, email string) (string, error)
}

// CodeSender delivers a verification code to a user out of band.
// A nil sender disables delivery (the code still exists in storage).
type CodeSender interface {
	SendVerificationCode(ctx context.Context, email, code string) error
}

// authUsecase implements the authentication business logic.
type authUsecase struct {
	users         UserRepository
	verifications VerificationRepository
	jwtGenerator  JWTGenerator
	sender        CodeSender
	now           func() time.Time
}

// NewAuthUsecase creates a new authUsecase instance. sender may be nil when
// mail delivery is not configured.
func NewAuthUsecase(users UserRepository, verifications VerificationRepository, jwtGenerator JWTGenerator, sender CodeSender) *authUsecase {
	return &authUsecase{
		users:         users,
		verifications: verifications,
		jwtGenerator:  jwtGenerator,
		sender:        sender,
		now:           time.Now,
	}
}

// newVerificationCode returns a random code of codeLength decimal digits.
func newVerificationCode() (string, error) {
	code := ""
	for i := 0; i < codeLength; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate verification code: %w", err)
		}
		code += n.String()
	}
	return code, nil
}

// Register creates a new unverified user with a hashed password, issues a
// verification code and returns a signed token with the stored user.
func (u *authUsecase) Register(ctx context.Context, email, password string) (string, *entity.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Email:    email,
		Password: string(hashed),
		Plan:     entity.PlanFree,
		Credits:  entity.StartingCredits,
	}
	if err := u.users.Create(ctx, user); err != nil {
		return "", nil, err
	}

	// Verification is advisory: a failure here must not undo the account.
	if err := u.issueCode(ctx, user); err != nil {
		slog.Warn("failed to issue verification code", "error", err, "email", email)
	}

	token, err := u.jwtGenerator.GenerateToken(user.ID, user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return token, user, nil
}

// Login authenticates a user and returns a JWT token on success.
// A bcrypt comparison runs even when the user does not exist, to keep the
// response time independent of account existence.
func (u *authUsecase) Login(ctx context.Context, email, password string) (string, *entity.User, error) {
	user, err := u.users.FindByEmail(ctx, email)

	// Dummy hash so bcrypt.CompareHashAndPassword always runs.
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
	if err == nil {
		passwordHash = user.Password
	}

	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))
	if err != nil || compareErr != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, tokenErr := u.jwtGenerator.GenerateToken(user.ID, user.Email)
	if tokenErr != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", tokenErr)
	}
	return token, user, nil
}

// Verify consumes a pending verification code and marks the account verified.
// Codes are single use: the pending row is deleted on success.
func (u *authUsecase) Verify(ctx context.Context, email, code string) error {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user.Verified {
		return ErrAlreadyVerified
	}

	pv, err := u.verifications.FindByUserID(ctx, user.ID)
	if err != nil {
		return err
	}
	if u.now().After(pv.ExpiresAt) {
		return ErrCodeExpired
	}
	if bcrypt.CompareHashAndPassword([]byte(pv.CodeHash), []byte(code)) != nil {
		return ErrInvalidCode
	}

	if err := u.users.MarkVerified(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to mark user verified: %w", err)
	}
	if err := u.verifications.Delete(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to consume verification code: %w", err)
	}
	return nil
}

// ResendCode issues a fresh verification code, superseding any pending one.
func (u *authUsecase) ResendCode(ctx context.Context, email string) error {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user.Verified {
		return ErrAlreadyVerified
	}
	return u.issueCode(ctx, user)
}

// issueCode stores a hashed verification code for the user and sends the
// plaintext by mail when a sender is configured.
func (u *authUsecase) issueCode(ctx context.Context, user *entity.User) error {
	code, err := newVerificationCode()
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash verification code: %w", err)
	}
	pv := &entity.PendingVerification{
		UserID:    user.ID,
		CodeHash:  string(hash),
		ExpiresAt: u.now().Add(codeTTL),
	}
	if err := u.verifications.Upsert(ctx, pv); err != nil {
		return err
	}
	if u.sender == nil {
		return nil
	}
	if err := u.sender.SendVerificationCode(ctx, user.Email, code); err != nil {
		return fmt.Errorf("failed to send verification code: %w", err)
	}
	return nil
}
