package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	assetusecase "github.com/SeraphielSpark/contentcreator/internal/feature/assets/usecase"
	authentity "github.com/SeraphielSpark/contentcreator/internal/feature/auth/domain/entity"
)

// GenerationCost is the fixed credit price of one image generation.
const GenerationCost int64 = 10

// DefaultSampling are the sampling parameters sent with every generation call.
var DefaultSampling = SamplingParams{
	Temperature: 0.8,
	TopP:        0.95,
	TopK:        40,
}

// SamplingParams configure the remote model's sampling behavior.
type SamplingParams struct {
	Temperature float32
	TopP        float32
	TopK        int32
}

// ImageGateway performs one generation call against the remote multimodal
// endpoint. Following Go convention, the interface is defined by the consumer.
type ImageGateway interface {
	// GenerateImage sends the compiled prompt with a JPEG-encoded reference
	// image and returns the generated image bytes with their MIME type.
	GenerateImage(ctx context.Context, prompt string, imageJPEG []byte, params SamplingParams) ([]byte, string, error)
}

// UserRepository is the subset of user persistence the generation flow needs.
type UserRepository interface {
	FindByID(ctx context.Context, id uint) (*authentity.User, error)
}

// ReferenceStore reads uploaded reference images.
type ReferenceStore interface {
	Open(ctx context.Context, name string) ([]byte, error)
}

// GeneratedStore persists generated images.
type GeneratedStore interface {
	Save(ctx context.Context, name string, data []byte) error
	Remove(ctx context.Context, name string) error
}

// CreditLedger makes the debit-and-record step atomic: the user's balance is
// decremented and the history record inserted in one transaction, and the
// debit is conditional on a sufficient balance so concurrent requests cannot
// drive it negative.
type CreditLedger interface {
	RecordGeneration(ctx context.Context, userID uint, cost int64, prompt, resultURL string) (newBalance int64, err error)
}

// Request carries the structured fields of one image generation request.
type Request struct {
	ReferenceFilename string
	Style             string
	Category          string
	Theme             string
	Look              string
	ColorTone         string
	Usage             string
	CustomPrompt      string
}

// Result is the outcome of a successful generation.
type Result struct {
	GeneratedImageURL string
	NewCreditCount    int64
}

// generateUsecase orchestrates the image generation pipeline.
type generateUsecase struct {
	users      UserRepository
	references ReferenceStore
	generated  GeneratedStore
	gateway    ImageGateway
	ledger     CreditLedger
}

// NewGenerateUsecase creates a new generateUsecase instance.
func NewGenerateUsecase(users UserRepository, references ReferenceStore, generated GeneratedStore, gateway ImageGateway, ledger CreditLedger) *generateUsecase {
	return &generateUsecase{
		users:      users,
		references: references,
		generated:  generated,
		gateway:    gateway,
		ledger:     ledger,
	}
}

// GenerateImage runs the full pipeline for one request:
// balance check, reference load and resize, prompt compilation, the remote
// call, asset write, and the atomic debit-plus-history step. On any failure
// no partial state survives.
func (u *generateUsecase) GenerateImage(ctx context.Context, userID uint, req Request) (*Result, error) {
	if strings.TrimSpace(req.Theme) == "" || strings.TrimSpace(req.Look) == "" {
		return nil, ErrMissingStyleFields
	}

	// Fail fast before any remote call: a user who cannot pay must not cost
	// us a generation.
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Credits < GenerationCost {
		return nil, ErrInsufficientCredits
	}

	refData, err := u.references.Open(ctx, req.ReferenceFilename)
	if err != nil {
		if errors.Is(err, assetusecase.ErrAssetNotFound) || errors.Is(err, assetusecase.ErrInvalidFilename) {
			return nil, ErrReferenceNotFound
		}
		return nil, fmt.Errorf("failed to load reference image: %w", err)
	}

	refJPEG, err := NormalizeReference(refData)
	if err != nil {
		return nil, err
	}

	prompt := CompilePrompt(PromptParams{
		Style:        req.Style,
		Category:     req.Category,
		Theme:        req.Theme,
		Look:         req.Look,
		ColorTone:    req.ColorTone,
		Usage:        req.Usage,
		CustomPrompt: req.CustomPrompt,
	})

	output, mimeType, err := u.gateway.GenerateImage(ctx, prompt, refJPEG, DefaultSampling)
	if err != nil {
		return nil, err
	}

	name := uuid.NewString() + extensionForMime(mimeType)
	if err := u.generated.Save(ctx, name, output); err != nil {
		return nil, fmt.Errorf("failed to store generated image: %w", err)
	}

	resultURL := "/generated/" + name
	newBalance, err := u.ledger.RecordGeneration(ctx, userID, GenerationCost, prompt, resultURL)
	if err != nil {
		// The debit/record transaction rolled back; drop the orphaned asset
		// so no partial state is observable.
		if rmErr := u.generated.Remove(ctx, name); rmErr != nil {
			slog.Warn("failed to remove orphaned generated asset", "error", rmErr, "filename", name)
		}
		return nil, err
	}

	return &Result{GeneratedImageURL: resultURL, NewCreditCount: newBalance}, nil
}

// extensionForMime maps the gateway's reported image type to the stored file
// extension, which in turn drives the Content-Type on serving. Unknown types
// default to .png, the model's usual output.
func extensionForMime(mimeType string) string {
	switch strings.ToLower(strings.TrimSpace(mimeType)) {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ".png"
	}
}
