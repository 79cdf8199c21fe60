// Package genai wraps the Google GenAI SDK for text completions.
package genai

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"

	"google.golang.org/genai"

	"github.com/SeraphielSpark/contentcreator/internal/feature/content/usecase"
)

// DefaultModel is the model used for hashtag and chat completions.
const DefaultModel = "gemini-2.0-flash"

// TextClient generates completions through the Gemini API.
type TextClient struct {
	client *genai.Client
	model  string
}

// Compile-time check that TextClient implements TextGenerator.
var _ usecase.TextGenerator = (*TextClient)(nil)

// NewTextClient creates a TextClient authenticated with GEMINI_API_KEY.
func NewTextClient(ctx context.Context) (*TextClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  os.Getenv("GEMINI_API_KEY"),
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &TextClient{client: client, model: DefaultModel}, nil
}

// GenerateText produces one completion for the prompt. Transport failures
// map to the usecase error taxonomy so handlers can distinguish a timeout
// from an unreachable endpoint.
func (c *TextClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		var netErr net.Error
		switch {
		case errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()):
			return "", fmt.Errorf("%w: %v", usecase.ErrUpstreamTimeout, err)
		case errors.As(err, &netErr):
			return "", fmt.Errorf("%w: %v", usecase.ErrUpstreamUnreachable, err)
		}
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}
	return resp.Text(), nil
}
