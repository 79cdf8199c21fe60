// Package gemini is a REST client for the Gemini generateContent endpoint,
// used for multimodal image generation.
package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/SeraphielSpark/contentcreator/internal/feature/generation/usecase"
)

const (
	// DefaultModel is the multimodal model used for image generation.
	DefaultModel = "gemini-2.0-flash-exp"

	// DefaultBaseURL is the Generative Language API endpoint.
	DefaultBaseURL = "https://generativelanguage.googleapis.com"

	// DefaultTimeout bounds one full generation round trip. The model is
	// slow; the connect timeout stays short in the shared HTTP client.
	DefaultTimeout = 90 * time.Second

	// maxErrorBody caps how much of an upstream error body is kept.
	maxErrorBody = 2048
)

// Config holds configuration for the image generation client.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// LoadConfig loads Gemini configuration from environment variables.
func LoadConfig() Config {
	cfg := Config{
		APIKey:  os.Getenv("GEMINI_API_KEY"),
		BaseURL: os.Getenv("GEMINI_BASE_URL"),
		Model:   os.Getenv("GEMINI_IMAGE_MODEL"),
		Timeout: DefaultTimeout,
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	return cfg
}

// ImageClient calls the generateContent endpoint over REST.
type ImageClient struct {
	cfg    Config
	client *http.Client
}

// Compile-time check that ImageClient implements ImageGateway.
var _ usecase.ImageGateway = (*ImageClient)(nil)

// NewImageClient creates a new ImageClient with the given configuration and
// HTTP client.
func NewImageClient(cfg Config, client *http.Client) *ImageClient {
	return &ImageClient{cfg: cfg, client: client}
}

// Request/response DTOs for generateContent. The response parts carry the
// generated image under inlineData, but older API revisions emitted the same
// field as inline_data; both casings are accepted and normalized here so the
// rest of the code only ever sees one shape.

type generateRequest struct {
	Contents         []requestContent  `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig"`
}

type requestContent struct {
	Parts []requestPart `json:"parts"`
}

type requestPart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type,omitempty"`
	Data     string `json:"data"`
}

type generationConfig struct {
	Temperature        float32  `json:"temperature"`
	TopP               float32  `json:"topP"`
	TopK               int32    `json:"topK"`
	ResponseModalities []string `json:"responseModalities"`
}

type generateResponse struct {
	Candidates     []candidate     `json:"candidates"`
	PromptFeedback *promptFeedback `json:"promptFeedback"`
}

type candidate struct {
	Content struct {
		Parts []responsePart `json:"parts"`
	} `json:"content"`
	FinishReason string `json:"finishReason"`
}

type responsePart struct {
	Text            string        `json:"text,omitempty"`
	InlineDataCamel *responseBlob `json:"inlineData,omitempty"`
	InlineDataSnake *responseBlob `json:"inline_data,omitempty"`
}

// inline normalizes the two historically-seen casings into one accessor.
func (p *responsePart) inline() *responseBlob {
	if p.InlineDataCamel != nil {
		return p.InlineDataCamel
	}
	return p.InlineDataSnake
}

type responseBlob struct {
	MimeType      string `json:"mimeType,omitempty"`
	MimeTypeSnake string `json:"mime_type,omitempty"`
	Data          string `json:"data"`
}

// mime normalizes the two casings; an absent type defaults to image/png,
// the model's usual output format.
func (b *responseBlob) mime() string {
	if b.MimeType != "" {
		return b.MimeType
	}
	if b.MimeTypeSnake != "" {
		return b.MimeTypeSnake
	}
	return "image/png"
}

type promptFeedback struct {
	BlockReason string `json:"blockReason"`
}

// GenerateImage performs one generation call: compiled prompt plus the
// JPEG-encoded reference image, and returns the generated image bytes with
// their MIME type.
//
// Failure modes map to the usecase error taxonomy: timeout, unreachable,
// non-2xx (status and body preserved), policy block, and empty response.
func (c *ImageClient) GenerateImage(ctx context.Context, prompt string, imageJPEG []byte, params usecase.SamplingParams) ([]byte, string, error) {
	reqBody := generateRequest{
		Contents: []requestContent{{
			Parts: []requestPart{
				{Text: prompt},
				{InlineData: &inlineData{
					MimeType: "image/jpeg",
					Data:     base64.StdEncoding.EncodeToString(imageJPEG),
				}},
			},
		}},
		GenerationConfig: &generationConfig{
			Temperature:        params.Temperature,
			TopP:               params.TopP,
			TopK:               params.TopK,
			ResponseModalities: []string{"TEXT", "IMAGE"},
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal generation request: %w", err)
	}

	u := fmt.Sprintf("%s/v1beta/models/%s:generateContent",
		strings.TrimRight(c.cfg.BaseURL, "/"), c.cfg.Model)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return nil, "", fmt.Errorf("failed to build generation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.cfg.APIKey)

	res, err := c.client.Do(req)
	if err != nil {
		var netErr net.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
			return nil, "", fmt.Errorf("%w: %v", usecase.ErrUpstreamTimeout, err)
		}
		return nil, "", fmt.Errorf("%w: %v", usecase.ErrUpstreamUnreachable, err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	rawBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read generation response: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, "", &usecase.UpstreamError{
			StatusCode: res.StatusCode,
			Body:       truncateBody(rawBody),
		}
	}

	var body generateResponse
	if err := json.Unmarshal(rawBody, &body); err != nil {
		return nil, "", fmt.Errorf("%w: malformed response: %v", usecase.ErrEmptyResponse, err)
	}

	// A safety block arrives as prompt feedback with no candidates at all.
	if len(body.Candidates) == 0 {
		if body.PromptFeedback != nil && body.PromptFeedback.BlockReason != "" {
			return nil, "", fmt.Errorf("%w: %s", usecase.ErrPolicyBlocked, body.PromptFeedback.BlockReason)
		}
		return nil, "", usecase.ErrEmptyResponse
	}

	for _, cand := range body.Candidates {
		for i := range cand.Content.Parts {
			blob := cand.Content.Parts[i].inline()
			if blob == nil || blob.Data == "" {
				continue
			}
			data, err := base64.StdEncoding.DecodeString(blob.Data)
			if err != nil {
				return nil, "", fmt.Errorf("%w: undecodable image data: %v", usecase.ErrEmptyResponse, err)
			}
			return data, blob.mime(), nil
		}
	}

	return nil, "", usecase.ErrEmptyResponse
}

// truncateBody keeps upstream error bodies loggable without flooding.
func truncateBody(b []byte) string {
	if len(b) > maxErrorBody {
		return string(b[:maxErrorBody]) + "...(truncated)"
	}
	return string(b)
}
