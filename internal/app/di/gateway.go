package di

import (
	"github.com/SeraphielSpark/contentcreator/internal/feature/generation/adapters/gemini"
	infrahttp "github.com/SeraphielSpark/contentcreator/internal/platform/http"
)

// NewImageGateway creates a fully configured Gemini image client with HTTP client.
func NewImageGateway() *gemini.ImageClient {
	cfg := gemini.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	return gemini.NewImageClient(cfg, httpClient)
}
