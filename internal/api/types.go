// Package api defines the JSON request and response types shared by the HTTP handlers.
package api

// ErrorResponse is the body returned for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse carries a simple confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// RegisterRequest is the body for POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest is the body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// VerifyRequest is the body for POST /auth/verify.
type VerifyRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required"`
}

// ResendCodeRequest is the body for POST /auth/resend-code.
type ResendCodeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// UserSummary is the public view of a user returned with auth responses.
type UserSummary struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	Plan     string `json:"plan"`
	Credits  int64  `json:"credits"`
	Verified bool   `json:"verified"`
}

// AuthResponse is returned on successful registration and login.
type AuthResponse struct {
	Token string      `json:"token"`
	User  UserSummary `json:"user"`
}

// HashtagRequest is the body for POST /generate.
type HashtagRequest struct {
	Post string `json:"post" binding:"required"`
}

// HashtagResponse is the body returned by POST /generate.
type HashtagResponse struct {
	Result   string   `json:"result"`
	Hashtags []string `json:"hashtags"`
}

// ChatRequest is the body for POST /respond.
type ChatRequest struct {
	Prompt       string `json:"prompt" binding:"required"`
	ChatID       string `json:"chat_id"`
	MaxSentences int    `json:"max_sentences"`
}

// ChatMeta carries conversation metadata alongside a chat response.
type ChatMeta struct {
	ChatID string `json:"chat_id"`
}

// ChatResponse is the body returned by POST /respond.
type ChatResponse struct {
	Result string   `json:"result"`
	Meta   ChatMeta `json:"meta"`
}

// UploadResponse is returned by POST /upload-reference.
type UploadResponse struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

// GenerateImageRequest is the body for POST /generate-image.
type GenerateImageRequest struct {
	ReferenceFilename string `json:"reference_filename" binding:"required"`
	Style             string `json:"style"`
	Category          string `json:"category"`
	Theme             string `json:"theme" binding:"required"`
	Look              string `json:"look" binding:"required"`
	ColorTone         string `json:"color_tone"`
	Usage             string `json:"usage"`
	CustomPrompt      string `json:"custom_prompt"`
}

// GenerateImageResponse is returned by POST /generate-image.
type GenerateImageResponse struct {
	GeneratedImageURL string `json:"generated_image_url"`
	NewCreditCount    int64  `json:"new_credit_count"`
}

// SaveHistoryRequest is the body for POST /api/history.
type SaveHistoryRequest struct {
	Prompt string `json:"prompt" binding:"required"`
	Result string `json:"result" binding:"required"`
}

// SaveHistoryResponse is returned by POST /api/history.
type SaveHistoryResponse struct {
	Message   string `json:"message"`
	HistoryID uint   `json:"history_id"`
}

// HistoryItemResponse is one history record as returned by the history routes.
type HistoryItemResponse struct {
	ID              uint   `json:"id"`
	Title           string `json:"title"`
	PromptContent   string `json:"prompt_content"`
	GeneratedResult string `json:"generated_result"`
	Timestamp       string `json:"timestamp"`
}
