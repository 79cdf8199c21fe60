// Package usecase implements the business logic for the content feature:
// hashtag generation and chat responses.
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/SeraphielSpark/contentcreator/internal/feature/content/domain/entity"
	histentity "github.com/SeraphielSpark/contentcreator/internal/feature/history/domain/entity"
)

const (
	// hashtagPromptTemplate turns a post caption into a hashtag request.
	hashtagPromptTemplate = `You are an expert social media strategist.
The user provided this post caption: %q
Your task:
1. Keep the user's caption exactly as it is.
2. Add a new line and generate ONLY 7-10 trending, SEO-optimized hashtags.
3. Make hashtags aesthetic and relevant.
Format:
[Original caption]

[Hashtags]`

	// chatPersona frames every chat response.
	chatPersona = "You are CreatorsAI, a friendly, insightful assistant for the creator economy. " +
		"Give concise, practical answers tailored for content creators."
)

// TextGenerator produces a completion for one prompt.
// Following Go convention, the interface is defined by the consumer (usecase).
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// ConversationStore keeps per-conversation transcripts with a TTL.
type ConversationStore interface {
	Append(ctx context.Context, chatID string, turn entity.Turn) error
	History(ctx context.Context, chatID string) ([]entity.Turn, error)
}

// HistoryRecorder persists a prompt/result pair for an authenticated user.
type HistoryRecorder interface {
	Save(ctx context.Context, userID uint, prompt, result string) (*histentity.HistoryRecord, error)
}

// contentUsecase implements hashtag and chat generation.
type contentUsecase struct {
	generator     TextGenerator
	conversations ConversationStore
	history       HistoryRecorder
}

// NewContentUsecase creates a new contentUsecase instance.
func NewContentUsecase(generator TextGenerator, conversations ConversationStore, history HistoryRecorder) *contentUsecase {
	return &contentUsecase{
		generator:     generator,
		conversations: conversations,
		history:       history,
	}
}

// GenerateHashtags asks the model for hashtags matching the post caption.
// userID 0 means anonymous; authenticated calls are recorded in history.
func (u *contentUsecase) GenerateHashtags(ctx context.Context, userID uint, post string) (string, []string, error) {
	post = strings.TrimSpace(post)
	if post == "" {
		return "", nil, ErrEmptyPost
	}

	result, err := u.generator.GenerateText(ctx, fmt.Sprintf(hashtagPromptTemplate, post))
	if err != nil {
		return "", nil, fmt.Errorf("hashtag generation failed: %w", err)
	}
	result = strings.TrimSpace(result)

	u.record(ctx, userID, post, result)
	return result, ExtractHashtags(result), nil
}

// Respond answers one chat message, carrying the conversation transcript as
// context. A new chat ID is minted when none is supplied.
func (u *contentUsecase) Respond(ctx context.Context, userID uint, prompt, chatID string, maxSentences int) (string, string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", "", ErrEmptyPrompt
	}
	if chatID == "" {
		chatID = uuid.NewString()
	}

	turns, err := u.conversations.History(ctx, chatID)
	if err != nil {
		return "", "", fmt.Errorf("failed to load conversation: %w", err)
	}

	result, err := u.generator.GenerateText(ctx, buildChatPrompt(turns, prompt, maxSentences))
	if err != nil {
		return "", "", fmt.Errorf("chat generation failed: %w", err)
	}
	result = strings.TrimSpace(result)

	// Transcript writes are best-effort: a degraded store must not fail the
	// response the user already paid latency for.
	if err := u.conversations.Append(ctx, chatID, entity.Turn{Role: "user", Text: prompt}); err != nil {
		slog.Warn("failed to append user turn", "error", err, "chat_id", chatID)
	} else if err := u.conversations.Append(ctx, chatID, entity.Turn{Role: "model", Text: result}); err != nil {
		slog.Warn("failed to append model turn", "error", err, "chat_id", chatID)
	}

	u.record(ctx, userID, prompt, result)
	return result, chatID, nil
}

// record saves a history entry for authenticated callers.
func (u *contentUsecase) record(ctx context.Context, userID uint, prompt, result string) {
	if userID == 0 || u.history == nil {
		return
	}
	if _, err := u.history.Save(ctx, userID, prompt, result); err != nil {
		slog.Warn("failed to record history", "error", err, "user_id", userID)
	}
}

// buildChatPrompt flattens the transcript and the new question into one
// completion prompt.
func buildChatPrompt(turns []entity.Turn, prompt string, maxSentences int) string {
	var b strings.Builder
	b.WriteString(chatPersona)
	b.WriteString("\n\n")
	for _, t := range turns {
		switch t.Role {
		case "model":
			b.WriteString("Assistant: ")
		default:
			b.WriteString("User: ")
		}
		b.WriteString(t.Text)
		b.WriteString("\n")
	}
	b.WriteString("User: ")
	b.WriteString(prompt)
	b.WriteString("\nAssistant:")
	if maxSentences > 0 {
		b.WriteString(fmt.Sprintf(" (answer in at most %d sentences)", maxSentences))
	}
	return b.String()
}

// ExtractHashtags pulls the #-prefixed tokens out of generated text.
func ExtractHashtags(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ' ' || r == '\n' || r == '\t' || r == ','
	})
	tags := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if len(f) > 1 && strings.HasPrefix(f, "#") {
			tags = append(tags, f)
		}
	}
	return tags
}
