// Package di provides dependency injection factories for creating application components.
package di

import (
	"github.com/redis/go-redis/v9"

	contentusecase "github.com/SeraphielSpark/contentcreator/internal/feature/content/usecase"
	"github.com/SeraphielSpark/contentcreator/internal/platform/conversation"
)

// NewConversationStore creates a ConversationStore implementation.
// If Redis is available, transcripts are kept there with a TTL and survive
// restarts. Otherwise, it falls back to an in-process store.
func NewConversationStore(rdb *redis.Client) contentusecase.ConversationStore {
	if rdb != nil {
		return conversation.NewConversationRedis(rdb, "chat", conversation.DefaultTTL)
	}
	return conversation.NewConversationMemory(conversation.DefaultTTL)
}
