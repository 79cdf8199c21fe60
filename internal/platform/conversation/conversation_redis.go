// Package conversation stores chat transcripts keyed by conversation ID.
package conversation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/SeraphielSpark/contentcreator/internal/feature/content/domain/entity"
)

// DefaultTTL is how long an idle conversation transcript is retained.
const DefaultTTL = 24 * time.Hour

// ConversationRedis keeps transcripts in Redis lists with a sliding TTL.
type ConversationRedis struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewConversationRedis creates a new ConversationRedis instance.
func NewConversationRedis(client *redis.Client, prefix string, ttl time.Duration) *ConversationRedis {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ConversationRedis{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

// conversationKey returns the Redis key for a conversation.
func (r *ConversationRedis) conversationKey(id string) string {
	return fmt.Sprintf("%s:%s", r.prefix, id)
}

// Append adds one turn to the transcript and refreshes the TTL.
func (r *ConversationRedis) Append(ctx context.Context, chatID string, turn entity.Turn) error {
	data, err := json.Marshal(turn)
	if err != nil {
		return fmt.Errorf("failed to marshal turn: %w", err)
	}
	key := r.conversationKey(chatID)
	pipe := r.client.TxPipeline()
	pipe.RPush(ctx, key, data)
	pipe.Expire(ctx, key, r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append turn: %w", err)
	}
	return nil
}

// History returns the full transcript for a conversation, oldest first.
// An unknown conversation yields an empty transcript, not an error.
func (r *ConversationRedis) History(ctx context.Context, chatID string) ([]entity.Turn, error) {
	items, err := r.client.LRange(ctx, r.conversationKey(chatID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load transcript: %w", err)
	}
	turns := make([]entity.Turn, 0, len(items))
	for _, item := range items {
		var t entity.Turn
		if err := json.Unmarshal([]byte(item), &t); err != nil {
			return nil, fmt.Errorf("failed to unmarshal turn: %w", err)
		}
		turns = append(turns, t)
	}
	return turns, nil
}
