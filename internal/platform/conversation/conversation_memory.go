package conversation

import (
	"context"
	"sync"
	"time"

	"github.com/SeraphielSpark/contentcreator/internal/feature/content/domain/entity"
)

// ConversationMemory is the in-process fallback used when Redis is
// unavailable. Transcripts are lost on restart; that volatility is the
// accepted trade-off of running without Redis.
type ConversationMemory struct {
	mu  sync.Mutex
	ttl time.Duration
	now func() time.Time

	transcripts map[string]*memoryTranscript
}

type memoryTranscript struct {
	turns     []entity.Turn
	expiresAt time.Time
}

// NewConversationMemory creates a new in-memory conversation store.
func NewConversationMemory(ttl time.Duration) *ConversationMemory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ConversationMemory{
		ttl:         ttl,
		now:         time.Now,
		transcripts: make(map[string]*memoryTranscript),
	}
}

// Append adds one turn to the transcript and refreshes the TTL.
func (m *ConversationMemory) Append(_ context.Context, chatID string, turn entity.Turn) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	t := m.transcripts[chatID]
	if t == nil || m.now().After(t.expiresAt) {
		t = &memoryTranscript{}
		m.transcripts[chatID] = t
	}
	t.turns = append(t.turns, turn)
	t.expiresAt = m.now().Add(m.ttl)
	return nil
}

// History returns the transcript for a conversation, oldest first.
func (m *ConversationMemory) History(_ context.Context, chatID string) ([]entity.Turn, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t := m.transcripts[chatID]
	if t == nil || m.now().After(t.expiresAt) {
		delete(m.transcripts, chatID)
		return []entity.Turn{}, nil
	}
	out := make([]entity.Turn, len(t.turns))
	copy(out, t.turns)
	return out, nil
}
