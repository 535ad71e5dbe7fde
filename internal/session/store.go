package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/courtflow/intake-server-go/internal/model"
	"github.com/courtflow/intake-server-go/internal/redis"
)

// Store keeps intake sessions in Redis as JSON under session:<chatId>, with
// the TTL refreshed on every write so an active conversation never expires.
//
// Writes are plain SET with no compare-and-swap: two webhook deliveries for
// the same chat that race each other resolve last-write-wins. Different
// chats use different keys and never interfere.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

// Key returns the storage key for a chat's session.
func Key(chatID int64) string {
	return fmt.Sprintf("session:%d", chatID)
}

// Get returns the stored session for chatID, or nil when there is none.
// A stored value that no longer parses as a session is treated as absent.
func (s *Store) Get(ctx context.Context, chatID int64) (*model.IntakeSession, error) {
	val, err := s.client.Get(ctx, Key(chatID)).Result()
	if err == goredis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	var sess model.IntakeSession
	if err := json.Unmarshal([]byte(val), &sess); err != nil {
		log.Warn().Err(err).Int64("chatId", chatID).Msg("discarding unparseable session")
		return nil, nil
	}
	// A parseable session is returned as stored, unknown state included;
	// the intake service owns the reset protocol for those.
	return &sess, nil
}

// Set writes the session for chatID and refreshes its expiration window.
func (s *Store) Set(ctx context.Context, chatID int64, sess *model.IntakeSession) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.client.Set(ctx, Key(chatID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("set session: %w", err)
	}
	return nil
}
