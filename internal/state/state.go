package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"storeadmin/catman/internal/form"

	"github.com/redis/go-redis/v9"
)

// Stash is an unsaved draft kept between shell sessions.
type Stash struct {
	Draft     form.Draft `json:"draft"`
	EditingID string     `json:"editing_id,omitempty"` // Empty in create mode
	SavedAt   time.Time  `json:"saved_at"`
}

type DraftStore interface {
	// Load returns nil when nothing is stashed.
	Load(ctx context.Context) (*Stash, error)
	Save(ctx context.Context, stash Stash) error
	Clear(ctx context.Context) error
}

type redisDraftStore struct {
	redisClient *redis.Client
	key         string
	ttl         time.Duration
}

func NewRedisDraftStore(redisClient *redis.Client, keyPrefix string) DraftStore {
	return &redisDraftStore{
		redisClient: redisClient,
		key:         keyPrefix + "draft",
		ttl:         7 * 24 * time.Hour,
	}
}

func (s *redisDraftStore) Load(ctx context.Context) (*Stash, error) {
	val, err := s.redisClient.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // Nothing stashed
		}
		return nil, fmt.Errorf("failed to get stashed draft: %w", err)
	}

	var stash Stash
	if err := json.Unmarshal(val, &stash); err != nil {
		return nil, fmt.Errorf("failed to decode stashed draft: %w", err)
	}
	return &stash, nil
}

func (s *redisDraftStore) Save(ctx context.Context, stash Stash) error {
	data, err := json.Marshal(stash)
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}

	if err := s.redisClient.Set(ctx, s.key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to stash draft: %w", err)
	}
	return nil
}

func (s *redisDraftStore) Clear(ctx context.Context) error {
	if err := s.redisClient.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("failed to clear stashed draft: %w", err)
	}
	return nil
}

// memoryDraftStore keeps the stash for the life of the process. It stands in
// when Redis is disabled.
type memoryDraftStore struct {
	stash *Stash
}

func NewMemoryDraftStore() DraftStore {
	return &memoryDraftStore{}
}

func (s *memoryDraftStore) Load(context.Context) (*Stash, error) {
	if s.stash == nil {
		return nil, nil
	}
	stash := *s.stash
	stash.Draft = s.stash.Draft.Clone()
	return &stash, nil
}

func (s *memoryDraftStore) Save(_ context.Context, stash Stash) error {
	stash.Draft = stash.Draft.Clone()
	s.stash = &stash
	return nil
}

func (s *memoryDraftStore) Clear(context.Context) error {
	s.stash = nil
	return nil
}
