package notify

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelAlert   Level = "alert"
)

// SuccessTTL is how long a success toast stays visible.
const SuccessTTL = 3 * time.Second

const (
	redisIndexKey  = "toasts"
	redisKeyPrefix = "toast:"
)

var ErrNotFound = errors.New("notification not found")

type Toast struct {
	ID        string     `json:"id"`
	Level     Level      `json:"level"`
	Message   string     `json:"message"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// Board holds the toasts currently shown to operators. Success toasts
// expire on their own. Alerts remain until dismissed.
type Board struct {
	redis *redis.Client
	now   func() time.Time

	mu     sync.Mutex
	toasts map[string]Toast
}

// NewBoard stores toasts in redis when a client is given and in memory
// otherwise.
func NewBoard(redisClient *redis.Client) *Board {
	return &Board{redis: redisClient, now: time.Now, toasts: map[string]Toast{}}
}

func (b *Board) Success(ctx context.Context, message string) {
	b.push(ctx, LevelSuccess, message, SuccessTTL)
}

func (b *Board) Alert(ctx context.Context, message string) {
	b.push(ctx, LevelAlert, message, 0)
}

func (b *Board) push(ctx context.Context, level Level, message string, ttl time.Duration) {
	now := b.now()
	t := Toast{ID: uuid.NewString(), Level: level, Message: message, CreatedAt: now}
	if ttl > 0 {
		exp := now.Add(ttl)
		t.ExpiresAt = &exp
	}

	if b.redis == nil {
		b.mu.Lock()
		b.toasts[t.ID] = t
		b.mu.Unlock()
		return
	}

	data, _ := json.Marshal(t)
	_, err := b.redis.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, redisKeyPrefix+t.ID, data, ttl)
		p.SAdd(ctx, redisIndexKey, t.ID)
		return nil
	})
	if err != nil {
		log.Printf("notify: store toast: %v", err)
	}
}

// Active lists toasts that have not expired or been dismissed, oldest
// first.
func (b *Board) Active(ctx context.Context) ([]Toast, error) {
	var out []Toast
	if b.redis == nil {
		now := b.now()
		b.mu.Lock()
		for id, t := range b.toasts {
			if t.ExpiresAt != nil && !now.Before(*t.ExpiresAt) {
				delete(b.toasts, id)
				continue
			}
			out = append(out, t)
		}
		b.mu.Unlock()
	} else {
		var err error
		if out, err = b.activeRedis(ctx); err != nil {
			return nil, err
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (b *Board) activeRedis(ctx context.Context) ([]Toast, error) {
	ids, err := b.redis.SMembers(ctx, redisIndexKey).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = redisKeyPrefix + id
	}
	values, err := b.redis.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	var out []Toast
	var expired []any
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			expired = append(expired, ids[i])
			continue
		}
		var t Toast
		if err := json.Unmarshal([]byte(raw), &t); err != nil {
			log.Printf("notify: decode toast %s: %v", ids[i], err)
			continue
		}
		out = append(out, t)
	}
	if len(expired) > 0 {
		if err := b.redis.SRem(ctx, redisIndexKey, expired...).Err(); err != nil {
			log.Printf("notify: prune index: %v", err)
		}
	}
	return out, nil
}

func (b *Board) Dismiss(ctx context.Context, id string) error {
	if b.redis == nil {
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, ok := b.toasts[id]; !ok {
			return ErrNotFound
		}
		delete(b.toasts, id)
		return nil
	}

	var removed *redis.IntCmd
	_, err := b.redis.TxPipelined(ctx, func(p redis.Pipeliner) error {
		removed = p.Del(ctx, redisKeyPrefix+id)
		p.SRem(ctx, redisIndexKey, id)
		return nil
	})
	if err != nil {
		return err
	}
	if removed.Val() == 0 {
		return ErrNotFound
	}
	return nil
}
