package share

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ClipboardTTL bounds how long copied text is kept.
const ClipboardTTL = time.Hour

var ErrEmptyClipboard = errors.New("clipboard empty")

// Broadcaster is satisfied by the stream hub.
type Broadcaster interface {
	Broadcast(channel string, payload []byte) int
}

// HubNative shares to the user's connected dashboard sessions.
type HubNative struct {
	hub Broadcaster
}

func NewHubNative(hub Broadcaster) *HubNative {
	return &HubNative{hub: hub}
}

func Channel(userID string) string {
	return "share:" + userID
}

func (n *HubNative) Share(ctx context.Context, userID string, p Payload) error {
	if err := ctx.Err(); err != nil {
		return ErrCancelled
	}
	if userID == "" {
		return ErrUnavailable
	}
	msg, err := json.Marshal(struct {
		Type    string  `json:"type"`
		Payload Payload `json:"payload"`
	}{Type: "share", Payload: p})
	if err != nil {
		return err
	}
	if n.hub.Broadcast(Channel(userID), msg) == 0 {
		return ErrUnavailable
	}
	return nil
}

type RedisClipboard struct {
	redis *redis.Client
}

func NewRedisClipboard(client *redis.Client) *RedisClipboard {
	return &RedisClipboard{redis: client}
}

func clipboardKey(userID string) string {
	return "clipboard:" + userID
}

func (c *RedisClipboard) Copy(ctx context.Context, userID, text string) error {
	return c.redis.Set(ctx, clipboardKey(userID), text, ClipboardTTL).Err()
}

func (c *RedisClipboard) Read(ctx context.Context, userID string) (string, error) {
	text, err := c.redis.Get(ctx, clipboardKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrEmptyClipboard
	}
	return text, err
}

type MemoryClipboard struct {
	mu    sync.Mutex
	texts map[string]string
}

func NewMemoryClipboard() *MemoryClipboard {
	return &MemoryClipboard{texts: map[string]string{}}
}

func (c *MemoryClipboard) Copy(_ context.Context, userID, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.texts[userID] = text
	return nil
}

func (c *MemoryClipboard) Read(_ context.Context, userID string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	text, ok := c.texts[userID]
	if !ok {
		return "", ErrEmptyClipboard
	}
	return text, nil
}
