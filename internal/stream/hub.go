package stream

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const redisPrefix = "fleetdesk:"

// Hub fans messages out to WebSocket clients grouped by channel. With a
// redis client attached, broadcasts are also relayed to hubs on other
// instances.
type Hub struct {
	id      string
	redis   *redis.Client
	clients map[string]map[*Client]struct{}
	mu      sync.RWMutex
	pubsub  *redis.PubSub
	done    chan struct{}
}

type Client struct {
	Channel string
	Send    chan []byte
}

type envelope struct {
	Origin  string `json:"origin"`
	Payload []byte `json:"payload"`
}

func NewHub(redisClient *redis.Client) *Hub {
	h := &Hub{
		id:      uuid.NewString(),
		redis:   redisClient,
		clients: map[string]map[*Client]struct{}{},
	}

	if redisClient != nil {
		ctx := context.Background()
		pubsub := redisClient.PSubscribe(ctx, redisPrefix+"*")
		if _, err := pubsub.Receive(ctx); err != nil {
			log.Printf("redis subscribe error: %v", err)
			_ = pubsub.Close()
			return h
		}
		h.pubsub = pubsub
		h.done = make(chan struct{})
		go h.subscribeRedis()
	}
	return h
}

func (h *Hub) Register(channel string) *Client {
	client := &Client{
		Channel: channel,
		Send:    make(chan []byte, 64),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[channel] == nil {
		h.clients[channel] = map[*Client]struct{}{}
	}
	h.clients[channel][client] = struct{}{}
	return client
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if channelClients, ok := h.clients[client.Channel]; ok {
		if _, registered := channelClients[client]; !registered {
			return
		}
		delete(channelClients, client)
		if len(channelClients) == 0 {
			delete(h.clients, client.Channel)
		}
		close(client.Send)
	}
}

// Subscribers reports how many local clients listen on channel.
func (h *Hub) Subscribers(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[channel])
}

// Broadcast delivers payload to local clients on channel and returns how
// many accepted it. Clients with a full buffer are skipped.
func (h *Hub) Broadcast(channel string, payload []byte) int {
	delivered := h.deliver(channel, payload)

	if h.redis != nil {
		msg, _ := json.Marshal(envelope{Origin: h.id, Payload: payload})
		err := h.redis.Publish(context.Background(), redisChannel(channel), msg).Err()
		if err != nil {
			log.Printf("redis publish error: %v", err)
		}
	}
	return delivered
}

// Close stops the redis relay.
func (h *Hub) Close() {
	if h.pubsub == nil {
		return
	}
	_ = h.pubsub.Close()
	<-h.done
}

func (h *Hub) deliver(channel string, payload []byte) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var delivered int
	for client := range h.clients[channel] {
		select {
		case client.Send <- payload:
			delivered++
		default:
		}
	}
	return delivered
}

func (h *Hub) subscribeRedis() {
	defer close(h.done)

	for msg := range h.pubsub.Channel() {
		var env envelope
		if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
			log.Printf("redis relay: bad message on %s: %v", msg.Channel, err)
			continue
		}
		if env.Origin == h.id {
			continue
		}
		h.deliver(channelFromRedis(msg.Channel), env.Payload)
	}
}

func redisChannel(channel string) string {
	return redisPrefix + channel
}

func channelFromRedis(ch string) string {
	// fleetdesk:{channel}
	if !strings.HasPrefix(ch, redisPrefix) {
		return ""
	}
	return ch[len(redisPrefix):]
}
