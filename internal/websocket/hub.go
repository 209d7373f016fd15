package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"messaging-backoffice-be/internal/entity"
	"messaging-backoffice-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const clusterChannel = "console_events"

// Hub fans billing notifications out to every connected admin console.
// With Redis configured it also relays each broadcast to the other
// instances so consoles connected elsewhere receive it too.
type Hub struct {
	// AdminID -> open connections (an admin may have several tabs)
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.AdminID] = append(h.clients[client.AdminID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Console connected", map[string]interface{}{"admin_id": client.AdminID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.AdminID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.AdminID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.AdminID]) == 0 {
					delete(h.clients, client.AdminID)
					h.logger.Info("Hub", "Console disconnected", map[string]interface{}{"admin_id": client.AdminID})
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast pushes a notification to every connected console. With Redis
// the message goes through the cluster channel, which the local relay loop
// also consumes, so each console sees it exactly once.
func (h *Hub) Broadcast(notification entity.Notification) {
	data, _ := json.Marshal(map[string]interface{}{
		"type": "notification",
		"data": notification,
	})

	if h.rdb != nil {
		h.rdb.Publish(context.Background(), clusterChannel, data)
		return
	}
	h.broadcastLocal(data)
}

func (h *Hub) broadcastLocal(data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, clients := range h.clients {
		for _, client := range clients {
			select {
			case client.Send <- data:
			default:
				// Slow consumer: drop the connection rather than block the hub.
				close(client.Send)
				go func(c *Client) { h.unregister <- c }(client)
			}
		}
	}
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		h.broadcastLocal([]byte(msg.Payload))
	}
}
