package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"lineup/internal/notify"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrHubStopped возвращается, когда цикл хаба уже завершён.
var ErrHubStopped = errors.New("ws: hub stopped")

// Hub хранит подключения клиентов, сгруппированные по магазину.
type Hub struct {
	// Для каждого магазина храним множество подключений.
	clients map[uuid.UUID]map[*Client]bool
	// Канал для регистрации нового клиента.
	register chan *Client
	// Канал для удаления клиента.
	unregister chan *Client
	// Канал для трансляции сообщений по конкретному магазину.
	broadcast chan Broadcast
	// Закрывается после выхода из Run.
	done chan struct{}
	mu   sync.RWMutex
	log  *slog.Logger
}

// Broadcast представляет сообщение для рассылки клиентам одного магазина.
type Broadcast struct {
	StoreID uuid.UUID
	Message []byte
}

// NewHub создает новый Hub.
func NewHub(log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Broadcast),
		done:       make(chan struct{}),
		log:        log,
	}
}

// Run обрабатывает каналы хаба до отмены контекста, затем отключает всех клиентов.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for storeID, clients := range h.clients {
				for client := range clients {
					close(client.Send)
				}
				delete(h.clients, storeID)
			}
			h.mu.Unlock()
			return
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.StoreID] == nil {
				h.clients[client.StoreID] = make(map[*Client]bool)
			}
			h.clients[client.StoreID][client] = true
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()
			h.remove(client)
			h.mu.Unlock()
		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients[message.StoreID] {
				select {
				case client.Send <- message.Message:
				default:
					// Клиент не успевает читать, отключаем его.
					h.remove(client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// remove вызывается под h.mu.
func (h *Hub) remove(client *Client) {
	clients, ok := h.clients[client.StoreID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.Send)
	if len(clients) == 0 {
		delete(h.clients, client.StoreID)
	}
}

// ClientCount возвращает число подключений магазина.
func (h *Hub) ClientCount(storeID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[storeID])
}

// Send ставит сообщение в рассылку.
func (h *Hub) Send(ctx context.Context, msg Broadcast) error {
	select {
	case h.broadcast <- msg:
		return nil
	case <-h.done:
		return ErrHubStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Publish рассылает событие напрямую подключённым клиентам. Используется, когда Redis отключён.
func (h *Hub) Publish(ctx context.Context, e notify.Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return h.Send(ctx, Broadcast{StoreID: e.StoreID, Message: data})
}

// Relay пересылает клиентам сообщения из подписки Redis до закрытия канала или отмены контекста.
func (h *Hub) Relay(ctx context.Context, messages <-chan *redis.Message) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			storeID, ok := notify.StoreFromChannel(msg.Channel)
			if !ok {
				h.log.Warn("Сообщение из неизвестного канала", "channel", msg.Channel)
				continue
			}
			if err := h.Send(ctx, Broadcast{StoreID: storeID, Message: []byte(msg.Payload)}); err != nil {
				return
			}
		}
	}
}

// Subscribe подписывается на события всех магазинов и ретранслирует их до отмены контекста.
func (h *Hub) Subscribe(ctx context.Context, client *redis.Client) error {
	sub := client.PSubscribe(ctx, notify.ChannelPattern)
	defer sub.Close()

	// Ждём подтверждения подписки, чтобы не потерять первые события.
	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("psubscribe %s: %w", notify.ChannelPattern, err)
	}
	h.log.Info("Подписка на события Redis", "pattern", notify.ChannelPattern)
	h.Relay(ctx, sub.Channel())
	return nil
}
