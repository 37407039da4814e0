package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/skillchain/skillchain-backend/internal/goroutine"
)

// NotificationSaver интерфейс для сохранения уведомлений в БД.
type NotificationSaver interface {
	CreateNotification(ctx context.Context, userID uuid.UUID, event string, data interface{}) error
}

// UnreadCounter возвращает количество непрочитанных уведомлений пользователя.
type UnreadCounter interface {
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
}

// Hub управляет всеми WebSocket клиентами.
type Hub struct {
	mu                sync.RWMutex
	clients           map[uuid.UUID]map[*Client]struct{}
	register          chan *Client
	unregister        chan *Client
	broadcast         chan message
	notificationSaver NotificationSaver
	unreadCounter     UnreadCounter
	ctx               context.Context
}

type message struct {
	userID  uuid.UUID
	payload []byte
}

// NewHub создаёт новый хаб.
func NewHub(ctx context.Context) *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan message, 32),
		ctx:        ctx,
	}
}

// SetNotificationSaver устанавливает сервис для сохранения уведомлений.
func (h *Hub) SetNotificationSaver(saver NotificationSaver) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.notificationSaver = saver
}

// SetUnreadCounter устанавливает источник счётчика непрочитанных уведомлений.
func (h *Hub) SetUnreadCounter(counter UnreadCounter) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.unreadCounter = counter
}

// Run запускает главный цикл хаба.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
			// Новое подключение сразу получает актуальный счётчик
			h.pushUnreadCount(client.userID)
		case client := <-h.unregister:
			h.removeClient(client)
		case msg := <-h.broadcast:
			h.send(msg.userID, msg.payload)
		}
	}
}

// Register добавляет клиента.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister удаляет клиента.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// BroadcastToUser отправляет сообщение конкретному пользователю и сохраняет уведомление в БД.
func (h *Hub) BroadcastToUser(userID uuid.UUID, event string, data any) error {
	// Сообщение для клиента строго следует контракту WebSocket API:
	// поле "type" содержит имя события, "data" — полезную нагрузку.
	payload := map[string]any{
		"type": event,
		"data": data,
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("ws: не удалось сериализовать сообщение: %w", err)
	}

	h.mu.RLock()
	saver := h.notificationSaver
	ctx := h.ctx
	h.mu.RUnlock()

	if saver != nil {
		// Сохраняем асинхронно, чтобы не блокировать отправку
		goroutine.SafeGoWithContext(ctx, func(ctx context.Context) {
			if err := saver.CreateNotification(ctx, userID, event, data); err != nil {
				fmt.Printf("ws: не удалось сохранить уведомление: %v\n", err)
				return
			}
			// После записи уведомления счётчик изменился
			h.pushUnreadCount(userID)
		})
	}

	h.broadcast <- message{userID: userID, payload: raw}
	return nil
}

// PushUnreadCount отправляет пользователю актуальный счётчик непрочитанных
// уведомлений. Вызывается после чтения или удаления уведомлений.
func (h *Hub) PushUnreadCount(userID uuid.UUID) {
	h.pushUnreadCount(userID)
}

func (h *Hub) pushUnreadCount(userID uuid.UUID) {
	h.mu.RLock()
	counter := h.unreadCounter
	ctx := h.ctx
	h.mu.RUnlock()

	if counter == nil {
		return
	}

	count, err := counter.CountUnread(ctx, userID)
	if err != nil {
		fmt.Printf("ws: не удалось получить счётчик уведомлений: %v\n", err)
		return
	}

	raw, err := json.Marshal(map[string]any{
		"type": "notification_count",
		"data": map[string]int{"count": count},
	})
	if err != nil {
		return
	}

	select {
	case h.broadcast <- message{userID: userID, payload: raw}:
	default:
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.userID]; !ok {
		h.clients[client.userID] = make(map[*Client]struct{})
	}
	h.clients[client.userID][client] = struct{}{}
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.clients[client.userID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.clients, client.userID)
		}
	}
}

func (h *Hub) send(userID uuid.UUID, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients[userID] {
		select {
		case client.send <- payload:
		default:
			c := client
			goroutine.SafeGo(func() {
				c.Close()
			})
		}
	}
}
