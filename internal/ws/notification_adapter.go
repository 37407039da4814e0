package ws

import (
	"context"

	"github.com/google/uuid"

	"github.com/skillchain/skillchain-backend/internal/models"
)

// NotificationServiceAdapter адаптирует NotificationService для использования в Hub.
type NotificationServiceAdapter struct {
	service interface {
		CreateNotificationForWS(ctx context.Context, userID uuid.UUID, event string, data interface{}) error
	}
}

// NewNotificationServiceAdapter создаёт новый адаптер.
func NewNotificationServiceAdapter(service interface {
	CreateNotificationForWS(ctx context.Context, userID uuid.UUID, event string, data interface{}) error
}) *NotificationServiceAdapter {
	return &NotificationServiceAdapter{service: service}
}

// CreateNotification реализует интерфейс NotificationSaver.
func (a *NotificationServiceAdapter) CreateNotification(ctx context.Context, userID uuid.UUID, event string, data interface{}) error {
	return a.service.CreateNotificationForWS(ctx, userID, event, data)
}

// SwapEventNotifier доставляет события обменов через хаб. Реализует
// интерфейс уведомлений сервиса обменов.
type SwapEventNotifier struct {
	hub *Hub
}

// NewSwapEventNotifier создаёт нотификатор событий обменов.
func NewSwapEventNotifier(hub *Hub) *SwapEventNotifier {
	return &SwapEventNotifier{hub: hub}
}

// NotifySwapEvent отправляет событие обмена пользователю. Ошибка доставки
// не прерывает бизнес-операцию.
func (n *SwapEventNotifier) NotifySwapEvent(_ context.Context, userID uuid.UUID, event string, swap *models.Swap) {
	_ = n.hub.BroadcastToUser(userID, event, swap)
}
