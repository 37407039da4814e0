package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillchain/skillchain-backend/internal/dto"
	"github.com/skillchain/skillchain-backend/internal/http/handlers/common"
	"github.com/skillchain/skillchain-backend/internal/models"
	"github.com/skillchain/skillchain-backend/internal/service"
	"github.com/skillchain/skillchain-backend/internal/ws"
)

// NotificationHandler отвечает за уведомления пользователя.
type NotificationHandler struct {
	notifications *service.NotificationService
	hub           *ws.Hub
}

// NewNotificationHandler создаёт новый хэндлер.
func NewNotificationHandler(notifications *service.NotificationService, hub *ws.Hub) *NotificationHandler {
	return &NotificationHandler{
		notifications: notifications,
		hub:           hub,
	}
}

// List GET /notifications?unread_only=&limit=&offset=
func (h *NotificationHandler) List(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	limit, offset := common.GetPagination(c)
	unreadOnly := c.Query("unread_only") == "true"

	notifications, err := h.notifications.ListNotifications(c.Request.Context(), userID, limit, offset, unreadOnly)
	if err != nil {
		c.Error(err)
		return
	}

	if notifications == nil {
		notifications = []models.Notification{}
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// UnreadCount GET /notifications/unread/count
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	count, err := h.notifications.CountUnread(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.UnreadCountResponse{Count: count})
}

// MarkAsRead PUT /notifications/:id/read
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	notificationID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, "неверный notification_id")
		return
	}

	if err := h.notifications.MarkAsRead(c.Request.Context(), notificationID, userID); err != nil {
		c.Error(err)
		return
	}

	// Подписчики получают свежий счётчик
	if h.hub != nil {
		h.hub.PushUnreadCount(userID)
	}

	c.JSON(http.StatusOK, gin.H{"message": "уведомление прочитано"})
}

// MarkAllAsRead PUT /notifications/read-all
func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	if err := h.notifications.MarkAllAsRead(c.Request.Context(), userID); err != nil {
		c.Error(err)
		return
	}

	if h.hub != nil {
		h.hub.PushUnreadCount(userID)
	}

	c.JSON(http.StatusOK, gin.H{"message": "все уведомления прочитаны"})
}

// Delete DELETE /notifications/:id
func (h *NotificationHandler) Delete(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	notificationID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, "неверный notification_id")
		return
	}

	if err := h.notifications.DeleteNotification(c.Request.Context(), notificationID, userID); err != nil {
		c.Error(err)
		return
	}

	if h.hub != nil {
		h.hub.PushUnreadCount(userID)
	}

	c.JSON(http.StatusOK, gin.H{"message": "уведомление удалено"})
}
