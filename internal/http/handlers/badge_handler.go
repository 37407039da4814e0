package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/skillchain/skillchain-backend/internal/dto"
	"github.com/skillchain/skillchain-backend/internal/http/handlers/common"
	"github.com/skillchain/skillchain-backend/internal/service"
)

// BadgeHandler отвечает за значки достижений.
type BadgeHandler struct {
	badges *service.BadgeService
}

// NewBadgeHandler создаёт новый хэндлер.
func NewBadgeHandler(badges *service.BadgeService) *BadgeHandler {
	return &BadgeHandler{badges: badges}
}

// Issue POST /badges
func (h *BadgeHandler) Issue(c *gin.Context) {
	if _, err := common.CurrentUserID(c); err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	var req dto.IssueBadgeRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, "user_id, skill и level обязательны")
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		common.RespondBadRequest(c, "неверный user_id")
		return
	}

	token, err := h.badges.IssueBadge(c.Request.Context(), service.IssueBadgeInput{
		UserID:      userID,
		Skill:       req.Skill,
		Level:       req.Level,
		Category:    req.Category,
		Description: req.Description,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, token)
}

// ListUserBadges GET /users/:id/badges
func (h *BadgeHandler) ListUserBadges(c *gin.Context) {
	userID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, "неверный user_id")
		return
	}

	badges, stats, err := h.badges.ListUserBadges(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	if badges == nil {
		badges = []service.BadgeView{}
	}

	c.JSON(http.StatusOK, gin.H{
		"badges": badges,
		"stats":  stats,
	})
}
