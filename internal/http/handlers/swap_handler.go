package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/skillchain/skillchain-backend/internal/dto"
	"github.com/skillchain/skillchain-backend/internal/http/handlers/common"
	"github.com/skillchain/skillchain-backend/internal/models"
	"github.com/skillchain/skillchain-backend/internal/service"
)

// SwapHandler отвечает за запросы на обмен навыками.
type SwapHandler struct {
	swaps *service.SwapService
}

// NewSwapHandler создаёт новый хэндлер.
func NewSwapHandler(swaps *service.SwapService) *SwapHandler {
	return &SwapHandler{swaps: swaps}
}

// Create POST /swaps
func (h *SwapHandler) Create(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	var req dto.CreateSwapRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, "to_id, skill_offered и skill_wanted обязательны")
		return
	}

	toID, err := uuid.Parse(req.ToID)
	if err != nil {
		common.RespondBadRequest(c, "неверный to_id")
		return
	}

	swap, err := h.swaps.CreateSwap(c.Request.Context(), userID, service.CreateSwapInput{
		ToID:         toID,
		SkillOffered: req.SkillOffered,
		SkillWanted:  req.SkillWanted,
		Message:      req.Message,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, swap)
}

// ListSent GET /swaps/sent
func (h *SwapHandler) ListSent(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	swaps, err := h.swaps.ListSent(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	if swaps == nil {
		swaps = []models.Swap{}
	}

	c.JSON(http.StatusOK, gin.H{"swaps": swaps})
}

// ListReceived GET /swaps/received
func (h *SwapHandler) ListReceived(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	swaps, err := h.swaps.ListReceived(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	if swaps == nil {
		swaps = []models.Swap{}
	}

	c.JSON(http.StatusOK, gin.H{"swaps": swaps})
}

// Get GET /swaps/:id
func (h *SwapHandler) Get(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	role, _ := common.CurrentUserRole(c)

	swapID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, "неверный swap_id")
		return
	}

	swap, err := h.swaps.GetSwap(c.Request.Context(), userID, role, swapID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, swap)
}

// UpdateStatus PUT /swaps/:id/status
func (h *SwapHandler) UpdateStatus(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	role, _ := common.CurrentUserRole(c)

	swapID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, "неверный swap_id")
		return
	}

	var req dto.UpdateSwapStatusRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, "status обязателен")
		return
	}

	swap, err := h.swaps.SetStatus(c.Request.Context(), userID, role, swapID, req.Status)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, swap)
}

// Delete DELETE /swaps/:id
func (h *SwapHandler) Delete(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	role, _ := common.CurrentUserRole(c)

	swapID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, "неверный swap_id")
		return
	}

	if err := h.swaps.DeleteSwap(c.Request.Context(), userID, role, swapID); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "обмен удалён"})
}

// ListAll GET /swaps (администратор)
func (h *SwapHandler) ListAll(c *gin.Context) {
	role, err := common.CurrentUserRole(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	limit, offset := common.GetPagination(c)

	swaps, total, err := h.swaps.ListAll(c.Request.Context(), role, limit, offset)
	if err != nil {
		c.Error(err)
		return
	}

	if swaps == nil {
		swaps = []models.Swap{}
	}

	c.JSON(http.StatusOK, dto.SwapListResponse{Swaps: swaps, Total: total})
}
