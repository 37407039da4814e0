package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillchain/skillchain-backend/internal/dto"
	"github.com/skillchain/skillchain-backend/internal/http/handlers/common"
	"github.com/skillchain/skillchain-backend/internal/service"
)

// ProfileHandler отвечает за профиль участника.
type ProfileHandler struct {
	profiles *service.ProfileService
}

// NewProfileHandler создаёт новый хэндлер.
func NewProfileHandler(profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// GetProfile GET /profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	profile, err := h.profiles.GetOwnProfile(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateProfile PUT /profile
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	var req dto.UpdateProfileRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, "имя обязательно")
		return
	}

	profile, err := h.profiles.UpdateProfile(c.Request.Context(), userID, service.UpdateProfileInput{
		Name:          req.Name,
		Location:      req.Location,
		Bio:           req.Bio,
		SkillsOffered: req.SkillsOffered,
		SkillsWanted:  req.SkillsWanted,
		Availability:  req.Availability,
		Privacy:       req.Privacy,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// GetUser GET /users/:id
func (h *ProfileHandler) GetUser(c *gin.Context) {
	viewerID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	viewerRole, _ := common.CurrentUserRole(c)

	userID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, "неверный user_id")
		return
	}

	profile, err := h.profiles.GetPublicProfile(c.Request.Context(), viewerID, viewerRole, userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
