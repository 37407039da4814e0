package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillchain/skillchain-backend/internal/http/handlers/common"
	"github.com/skillchain/skillchain-backend/internal/models"
	"github.com/skillchain/skillchain-backend/internal/service"
)

// DirectoryHandler отвечает за каталог участников.
type DirectoryHandler struct {
	directory *service.DirectoryService
}

// NewDirectoryHandler создаёт новый хэндлер.
func NewDirectoryHandler(directory *service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directory: directory}
}

// ListProfiles GET /profiles?search=&skill=&location=
func (h *DirectoryHandler) ListProfiles(c *gin.Context) {
	viewerID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	filter := service.DirectoryFilter{
		Search:   c.Query("search"),
		Skill:    c.Query("skill"),
		Location: c.Query("location"),
	}

	profiles, err := h.directory.List(c.Request.Context(), viewerID, filter)
	if err != nil {
		c.Error(err)
		return
	}

	// Пустой результат отдаётся явным пустым списком, а не null
	if profiles == nil {
		profiles = []models.Profile{}
	}

	c.JSON(http.StatusOK, gin.H{
		"profiles": profiles,
		"count":    len(profiles),
	})
}

// ListSkills GET /profiles/skills
func (h *DirectoryHandler) ListSkills(c *gin.Context) {
	viewerID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	profiles, err := h.directory.List(c.Request.Context(), viewerID, service.DirectoryFilter{})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"skills": service.CollectSkills(profiles)})
}
