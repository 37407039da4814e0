package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillchain/skillchain-backend/internal/ai"
	"github.com/skillchain/skillchain-backend/internal/dto"
	"github.com/skillchain/skillchain-backend/internal/http/handlers/common"
	"github.com/skillchain/skillchain-backend/internal/logger"
)

// MatchHandler отвечает за подбор совпадений языковой моделью.
type MatchHandler struct {
	matcher *ai.Client
}

// NewMatchHandler создаёт новый хэндлер.
func NewMatchHandler(matcher *ai.Client) *MatchHandler {
	return &MatchHandler{matcher: matcher}
}

// Match POST /match
// Ответ модели возвращается как есть в поле matches. Любая ошибка внешнего
// сервиса сводится к общему сообщению, детали остаются в логах.
func (h *MatchHandler) Match(c *gin.Context) {
	if _, err := common.CurrentUserID(c); err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	var req dto.MatchRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, "некорректное тело запроса")
		return
	}

	profiles := make([]ai.MatchProfile, 0, len(req.Profiles))
	for _, p := range req.Profiles {
		profiles = append(profiles, ai.MatchProfile{
			Name:          p.Name,
			SkillsOffered: p.SkillsOffered,
			SkillsWanted:  p.SkillsWanted,
		})
	}

	matches, err := h.matcher.SuggestMatches(c.Request.Context(), ai.MatchRequest{
		SkillsOffered: req.SkillsOffered,
		SkillsWanted:  req.SkillsWanted,
		Profiles:      profiles,
	})
	if err != nil {
		if logger.Log != nil {
			logger.Log.WithError(err).Error("match: ошибка внешнего сервиса")
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to generate matches"})
		return
	}

	c.JSON(http.StatusOK, dto.MatchResponse{Matches: matches})
}
