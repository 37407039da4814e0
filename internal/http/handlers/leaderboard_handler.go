package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillchain/skillchain-backend/internal/service"
)

// LeaderboardHandler отвечает за публичный рейтинг участников.
type LeaderboardHandler struct {
	leaderboard *service.LeaderboardService
}

// NewLeaderboardHandler создаёт новый хэндлер.
func NewLeaderboardHandler(leaderboard *service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboard: leaderboard}
}

// List GET /leaderboard
func (h *LeaderboardHandler) List(c *gin.Context) {
	entries, err := h.leaderboard.Rank(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	if entries == nil {
		entries = []service.LeaderboardEntry{}
	}

	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}
