package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/skillchain/skillchain-backend/internal/config"
	"github.com/skillchain/skillchain-backend/internal/http/handlers"
	"github.com/skillchain/skillchain-backend/internal/http/middleware"
	"github.com/skillchain/skillchain-backend/internal/service"
)

func SetupRouter(
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	profileHandler *handlers.ProfileHandler,
	directoryHandler *handlers.DirectoryHandler,
	leaderboardHandler *handlers.LeaderboardHandler,
	swapHandler *handlers.SwapHandler,
	feedbackHandler *handlers.FeedbackHandler,
	badgeHandler *handlers.BadgeHandler,
	matchHandler *handlers.MatchHandler,
	mediaHandler *handlers.MediaHandler,
	notificationHandler *handlers.NotificationHandler,
	wsHandler *handlers.WSHandler,
	healthHandler *handlers.HealthHandler,
	tokenManager *service.TokenManager,
	redisClient *redis.Client,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.HandleMethodNotAllowed = true
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", healthHandler.Health)
	r.StaticFS("/uploads", http.Dir(cfg.MediaStoragePath))

	api := r.Group("/api")

	rateLimit := middleware.RateLimitMiddleware
	if redisClient != nil {
		rateLimit = func(limit int64, period time.Duration) gin.HandlerFunc {
			return middleware.RateLimitWithRedis(redisClient, limit, period)
		}
	}

	authGroup := api.Group("/auth")
	authGroup.Use(rateLimit(5, cfg.RateLimitPeriod))
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
		authGroup.POST("/logout", authHandler.Logout)
	}

	// Публичные маршруты
	api.GET("/leaderboard", leaderboardHandler.List)
	api.GET("/users/:id/badges", middleware.UUIDValidator("id"), badgeHandler.ListUserBadges)
	api.GET("/users/:id/feedback", middleware.UUIDValidator("id"), feedbackHandler.ListUserFeedback)
	api.GET("/ws", wsHandler.Handle)

	// Защищённые маршруты
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(tokenManager))
	{
		protected.GET("/profile", profileHandler.GetProfile)
		protected.PUT("/profile", profileHandler.UpdateProfile)

		protected.GET("/profiles", directoryHandler.ListProfiles)
		protected.GET("/profiles/skills", directoryHandler.ListSkills)
		protected.GET("/users/:id", middleware.UUIDValidator("id"), profileHandler.GetUser)

		protected.POST("/swaps", swapHandler.Create)
		protected.GET("/swaps", middleware.AdminOnly(), swapHandler.ListAll)
		protected.GET("/swaps/sent", swapHandler.ListSent)
		protected.GET("/swaps/received", swapHandler.ListReceived)
		protected.GET("/swaps/:id", middleware.UUIDValidator("id"), swapHandler.Get)
		protected.PUT("/swaps/:id/status", middleware.UUIDValidator("id"), swapHandler.UpdateStatus)
		protected.DELETE("/swaps/:id", middleware.UUIDValidator("id"), swapHandler.Delete)

		protected.POST("/feedback", feedbackHandler.Submit)
		protected.GET("/feedback/received", feedbackHandler.ListReceived)
		protected.GET("/feedback/given", feedbackHandler.ListGiven)

		protected.POST("/badges", badgeHandler.Issue)

		protected.POST("/match", rateLimit(cfg.RateLimitLimit, cfg.RateLimitPeriod), matchHandler.Match)

		protected.GET("/notifications", notificationHandler.List)
		protected.GET("/notifications/unread/count", notificationHandler.UnreadCount)
		protected.PUT("/notifications/:id/read", middleware.UUIDValidator("id"), notificationHandler.MarkAsRead)
		protected.PUT("/notifications/read-all", notificationHandler.MarkAllAsRead)
		protected.DELETE("/notifications/:id", middleware.UUIDValidator("id"), notificationHandler.Delete)

		protected.POST("/media/photos", mediaHandler.UploadPhoto)
	}

	return r
}
