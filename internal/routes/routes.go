package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/chirpnet/chirp-backend/internal/config"
	"github.com/chirpnet/chirp-backend/internal/handler"
	"github.com/chirpnet/chirp-backend/internal/middleware"
	"github.com/chirpnet/chirp-backend/pkg/jwt"
)

// Setup configures all API routes
func Setup(
	router *gin.Engine,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	postHandler *handler.PostHandler,
	messageHandler *handler.MessageHandler,
	notificationHandler *handler.NotificationHandler,
	mediaHandler *handler.MediaHandler,
	wsHandler *handler.WSHandler,
	jwtManager *jwt.Manager,
	cfg *config.Config,
) {
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Metrics())

	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		corsConfig.AllowOrigins = nil
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	}
	router.Use(cors.New(corsConfig))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
	})

	// Authentication
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
	auth.GET("/me", middleware.JWTAuth(jwtManager), authHandler.Me)

	// Users and follow graph
	users := api.Group("/users")
	users.GET("/search/query", userHandler.Search)
	users.GET("/:id", middleware.OptionalJWTAuth(jwtManager), userHandler.GetProfile)
	users.PUT("/:id", middleware.JWTAuth(jwtManager), userHandler.UpdateProfile)
	users.POST("/:id/follow", middleware.JWTAuth(jwtManager), userHandler.ToggleFollow)
	users.GET("/:id/followers", userHandler.Followers)
	users.GET("/:id/following", userHandler.Following)

	// Posts, likes and comments
	posts := api.Group("/posts")
	posts.GET("", middleware.OptionalJWTAuth(jwtManager), postHandler.Feed)
	posts.POST("", middleware.JWTAuth(jwtManager), postHandler.Create)
	posts.GET("/friends", middleware.JWTAuth(jwtManager), postHandler.FriendsFeed)
	posts.GET("/search", middleware.OptionalJWTAuth(jwtManager), postHandler.Search)
	posts.GET("/user/:userId", middleware.OptionalJWTAuth(jwtManager), postHandler.UserPosts)
	posts.GET("/:id", middleware.OptionalJWTAuth(jwtManager), postHandler.Get)
	posts.DELETE("/:id", middleware.JWTAuth(jwtManager), postHandler.Delete)
	posts.POST("/:id/like", middleware.JWTAuth(jwtManager), postHandler.ToggleLike)
	posts.POST("/:id/comments", middleware.JWTAuth(jwtManager), postHandler.AddComment)
	posts.GET("/:id/comments", postHandler.ListComments)

	// Direct messages
	messages := api.Group("/messages", middleware.JWTAuth(jwtManager))
	messages.POST("", messageHandler.Send)
	messages.GET("/conversations", messageHandler.ListConversations)
	messages.GET("/:userId", messageHandler.GetThread)
	messages.PUT("/:messageId/read", messageHandler.MarkRead)
	messages.PUT("/conversation/:userId/read", messageHandler.MarkConversationRead)

	// Notifications
	notifications := api.Group("/notifications", middleware.JWTAuth(jwtManager))
	notifications.GET("", notificationHandler.List)
	notifications.GET("/unread-count", notificationHandler.UnreadCount)
	notifications.PUT("/:id/read", notificationHandler.MarkRead)
	notifications.PUT("/read-all", notificationHandler.MarkAllRead)

	// Media uploads
	api.POST("/media", middleware.JWTAuth(jwtManager), mediaHandler.Upload)

	// WebSocket endpoint; token may arrive as a query param from browsers
	router.GET("/ws", middleware.JWTAuth(jwtManager), wsHandler.Connect)
}
