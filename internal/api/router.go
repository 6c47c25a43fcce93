package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wealthmate/captionrag/internal/api/chat"
	"github.com/wealthmate/captionrag/internal/api/middleware"
	"github.com/wealthmate/captionrag/internal/service"
)

// RouterConfig holds configuration for the router
type RouterConfig struct {
	APIKey       string
	AllowOrigins []string
}

// SetupRouter sets up the Gin router
func SetupRouter(
	chatService *service.ChatService,
	speaker chat.Speaker,
	logger *zap.Logger,
	cfg RouterConfig,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middleware.CORS(cfg.AllowOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	chatHandler := chat.NewHandler(chatService, speaker, logger)
	apiGroup := r.Group("/api")
	apiGroup.Use(middleware.Auth(cfg.APIKey))
	chatHandler.RegisterRoutes(apiGroup)

	return r
}
