package http

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/suchimauz/appointment-reminder-bot/internal/config"
	"github.com/suchimauz/appointment-reminder-bot/internal/core/ports/out"
)

// NewRouter wraps the API with recovery, request logging, CORS and per-client rate limiting.
func NewRouter(cfg *config.Config, controller *ChatController, logger out.LoggerPort) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger.WithModule("HttpServer")))

	router.Use(cors.New(corsConfig(cfg.HTTP.AllowedOrigins)))

	router.Use(NewRateLimiter(cfg.HTTP.RateLimitRPS, cfg.HTTP.RateLimitBurst).Middleware())

	controller.RegisterRoutes(router)
	return router
}

func corsConfig(origins []string) cors.Config {
	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length", "X-Confirm-Prompt"},
		MaxAge:        12 * time.Hour,
	}

	if len(origins) == 0 || slices.Contains(origins, "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = origins
	}
	return corsCfg
}

func requestLogger(logger out.LoggerPort) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		logger.Debug("http.request", out.LogFields{
			"method":   ctx.Request.Method,
			"path":     ctx.Request.URL.Path,
			"status":   ctx.Writer.Status(),
			"clientIp": ctx.ClientIP(),
			"latency":  time.Since(start).String(),
		})
	}
}
