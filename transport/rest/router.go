package rest

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// NewRouter mounts the room inspection endpoints and the websocket endpoint on one engine.
func NewRouter(logger *slog.Logger, handlers Handlers, ws gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))

	router.GET("/ws", ws)
	router.GET("/ping", handlers.Ping)

	rooms := router.Group("/rooms")
	rooms.GET("", handlers.ListRooms)
	rooms.GET("/:id", handlers.GetRoom)
	rooms.GET("/:id/results", handlers.ListResults)

	return router
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	log := logger.With("component", "http")

	return func(c *gin.Context) {
		c.Next()

		log.Debug("request served",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
		)
	}
}
