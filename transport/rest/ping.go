package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (that *handlers) Ping(c *gin.Context) {
	c.String(http.StatusOK, "pong")
}
