package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Root answers GET / for uptime checks.
func Root(c *gin.Context) {
	c.String(http.StatusOK, "Server is running")
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
