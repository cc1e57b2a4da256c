package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// UpdateLogLevelRequest represents the request body for changing the log level
type UpdateLogLevelRequest struct {
	Level string `json:"level" binding:"required"`
}

// GET /api/settings/log-level
func GetLogLevel(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"level": log.GetLevel().String()})
}

// UpdateLogLevel changes the process log level without a restart.
// PUT /api/settings/log-level
func UpdateLogLevel(c *gin.Context) {
	var req UpdateLogLevelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	level, err := log.ParseLevel(req.Level)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	log.SetLevel(level)
	log.Printf("[Settings] Log level set to %s", level)
	c.JSON(http.StatusOK, gin.H{"level": level.String()})
}
