package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Healthz reports liveness and the number of mounted views.
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "views": h.sessions.Len()})
}
