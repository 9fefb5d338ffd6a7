package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"qaforum/api/internal/middleware"
)

func (h HandlerSet) AdminStats(c *gin.Context) {
	stats, err := h.services.Stats.Snapshot(c.Request.Context(), middleware.AccessToken(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
