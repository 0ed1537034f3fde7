package handlers

import (
	"net/http"
	"time"

	"folio/internal/services"

	"github.com/gin-gonic/gin"
)

// ShowAnalytics returns the full dashboard payload: the raw snapshot plus the
// derived insights and growth figures, recomputed on every call.
func (h *Handler) ShowAnalytics(c *gin.Context) {
	snap := h.metrics.GetAnalyticsData(c.Request.Context())
	insights := services.ComputeInsights(snap.DailySeries, snap.Totals)
	growth := services.ComputeGrowthSummary(snap.DailySeries, time.Now())

	c.JSON(http.StatusOK, gin.H{
		"snapshot": snap,
		"insights": insights,
		"growth":   growth,
	})
}

// ResetAnalytics wipes every analytics document. Irreversible; admin only.
func (h *Handler) ResetAnalytics(c *gin.Context) {
	if err := h.store.Reset(c.Request.Context()); err != nil {
		h.logger.Error("Failed to reset analytics", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset analytics"})
		return
	}
	h.audit.LogAction("RESET_ANALYTICS", "", nil, c.ClientIP())
	c.JSON(http.StatusOK, gin.H{"message": "Analytics reset"})
}
