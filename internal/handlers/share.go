package handlers

import (
	"net/http"
	"strconv"

	"folio/internal/services"

	"github.com/gin-gonic/gin"
)

// ShareQR renders the configured site URL as a QR code, PNG by default or
// SVG with ?format=svg.
func (h *Handler) ShareQR(c *gin.Context) {
	size, err := strconv.Atoi(c.DefaultQuery("size", "256"))
	if err != nil || size < 64 || size > 1024 {
		size = 256
	}

	opts := services.QROptions{
		Content: h.cfg.SiteURL,
		Size:    size,
		FgColor: c.DefaultQuery("fg", "#000000"),
		BgColor: c.DefaultQuery("bg", "#FFFFFF"),
	}

	if c.Query("format") == "svg" {
		svg, err := h.qr.GenerateSVG(opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate QR code"})
			return
		}
		c.Data(http.StatusOK, "image/svg+xml", []byte(svg))
		return
	}

	_, raw, err := h.qr.GeneratePNG(opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate QR code"})
		return
	}
	c.Data(http.StatusOK, "image/png", raw)
}
