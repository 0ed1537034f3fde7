package handlers

import (
	"net/http"

	"folio/pkg/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type adminLoginRequest struct {
	AccessCode string `json:"access_code" binding:"required"`
}

// AdminLogin verifies the shared access code and flags the session. A bcrypt
// hash takes precedence over the plain code when both are configured.
func (h *Handler) AdminLogin(c *gin.Context) {
	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ok := false
	switch {
	case h.cfg.AdminCodeHash != "":
		ok = utils.CheckAccessCodeHash(req.AccessCode, h.cfg.AdminCodeHash)
	case h.cfg.AdminAccessCode != "":
		ok = utils.SecureCompare(req.AccessCode, h.cfg.AdminAccessCode)
	}

	if !ok {
		h.audit.LogAction("ADMIN_LOGIN_FAILED", "", nil, c.ClientIP())
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid access code"})
		return
	}

	session := sessions.Default(c)
	session.Set("is_admin", true)
	if err := session.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
		return
	}

	h.audit.LogAction("ADMIN_LOGIN", "", nil, c.ClientIP())
	c.JSON(http.StatusOK, gin.H{"message": "Login successful"})
}

func (h *Handler) AdminLogout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
