package handlers

import (
	"net/http"

	"folio/internal/services"
	"folio/pkg/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const visitorCookie = "folio_visitor"

// VisitorID assigns every browser a random identifier in a long-lived
// cookie. The ID is how unique visits, device info and traffic sources are
// deduplicated; it is not an account and identifies nothing but the browser
// profile.
func (h *Handler) VisitorID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(visitorCookie)
		if err != nil || id == "" {
			id = utils.GenerateVisitorID()
			c.SetCookie(visitorCookie, id, 365*24*3600, "/", "", false, true)
		}
		c.Set("visitor_id", id)
		c.Next()
	}
}

func visitorID(c *gin.Context) string {
	if v, ok := c.Get("visitor_id"); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

// AdminRequired guards the editing panels and the analytics dashboard behind
// the access-code session flag.
func (h *Handler) AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if admin, ok := session.Get("is_admin").(bool); !ok || !admin {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}

func (h *Handler) RateLimitMiddleware(limiter *services.IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		l := limiter.GetLimiter(ip)
		if !l.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			return
		}
		c.Next()
	}
}
