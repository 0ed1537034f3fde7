package handlers

import (
	"folio/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func (h *Handler) SetupRouter(rateLimiter *services.IPRateLimiter) *gin.Engine {
	r := gin.Default()

	store := cookie.NewStore([]byte(h.cfg.SessionSecret))
	r.Use(sessions.Sessions("folio_session", store))
	r.Use(h.VisitorID())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})

	api := r.Group("/api/v1")

	// Public content
	api.GET("/profile", h.ShowProfile)
	api.GET("/projects", h.ListProjects)
	api.GET("/blog", h.ListBlogPosts)
	api.GET("/blog/:slug", h.ShowBlogPost)
	api.GET("/linkedin", h.ListLinkedInPosts)
	api.GET("/certificates", h.ListCertificates)
	api.GET("/timeline", h.ListTimeline)
	api.GET("/share/qr", h.ShareQR)

	// Event ingestion, rate limited per IP
	events := api.Group("/events")
	if rateLimiter != nil {
		events.Use(h.RateLimitMiddleware(rateLimiter))
	}
	{
		events.POST("/visit", h.RecordVisit)
		events.POST("/section", h.RecordSectionView)
		events.POST("/click", h.RecordLinkClick)
		events.POST("/download", h.RecordDownload)
		events.POST("/resume", h.RecordResumeOpen)
		events.POST("/custom", h.RecordCustomEvent)
		events.POST("/blog/:slug/view", h.RecordBlogView)
		events.POST("/blog/:slug/like", h.RecordBlogLike)
		events.POST("/blog/:slug/read", h.RecordBlogReadTime)
		events.POST("/perf/load", h.RecordPageLoad)
		events.POST("/perf/duration", h.RecordPageDuration)
		events.POST("/error", h.RecordError)
	}

	api.POST("/admin/login", h.AdminLogin)
	api.POST("/admin/logout", h.AdminLogout)

	// Protected admin routes
	admin := api.Group("/admin")
	admin.Use(h.AdminRequired())
	{
		admin.GET("/analytics", h.ShowAnalytics)
		admin.POST("/analytics/reset", h.ResetAnalytics)

		admin.PUT("/profile", h.SaveProfile)

		admin.POST("/projects", h.CreateProject)
		admin.PUT("/projects/:id", h.UpdateProject)
		admin.DELETE("/projects/:id", h.DeleteProject)

		admin.GET("/blog", h.ListAllBlogPosts)
		admin.POST("/blog", h.CreateBlogPost)
		admin.PUT("/blog/:id", h.UpdateBlogPost)
		admin.DELETE("/blog/:id", h.DeleteBlogPost)

		admin.POST("/linkedin", h.CreateLinkedInPost)
		admin.DELETE("/linkedin/:id", h.DeleteLinkedInPost)

		admin.POST("/certificates", h.CreateCertificate)
		admin.PUT("/certificates/:id", h.UpdateCertificate)
		admin.DELETE("/certificates/:id", h.DeleteCertificate)

		admin.POST("/timeline", h.CreateTimelineEvent)
		admin.PUT("/timeline/:id", h.UpdateTimelineEvent)
		admin.DELETE("/timeline/:id", h.DeleteTimelineEvent)
	}

	return r
}
