package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"folio/internal/models"
	"folio/internal/services"

	"github.com/gin-gonic/gin"
)

// Public content reads plus the admin editing panels. Pure CRUD; the only
// intelligence is the audit trail inside the content service.

func (h *Handler) ShowProfile(c *gin.Context) {
	profile, err := h.content.GetProfile()
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not set up yet"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *Handler) SaveProfile(c *gin.Context) {
	var profile models.Profile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if profile.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}
	if err := h.content.SaveProfile(&profile, c.ClientIP()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save profile"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *Handler) ListProjects(c *gin.Context) {
	projects, err := h.content.ListProjects()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, projects)
}

func (h *Handler) CreateProject(c *gin.Context) {
	var project models.Project
	if err := c.ShouldBindJSON(&project); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if project.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}
	if err := h.content.CreateProject(&project, c.ClientIP()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
		return
	}
	c.JSON(http.StatusCreated, project)
}

func (h *Handler) UpdateProject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var project models.Project
	if err := c.ShouldBindJSON(&project); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	project.ID = id
	if err := h.content.UpdateProject(&project, c.ClientIP()); err != nil {
		writeContentError(c, err, "Failed to update project")
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *Handler) DeleteProject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.content.DeleteProject(id, c.ClientIP()); err != nil {
		writeContentError(c, err, "Failed to delete project")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Project deleted"})
}

func (h *Handler) ListBlogPosts(c *gin.Context) {
	posts, err := h.content.ListBlogPosts(true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *Handler) ListAllBlogPosts(c *gin.Context) {
	posts, err := h.content.ListBlogPosts(false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *Handler) ShowBlogPost(c *gin.Context) {
	post, err := h.content.GetBlogPost(c.Param("slug"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *Handler) CreateBlogPost(c *gin.Context) {
	var post models.BlogPost
	if err := c.ShouldBindJSON(&post); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if post.Slug == "" || post.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Slug and title are required"})
		return
	}
	if err := h.content.CreateBlogPost(&post, c.ClientIP()); err != nil {
		if err.Error() == "slug already taken" {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (h *Handler) UpdateBlogPost(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var post models.BlogPost
	if err := c.ShouldBindJSON(&post); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	post.ID = id
	if err := h.content.UpdateBlogPost(&post, c.ClientIP()); err != nil {
		writeContentError(c, err, "Failed to update post")
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *Handler) DeleteBlogPost(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.content.DeleteBlogPost(id, c.ClientIP()); err != nil {
		writeContentError(c, err, "Failed to delete post")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

func (h *Handler) ListLinkedInPosts(c *gin.Context) {
	posts, err := h.content.ListLinkedInPosts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *Handler) CreateLinkedInPost(c *gin.Context) {
	var post models.LinkedInPost
	if err := c.ShouldBindJSON(&post); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if post.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "URL is required"})
		return
	}
	if err := h.content.CreateLinkedInPost(&post, c.ClientIP()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (h *Handler) DeleteLinkedInPost(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.content.DeleteLinkedInPost(id, c.ClientIP()); err != nil {
		writeContentError(c, err, "Failed to delete post")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

func (h *Handler) ListCertificates(c *gin.Context) {
	certs, err := h.content.ListCertificates()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, certs)
}

func (h *Handler) CreateCertificate(c *gin.Context) {
	var cert models.Certificate
	if err := c.ShouldBindJSON(&cert); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if cert.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}
	if err := h.content.CreateCertificate(&cert, c.ClientIP()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create certificate"})
		return
	}
	c.JSON(http.StatusCreated, cert)
}

func (h *Handler) UpdateCertificate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var cert models.Certificate
	if err := c.ShouldBindJSON(&cert); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cert.ID = id
	if err := h.content.UpdateCertificate(&cert, c.ClientIP()); err != nil {
		writeContentError(c, err, "Failed to update certificate")
		return
	}
	c.JSON(http.StatusOK, cert)
}

func (h *Handler) DeleteCertificate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.content.DeleteCertificate(id, c.ClientIP()); err != nil {
		writeContentError(c, err, "Failed to delete certificate")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Certificate deleted"})
}

func (h *Handler) ListTimeline(c *gin.Context) {
	events, err := h.content.ListTimeline()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *Handler) CreateTimelineEvent(c *gin.Context) {
	var ev models.TimelineEvent
	if err := c.ShouldBindJSON(&ev); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if ev.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}
	if err := h.content.CreateTimelineEvent(&ev, c.ClientIP()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create event"})
		return
	}
	c.JSON(http.StatusCreated, ev)
}

func (h *Handler) UpdateTimelineEvent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var ev models.TimelineEvent
	if err := c.ShouldBindJSON(&ev); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ev.ID = id
	if err := h.content.UpdateTimelineEvent(&ev, c.ClientIP()); err != nil {
		writeContentError(c, err, "Failed to update event")
		return
	}
	c.JSON(http.StatusOK, ev)
}

func (h *Handler) DeleteTimelineEvent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.content.DeleteTimelineEvent(id, c.ClientIP()); err != nil {
		writeContentError(c, err, "Failed to delete event")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event deleted"})
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return 0, false
	}
	return uint(id), true
}

func writeContentError(c *gin.Context, err error, fallback string) {
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
}
