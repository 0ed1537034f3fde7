package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Event ingestion. Every endpoint is fire-and-forget: the recorder queues the
// event and the response never reflects whether the increment lands. Bad
// telemetry must not break the page.

type nameRequest struct {
	Name string `json:"name" binding:"required"`
}

type downloadRequest struct {
	FileName string `json:"file_name" binding:"required"`
}

type customEventRequest struct {
	Category string            `json:"category" binding:"required"`
	Name     string            `json:"name" binding:"required"`
	Meta     map[string]string `json:"meta"`
}

type durationRequest struct {
	Millis int64 `json:"ms" binding:"required"`
}

type pageTimingRequest struct {
	Page   string `json:"page" binding:"required"`
	Millis int64  `json:"ms" binding:"required"`
}

type errorRequest struct {
	Message   string `json:"message" binding:"required"`
	Stack     string `json:"stack"`
	Component string `json:"component"`
}

func accepted(c *gin.Context) {
	c.JSON(http.StatusAccepted, gin.H{"status": "recorded"})
}

func (h *Handler) RecordSectionView(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.recorder.LogSectionView(req.Name)
	accepted(c)
}

func (h *Handler) RecordLinkClick(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.recorder.LogLinkClick(req.Name)
	accepted(c)
}

func (h *Handler) RecordDownload(c *gin.Context) {
	var req downloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.recorder.LogDownload(req.FileName)
	accepted(c)
}

func (h *Handler) RecordResumeOpen(c *gin.Context) {
	h.recorder.LogResumeOpen()
	accepted(c)
}

// RecordVisit counts the unique visitor and, once a day per visitor, the
// device and traffic-source breakdowns derived from the request itself.
func (h *Handler) RecordVisit(c *gin.Context) {
	id := visitorID(c)
	h.recorder.LogUniqueUser(id)
	h.recorder.LogDeviceInfo(id, c.Request.UserAgent())
	h.recorder.LogTrafficSource(id, c.Request.Referer(), c.ClientIP())
	accepted(c)
}

func (h *Handler) RecordCustomEvent(c *gin.Context) {
	var req customEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.recorder.LogCustomEvent(req.Category, req.Name, req.Meta)
	accepted(c)
}

func (h *Handler) RecordBlogView(c *gin.Context) {
	h.recorder.LogBlogView(c.Param("slug"))
	accepted(c)
}

func (h *Handler) RecordBlogLike(c *gin.Context) {
	h.recorder.LogBlogLike(c.Param("slug"))
	accepted(c)
}

func (h *Handler) RecordBlogReadTime(c *gin.Context) {
	var req durationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.recorder.LogBlogReadTime(c.Param("slug"), req.Millis)
	accepted(c)
}

func (h *Handler) RecordPageLoad(c *gin.Context) {
	var req pageTimingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.recorder.LogPageLoad(req.Page, req.Millis)
	accepted(c)
}

func (h *Handler) RecordPageDuration(c *gin.Context) {
	var req pageTimingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.recorder.LogPageDuration(req.Page, req.Millis)
	accepted(c)
}

func (h *Handler) RecordError(c *gin.Context) {
	var req errorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.recorder.LogError(req.Message, req.Stack, req.Component)
	accepted(c)
}
