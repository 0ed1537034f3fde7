package handlers

import (
	"log/slog"

	"folio/internal/config"
	"folio/internal/repository"
	"folio/internal/services"

	"gorm.io/gorm"
)

type Handler struct {
	cfg      config.Config
	logger   *slog.Logger
	db       *gorm.DB
	store    *repository.AnalyticsStore
	recorder *services.RecorderService
	metrics  *services.MetricsService
	content  *services.ContentService
	audit    *services.AuditService
	qr       *services.QRService
}

func NewHandler(
	cfg config.Config,
	logger *slog.Logger,
	db *gorm.DB,
	store *repository.AnalyticsStore,
	recorder *services.RecorderService,
	metrics *services.MetricsService,
	content *services.ContentService,
	audit *services.AuditService,
	qr *services.QRService,
) *Handler {
	return &Handler{
		cfg:      cfg,
		logger:   logger,
		db:       db,
		store:    store,
		recorder: recorder,
		metrics:  metrics,
		content:  content,
		audit:    audit,
		qr:       qr,
	}
}
