package handlers

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"folio/internal/config"
	"folio/internal/models"
	"folio/internal/repository"
	"folio/internal/services"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	testAccessCode    = "test-access-code"
	eventuallyTimeout = 2 * time.Second
	eventuallyTick    = 10 * time.Millisecond
)

func setupTestHandler(t *testing.T) (*Handler, *gorm.DB, *repository.AnalyticsStore) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	db.AutoMigrate(
		&models.Profile{}, &models.Project{}, &models.BlogPost{},
		&models.LinkedInPost{}, &models.Certificate{}, &models.TimelineEvent{},
		&models.AuditLog{},
	)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := repository.NewAnalyticsStore(rdb)

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	cfg := config.Config{
		SessionSecret:   "test-secret-12345678901234567890123456789012",
		SiteURL:         "https://example.com",
		AdminAccessCode: testAccessCode,
	}

	audit := services.NewAuditService(db, logger)
	visitors := services.NewVisitorService(store, logger)
	recorder := services.NewRecorderService(store, logger, nil, visitors)
	metrics := services.NewMetricsService(store, logger)
	content := services.NewContentService(db, audit)
	qr := services.NewQRService()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go recorder.Start(ctx)
	go audit.Start(ctx)

	h := NewHandler(cfg, logger, db, store, recorder, metrics, content, audit, qr)
	return h, db, store
}

func setupTestRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return h.SetupRouter(nil)
}

func performRequest(r *gin.Engine, method, path, body string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// adminLogin authenticates against the access-code endpoint and returns the
// session cookies needed for protected routes.
func adminLogin(t *testing.T, r *gin.Engine) []*http.Cookie {
	t.Helper()
	w := performRequest(r, "POST", "/api/v1/admin/login", `{"access_code":"`+testAccessCode+`"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("admin login failed: %d %s", w.Code, w.Body.String())
	}
	return w.Result().Cookies()
}
