package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"folio/internal/config"
	"folio/internal/handlers"
	"folio/internal/models"
	"folio/internal/repository"
	"folio/internal/services"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

const accessCode = "integration-code"

// setupStack wires the whole application the way cmd/server does, backed by
// in-memory stores.
func setupStack(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Profile{}, &models.Project{}, &models.BlogPost{},
		&models.LinkedInPost{}, &models.Certificate{}, &models.TimelineEvent{},
		&models.AuditLog{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := repository.NewAnalyticsStore(rdb)

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	cfg := config.Config{
		SessionSecret:   "integration-secret-0123456789abcdef",
		SiteURL:         "https://example.com",
		AdminAccessCode: accessCode,
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

	h := handlers.NewHandler(cfg, logger, db, store, recorder, metrics, content, audit, qr)
	return h.SetupRouter(nil)
}

func doJSON(r *gin.Engine, method, path string, body map[string]interface{}, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		raw, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewBuffer(raw))
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

func login(t *testing.T, r *gin.Engine) []*http.Cookie {
	t.Helper()
	w := doJSON(r, "POST", "/api/v1/admin/login", map[string]interface{}{"access_code": accessCode}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", w.Code, w.Body.String())
	}
	return w.Result().Cookies()
}

// Events fired through the public API must eventually show up in the
// analytics snapshot read through the admin API.
func TestEventsRoundTrip(t *testing.T) {
	r := setupStack(t)

	for i := 0; i < 3; i++ {
		w := doJSON(r, "POST", "/api/v1/events/click", map[string]interface{}{"name": "github"}, nil)
		assert.Equal(t, http.StatusAccepted, w.Code)
	}
	w := doJSON(r, "POST", "/api/v1/events/download", map[string]interface{}{"file_name": "resume.pdf"}, nil)
	assert.Equal(t, http.StatusAccepted, w.Code)

	cookies := login(t, r)

	assert.Eventually(t, func() bool {
		w := doJSON(r, "GET", "/api/v1/admin/analytics", nil, cookies)
		if w.Code != http.StatusOK {
			return false
		}
		var payload struct {
			Snapshot struct {
				Totals struct {
					TotalClicks    int64 `json:"total_clicks"`
					TotalDownloads int64 `json:"total_downloads"`
				} `json:"totals"`
				Links map[string]int64 `json:"links"`
			} `json:"snapshot"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
			return false
		}
		return payload.Snapshot.Totals.TotalClicks == 3 &&
			payload.Snapshot.Totals.TotalDownloads == 1 &&
			payload.Snapshot.Links["github"] == 3
	}, 2*time.Second, 20*time.Millisecond)
}

func TestVisitUniqueAcrossRequests(t *testing.T) {
	r := setupStack(t)

	// First browser visits twice, second browser once.
	w := doJSON(r, "POST", "/api/v1/events/visit", nil, nil)
	assert.Equal(t, http.StatusAccepted, w.Code)
	first := w.Result().Cookies()
	doJSON(r, "POST", "/api/v1/events/visit", nil, first)
	doJSON(r, "POST", "/api/v1/events/visit", nil, nil)

	cookies := login(t, r)

	assert.Eventually(t, func() bool {
		w := doJSON(r, "GET", "/api/v1/admin/analytics", nil, cookies)
		var payload struct {
			Snapshot struct {
				UserRollups struct {
					Today int `json:"today"`
				} `json:"user_rollups"`
			} `json:"snapshot"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
			return false
		}
		return payload.Snapshot.UserRollups.Today == 2
	}, 2*time.Second, 20*time.Millisecond)
}

func TestContentLifecycleAndReset(t *testing.T) {
	r := setupStack(t)
	cookies := login(t, r)

	w := doJSON(r, "POST", "/api/v1/admin/projects", map[string]interface{}{
		"title":       "Telemetry",
		"description": "Counts things",
	}, cookies)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, "GET", "/api/v1/projects", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var projects []models.Project
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &projects))
	assert.Len(t, projects, 1)

	// Seed a couple of events, then reset and confirm the slate is clean.
	doJSON(r, "POST", "/api/v1/events/section", map[string]interface{}{"name": "about"}, nil)
	assert.Eventually(t, func() bool {
		w := doJSON(r, "GET", "/api/v1/admin/analytics", nil, cookies)
		var payload struct {
			Snapshot struct {
				Totals struct {
					TotalViews int64 `json:"total_views"`
				} `json:"totals"`
			} `json:"snapshot"`
		}
		json.Unmarshal(w.Body.Bytes(), &payload)
		return payload.Snapshot.Totals.TotalViews == 1
	}, 2*time.Second, 20*time.Millisecond)

	w = doJSON(r, "POST", "/api/v1/admin/analytics/reset", nil, cookies)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, "GET", "/api/v1/admin/analytics", nil, cookies)
	var payload struct {
		Snapshot struct {
			Totals struct {
				TotalViews int64 `json:"total_views"`
			} `json:"totals"`
			DailySeries []json.RawMessage `json:"daily_series"`
		} `json:"snapshot"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Zero(t, payload.Snapshot.Totals.TotalViews)
	assert.Empty(t, payload.Snapshot.DailySeries)

	// Content survives the analytics reset.
	w = doJSON(r, "GET", "/api/v1/projects", nil, nil)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &projects))
	assert.Len(t, projects, 1)
}
