package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShareQR_PNG(t *testing.T) {
	h, _, _ := setupTestHandler(t)
	r := setupTestRouter(h)

	w := performRequest(r, "GET", "/api/v1/share/qr", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Body.Bytes())
}

func TestShareQR_SVG(t *testing.T) {
	h, _, _ := setupTestHandler(t)
	r := setupTestRouter(h)

	w := performRequest(r, "GET", "/api/v1/share/qr?format=svg&fg=%23112233", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/svg+xml", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "<svg")
}

func TestShareQR_SizeClamped(t *testing.T) {
	h, _, _ := setupTestHandler(t)
	r := setupTestRouter(h)

	// Out-of-range sizes fall back to the default rather than erroring.
	w := performRequest(r, "GET", "/api/v1/share/qr?size=9999", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = performRequest(r, "GET", "/api/v1/share/qr?size=banana", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
