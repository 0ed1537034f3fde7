package services

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQRService_GeneratePNG(t *testing.T) {
	qr := NewQRService()

	b64, raw, err := qr.GeneratePNG(QROptions{
		Content: "https://example.dev",
		Size:    256,
		FgColor: "#112233",
		BgColor: "#FFFFFF",
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, b64)

	img, err := png.Decode(bytes.NewReader(raw))
	assert.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())
}

func TestQRService_GenerateSVG(t *testing.T) {
	qr := NewQRService()

	svg, err := qr.GenerateSVG(QROptions{
		Content: "https://example.dev",
		FgColor: "#000000",
		BgColor: "#FFFFFF",
	})
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(svg, "<svg"))
	assert.Contains(t, svg, `fill="#000000"`)
}

func TestQRService_EmptyContent(t *testing.T) {
	qr := NewQRService()

	_, _, err := qr.GeneratePNG(QROptions{Content: "", Size: 128})
	assert.Error(t, err)
}

func TestParseHexColor(t *testing.T) {
	c := parseHexColor("#FF0000", nil)
	r, g, b, _ := c.RGBA()
	assert.Equal(t, uint32(0xFFFF), r)
	assert.Equal(t, uint32(0), g)
	assert.Equal(t, uint32(0), b)

	// Malformed input falls back to the default.
	fallback := parseHexColor("xyz", nil)
	assert.Nil(t, fallback)
}
