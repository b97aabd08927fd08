package main

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		img.Set(x, x, color.RGBA{R: 0x9E, G: 0xAD, B: 0x24, A: 0xFF})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestEncodeScreenshot(t *testing.T) {
	shot := samplePNG(t)

	var pngOut bytes.Buffer
	require.NoError(t, encodeScreenshot(shot, "png", &pngOut))
	assert.Equal(t, shot, pngOut.Bytes())

	for _, format := range []string{"jpg", "jpeg"} {
		var out bytes.Buffer
		require.NoError(t, encodeScreenshot(shot, format, &out))
		img, err := jpeg.Decode(&out)
		require.NoError(t, err)
		assert.Equal(t, 8, img.Bounds().Dx())
	}

	assert.Error(t, encodeScreenshot(shot, "gif", &bytes.Buffer{}))
	assert.Error(t, encodeScreenshot([]byte("not a png"), "jpg", &bytes.Buffer{}))
}
