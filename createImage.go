// createImage.go
package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image/jpeg"
	"image/png"
	"io"
	"log"
	"strings"

	"github.com/chromedp/chromedp"
)

// generateImage rasterizes the SVG map with headless Chrome and writes it
// as PNG or JPEG.
func generateImage(ctx context.Context, svgString string, format string, outputWriter io.Writer) error {
	// 1. Create a base64 data URI for the SVG
	// This allows loading the SVG directly without saving a temp file
	svgBase64 := base64.StdEncoding.EncodeToString([]byte(svgString))
	dataURI := "data:image/svg+xml;base64," + svgBase64
	log.Println("Created data URI for SVG.")

	// 2. Setup chromedp
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Headless,
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelCtx := chromedp.NewContext(allocCtx)
	defer cancelCtx()

	// 3. Navigate and screenshot the SVG element
	var screenshotBuf []byte

	tasks := chromedp.Tasks{
		chromedp.Navigate(dataURI),
		chromedp.WaitVisible(`svg`, chromedp.ByQuery),
		chromedp.Screenshot(`svg`, &screenshotBuf, chromedp.ByQuery),
	}

	log.Println("Running chromedp tasks (navigate and screenshot)...")
	if err := chromedp.Run(browserCtx, tasks); err != nil {
		return fmt.Errorf("chromedp execution failed: %w", err)
	}
	log.Println("Chromedp tasks completed successfully.")

	if len(screenshotBuf) == 0 {
		return fmt.Errorf("screenshot buffer is empty, screenshot failed")
	}

	return encodeScreenshot(screenshotBuf, format, outputWriter)
}

// encodeScreenshot writes the PNG screenshot in the requested format.
func encodeScreenshot(screenshot []byte, format string, outputWriter io.Writer) error {
	screenshotReader := bytes.NewReader(screenshot)

	switch format {
	case "png":
		// Screenshot is already PNG, just copy it
		if _, err := io.Copy(outputWriter, screenshotReader); err != nil {
			return fmt.Errorf("failed to write PNG screenshot data: %w", err)
		}
	case "jpg", "jpeg":
		img, errPng := png.Decode(screenshotReader)
		if errPng != nil {
			return fmt.Errorf("failed to decode PNG screenshot: %w", errPng)
		}
		opts := &jpeg.Options{Quality: 90}
		if err := jpeg.Encode(outputWriter, img, opts); err != nil {
			return fmt.Errorf("failed to encode JPEG: %w", err)
		}
	default:
		return fmt.Errorf("internal error: unsupported image format '%s' with chromedp", format)
	}

	log.Printf("Successfully encoded %s image using chromedp.", strings.ToUpper(format))
	return nil
}
