// Package debug holds developer aids: back buffer screenshots and a frame rate meter.
package debug

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// ErrPixelSize is returned when pixel data does not match the frame size.
var ErrPixelSize = errors.New("pixel data size mismatch")

// ScreenshotCapture writes numbered, timestamped PNG screenshots.
type ScreenshotCapture struct {
	outputDir string
	prefix    string
	now       func() time.Time
}

// NewScreenshotCapture creates a new screenshot capture handler.
func NewScreenshotCapture(outputDir, prefix string) *ScreenshotCapture {
	return &ScreenshotCapture{
		outputDir: outputDir,
		prefix:    prefix,
		now:       time.Now,
	}
}

// SetOutputDir sets the output directory for screenshots.
func (sc *ScreenshotCapture) SetOutputDir(dir string) {
	sc.outputDir = dir
}

// CaptureFromPixels saves bottom-up RGBA rows, as glReadPixels returns them,
// as a top-down PNG.
func (sc *ScreenshotCapture) CaptureFromPixels(pixels []byte, width, height int) (string, error) {
	if width <= 0 || height <= 0 || len(pixels) != width*height*4 {
		return "", fmt.Errorf("%w: expected %d, got %d", ErrPixelSize, max(width*height*4, 0), len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := range height {
		src := (height - 1 - y) * rowSize
		dst := y * img.Stride
		copy(img.Pix[dst:dst+rowSize], pixels[src:src+rowSize])
	}
	return sc.CaptureFromImage(img)
}

// CaptureFromImage saves img and returns the file name used.
func (sc *ScreenshotCapture) CaptureFromImage(img image.Image) (string, error) {
	if sc.outputDir != "" {
		if err := os.MkdirAll(sc.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := sc.GenerateFilename()
	file, err := os.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	return filename, nil
}

// GenerateFilename returns the next unused screenshot name. Captures within
// the same second get a numeric suffix.
func (sc *ScreenshotCapture) GenerateFilename() string {
	base := fmt.Sprintf("%s_%s", sc.prefix, sc.now().Format("2006-01-02_15-04-05"))
	name := filepath.Join(sc.outputDir, base+".png")
	for i := 2; exists(name); i++ {
		name = filepath.Join(sc.outputDir, fmt.Sprintf("%s_%d.png", base, i))
	}
	return name
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
