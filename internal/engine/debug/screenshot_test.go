package debug

import (
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func fixedClock() time.Time {
	return time.Date(2024, 3, 1, 12, 30, 45, 0, time.UTC)
}

func TestCaptureFromPixels_FlipsRows(t *testing.T) {
	dir := t.TempDir()
	sc := NewScreenshotCapture(filepath.Join(dir, "shots"), "tramdock")
	sc.now = fixedClock

	// Two rows, bottom row red, top row blue, as glReadPixels returns them.
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	name, err := sc.CaptureFromPixels(pixels, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(name) != "tramdock_2024-03-01_12-30-45.png" {
		t.Errorf("name = %s", name)
	}

	f, err := os.Open(name)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}

	r, _, b, _ := img.At(0, 0).RGBA()
	if r != 0 || b != 0xffff {
		t.Errorf("top pixel is not blue: r=%x b=%x", r, b)
	}
	r, _, b, _ = img.At(0, 1).RGBA()
	if r != 0xffff || b != 0 {
		t.Errorf("bottom pixel is not red: r=%x b=%x", r, b)
	}
}

func TestCaptureFromPixels_SizeMismatch(t *testing.T) {
	sc := NewScreenshotCapture(t.TempDir(), "x")
	if _, err := sc.CaptureFromPixels(make([]byte, 7), 1, 2); !errors.Is(err, ErrPixelSize) {
		t.Errorf("expected ErrPixelSize, got %v", err)
	}
	if _, err := sc.CaptureFromPixels(nil, 0, 0); !errors.Is(err, ErrPixelSize) {
		t.Errorf("expected ErrPixelSize for an empty frame, got %v", err)
	}
}

func TestGenerateFilename_Unique(t *testing.T) {
	dir := t.TempDir()
	sc := NewScreenshotCapture(dir, "shot")
	sc.now = fixedClock

	pixels := make([]byte, 4)
	first, err := sc.CaptureFromPixels(pixels, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	second, err := sc.CaptureFromPixels(pixels, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Fatalf("second capture overwrote %s", first)
	}
	if filepath.Base(second) != "shot_2024-03-01_12-30-45_2.png" {
		t.Errorf("second name = %s", second)
	}
}
