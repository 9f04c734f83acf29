package debug

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCaptureFromPixelsFlips(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	sc := NewScreenshotCapture(dir, "sandbox")
	sc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	// 1x2: bottom row red, top row blue, as OpenGL reads them.
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	name, err := sc.CaptureFromPixels(pixels, 1, 2)
	if err != nil {
		t.Fatalf("CaptureFromPixels: %v", err)
	}
	if want := filepath.Join(dir, "sandbox_2024-05-01_12-00-00_001.png"); name != want {
		t.Errorf("filename = %s, want %s", name, want)
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
	if r, _, b, _ := img.At(0, 0).RGBA(); b == 0 || r != 0 {
		t.Errorf("top pixel is not blue")
	}
	if r, _, b, _ := img.At(0, 1).RGBA(); r == 0 || b != 0 {
		t.Errorf("bottom pixel is not red")
	}

	second, err := sc.CaptureFromPixels(pixels, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if second == name {
		t.Error("second shot in the same second reused the filename")
	}
}

func TestCaptureFromPixelsSizeMismatch(t *testing.T) {
	sc := NewScreenshotCapture(t.TempDir(), "x")
	if _, err := sc.CaptureFromPixels(make([]byte, 7), 1, 2); err == nil {
		t.Error("short pixel buffer accepted")
	}
}
