package image

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writeTestPNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: 200, G: 200, B: 200, A: 255})
		}
	}

	path := filepath.Join(t.TempDir(), "gel.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadPNG(t *testing.T) {
	path := writeTestPNG(t, 120, 80)

	layer, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if layer.Width() != 120 || layer.Height() != 80 {
		t.Errorf("size = %dx%d, want 120x80", layer.Width(), layer.Height())
	}
	if layer.Path != path {
		t.Errorf("Path = %q, want %q", layer.Path, path)
	}
	if layer.DPI != 0 {
		t.Errorf("PNG should have no DPI metadata, got %v", layer.DPI)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Error("loading a missing file should fail")
	}
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("loading a corrupt file should fail")
	}
}

func TestIsSupportedFormat(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"gel.png", true},
		{"gel.JPG", true},
		{"scan.tiff", true},
		{"scan.tif", true},
		{"notes.txt", false},
		{"gel.webp", false},
	}
	for _, tt := range tests {
		if got := IsSupportedFormat(tt.path); got != tt.want {
			t.Errorf("IsSupportedFormat(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestLayerSizeNilImage(t *testing.T) {
	var l Layer
	if l.Width() != 0 || l.Height() != 0 {
		t.Error("empty layer should report zero size")
	}
}
