package app

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"gel-annotator/internal/mode"
	"gel-annotator/pkg/geometry"
)

func writeTestGel(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: 230, G: 230, B: 230, A: 255})
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

func TestToolModesRequireImage(t *testing.T) {
	s := NewState()

	s.EnableMarkMode()
	s.EnableCropMode()
	if s.Modes.Current() != mode.Idle {
		t.Errorf("mode = %v without image, want Idle", s.Modes.Current())
	}

	s.PlaceMarker(50, 100)
	if s.Markers.Len() != 0 {
		t.Error("PlaceMarker without image should be a no-op")
	}

	if _, ok := s.CropRegion(geometry.NewRect(0, 0, 10, 10)); ok {
		t.Error("CropRegion without image should report failure")
	}
}

func TestOpenImageClearsMarkers(t *testing.T) {
	s := NewState()
	if err := s.OpenImage(writeTestGel(t, 100, 100)); err != nil {
		t.Fatal(err)
	}

	s.EnableMarkMode()
	s.PlaceMarker(40, 70)
	if s.Markers.Len() != 1 {
		t.Fatal("marker not placed")
	}

	if err := s.OpenImage(writeTestGel(t, 50, 50)); err != nil {
		t.Fatal(err)
	}
	if s.Markers.Len() != 0 {
		t.Error("markers should not survive image replacement")
	}
	if s.Modes.Current() != mode.Idle {
		t.Error("mode should reset on image replacement")
	}
}

func TestFailedOpenLeavesSessionIntact(t *testing.T) {
	s := NewState()
	if err := s.OpenImage(writeTestGel(t, 100, 100)); err != nil {
		t.Fatal(err)
	}
	s.EnableMarkMode()
	s.PlaceMarker(40, 70)

	bad := filepath.Join(t.TempDir(), "bad.png")
	if err := os.WriteFile(bad, []byte("junk"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := s.OpenImage(bad); err == nil {
		t.Fatal("expected decode failure")
	}

	if s.Gel == nil || s.Gel.Width() != 100 {
		t.Error("previous image should survive a failed open")
	}
	if s.Markers.Len() != 1 {
		t.Error("markers should survive a failed open")
	}
}

func TestCropRegionDisarmsCropMode(t *testing.T) {
	s := NewState()
	if err := s.OpenImage(writeTestGel(t, 100, 100)); err != nil {
		t.Fatal(err)
	}

	s.EnableCropMode()
	if s.Modes.Current() != mode.CropSelect {
		t.Fatal("crop mode not armed")
	}

	s.EnableMarkMode()
	s.PlaceMarker(120, 50)
	s.EnableCropMode()

	res, ok := s.CropRegion(geometry.NewRect(60, 100, 40, 40))
	if !ok {
		t.Fatal("crop failed")
	}
	if len(res.Markers) != 1 || res.Markers[0].Y != 20 {
		t.Errorf("expected one re-based marker at 20, got %v", res.Markers)
	}
	if s.Modes.Current() != mode.Idle {
		t.Error("crop mode should disarm after one selection")
	}
	// The live store keeps its own coordinates.
	if s.Markers.All()[0].Y != 120 {
		t.Error("crop must not re-base the live store")
	}
}

func TestUndoAndClearAbsorbEmptyStore(t *testing.T) {
	s := NewState()
	s.UndoLastMarker()
	s.ClearAllMarkers()
	s.ClearAllMarkers() // must stay a no-op
}

func TestMarkersChangedEvents(t *testing.T) {
	s := NewState()
	if err := s.OpenImage(writeTestGel(t, 100, 100)); err != nil {
		t.Fatal(err)
	}

	events := 0
	s.On(EventMarkersChanged, func(interface{}) { events++ })

	s.EnableMarkMode()
	s.PlaceMarker(10, 250)
	s.PlaceMarker(20, 150)
	s.UndoLastMarker()
	s.ClearAllMarkers()
	s.ClearAllMarkers() // empty clear emits nothing
	s.UndoLastMarker()  // empty undo emits nothing

	if events != 4 {
		t.Errorf("expected 4 marker events, got %d", events)
	}
}

func TestEstimateKDa(t *testing.T) {
	s := NewState()
	if err := s.OpenImage(writeTestGel(t, 200, 300)); err != nil {
		t.Fatal(err)
	}

	if _, ok := s.EstimateKDa(50); ok {
		t.Error("estimation should be unavailable without markers")
	}

	s.EnableMarkMode()
	s.PlaceMarker(0, 1000)  // log10 = 3
	s.PlaceMarker(100, 100) // log10 = 2
	s.PlaceMarker(200, 10)  // log10 = 1

	got, ok := s.EstimateKDa(50)
	if !ok {
		t.Fatal("estimation should be available with a placed ladder")
	}
	// Halfway between 1000 and 100 in log space.
	if got < 310 || got > 320 {
		t.Errorf("EstimateKDa(50) = %v, want ~316", got)
	}
}
