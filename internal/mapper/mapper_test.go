package mapper

import (
	"testing"

	"gel-annotator/pkg/geometry"
)

func TestImageSceneRoundTrip(t *testing.T) {
	size := geometry.NewSize(640, 480)
	margins := []float64{0, 10, 60, 123}

	for _, m := range margins {
		for _, p := range []geometry.Point2D{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 639, Y: 479}, {X: 320, Y: 240}} {
			scene := ImageToScene(p, m)
			back, ok := SceneToImage(scene, m, size)
			if !ok {
				t.Fatalf("margin %v: in-bounds point %v reported out of bounds", m, p)
			}
			if back != p {
				t.Errorf("margin %v: round trip of %v gave %v", m, p, back)
			}
		}
	}
}

func TestRepeatedConversionNoDrift(t *testing.T) {
	size := geometry.NewSize(100, 100)
	p := geometry.NewPoint2D(37, 84)

	for i := 0; i < 1000; i++ {
		scene := ImageToScene(p, 60)
		var ok bool
		p, ok = SceneToImage(scene, 60, size)
		if !ok {
			t.Fatalf("iteration %d: point drifted out of bounds: %v", i, p)
		}
	}
	if p != geometry.NewPoint2D(37, 84) {
		t.Errorf("point drifted after repeated conversions: %v", p)
	}
}

func TestSceneToImageOutOfBounds(t *testing.T) {
	size := geometry.NewSize(640, 480)

	tests := []struct {
		name  string
		scene geometry.Point2D
	}{
		{"in gutter", geometry.NewPoint2D(30, 100)},
		{"left of gutter", geometry.NewPoint2D(-5, 100)},
		{"right of image", geometry.NewPoint2D(60 + 640, 100)},
		{"above image", geometry.NewPoint2D(100, -1)},
		{"below image", geometry.NewPoint2D(100, 480)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := SceneToImage(tt.scene, 60, size); ok {
				t.Errorf("point %v should be out of bounds", tt.scene)
			}
		})
	}

	// Width and height are exclusive, zero is inclusive.
	if _, ok := SceneToImage(geometry.NewPoint2D(60, 0), 60, size); !ok {
		t.Error("image origin should be in bounds")
	}
}

func TestToSceneInvertsViewTransform(t *testing.T) {
	// Zoomed 2x and panned by (-100, -50).
	view := geometry.Translation(-100, -50).Compose(geometry.Scale(2, 2))

	scene := geometry.NewPoint2D(80, 120)
	viewPt := ToView(scene, view)
	back, ok := ToScene(viewPt, view)
	if !ok {
		t.Fatal("view transform should be invertible")
	}
	if back != scene {
		t.Errorf("ToScene(ToView(%v)) = %v", scene, back)
	}
}

func TestToSceneDegenerateTransform(t *testing.T) {
	if _, ok := ToScene(geometry.NewPoint2D(1, 1), geometry.Scale(0, 0)); ok {
		t.Error("zero-scale view transform should not be invertible")
	}
}

func TestSceneRectToImage(t *testing.T) {
	r := geometry.NewRect(100, 50, 200, 80)
	got := SceneRectToImage(r, 60)
	want := geometry.NewRect(40, 50, 200, 80)
	if got != want {
		t.Errorf("SceneRectToImage = %v, want %v", got, want)
	}
}
