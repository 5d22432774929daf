package geometry

import (
	"math"
	"testing"
)

func TestRectFromCorners(t *testing.T) {
	tests := []struct {
		name string
		a, b Point2D
		want Rect
	}{
		{"top-left to bottom-right", Point2D{10, 20}, Point2D{30, 60}, Rect{10, 20, 20, 40}},
		{"bottom-right to top-left", Point2D{30, 60}, Point2D{10, 20}, Rect{10, 20, 20, 40}},
		{"same point", Point2D{5, 5}, Point2D{5, 5}, Rect{5, 5, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RectFromCorners(tt.a, tt.b)
			if got != tt.want {
				t.Errorf("RectFromCorners(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestRectIntersect(t *testing.T) {
	r := NewRect(0, 0, 100, 100)

	overlap := r.Intersect(NewRect(50, 50, 100, 100))
	if overlap != (Rect{50, 50, 50, 50}) {
		t.Errorf("expected 50x50 overlap at (50,50), got %v", overlap)
	}

	disjoint := r.Intersect(NewRect(200, 200, 10, 10))
	if !disjoint.IsEmpty() {
		t.Errorf("expected empty intersection, got %v", disjoint)
	}
}

func TestRectTopBottom(t *testing.T) {
	r := NewRect(10, 100, 50, 200)
	if r.Top() != 100 {
		t.Errorf("Top() = %v, want 100", r.Top())
	}
	if r.Bottom() != 300 {
		t.Errorf("Bottom() = %v, want 300", r.Bottom())
	}
}

func TestAffineInverseRoundTrip(t *testing.T) {
	// Zoom-and-pan style transform: scale then translate.
	view := Translation(-120, -45).Compose(Scale(2.5, 2.5))

	inv, ok := view.Inverse()
	if !ok {
		t.Fatal("transform should be invertible")
	}

	points := []Point2D{{0, 0}, {10, 20}, {-5.5, 300}, {1234, 987}}
	for _, p := range points {
		got := inv.Apply(view.Apply(p))
		if math.Abs(got.X-p.X) > 1e-9 || math.Abs(got.Y-p.Y) > 1e-9 {
			t.Errorf("round trip of %v gave %v", p, got)
		}
	}
}

func TestAffineInverseSingular(t *testing.T) {
	if _, ok := Scale(0, 1).Inverse(); ok {
		t.Error("degenerate scale should not be invertible")
	}
}
