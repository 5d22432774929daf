package calibrate

import (
	"math"
	"testing"

	"gel-annotator/internal/marker"
)

func TestFitLadderExactLogLinear(t *testing.T) {
	// Markers laid out exactly on log10(kDa) = 3 - 0.01*y.
	var markers []marker.Marker
	for _, y := range []float64{0, 50, 100, 150} {
		kda := math.Pow(10, 3-0.01*y)
		markers = append(markers, marker.Marker{Y: y, KDa: kda})
	}

	fit, ok := FitLadder(markers)
	if !ok {
		t.Fatal("fit should succeed with 4 distinct markers")
	}
	if math.Abs(fit.Alpha-3) > 1e-9 || math.Abs(fit.Beta+0.01) > 1e-9 {
		t.Errorf("fit = (%v, %v), want (3, -0.01)", fit.Alpha, fit.Beta)
	}
	if fit.R2 < 0.999999 {
		t.Errorf("exact data should have R2 ~ 1, got %v", fit.R2)
	}

	// Interpolate midway.
	got := fit.Estimate(75)
	want := math.Pow(10, 3-0.75)
	if math.Abs(got-want)/want > 1e-9 {
		t.Errorf("Estimate(75) = %v, want %v", got, want)
	}
}

func TestFitLadderTooFewMarkers(t *testing.T) {
	if _, ok := FitLadder(nil); ok {
		t.Error("fit with no markers should fail")
	}
	if _, ok := FitLadder([]marker.Marker{{Y: 10, KDa: 100}}); ok {
		t.Error("fit with one marker should fail")
	}
}

func TestFitLadderSkipsZeroWeights(t *testing.T) {
	markers := []marker.Marker{
		{Y: 10, KDa: 0}, // unusable
		{Y: 20, KDa: 0}, // unusable
		{Y: 30, KDa: 100},
	}
	if _, ok := FitLadder(markers); ok {
		t.Error("fit should fail with fewer than two usable markers")
	}
}

func TestFitLadderDegenerateGeometry(t *testing.T) {
	markers := []marker.Marker{
		{Y: 50, KDa: 100},
		{Y: 50, KDa: 75},
	}
	if _, ok := FitLadder(markers); ok {
		t.Error("markers at one height carry no slope; fit should fail")
	}
}
