// Package calibrate fits a molecular-weight ladder to marker positions.
// Protein migration distance is close to linear in log10 of the
// molecular weight, so a least-squares fit over the placed ladder
// markers lets the tool estimate the weight at any vertical position.
package calibrate

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"gel-annotator/internal/marker"
)

// Fit is a fitted log-linear ladder: log10(kDa) = Alpha + Beta*y.
type Fit struct {
	Alpha, Beta float64
	R2          float64
}

// FitLadder fits the ladder from the given markers. It needs at least
// two markers with positive kDa at distinct vertical positions; zero-
// weight markers are skipped since log10(0) is undefined. Returns false
// when no usable fit exists.
func FitLadder(markers []marker.Marker) (Fit, bool) {
	var ys, logs []float64
	for _, m := range markers {
		if m.KDa <= 0 {
			continue
		}
		ys = append(ys, m.Y)
		logs = append(logs, math.Log10(m.KDa))
	}
	if len(ys) < 2 {
		return Fit{}, false
	}

	// A ladder clicked at a single height carries no slope information.
	allSame := true
	for _, y := range ys[1:] {
		if y != ys[0] {
			allSame = false
			break
		}
	}
	if allSame {
		return Fit{}, false
	}

	alpha, beta := stat.LinearRegression(ys, logs, nil, false)
	return Fit{
		Alpha: alpha,
		Beta:  beta,
		R2:    stat.RSquared(ys, logs, nil, alpha, beta),
	}, true
}

// Estimate returns the interpolated weight in kDa at vertical position y.
func (f Fit) Estimate(y float64) float64 {
	return math.Pow(10, f.Alpha+f.Beta*y)
}
