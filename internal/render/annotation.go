// Package render computes annotation geometry for kDa markers. It is a
// pure layout layer: it produces tick and label positions for a host
// drawing surface and never touches pixels itself.
package render

import (
	"strconv"

	"gel-annotator/internal/marker"
	"gel-annotator/pkg/geometry"
)

// edgeClearance is the gap between the end of a tick and the gel edge.
const edgeClearance = 2.0

// Params holds the layout parameters of one annotation view. A crop
// preview gets its own Params, independent of the source view.
type Params struct {
	LeftMargin float64 // gutter width reserved left of the image
	TickLength float64
	LabelGap   float64 // gap between label and tick
}

// DefaultParams returns the standard gutter layout.
func DefaultParams() Params {
	return Params{LeftMargin: 60, TickLength: 20, LabelGap: 6}
}

// Instruction describes how to draw one marker: a tick line in the
// gutter and a label to its left, vertically centered on the tick.
type Instruction struct {
	TickStart   geometry.Point2D
	TickEnd     geometry.Point2D
	LabelOrigin geometry.Point2D
	Text        string
}

// MeasureFunc reports the rendered size of a label string. Supplied by
// the drawing surface since glyph metrics live there.
type MeasureFunc func(text string) geometry.Size

// FormatKDa formats a weight with trailing zeros suppressed, so 250.0
// renders as "250" and 37.5 as "37.5".
func FormatKDa(kda float64) string {
	return strconv.FormatFloat(kda, 'g', -1, 64)
}

// Layout computes the draw geometry for one marker. The tick ends just
// short of the gel edge and extends left; the label sits left of the
// tick with a small gap, centered on the marker's y position.
func Layout(m marker.Marker, p Params, labelSize geometry.Size) Instruction {
	tickEndX := p.LeftMargin - edgeClearance
	tickStartX := tickEndX - p.TickLength

	return Instruction{
		TickStart:   geometry.NewPoint2D(tickStartX, m.Y),
		TickEnd:     geometry.NewPoint2D(tickEndX, m.Y),
		LabelOrigin: geometry.NewPoint2D(tickStartX-p.LabelGap-labelSize.Width, m.Y-labelSize.Height/2),
		Text:        FormatKDa(m.KDa),
	}
}

// LayoutAll computes draw geometry for a set of markers, measuring each
// label with the supplied MeasureFunc.
func LayoutAll(markers []marker.Marker, p Params, measure MeasureFunc) []Instruction {
	out := make([]Instruction, len(markers))
	for i, m := range markers {
		out[i] = Layout(m, p, measure(FormatKDa(m.KDa)))
	}
	return out
}
