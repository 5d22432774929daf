// Package crop extracts rectangular sub-regions from a gel image and
// re-bases the surviving kDa markers to the crop's local origin.
package crop

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"gel-annotator/internal/marker"
	"gel-annotator/pkg/geometry"
)

// Result holds an extracted sub-image and the markers that fell inside
// the selection, with Y re-based to the selection top. Results are
// independent of the source session; presenting one in a preview never
// mutates the original image or store.
type Result struct {
	Image   *image.NRGBA
	Markers []marker.Marker
}

// Region converts a scene-space selection rectangle to integer image
// pixels, given the image's placement offset in the scene (normally
// (leftMargin, 0)).
func Region(selection geometry.Rect, placement geometry.Point2D) image.Rectangle {
	r := selection.Translated(geometry.Point2D{X: -placement.X, Y: -placement.Y})
	return image.Rect(int(r.X), int(r.Y), int(r.X+r.Width), int(r.Y+r.Height))
}

// Crop extracts the selected region from img and re-bases the markers
// whose Y falls within the selection's vertical span (inclusive both
// ends). A selection that misses the image entirely, or has zero area
// after clipping, yields an empty image and no markers rather than an
// error.
func Crop(img image.Image, selection geometry.Rect, placement geometry.Point2D, markers []marker.Marker) Result {
	region := Region(selection, placement).Intersect(img.Bounds())
	if region.Empty() {
		return Result{Image: imaging.New(0, 0, color.Transparent)}
	}

	out := Result{Image: imaging.Crop(img, region)}
	for _, m := range markers {
		if m.Y >= selection.Top() && m.Y <= selection.Bottom() {
			out.Markers = append(out.Markers, marker.Marker{Y: m.Y - selection.Top(), KDa: m.KDa})
		}
	}
	return out
}
