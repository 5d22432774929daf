// Package mapper converts points between the three coordinate frames of
// the annotation canvas: raw image pixels, scene coordinates (image
// shifted right by the label gutter), and view coordinates (zoomed or
// panned display).
package mapper

import (
	"gel-annotator/pkg/geometry"
)

// ToScene converts a view-space point to scene space by inverse-applying
// the current view transform. Returns false if the transform is not
// invertible (degenerate zoom).
func ToScene(viewPoint geometry.Point2D, view geometry.AffineTransform) (geometry.Point2D, bool) {
	inv, ok := view.Inverse()
	if !ok {
		return geometry.Point2D{}, false
	}
	return inv.Apply(viewPoint), true
}

// ToView converts a scene-space point to view space.
func ToView(scenePoint geometry.Point2D, view geometry.AffineTransform) geometry.Point2D {
	return view.Apply(scenePoint)
}

// ImageToScene converts an image-pixel point to scene space. The image
// is placed at x = leftMargin so the gutter to its left stays free for
// tick marks and labels.
func ImageToScene(p geometry.Point2D, leftMargin float64) geometry.Point2D {
	return geometry.Point2D{X: p.X + leftMargin, Y: p.Y}
}

// SceneToImage converts a scene-space point to image pixels. Returns
// false when the point falls outside [0, imageSize.Width) x
// [0, imageSize.Height).
func SceneToImage(p geometry.Point2D, leftMargin float64, imageSize geometry.Size) (geometry.Point2D, bool) {
	img := geometry.Point2D{X: p.X - leftMargin, Y: p.Y}
	if img.X < 0 || img.X >= imageSize.Width || img.Y < 0 || img.Y >= imageSize.Height {
		return img, false
	}
	return img, true
}

// SceneRectToImage converts a scene-space rectangle to image pixels by
// shifting it left by the gutter width. No clipping is applied; callers
// that need the in-bounds portion intersect with the image rect.
func SceneRectToImage(r geometry.Rect, leftMargin float64) geometry.Rect {
	return r.Translated(geometry.Point2D{X: -leftMargin})
}
