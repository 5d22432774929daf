package mainwindow

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"gel-annotator/internal/crop"
	"gel-annotator/internal/render"
	"gel-annotator/ui/canvas"
)

// ShowCropPreview opens an independent window showing a cropped
// region with its surviving kDa annotations. The preview carries its
// own layout parameters, so closing or resizing it never touches the
// main session.
func ShowCropPreview(fyneApp fyne.App, result crop.Result) {
	win := fyneApp.NewWindow("Cropped Region (with kDa)")

	params := render.DefaultParams()
	preview := canvas.NewGelCanvas(params.LeftMargin)
	preview.SetImage(result.Image)
	preview.SetInstructions(render.LayoutAll(result.Markers, params, canvas.MeasureLabel))

	bounds := result.Image.Bounds()
	status := widget.NewLabel(fmt.Sprintf("%dx%d px, %d kDa labels",
		bounds.Dx(), bounds.Dy(), len(result.Markers)))

	win.SetContent(container.NewBorder(
		nil,                          // top
		container.NewPadded(status),  // bottom
		nil,                          // left
		nil,                          // right
		preview.Container(),          // center
	))

	w := float32(params.LeftMargin+float64(bounds.Dx())) + 80
	h := float32(bounds.Dy()) + 100
	if w < 420 {
		w = 420
	}
	if h < 320 {
		h = 320
	}
	win.Resize(fyne.NewSize(w, h))
	win.Show()
	preview.FitToWindow()
}
