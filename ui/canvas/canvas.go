// Package canvas provides the gel image canvas with pan, zoom, a label
// gutter, and rubber-band crop selection.
package canvas

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"gel-annotator/internal/mapper"
	"gel-annotator/internal/render"
	"gel-annotator/pkg/geometry"
)

const (
	minZoom  = 0.1
	maxZoom  = 10.0
	zoomStep = 1.25

	// rightPad keeps a little scene space right of the gel so the edge
	// isn't flush against the viewport.
	rightPad = 10
)

var (
	inkColor       = color.RGBA{A: 255}                          // ticks and labels
	selectionColor = color.RGBA{R: 0, G: 120, B: 215, A: 255}    // rubber band
	paperColor     = color.RGBA{R: 255, G: 255, B: 255, A: 255}  // gutter background
)

// GelCanvas displays a gel image shifted right by the gutter margin,
// draws kDa ticks and labels in the gutter, and reports clicks and
// rubber-band selections in scene coordinates.
type GelCanvas struct {
	widget.BaseWidget

	// Scene content
	img          image.Image
	leftMargin   float64
	instructions []render.Instruction

	// Display state
	raster *fynecanvas.Raster
	zoom   float64

	// Selection (rubber-band); one-shot, disarmed after a completed drag
	selecting   bool
	selectMode  bool
	selectStart fyne.Position
	selectEnd   fyne.Position

	// Container
	scroll  *zoomScroll
	content *draggableContent
	imgSize fyne.Size

	// Fit to window
	fitToWindow    bool
	lastScrollSize fyne.Size

	// Callbacks; all coordinates are scene space
	onZoomChange func(zoom float64)
	onSelect     func(sel geometry.Rect)
	onLeftClick  func(p geometry.Point2D)
	onRightClick func(p geometry.Point2D)
}

// zoomScroll wraps a scroll container but intercepts the wheel for zoom.
type zoomScroll struct {
	widget.BaseWidget
	scroll *container.Scroll
	canvas *GelCanvas
}

func newZoomScroll(content fyne.CanvasObject, canvas *GelCanvas) *zoomScroll {
	scroll := container.NewScroll(content)
	scroll.Direction = container.ScrollBoth
	zs := &zoomScroll{scroll: scroll, canvas: canvas}
	zs.ExtendBaseWidget(zs)
	return zs
}

func (zs *zoomScroll) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY > 0 {
		zs.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		zs.canvas.ZoomOut()
	}
}

func (zs *zoomScroll) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(zs.scroll)
}

// Offset returns the scroll container's current offset.
func (zs *zoomScroll) Offset() fyne.Position {
	return zs.scroll.Offset
}

// Size returns the scroll container's size.
func (zs *zoomScroll) Size() fyne.Size {
	return zs.scroll.Size()
}

// Refresh refreshes the scroll container.
func (zs *zoomScroll) Refresh() {
	zs.scroll.Refresh()
	zs.BaseWidget.Refresh()
}

// Resize sets the size of the scroll container.
func (zs *zoomScroll) Resize(size fyne.Size) {
	zs.scroll.Resize(size)
	zs.BaseWidget.Resize(size)
}

// draggableContent wraps the raster to handle mouse events.
type draggableContent struct {
	widget.BaseWidget
	canvas *GelCanvas
	raster *fynecanvas.Raster
}

func newDraggableContent(gc *GelCanvas, raster *fynecanvas.Raster) *draggableContent {
	dc := &draggableContent{
		canvas: gc,
		raster: raster,
	}
	dc.ExtendBaseWidget(dc)
	return dc
}

func (dc *draggableContent) CreateRenderer() fyne.WidgetRenderer {
	return &draggableContentRenderer{content: dc}
}

func (dc *draggableContent) MinSize() fyne.Size {
	return dc.raster.MinSize()
}

func (dc *draggableContent) Dragged(ev *fyne.DragEvent) {
	if !dc.canvas.selectMode {
		return
	}

	// ev.Position is relative to the viewport; add the scroll offset to
	// get the content position.
	scrollOffset := dc.canvas.scroll.Offset()
	pos := fyne.Position{
		X: ev.Position.X + scrollOffset.X,
		Y: ev.Position.Y + scrollOffset.Y,
	}

	if !dc.canvas.selecting {
		dc.canvas.selecting = true
		dc.canvas.selectStart = pos
	}
	dc.canvas.selectEnd = pos
	dc.canvas.Refresh()
}

func (dc *draggableContent) DragEnd() {
	if !dc.canvas.selectMode || !dc.canvas.selecting {
		return
	}

	dc.canvas.selecting = false
	dc.canvas.selectMode = false // one-shot: disarm after a single drag

	if dc.canvas.onSelect != nil {
		a, aok := dc.canvas.toScene(dc.canvas.selectStart)
		b, bok := dc.canvas.toScene(dc.canvas.selectEnd)
		if aok && bok {
			dc.canvas.onSelect(geometry.RectFromCorners(a, b))
		}
	}
	dc.canvas.Refresh()
}

func (dc *draggableContent) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY > 0 {
		dc.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		dc.canvas.ZoomOut()
	}
}

// Tapped handles left-click events.
func (dc *draggableContent) Tapped(ev *fyne.PointEvent) {
	if dc.canvas.onLeftClick == nil {
		return
	}
	if !dc.inBounds(ev.Position) {
		return
	}
	if p, ok := dc.canvas.eventToScene(ev.Position); ok {
		dc.canvas.onLeftClick(p)
	}
}

// TappedSecondary handles right-click events.
func (dc *draggableContent) TappedSecondary(ev *fyne.PointEvent) {
	if dc.canvas.onRightClick == nil {
		return
	}
	if !dc.inBounds(ev.Position) {
		return
	}
	if p, ok := dc.canvas.eventToScene(ev.Position); ok {
		dc.canvas.onRightClick(p)
	}
}

// inBounds rejects event positions outside the widget. Works around a
// Fyne quirk where taps just past the edge still arrive here.
func (dc *draggableContent) inBounds(pos fyne.Position) bool {
	size := dc.Size()
	return pos.X >= 0 && pos.Y >= 0 && pos.X <= size.Width && pos.Y <= size.Height
}

type draggableContentRenderer struct {
	content *draggableContent
}

func (r *draggableContentRenderer) Layout(size fyne.Size) {
	r.content.raster.Resize(size)
}

func (r *draggableContentRenderer) MinSize() fyne.Size {
	return r.content.raster.MinSize()
}

func (r *draggableContentRenderer) Refresh() {
	r.content.raster.Refresh()
}

func (r *draggableContentRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.content.raster}
}

func (r *draggableContentRenderer) Destroy() {}

// NewGelCanvas creates a new gel canvas with the given gutter width.
func NewGelCanvas(leftMargin float64) *GelCanvas {
	gc := &GelCanvas{
		zoom:       1.0,
		leftMargin: leftMargin,
		imgSize:    fyne.NewSize(400, 300),
	}

	gc.raster = fynecanvas.NewRaster(gc.draw)
	gc.raster.ScaleMode = fynecanvas.ImageScalePixels
	gc.raster.SetMinSize(gc.imgSize)

	gc.content = newDraggableContent(gc, gc.raster)
	gc.scroll = newZoomScroll(gc.content, gc)

	gc.ExtendBaseWidget(gc)
	return gc
}

// Container returns the canvas container for embedding in layouts.
func (gc *GelCanvas) Container() fyne.CanvasObject {
	return gc.scroll
}

// SetImage sets the gel image to display, or clears it with nil.
func (gc *GelCanvas) SetImage(img image.Image) {
	gc.img = img
	gc.updateContentSize()
}

// SetInstructions replaces the annotation draw instructions. The canvas
// keeps no marker data of its own; it redraws whatever the annotation
// renderer hands it.
func (gc *GelCanvas) SetInstructions(instrs []render.Instruction) {
	gc.instructions = instrs
	gc.Refresh()
}

// EnableSelectMode arms the rubber band for the next drag.
func (gc *GelCanvas) EnableSelectMode() {
	gc.selectMode = true
	gc.selecting = false
}

// SetZoom sets the zoom level.
func (gc *GelCanvas) SetZoom(zoom float64) {
	if zoom < minZoom {
		zoom = minZoom
	}
	if zoom > maxZoom {
		zoom = maxZoom
	}
	gc.zoom = zoom
	gc.updateContentSize()

	if gc.onZoomChange != nil {
		gc.onZoomChange(zoom)
	}
}

// GetZoom returns the current zoom level.
func (gc *GelCanvas) GetZoom() float64 {
	return gc.zoom
}

// ZoomIn increases the zoom level.
func (gc *GelCanvas) ZoomIn() {
	gc.SetZoom(gc.zoom * zoomStep)
}

// ZoomOut decreases the zoom level.
func (gc *GelCanvas) ZoomOut() {
	gc.SetZoom(gc.zoom / zoomStep)
}

// FitToWindow adjusts zoom to fit the whole scene in the visible area.
func (gc *GelCanvas) FitToWindow() {
	scene := gc.sceneSize()
	if scene.Width <= 0 || scene.Height <= 0 {
		return
	}

	viewSize := gc.scroll.Size()
	if viewSize.Width <= 0 || viewSize.Height <= 0 {
		return
	}

	zoomX := float64(viewSize.Width) / scene.Width
	zoomY := float64(viewSize.Height) / scene.Height

	zoom := zoomX
	if zoomY < zoomX {
		zoom = zoomY
	}

	gc.SetZoom(zoom * 0.95) // leave a small margin
}

// SetFitToWindow enables or disables auto-fit on resize.
func (gc *GelCanvas) SetFitToWindow(fit bool) {
	gc.fitToWindow = fit
	if fit {
		gc.FitToWindow()
	}
}

// GetFitToWindow returns the current fit-to-window state.
func (gc *GelCanvas) GetFitToWindow() bool {
	return gc.fitToWindow
}

// CheckResize auto-fits when the scroll container was resized.
func (gc *GelCanvas) CheckResize(size fyne.Size) {
	if !gc.fitToWindow {
		return
	}
	if size.Width > 0 && size.Height > 0 && size != gc.lastScrollSize {
		gc.lastScrollSize = size
		gc.FitToWindow()
	}
}

// OnZoomChange sets a callback for zoom changes.
func (gc *GelCanvas) OnZoomChange(callback func(zoom float64)) {
	gc.onZoomChange = callback
}

// OnSelect sets a callback for a completed rubber-band selection, in
// scene coordinates.
func (gc *GelCanvas) OnSelect(callback func(sel geometry.Rect)) {
	gc.onSelect = callback
}

// OnLeftClick sets a callback for left clicks, in scene coordinates.
func (gc *GelCanvas) OnLeftClick(callback func(p geometry.Point2D)) {
	gc.onLeftClick = callback
}

// OnRightClick sets a callback for right clicks, in scene coordinates.
func (gc *GelCanvas) OnRightClick(callback func(p geometry.Point2D)) {
	gc.onRightClick = callback
}

// Refresh refreshes the canvas display.
func (gc *GelCanvas) Refresh() {
	gc.raster.Refresh()
}

// viewTransform is the scene-to-view transform: pure zoom, with panning
// handled by the scroll container.
func (gc *GelCanvas) viewTransform() geometry.AffineTransform {
	return geometry.Scale(gc.zoom, gc.zoom)
}

// toScene converts a content-space position (scroll offset already
// applied) to scene coordinates.
func (gc *GelCanvas) toScene(pos fyne.Position) (geometry.Point2D, bool) {
	return mapper.ToScene(geometry.NewPoint2D(float64(pos.X), float64(pos.Y)), gc.viewTransform())
}

// eventToScene converts a viewport event position to scene coordinates.
func (gc *GelCanvas) eventToScene(pos fyne.Position) (geometry.Point2D, bool) {
	scrollOffset := gc.scroll.Offset()
	return gc.toScene(fyne.Position{
		X: pos.X + scrollOffset.X,
		Y: pos.Y + scrollOffset.Y,
	})
}

// sceneSize returns the scene dimensions: the image plus the gutter on
// the left and a small pad on the right.
func (gc *GelCanvas) sceneSize() geometry.Size {
	if gc.img == nil {
		return geometry.Size{}
	}
	b := gc.img.Bounds()
	return geometry.NewSize(gc.leftMargin+float64(b.Dx())+rightPad, float64(b.Dy()))
}

// updateContentSize updates the content size based on scene and zoom.
func (gc *GelCanvas) updateContentSize() {
	scene := gc.sceneSize()
	if scene.Width <= 0 || scene.Height <= 0 {
		gc.imgSize = fyne.NewSize(400, 300)
	} else {
		gc.imgSize = fyne.NewSize(float32(scene.Width*gc.zoom), float32(scene.Height*gc.zoom))
	}

	gc.raster.SetMinSize(gc.imgSize)
	gc.raster.Resize(gc.imgSize)
	if gc.content != nil {
		gc.content.Resize(gc.imgSize)
		gc.content.Refresh()
	}
	gc.raster.Refresh()
	if gc.scroll != nil {
		gc.scroll.Refresh()
	}
}

// draw is the raster drawing function.
func (gc *GelCanvas) draw(w, h int) image.Image {
	currentSize := fyne.NewSize(float32(w), float32(h))
	if gc.fitToWindow && currentSize != gc.lastScrollSize && w > 0 && h > 0 {
		gc.lastScrollSize = currentSize
		// Schedule the fit after this draw completes.
		go func() {
			gc.FitToWindow()
		}()
	}

	output := image.NewRGBA(image.Rect(0, 0, w, h))

	// White paper background; the gutter stays clear for ticks/labels.
	for i := 0; i < len(output.Pix); i += 4 {
		output.Pix[i] = paperColor.R
		output.Pix[i+1] = paperColor.G
		output.Pix[i+2] = paperColor.B
		output.Pix[i+3] = 255
	}

	if gc.img != nil {
		gc.compositeGel(output, w, h)
	}

	gc.drawAnnotations(output)

	if gc.selecting {
		x1, y1 := int(gc.selectStart.X), int(gc.selectStart.Y)
		x2, y2 := int(gc.selectEnd.X), int(gc.selectEnd.Y)
		if x1 > x2 {
			x1, x2 = x2, x1
		}
		if y1 > y2 {
			y1, y2 = y2, y1
		}
		drawSelectionRect(output, x1, y1, x2, y2, selectionColor)
	}

	return output
}

// compositeGel draws the gel image at its scene placement, scaled by
// the current zoom. Nearest-neighbor sampling, like the source view.
func (gc *GelCanvas) compositeGel(output *image.RGBA, w, h int) {
	src := gc.img
	srcBounds := src.Bounds()
	imageSize := geometry.NewSize(float64(srcBounds.Dx()), float64(srcBounds.Dy()))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			scene := geometry.NewPoint2D(float64(x)/gc.zoom, float64(y)/gc.zoom)
			imgPt, ok := mapper.SceneToImage(scene, gc.leftMargin, imageSize)
			if !ok {
				continue
			}
			output.Set(x, y, src.At(int(imgPt.X)+srcBounds.Min.X, int(imgPt.Y)+srcBounds.Min.Y))
		}
	}
}

// drawAnnotations draws tick lines and labels from the current
// instruction list, scaled by zoom.
func (gc *GelCanvas) drawAnnotations(output *image.RGBA) {
	thickness := int(gc.zoom)
	if thickness < 1 {
		thickness = 1
	}
	scale := int(glyphScale * gc.zoom)
	if scale < 1 {
		scale = 1
	}

	for _, in := range gc.instructions {
		drawLine(output,
			int(in.TickStart.X*gc.zoom), int(in.TickStart.Y*gc.zoom),
			int(in.TickEnd.X*gc.zoom), int(in.TickEnd.Y*gc.zoom),
			inkColor, thickness)
		drawGlyphString(output, in.Text,
			int(in.LabelOrigin.X*gc.zoom), int(in.LabelOrigin.Y*gc.zoom),
			inkColor, scale)
	}
}

// CreateRenderer implements fyne.Widget.
func (gc *GelCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &gelCanvasRenderer{canvas: gc}
}

type gelCanvasRenderer struct {
	canvas *GelCanvas
}

func (r *gelCanvasRenderer) Layout(size fyne.Size) {
	if r.canvas.scroll != nil {
		r.canvas.scroll.Resize(size)
	} else if r.canvas.content != nil {
		r.canvas.content.Resize(size)
	}
	r.canvas.CheckResize(size)
}

func (r *gelCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(100, 100)
}

func (r *gelCanvasRenderer) Refresh() {
	r.canvas.raster.Refresh()
}

func (r *gelCanvasRenderer) Objects() []fyne.CanvasObject {
	if r.canvas.scroll != nil {
		return []fyne.CanvasObject{r.canvas.scroll}
	}
	return []fyne.CanvasObject{r.canvas.content}
}

func (r *gelCanvasRenderer) Destroy() {}
