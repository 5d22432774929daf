// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"gel-annotator/internal/app"
	gelimage "gel-annotator/internal/image"
	"gel-annotator/internal/mode"
	"gel-annotator/internal/render"
	"gel-annotator/internal/version"
	"gel-annotator/ui/canvas"
	"gel-annotator/ui/dialogs"
	"gel-annotator/ui/prefs"
	"gel-annotator/pkg/geometry"
)

const startupText = `## Gel Annotator

Please **pre-rotate** your gel so bands run **horizontally**.

- File → *Open Image…*
- Tools → *Mark kDa Bands* (click ladder, enter values)
- Tools → *Crop Region* (ticks are drawn outside on the left)
`

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app      fyne.App
	state    *app.State
	appPrefs *prefs.Prefs
	canvas   *canvas.GelCanvas

	statusBar *widget.Label
	startup   *fyne.Container

	// Menu items that need state tracking
	fitToWindowItem *fyne.MenuItem
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State, appPrefs *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow("Gel Annotator")

	mw := &MainWindow{
		Window:   win,
		app:      fyneApp,
		state:    state,
		appPrefs: appPrefs,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()
	mw.setupCanvasHandlers()

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.NewGelCanvas(mw.state.Layout.LeftMargin)
	mw.statusBar = widget.NewLabel("Ready")

	// Startup instructions, shown until the first image is opened.
	instructions := widget.NewRichTextFromMarkdown(startupText)
	mw.startup = container.NewCenter(instructions)

	toolbar := mw.createToolbar()

	canvasArea := container.NewBorder(
		toolbar, // top
		nil,     // bottom
		nil,     // left
		nil,     // right
		container.NewStack(mw.canvas.Container(), mw.startup),
	)

	content := container.NewBorder(
		nil,                               // top
		container.NewPadded(mw.statusBar), // bottom
		nil,                               // left
		nil,                               // right
		canvasArea,                        // center
	)

	mw.SetContent(content)

	if mw.appPrefs.Bool(prefs.KeyFitToWindow, true) {
		mw.canvas.SetFitToWindow(true)
	}
}

// createToolbar creates the toolbar with zoom controls.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	zoomOutBtn := widget.NewButton("-", func() {
		mw.onZoomOut()
	})
	zoomInBtn := widget.NewButton("+", func() {
		mw.onZoomIn()
	})
	fitBtn := widget.NewButton("Fit", func() {
		mw.onToggleFitToWindow()
	})
	actualBtn := widget.NewButton("1:1", func() {
		mw.onActualSize()
	})

	return container.NewHBox(
		widget.NewLabel("Zoom:"),
		zoomOutBtn,
		zoomInBtn,
		fitBtn,
		actualBtn,
	)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Image...", mw.onOpenImage),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Mark kDa Bands", mw.onEnableMarkMode),
		fyne.NewMenuItem("Undo Last kDa", mw.onUndoLastMarker),
		fyne.NewMenuItem("Clear All kDa", mw.onClearAllMarkers),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Crop Region", mw.onEnableCropMode),
	)

	mw.fitToWindowItem = fyne.NewMenuItem("✓ Fit to Window", mw.onToggleFitToWindow)
	if !mw.canvas.GetFitToWindow() {
		mw.fitToWindowItem.Label = "  Fit to Window"
	}

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", mw.onZoomIn),
		fyne.NewMenuItem("Zoom Out", mw.onZoomOut),
		mw.fitToWindowItem,
		fyne.NewMenuItem("Actual Size", mw.onActualSize),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mainMenu := fyne.NewMainMenu(fileMenu, toolsMenu, viewMenu, helpMenu)
	mw.SetMainMenu(mainMenu)
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventImageLoaded, func(data interface{}) {
		layer, ok := data.(*gelimage.Layer)
		if !ok {
			return
		}
		mw.startup.Hide()
		mw.canvas.SetImage(layer.Image)
		mw.refreshAnnotations()
		mw.canvas.FitToWindow()
		mw.SetTitle("Gel Annotator - " + filepath.Base(layer.Path))

		status := fmt.Sprintf("Loaded %s (%dx%d)", filepath.Base(layer.Path), layer.Width(), layer.Height())
		if layer.DPI > 0 {
			status += fmt.Sprintf(" @ %.0f dpi", layer.DPI)
		}
		mw.updateStatus(status)
	})

	mw.state.On(app.EventMarkersChanged, func(interface{}) {
		mw.refreshAnnotations()
	})

	mw.state.On(app.EventModeChanged, func(data interface{}) {
		m, ok := data.(mode.Mode)
		if !ok {
			return
		}
		switch m {
		case mode.MarkPlace:
			mw.updateStatus("Mark mode: click the ladder to place kDa labels")
		case mode.CropSelect:
			mw.updateStatus("Crop mode: drag a rectangle over the region to extract")
		default:
			mw.updateStatus("Ready")
		}
	})
}

// setupCanvasHandlers wires pointer input on the canvas to the session.
func (mw *MainWindow) setupCanvasHandlers() {
	mw.canvas.OnLeftClick(func(p geometry.Point2D) {
		if mw.state.Modes.Current() != mode.MarkPlace {
			return
		}
		dialogs.ShowKDaInput(mw.Window, func(kda float64) {
			mw.state.PlaceMarker(p.Y, kda)
		})
	})

	mw.canvas.OnRightClick(func(p geometry.Point2D) {
		kda, ok := mw.state.EstimateKDa(p.Y)
		if !ok {
			mw.updateStatus("Place at least two ladder markers to estimate weights")
			return
		}
		mw.updateStatus(fmt.Sprintf("Estimated %.1f kDa at this position", kda))
	})

	mw.canvas.OnSelect(func(sel geometry.Rect) {
		result, ok := mw.state.CropRegion(sel)
		if !ok {
			return
		}
		if result.Image.Bounds().Empty() {
			mw.updateStatus("Selection missed the gel; nothing to crop")
			return
		}
		ShowCropPreview(mw.app, result)
	})

	mw.canvas.OnZoomChange(func(zoom float64) {
		mw.updateStatus(fmt.Sprintf("Zoom: %.0f%%", zoom*100))
	})
}

// refreshAnnotations rebuilds the canvas draw instructions from the
// marker store. The canvas itself holds no marker state.
func (mw *MainWindow) refreshAnnotations() {
	instrs := render.LayoutAll(mw.state.Markers.All(), mw.state.Layout, canvas.MeasureLabel)
	mw.canvas.SetInstructions(instrs)
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

// getLastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.appPrefs.String(prefs.KeyLastDir)
	if path == "" {
		return nil
	}
	uri := storage.NewFileURI(path)
	listable, err := storage.ListerForURI(uri)
	if err != nil {
		return nil
	}
	return listable
}

// saveLastDir saves the directory of the given file path.
func (mw *MainWindow) saveLastDir(filePath string) {
	mw.appPrefs.SetString(prefs.KeyLastDir, filepath.Dir(filePath))
}

// SavePreferences persists window preferences to disk.
func (mw *MainWindow) SavePreferences() {
	mw.appPrefs.SetBool(prefs.KeyFitToWindow, mw.canvas.GetFitToWindow())
	if err := mw.appPrefs.Save(); err != nil {
		mw.updateStatus("Failed to save preferences: " + err.Error())
	}
}

// Menu action handlers

func (mw *MainWindow) onOpenImage() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.saveLastDir(path)

		if err := mw.state.OpenImage(path); err != nil {
			// A failed decode leaves the previous session intact.
			mw.updateStatus("Could not open image: " + err.Error())
		}
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter(gelimage.SupportedFormats()))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onEnableMarkMode() {
	if !mw.state.ImageLoaded() {
		mw.updateStatus("Open an image first")
		return
	}
	mw.state.EnableMarkMode()
}

func (mw *MainWindow) onEnableCropMode() {
	if !mw.state.ImageLoaded() {
		mw.updateStatus("Open an image first")
		return
	}
	mw.state.EnableCropMode()
	mw.canvas.EnableSelectMode()
}

func (mw *MainWindow) onUndoLastMarker() {
	mw.state.UndoLastMarker()
}

func (mw *MainWindow) onClearAllMarkers() {
	mw.state.ClearAllMarkers()
}

func (mw *MainWindow) onZoomIn() {
	mw.disableFitToWindow()
	mw.canvas.ZoomIn()
}

func (mw *MainWindow) onZoomOut() {
	mw.disableFitToWindow()
	mw.canvas.ZoomOut()
}

func (mw *MainWindow) onToggleFitToWindow() {
	enabled := !mw.canvas.GetFitToWindow()
	mw.canvas.SetFitToWindow(enabled)

	if enabled {
		mw.fitToWindowItem.Label = "✓ Fit to Window"
	} else {
		mw.fitToWindowItem.Label = "  Fit to Window"
	}
}

func (mw *MainWindow) onActualSize() {
	mw.disableFitToWindow()
	mw.canvas.SetZoom(1.0)
}

func (mw *MainWindow) disableFitToWindow() {
	if mw.canvas.GetFitToWindow() {
		mw.canvas.SetFitToWindow(false)
		mw.fitToWindowItem.Label = "  Fit to Window"
	}
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About Gel Annotator",
		fmt.Sprintf("Gel Annotator v%s\n\n"+
			"A western-blot figure tool: mark kDa ladder bands\n"+
			"and crop labeled regions for publication figures.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}
