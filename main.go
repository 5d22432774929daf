// Package main provides the entry point for the Gel Annotator application.
package main

import (
	"log"
	"os"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"

	"gel-annotator/internal/app"
	"gel-annotator/internal/render"
	"gel-annotator/internal/version"
	"gel-annotator/ui/mainwindow"
	"gel-annotator/ui/prefs"
)

const appTitle = "Gel Annotator"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s v%s", appTitle, version.Version)

	fyneApp := fyneapp.NewWithID("gel-annotator")

	appPrefs := prefs.Load()
	appState := app.NewState()
	appState.Layout = layoutFromPrefs(appPrefs)

	win := mainwindow.New(fyneApp, appState, appPrefs)
	win.Resize(fyne.NewSize(1000, 700))
	win.SetCloseIntercept(func() {
		win.SavePreferences()
		fyneApp.Quit()
	})

	// Handle command line arguments
	if len(os.Args) > 1 {
		imagePath := os.Args[1]
		if err := appState.OpenImage(imagePath); err != nil {
			log.Printf("Failed to open image %s: %v", imagePath, err)
		}
	}

	setupHotReload(win)

	win.ShowAndRun()
}

// layoutFromPrefs builds annotation layout parameters from saved
// preferences, falling back to the defaults for anything unset.
func layoutFromPrefs(p *prefs.Prefs) render.Params {
	defaults := render.DefaultParams()
	return render.Params{
		LeftMargin: p.Float(prefs.KeyLeftMargin, defaults.LeftMargin),
		TickLength: p.Float(prefs.KeyTickLength, defaults.TickLength),
		LabelGap:   p.Float(prefs.KeyLabelGap, defaults.LabelGap),
	}
}

// setupHotReload configures automatic restart detection when the binary is recompiled.
func setupHotReload(win *mainwindow.MainWindow) {
	reloader := app.NewHotReloader(2 * time.Second)
	if reloader == nil {
		log.Println("Hot reload: unable to determine executable path")
		return
	}

	log.Printf("Hot reload: watching %s (modified %s)",
		reloader.ExecPath(), reloader.StartupTime().Format("15:04:05"))

	reloader.OnNewBinary(func() {
		log.Println("Hot reload: newer binary detected")
		dialog.ShowConfirm("New Version Available",
			"The application binary has been updated.\nRestart now?",
			func(restart bool) {
				if restart {
					log.Println("Hot reload: saving preferences before restart...")
					win.SavePreferences()
					log.Println("Hot reload: restarting...")
					if err := reloader.Restart(); err != nil {
						log.Printf("Hot reload: restart failed: %v", err)
					}
					return
				}
				reloader.ResetBaseline()
				reloader.Start()
			}, win.Window)
	})

	reloader.Start()
}
