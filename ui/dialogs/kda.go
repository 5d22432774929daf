// Package dialogs provides application dialogs.
package dialogs

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

const maxKDa = 1_000_000

// ShowKDaInput asks the user for a molecular weight in kDa and calls
// onAccept with the parsed value. Cancelling, or confirming with an
// unparseable or negative value, calls nothing; the pending marker
// placement is simply dropped.
func ShowKDaInput(window fyne.Window, onAccept func(kda float64)) {
	entry := widget.NewEntry()
	entry.SetPlaceHolder("e.g. 72.5")
	entry.Validator = validateKDa

	items := []*widget.FormItem{
		widget.NewFormItem("kDa", entry),
	}

	dlg := dialog.NewForm("kDa value", "OK", "Cancel", items, func(confirmed bool) {
		if !confirmed {
			return
		}
		v, err := parseKDa(entry.Text)
		if err != nil {
			return
		}
		onAccept(v)
	}, window)
	dlg.Resize(fyne.NewSize(280, 140))
	dlg.Show()

	window.Canvas().Focus(entry)
}

// parseKDa parses a non-negative weight value.
func parseKDa(text string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", text)
	}
	if v < 0 || v > maxKDa {
		return 0, fmt.Errorf("value out of range: %v", v)
	}
	return v, nil
}

func validateKDa(text string) error {
	_, err := parseKDa(text)
	return err
}
