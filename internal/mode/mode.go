// Package mode governs how pointer input on the canvas is interpreted:
// idle (pan/zoom only), selecting a crop rectangle, or placing kDa
// markers.
package mode

// Mode identifies the current interaction mode.
type Mode int

const (
	// Idle interprets pointer input as navigation only.
	Idle Mode = iota
	// CropSelect arms a single rubber-band crop selection.
	CropSelect
	// MarkPlace interprets clicks as marker placements.
	MarkPlace
)

func (m Mode) String() string {
	switch m {
	case CropSelect:
		return "crop"
	case MarkPlace:
		return "mark"
	default:
		return "idle"
	}
}

// Machine tracks the active interaction mode. Crop selection is
// one-shot: completing a drag returns to Idle. Mark placement is
// persistent: it stays armed until another tool is chosen. The
// asymmetry is intentional and matches the tool's observed behavior.
type Machine struct {
	current Mode
}

// NewMachine creates a machine in the Idle mode.
func NewMachine() *Machine {
	return &Machine{}
}

// Current returns the active mode.
func (m *Machine) Current() Mode {
	return m.current
}

// EnableCrop arms crop selection. A no-op unless an image is loaded.
// Returns true if the mode changed.
func (m *Machine) EnableCrop(imageLoaded bool) bool {
	if !imageLoaded {
		return false
	}
	m.current = CropSelect
	return true
}

// EnableMark arms marker placement. A no-op unless an image is loaded.
// Returns true if the mode changed.
func (m *Machine) EnableMark(imageLoaded bool) bool {
	if !imageLoaded {
		return false
	}
	m.current = MarkPlace
	return true
}

// CropCompleted records the end of a crop drag and disarms the tool.
func (m *Machine) CropCompleted() {
	if m.current == CropSelect {
		m.current = Idle
	}
}

// MarkerPlaced records a marker placement. The tool stays armed so the
// user can click down the ladder without re-selecting it.
func (m *Machine) MarkerPlaced() {
	// MarkPlace persists; nothing to do.
}

// Reset returns to Idle, used when the image is replaced or cleared.
func (m *Machine) Reset() {
	m.current = Idle
}
