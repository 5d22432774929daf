// Package app provides application lifecycle management and session state.
package app

import (
	"sync"

	"gel-annotator/internal/calibrate"
	"gel-annotator/internal/crop"
	gelimage "gel-annotator/internal/image"
	"gel-annotator/internal/marker"
	"gel-annotator/internal/mode"
	"gel-annotator/internal/render"
	"gel-annotator/pkg/geometry"
)

// State holds the active annotation session: the loaded gel image, its
// markers, the interaction mode, and the gutter layout. All mutation of
// the image and marker store goes through State; crop previews receive
// independent copies and never touch the live session.
type State struct {
	mu sync.RWMutex

	// Current gel image, nil until the first successful open
	Gel *gelimage.Layer

	// kDa annotations for the current image
	Markers *marker.Store

	// Interaction mode (idle / crop / mark)
	Modes *mode.Machine

	// Gutter layout for the main view
	Layout render.Params

	// Event listeners
	listeners map[EventType][]EventListener
}

// EventType identifies different application events.
type EventType int

const (
	EventImageLoaded EventType = iota
	EventMarkersChanged
	EventModeChanged
	EventCropComplete
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// NewState creates a new session with no image loaded.
func NewState() *State {
	return &State{
		Markers:   marker.NewStore(),
		Modes:     mode.NewMachine(),
		Layout:    render.DefaultParams(),
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// ImageLoaded reports whether the session has a gel image.
func (s *State) ImageLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Gel != nil
}

// PlacementOffset returns the image's position in scene space. The
// image sits right of the gutter, shifted by the left margin.
func (s *State) PlacementOffset() geometry.Point2D {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return geometry.Point2D{X: s.Layout.LeftMargin}
}

// OpenImage loads a gel image into the session. The previous image and
// all markers are discarded only after a successful decode; a failed
// open leaves the session untouched.
func (s *State) OpenImage(path string) error {
	layer, err := gelimage.Load(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.Gel = layer
	s.Markers.Clear()
	s.Modes.Reset()
	s.mu.Unlock()

	s.Emit(EventImageLoaded, layer)
	return nil
}

// EnableMarkMode arms marker placement. A no-op without an image.
func (s *State) EnableMarkMode() {
	s.mu.Lock()
	changed := s.Modes.EnableMark(s.Gel != nil)
	s.mu.Unlock()

	if changed {
		s.Emit(EventModeChanged, mode.MarkPlace)
	}
}

// EnableCropMode arms a one-shot crop selection. A no-op without an image.
func (s *State) EnableCropMode() {
	s.mu.Lock()
	changed := s.Modes.EnableCrop(s.Gel != nil)
	s.mu.Unlock()

	if changed {
		s.Emit(EventModeChanged, mode.CropSelect)
	}
}

// PlaceMarker records a kDa annotation at the given scene y position.
// A no-op without an image.
func (s *State) PlaceMarker(sceneY, kda float64) {
	s.mu.Lock()
	if s.Gel == nil {
		s.mu.Unlock()
		return
	}
	m := s.Markers.Insert(sceneY, kda)
	s.Modes.MarkerPlaced()
	s.mu.Unlock()

	s.Emit(EventMarkersChanged, m)
}

// UndoLastMarker removes the most recently placed marker. A no-op when
// there are none.
func (s *State) UndoLastMarker() {
	s.mu.Lock()
	removed, ok := s.Markers.RemoveLast()
	s.mu.Unlock()

	if ok {
		s.Emit(EventMarkersChanged, removed)
	}
}

// ClearAllMarkers removes every marker. A no-op on an empty store.
func (s *State) ClearAllMarkers() {
	s.mu.Lock()
	had := s.Markers.Len() > 0
	s.Markers.Clear()
	s.mu.Unlock()

	if had {
		s.Emit(EventMarkersChanged, nil)
	}
}

// CropRegion extracts the selected scene rectangle and the markers
// inside its vertical span, re-based to the crop origin. Crop selection
// is one-shot, so the mode returns to idle. Returns false without an
// image.
func (s *State) CropRegion(selection geometry.Rect) (crop.Result, bool) {
	s.mu.Lock()
	if s.Gel == nil {
		s.mu.Unlock()
		return crop.Result{}, false
	}
	result := crop.Crop(s.Gel.Image, selection, geometry.Point2D{X: s.Layout.LeftMargin}, s.Markers.All())
	s.Modes.CropCompleted()
	s.mu.Unlock()

	s.Emit(EventCropComplete, result)
	s.Emit(EventModeChanged, mode.Idle)
	return result, true
}

// EstimateKDa interpolates the molecular weight at a scene y position
// from the placed ladder markers. Returns false until at least two
// usable markers exist.
func (s *State) EstimateKDa(sceneY float64) (float64, bool) {
	s.mu.RLock()
	markers := s.Markers.All()
	s.mu.RUnlock()

	fit, ok := calibrate.FitLadder(markers)
	if !ok {
		return 0, false
	}
	return fit.Estimate(sceneY), true
}
