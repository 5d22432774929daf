package mode

import "testing"

func TestEnableRequiresImage(t *testing.T) {
	m := NewMachine()

	if m.EnableCrop(false) {
		t.Error("EnableCrop without image should be a no-op")
	}
	if m.EnableMark(false) {
		t.Error("EnableMark without image should be a no-op")
	}
	if m.Current() != Idle {
		t.Errorf("mode = %v, want Idle", m.Current())
	}
}

func TestCropIsOneShot(t *testing.T) {
	m := NewMachine()

	if !m.EnableCrop(true) {
		t.Fatal("EnableCrop with image should succeed")
	}
	if m.Current() != CropSelect {
		t.Fatalf("mode = %v, want CropSelect", m.Current())
	}

	m.CropCompleted()
	if m.Current() != Idle {
		t.Errorf("crop mode should disarm after one selection, got %v", m.Current())
	}
}

func TestMarkIsPersistent(t *testing.T) {
	m := NewMachine()
	m.EnableMark(true)

	for i := 0; i < 3; i++ {
		if m.Current() != MarkPlace {
			t.Fatalf("placement %d: mode = %v, want MarkPlace", i, m.Current())
		}
		m.MarkerPlaced()
	}
	if m.Current() != MarkPlace {
		t.Error("mark mode should stay armed after placements")
	}
}

func TestSwitchingTools(t *testing.T) {
	m := NewMachine()
	m.EnableMark(true)
	m.EnableCrop(true)
	if m.Current() != CropSelect {
		t.Errorf("mode = %v, want CropSelect after switching", m.Current())
	}

	// Completing a crop from mark mode must not disarm mark mode.
	m.EnableMark(true)
	m.CropCompleted()
	if m.Current() != MarkPlace {
		t.Errorf("CropCompleted outside crop mode changed mode to %v", m.Current())
	}
}

func TestReset(t *testing.T) {
	m := NewMachine()
	m.EnableMark(true)
	m.Reset()
	if m.Current() != Idle {
		t.Errorf("mode = %v after reset, want Idle", m.Current())
	}
}

func TestModeString(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{Idle, "idle"},
		{CropSelect, "crop"},
		{MarkPlace, "mark"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.mode, got, tt.want)
		}
	}
}
