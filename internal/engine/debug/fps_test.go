package debug

import "testing"

func TestFPSMeter(t *testing.T) {
	m := NewFPSMeter(1)

	for i := range 59 {
		if m.Tick(1.0 / 60) {
			t.Fatalf("window closed early at frame %d", i)
		}
	}
	if m.FPS() != 0 {
		t.Errorf("expected no reading yet, got %v", m.FPS())
	}

	// Overshoot the window so float rounding cannot hold it open.
	if !m.Tick(1.0/60 + 0.001) {
		t.Fatal("expected window to close")
	}
	if got := m.FPS(); got < 59 || got > 60 {
		t.Errorf("expected about 60 fps, got %v", got)
	}

	if m.Tick(0.5) {
		t.Error("meter did not reset after reporting")
	}
}

func TestFPSMeter_DefaultWindow(t *testing.T) {
	m := NewFPSMeter(0)
	if !m.Tick(1) || m.FPS() != 1 {
		t.Errorf("expected 1 fps over a one second window, got %v", m.FPS())
	}
}
