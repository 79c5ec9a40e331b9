package debug

// FPSMeter averages frame rate over a fixed window.
type FPSMeter struct {
	window  float64
	elapsed float64
	frames  int
	fps     float64
}

// NewFPSMeter creates a meter that refreshes every window seconds.
func NewFPSMeter(window float64) *FPSMeter {
	if window <= 0 {
		window = 1
	}
	return &FPSMeter{window: window}
}

// Tick records one frame of dt seconds. It reports true when the window
// closed and FPS holds a fresh value.
func (m *FPSMeter) Tick(dt float64) bool {
	m.frames++
	m.elapsed += dt
	if m.elapsed < m.window {
		return false
	}
	m.fps = float64(m.frames) / m.elapsed
	m.frames = 0
	m.elapsed = 0
	return true
}

// FPS returns the rate measured over the last complete window.
func (m *FPSMeter) FPS() float64 {
	return m.fps
}
