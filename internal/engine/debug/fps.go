package debug

import "time"

// FPSCounter averages frame rate over fixed windows.
type FPSCounter struct {
	window  time.Duration
	frames  int
	elapsed time.Duration
	fps     float64
}

// NewFPSCounter averages over window, one second if zero.
func NewFPSCounter(window time.Duration) *FPSCounter {
	if window <= 0 {
		window = time.Second
	}
	return &FPSCounter{window: window}
}

// Frame records one frame of length d. It reports true when a window closed
// and FPS changed.
func (c *FPSCounter) Frame(d time.Duration) bool {
	c.frames++
	c.elapsed += d
	if c.elapsed < c.window {
		return false
	}
	c.fps = float64(c.frames) / c.elapsed.Seconds()
	c.frames, c.elapsed = 0, 0
	return true
}

// FPS is the rate measured over the last full window.
func (c *FPSCounter) FPS() float64 { return c.fps }
