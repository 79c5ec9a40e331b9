// Package window opens the SDL2 window and its fixed-function OpenGL context.
package window

import (
	"fmt"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/tramdock/internal/logger"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// Config holds window configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
	// StencilBits is the requested stencil depth. Zero means 8.
	StencilBits int
}

// Window owns the SDL window and its GL context.
type Window struct {
	config  Config
	log     *zap.Logger
	handle  *sdl.Window
	context sdl.GLContext
}

// New creates the window and makes a GL 2.1 compatibility context current.
func New(cfg Config) (*Window, error) {
	if cfg.StencilBits <= 0 {
		cfg.StencilBits = 8
	}
	w := &Window{config: cfg, log: logger.Named("window")}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	// Attributes must be set before the window exists.
	if err := contextAttributes(cfg.StencilBits); err != nil {
		sdl.Quit()
		return nil, err
	}

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE | sdl.WINDOW_ALLOW_HIGHDPI)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}

	var err error
	w.handle, err = sdl.CreateWindow(cfg.Title,
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width), int32(cfg.Height), flags)
	if err != nil {
		w.Close()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	w.context, err = w.handle.GLCreateContext()
	if err != nil {
		w.Close()
		return nil, fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}

	interval := 0
	if cfg.VSync {
		interval = 1
	}
	if err := sdl.GLSetSwapInterval(interval); err != nil {
		w.log.Warn("swap interval rejected", zap.Int("interval", interval), zap.Error(err))
	}

	stencil, _ := sdl.GLGetAttribute(sdl.GL_STENCIL_SIZE)

	dw, dh := w.DrawableSize()
	w.log.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Int("drawable_width", dw),
		zap.Int("drawable_height", dh),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
		zap.Int("stencil_bits", stencil),
	)
	return w, nil
}

func contextAttributes(stencil int) error {
	attrs := []struct {
		attr  sdl.GLattr
		value int
	}{
		{sdl.GL_CONTEXT_MAJOR_VERSION, 2},
		{sdl.GL_CONTEXT_MINOR_VERSION, 1},
		{sdl.GL_DOUBLEBUFFER, 1},
		{sdl.GL_DEPTH_SIZE, 24},
		{sdl.GL_STENCIL_SIZE, stencil},
	}
	for _, a := range attrs {
		if err := sdl.GLSetAttribute(a.attr, a.value); err != nil {
			return fmt.Errorf("SDL_GL_SetAttribute(%d, %d): %w", a.attr, a.value, err)
		}
	}
	return nil
}

// Close destroys the context and window and shuts SDL down.
func (w *Window) Close() {
	w.log.Info("closing window")

	if w.context != nil {
		sdl.GLDeleteContext(w.context)
		w.context = nil
	}
	if w.handle != nil {
		w.handle.Destroy()
		w.handle = nil
	}
	sdl.Quit()
}

// SwapBuffers presents the back buffer.
func (w *Window) SwapBuffers() {
	w.handle.GLSwap()
}

// GetSize returns the window size in screen coordinates.
func (w *Window) GetSize() (int, int) {
	width, height := w.handle.GetSize()
	return int(width), int(height)
}

// DrawableSize returns the framebuffer size in pixels, which differs from
// GetSize on high-DPI displays.
func (w *Window) DrawableSize() (int, int) {
	width, height := w.handle.GLGetDrawableSize()
	return int(width), int(height)
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.handle.SetTitle(title)
}
