// Package game wires the window, renderer, input and scene into the main loop.
package game

import (
	"fmt"
	"strings"
	"time"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/tramdock/internal/assets"
	"github.com/Faultbox/tramdock/internal/config"
	"github.com/Faultbox/tramdock/internal/engine/debug"
	"github.com/Faultbox/tramdock/internal/engine/input"
	"github.com/Faultbox/tramdock/internal/engine/input/key"
	"github.com/Faultbox/tramdock/internal/engine/renderer"
	"github.com/Faultbox/tramdock/internal/engine/scene"
	"github.com/Faultbox/tramdock/internal/engine/texture"
	"github.com/Faultbox/tramdock/internal/engine/window"
	"github.com/Faultbox/tramdock/internal/logger"
)

const title = "Tram Dock"

// Game is the main game instance.
type Game struct {
	config  *config.Config
	log     *zap.Logger
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	assets   *assets.Manager
	scene    *scene.Scene
	shots    *debug.ScreenshotCapture
	fps      *debug.FPSMeter
}

// New creates the window and GL state and loads the scene.
func New(cfg *config.Config) (*Game, error) {
	g := &Game{
		config: cfg,
		log:    logger.Named("game"),
		shots:  debug.NewScreenshotCapture(cfg.Debug.ScreenshotDir, "tramdock"),
		fps:    debug.NewFPSMeter(1),
	}

	g.log.Info("initializing",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Bool("fullscreen", cfg.Graphics.Fullscreen),
	)

	var err error
	g.window, err = window.New(window.Config{
		Title:       title,
		Width:       cfg.Graphics.Width,
		Height:      cfg.Graphics.Height,
		Fullscreen:  cfg.Graphics.Fullscreen,
		VSync:       cfg.Graphics.VSync,
		StencilBits: cfg.Graphics.StencilBits,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer needs the GL context the window just created.
	w, h := g.window.DrawableSize()
	g.renderer, err = renderer.New(renderer.Config{Width: w, Height: h})
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	g.input = input.New()
	g.input.CaptureMouse(cfg.Controls.CaptureMouse)

	g.assets = assets.NewManager()
	for _, dir := range cfg.Scene.AssetPaths {
		if err := g.assets.AddRoot(dir); err != nil {
			g.log.Warn("skipping asset path", zap.Error(err))
		}
	}

	loader := texture.NewLoader(g.assets, g.renderer, texture.Options{
		Mipmaps:  cfg.Graphics.Mipmaps,
		NTSCSafe: cfg.Graphics.NTSCSafe,
		FlipY:    true,
	})

	g.scene, err = scene.New(sceneConfig(cfg), g.assets, loader)
	if g.scene == nil {
		g.Close()
		return nil, fmt.Errorf("failed to build scene: %w", err)
	}
	if err != nil {
		// The scene runs without the missing models.
		dialog.Message("%s", err).Title(title + ": model failed to load").Error()
	}

	g.log.Info("game initialized", zap.Strings("asset_roots", g.assets.Roots()))
	return g, nil
}

// sceneConfig maps the file config onto the scene's options.
func sceneConfig(cfg *config.Config) scene.Config {
	sc := cfg.Scene
	t := sc.Textures
	return scene.Config{
		Shapes:         sc.Shapes,
		TramModel:      sc.TramModel,
		TramMaterials:  sc.TramMaterials,
		TramTexture:    sc.TramTexture,
		CrowbarModel:   sc.CrowbarModel,
		CrowbarTexture: sc.CrowbarTexture,
		Textures: scene.TextureNames{
			DoorTop:           t.DoorTop,
			DoorBottom:        t.DoorBottom,
			DoorTopFlipped:    t.DoorTopFlipped,
			DoorBottomFlipped: t.DoorBottomFlipped,
			Grate:             t.Grate,
			Hazard:            t.Hazard,
			Wall:              t.Wall,
		},
		MouseSensitivity: cfg.Controls.MouseSensitivity,
		MoveSpeed:        cfg.Controls.MoveSpeed,
		FOV:              cfg.Graphics.FOV,
		Near:             cfg.Graphics.Near,
		Far:              cfg.Graphics.Far,
	}
}

// Run starts the main loop and returns when the window closes or Escape
// is pressed.
func (g *Game) Run() error {
	g.running = true
	lastTime := time.Now()

	g.log.Info("starting game loop")

	for g.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		// 1. Process input
		if g.input.Update() {
			g.running = false
			break
		}

		for _, event := range g.input.Events() {
			if event.Type == input.EventWindowResize {
				g.renderer.Resize(g.window.DrawableSize())
			}
		}
		if g.input.IsKeyPressed(key.Escape) {
			g.running = false
		}
		shoot := g.input.IsKeyPressed(key.F12)

		// 2. Update scene
		g.scene.Update(float32(dt), &g.input.State)

		// 3. Render
		if err := g.renderer.Execute(g.scene.Render(g.renderer.Aspect())); err != nil {
			return fmt.Errorf("render error: %w", err)
		}

		if shoot {
			g.screenshot()
		}

		// 4. Present
		g.window.SwapBuffers()

		if g.fps.Tick(dt) {
			g.log.Debug("fps", zap.Float64("fps", g.fps.FPS()), zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)))
			if g.config.Debug.ShowStatus {
				g.window.SetTitle(title + " | " + strings.Join(g.scene.Status(&g.input.State, g.fps.FPS()), " | "))
			}
		}
	}

	return nil
}

// screenshot saves the back buffer. Call it before SwapBuffers.
func (g *Game) screenshot() {
	pixels, w, h := g.renderer.ReadPixels()
	path, err := g.shots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		g.log.Error("screenshot failed", zap.Error(err))
		return
	}
	g.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases scene textures, then GL objects, then the window.
func (g *Game) Close() {
	g.log.Info("closing game")

	if g.scene != nil {
		g.scene.Close()
	}
	if g.assets != nil {
		g.assets.Close()
	}
	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}
