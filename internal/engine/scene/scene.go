// Package scene builds the tram dock: it owns the cameras, the tram and
// door state and the light rig, advances them from input and records each
// frame as a render command list.
package scene

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/tramdock/internal/engine/camera"
	"github.com/Faultbox/tramdock/internal/engine/geometry"
	"github.com/Faultbox/tramdock/internal/engine/input/key"
	"github.com/Faultbox/tramdock/internal/engine/lighting"
	"github.com/Faultbox/tramdock/internal/engine/model"
	"github.com/Faultbox/tramdock/internal/engine/render"
	"github.com/Faultbox/tramdock/internal/engine/shadow"
	"github.com/Faultbox/tramdock/internal/engine/texture"
	"github.com/Faultbox/tramdock/internal/logger"
	"github.com/Faultbox/tramdock/pkg/math"
)

// Input is the held-key and mouse state the scene reads each update.
type Input interface {
	KeyDown(k key.Key) bool
	// Release consumes a press so toggles fire once per key stroke.
	Release(k key.Key)
	Mouse() (x, y int)
	MouseDelta() (dx, dy int)
}

// TextureLoader loads named textures and frees them all on Release.
type TextureLoader interface {
	Load(name string) texture.Handle
	Release()
}

// TextureNames are the image assets of the scene.
type TextureNames struct {
	DoorTop           string
	DoorBottom        string
	DoorTopFlipped    string
	DoorBottomFlipped string
	Grate             string
	Hazard            string
	Wall              string
}

// Config contains scene configuration options.
type Config struct {
	Shapes geometry.ShapeParams

	TramModel      string
	TramMaterials  string
	TramTexture    string
	CrowbarModel   string
	CrowbarTexture string
	Textures       TextureNames

	// MouseSensitivity is pixels of mouse motion per degree of turn.
	MouseSensitivity float32
	// MoveSpeed is free camera units per second.
	MoveSpeed float32

	FOV  float32
	Near float32
	Far  float32
}

// DefaultConfig returns a default scene configuration.
func DefaultConfig() Config {
	return Config{
		Shapes:        geometry.DefaultShapeParams(),
		TramModel:     "Models/tram.obj",
		TramMaterials: "models/tram.mtl",
		CrowbarModel:  "Models/Crowbar.obj",
		Textures: TextureNames{
			DoorTop:           "gfx/doorTop.png",
			DoorBottom:        "gfx/doorBottom.png",
			DoorTopFlipped:    "gfx/doorTopFlipped.png",
			DoorBottomFlipped: "gfx/doorBottomFlipped.png",
			Grate:             "gfx/grate.png",
			Hazard:            "gfx/hazard.png",
			Wall:              "gfx/wall.png",
		},
		MouseSensitivity: 10,
		MoveSpeed:        1,
		FOV:              45,
		Near:             0.1,
		Far:              1000,
	}
}

// CameraID selects one of the scene cameras.
type CameraID int

const (
	FreeCamera CameraID = iota
	TramCamera
	DoorCamera
	numCameras
)

func (c CameraID) String() string {
	switch c {
	case FreeCamera:
		return "Free Camera"
	case TramCamera:
		return "Tram Camera"
	case DoorCamera:
		return "Door Camera"
	}
	return fmt.Sprintf("camera(%d)", int(c))
}

// Scene limits and rest positions.
const (
	tramLimit    = 40
	lockTravel   = 22
	doorTopRest  = 6
	doorTopOpen  = 11.9
	doorBotOpen  = -5.9
	doorSpeed    = 0.25
	doorSpotTurn = 25 // degrees per second
	lockTurn     = 50 // degrees per second
	tramCamY     = 5
	tramCamZ     = -5
)

var (
	doorCameraPos = math.Vec3{X: 0, Y: 5, Z: -40}
	clearColor    = math.Vec4{0.39, 0.58, 1, 1}

	// shadowWall is the back wall patch that receives the planar shadow.
	shadowWall = [4]math.Vec3{
		{X: -30, Y: 30, Z: -34.9},
		{X: -30, Y: -30, Z: -34.9},
		{X: 30, Y: -30, Z: -34.9},
		{X: 30, Y: 30, Z: -34.9},
	}
)

type textures struct {
	doorTop, doorBottom               texture.Handle
	doorTopFlipped, doorBottomFlipped texture.Handle
	grate, hazard, wall               texture.Handle
}

// Scene manages the tram dock.
type Scene struct {
	config Config
	log    *zap.Logger

	// Assets
	shapes   *geometry.Shapes
	wallQuad *geometry.Mesh
	tram     *model.Model
	crowbar  *model.Model
	loader   TextureLoader
	tex      textures

	// Lighting and shadow
	rig       *lighting.DockRig
	projector *shadow.Projector

	// Cameras
	cameras [numCameras]*camera.Camera
	active  CameraID

	// Animated state
	tramX       float32
	doorLockX   float32
	doorLock2X  float32
	bottomDoorY float32
	topDoorY    float32
	angle       float32 // door spot sweep
	angle2      float32 // lock wheel spin

	wireframe bool
	filter    render.Filter

	list render.List
}

// New builds the scene, generating its geometry and loading its models and
// textures. Model load failures are returned joined in err, but the scene
// is still usable and skips the missing models.
func New(cfg Config, src model.Source, loader TextureLoader) (*Scene, error) {
	s := &Scene{
		config:   cfg,
		log:      logger.Named("scene"),
		shapes:   geometry.Generate(cfg.Shapes),
		wallQuad: quad(shadowWall),
		loader:   loader,
		rig:      lighting.NewDockRig(),
		topDoorY: doorTopRest,
	}

	projector, err := shadow.NewProjector(shadowWall)
	if err != nil {
		return nil, fmt.Errorf("shadow plane: %w", err)
	}
	s.projector = projector

	for i := range s.cameras {
		s.cameras[i] = camera.New()
	}
	s.cameras[TramCamera].SetPosition(math.Vec3{X: s.tramX, Y: tramCamY, Z: tramCamZ})
	s.cameras[DoorCamera].SetPosition(doorCameraPos)

	t := cfg.Textures
	s.tex = textures{
		doorTop:           loader.Load(t.DoorTop),
		doorBottom:        loader.Load(t.DoorBottom),
		doorTopFlipped:    loader.Load(t.DoorTopFlipped),
		doorBottomFlipped: loader.Load(t.DoorBottomFlipped),
		grate:             loader.Load(t.Grate),
		hazard:            loader.Load(t.Hazard),
		wall:              loader.Load(t.Wall),
	}

	var errs []error
	s.tram, err = model.Load(src, loader, cfg.TramModel, cfg.TramTexture, cfg.TramMaterials)
	if err != nil {
		errs = append(errs, fmt.Errorf("tram: %w", err))
	}
	s.crowbar, err = model.Load(src, loader, cfg.CrowbarModel, cfg.CrowbarTexture, "")
	if err != nil {
		errs = append(errs, fmt.Errorf("crowbar: %w", err))
	}
	for _, e := range errs {
		s.log.Error("model failed to load, it will not be drawn", zap.Error(e))
	}

	s.log.Info("scene ready",
		zap.Int("shapes", len(s.shapes.All())),
		zap.Bool("tram", s.tram != nil),
		zap.Bool("crowbar", s.crowbar != nil))
	return s, errors.Join(errs...)
}

// quad returns a single untextured quad through four corners.
func quad(c [4]math.Vec3) *geometry.Mesh {
	m := &geometry.Mesh{Name: "shadow-wall", Topology: geometry.Quads}
	n := c[1].Sub(c[0]).Cross(c[2].Sub(c[0])).Normalize()
	for _, p := range c {
		m.Positions = append(m.Positions, p.X, p.Y, p.Z)
		m.Normals = append(m.Normals, n.X, n.Y, n.Z)
		m.UVs = append(m.UVs, 0, 0)
	}
	return m
}

// Close frees the scene's textures.
func (s *Scene) Close() {
	s.log.Info("closing scene")
	if s.loader != nil {
		s.loader.Release()
	}
}

// Camera returns the active camera.
func (s *Scene) Camera() *camera.Camera { return s.cameras[s.active] }

// ActiveCamera returns which camera is selected.
func (s *Scene) ActiveCamera() CameraID { return s.active }

// TramX returns the tram position along the rail.
func (s *Scene) TramX() float32 { return s.tramX }

// Filter returns the selected texture filter.
func (s *Scene) Filter() render.Filter { return s.filter }

// Wireframe reports whether polygons are drawn as lines.
func (s *Scene) Wireframe() bool { return s.wireframe }

// Shapes returns the generated geometry.
func (s *Scene) Shapes() *geometry.Shapes { return s.shapes }

// Status returns the overlay lines: mouse, FPS, texture mode and camera.
func (s *Scene) Status(in Input, fps float64) []string {
	mx, my := in.Mouse()
	return []string{
		fmt.Sprintf("Mouse: %d, %d", mx, my),
		fmt.Sprintf("FPS: %4.2f", fps),
		fmt.Sprintf("Texture Mode: %s", s.filter),
		fmt.Sprintf("Selected Camera: %s", s.active),
	}
}
