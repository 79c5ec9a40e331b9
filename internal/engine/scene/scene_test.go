package scene

import (
	"errors"
	"io/fs"
	gomath "math"
	"strings"
	"testing"

	"github.com/Faultbox/tramdock/internal/engine/geometry"
	"github.com/Faultbox/tramdock/internal/engine/input/key"
	"github.com/Faultbox/tramdock/internal/engine/lighting"
	"github.com/Faultbox/tramdock/internal/engine/render"
	"github.com/Faultbox/tramdock/internal/engine/shadow"
	"github.com/Faultbox/tramdock/internal/engine/texture"
	"github.com/Faultbox/tramdock/pkg/formats"
	"github.com/Faultbox/tramdock/pkg/math"
)

const triangleOBJ = `v 0 0 0
v 1 0 0
v 0 1 0
vt 0 0
vt 1 0
vt 0 1
vn 0 0 1
f 1/1/1 2/2/1 3/3/1
`

type memSource map[string]string

func (m memSource) Load(name string) ([]byte, error) {
	s, ok := m[name]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return []byte(s), nil
}

type fakeLoader struct {
	next     texture.Handle
	names    []string
	released bool
}

func (f *fakeLoader) Load(name string) texture.Handle {
	f.next++
	f.names = append(f.names, name)
	return f.next
}

func (f *fakeLoader) Release() { f.released = true }

func newTestScene(t *testing.T) (*Scene, *fakeLoader) {
	t.Helper()
	cfg := DefaultConfig()
	src := memSource{
		cfg.TramModel:    triangleOBJ,
		cfg.CrowbarModel: triangleOBJ,
	}
	loader := &fakeLoader{}
	s, err := New(cfg, src, loader)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s, loader
}

// run holds keys for n updates of dt seconds each.
func run(s *Scene, in *key.State, n int, dt float32, keys ...key.Key) {
	for _, k := range keys {
		in.Press(k)
	}
	for range n {
		s.Update(dt, in)
	}
	for _, k := range keys {
		in.Release(k)
	}
}

// worldOrigins returns where the origin of mesh lands for each draw of it,
// in world space.
func worldOrigins(l *render.List, mesh *geometry.Mesh) []math.Vec3 {
	var out []math.Vec3
	cur := math.Identity()
	var stack []math.Mat4
	for _, c := range l.Commands() {
		switch c.Op {
		case render.OpLoadMatrix:
			cur = math.Identity()
		case render.OpMultMatrix:
			cur = cur.Mul(c.Matrix)
		case render.OpPush:
			stack = append(stack, cur)
		case render.OpPop:
			cur = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
		case render.OpDraw:
			if c.Mesh == mesh {
				out = append(out, cur.TransformPoint(math.Vec3{}))
			}
		}
	}
	return out
}

func near(a, b math.Vec3) bool {
	d := a.Sub(b)
	return gomath.Abs(float64(d.X)) < 1e-3 && gomath.Abs(float64(d.Y)) < 1e-3 && gomath.Abs(float64(d.Z)) < 1e-3
}

func lightSwitches(l *render.List) map[int]bool {
	out := make(map[int]bool)
	for _, c := range l.Commands() {
		if c.Op == render.OpLightSwitch {
			out[c.Slot] = c.Flag
		}
	}
	return out
}

func TestNew_LoadsAssets(t *testing.T) {
	s, loader := newTestScene(t)
	if s.tram == nil || s.crowbar == nil {
		t.Fatal("models not loaded")
	}
	if len(loader.names) != 7 {
		t.Errorf("loaded %d textures, want 7: %v", len(loader.names), loader.names)
	}
	if s.ActiveCamera() != FreeCamera {
		t.Errorf("active camera = %s", s.ActiveCamera())
	}
	if got := s.cameras[DoorCamera].Position(); got != doorCameraPos {
		t.Errorf("door camera at %v", got)
	}

	s.Close()
	if !loader.released {
		t.Error("Close did not release textures")
	}
}

func TestNew_MissingModels(t *testing.T) {
	s, err := New(DefaultConfig(), memSource{}, &fakeLoader{})
	if s == nil {
		t.Fatal("scene not usable after model failure")
	}
	if !errors.Is(err, formats.ErrOpen) {
		t.Errorf("error = %v", err)
	}
	if s.tram != nil || s.crowbar != nil {
		t.Error("failed models were kept")
	}

	l := s.Render(1.5)
	if err := l.Err(); err != nil {
		t.Fatal(err)
	}
	for _, c := range l.Commands() {
		if c.Op == render.OpDraw && c.Mesh.Topology == geometry.Triangles {
			t.Fatal("a model was drawn although none loaded")
		}
	}
}

func TestRender_Balanced(t *testing.T) {
	s, _ := newTestScene(t)
	l := s.Render(16.0 / 9.0)
	if err := l.Err(); err != nil {
		t.Fatal(err)
	}
	if l.Commands()[0].Op != render.OpProjection || l.Commands()[1].Op != render.OpClear {
		t.Errorf("frame starts with %s, %s", l.Commands()[0].Op, l.Commands()[1].Op)
	}
	if l.Count(render.OpLight) != 7 {
		t.Errorf("%d lights uploaded, want 7", l.Count(render.OpLight))
	}
}

func TestRender_TramPlacement(t *testing.T) {
	s, _ := newTestScene(t)
	in := &key.State{}
	run(s, in, 5, 1, key.K)

	origins := worldOrigins(s.Render(1), s.tram.Mesh)
	if len(origins) != 3 {
		t.Fatalf("tram drawn %d times, want reflection, shadow and real", len(origins))
	}
	if !near(origins[0], math.Vec3{X: 5, Y: tramY, Z: -100}) {
		t.Errorf("reflected tram at %v", origins[0])
	}
	if !near(origins[2], math.Vec3{X: 5, Y: tramY, Z: tramZ}) {
		t.Errorf("tram at %v", origins[2])
	}

	// The shadow copy lies flat on the back wall.
	if gomath.Abs(float64(origins[1].Z+34.9)) > 1e-3 {
		t.Errorf("shadow tram at %v, want z=-34.9", origins[1])
	}
}

func TestTram_ClampAndLights(t *testing.T) {
	s, _ := newTestScene(t)
	in := &key.State{}

	in.Press(key.K)
	for range 100 {
		s.Update(0.7, in)
	}
	if s.TramX() != tramLimit {
		t.Errorf("tram at %v, want %v", s.TramX(), float32(tramLimit))
	}
	sw := lightSwitches(s.Render(1))
	if !sw[lighting.TramBack] || sw[lighting.TramFront] {
		t.Errorf("moving +x: back=%v front=%v", sw[lighting.TramBack], sw[lighting.TramFront])
	}
	in.Release(key.K)

	in.Press(key.I)
	for range 200 {
		s.Update(0.7, in)
	}
	if s.TramX() != -tramLimit {
		t.Errorf("tram at %v, want %v", s.TramX(), float32(-tramLimit))
	}
	in.Release(key.I)

	s.Update(0.1, in)
	sw = lightSwitches(s.Render(1))
	if sw[lighting.TramBack] || sw[lighting.TramFront] {
		t.Error("headlights on while the tram is still")
	}
	if !sw[lighting.DockLeft] || !sw[lighting.DockRight] || !sw[lighting.SceneFill] {
		t.Error("fixed lights switched off")
	}
}

func TestTram_CameraFollows(t *testing.T) {
	s, _ := newTestScene(t)
	in := &key.State{}
	run(s, in, 1, 0, key.Eight)
	if s.ActiveCamera() != TramCamera {
		t.Fatalf("active = %s", s.ActiveCamera())
	}
	run(s, in, 4, 1, key.I)
	want := math.Vec3{X: -4, Y: tramCamY, Z: tramCamZ}
	if got := s.Camera().Position(); got != want {
		t.Errorf("tram camera at %v, want %v", got, want)
	}
}

func TestDoors_OpenThenClose(t *testing.T) {
	s, _ := newTestScene(t)
	in := &key.State{}

	// The lock bars slide out before the door moves.
	run(s, in, 44, 0.5, key.E)
	if s.doorLockX != lockTravel || s.doorLock2X != -lockTravel {
		t.Fatalf("locks at %v, %v", s.doorLockX, s.doorLock2X)
	}
	if s.bottomDoorY != 0 || s.topDoorY != doorTopRest {
		t.Fatalf("door moved while locked: %v %v", s.bottomDoorY, s.topDoorY)
	}
	if s.angle2 != -lockTurn*22 {
		t.Errorf("lock wheel angle = %v", s.angle2)
	}

	in.Press(key.E)
	s.Update(0.5, in)
	if sw := lightSwitches(s.Render(1)); !sw[lighting.DoorLeft] || !sw[lighting.DoorRight] {
		t.Error("door spots off while the door opens")
	}
	for range 100 {
		s.Update(0.5, in)
	}
	in.Release(key.E)
	if s.bottomDoorY != -6 || s.topDoorY != 12 {
		t.Errorf("open door at %v, %v", s.bottomDoorY, s.topDoorY)
	}

	s.Update(0.5, in)
	if sw := lightSwitches(s.Render(1)); sw[lighting.DoorLeft] || sw[lighting.DoorRight] {
		t.Error("door spots on with no key held")
	}

	run(s, in, 200, 0.5, key.Q)
	if s.bottomDoorY != 0 || s.topDoorY != doorTopRest {
		t.Errorf("closed door at %v, %v", s.bottomDoorY, s.topDoorY)
	}
	if s.doorLockX >= 0 || s.doorLock2X <= 0 {
		t.Errorf("locks not retracted: %v, %v", s.doorLockX, s.doorLock2X)
	}
}

func TestCamera_FreeMovementOnly(t *testing.T) {
	s, _ := newTestScene(t)
	in := &key.State{}

	run(s, in, 2, 1, key.W)
	free := s.Camera().Position()
	if free.Z != 4 {
		t.Errorf("free camera z = %v, want 4", free.Z)
	}

	run(s, in, 1, 0, key.Nine)
	run(s, in, 3, 1, key.W, key.Space)
	if s.Camera().Position() != doorCameraPos {
		t.Errorf("door camera moved to %v", s.Camera().Position())
	}

	in.MoveMouse(0, 0, 100, 50)
	s.Update(0, in)
	if s.Camera().Yaw() != 0 || s.Camera().Pitch() != 0 {
		t.Error("door camera turned")
	}

	run(s, in, 1, 0, key.Seven)
	in.ResetDelta()
	in.MoveMouse(0, 0, 100, 50)
	s.Update(0, in)
	if s.Camera().Yaw() != 10 || s.Camera().Pitch() != -5 {
		t.Errorf("yaw=%v pitch=%v, want 10, -5", s.Camera().Yaw(), s.Camera().Pitch())
	}
}

func TestToggles(t *testing.T) {
	s, _ := newTestScene(t)
	in := &key.State{}

	in.Press(key.F)
	s.Update(0, in)
	s.Update(0, in)
	if !s.Wireframe() {
		t.Error("wireframe toggled twice by one press")
	}
	if in.KeyDown(key.F) {
		t.Error("f press not consumed")
	}

	run(s, in, 1, 0, key.Three)
	if s.Filter() != render.FilterTrilinear {
		t.Errorf("filter = %s", s.Filter())
	}
	l := s.Render(1)
	found := false
	for _, c := range l.Commands() {
		if c.Op == render.OpTexFilter && c.Filter == render.FilterTrilinear {
			found = true
		}
		if c.Op == render.OpPolygonMode && !c.Flag {
			t.Error("fill mode recorded in wireframe")
		}
	}
	if !found {
		t.Error("filter not recorded")
	}
}

func TestReset(t *testing.T) {
	s, _ := newTestScene(t)
	in := &key.State{}

	run(s, in, 10, 1, key.K, key.E, key.W)
	run(s, in, 1, 0, key.F)

	in.Press(key.R)
	s.Update(0, in)
	if in.KeyDown(key.R) {
		t.Error("r press not consumed")
	}
	if s.TramX() != 0 || s.doorLockX != 0 || s.doorLock2X != 0 {
		t.Errorf("tram=%v locks=%v,%v", s.TramX(), s.doorLockX, s.doorLock2X)
	}
	if s.bottomDoorY != 0 || s.topDoorY != doorTopRest || s.angle != 0 || s.angle2 != 0 {
		t.Error("door not at rest")
	}
	if s.Wireframe() {
		t.Error("wireframe survived reset")
	}
	if got := s.Camera().Position(); got != (math.Vec3{X: 0, Y: 0, Z: 6}) {
		t.Errorf("free camera at %v", got)
	}
}

func TestShadow_SkippedWhenDegenerate(t *testing.T) {
	s, _ := newTestScene(t)

	hasShadow := func(l *render.List) bool {
		for _, c := range l.Commands() {
			if c.Op == render.OpStencilOp && c.Stencil.Pass == render.Zero {
				return true
			}
		}
		return false
	}
	if !hasShadow(s.Render(1)) {
		t.Fatal("shadow pass missing")
	}

	// A plane through the scene light cannot receive its shadow.
	p := lighting.SceneLightPosition
	proj, err := shadow.NewProjector([4]math.Vec3{
		{X: p.X - 1, Y: p.Y + 1, Z: p.Z},
		{X: p.X - 1, Y: p.Y - 1, Z: p.Z},
		{X: p.X + 1, Y: p.Y - 1, Z: p.Z},
		{X: p.X + 1, Y: p.Y + 1, Z: p.Z},
	})
	if err != nil {
		t.Fatal(err)
	}
	s.projector = proj

	l := s.Render(1)
	if hasShadow(l) {
		t.Error("shadow drawn from a degenerate projection")
	}
	if err := l.Err(); err != nil {
		t.Fatal(err)
	}
	if n := len(worldOrigins(l, s.tram.Mesh)); n != 2 {
		t.Errorf("tram drawn %d times, want reflection and real", n)
	}
}

func TestStatus(t *testing.T) {
	s, _ := newTestScene(t)
	in := &key.State{}
	in.MoveMouse(320, 240, 0, 0)
	run(s, in, 1, 0, key.Eight, key.One)

	got := strings.Join(s.Status(in, 59.94), "|")
	want := "Mouse: 320, 240|FPS: 59.94|Texture Mode: Point Sampling|Selected Camera: Tram Camera"
	if got != want {
		t.Errorf("status = %q\nwant     %q", got, want)
	}

	fresh, _ := newTestScene(t)
	if line := fresh.Status(in, 0)[2]; line != "Texture Mode: None" {
		t.Errorf("default texture mode line = %q", line)
	}
}
