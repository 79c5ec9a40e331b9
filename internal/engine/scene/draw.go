package scene

import (
	"go.uber.org/zap"

	"github.com/Faultbox/tramdock/internal/engine/lighting"
	"github.com/Faultbox/tramdock/internal/engine/model"
	"github.com/Faultbox/tramdock/internal/engine/render"
	"github.com/Faultbox/tramdock/internal/engine/texture"
	"github.com/Faultbox/tramdock/pkg/math"
)

// Tram placement on the rail.
const (
	tramY = 2.965
	tramZ = -5
)

// railX are the rail section offsets along the dock.
var railX = [...]float32{30, 10, -10, -30, -50}

// Render records the frame for a viewport of the given aspect ratio. The
// returned list is reused by the next call.
func (s *Scene) Render(aspect float32) *render.List {
	l := &s.list
	l.Reset()

	if aspect <= 0 {
		aspect = 1
	}
	l.Projection(math.Perspective(s.config.FOV, aspect, s.config.Near, s.config.Far))
	l.Clear(clearColor)

	l.Enable(render.CapDepthTest)
	l.Enable(render.CapLighting)
	l.Enable(render.CapColorMaterial)
	l.Enable(render.CapTexture2D)
	l.Disable(render.CapBlend)
	l.Disable(render.CapStencilTest)
	l.ColorMask(true)
	l.Wireframe(s.wireframe)
	if s.filter != render.FilterNone {
		l.TexFilter(s.filter)
	}

	l.LoadMatrix(s.Camera().ViewMatrix())
	s.lights(l)
	s.skybox(l)

	s.enclosure(l)
	s.reflection(l)
	s.planarShadow(l)
	s.leftDock(l)
	s.rightDock(l)

	if err := l.Err(); err != nil {
		s.log.Error("frame has an unbalanced matrix stack", zap.Error(err))
	}
	return l
}

func (s *Scene) lights(l *render.List) {
	s.rig.Place(s.tramX, s.angle)
	for _, slot := range s.rig.Slots() {
		light, _ := s.rig.Light(slot)
		l.Light(slot, light)
		l.LightSwitch(slot, s.rig.Enabled(slot))
	}
}

// skybox draws a unit cube around the eye without depth or lighting.
func (s *Scene) skybox(l *render.List) {
	l.BindTexture(texture.None)
	l.Color(0.15, 0.15, 0.15, 1)
	l.Push()
	p := s.Camera().Position()
	l.Translate(p.X, p.Y, p.Z)
	l.Disable(render.CapDepthTest)
	l.Disable(render.CapLighting)
	l.Draw(s.shapes.Skybox)
	l.Enable(render.CapDepthTest)
	l.Enable(render.CapLighting)
	l.Pop()
}

// plane draws the flat sheet.
func (s *Scene) plane(l *render.List, tex texture.Handle) {
	l.BindTexture(tex)
	l.Draw(s.shapes.TramRail)
}

// box folds the sheet into the four sides of a long box: back and bottom
// use back, front and top use front.
func (s *Scene) box(l *render.List, front, back texture.Handle) {
	sheet := s.shapes.TramRail
	l.Push()
	l.BindTexture(back)
	l.Scale(1, 0.1, 0.1)
	l.Draw(sheet)
	l.Rotate(90, 1, 0, 0)
	l.BindTexture(back)
	l.Draw(sheet)
	l.Translate(0, 10, -10)
	l.Rotate(90, 1, 0, 0)
	l.BindTexture(front)
	l.Draw(sheet)
	l.Rotate(90, 1, 0, 0)
	l.BindTexture(front)
	l.Draw(sheet)
	l.Pop()
}

func (s *Scene) wall(l *render.List, tex texture.Handle) {
	l.BindTexture(tex)
	l.Draw(s.shapes.Wall)
}

// cylinder draws a capped tube and leaves the modelview at the far cap.
func (s *Scene) cylinder(l *render.List) {
	c := s.shapes.Cylinder
	l.Draw(s.shapes.Disc)
	l.Draw(c.Mesh)
	l.Translate(0, 0, c.Length)
	l.Draw(s.shapes.Disc)
}

func (s *Scene) drawModel(l *render.List, m *model.Model) {
	if m == nil {
		return
	}
	mat, ok := m.Material()
	if ok {
		l.Material(mat)
	}
	m.Draw(l)
	if ok {
		l.Material(lighting.LockMaterial())
	}
}

func (s *Scene) tramModel(l *render.List) {
	l.Translate(s.tramX, tramY, tramZ)
	l.Rotate(90, 0, 1, 0)
	s.drawModel(l, s.tram)
}

func (s *Scene) rails(l *render.List) {
	for _, x := range railX {
		l.Push()
		l.Translate(x, 10.99, -5.5)
		s.box(l, s.tex.hazard, s.tex.hazard)
		l.Pop()
	}
}

func (s *Scene) door(l *render.List) {
	l.Push()
	l.Translate(-12, s.topDoorY, -36.05)
	l.Scale(1.2, 6, 1)
	s.box(l, s.tex.doorTop, s.tex.doorTopFlipped)
	l.Pop()

	l.Push()
	l.Translate(-12, s.bottomDoorY, -36.05)
	l.Scale(1.2, 6, 1)
	s.box(l, s.tex.doorBottom, s.tex.doorBottomFlipped)
	l.Pop()
}

func (s *Scene) doorRoom(l *render.List) {
	l.Push()
	l.Translate(12, 0, -55)
	l.Rotate(-90, 0, 1, 0)
	l.Scale(1, 12, 24)
	s.box(l, s.tex.wall, s.tex.wall)
	l.Pop()
}

func (s *Scene) walkway(l *render.List) {
	l.Enable(render.CapBlend)
	l.Push()
	l.Translate(-18, 0, -35)
	l.Rotate(90, 1, 0, 0)
	l.Scale(1.8, 1, 1)
	s.plane(l, s.tex.grate)
	l.Pop()

	l.Push()
	l.Translate(-12, 0, -25)
	l.Rotate(90, 1, 0, 0)
	l.Scale(1.2, 1.75, 1)
	s.plane(l, s.tex.grate)
	l.Pop()
	l.Disable(render.CapBlend)
}

// doorLocks draws the two lock bars, each a cylinder with a spinning
// wheel of two discs and a torus at its end.
func (s *Scene) doorLocks(l *render.List) {
	l.Material(lighting.LockMaterial())
	l.BindTexture(texture.None)
	l.Color(1, 1, 1, 1)

	s.lockBar(l, s.doorLock2X-12, 2, math.Vec3{X: 0.325, Y: -1, Z: -s.doorLock2X - 23})
	s.lockBar(l, s.doorLockX-12, 10, math.Vec3{X: 0.325, Y: 1, Z: -s.doorLockX - 1})
}

func (s *Scene) lockBar(l *render.List, x, y float32, wheel math.Vec3) {
	l.Push()
	l.Translate(x, y, -34)
	l.Rotate(90, 0, 1, 0)
	s.cylinder(l)

	l.Push()
	l.Translate(wheel.X, wheel.Y, wheel.Z)
	l.Rotate(90, 0, 1, 0)
	l.Rotate(s.angle2, 0, 0, 1)
	l.Draw(s.shapes.Disc)
	l.Push()
	l.Translate(0, 0, -0.325)
	l.Rotate(s.angle2, 0, 0, 1)
	l.Draw(s.shapes.Torus)
	l.Pop()
	l.Translate(0, 0, -0.65)
	l.Draw(s.shapes.Disc)
	l.Pop()

	l.Pop()
}

func (s *Scene) crowbarAt(l *render.List, z float32) {
	l.Push()
	l.Translate(9.1, 1.5, z)
	l.Rotate(-45, 0, 0, 1)
	l.Scale(0.05, 0.05, 0.05)
	s.drawModel(l, s.crowbar)
	l.Pop()
}

// enclosure draws the floor and the three walls around the dock.
func (s *Scene) enclosure(l *render.List) {
	l.Push()
	l.Color(0, 0, 0, 1)
	l.Translate(-30, -30, -35)
	l.Rotate(90, 1, 0, 0)
	l.Scale(3, 6, 1)
	s.plane(l, texture.None)
	l.Pop()

	walls := []struct {
		x, z, yaw float32
	}{
		{-30, -35, 0},
		{-30, 25, 90},
		{30, -35, 270},
	}
	for _, w := range walls {
		l.Push()
		l.Color(0.6, 0.6, 0.6, 1)
		l.Translate(w.x, -30, w.z)
		if w.yaw != 0 {
			l.Rotate(w.yaw, 0, 1, 0)
		}
		l.Scale(3, 6, 1)
		s.wall(l, s.tex.wall)
		l.Pop()
	}
}

// mirror draws the reflective floor patch in front of the door.
func (s *Scene) mirror(l *render.List) {
	l.Push()
	l.Translate(-12, 0, -55)
	l.Scale(1.2, 1.2, 1)
	s.plane(l, texture.None)
	l.Pop()
}

// reflection marks the mirror in the stencil buffer, draws the mirrored
// room through it, blends the mirror surface on top and then draws the
// real objects in front of the door.
func (s *Scene) reflection(l *render.List) {
	l.ColorMask(false)
	l.Enable(render.CapStencilTest)
	l.StencilFunc(render.Always, 1, 1)
	l.StencilOp(render.Keep, render.Keep, render.Replace)
	l.Disable(render.CapDepthTest)
	s.mirror(l)
	l.Enable(render.CapDepthTest)
	l.ColorMask(true)
	l.StencilFunc(render.Equal, 1, 1)
	l.StencilOp(render.Keep, render.Keep, render.Keep)

	l.Push()
	l.Color(1, 1, 1, 1)
	l.Scale(1, 1, -1)
	l.Translate(s.tramX, tramY, 100)
	l.Rotate(90, 0, 1, 0)
	s.drawModel(l, s.tram)
	l.Pop()

	for _, part := range []struct {
		z    float32
		draw func(*render.List)
	}{
		{-37, s.door},
		{-20, s.doorRoom},
		{-94.5, s.rails},
		{-40, s.doorLocks},
	} {
		l.Push()
		l.Translate(0, 0, part.z)
		part.draw(l)
		l.Pop()
	}

	l.Push()
	l.Translate(0, 0, -110)
	l.Rotate(180, 1, 0, 0)
	s.walkway(l)
	l.Pop()

	s.crowbarAt(l, -65)

	l.Disable(render.CapStencilTest)
	l.Enable(render.CapBlend)
	l.Disable(render.CapLighting)
	l.Color(0.4, 0.4, 0.5, 0.8)
	s.mirror(l)
	l.Enable(render.CapLighting)
	l.Disable(render.CapBlend)

	l.Push()
	l.Translate(0, 0, -3)
	s.door(l)
	l.Pop()

	l.Push()
	s.doorRoom(l)
	l.Pop()

	l.Push()
	l.Translate(0, 0, -2.5)
	s.doorLocks(l)
	l.Pop()

	l.Push()
	s.walkway(l)
	l.Pop()

	s.crowbarAt(l, -45)
}

// planarShadow flattens the rails and tram onto the back wall from the
// scene light, then draws the real tram and rails. When the light lies on
// the wall plane the shadow is skipped for the frame.
func (s *Scene) planarShadow(l *render.List) {
	l.BindTexture(texture.None)

	matrix, err := s.projector.Update(lighting.SceneLightPosition)
	if err != nil {
		s.log.Debug("shadow skipped", zap.Error(err))
	} else {
		l.ColorMask(false)
		l.Enable(render.CapStencilTest)
		l.StencilFunc(render.Always, 1, 1)
		l.StencilOp(render.Keep, render.Keep, render.Replace)
		l.Color(1, 0.8, 0.8, 1)
		l.Draw(s.wallQuad)
		l.Disable(render.CapStencilTest)

		l.Disable(render.CapDepthTest)
		l.Disable(render.CapLighting)
		l.Disable(render.CapTexture2D)
		l.Enable(render.CapBlend)
		l.ColorMask(true)
		l.Enable(render.CapStencilTest)
		l.StencilFunc(render.Equal, 1, 1)
		l.StencilOp(render.Keep, render.Keep, render.Zero)

		l.Color(0.1, 0.1, 0.1, 1)
		l.Push()
		l.MultMatrix(matrix)
		s.rails(l)
		s.tramModel(l)
		l.Pop()

		l.Disable(render.CapBlend)
		l.Disable(render.CapStencilTest)
		l.Enable(render.CapDepthTest)
		l.Enable(render.CapLighting)
		l.Enable(render.CapTexture2D)
	}

	l.Color(1, 1, 1, 1)
	l.Push()
	s.tramModel(l)
	l.Pop()

	l.Push()
	s.rails(l)
	l.Pop()
}

func (s *Scene) leftDock(l *render.List) {
	l.Push()
	l.Translate(-50, 0, -17)
	l.Scale(1, 12, 24)
	s.box(l, s.tex.wall, s.tex.wall)
	l.Push()
	l.Scale(1, 0.1, 0.05)
	l.Rotate(-90, 0, 1, 0)
	s.plane(l, s.tex.wall)
	l.Pop()
	l.Pop()
}

func (s *Scene) rightDock(l *render.List) {
	l.Push()
	l.Translate(30, 0, -17)
	l.Scale(1, 12, 24)
	s.box(l, s.tex.wall, s.tex.wall)
	l.Push()
	l.Translate(20, 0, 1)
	l.Rotate(-270, 0, 1, 0)
	l.Scale(0.05, 0.1, 1)
	s.plane(l, s.tex.wall)
	l.Pop()
	l.Pop()
}
