package scene

import (
	"go.uber.org/zap"

	"github.com/Faultbox/tramdock/internal/engine/input/key"
	"github.com/Faultbox/tramdock/internal/engine/lighting"
	"github.com/Faultbox/tramdock/internal/engine/render"
	"github.com/Faultbox/tramdock/pkg/math"
)

// Update advances the scene by dt seconds.
func (s *Scene) Update(dt float32, in Input) {
	s.moveTram(dt, in)
	s.cameras[TramCamera].SetPosition(math.Vec3{X: s.tramX, Y: tramCamY, Z: tramCamZ})

	s.toggleWireframe(in)
	s.moveCamera(dt, in)
	s.turnCamera(in)
	s.selectCamera(in)
	s.selectFilter(in)
	s.moveDoors(dt, in)
	s.reset(in)
}

// moveTram drives the tram with k/i and lights the headlight facing the
// direction of travel.
func (s *Scene) moveTram(dt float32, in Input) {
	switch {
	case in.KeyDown(key.K):
		if s.tramX < tramLimit {
			s.tramX = min(s.tramX+dt, tramLimit)
			s.rig.Enable(lighting.TramBack, true)
		}
	case in.KeyDown(key.I):
		if s.tramX > -tramLimit {
			s.tramX = max(s.tramX-dt, -tramLimit)
			s.rig.Enable(lighting.TramFront, true)
		}
	default:
		s.rig.Enable(lighting.TramFront, false)
		s.rig.Enable(lighting.TramBack, false)
	}
}

// moveDoors closes with q and opens with e. Opening slides the lock bars
// out before the door halves part; closing brings the halves together
// before the bars slide back. The door spots sweep while the halves move.
func (s *Scene) moveDoors(dt float32, in Input) {
	switch {
	case in.KeyDown(key.Q):
		if s.bottomDoorY < 0 && s.topDoorY > doorTopRest {
			s.bottomDoorY += doorSpeed * dt
			s.topDoorY -= doorSpeed * dt
			s.doorSpots(true)
			s.angle += doorSpotTurn * dt
		}
		if s.doorLockX >= 0 && s.doorLock2X <= 0 && s.bottomDoorY >= 0 && s.topDoorY >= doorTopRest-0.1 {
			s.doorLockX -= dt
			s.doorLock2X += dt
			s.angle2 += lockTurn * dt
		}
	case in.KeyDown(key.E):
		if s.doorLockX >= lockTravel && s.doorLock2X <= -lockTravel && s.bottomDoorY > doorBotOpen && s.topDoorY < doorTopOpen {
			s.bottomDoorY -= doorSpeed * dt
			s.topDoorY += doorSpeed * dt
			s.doorSpots(true)
			s.angle += doorSpotTurn * dt
		}
		if s.doorLockX < lockTravel && s.doorLock2X > -lockTravel {
			s.doorLockX += dt
			s.doorLock2X -= dt
			s.angle2 -= lockTurn * dt
		}
	default:
		s.doorSpots(false)
	}
}

func (s *Scene) doorSpots(on bool) {
	s.rig.Enable(lighting.DoorLeft, on)
	s.rig.Enable(lighting.DoorRight, on)
}

// moveCamera flies the free camera. The other cameras are fixed in place.
func (s *Scene) moveCamera(dt float32, in Input) {
	if s.active != FreeCamera {
		return
	}
	c := s.cameras[FreeCamera]
	step := dt * s.config.MoveSpeed
	if in.KeyDown(key.D) {
		c.MoveRight(step)
	}
	if in.KeyDown(key.W) {
		c.MoveForward(step)
	}
	if in.KeyDown(key.A) {
		c.MoveLeft(step)
	}
	if in.KeyDown(key.S) {
		c.MoveBackward(step)
	}
	if in.KeyDown(key.Space) {
		c.MoveUp(step)
	}
	if in.KeyDown(key.C) {
		c.MoveDown(step)
	}
}

// turnCamera applies mouse motion to the free and tram cameras.
func (s *Scene) turnCamera(in Input) {
	if s.active == DoorCamera {
		return
	}
	dx, dy := in.MouseDelta()
	if dx == 0 && dy == 0 {
		return
	}
	sens := s.config.MouseSensitivity
	if sens <= 0 {
		sens = 10
	}
	c := s.cameras[s.active]
	c.AddYaw(float32(dx) / sens)
	c.AddPitch(-float32(dy) / sens)
}

func (s *Scene) selectCamera(in Input) {
	for _, sel := range []struct {
		k  key.Key
		id CameraID
	}{{key.Seven, FreeCamera}, {key.Eight, TramCamera}, {key.Nine, DoorCamera}} {
		if in.KeyDown(sel.k) && s.active != sel.id {
			s.active = sel.id
			s.log.Debug("camera selected", zap.Stringer("camera", sel.id))
		}
	}
}

func (s *Scene) selectFilter(in Input) {
	switch {
	case in.KeyDown(key.One):
		s.filter = render.FilterPoint
	case in.KeyDown(key.Two):
		s.filter = render.FilterBilinear
	case in.KeyDown(key.Three):
		s.filter = render.FilterTrilinear
	case in.KeyDown(key.Four):
		s.filter = render.FilterPointTrilinear
	}
}

func (s *Scene) toggleWireframe(in Input) {
	if in.KeyDown(key.F) {
		s.wireframe = !s.wireframe
		in.Release(key.F)
	}
}

// reset puts the active camera, the tram and the door back at rest.
func (s *Scene) reset(in Input) {
	if !in.KeyDown(key.R) {
		return
	}
	s.cameras[s.active].Reset()
	s.cameras[DoorCamera].SetPosition(doorCameraPos)
	s.tramX, s.doorLockX, s.doorLock2X = 0, 0, 0
	s.bottomDoorY, s.topDoorY = 0, doorTopRest
	s.angle, s.angle2 = 0, 0
	s.wireframe = false
	in.Release(key.R)
	s.log.Debug("scene reset")
}
