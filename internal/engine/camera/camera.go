// Package camera provides the yaw/pitch/roll camera the scene views through.
package camera

import (
	gomath "math"

	"github.com/Faultbox/tramdock/pkg/math"
)

// Default pose restored by Reset.
var defaultPosition = math.Vec3{X: 0, Y: 0, Z: 6}

// Camera is a free camera described by a position and Euler angles in
// degrees. The forward/up/right basis is derived from the angles and cached;
// any mutator marks the cache stale and the accessors refresh it on demand.
type Camera struct {
	position         math.Vec3
	yaw, pitch, roll float32

	forward, up, right math.Vec3
	dirty              bool
}

// New returns a camera at the default pose.
func New() *Camera {
	c := &Camera{}
	c.Reset()
	return c
}

// Update recomputes the basis from the current angles.
//
//	forward = (sinY cosP, sinP, -cosP cosY)
//	up      = (-cosY sinR - sinY sinP cosR, cosP cosR, -sinY sinR + sinP cosR cosY)
//	right   = forward x up
func (c *Camera) Update() {
	sy, cy := sincos(c.yaw)
	sp, cp := sincos(c.pitch)
	sr, cr := sincos(c.roll)

	c.forward = math.Vec3{X: sy * cp, Y: sp, Z: -cp * cy}
	c.up = math.Vec3{
		X: -cy*sr - sy*sp*cr,
		Y: cp * cr,
		Z: -sy*sr + sp*cr*cy,
	}
	c.right = c.forward.Cross(c.up)
	c.dirty = false
}

func (c *Camera) refresh() {
	if c.dirty {
		c.Update()
	}
}

// Position returns the camera position.
func (c *Camera) Position() math.Vec3 {
	return c.position
}

// Forward returns the view direction.
func (c *Camera) Forward() math.Vec3 {
	c.refresh()
	return c.forward
}

// Up returns the up vector, rolled by the roll angle.
func (c *Camera) Up() math.Vec3 {
	c.refresh()
	return c.up
}

// Right returns forward x up.
func (c *Camera) Right() math.Vec3 {
	c.refresh()
	return c.right
}

// LookAt returns the point one unit in front of the camera.
func (c *Camera) LookAt() math.Vec3 {
	c.refresh()
	return c.position.Add(c.forward)
}

// ViewMatrix returns the gluLookAt matrix for the current pose.
func (c *Camera) ViewMatrix() math.Mat4 {
	c.refresh()
	return math.LookAt(c.position, c.position.Add(c.forward), c.up)
}

// Yaw returns the yaw in degrees.
func (c *Camera) Yaw() float32 { return c.yaw }

// Pitch returns the pitch in degrees.
func (c *Camera) Pitch() float32 { return c.pitch }

// Roll returns the roll in degrees.
func (c *Camera) Roll() float32 { return c.roll }

// SetPosition moves the camera to p.
func (c *Camera) SetPosition(p math.Vec3) {
	c.position = p
}

// AddYaw turns the camera by deg degrees.
func (c *Camera) AddYaw(deg float32) {
	c.yaw += deg
	c.dirty = true
}

// AddPitch tilts the camera by deg degrees.
func (c *Camera) AddPitch(deg float32) {
	c.pitch += deg
	c.dirty = true
}

// SetRoll sets the roll to deg degrees.
func (c *Camera) SetRoll(deg float32) {
	c.roll = deg
	c.dirty = true
}

// MoveForward moves along the view direction.
func (c *Camera) MoveForward(dt float32) {
	c.position = c.position.AddScaled(c.Forward(), dt)
}

// MoveBackward moves against the view direction.
func (c *Camera) MoveBackward(dt float32) {
	c.position = c.position.SubScaled(c.Forward(), dt)
}

// MoveLeft strafes against the right vector.
func (c *Camera) MoveLeft(dt float32) {
	c.position = c.position.SubScaled(c.Right(), dt)
}

// MoveRight strafes along the right vector.
func (c *Camera) MoveRight(dt float32) {
	c.position = c.position.AddScaled(c.Right(), dt)
}

// MoveUp raises the camera along world y regardless of orientation.
func (c *Camera) MoveUp(dt float32) {
	c.position.Y += dt
}

// MoveDown lowers the camera along world y regardless of orientation.
func (c *Camera) MoveDown(dt float32) {
	c.position.Y -= dt
}

// Reset restores position (0,0,6) and zero angles.
func (c *Camera) Reset() {
	c.position = defaultPosition
	c.yaw, c.pitch, c.roll = 0, 0, 0
	c.Update()
}

func sincos(deg float32) (sin, cos float32) {
	s, co := gomath.Sincos(float64(math.Radians(deg)))
	return float32(s), float32(co)
}
