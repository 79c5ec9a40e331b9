// Package lighting describes fixed-function lights and materials and the
// light rig of the tram dock.
package lighting

import (
	"errors"
	"fmt"

	"github.com/Faultbox/tramdock/pkg/formats"
	"github.com/Faultbox/tramdock/pkg/math"
)

// MaxLights is the number of fixed-function light units (GL_LIGHT0..7).
const MaxLights = 8

// ErrSlot is returned for a light slot outside [0, MaxLights).
var ErrSlot = errors.New("light slot out of range")

// Spot narrows a light into a cone.
type Spot struct {
	Direction [3]float32
	Cutoff    float32 // degrees, 180 = no cone
	Exponent  float32
}

// Light is one fixed-function light source.
type Light struct {
	Ambient  math.Vec4
	Diffuse  math.Vec4
	Specular math.Vec4
	// Position is homogeneous: w = 1 for a positional light.
	Position math.Vec4
	Spot     *Spot

	// Constant, linear and quadratic attenuation.
	Attenuation [3]float32

	// YawDeg rotates the light about the world y axis before it is placed.
	YawDeg float32
}

// Point returns a positional light with no attenuation beyond constant 1.
func Point(pos math.Vec3, ambient, diffuse math.Vec4) Light {
	return Light{
		Ambient:     ambient,
		Diffuse:     diffuse,
		Specular:    math.Vec4{0, 0, 0, 1},
		Position:    pos.Point(),
		Attenuation: [3]float32{1, 0, 0},
	}
}

// WorldPosition returns the light position after its yaw rotation. For a
// directional light (w = 0) it is the rotated direction.
func (l Light) WorldPosition() math.Vec3 {
	p := l.Position.Vec3()
	if l.YawDeg == 0 {
		return p
	}
	yaw := math.Rotate(l.YawDeg, 0, 1, 0)
	if l.Position[3] == 0 {
		return yaw.TransformDirection(p)
	}
	return yaw.TransformPoint(p)
}

// Material is a fixed-function surface description.
type Material struct {
	Ambient   math.Vec4
	Diffuse   math.Vec4
	Specular  math.Vec4
	Emission  math.Vec4
	Shininess float32 // GL range [0, 128]
}

// DefaultMaterial returns the GL default material.
func DefaultMaterial() Material {
	return Material{
		Ambient:  math.Vec4{0.2, 0.2, 0.2, 1},
		Diffuse:  math.Vec4{0.8, 0.8, 0.8, 1},
		Specular: math.Vec4{0, 0, 0, 1},
		Emission: math.Vec4{0, 0, 0, 1},
	}
}

// LockMaterial is the low-specular blue-grey metal of the door locks.
func LockMaterial() Material {
	return Material{
		Ambient:   math.Vec4{0, 0, 0, 0},
		Diffuse:   math.Vec4{0.1, 0.5, 0.8, 1},
		Specular:  math.Vec4{0.5, 0.5, 0.5, 0.5},
		Emission:  math.Vec4{0, 0, 0, 0},
		Shininess: 5,
	}
}

// FromMTL converts a parsed MTL material. Ns, stored in [0,1], is scaled to
// the GL shininess range and alpha is applied to the diffuse colour.
func FromMTL(m formats.Material) Material {
	out := DefaultMaterial()
	out.Ambient = m.Ambient
	out.Diffuse = m.Diffuse
	out.Diffuse[3] = m.Alpha
	out.Specular = m.Specular
	out.Shininess = m.Shininess * 128
	return out
}

// Rig is a fixed set of light slots, each of which may be switched on or off.
type Rig struct {
	lights  [MaxLights]Light
	enabled [MaxLights]bool
	used    [MaxLights]bool
}

// Set stores a light in slot.
func (r *Rig) Set(slot int, l Light) error {
	if slot < 0 || slot >= MaxLights {
		return fmt.Errorf("slot %d: %w", slot, ErrSlot)
	}
	r.lights[slot] = l
	r.used[slot] = true
	return nil
}

// Light returns the light in slot.
func (r *Rig) Light(slot int) (Light, bool) {
	if slot < 0 || slot >= MaxLights || !r.used[slot] {
		return Light{}, false
	}
	return r.lights[slot], true
}

// Enable switches slot on or off. Unused slots stay off.
func (r *Rig) Enable(slot int, on bool) {
	if slot < 0 || slot >= MaxLights {
		return
	}
	r.enabled[slot] = on && r.used[slot]
}

// Enabled reports whether slot is lit.
func (r *Rig) Enabled(slot int) bool {
	return slot >= 0 && slot < MaxLights && r.enabled[slot]
}

// Slots returns the indices of every populated slot in order.
func (r *Rig) Slots() []int {
	var out []int
	for i, u := range r.used {
		if u {
			out = append(out, i)
		}
	}
	return out
}
