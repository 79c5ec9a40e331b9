package lighting

import "github.com/Faultbox/tramdock/pkg/math"

// Light slots of the tram dock.
const (
	DoorLeft = iota
	DoorRight
	TramFront
	TramBack
	DockLeft
	DockRight
	SceneFill
)

// Tram headlights sit this far either side of the tram centre.
const (
	tramFrontOffset = -6.5
	tramBackOffset  = 6.65
)

// SceneLightPosition is where the fill light hangs; it also casts the wall shadow.
var SceneLightPosition = math.Vec3{X: 0, Y: 9, Z: 24}

// DockRig is the light rig of the tram dock. Door spots sweep while the door
// moves, tram headlights follow the tram, dock and fill lights are fixed.
type DockRig struct {
	Rig
}

// NewDockRig places every light at its rest position. The dock and fill
// lights start on, the door and tram spots start off.
func NewDockRig() *DockRig {
	r := &DockRig{}

	red := math.Vec4{1, 0, 0, 0}
	redAmbient := math.Vec4{0.4, 0, 0, 0}
	doorSpot := &Spot{Direction: [3]float32{0, 0, -1}, Cutoff: 90, Exponent: 2}

	left := Point(math.Vec3{X: -12, Y: 12.5, Z: -34.75}, redAmbient, red)
	left.Spot = doorSpot
	// LIGHT0 keeps its default white specular.
	left.Specular = math.Vec4{1, 1, 1, 1}
	right := Point(math.Vec3{X: 12, Y: 12.5, Z: -34.75}, redAmbient, red)
	right.Spot = &Spot{Direction: doorSpot.Direction, Cutoff: 90, Exponent: 2}

	white := math.Vec4{1, 1, 1, 1}
	grey := math.Vec4{0.4, 0.4, 0.4, 1}
	front := Point(math.Vec3{X: tramFrontOffset, Y: 3.5, Z: -5}, grey, white)
	front.Spot = &Spot{Direction: [3]float32{-1, 0, 0}, Cutoff: 90, Exponent: 20}
	back := Point(math.Vec3{X: tramBackOffset, Y: 3.5, Z: -5}, grey, white)
	back.Spot = &Spot{Direction: [3]float32{1, 0, 0}, Cutoff: 90, Exponent: 20}

	yellow := math.Vec4{1, 1, 0, 1}
	olive := math.Vec4{0.4, 0.4, 0, 1}
	dockL := Point(math.Vec3{X: -49.8, Y: 6, Z: -5}, olive, yellow)
	dockL.Attenuation = [3]float32{1, 0.25, 0.05}
	dockR := Point(math.Vec3{X: 49.8, Y: 6, Z: -5}, olive, yellow)
	dockR.Attenuation = [3]float32{1, 0.25, 0.05}

	fill := Point(SceneLightPosition, grey, white)
	fill.Specular = math.Vec4{0.5, 0.5, 0.5, 1}
	fill.Attenuation = [3]float32{1, 0.2, 0}

	for slot, l := range []Light{left, right, front, back, dockL, dockR, fill} {
		if err := r.Set(slot, l); err != nil {
			panic(err)
		}
	}
	r.Enable(DockLeft, true)
	r.Enable(DockRight, true)
	r.Enable(SceneFill, true)
	return r
}

// Place moves the tram headlights to follow tramX and sweeps the door spots
// by doorAngle degrees in opposite directions.
func (r *DockRig) Place(tramX, doorAngle float32) {
	r.lights[TramFront].Position[0] = tramX + tramFrontOffset
	r.lights[TramBack].Position[0] = tramX + tramBackOffset
	r.lights[DoorLeft].YawDeg = doorAngle
	r.lights[DoorRight].YawDeg = -doorAngle
}
