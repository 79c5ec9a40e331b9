package geometry

import "math"

// Disc returns a triangle fan in the z=0 plane: a centre vertex followed by
// segments+1 rim vertices. The last rim vertex repeats the first so the fan
// closes without a seam.
func Disc(radius float32, segments int) *Mesh {
	checkArgs("disc", radius, segments)

	b := newBuilder("disc", TriangleFan, segments+2)
	up := [3]float32{0, 0, 1}
	d := 2 * radius

	b.add([3]float32{0, 0, 0}, up, 0.5, 0.5)
	for i := 0; i <= segments; i++ {
		theta := float64(i) * 2 * math.Pi / float64(segments)
		c, s := float32(math.Cos(theta)), float32(math.Sin(theta))
		b.add([3]float32{radius * c, radius * s, 0}, up, c/d+0.5, s/d+0.5)
	}
	return b.mesh
}

// Sphere returns a quad grid over longitude [0,π] and latitude [0,2π] with
// the y axis through the poles.
func Sphere(radius float32, segments int) *Mesh {
	checkArgs("sphere", radius, segments)

	b := newBuilder("sphere", Quads, 4*segments*segments)
	step := 1 / float32(segments)

	corner := func(lon, lat int) {
		delta := float64(lon) * math.Pi / float64(segments)
		theta := float64(lat) * 2 * math.Pi / float64(segments)
		n := [3]float32{
			float32(math.Cos(theta) * math.Sin(delta)),
			float32(math.Cos(delta)),
			float32(math.Sin(theta) * math.Sin(delta)),
		}
		pos := [3]float32{radius * n[0], radius * n[1], radius * n[2]}
		b.add(pos, n, float32(lat)*step, float32(lon)*step)
	}

	for lon := range segments {
		for lat := range segments {
			corner(lon, lat)
			corner(lon+1, lat)
			corner(lon+1, lat+1)
			corner(lon, lat+1)
		}
	}
	return b.mesh
}

// Cylinder is an open tube along +z, one unit long per column. Cap it with
// two discs, the second translated by Length.
type Cylinder struct {
	*Mesh
	Radius float32
	Length float32
}

// NewCylinder returns a tube of segments columns by segments slices.
// Normals are radial with no z component.
func NewCylinder(radius float32, segments int) *Cylinder {
	checkArgs("cylinder", radius, segments)

	b := newBuilder("cylinder", Quads, 4*segments*segments)
	step := 1 / float32(segments)

	corner := func(col, st int) {
		theta := float64(st) * 2 * math.Pi / float64(segments)
		c, s := float32(math.Cos(theta)), float32(math.Sin(theta))
		b.add(
			[3]float32{radius * c, radius * s, float32(col)},
			[3]float32{c, s, 0},
			1-float32(st)*step, float32(col)*step,
		)
	}

	for col := range segments {
		for st := range segments {
			corner(col, st)
			corner(col, st+1)
			corner(col+1, st+1)
			corner(col+1, st)
		}
	}
	return &Cylinder{Mesh: b.mesh, Radius: radius, Length: float32(segments)}
}

// Torus returns a ring around the z axis with major radius 2*radius and
// tube radius radius.
func Torus(radius float32, segments int) *Mesh {
	checkArgs("torus", radius, segments)

	b := newBuilder("torus", Quads, 4*segments*segments)
	step := 1 / float32(segments)
	major := 2 * radius

	corner := func(col, st int) {
		delta := float64(col) * 2 * math.Pi / float64(segments)
		theta := float64(st) * 2 * math.Pi / float64(segments)
		cosT, sinT := float32(math.Cos(theta)), float32(math.Sin(theta))
		cosD, sinD := float32(math.Cos(delta)), float32(math.Sin(delta))
		ring := major + radius*cosT
		b.add(
			[3]float32{ring * cosD, ring * sinD, radius * sinT},
			[3]float32{cosT * cosD, cosT * sinD, sinT},
			float32(col)*step, 1-float32(st)*step,
		)
	}

	for col := range segments {
		for st := range segments {
			corner(col, st)
			corner(col+1, st)
			corner(col+1, st+1)
			corner(col, st+1)
		}
	}
	return b.mesh
}
