// Package shadow builds planar shadow matrices: projections that flatten
// geometry onto a plane along rays from a point light.
package shadow

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/Faultbox/tramdock/pkg/math"
)

// ErrDegenerateProjection is returned when the light lies on the target
// plane. The projection is singular and must not be applied.
var ErrDegenerateProjection = errors.New("degenerate shadow projection")

// ErrDegeneratePlane is returned when the supplied points do not span a plane.
var ErrDegeneratePlane = errors.New("points do not define a plane")

// Epsilon is the smallest light-to-plane distance accepted by Matrix.
const Epsilon = 1e-4

// PlaneFromPoints returns the plane through a, b and c with a unit normal
// oriented by the winding a->b->c.
func PlaneFromPoints(a, b, c math.Vec3) (math.Plane, error) {
	n := b.Sub(a).Cross(c.Sub(a))
	return planeFromNormal(n, a)
}

// PlaneFromQuad returns the plane of four coplanar corners. The normal is
// computed with Newell's method so any three collinear corners are tolerated.
func PlaneFromQuad(q [4]math.Vec3) (math.Plane, error) {
	var n, centroid math.Vec3
	for i := range q {
		cur, next := q[i], q[(i+1)%4]
		n.X += (cur.Y - next.Y) * (cur.Z + next.Z)
		n.Y += (cur.Z - next.Z) * (cur.X + next.X)
		n.Z += (cur.X - next.X) * (cur.Y + next.Y)
		centroid = centroid.Add(cur)
	}
	return planeFromNormal(n, centroid.Scale(0.25))
}

// PlaneFromNormal returns the plane with normal n through point p.
func PlaneFromNormal(n, p math.Vec3) (math.Plane, error) {
	return planeFromNormal(n, p)
}

func planeFromNormal(n, p math.Vec3) (math.Plane, error) {
	l := n.Length()
	if l < 1e-6 || gomath.IsNaN(float64(l)) {
		return math.Plane{}, ErrDegeneratePlane
	}
	n = n.Scale(1 / l)
	return math.Plane{A: n.X, B: n.Y, C: n.Z, D: -n.Dot(p)}, nil
}

// Matrix returns the planar shadow matrix for light and plane, column-major:
//
//	M[r][c] = dot*δ(r,c) - light[r]*plane[c],  dot = plane·light
//
// light is homogeneous; w = 1 for a point light, 0 for a directional one.
// Points on the plane map to themselves.
func Matrix(light math.Vec4, plane math.Plane) (math.Mat4, error) {
	n := plane.Normal().Length()
	if n < 1e-6 {
		return math.Mat4{}, ErrDegeneratePlane
	}
	p := plane.Vec4()
	for i := range p {
		p[i] /= n
	}

	dot := p.Dot(light)
	if gomath.Abs(float64(dot)) < Epsilon {
		return math.Mat4{}, fmt.Errorf("light %v on plane %v: %w", light, plane, ErrDegenerateProjection)
	}

	var m math.Mat4
	for c := range 4 {
		for r := range 4 {
			v := -light[r] * p[c]
			if r == c {
				v += dot
			}
			m.Set(r, c, v)
		}
	}
	if !m.IsFinite() {
		return math.Mat4{}, fmt.Errorf("non-finite shadow matrix: %w", ErrDegenerateProjection)
	}
	return m, nil
}

// Projector casts shadows onto one fixed plane and tracks whether the most
// recent light position produced a usable matrix.
type Projector struct {
	plane  math.Plane
	matrix math.Mat4
	ok     bool
}

// NewProjector returns a projector for the plane through the quad corners.
func NewProjector(quad [4]math.Vec3) (*Projector, error) {
	plane, err := PlaneFromQuad(quad)
	if err != nil {
		return nil, err
	}
	return &Projector{plane: plane}, nil
}

// Plane returns the receiving plane.
func (p *Projector) Plane() math.Plane {
	return p.plane
}

// Update recomputes the matrix for a point light at pos. On error the
// previous matrix is kept but Drawable reports false until a later update
// succeeds.
func (p *Projector) Update(pos math.Vec3) (math.Mat4, error) {
	m, err := Matrix(pos.Point(), p.plane)
	if err != nil {
		p.ok = false
		return math.Mat4{}, err
	}
	p.matrix = m
	p.ok = true
	return m, nil
}

// Drawable reports whether the last Update produced a matrix.
func (p *Projector) Drawable() bool {
	return p.ok
}

// Matrix returns the last good matrix.
func (p *Projector) Matrix() math.Mat4 {
	return p.matrix
}
