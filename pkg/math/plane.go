package math

// Vec4 is a 4-component vector, used for homogeneous points and colours.
type Vec4 [4]float32

// Vec3 drops w without dividing.
func (v Vec4) Vec3() Vec3 {
	return Vec3{v[0], v[1], v[2]}
}

// Dot returns the 4D dot product.
func (v Vec4) Dot(other Vec4) float32 {
	return v[0]*other[0] + v[1]*other[1] + v[2]*other[2] + v[3]*other[3]
}

// Plane is the implicit plane A*x + B*y + C*z + D = 0.
type Plane struct {
	A, B, C, D float32
}

// Normal returns (A, B, C).
func (p Plane) Normal() Vec3 {
	return Vec3{p.A, p.B, p.C}
}

// Vec4 returns the coefficients as (A, B, C, D).
func (p Plane) Vec4() Vec4 {
	return Vec4{p.A, p.B, p.C, p.D}
}

// Distance returns the signed distance of point from the plane.
// Only meaningful when the normal has unit length.
func (p Plane) Distance(point Vec3) float32 {
	return p.A*point.X + p.B*point.Y + p.C*point.Z + p.D
}
