package geometry

// Params is a radius and segment count for one generated shape.
type Params struct {
	Radius   float32 `yaml:"radius"`
	Segments int     `yaml:"segments"`
}

// ShapeParams lists the tessellation of every generated shape.
type ShapeParams struct {
	Disc     Params `yaml:"disc"`
	Sphere   Params `yaml:"sphere"`
	Cylinder Params `yaml:"cylinder"`
	Torus    Params `yaml:"torus"`
	TramRail Params `yaml:"tram_rail"`
	Wall     Params `yaml:"wall"`
}

// DefaultShapeParams returns the tessellation the tram dock scene is
// modelled for.
func DefaultShapeParams() ShapeParams {
	return ShapeParams{
		Disc:     Params{Radius: 1, Segments: 24},
		Sphere:   Params{Radius: 1, Segments: 20},
		Cylinder: Params{Radius: 1, Segments: 24},
		Torus:    Params{Radius: 0.325, Segments: 24},
		TramRail: Params{Radius: 1, Segments: 20},
		Wall:     Params{Radius: 1, Segments: 20},
	}
}

// Shapes is the full set of meshes used by the scene.
type Shapes struct {
	Disc     *Mesh
	Sphere   *Mesh
	Cylinder *Cylinder
	Torus    *Mesh
	TramRail *Mesh
	Wall     *Mesh
	Skybox   *Mesh
}

// Generate builds every shape. It panics on a non-positive radius or
// segment count.
func Generate(p ShapeParams) *Shapes {
	return &Shapes{
		Disc:     Disc(p.Disc.Radius, p.Disc.Segments),
		Sphere:   Sphere(p.Sphere.Radius, p.Sphere.Segments),
		Cylinder: NewCylinder(p.Cylinder.Radius, p.Cylinder.Segments),
		Torus:    Torus(p.Torus.Radius, p.Torus.Segments),
		TramRail: TramRail(p.TramRail.Radius, p.TramRail.Segments),
		Wall:     Wall(p.Wall.Radius, p.Wall.Segments),
		Skybox:   Skybox(),
	}
}

// All returns the meshes in a fixed order, for upload and release.
func (s *Shapes) All() []*Mesh {
	return []*Mesh{s.Disc, s.Sphere, s.Cylinder.Mesh, s.Torus, s.TramRail, s.Wall, s.Skybox}
}
