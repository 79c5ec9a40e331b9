// Package geometry generates the procedural meshes the scene draws: discs,
// spheres, cylinders, tori and the flat quad sheets used for rails, docks
// and walls.
package geometry

import "fmt"

// Topology is the primitive type a mesh is drawn with.
type Topology int

const (
	// Quads groups every 4 consecutive vertices into one quad.
	Quads Topology = iota
	// TriangleFan uses vertex 0 as the pivot of every triangle.
	TriangleFan
	// Triangles groups every 3 consecutive vertices into one triangle.
	Triangles
)

// String returns the topology name.
func (t Topology) String() string {
	switch t {
	case Quads:
		return "quads"
	case TriangleFan:
		return "triangle-fan"
	case Triangles:
		return "triangles"
	default:
		return fmt.Sprintf("topology(%d)", int(t))
	}
}

// Mesh holds unindexed vertex data as parallel float arrays.
// Positions and Normals are xyz per vertex, UVs are uv per vertex.
// A mesh is built once and not modified afterwards.
type Mesh struct {
	Name      string
	Positions []float32
	Normals   []float32
	UVs       []float32
	Topology  Topology
}

// Vertex is one vertex read back from a mesh.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	UV       [2]float32
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// Vertex returns vertex i.
func (m *Mesh) Vertex(i int) Vertex {
	return Vertex{
		Position: [3]float32{m.Positions[i*3], m.Positions[i*3+1], m.Positions[i*3+2]},
		Normal:   [3]float32{m.Normals[i*3], m.Normals[i*3+1], m.Normals[i*3+2]},
		UV:       [2]float32{m.UVs[i*2], m.UVs[i*2+1]},
	}
}

// Valid reports whether the parallel arrays agree on the vertex count.
func (m *Mesh) Valid() bool {
	n := len(m.Positions)
	return n%3 == 0 && len(m.Normals) == n && len(m.UVs)/2 == n/3 && len(m.UVs)%2 == 0
}

// builder accumulates vertices for a mesh of known size.
type builder struct {
	mesh *Mesh
}

func newBuilder(name string, topo Topology, vertices int) *builder {
	return &builder{mesh: &Mesh{
		Name:      name,
		Positions: make([]float32, 0, vertices*3),
		Normals:   make([]float32, 0, vertices*3),
		UVs:       make([]float32, 0, vertices*2),
		Topology:  topo,
	}}
}

func (b *builder) add(pos, normal [3]float32, u, v float32) {
	b.mesh.Positions = append(b.mesh.Positions, pos[0], pos[1], pos[2])
	b.mesh.Normals = append(b.mesh.Normals, normal[0], normal[1], normal[2])
	b.mesh.UVs = append(b.mesh.UVs, u, v)
}

func checkArgs(shape string, radius float32, segments int) {
	if segments <= 0 {
		panic(fmt.Sprintf("geometry: %s: segments must be positive, got %d", shape, segments))
	}
	if !(radius > 0) {
		panic(fmt.Sprintf("geometry: %s: radius must be positive, got %g", shape, radius))
	}
}
