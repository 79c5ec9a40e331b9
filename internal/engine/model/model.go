// Package model pairs OBJ geometry with a texture and optional materials.
package model

import (
	"bytes"
	"fmt"
	"path"

	"go.uber.org/zap"

	"github.com/Faultbox/tramdock/internal/engine/geometry"
	"github.com/Faultbox/tramdock/internal/engine/lighting"
	"github.com/Faultbox/tramdock/internal/engine/render"
	"github.com/Faultbox/tramdock/internal/engine/texture"
	"github.com/Faultbox/tramdock/internal/logger"
	"github.com/Faultbox/tramdock/pkg/formats"
	"github.com/Faultbox/tramdock/pkg/math"
)

// Source reads asset bytes by name.
type Source interface {
	Load(name string) ([]byte, error)
}

// Textures turns an image name into a texture handle, texture.None on failure.
type Textures interface {
	Load(name string) texture.Handle
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Center returns the box centre.
func (b Bounds) Center() [3]float32 {
	lo := math.Vec3{X: b.Min[0], Y: b.Min[1], Z: b.Min[2]}
	hi := math.Vec3{X: b.Max[0], Y: b.Max[1], Z: b.Max[2]}
	return lo.Add(hi).Scale(0.5).Array()
}

// Model is a loaded OBJ ready to draw.
type Model struct {
	Name    string
	Mesh    *geometry.Mesh
	Texture texture.Handle

	// Materials is nil when no MTL was given or it failed to load.
	Materials *formats.MTL
	// MaterialNames are the usemtl names in file order.
	MaterialNames []string

	Bounds Bounds
}

// FromOBJ wraps parsed geometry. The model has no texture or materials.
func FromOBJ(name string, obj *formats.OBJ) *Model {
	mesh := &geometry.Mesh{
		Name:      name,
		Positions: obj.Vertices,
		Normals:   obj.Normals,
		UVs:       obj.TexCoords,
		Topology:  geometry.Triangles,
	}
	return &Model{
		Name:          name,
		Mesh:          mesh,
		MaterialNames: obj.Materials,
		Bounds:        bounds(obj.Vertices),
	}
}

// Load reads objPath and builds a model. A missing or malformed OBJ fails
// the load. Texture and MTL problems are logged and leave the model
// untextured or without materials. With no texPath, the first material's
// map_Kd is used, relative to the MTL file.
func Load(src Source, textures Textures, objPath, texPath, mtlPath string) (*Model, error) {
	log := logger.Named("model")

	data, err := src.Load(objPath)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", formats.ErrOpen, objPath, err)
	}
	obj, err := formats.ParseOBJ(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", objPath, err)
	}

	m := FromOBJ(objPath, obj)
	log.Info("model loaded",
		zap.String("path", objPath),
		zap.Int("triangles", obj.TriangleCount()),
		zap.Strings("materials", obj.Materials))

	if mtlPath != "" {
		m.Materials, err = loadMTL(src, mtlPath)
		if err != nil {
			log.Warn("materials unavailable", zap.String("path", mtlPath), zap.Error(err))
		}
	}

	if texPath == "" {
		if mat, ok := m.material(); ok && mat.ColorMap != "" {
			texPath = path.Join(path.Dir(mtlPath), mat.ColorMap)
		}
	}
	if texPath != "" && textures != nil {
		m.Texture = textures.Load(texPath)
		if m.Texture == texture.None {
			log.Warn("model drawn untextured", zap.String("path", objPath), zap.String("texture", texPath))
		}
	}
	return m, nil
}

func loadMTL(src Source, name string) (*formats.MTL, error) {
	data, err := src.Load(name)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", formats.ErrOpen, name, err)
	}
	mtl, err := formats.ParseMTL(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return mtl, nil
}

// material returns the first referenced material the MTL defines.
func (m *Model) material() (*formats.Material, bool) {
	if m.Materials == nil {
		return nil, false
	}
	for _, name := range m.MaterialNames {
		if mat, ok := m.Materials.Lookup(name); ok {
			return mat, true
		}
	}
	return nil, false
}

// Material returns the model's surface material, if its MTL defines one.
func (m *Model) Material() (lighting.Material, bool) {
	mat, ok := m.material()
	if !ok {
		return lighting.Material{}, false
	}
	return lighting.FromMTL(*mat), true
}

// TriangleCount returns the number of triangles.
func (m *Model) TriangleCount() int {
	return m.Mesh.VertexCount() / 3
}

// Draw binds the model texture and records its mesh. Materials are left
// to the caller, since they stay in effect after the draw.
func (m *Model) Draw(l *render.List) {
	l.BindTexture(m.Texture)
	l.Draw(m.Mesh)
}

func bounds(positions []float32) Bounds {
	if len(positions) < 3 {
		return Bounds{}
	}
	b := Bounds{
		Min: [3]float32{positions[0], positions[1], positions[2]},
		Max: [3]float32{positions[0], positions[1], positions[2]},
	}
	for i := 3; i+2 < len(positions); i += 3 {
		for k := range 3 {
			b.Min[k] = min(b.Min[k], positions[i+k])
			b.Max[k] = max(b.Max[k], positions[i+k])
		}
	}
	return b
}
