package renderer

import (
	"github.com/Faultbox/tramdock/internal/engine/geometry"
	"github.com/Faultbox/tramdock/internal/engine/render"
	"github.com/go-gl/gl/v2.1/gl"
)

func capEnum(c render.Cap) uint32 {
	switch c {
	case render.CapLighting:
		return gl.LIGHTING
	case render.CapDepthTest:
		return gl.DEPTH_TEST
	case render.CapTexture2D:
		return gl.TEXTURE_2D
	case render.CapStencilTest:
		return gl.STENCIL_TEST
	case render.CapBlend:
		return gl.BLEND
	case render.CapColorMaterial:
		return gl.COLOR_MATERIAL
	}
	return 0
}

func compareEnum(c render.Compare) uint32 {
	switch c {
	case render.Equal:
		return gl.EQUAL
	case render.Never:
		return gl.NEVER
	}
	return gl.ALWAYS
}

func actionEnum(a render.StencilAction) uint32 {
	switch a {
	case render.Replace:
		return gl.REPLACE
	case render.Zero:
		return gl.ZERO
	}
	return gl.KEEP
}

func topologyEnum(t geometry.Topology) uint32 {
	switch t {
	case geometry.TriangleFan:
		return gl.TRIANGLE_FAN
	case geometry.Triangles:
		return gl.TRIANGLES
	}
	return gl.QUADS
}

// filterEnums returns the min and mag filters of f. Magnification has no
// mipmaps, so trilinear magnifies linearly.
func filterEnums(f render.Filter) (minFilter, magFilter int32) {
	switch f {
	case render.FilterPoint:
		return gl.NEAREST, gl.NEAREST
	case render.FilterBilinear:
		return gl.LINEAR, gl.LINEAR
	case render.FilterPointTrilinear:
		return gl.LINEAR_MIPMAP_LINEAR, gl.NEAREST
	}
	return gl.LINEAR_MIPMAP_LINEAR, gl.LINEAR
}
