// Package renderer executes render command lists on a fixed-function
// OpenGL 2.1 context.
package renderer

import (
	"fmt"
	"image"

	"go.uber.org/zap"

	"github.com/Faultbox/tramdock/internal/engine/geometry"
	"github.com/Faultbox/tramdock/internal/engine/render"
	"github.com/Faultbox/tramdock/internal/engine/texture"
	"github.com/Faultbox/tramdock/internal/logger"
	"github.com/go-gl/gl/v2.1/gl"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// meshBuffer is one VBO holding positions, then normals, then UVs.
type meshBuffer struct {
	vbo       uint32
	count     int32
	normalOff int
	uvOff     int
	mode      uint32
}

// Renderer owns GL buffers and textures and replays command lists.
type Renderer struct {
	config Config
	log    *zap.Logger

	meshes   map[*geometry.Mesh]*meshBuffer
	textures map[texture.Handle]struct{}
	bound    texture.Handle
	filter   render.Filter
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER the OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config:   cfg,
		log:      logger.Named("renderer"),
		meshes:   make(map[*geometry.Mesh]*meshBuffer),
		textures: make(map[texture.Handle]struct{}),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	var stencil int32
	gl.GetIntegerv(gl.STENCIL_BITS, &stencil)
	if stencil == 0 {
		r.log.Warn("no stencil buffer, reflection and shadow will not be masked")
	}

	gl.ShadeModel(gl.SMOOTH)
	gl.ClearDepth(1)
	gl.ClearStencil(0)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.Hint(gl.PERSPECTIVE_CORRECTION_HINT, gl.NICEST)
	gl.Enable(gl.LIGHTING)
	gl.Enable(gl.COLOR_MATERIAL)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Enable(gl.TEXTURE_2D)
	gl.TexEnvf(gl.TEXTURE_ENV, gl.TEXTURE_ENV_MODE, gl.MODULATE)

	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Close frees every buffer and texture.
func (r *Renderer) Close() {
	r.log.Info("closing renderer",
		zap.Int("meshes", len(r.meshes)),
		zap.Int("textures", len(r.textures)))
	for _, b := range r.meshes {
		gl.DeleteBuffers(1, &b.vbo)
	}
	clear(r.meshes)
	for h := range r.textures {
		r.DeleteTexture(h)
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = max(height, 1)
	gl.Viewport(0, 0, int32(width), int32(r.config.Height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Aspect returns width / height.
func (r *Renderer) Aspect() float32 {
	return float32(r.config.Width) / float32(r.config.Height)
}

// Execute replays l. A list with an unbalanced matrix stack is rejected
// before any GL call.
func (r *Renderer) Execute(l *render.List) error {
	if err := l.Err(); err != nil {
		return err
	}
	for _, c := range l.Commands() {
		r.exec(&c)
	}
	return nil
}

func (r *Renderer) exec(c *render.Command) {
	switch c.Op {
	case render.OpClear:
		gl.ClearColor(c.Color[0], c.Color[1], c.Color[2], c.Color[3])
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT | gl.STENCIL_BUFFER_BIT)
	case render.OpProjection:
		gl.MatrixMode(gl.PROJECTION)
		gl.LoadMatrixf(c.Matrix.Ptr())
		gl.MatrixMode(gl.MODELVIEW)
	case render.OpLoadMatrix:
		gl.LoadMatrixf(c.Matrix.Ptr())
	case render.OpMultMatrix:
		gl.MultMatrixf(c.Matrix.Ptr())
	case render.OpPush:
		gl.PushMatrix()
	case render.OpPop:
		gl.PopMatrix()
	case render.OpEnable:
		gl.Enable(capEnum(c.Cap))
	case render.OpDisable:
		gl.Disable(capEnum(c.Cap))
	case render.OpColor:
		gl.Color4f(c.Color[0], c.Color[1], c.Color[2], c.Color[3])
	case render.OpBindTexture:
		r.bind(c.Texture)
	case render.OpTexFilter:
		r.setFilter(c.Filter)
	case render.OpPolygonMode:
		if c.Flag {
			gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		} else {
			gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
		}
	case render.OpColorMask:
		gl.ColorMask(c.Flag, c.Flag, c.Flag, c.Flag)
	case render.OpStencilFunc:
		gl.StencilFunc(compareEnum(c.Stencil.Func), c.Stencil.Ref, c.Stencil.Mask)
	case render.OpStencilOp:
		gl.StencilOp(actionEnum(c.Stencil.Fail), actionEnum(c.Stencil.DepthFail), actionEnum(c.Stencil.Pass))
	case render.OpLight:
		r.light(c)
	case render.OpLightSwitch:
		if c.Flag {
			gl.Enable(gl.LIGHT0 + uint32(c.Slot))
		} else {
			gl.Disable(gl.LIGHT0 + uint32(c.Slot))
		}
	case render.OpMaterial:
		m := c.Material
		gl.Materialfv(gl.FRONT, gl.AMBIENT, &m.Ambient[0])
		gl.Materialfv(gl.FRONT, gl.DIFFUSE, &m.Diffuse[0])
		gl.Materialfv(gl.FRONT, gl.SPECULAR, &m.Specular[0])
		gl.Materialfv(gl.FRONT, gl.EMISSION, &m.Emission[0])
		gl.Materialf(gl.FRONT, gl.SHININESS, m.Shininess)
	case render.OpDraw:
		r.draw(c.Mesh)
	default:
		r.log.Warn("unknown command", zap.Stringer("op", c.Op))
	}
}

func (r *Renderer) light(c *render.Command) {
	id := gl.LIGHT0 + uint32(c.Slot)
	l := c.Light

	gl.Lightfv(id, gl.AMBIENT, &l.Ambient[0])
	gl.Lightfv(id, gl.DIFFUSE, &l.Diffuse[0])
	gl.Lightfv(id, gl.SPECULAR, &l.Specular[0])

	gl.PushMatrix()
	if l.YawDeg != 0 {
		gl.Rotatef(l.YawDeg, 0, 1, 0)
	}
	gl.Lightfv(id, gl.POSITION, &l.Position[0])
	if l.Spot != nil {
		gl.Lightfv(id, gl.SPOT_DIRECTION, &l.Spot.Direction[0])
		gl.Lightf(id, gl.SPOT_CUTOFF, l.Spot.Cutoff)
		gl.Lightf(id, gl.SPOT_EXPONENT, l.Spot.Exponent)
	} else {
		gl.Lightf(id, gl.SPOT_CUTOFF, 180)
	}
	gl.PopMatrix()

	gl.Lightf(id, gl.CONSTANT_ATTENUATION, l.Attenuation[0])
	gl.Lightf(id, gl.LINEAR_ATTENUATION, l.Attenuation[1])
	gl.Lightf(id, gl.QUADRATIC_ATTENUATION, l.Attenuation[2])
}

func (r *Renderer) draw(mesh *geometry.Mesh) {
	b, ok := r.meshes[mesh]
	if !ok {
		b = r.upload(mesh)
		r.meshes[mesh] = b
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.EnableClientState(gl.VERTEX_ARRAY)
	gl.EnableClientState(gl.NORMAL_ARRAY)
	gl.EnableClientState(gl.TEXTURE_COORD_ARRAY)

	gl.VertexPointer(3, gl.FLOAT, 0, gl.PtrOffset(0))
	gl.NormalPointer(gl.FLOAT, 0, gl.PtrOffset(b.normalOff))
	gl.TexCoordPointer(2, gl.FLOAT, 0, gl.PtrOffset(b.uvOff))
	gl.DrawArrays(b.mode, 0, b.count)

	gl.DisableClientState(gl.VERTEX_ARRAY)
	gl.DisableClientState(gl.NORMAL_ARRAY)
	gl.DisableClientState(gl.TEXTURE_COORD_ARRAY)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (r *Renderer) upload(mesh *geometry.Mesh) *meshBuffer {
	data := make([]float32, 0, len(mesh.Positions)+len(mesh.Normals)+len(mesh.UVs))
	data = append(data, mesh.Positions...)
	data = append(data, mesh.Normals...)
	data = append(data, mesh.UVs...)

	b := &meshBuffer{
		count:     int32(mesh.VertexCount()),
		normalOff: len(mesh.Positions) * 4,
		uvOff:     (len(mesh.Positions) + len(mesh.Normals)) * 4,
		mode:      topologyEnum(mesh.Topology),
	}
	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	r.log.Debug("mesh uploaded",
		zap.String("name", mesh.Name),
		zap.Stringer("topology", mesh.Topology),
		zap.Int32("vertices", b.count),
		zap.Uint32("vbo", b.vbo))
	return b
}

func (r *Renderer) bind(h texture.Handle) {
	gl.BindTexture(gl.TEXTURE_2D, uint32(h))
	r.bound = h
}

// setFilter applies f to every live texture.
func (r *Renderer) setFilter(f render.Filter) {
	if f == r.filter || f == render.FilterNone {
		return
	}
	r.filter = f
	minF, magF := filterEnums(f)
	for h := range r.textures {
		gl.BindTexture(gl.TEXTURE_2D, uint32(h))
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, minF)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, magF)
	}
	gl.BindTexture(gl.TEXTURE_2D, uint32(r.bound))
	r.log.Debug("texture filter changed", zap.Stringer("filter", f), zap.Int("textures", len(r.textures)))
}

// UploadTexture creates a texture from a mip chain, largest level first.
func (r *Renderer) UploadTexture(levels []*image.RGBA) (texture.Handle, error) {
	if len(levels) == 0 {
		return texture.None, fmt.Errorf("no image levels")
	}

	var id uint32
	gl.GenTextures(1, &id)
	if id == 0 {
		return texture.None, fmt.Errorf("glGenTextures returned 0")
	}
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	for i, img := range levels {
		w, h := int32(img.Rect.Dx()), int32(img.Rect.Dy())
		gl.TexImage2D(gl.TEXTURE_2D, int32(i), gl.RGBA8, w, h, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAX_LEVEL, int32(len(levels)-1))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)

	f := r.filter
	if f == render.FilterNone {
		f = render.FilterTrilinear
		if len(levels) == 1 {
			f = render.FilterBilinear
		}
	}
	minF, magF := filterEnums(f)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, minF)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, magF)
	gl.BindTexture(gl.TEXTURE_2D, uint32(r.bound))

	h := texture.Handle(id)
	r.textures[h] = struct{}{}
	return h, nil
}

// DeleteTexture frees a texture created by UploadTexture.
func (r *Renderer) DeleteTexture(h texture.Handle) {
	if _, ok := r.textures[h]; !ok {
		return
	}
	id := uint32(h)
	gl.DeleteTextures(1, &id)
	delete(r.textures, h)
	if r.bound == h {
		r.bound = texture.None
	}
}

// ReadPixels returns the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() (pixels []byte, width, height int) {
	width, height = r.config.Width, r.config.Height
	pixels = make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, width, height
}
