package render

import (
	"fmt"

	"github.com/Faultbox/tramdock/internal/engine/geometry"
	"github.com/Faultbox/tramdock/internal/engine/lighting"
	"github.com/Faultbox/tramdock/internal/engine/texture"
	"github.com/Faultbox/tramdock/pkg/math"
)

// List is a frame's worth of commands. The zero value is ready to use.
type List struct {
	cmds  []Command
	depth int
	err   error
}

// Reset empties the list, keeping its storage.
func (l *List) Reset() {
	l.cmds = l.cmds[:0]
	l.depth = 0
	l.err = nil
}

// Commands returns the recorded commands. The slice is owned by the list.
func (l *List) Commands() []Command { return l.cmds }

// Len returns the number of recorded commands.
func (l *List) Len() int { return len(l.cmds) }

// Err reports the first stack error, or ErrUnbalanced if matrices are
// still pushed.
func (l *List) Err() error {
	if l.err != nil {
		return l.err
	}
	if l.depth != 0 {
		return fmt.Errorf("%d matrices left pushed: %w", l.depth, ErrUnbalanced)
	}
	return nil
}

func (l *List) add(c Command) { l.cmds = append(l.cmds, c) }

// Clear clears colour, depth and stencil to color, 1 and 0.
func (l *List) Clear(color math.Vec4) { l.add(Command{Op: OpClear, Color: color}) }

// Projection replaces the projection matrix.
func (l *List) Projection(m math.Mat4) { l.add(Command{Op: OpProjection, Matrix: m}) }

// LoadMatrix replaces the modelview matrix.
func (l *List) LoadMatrix(m math.Mat4) { l.add(Command{Op: OpLoadMatrix, Matrix: m}) }

// MultMatrix post-multiplies the modelview matrix.
func (l *List) MultMatrix(m math.Mat4) { l.add(Command{Op: OpMultMatrix, Matrix: m}) }

// Translate is glTranslatef.
func (l *List) Translate(x, y, z float32) { l.MultMatrix(math.Translate(x, y, z)) }

// Rotate is glRotatef: degrees about (x, y, z).
func (l *List) Rotate(deg, x, y, z float32) { l.MultMatrix(math.Rotate(deg, x, y, z)) }

// Scale is glScalef.
func (l *List) Scale(x, y, z float32) { l.MultMatrix(math.Scale(x, y, z)) }

// Push saves the modelview matrix.
func (l *List) Push() {
	if l.depth >= MaxStackDepth {
		l.fail(ErrStackOverflow)
		return
	}
	l.depth++
	l.add(Command{Op: OpPush})
}

// Pop restores the last pushed modelview matrix.
func (l *List) Pop() {
	if l.depth == 0 {
		l.fail(ErrStackUnderflow)
		return
	}
	l.depth--
	l.add(Command{Op: OpPop})
}

func (l *List) fail(err error) {
	if l.err == nil {
		l.err = fmt.Errorf("command %d: %w", len(l.cmds), err)
	}
}

// Enable turns a capability on.
func (l *List) Enable(c Cap) { l.add(Command{Op: OpEnable, Cap: c}) }

// Disable turns a capability off.
func (l *List) Disable(c Cap) { l.add(Command{Op: OpDisable, Cap: c}) }

// Color sets the current vertex colour.
func (l *List) Color(r, g, b, a float32) { l.add(Command{Op: OpColor, Color: math.Vec4{r, g, b, a}}) }

// BindTexture binds h, or unbinds with texture.None.
func (l *List) BindTexture(h texture.Handle) { l.add(Command{Op: OpBindTexture, Texture: h}) }

// TexFilter changes the sampling mode of every texture.
func (l *List) TexFilter(f Filter) { l.add(Command{Op: OpTexFilter, Filter: f}) }

// Wireframe switches between line and fill polygon modes.
func (l *List) Wireframe(on bool) { l.add(Command{Op: OpPolygonMode, Flag: on}) }

// ColorMask enables or disables writes to every colour channel.
func (l *List) ColorMask(write bool) { l.add(Command{Op: OpColorMask, Flag: write}) }

// StencilFunc sets the stencil test.
func (l *List) StencilFunc(fn Compare, ref int32, mask uint32) {
	l.add(Command{Op: OpStencilFunc, Stencil: Stencil{Func: fn, Ref: ref, Mask: mask}})
}

// StencilOp sets the stencil actions.
func (l *List) StencilOp(fail, depthFail, pass StencilAction) {
	l.add(Command{Op: OpStencilOp, Stencil: Stencil{Fail: fail, DepthFail: depthFail, Pass: pass}})
}

// Light uploads a light into slot. Its position is taken in the current
// modelview space.
func (l *List) Light(slot int, light lighting.Light) {
	l.add(Command{Op: OpLight, Slot: slot, Light: light})
}

// LightSwitch turns slot on or off.
func (l *List) LightSwitch(slot int, on bool) {
	l.add(Command{Op: OpLightSwitch, Slot: slot, Flag: on})
}

// Material sets the front material.
func (l *List) Material(m lighting.Material) { l.add(Command{Op: OpMaterial, Material: m}) }

// Draw draws mesh with the current state. A nil or empty mesh is skipped.
func (l *List) Draw(mesh *geometry.Mesh) {
	if mesh == nil || mesh.VertexCount() == 0 {
		return
	}
	l.add(Command{Op: OpDraw, Mesh: mesh})
}

// Walk replays the modelview stack and calls fn with each command and the
// modelview matrix in effect when it runs.
func (l *List) Walk(fn func(c Command, modelview math.Mat4)) {
	current := math.Identity()
	stack := make([]math.Mat4, 0, MaxStackDepth)
	for _, c := range l.cmds {
		switch c.Op {
		case OpLoadMatrix:
			current = c.Matrix
		case OpMultMatrix:
			current = current.Mul(c.Matrix)
		case OpPush:
			stack = append(stack, current)
		case OpPop:
			if n := len(stack); n > 0 {
				current = stack[n-1]
				stack = stack[:n-1]
			}
		}
		fn(c, current)
	}
}

// Count returns how many commands have op.
func (l *List) Count(op Op) int {
	n := 0
	for _, c := range l.cmds {
		if c.Op == op {
			n++
		}
	}
	return n
}
