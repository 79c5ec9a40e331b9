// Package render records a frame as a flat list of fixed-function state and
// draw commands. A Backend replays the list; tests inspect it directly.
package render

import (
	"errors"
	"fmt"

	"github.com/Faultbox/tramdock/internal/engine/geometry"
	"github.com/Faultbox/tramdock/internal/engine/lighting"
	"github.com/Faultbox/tramdock/internal/engine/texture"
	"github.com/Faultbox/tramdock/pkg/math"
)

// MaxStackDepth matches the minimum modelview stack depth GL guarantees.
const MaxStackDepth = 32

var (
	// ErrStackUnderflow is recorded when Pop runs on an empty stack.
	ErrStackUnderflow = errors.New("matrix stack underflow")
	// ErrStackOverflow is recorded when Push exceeds MaxStackDepth.
	ErrStackOverflow = errors.New("matrix stack overflow")
	// ErrUnbalanced is returned by Err when the frame ends with pushed matrices.
	ErrUnbalanced = errors.New("unbalanced matrix stack")
)

// Backend executes a recorded frame.
type Backend interface {
	Execute(l *List) error
}

// Op identifies a command.
type Op uint8

const (
	OpClear Op = iota
	OpProjection
	OpLoadMatrix
	OpMultMatrix
	OpPush
	OpPop
	OpEnable
	OpDisable
	OpColor
	OpBindTexture
	OpTexFilter
	OpPolygonMode
	OpColorMask
	OpStencilFunc
	OpStencilOp
	OpLight
	OpLightSwitch
	OpMaterial
	OpDraw
)

var opNames = [...]string{
	OpClear:       "clear",
	OpProjection:  "projection",
	OpLoadMatrix:  "load-matrix",
	OpMultMatrix:  "mult-matrix",
	OpPush:        "push",
	OpPop:         "pop",
	OpEnable:      "enable",
	OpDisable:     "disable",
	OpColor:       "color",
	OpBindTexture: "bind-texture",
	OpTexFilter:   "tex-filter",
	OpPolygonMode: "polygon-mode",
	OpColorMask:   "color-mask",
	OpStencilFunc: "stencil-func",
	OpStencilOp:   "stencil-op",
	OpLight:       "light",
	OpLightSwitch: "light-switch",
	OpMaterial:    "material",
	OpDraw:        "draw",
}

func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return fmt.Sprintf("op(%d)", uint8(o))
}

// Cap is a server-side capability toggled with Enable/Disable.
type Cap uint8

const (
	CapLighting Cap = iota
	CapDepthTest
	CapTexture2D
	CapStencilTest
	CapBlend
	CapColorMaterial
)

// Compare is a stencil test function.
type Compare uint8

const (
	Always Compare = iota
	Equal
	Never
)

// StencilAction is what happens to a stencil value.
type StencilAction uint8

const (
	Keep StencilAction = iota
	Replace
	Zero
)

// Stencil carries the arguments of a stencil func or op command.
type Stencil struct {
	Func Compare
	Ref  int32
	Mask uint32

	Fail, DepthFail, Pass StencilAction
}

// Filter is a texture sampling mode.
type Filter uint8

const (
	FilterNone Filter = iota
	FilterPoint
	FilterBilinear
	FilterTrilinear
	FilterPointTrilinear
)

func (f Filter) String() string {
	switch f {
	case FilterPoint:
		return "Point Sampling"
	case FilterBilinear:
		return "Bilinear"
	case FilterTrilinear:
		return "Trilinear"
	case FilterPointTrilinear:
		return "Point/Trilinear"
	default:
		return "None"
	}
}

// Command is one recorded operation. Only the fields Op uses are set.
type Command struct {
	Op       Op
	Matrix   math.Mat4
	Cap      Cap
	Flag     bool
	Color    math.Vec4
	Texture  texture.Handle
	Filter   Filter
	Stencil  Stencil
	Slot     int
	Light    lighting.Light
	Material lighting.Material
	Mesh     *geometry.Mesh
}
