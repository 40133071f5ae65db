package glstate

import "github.com/hubastard/shaderstate/engine/core"

// Attribute is one vertex attribute binding: either a constant 4-vector or
// a pointer into a vertex buffer. Only the fields of the active mode are
// meaningful.
type Attribute struct {
	Pointer bool

	// constant mode
	X, Y, Z, W float32

	// pointer mode
	Buffer     core.Buffer
	Size       int // components per vertex, 0 = take it from the shader declaration
	Type       core.Enum
	Normalized bool
	Offset     int
	Stride     int
	Divisor    int
}

// Equals reports whether a matches other once other's component count is
// resolved to size.
func (a *Attribute) Equals(other *Attribute, size int) bool {
	if !other.Pointer {
		return !a.Pointer &&
			a.X == other.X &&
			a.Y == other.Y &&
			a.Z == other.Z &&
			a.W == other.W
	}
	return a.Pointer &&
		a.Buffer == other.Buffer &&
		a.Size == size &&
		a.Type == other.Type &&
		a.Normalized == other.Normalized &&
		a.Offset == other.Offset &&
		a.Stride == other.Stride &&
		a.Divisor == other.Divisor
}

// Copy assigns other's mode and mode fields to a. In pointer mode size
// replaces other.Size.
func (a *Attribute) Copy(other *Attribute, size int) {
	a.Pointer = other.Pointer
	if !other.Pointer {
		a.X, a.Y, a.Z, a.W = other.X, other.Y, other.Z, other.W
		return
	}
	a.Buffer = other.Buffer
	a.Size = size
	a.Type = other.Type
	a.Normalized = other.Normalized
	a.Offset = other.Offset
	a.Stride = other.Stride
	a.Divisor = other.Divisor
}

// defaultAttribute is the state of a slot on a fresh context.
var defaultAttribute = Attribute{W: 1}
