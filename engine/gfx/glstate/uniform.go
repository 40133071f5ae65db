package glstate

import (
	"slices"

	"github.com/hubastard/shaderstate/engine/core"
)

// DefUniform registers name as a uniform override target. It is a no-op
// for names already registered.
func (s *State) DefUniform(name string) *Stack {
	return s.def(s.uniforms, name)
}

// DefAttribute registers name as an attribute override target.
func (s *State) DefAttribute(name string) *Stack {
	return s.def(s.attributes, name)
}

func (s *State) def(m map[string]*Stack, name string) *Stack {
	st, ok := m[name]
	if !ok {
		st = newStack(s.opts.StackFrames)
		m[name] = st
	}
	return st
}

// HasUniform reports whether name is registered as a uniform.
func (s *State) HasUniform(name string) bool {
	_, ok := s.uniforms[name]
	return ok
}

// HasAttribute reports whether name is registered as an attribute.
func (s *State) HasAttribute(name string) bool {
	_, ok := s.attributes[name]
	return ok
}

// Uniforms returns the registered uniform names, sorted.
func (s *State) Uniforms() []string { return sortedKeys(s.uniforms) }

// Attributes returns the registered attribute names, sorted.
func (s *State) Attributes() []string { return sortedKeys(s.attributes) }

func sortedKeys(m map[string]*Stack) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// PushUniform pushes a float override for name. Missing components are zero.
func (s *State) PushUniform(name string, v ...float32) {
	s.DefUniform(name).Push().Uniform.setFloats(v)
}

// PushUniformInt pushes an int override for name (ints, bools, samplers).
func (s *State) PushUniformInt(name string, v ...int32) {
	s.DefUniform(name).Push().Uniform.setInts(v)
}

// PopUniform drops the top override of name. Unknown or empty names are
// ignored.
func (s *State) PopUniform(name string) {
	if st, ok := s.uniforms[name]; ok {
		st.Pop()
	}
}

// PushAttribute pushes a constant value for the attribute name.
func (s *State) PushAttribute(name string, x, y, z, w float32) {
	a := &s.DefAttribute(name).Push().Attribute
	a.Pointer = false
	a.X, a.Y, a.Z, a.W = x, y, z, w
}

// PushAttributePointer pushes a buffer-fed binding for the attribute name.
// size 0 takes the component count from the shader; typ 0 means Float.
func (s *State) PushAttributePointer(name string, buffer core.Buffer, size, offset, stride, divisor int, normalized bool, typ core.Enum) {
	if typ == 0 {
		typ = core.Float
	}
	a := &s.DefAttribute(name).Push().Attribute
	a.Pointer = true
	a.Buffer = buffer
	a.Size = size
	a.Offset = offset
	a.Stride = stride
	a.Divisor = divisor
	a.Normalized = normalized
	a.Type = typ
}

// PopAttribute drops the top override of name. Unknown or empty names are
// ignored.
func (s *State) PopAttribute(name string) {
	if st, ok := s.attributes[name]; ok {
		st.Pop()
	}
}

// uploadUniform sends v to loc, interpreting it according to typ.
func (s *State) uploadUniform(loc int32, typ core.Enum, v *Value) {
	s.stats.UniformUploads++
	switch typ {
	case core.FloatMat2:
		s.gpu.UniformMatrix(loc, 2, v.F[:4])
	case core.FloatMat3:
		s.gpu.UniformMatrix(loc, 3, v.F[:9])
	case core.FloatMat4:
		s.gpu.UniformMatrix(loc, 4, v.F[:16])
	case core.Float, core.FloatVec2, core.FloatVec3, core.FloatVec4:
		n := typ.Components()
		s.gpu.Uniformf(loc, n, v.F[:n])
	default:
		n := typ.Components()
		s.gpu.Uniformi(loc, n, v.I[:n])
	}
}
