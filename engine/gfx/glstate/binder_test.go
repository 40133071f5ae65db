package glstate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hubastard/shaderstate/engine/core"
)

func newBinderState(instancing bool) (*State, *fakeGPU) {
	g := newFakeGPU()
	s := New(g, Options{Extensions: core.Extensions{Instancing: instancing}})
	g.take()
	return s, g
}

func TestBindPointerThenConstant(t *testing.T) {
	s, g := newBinderState(true)
	ptr := Attribute{Pointer: true, Buffer: 5, Type: core.Float, Stride: 12}

	s.bind.bind(0, &ptr, 3)
	assert.Equal(t, []string{
		"EnableVertexAttribArray(0)",
		"BindArrayBuffer(5)",
		"VertexAttribPointer(0, 3, 0x1406, false, 12, 0)",
		"VertexAttribDivisor(0, 0)",
	}, g.take())

	s.bind.bind(0, &ptr, 3)
	assert.Empty(t, g.take(), "unchanged binding issues no calls")

	c := Attribute{X: 1, Y: 2, Z: 3, W: 4}
	s.bind.bind(0, &c, 3)
	assert.Equal(t, []string{
		"DisableVertexAttribArray(0)",
		"VertexAttrib4f(0, 1, 2, 3, 4)",
	}, g.take())

	s.bind.bind(0, &c, 3)
	assert.Empty(t, g.take())

	s.bind.bind(0, &ptr, 3)
	assert.Equal(t, []string{
		"EnableVertexAttribArray(0)",
		"VertexAttribPointer(0, 3, 0x1406, false, 12, 0)",
		"VertexAttribDivisor(0, 0)",
	}, g.take(), "buffer 5 is still bound")

	st := s.Stats()
	assert.Equal(t, 3, st.AttributeBinds)
	assert.Equal(t, 2, st.AttributeSkips)
}

func TestBindOwnSizeWinsOverFallback(t *testing.T) {
	s, g := newBinderState(false)
	ptr := Attribute{Pointer: true, Buffer: 2, Size: 2, Type: core.Float}

	s.bind.bind(1, &ptr, 4)
	assert.Equal(t, []string{
		"EnableVertexAttribArray(1)",
		"BindArrayBuffer(2)",
		"VertexAttribPointer(1, 2, 0x1406, false, 0, 0)",
	}, g.take(), "no divisor without instancing")

	// same frame resolved against another fallback still matches
	s.bind.bind(1, &ptr, 3)
	assert.Empty(t, g.take())
}

func TestBindFallbackSizeChangeRebinds(t *testing.T) {
	s, g := newBinderState(false)
	ptr := Attribute{Pointer: true, Buffer: 2, Type: core.Float}

	s.bind.bind(2, &ptr, 4)
	g.take()
	s.bind.bind(2, &ptr, 2)
	assert.Equal(t, []string{"VertexAttribPointer(2, 2, 0x1406, false, 0, 0)"}, g.take())
}

func TestBindSharedBufferAcrossSlots(t *testing.T) {
	s, g := newBinderState(false)
	a := Attribute{Pointer: true, Buffer: 9, Size: 2, Type: core.Float, Stride: 24}
	b := Attribute{Pointer: true, Buffer: 9, Size: 4, Type: core.Float, Stride: 24, Offset: 8}

	s.bind.bind(0, &a, 0)
	s.bind.bind(1, &b, 0)
	assert.Equal(t, []string{
		"EnableVertexAttribArray(0)",
		"BindArrayBuffer(9)",
		"VertexAttribPointer(0, 2, 0x1406, false, 24, 0)",
		"EnableVertexAttribArray(1)",
		"VertexAttribPointer(1, 4, 0x1406, false, 24, 8)",
	}, g.take())
}

func TestBindDefaultConstantIsNoop(t *testing.T) {
	s, g := newBinderState(false)
	c := Attribute{W: 1}
	s.bind.bind(3, &c, 4)
	assert.Empty(t, g.take(), "fresh slots already hold (0, 0, 0, 1)")
}

func TestBinderResetMatchesFreshContext(t *testing.T) {
	s, g := newBinderState(false)
	ptr := Attribute{Pointer: true, Buffer: 4, Size: 4, Type: core.Float}
	s.bind.bind(0, &ptr, 4)
	g.take()

	s.bind.reset()
	s.bind.bind(0, &ptr, 4)
	assert.Equal(t, []string{
		"EnableVertexAttribArray(0)",
		"BindArrayBuffer(4)",
		"VertexAttribPointer(0, 4, 0x1406, false, 0, 0)",
	}, g.take())
	assert.Len(t, s.bind.slots, g.maxAttribs)
}

func TestInvalidateBufferForcesRebind(t *testing.T) {
	s, g := newBinderState(false)
	ptr := Attribute{Pointer: true, Buffer: 6, Size: 2, Type: core.Float, Stride: 8}
	s.bind.bind(0, &ptr, 2)
	g.take()

	// the buffer binding changed behind the binder's back
	s.InvalidateBuffer()
	moved := ptr
	moved.Offset = 4
	s.bind.bind(0, &moved, 2)
	assert.Equal(t, []string{
		"BindArrayBuffer(6)",
		"VertexAttribPointer(0, 2, 0x1406, false, 8, 4)",
	}, g.take())
}
