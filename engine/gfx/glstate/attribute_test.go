package glstate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hubastard/shaderstate/engine/core"
)

func pointerAttr() Attribute {
	return Attribute{
		Pointer:    true,
		Buffer:     3,
		Size:       2,
		Type:       core.Float,
		Normalized: false,
		Offset:     8,
		Stride:     16,
		Divisor:    1,
	}
}

func TestAttributeEqualsReflexive(t *testing.T) {
	c := Attribute{X: 1, Y: 2, Z: 3, W: 4}
	assert.True(t, c.Equals(&c, 0))

	p := pointerAttr()
	assert.True(t, p.Equals(&p, p.Size))
}

func TestAttributeEqualsDetectsEveryField(t *testing.T) {
	base := pointerAttr()
	mutations := map[string]func(a *Attribute){
		"buffer":     func(a *Attribute) { a.Buffer = 4 },
		"type":       func(a *Attribute) { a.Type = core.UnsignedByte },
		"normalized": func(a *Attribute) { a.Normalized = true },
		"offset":     func(a *Attribute) { a.Offset = 0 },
		"stride":     func(a *Attribute) { a.Stride = 20 },
		"divisor":    func(a *Attribute) { a.Divisor = 0 },
		"mode":       func(a *Attribute) { a.Pointer = false },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			other := base
			mutate(&other)
			assert.False(t, base.Equals(&other, base.Size))
		})
	}
	t.Run("size", func(t *testing.T) {
		other := base
		assert.False(t, base.Equals(&other, 3))
	})

	c := Attribute{X: 1, Y: 2, Z: 3, W: 4}
	for i := 0; i < 4; i++ {
		other := c
		switch i {
		case 0:
			other.X = 9
		case 1:
			other.Y = 9
		case 2:
			other.Z = 9
		case 3:
			other.W = 9
		}
		assert.False(t, c.Equals(&other, 0), "component %d", i)
	}
	assert.False(t, c.Equals(&base, base.Size), "constant vs pointer")
}

func TestAttributeCopyUsesResolvedSize(t *testing.T) {
	src := pointerAttr()
	src.Size = 0

	var dst Attribute
	dst.Copy(&src, 3)
	assert.True(t, dst.Pointer)
	assert.Equal(t, 3, dst.Size)
	assert.True(t, dst.Equals(&src, 3))

	c := Attribute{X: 0.5, Y: 0.25, Z: 0, W: 1}
	dst.Copy(&c, 3)
	assert.False(t, dst.Pointer)
	assert.True(t, dst.Equals(&c, 0))
}
