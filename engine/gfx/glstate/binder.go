package glstate

import "github.com/hubastard/shaderstate/engine/core"

// Stats counts the work done by Poll since the last ResetStats.
type Stats struct {
	Polls          int
	UniformUploads int
	AttributeBinds int // slots whose state changed on the GPU
	AttributeSkips int // binds elided because the slot already matched
}

// binder tracks what each vertex attribute slot currently holds on the GPU
// and only issues the calls needed to move it to a requested state.
type binder struct {
	gpu        core.GPU
	instancing bool
	slots      []Attribute
	buffer     core.Buffer // bound ARRAY_BUFFER
	stats      *Stats
}

// reset puts every slot back to the state of a fresh context.
func (b *binder) reset() {
	n := b.gpu.MaxVertexAttribs()
	if cap(b.slots) < n {
		b.slots = make([]Attribute, n)
	}
	b.slots = b.slots[:n]
	for i := range b.slots {
		b.slots[i] = defaultAttribute
	}
	b.buffer = 0
}

func (b *binder) bind(index uint32, req *Attribute, fallbackSize int) {
	size := req.Size
	if size == 0 {
		size = fallbackSize
	}
	cur := &b.slots[index]
	if cur.Equals(req, size) {
		b.stats.AttributeSkips++
		return
	}
	b.stats.AttributeBinds++

	if !req.Pointer {
		if cur.Pointer {
			b.gpu.DisableVertexAttribArray(index)
		}
		b.gpu.VertexAttrib4f(index, req.X, req.Y, req.Z, req.W)
	} else {
		if !cur.Pointer {
			b.gpu.EnableVertexAttribArray(index)
		}
		if req.Buffer != b.buffer {
			b.gpu.BindArrayBuffer(req.Buffer)
			b.buffer = req.Buffer
		}
		b.gpu.VertexAttribPointer(index, size, req.Type, req.Normalized, req.Stride, req.Offset)
		if b.instancing {
			b.gpu.VertexAttribDivisor(index, req.Divisor)
		}
	}
	cur.Copy(req, size)
}
