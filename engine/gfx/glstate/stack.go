package glstate

// defaultStackFrames is how many frames a new stack preallocates.
const defaultStackFrames = 4

// Value is a uniform payload. Float and int views are kept in sync so a
// value pushed either way can feed any uniform type.
type Value struct {
	F [16]float32
	I [4]int32
}

func (v *Value) setFloats(f []float32) {
	n := copy(v.F[:], f)
	clear(v.F[n:])
	for i := range v.I {
		v.I[i] = int32(v.F[i])
	}
}

func (v *Value) setInts(iv []int32) {
	n := copy(v.I[:], iv)
	clear(v.I[n:])
	for i := range v.I {
		v.F[i] = float32(v.I[i])
	}
	clear(v.F[len(v.I):])
}

// Frame is one override entry. Uniform stacks use Uniform, attribute
// stacks use Attribute.
type Frame struct {
	Attribute Attribute
	Uniform   Value
}

// Stack is a per-variable override stack. The backing array only grows;
// popped frames keep their memory and are overwritten by the next push.
type Stack struct {
	frames []Frame
	top    int
}

func newStack(capacity int) *Stack {
	if capacity <= 0 {
		capacity = defaultStackFrames
	}
	return &Stack{frames: make([]Frame, capacity)}
}

// Push advances the top and returns the new top frame for the caller to
// fill in place. The frame still holds whatever was last written there.
// The pointer is only valid until the next Push.
func (s *Stack) Push() *Frame {
	if s.top >= len(s.frames) {
		s.frames = append(s.frames, make([]Frame, len(s.frames))...)
	}
	f := &s.frames[s.top]
	s.top++
	return f
}

// Pop drops the top frame. It reports false if the stack was empty.
func (s *Stack) Pop() bool {
	if s.top == 0 {
		return false
	}
	s.top--
	return true
}

// Top returns the current frame, or nil if nothing is pushed.
func (s *Stack) Top() *Frame {
	if s.top == 0 {
		return nil
	}
	return &s.frames[s.top-1]
}

func (s *Stack) Len() int { return s.top }
func (s *Stack) Cap() int { return len(s.frames) }
