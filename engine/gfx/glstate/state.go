// Package glstate caches compiled shaders and linked programs, reflects
// their active uniforms and attributes into named override stacks, and
// keeps vertex attribute bindings in sync with the GPU with as few driver
// calls as possible.
//
// A State belongs to one GPU context and must only be used from the thread
// that owns that context.
package glstate

import (
	"errors"

	"github.com/hubastard/shaderstate/engine/core"
	"github.com/hubastard/shaderstate/engine/gfx/shaderlog"
)

// Options configures a State.
type Options struct {
	Extensions core.Extensions
	// Diagnose formats compiler logs; nil uses shaderlog.Diagnose.
	Diagnose DiagnoseFunc
	// StackFrames is the number of frames each override stack preallocates.
	StackFrames int
}

// State owns every cache and stack for one GPU context.
type State struct {
	gpu  core.GPU
	opts Options

	shaders      map[shaderKey]core.Shader
	programCache map[programKey]*Program
	programs     []*Program
	retired      map[programKey]*Program // dropped by Clear or a failed relink

	uniforms   map[string]*Stack
	attributes map[string]*Stack

	// programStack[0] is the base frame: no program.
	programStack []*Program

	bind  binder
	stats Stats
}

// New creates the state for gpu and resets it to a fresh context.
func New(gpu core.GPU, opts Options) *State {
	if opts.Diagnose == nil {
		opts.Diagnose = shaderlog.Diagnose
	}
	if opts.StackFrames <= 0 {
		opts.StackFrames = defaultStackFrames
	}
	s := &State{
		gpu:          gpu,
		opts:         opts,
		uniforms:     make(map[string]*Stack),
		attributes:   make(map[string]*Stack),
		retired:      make(map[programKey]*Program),
		programStack: []*Program{nil},
	}
	s.bind = binder{gpu: gpu, instancing: opts.Extensions.Instancing, stats: &s.stats}
	s.Clear()
	return s
}

// Clear deletes every shader and program and empties the caches.
// Programs returned earlier hold no GPU object until the next Refresh or
// until Program is called again with their sources.
func (s *State) Clear() {
	s.clearShaders()
	s.clearPrograms()
	s.bind.reset()
}

// Refresh rebuilds every shader and program after a context loss. The old
// handles are assumed dead and are not deleted. Programs keep their
// identity, so earlier *Program values remain usable with Poll. Programs
// that fail to relink are reported in the joined error and are not cached.
func (s *State) Refresh() error {
	s.refreshShaders()
	s.bind.reset()
	return errors.Join(s.refreshPrograms()...)
}

// PushProgram makes p the active program for the next Poll.
func (s *State) PushProgram(p *Program) {
	s.programStack = append(s.programStack, p)
}

// PopProgram restores the previous active program. It reports false when
// only the base frame is left.
func (s *State) PopProgram() bool {
	if len(s.programStack) <= 1 {
		return false
	}
	s.programStack[len(s.programStack)-1] = nil
	s.programStack = s.programStack[:len(s.programStack)-1]
	return true
}

// CurrentProgram returns the active program, or nil.
func (s *State) CurrentProgram() *Program {
	return s.programStack[len(s.programStack)-1]
}

// Poll synchronizes the active program and the top of its override stacks
// with the GPU. With no active program it unbinds the current one.
func (s *State) Poll() {
	s.stats.Polls++
	p := s.CurrentProgram()
	if p == nil {
		s.gpu.UseProgram(0)
		return
	}
	p.poll()
}

// InvalidateBuffer forgets which vertex buffer is bound, forcing the next
// pointer bind to rebind it. Call it after binding ARRAY_BUFFER outside
// the state core.
func (s *State) InvalidateBuffer() { s.bind.buffer = 0 }

// Stats returns the counters accumulated since the last ResetStats.
func (s *State) Stats() Stats { return s.stats }

// ResetStats zeroes the counters.
func (s *State) ResetStats() { s.stats = Stats{} }
