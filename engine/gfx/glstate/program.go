package glstate

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/hubastard/shaderstate/engine/core"
)

type programKey struct {
	vert, frag string
}

// Descriptor is one active uniform or attribute of a linked program.
// Array uniforms produce one descriptor per element.
type Descriptor struct {
	Name     string
	Location int32
	Info     core.ActiveInfo
}

type uniformBinding struct {
	loc   int32
	typ   core.Enum
	stack *Stack
}

type attributeBinding struct {
	slot  uint32
	size  int
	stack *Stack
}

// Program is a linked vertex/fragment pair. A *Program stays valid across
// Refresh; only its GPU handle and tables are rebuilt.
type Program struct {
	state      *State
	vert, frag string
	handle     core.Program

	uniforms   []Descriptor
	attributes []Descriptor

	// poll routine, built once per link
	uniformBindings   []uniformBinding
	attributeBindings []attributeBinding
}

// Handle returns the GPU program object, 0 while the program is not linked.
func (p *Program) Handle() core.Program { return p.handle }

func (p *Program) VertexSource() string   { return p.vert }
func (p *Program) FragmentSource() string { return p.frag }

// Uniforms returns the active uniforms, array elements expanded.
func (p *Program) Uniforms() []Descriptor { return p.uniforms }

// Attributes returns the active vertex attributes.
func (p *Program) Attributes() []Descriptor { return p.attributes }

// Program returns the linked program for the source pair, linking it on
// first use. Repeated calls with the same sources return the same *Program,
// also across Clear: a program dropped by Clear is relinked in place.
func (s *State) Program(vert, frag string) (*Program, error) {
	key := programKey{vert: vert, frag: frag}
	if p, ok := s.programCache[key]; ok {
		return p, nil
	}
	p, ok := s.retired[key]
	if !ok {
		p = &Program{state: s, vert: vert, frag: frag}
	}
	if err := p.link(); err != nil {
		return nil, err
	}
	delete(s.retired, key)
	s.programCache[key] = p
	s.programs = append(s.programs, p)
	return p, nil
}

func (p *Program) key() programKey { return programKey{vert: p.vert, frag: p.frag} }

// link (re)builds the GPU program and its tables. On failure the program
// holds no handle and an empty poll routine.
func (p *Program) link() error {
	s := p.state
	p.handle = 0
	p.uniformBindings = p.uniformBindings[:0]
	p.attributeBindings = p.attributeBindings[:0]
	vs, err := s.Shader(core.VertexShader, p.vert)
	if err != nil {
		return err
	}
	fs, err := s.Shader(core.FragmentShader, p.frag)
	if err != nil {
		return err
	}

	gpu := s.gpu
	h := gpu.CreateProgram()
	gpu.AttachShader(h, vs)
	gpu.AttachShader(h, fs)
	gpu.LinkProgram(h)
	if !gpu.ProgramLinked(h) {
		log := gpu.ProgramInfoLog(h)
		gpu.DeleteProgram(h)
		Logger().Warn("glstate: program link failed", slog.String("log", log))
		return &LinkError{Log: log}
	}
	p.handle = h

	p.uniforms = p.uniforms[:0]
	for _, info := range gpu.ActiveUniforms(h) {
		if info.Size > 1 {
			for i := 0; i < info.Size; i++ {
				p.addUniform(elementName(info.Name, i), info)
			}
			continue
		}
		p.addUniform(info.Name, info)
	}

	p.attributes = p.attributes[:0]
	for _, info := range gpu.ActiveAttributes(h) {
		s.DefAttribute(info.Name)
		p.attributes = append(p.attributes, Descriptor{
			Name:     info.Name,
			Location: gpu.AttribLocation(h, info.Name),
			Info:     info,
		})
	}

	p.buildPoll()
	Logger().Debug("glstate: linked program",
		slog.Int("uniforms", len(p.uniforms)),
		slog.Int("attributes", len(p.attributes)))
	return nil
}

func (p *Program) addUniform(name string, info core.ActiveInfo) {
	p.state.DefUniform(name)
	p.uniforms = append(p.uniforms, Descriptor{
		Name:     name,
		Location: p.state.gpu.UniformLocation(p.handle, name),
		Info:     info,
	})
}

// elementName names element i of an array uniform reported as name.
// Drivers report arrays as "u[0]"; some omit the suffix.
func elementName(name string, i int) string {
	idx := "[" + strconv.Itoa(i) + "]"
	if strings.Contains(name, "[0]") {
		return strings.Replace(name, "[0]", idx, 1)
	}
	return name + idx
}

// buildPoll precomputes the (location, stack) pairs this program reads.
// Variables the driver did not give a location are left out.
func (p *Program) buildPoll() {
	s := p.state
	p.uniformBindings = p.uniformBindings[:0]
	for _, d := range p.uniforms {
		if d.Location < 0 {
			continue
		}
		p.uniformBindings = append(p.uniformBindings, uniformBinding{
			loc:   d.Location,
			typ:   d.Info.Type,
			stack: s.uniforms[d.Name],
		})
	}
	p.attributeBindings = p.attributeBindings[:0]
	for _, d := range p.attributes {
		if d.Location < 0 || int(d.Location) >= len(s.bind.slots) {
			continue
		}
		p.attributeBindings = append(p.attributeBindings, attributeBinding{
			slot:  uint32(d.Location),
			size:  attributeSize(d.Info.Type),
			stack: s.attributes[d.Name],
		})
	}
}

// attributeSize is the fallback component count of an attribute type.
// Matrices bind their first column only.
func attributeSize(typ core.Enum) int {
	switch typ {
	case core.FloatMat2:
		return 2
	case core.FloatMat3:
		return 3
	default:
		return typ.Components()
	}
}

// poll binds the program and pushes the top of every override stack it
// reads to the GPU.
func (p *Program) poll() {
	s := p.state
	s.gpu.UseProgram(p.handle)
	for i := range p.uniformBindings {
		b := &p.uniformBindings[i]
		if top := b.stack.Top(); top != nil {
			s.uploadUniform(b.loc, b.typ, &top.Uniform)
		}
	}
	for i := range p.attributeBindings {
		b := &p.attributeBindings[i]
		if top := b.stack.Top(); top != nil {
			s.bind.bind(b.slot, &top.Attribute, b.size)
		}
	}
}

func (p *Program) destroy() {
	if p.handle != 0 {
		p.state.gpu.DeleteProgram(p.handle)
		p.handle = 0
	}
}

// clearPrograms deletes every program and empties the cache. The dropped
// programs are kept aside, one per source pair, so Program and Refresh
// bring back the same objects.
func (s *State) clearPrograms() {
	for _, p := range s.programs {
		p.destroy()
		s.retired[p.key()] = p
	}
	s.programs = nil
	s.programCache = make(map[programKey]*Program)
}

// refreshPrograms relinks every known program in place, including those
// dropped by Clear. Programs that fail to relink leave the cache and are
// retried by the next Program call.
func (s *State) refreshPrograms() []error {
	for key, p := range s.retired {
		s.programCache[key] = p
		s.programs = append(s.programs, p)
	}
	clear(s.retired)

	var errs []error
	live := s.programs[:0]
	for _, p := range s.programs {
		if err := p.link(); err != nil {
			errs = append(errs, err)
			delete(s.programCache, p.key())
			s.retired[p.key()] = p
			continue
		}
		live = append(live, p)
	}
	clear(s.programs[len(live):])
	s.programs = live
	Logger().Debug("glstate: relinked programs", slog.Int("count", len(s.programs)), slog.Int("failed", len(errs)))
	return errs
}
