package glstate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/hubastard/shaderstate/engine/core"
)

// fakeGPU records every call and reflects uniforms/attributes by scanning
// declarations in the shader source.
type fakeGPU struct {
	calls      []string
	next       uint32
	maxAttribs int

	shaders  map[core.Shader]*fakeShader
	programs map[core.Program]*fakeProgram

	compiles int
	links    int
}

type fakeShader struct {
	kind     core.ShaderKind
	src      string
	compiled bool
}

type fakeProgram struct {
	shaders  []core.Shader
	linked   bool
	uniforms []core.ActiveInfo
	attribs  []core.ActiveInfo
	uniLocs  map[string]int32
	attrLocs map[string]int32
}

func newFakeGPU() *fakeGPU {
	return &fakeGPU{
		maxAttribs: 8,
		shaders:    make(map[core.Shader]*fakeShader),
		programs:   make(map[core.Program]*fakeProgram),
	}
}

func (g *fakeGPU) record(format string, args ...any) {
	g.calls = append(g.calls, fmt.Sprintf(format, args...))
}

// take returns the recorded calls and starts a new recording.
func (g *fakeGPU) take() []string {
	c := g.calls
	g.calls = nil
	return c
}

func (g *fakeGPU) CreateShader(kind core.ShaderKind) core.Shader {
	g.next++
	h := core.Shader(g.next)
	g.shaders[h] = &fakeShader{kind: kind}
	g.record("CreateShader(%s)", kind)
	return h
}

func (g *fakeGPU) ShaderSource(s core.Shader, src string) {
	g.shaders[s].src = src
	g.record("ShaderSource(%d)", s)
}

func (g *fakeGPU) CompileShader(s core.Shader) {
	g.compiles++
	sh := g.shaders[s]
	sh.compiled = !strings.Contains(sh.src, "syntax error") && !strings.Contains(sh.src, "garbage")
	g.record("CompileShader(%d)", s)
}

func (g *fakeGPU) ShaderCompiled(s core.Shader) bool { return g.shaders[s].compiled }

func (g *fakeGPU) ShaderInfoLog(s core.Shader) string {
	if strings.Contains(g.shaders[s].src, "garbage") {
		return "driver says no"
	}
	return "0:1(1): error: syntax error, unexpected IDENTIFIER"
}

func (g *fakeGPU) DeleteShader(s core.Shader) {
	delete(g.shaders, s)
	g.record("DeleteShader(%d)", s)
}

func (g *fakeGPU) CreateProgram() core.Program {
	g.next++
	h := core.Program(g.next)
	g.programs[h] = &fakeProgram{}
	g.record("CreateProgram")
	return h
}

func (g *fakeGPU) AttachShader(p core.Program, s core.Shader) {
	g.programs[p].shaders = append(g.programs[p].shaders, s)
	g.record("AttachShader(%d, %d)", p, s)
}

var declRe = regexp.MustCompile(`(?m)^\s*(uniform|attribute)\s+(\w+)\s+(\w+)(?:\[(\d+)\])?\s*;`)

var glslTypes = map[string]core.Enum{
	"float":     core.Float,
	"vec2":      core.FloatVec2,
	"vec3":      core.FloatVec3,
	"vec4":      core.FloatVec4,
	"mat3":      core.FloatMat3,
	"mat4":      core.FloatMat4,
	"int":       core.Int,
	"sampler2D": core.Sampler2D,
}

func (g *fakeGPU) LinkProgram(p core.Program) {
	g.links++
	prog := g.programs[p]
	prog.linked = true
	prog.uniLocs = make(map[string]int32)
	prog.attrLocs = make(map[string]int32)
	prog.uniforms, prog.attribs = nil, nil
	seen := make(map[string]bool)
	var uniLoc int32
	for _, s := range prog.shaders {
		src := g.shaders[s].src
		if strings.Contains(src, "link error") {
			prog.linked = false
		}
		for _, m := range declRe.FindAllStringSubmatch(src, -1) {
			name, size := m[3], 1
			if m[4] != "" {
				size, _ = strconv.Atoi(m[4])
			}
			if seen[name] {
				continue
			}
			seen[name] = true
			info := core.ActiveInfo{Name: name, Type: glslTypes[m[2]], Size: size}
			if m[1] == "attribute" {
				prog.attrLocs[name] = int32(len(prog.attribs))
				prog.attribs = append(prog.attribs, info)
				continue
			}
			if size > 1 {
				info.Name = name + "[0]"
				for i := 0; i < size; i++ {
					prog.uniLocs[name+"["+strconv.Itoa(i)+"]"] = uniLoc
					uniLoc++
				}
			} else {
				prog.uniLocs[name] = uniLoc
				uniLoc++
			}
			prog.uniforms = append(prog.uniforms, info)
		}
	}
	g.record("LinkProgram(%d)", p)
}

func (g *fakeGPU) ProgramLinked(p core.Program) bool { return g.programs[p].linked }
func (g *fakeGPU) ProgramInfoLog(core.Program) string {
	return "error: unresolved symbol"
}

func (g *fakeGPU) DeleteProgram(p core.Program) {
	delete(g.programs, p)
	g.record("DeleteProgram(%d)", p)
}

func (g *fakeGPU) UseProgram(p core.Program) { g.record("UseProgram(%d)", p) }

func (g *fakeGPU) ActiveUniforms(p core.Program) []core.ActiveInfo   { return g.programs[p].uniforms }
func (g *fakeGPU) ActiveAttributes(p core.Program) []core.ActiveInfo { return g.programs[p].attribs }

func (g *fakeGPU) UniformLocation(p core.Program, name string) int32 {
	if loc, ok := g.programs[p].uniLocs[name]; ok {
		return loc
	}
	return -1
}

func (g *fakeGPU) AttribLocation(p core.Program, name string) int32 {
	if loc, ok := g.programs[p].attrLocs[name]; ok {
		return loc
	}
	return -1
}

func (g *fakeGPU) Uniformf(loc int32, comps int, v []float32) {
	g.record("Uniformf(%d, %d, %v)", loc, comps, v)
}

func (g *fakeGPU) Uniformi(loc int32, comps int, v []int32) {
	g.record("Uniformi(%d, %d, %v)", loc, comps, v)
}

func (g *fakeGPU) UniformMatrix(loc int32, dim int, v []float32) {
	g.record("UniformMatrix(%d, %d)", loc, dim)
}

func (g *fakeGPU) VertexAttrib4f(index uint32, x, y, z, w float32) {
	g.record("VertexAttrib4f(%d, %v, %v, %v, %v)", index, x, y, z, w)
}

func (g *fakeGPU) EnableVertexAttribArray(index uint32) {
	g.record("EnableVertexAttribArray(%d)", index)
}

func (g *fakeGPU) DisableVertexAttribArray(index uint32) {
	g.record("DisableVertexAttribArray(%d)", index)
}

func (g *fakeGPU) BindArrayBuffer(b core.Buffer) { g.record("BindArrayBuffer(%d)", b) }

func (g *fakeGPU) VertexAttribPointer(index uint32, size int, typ core.Enum, normalized bool, stride, offset int) {
	g.record("VertexAttribPointer(%d, %d, %#x, %t, %d, %d)", index, size, uint32(typ), normalized, stride, offset)
}

func (g *fakeGPU) VertexAttribDivisor(index uint32, divisor int) {
	g.record("VertexAttribDivisor(%d, %d)", index, divisor)
}

func (g *fakeGPU) MaxVertexAttribs() int { return g.maxAttribs }
