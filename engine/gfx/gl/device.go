package glbackend

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/hubastard/shaderstate/engine/core"
)

// DeviceGL implements core.Device on an OpenGL 3.3 core context. The
// context must be current on the calling thread.
type DeviceGL struct {
	vao        uint32
	maxAttribs int
	ext        core.Extensions
}

func NewDeviceGL(_ core.Window, _ core.Config) (*DeviceGL, error) {
	d := &DeviceGL{}
	if err := d.Init(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *DeviceGL) Init() error {
	// Core profile refuses attribute pointers without a bound VAO.
	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)

	var n int32
	gl.GetIntegerv(gl.MAX_VERTEX_ATTRIBS, &n)
	if n <= 0 {
		return fmt.Errorf("gl: MAX_VERTEX_ATTRIBS reported %d", n)
	}
	d.maxAttribs = int(n)
	d.ext = probeExtensions()
	return nil
}

func (d *DeviceGL) Shutdown() {
	if d.vao != 0 {
		gl.BindVertexArray(0)
		gl.DeleteVertexArrays(1, &d.vao)
		d.vao = 0
	}
}

func (d *DeviceGL) Extensions() core.Extensions { return d.ext }
func (d *DeviceGL) MaxVertexAttribs() int       { return d.maxAttribs }

func (d *DeviceGL) Resize(w, h int) {
	gl.Viewport(0, 0, int32(w), int32(h))
}

func (d *DeviceGL) Clear(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (d *DeviceGL) DrawArrays(first, count int) {
	gl.DrawArrays(gl.TRIANGLES, int32(first), int32(count))
}

// CreateVertexBuffer uploads data to a new buffer. The previous
// ARRAY_BUFFER binding is restored, so binding trackers stay accurate.
func (d *DeviceGL) CreateVertexBuffer(data []float32) core.Buffer {
	var prev int32
	gl.GetIntegerv(gl.ARRAY_BUFFER_BINDING, &prev)

	var b uint32
	gl.GenBuffers(1, &b)
	gl.BindBuffer(gl.ARRAY_BUFFER, b)
	if len(data) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(prev))
	return core.Buffer(b)
}

// DeleteBuffer deletes b. GL unbinds it if it was bound to ARRAY_BUFFER;
// callers tracking the binding must forget it.
func (d *DeviceGL) DeleteBuffer(b core.Buffer) {
	id := uint32(b)
	gl.DeleteBuffers(1, &id)
}

// --- shaders & programs ---

func (d *DeviceGL) CreateShader(kind core.ShaderKind) core.Shader {
	return core.Shader(gl.CreateShader(uint32(kind)))
}

func (d *DeviceGL) ShaderSource(s core.Shader, src string) {
	csrc, free := gl.Strs(cstr(src))
	defer free()
	gl.ShaderSource(uint32(s), 1, csrc, nil)
}

func (d *DeviceGL) CompileShader(s core.Shader) { gl.CompileShader(uint32(s)) }

func (d *DeviceGL) ShaderCompiled(s core.Shader) bool {
	var status int32
	gl.GetShaderiv(uint32(s), gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (d *DeviceGL) ShaderInfoLog(s core.Shader) string {
	var logLen int32
	gl.GetShaderiv(uint32(s), gl.INFO_LOG_LENGTH, &logLen)
	if logLen <= 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLen))
	gl.GetShaderInfoLog(uint32(s), logLen, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (d *DeviceGL) DeleteShader(s core.Shader) { gl.DeleteShader(uint32(s)) }

func (d *DeviceGL) CreateProgram() core.Program { return core.Program(gl.CreateProgram()) }

func (d *DeviceGL) AttachShader(p core.Program, s core.Shader) {
	gl.AttachShader(uint32(p), uint32(s))
}

func (d *DeviceGL) LinkProgram(p core.Program) { gl.LinkProgram(uint32(p)) }

func (d *DeviceGL) ProgramLinked(p core.Program) bool {
	var status int32
	gl.GetProgramiv(uint32(p), gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (d *DeviceGL) ProgramInfoLog(p core.Program) string {
	var logLen int32
	gl.GetProgramiv(uint32(p), gl.INFO_LOG_LENGTH, &logLen)
	if logLen <= 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLen))
	gl.GetProgramInfoLog(uint32(p), logLen, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (d *DeviceGL) DeleteProgram(p core.Program) { gl.DeleteProgram(uint32(p)) }
func (d *DeviceGL) UseProgram(p core.Program)    { gl.UseProgram(uint32(p)) }

// --- reflection ---

func (d *DeviceGL) ActiveUniforms(p core.Program) []core.ActiveInfo {
	return activeInfos(uint32(p), gl.ACTIVE_UNIFORMS, gl.ACTIVE_UNIFORM_MAX_LENGTH, gl.GetActiveUniform)
}

func (d *DeviceGL) ActiveAttributes(p core.Program) []core.ActiveInfo {
	return activeInfos(uint32(p), gl.ACTIVE_ATTRIBUTES, gl.ACTIVE_ATTRIBUTE_MAX_LENGTH, gl.GetActiveAttrib)
}

type activeFunc func(program, index uint32, bufSize int32, length, size *int32, xtype *uint32, name *uint8)

func activeInfos(prog uint32, countParam, lenParam uint32, get activeFunc) []core.ActiveInfo {
	var count, maxLen int32
	gl.GetProgramiv(prog, countParam, &count)
	gl.GetProgramiv(prog, lenParam, &maxLen)
	if count <= 0 {
		return nil
	}
	buf := make([]uint8, maxLen+1)
	out := make([]core.ActiveInfo, 0, count)
	for i := uint32(0); i < uint32(count); i++ {
		var length, size int32
		var typ uint32
		get(prog, i, int32(len(buf)), &length, &size, &typ, &buf[0])
		out = append(out, core.ActiveInfo{
			Name: string(buf[:length]),
			Type: core.Enum(typ),
			Size: int(size),
		})
	}
	return out
}

func (d *DeviceGL) UniformLocation(p core.Program, name string) int32 {
	return gl.GetUniformLocation(uint32(p), gl.Str(cstr(name)))
}

func (d *DeviceGL) AttribLocation(p core.Program, name string) int32 {
	return gl.GetAttribLocation(uint32(p), gl.Str(cstr(name)))
}

// --- uniforms ---

func (d *DeviceGL) Uniformf(loc int32, comps int, v []float32) {
	n := int32(len(v) / comps)
	switch comps {
	case 1:
		gl.Uniform1fv(loc, n, &v[0])
	case 2:
		gl.Uniform2fv(loc, n, &v[0])
	case 3:
		gl.Uniform3fv(loc, n, &v[0])
	case 4:
		gl.Uniform4fv(loc, n, &v[0])
	}
}

func (d *DeviceGL) Uniformi(loc int32, comps int, v []int32) {
	n := int32(len(v) / comps)
	switch comps {
	case 1:
		gl.Uniform1iv(loc, n, &v[0])
	case 2:
		gl.Uniform2iv(loc, n, &v[0])
	case 3:
		gl.Uniform3iv(loc, n, &v[0])
	case 4:
		gl.Uniform4iv(loc, n, &v[0])
	}
}

func (d *DeviceGL) UniformMatrix(loc int32, dim int, v []float32) {
	n := int32(len(v) / (dim * dim))
	switch dim {
	case 2:
		gl.UniformMatrix2fv(loc, n, false, &v[0])
	case 3:
		gl.UniformMatrix3fv(loc, n, false, &v[0])
	case 4:
		gl.UniformMatrix4fv(loc, n, false, &v[0])
	}
}

// --- vertex attributes ---

func (d *DeviceGL) VertexAttrib4f(index uint32, x, y, z, w float32) {
	gl.VertexAttrib4f(index, x, y, z, w)
}

func (d *DeviceGL) EnableVertexAttribArray(index uint32)  { gl.EnableVertexAttribArray(index) }
func (d *DeviceGL) DisableVertexAttribArray(index uint32) { gl.DisableVertexAttribArray(index) }

func (d *DeviceGL) BindArrayBuffer(b core.Buffer) { gl.BindBuffer(gl.ARRAY_BUFFER, uint32(b)) }

func (d *DeviceGL) VertexAttribPointer(index uint32, size int, typ core.Enum, normalized bool, stride, offset int) {
	gl.VertexAttribPointerWithOffset(index, int32(size), uint32(typ), normalized, int32(stride), uintptr(offset))
}

func (d *DeviceGL) VertexAttribDivisor(index uint32, divisor int) {
	gl.VertexAttribDivisor(index, uint32(divisor))
}

// --- helpers ---

// cstr null-terminates s for the C side.
func cstr(s string) string {
	if strings.HasSuffix(s, "\x00") {
		return s
	}
	return s + "\x00"
}

// probeExtensions reports instancing when the context is GL 3.3+ or
// exposes GL_ARB_instanced_arrays.
func probeExtensions() core.Extensions {
	major, minor := parseVersion(gl.GoStr(gl.GetString(gl.VERSION)))
	if major > 3 || (major == 3 && minor >= 3) {
		return core.Extensions{Instancing: true}
	}
	var n int32
	gl.GetIntegerv(gl.NUM_EXTENSIONS, &n)
	for i := uint32(0); i < uint32(n); i++ {
		if gl.GoStr(gl.GetStringi(gl.EXTENSIONS, i)) == "GL_ARB_instanced_arrays" {
			return core.Extensions{Instancing: true}
		}
	}
	return core.Extensions{}
}

// parseVersion reads "major.minor" from a GL_VERSION string such as
// "3.3.0 NVIDIA 535.54" or "OpenGL ES 3.0 Mesa 23.1".
func parseVersion(v string) (major, minor int) {
	for _, field := range strings.Fields(v) {
		parts := strings.SplitN(field, ".", 3)
		if len(parts) < 2 {
			continue
		}
		ma, err1 := strconv.Atoi(parts[0])
		mi, err2 := strconv.Atoi(parts[1])
		if err1 == nil && err2 == nil {
			return ma, mi
		}
	}
	return 0, 0
}
