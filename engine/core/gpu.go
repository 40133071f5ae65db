package core

// Opaque GPU object handles. Zero is never a valid object.
type (
	Shader  uint32
	Program uint32
	Buffer  uint32
)

// Enum mirrors GL enum values so backends can pass them through unchanged.
type Enum uint32

// Component types for vertex attribute pointers.
const (
	Byte          Enum = 0x1400
	UnsignedByte  Enum = 0x1401
	Short         Enum = 0x1402
	UnsignedShort Enum = 0x1403
	Int           Enum = 0x1404
	UnsignedInt   Enum = 0x1405
	Float         Enum = 0x1406
)

// Reflected uniform/attribute types.
const (
	FloatVec2   Enum = 0x8B50
	FloatVec3   Enum = 0x8B51
	FloatVec4   Enum = 0x8B52
	IntVec2     Enum = 0x8B53
	IntVec3     Enum = 0x8B54
	IntVec4     Enum = 0x8B55
	Bool        Enum = 0x8B56
	BoolVec2    Enum = 0x8B57
	BoolVec3    Enum = 0x8B58
	BoolVec4    Enum = 0x8B59
	FloatMat2   Enum = 0x8B5A
	FloatMat3   Enum = 0x8B5B
	FloatMat4   Enum = 0x8B5C
	Sampler2D   Enum = 0x8B5E
	SamplerCube Enum = 0x8B60
)

// ShaderKind selects the pipeline stage of a shader object.
type ShaderKind Enum

const (
	FragmentShader ShaderKind = 0x8B30
	VertexShader   ShaderKind = 0x8B31
)

func (k ShaderKind) String() string {
	switch k {
	case VertexShader:
		return "vertex"
	case FragmentShader:
		return "fragment"
	default:
		return "unknown"
	}
}

// ActiveInfo is the reflection record of an active uniform or attribute.
type ActiveInfo struct {
	Name string
	Type Enum
	Size int // declared array size, 1 for scalars
}

// Components reports how many scalar components a vector type carries.
// Matrices and unknown types report 4 (one column/slot).
func (e Enum) Components() int {
	switch e {
	case Float, Int, Bool, Sampler2D, SamplerCube, UnsignedInt:
		return 1
	case FloatVec2, IntVec2, BoolVec2:
		return 2
	case FloatVec3, IntVec3, BoolVec3:
		return 3
	default:
		return 4
	}
}

// Extensions reports optional driver capabilities.
type Extensions struct {
	Instancing bool // per-instance attribute divisors
}

// GPU is the capability surface the state core drives. Implementations
// issue calls immediately and in order on the thread owning the context.
type GPU interface {
	CreateShader(kind ShaderKind) Shader
	ShaderSource(s Shader, src string)
	CompileShader(s Shader)
	ShaderCompiled(s Shader) bool
	ShaderInfoLog(s Shader) string
	DeleteShader(s Shader)

	CreateProgram() Program
	AttachShader(p Program, s Shader)
	LinkProgram(p Program)
	ProgramLinked(p Program) bool
	ProgramInfoLog(p Program) string
	DeleteProgram(p Program)
	UseProgram(p Program)

	ActiveUniforms(p Program) []ActiveInfo
	ActiveAttributes(p Program) []ActiveInfo
	UniformLocation(p Program, name string) int32
	AttribLocation(p Program, name string) int32

	// Uniformf uploads float vectors with comps components each.
	Uniformf(loc int32, comps int, v []float32)
	// Uniformi uploads int vectors with comps components each.
	Uniformi(loc int32, comps int, v []int32)
	// UniformMatrix uploads dim x dim column-major matrices.
	UniformMatrix(loc int32, dim int, v []float32)

	VertexAttrib4f(index uint32, x, y, z, w float32)
	EnableVertexAttribArray(index uint32)
	DisableVertexAttribArray(index uint32)
	BindArrayBuffer(b Buffer)
	VertexAttribPointer(index uint32, size int, typ Enum, normalized bool, stride, offset int)
	VertexAttribDivisor(index uint32, divisor int)
	MaxVertexAttribs() int
}
