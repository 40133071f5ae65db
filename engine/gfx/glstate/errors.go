package glstate

import (
	"fmt"

	"github.com/hubastard/shaderstate/engine/core"
)

// CompileError reports a shader that failed to compile. Short and Long
// hold the formatted diagnostic, or the raw driver log when it could not
// be formatted.
type CompileError struct {
	Kind  core.ShaderKind
	Short string
	Long  string
	Log   string // raw driver log
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("glstate: compile %s shader: %s", e.Kind, e.Short)
}

// LinkError reports a program that failed to link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return "glstate: link program: " + e.Log
}
