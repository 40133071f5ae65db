package glstate

import (
	"log/slog"

	"github.com/hubastard/shaderstate/engine/core"
)

type shaderKey struct {
	kind core.ShaderKind
	src  string
}

// DiagnoseFunc turns a raw compiler log into a short and a long
// human-readable diagnostic. A non-nil error makes the caller fall back
// to the raw log.
type DiagnoseFunc func(log, src string, kind core.ShaderKind) (short, long string, err error)

// Shader returns the compiled shader object for (kind, src), compiling it
// on first use. Failed compiles are not cached.
func (s *State) Shader(kind core.ShaderKind, src string) (core.Shader, error) {
	key := shaderKey{kind: kind, src: src}
	if h, ok := s.shaders[key]; ok {
		return h, nil
	}

	h := s.gpu.CreateShader(kind)
	s.gpu.ShaderSource(h, src)
	s.gpu.CompileShader(h)
	if !s.gpu.ShaderCompiled(h) {
		raw := s.gpu.ShaderInfoLog(h)
		s.gpu.DeleteShader(h)
		return 0, s.compileError(kind, src, raw)
	}

	Logger().Debug("glstate: compiled shader", slog.String("kind", kind.String()), slog.Int("bytes", len(src)))
	s.shaders[key] = h
	return h, nil
}

func (s *State) compileError(kind core.ShaderKind, src, raw string) *CompileError {
	err := &CompileError{Kind: kind, Short: raw, Long: raw, Log: raw}
	if s.opts.Diagnose != nil {
		short, long, derr := s.opts.Diagnose(raw, src, kind)
		if derr == nil {
			err.Short, err.Long = short, long
		} else {
			Logger().Warn("glstate: diagnostic formatting failed, using raw log", slog.Any("err", derr))
		}
	}
	Logger().Warn("glstate: shader compile failed", slog.String("kind", kind.String()), slog.String("diag", err.Short))
	return err
}

// refreshShaders forgets every handle without deleting it. The handles
// are assumed dead already.
func (s *State) refreshShaders() {
	s.shaders = make(map[shaderKey]core.Shader)
}

func (s *State) clearShaders() {
	for _, h := range s.shaders {
		s.gpu.DeleteShader(h)
	}
	s.shaders = make(map[shaderKey]core.Shader)
}
