package glstate

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hubastard/shaderstate/engine/core"
)

func TestLoggerDefaultSilent(t *testing.T) {
	l := Logger()
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn} {
		assert.False(t, l.Enabled(context.Background(), level))
	}
}

func TestSetLoggerReceivesCompileFailures(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	s := New(newFakeGPU(), Options{})
	_, err := s.Shader(core.VertexShader, badSrc)
	assert.Error(t, err)
	assert.Contains(t, buf.String(), "shader compile failed")
	assert.Contains(t, buf.String(), "kind=vertex")

	SetLogger(nil)
	assert.False(t, Logger().Enabled(context.Background(), slog.LevelError))
}
