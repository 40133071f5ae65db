package assets

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadProgram(t *testing.T) {
	fsys := fstest.MapFS{
		"shaders/tri.vert": {Data: []byte("void main() {}\n")},
		"shaders/tri.frag": {Data: []byte("out vec4 c;\n")},
	}
	vert, frag, err := LoadProgram(fsys, "tri")
	require.NoError(t, err)
	assert.Equal(t, "void main() {}\n", vert)
	assert.Equal(t, "out vec4 c;\n", frag)
}

func TestLoadShaderMissing(t *testing.T) {
	_, err := LoadShader(fstest.MapFS{}, "nope.vert")
	assert.ErrorContains(t, err, `load shader "nope.vert"`)

	_, _, err = LoadProgram(fstest.MapFS{"shaders/x.vert": {}}, "x")
	assert.ErrorContains(t, err, "x.frag")
}
