package assets

import (
	"fmt"
	"io/fs"
	"path"
)

// LoadShader reads a GLSL file from shaders/ in fsys. The text is returned
// as-is: it is the cache key for compiled shaders, so callers must not
// decorate it.
func LoadShader(fsys fs.FS, name string) (string, error) {
	b, err := fs.ReadFile(fsys, path.Join("shaders", name))
	if err != nil {
		return "", fmt.Errorf("load shader %q: %w", name, err)
	}
	return string(b), nil
}

// LoadProgram reads the "<name>.vert" / "<name>.frag" pair.
func LoadProgram(fsys fs.FS, name string) (vert, frag string, err error) {
	if vert, err = LoadShader(fsys, name+".vert"); err != nil {
		return "", "", err
	}
	if frag, err = LoadShader(fsys, name+".frag"); err != nil {
		return "", "", err
	}
	return vert, frag, nil
}
