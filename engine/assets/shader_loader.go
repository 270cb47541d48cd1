package assets

import (
	"embed"
	"fmt"
)

//go:embed shaders/*.glsl
var shaderFS embed.FS

// LoadShader returns a bundled GLSL source as a null-terminated string for OpenGL.
func LoadShader(name string) (string, error) {
	b, err := shaderFS.ReadFile("shaders/" + name)
	if err != nil {
		return "", fmt.Errorf("assets: load shader %q: %w", name, err)
	}
	// Ensure null termination for gl.Str
	if len(b) == 0 || b[len(b)-1] != 0 {
		b = append(b, 0)
	}
	return string(b), nil
}
