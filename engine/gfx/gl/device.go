package glbackend

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/hubastard/clayray/engine/colors"
	"github.com/hubastard/clayray/engine/gfx"
	"github.com/hubastard/clayray/engine/log"
)

var logger = log.New("gl")

// Device implements gfx.Device on an OpenGL 3.3 core context. The context
// must be current on the calling thread for the lifetime of the device.
type Device struct {
	fbW, fbH int

	Vendor, Renderer, Version string

	scissor bool
	blend   bool
	depth   bool
}

func NewDevice(fbW, fbH int) (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl: init: %w", err)
	}
	d := &Device{
		Vendor:   gl.GoStr(gl.GetString(gl.VENDOR)),
		Renderer: gl.GoStr(gl.GetString(gl.RENDERER)),
		Version:  gl.GoStr(gl.GetString(gl.VERSION)),
	}
	logger.Infof("GL %s on %s (%s)", d.Version, d.Renderer, d.Vendor)

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	d.Resize(fbW, fbH)
	return d, nil
}

func (d *Device) Resize(w, h int) {
	d.fbW, d.fbH = w, h
	gl.Viewport(0, 0, int32(w), int32(h))
}

func (d *Device) Clear(c colors.Color) {
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (d *Device) Scissor(enabled bool, x, y, w, h int) {
	if !enabled {
		if d.scissor {
			gl.Disable(gl.SCISSOR_TEST)
			d.scissor = false
		}
		return
	}
	if !d.scissor {
		gl.Enable(gl.SCISSOR_TEST)
		d.scissor = true
	}
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	gl.Scissor(int32(x), int32(flipY(y, h, d.fbH)), int32(w), int32(h))
}

// flipY converts a top-left origin rectangle's y to GL's bottom-left origin.
func flipY(y, h, fbH int) int { return fbH - (y + h) }

// Close is a no-op: GL objects die with the context, which the window owns.
func (d *Device) Close() error { return nil }

// --- pipelines ---

type Pipeline struct {
	program uint32
	blend   bool
	depth   bool
	locs    map[string]int32
}

func (p *Pipeline) Release() {
	if p.program != 0 {
		gl.DeleteProgram(p.program)
		p.program = 0
	}
}

func (p *Pipeline) location(name string) int32 {
	if loc, ok := p.locs[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.program, gl.Str(name+"\x00"))
	p.locs[name] = loc
	return loc
}

func (d *Device) CreatePipeline(desc gfx.PipelineDesc) (gfx.Pipeline, error) {
	prog, err := makeProgram(desc.VertexSource, desc.FragmentSource)
	if err != nil {
		return nil, err
	}
	return &Pipeline{program: prog, blend: desc.Blend, depth: desc.DepthTest, locs: make(map[string]int32)}, nil
}

// --- textures ---

type Texture struct {
	id   uint32
	w, h int
}

func (t *Texture) Size() (int, int) { return t.w, t.h }

// ID returns the GL texture name.
func (t *Texture) ID() uint32 { return t.id }

func (t *Texture) Close() error {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
	return nil
}

func (d *Device) CreateTexture(desc gfx.TextureDesc) (gfx.Texture, error) {
	if desc.Width <= 0 || desc.Height <= 0 {
		return nil, fmt.Errorf("gl: invalid texture size %dx%d", desc.Width, desc.Height)
	}
	if desc.Format != gfx.TextureRGBA8 {
		return nil, fmt.Errorf("gl: unsupported texture format %d", desc.Format)
	}
	if want := desc.Width * desc.Height * 4; len(desc.Pixels) != want {
		return nil, fmt.Errorf("gl: texture wants %d bytes of pixels, got %d", want, len(desc.Pixels))
	}

	t := &Texture{w: desc.Width, h: desc.Height}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, glFilter(desc.MinFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, glFilter(desc.MagFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, glWrap(desc.WrapU))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, glWrap(desc.WrapV))
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(desc.Width), int32(desc.Height), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(desc.Pixels))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return t, nil
}

func glFilter(f gfx.Filter) int32 {
	if f == gfx.FilterLinear {
		return gl.LINEAR
	}
	return gl.NEAREST
}

func glWrap(w gfx.Wrap) int32 {
	if w == gfx.WrapRepeat {
		return gl.REPEAT
	}
	return gl.CLAMP_TO_EDGE
}

// --- meshes ---

type Mesh struct {
	vao, vbo, ebo  uint32
	vboCap, eboCap int
	indexCount     int32
	usage          uint32
}

func (m *Mesh) Release() {
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
	}
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
	}
	*m = Mesh{}
}

func (d *Device) CreateMesh(desc gfx.MeshDesc) (gfx.Mesh, error) {
	if len(desc.Vertices) == 0 || len(desc.Indices) == 0 {
		return nil, fmt.Errorf("gl: empty mesh")
	}
	m := &Mesh{usage: gl.STATIC_DRAW}
	if desc.Dynamic {
		m.usage = gl.DYNAMIC_DRAW
	}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	m.vboCap = len(desc.Vertices) * 4
	gl.BufferData(gl.ARRAY_BUFFER, m.vboCap, gl.Ptr(desc.Vertices), m.usage)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	m.eboCap = len(desc.Indices) * 4
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, m.eboCap, gl.Ptr(desc.Indices), m.usage)
	m.indexCount = int32(len(desc.Indices))

	for _, a := range desc.Layout.Attributes {
		gl.EnableVertexAttribArray(a.Location)
		gl.VertexAttribPointerWithOffset(a.Location, a.Size, gl.FLOAT, false, desc.Layout.Stride, uintptr(a.Offset))
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return m, nil
}

func (d *Device) UpdateMesh(mesh gfx.Mesh, vertices []float32, indices []uint32) error {
	m, ok := mesh.(*Mesh)
	if !ok || m.vao == 0 {
		return fmt.Errorf("gl: update of foreign or released mesh %T", mesh)
	}
	if len(vertices) == 0 || len(indices) == 0 {
		m.indexCount = 0
		return nil
	}

	gl.BindVertexArray(m.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	if n := len(vertices) * 4; n > m.vboCap {
		m.vboCap = n
		gl.BufferData(gl.ARRAY_BUFFER, n, gl.Ptr(vertices), m.usage)
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, n, gl.Ptr(vertices))
	}
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	if n := len(indices) * 4; n > m.eboCap {
		m.eboCap = n
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, n, gl.Ptr(indices), m.usage)
	} else {
		gl.BufferSubData(gl.ELEMENT_ARRAY_BUFFER, 0, n, gl.Ptr(indices))
	}
	m.indexCount = int32(len(indices))

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return nil
}

// --- drawing ---

func (d *Device) Draw(cmd gfx.DrawCmd) {
	p, ok := cmd.Pipe.(*Pipeline)
	if !ok || p.program == 0 {
		logger.Warningf("draw with foreign or released pipeline %T", cmd.Pipe)
		return
	}
	m, ok := cmd.Mesh.(*Mesh)
	if !ok || m.vao == 0 {
		logger.Warningf("draw with foreign or released mesh %T", cmd.Mesh)
		return
	}
	count := m.indexCount
	if cmd.IndexCount > 0 && int32(cmd.IndexCount) < count {
		count = int32(cmd.IndexCount)
	}
	if count == 0 {
		return
	}

	d.applyState(p)
	gl.UseProgram(p.program)

	for name, v := range cmd.Uniforms {
		setUniform(p.location(name), v)
	}
	unit := int32(0)
	for name, t := range cmd.Samplers {
		tex, ok := t.(*Texture)
		if !ok {
			continue
		}
		gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
		gl.BindTexture(gl.TEXTURE_2D, tex.id)
		gl.Uniform1i(p.location(name), unit)
		unit++
	}

	gl.BindVertexArray(m.vao)
	gl.DrawElements(gl.TRIANGLES, count, gl.UNSIGNED_INT, unsafe.Pointer(nil))
	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

func (d *Device) applyState(p *Pipeline) {
	if p.blend != d.blend {
		if p.blend {
			gl.Enable(gl.BLEND)
			gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
		} else {
			gl.Disable(gl.BLEND)
		}
		d.blend = p.blend
	}
	if p.depth != d.depth {
		if p.depth {
			gl.Enable(gl.DEPTH_TEST)
		} else {
			gl.Disable(gl.DEPTH_TEST)
		}
		d.depth = p.depth
	}
}

func setUniform(loc int32, v any) {
	if loc < 0 {
		return
	}
	switch u := v.(type) {
	case float32:
		gl.Uniform1f(loc, u)
	case int32:
		gl.Uniform1i(loc, u)
	case [2]float32:
		gl.Uniform2f(loc, u[0], u[1])
	case [4]float32:
		gl.Uniform4f(loc, u[0], u[1], u[2], u[3])
	case colors.Color:
		gl.Uniform4f(loc, u[0], u[1], u[2], u[3])
	case [16]float32:
		gl.UniformMatrix4fv(loc, 1, false, &u[0])
	case []int32:
		if len(u) > 0 {
			gl.Uniform1iv(loc, int32(len(u)), &u[0])
		}
	default:
		logger.Warningf("unsupported uniform type %T", v)
	}
}

// --- shader utilities ---

func makeShader(src string, shaderType uint32) (uint32, error) {
	if !strings.HasSuffix(src, "\x00") {
		src += "\x00"
	}
	sh := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	defer free()
	gl.ShaderSource(sh, 1, csrc, nil)
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetShaderInfoLog(sh, logLen, nil, gl.Str(log))
		gl.DeleteShader(sh)
		return 0, fmt.Errorf("gl: shader compile error: %s", strings.TrimRight(log, "\x00"))
	}
	return sh, nil
}

func makeProgram(vsSrc, fsSrc string) (uint32, error) {
	vs, err := makeShader(vsSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := makeShader(fsSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}
	prog := gl.CreateProgram()
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("gl: program link error: %s", strings.TrimRight(log, "\x00"))
	}
	return prog, nil
}

var _ gfx.Device = (*Device)(nil)
