// Package gfxtest is an in-memory gfx.Device for tests of code that draws
// through the device without a GL context.
package gfxtest

import (
	"errors"

	"github.com/hubastard/clayray/engine/colors"
	"github.com/hubastard/clayray/engine/gfx"
)

type Pipeline struct {
	Desc     gfx.PipelineDesc
	Released bool
}

func (p *Pipeline) Release() { p.Released = true }

type Mesh struct {
	Desc     gfx.MeshDesc
	Vertices []float32
	Indices  []uint32
	Released bool
}

func (m *Mesh) Release() { m.Released = true }

type Texture struct {
	Desc   gfx.TextureDesc
	Closed bool
}

func (t *Texture) Size() (int, int) { return t.Desc.Width, t.Desc.Height }

func (t *Texture) Close() error {
	t.Closed = true
	return nil
}

// Draw is a recorded draw call with a copy of the mesh contents at the time of the call.
type Draw struct {
	Cmd      gfx.DrawCmd
	Vertices []float32
	Indices  []uint32
	Scissor  *[4]int
}

type Device struct {
	Pipelines []*Pipeline
	Textures  []*Texture
	Meshes    []*Mesh
	Draws     []Draw
	Clears    []colors.Color

	// FailPipelines makes CreatePipeline fail.
	FailPipelines bool

	Width, Height int
	Closed        bool

	scissor *[4]int
}

func New() *Device { return &Device{} }

var errPipeline = errors.New("gfxtest: pipeline creation failed")

func (d *Device) CreatePipeline(desc gfx.PipelineDesc) (gfx.Pipeline, error) {
	if d.FailPipelines {
		return nil, errPipeline
	}
	p := &Pipeline{Desc: desc}
	d.Pipelines = append(d.Pipelines, p)
	return p, nil
}

func (d *Device) CreateTexture(desc gfx.TextureDesc) (gfx.Texture, error) {
	t := &Texture{Desc: desc}
	d.Textures = append(d.Textures, t)
	return t, nil
}

func (d *Device) CreateMesh(desc gfx.MeshDesc) (gfx.Mesh, error) {
	m := &Mesh{Desc: desc, Vertices: desc.Vertices, Indices: desc.Indices}
	d.Meshes = append(d.Meshes, m)
	return m, nil
}

func (d *Device) UpdateMesh(m gfx.Mesh, vertices []float32, indices []uint32) error {
	mm := m.(*Mesh)
	mm.Vertices = append(mm.Vertices[:0:0], vertices...)
	mm.Indices = append(mm.Indices[:0:0], indices...)
	return nil
}

func (d *Device) Draw(cmd gfx.DrawCmd) {
	m := cmd.Mesh.(*Mesh)
	dr := Draw{Cmd: cmd, Vertices: m.Vertices, Indices: m.Indices}
	if d.scissor != nil {
		s := *d.scissor
		dr.Scissor = &s
	}
	// Uniform and sampler maps are reused by callers between draws.
	dr.Cmd.Uniforms = copyMap(cmd.Uniforms)
	dr.Cmd.Samplers = copyMap(cmd.Samplers)
	d.Draws = append(d.Draws, dr)
}

func (d *Device) Scissor(enabled bool, x, y, w, h int) {
	if !enabled {
		d.scissor = nil
		return
	}
	d.scissor = &[4]int{x, y, w, h}
}

func (d *Device) Clear(c colors.Color) { d.Clears = append(d.Clears, c) }

func (d *Device) Resize(w, h int) { d.Width, d.Height = w, h }

func (d *Device) Close() error {
	d.Closed = true
	return nil
}

func copyMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

var _ gfx.Device = (*Device)(nil)
