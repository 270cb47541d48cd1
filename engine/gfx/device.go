// Package gfx defines the GPU device contract the 2D renderer and glyph atlas
// are written against. glbackend provides the OpenGL implementation.
package gfx

import "github.com/hubastard/clayray/engine/colors"

type Device interface {
	CreatePipeline(desc PipelineDesc) (Pipeline, error)
	CreateTexture(desc TextureDesc) (Texture, error)
	CreateMesh(desc MeshDesc) (Mesh, error)
	UpdateMesh(m Mesh, vertices []float32, indices []uint32) error
	Draw(cmd DrawCmd)

	// Scissor restricts drawing to a rectangle given in framebuffer pixels with
	// a top-left origin. enabled=false lifts the restriction.
	Scissor(enabled bool, x, y, w, h int)
	Clear(c colors.Color)
	Resize(w, h int)
	Close() error
}

// Pipeline is a compiled shader program plus its fixed render state.
type Pipeline interface {
	Release()
}

// Mesh is a vertex/index buffer pair.
type Mesh interface {
	Release()
}

// Texture satisfies core.Texture, so device textures can be handed to image commands directly.
type Texture interface {
	Size() (int, int)
	Close() error
}

type PipelineDesc struct {
	VertexSource   string
	FragmentSource string
	DepthTest      bool
	Blend          bool
}

type TextureFormat int

const (
	TextureRGBA8 TextureFormat = iota
)

type Filter int

const (
	FilterNearest Filter = iota
	FilterLinear
)

type Wrap int

const (
	WrapClamp Wrap = iota
	WrapRepeat
)

type TextureDesc struct {
	Width, Height int
	Format        TextureFormat
	// Pixels are tightly packed rows, top row first.
	Pixels []byte

	MinFilter, MagFilter Filter
	WrapU, WrapV         Wrap
}

type AttribType int

const (
	AttribFloat32 AttribType = iota
)

type VertexAttrib struct {
	Location uint32
	Size     int32
	Type     AttribType
	Offset   int
}

type VertexLayout struct {
	Stride     int32
	Attributes []VertexAttrib
}

type MeshDesc struct {
	Vertices []float32
	Indices  []uint32
	Layout   VertexLayout
	Dynamic  bool
}

// DrawCmd draws the first IndexCount indices of Mesh with Pipe. A zero
// IndexCount draws the whole index buffer.
//
// Uniform values may be float32, int32, [2]float32, [4]float32, [16]float32
// (column-major mat4) or []int32.
type DrawCmd struct {
	Pipe       Pipeline
	Mesh       Mesh
	IndexCount int
	Uniforms   map[string]any
	Samplers   map[string]Texture
}
