package renderer2d

import (
	"math"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/clayray/engine/colors"
	"github.com/hubastard/clayray/engine/gfx"
)

// Max textures per batch (common GL limit is 16)
const maxTexSlots = 16

// Vertex: pos2 + color4 + uv2 + texIndex1 => 9 floats
const vStride = 9
const vertsPerQuad = 4
const indsPerQuad = 6

var quadVertexLayout = gfx.VertexLayout{
	Stride: vStride * 4,
	Attributes: []gfx.VertexAttrib{
		{Location: 0, Size: 2, Type: gfx.AttribFloat32, Offset: 0},     // pos
		{Location: 1, Size: 4, Type: gfx.AttribFloat32, Offset: 2 * 4}, // color
		{Location: 2, Size: 2, Type: gfx.AttribFloat32, Offset: 6 * 4}, // uv
		{Location: 3, Size: 1, Type: gfx.AttribFloat32, Offset: 8 * 4}, // texIndex
	},
}

// Statistics captures the counts generated during a renderer frame.
type Statistics struct {
	DrawCalls    int
	QuadCount    int
	TextureCount int
}

// TotalVertexCount reports vertices submitted this frame.
func (s Statistics) TotalVertexCount() int { return s.QuadCount * vertsPerQuad }

// TotalIndexCount reports indices submitted this frame.
func (s Statistics) TotalIndexCount() int { return s.QuadCount * indsPerQuad }

type Renderer2D struct {
	dev    gfx.Device
	pipe   gfx.Pipeline
	white  gfx.Texture // 1x1 white (slot 0)
	texArr [maxTexSlots]gfx.Texture
	texCnt int

	verts     []float32
	inds      []uint32
	quadCount int
	maxQuads  int

	mesh     gfx.Mesh
	samplers map[string]gfx.Texture
	uniforms map[string]any
	texNames [maxTexSlots]string

	vp    [16]float32
	stats Statistics
}

// New creates renderer and compiles the shader pipeline.
func New(dev gfx.Device, vertSrc, fragSrc string, maxQuads int) (*Renderer2D, error) {
	if maxQuads <= 0 {
		maxQuads = 10000
	}
	pipe, err := dev.CreatePipeline(gfx.PipelineDesc{
		VertexSource:   vertSrc,
		FragmentSource: fragSrc,
		DepthTest:      false,
		Blend:          true,
	})
	if err != nil {
		return nil, err
	}

	// build 1x1 white texture
	white, err := dev.CreateTexture(gfx.TextureDesc{
		Width: 1, Height: 1,
		Format:    gfx.TextureRGBA8,
		Pixels:    []byte{255, 255, 255, 255},
		MinFilter: gfx.FilterNearest, MagFilter: gfx.FilterNearest,
		WrapU: gfx.WrapClamp, WrapV: gfx.WrapClamp,
	})
	if err != nil {
		pipe.Release()
		return nil, err
	}

	rd := &Renderer2D{
		dev: dev, pipe: pipe, white: white, maxQuads: maxQuads,
		verts: make([]float32, 0, maxQuads*vertsPerQuad*vStride),
		inds:  make([]uint32, 0, maxQuads*indsPerQuad),
	}

	// Create a reusable mesh large enough for the biggest batch.
	mesh, err := dev.CreateMesh(gfx.MeshDesc{
		Vertices: make([]float32, maxQuads*vertsPerQuad*vStride),
		Indices:  make([]uint32, maxQuads*indsPerQuad),
		Layout:   quadVertexLayout,
		Dynamic:  true,
	})
	if err != nil {
		_ = white.Close()
		pipe.Release()
		return nil, err
	}
	rd.mesh = mesh

	rd.samplers = make(map[string]gfx.Texture, maxTexSlots)
	rd.uniforms = make(map[string]any, 4)
	for i := 0; i < maxTexSlots; i++ {
		rd.texNames[i] = "uTex[" + strconv.Itoa(i) + "]"
	}
	rd.resetBatch()

	return rd, nil
}

// Release frees the GPU objects owned by the renderer.
func (rd *Renderer2D) Release() {
	rd.mesh.Release()
	_ = rd.white.Close()
	rd.pipe.Release()
}

func (rd *Renderer2D) BeginScene(vp [16]float32) {
	rd.vp = vp
	rd.stats = Statistics{}
	rd.resetBatch()
}

func (rd *Renderer2D) EndScene() { rd.flush() }

// Flush submits the pending batch. Call it before changing device state
// such as the scissor rectangle.
func (rd *Renderer2D) Flush() { rd.flush() }

// Stats returns the current frame statistics snapshot.
func (rd *Renderer2D) Stats() Statistics { return rd.stats }

// DrawRect draws a solid rectangle with its top-left corner at (x,y).
func (rd *Renderer2D) DrawRect(x, y, w, h float32, color colors.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	rd.ensureQuadCapacity()
	rd.drawQuadInternal(x+w*0.5, y+h*0.5, w, h, color, 0, rd.texSlot(rd.white), 0, 0, 1, 1)
}

// DrawTexturedQuad draws the whole of tex centred on (x,y), rotated clockwise by rotationRad.
func (rd *Renderer2D) DrawTexturedQuad(x, y, w, h float32, tex gfx.Texture, tint colors.Color, rotationRad float32) {
	rd.DrawSubTexQuad(x, y, w, h, SubTexture2D{Texture: tex, U1: 1, V1: 1}, tint, rotationRad)
}

// DrawSubTexQuad is DrawTexturedQuad for a region of an atlas.
func (rd *Renderer2D) DrawSubTexQuad(x, y, w, h float32, sub SubTexture2D, tint colors.Color, rotationRad float32) {
	rd.ensureQuadCapacity()
	slot := rd.texSlot(sub.Texture)
	rd.drawQuadInternal(x, y, w, h, tint, rotationRad, slot, sub.U0, sub.V0, sub.U1, sub.V1)
}

// DrawRing fills the part of the annulus between inner and outer radius
// that lies between startDeg and endDeg. Angles grow clockwise on screen
// from the +X axis. An inner radius of zero draws a pie slice.
func (rd *Renderer2D) DrawRing(center mgl32.Vec2, inner, outer, startDeg, endDeg float32, segments int, color colors.Color) {
	slot := rd.texSlot(rd.white)
	for _, q := range RingQuads(center, inner, outer, startDeg, endDeg, segments) {
		rd.ensureQuadCapacity()
		rd.drawPoints(q, color, slot)
	}
}

// DrawRoundedRect draws a rectangle whose four corners are rounded by radius,
// each corner tessellated into segments slices.
func (rd *Renderer2D) DrawRoundedRect(x, y, w, h, radius float32, segments int, color colors.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	radius = min(radius, w*0.5, h*0.5)
	if radius <= 0 {
		rd.DrawRect(x, y, w, h, color)
		return
	}

	// centre column plus the two side strips between the corners
	rd.DrawRect(x+radius, y, w-2*radius, h, color)
	rd.DrawRect(x, y+radius, radius, h-2*radius, color)
	rd.DrawRect(x+w-radius, y+radius, radius, h-2*radius, color)

	rd.DrawRing(mgl32.Vec2{x + radius, y + radius}, 0, radius, 180, 270, segments, color)
	rd.DrawRing(mgl32.Vec2{x + w - radius, y + radius}, 0, radius, 270, 360, segments, color)
	rd.DrawRing(mgl32.Vec2{x + radius, y + h - radius}, 0, radius, 90, 180, segments, color)
	rd.DrawRing(mgl32.Vec2{x + w - radius, y + h - radius}, 0, radius, 0, 90, segments, color)
}

// --- internals ---

func (rd *Renderer2D) texSlot(t gfx.Texture) float32 {
	// already in array?
	for i := 0; i < rd.texCnt; i++ {
		if rd.texArr[i] == t {
			return float32(i)
		}
	}
	// need a new slot
	if rd.texCnt >= maxTexSlots {
		// flush and reset texture bindings
		rd.flush()
	}
	rd.texArr[rd.texCnt] = t
	rd.texCnt++
	rd.stats.TextureCount = max(rd.stats.TextureCount, rd.texCnt)
	return float32(rd.texCnt - 1)
}

func (rd *Renderer2D) drawQuadInternal(x, y, w, h float32, color colors.Color, rotationRad float32, texIndex float32, u0, v0, u1, v1 float32) {
	halfW := w * 0.5
	halfH := h * 0.5

	// corners (TL, TR, BL, BR) with UVs. Positive Y goes down so top is -halfH.
	corners := [4][4]float32{
		{-halfW, -halfH, u0, v0},
		{halfW, -halfH, u1, v0},
		{-halfW, halfH, u0, v1},
		{halfW, halfH, u1, v1},
	}
	c, s := float32(math.Cos(float64(rotationRad))), float32(math.Sin(float64(rotationRad)))

	startVertex := uint32(len(rd.verts) / vStride)

	for _, p := range corners {
		rx := p[0]*c - p[1]*s + x
		ry := p[0]*s + p[1]*c + y
		u, v := p[2], p[3]
		rd.verts = append(rd.verts,
			rx, ry,
			color[0], color[1], color[2], color[3],
			u, v,
			texIndex,
		)
	}
	rd.appendQuadIndices(startVertex)
}

// drawPoints emits an untextured quad from corners in TL, TR, BL, BR order.
func (rd *Renderer2D) drawPoints(q Quad, color colors.Color, texIndex float32) {
	startVertex := uint32(len(rd.verts) / vStride)
	for _, p := range q {
		rd.verts = append(rd.verts,
			p[0], p[1],
			color[0], color[1], color[2], color[3],
			0, 0,
			texIndex,
		)
	}
	rd.appendQuadIndices(startVertex)
}

func (rd *Renderer2D) appendQuadIndices(startVertex uint32) {
	rd.inds = append(rd.inds,
		startVertex+0, startVertex+2, startVertex+1,
		startVertex+1, startVertex+2, startVertex+3,
	)
	rd.quadCount++
	rd.stats.QuadCount++
}

func (rd *Renderer2D) flush() {
	if rd.quadCount == 0 {
		return
	}

	if err := rd.dev.UpdateMesh(rd.mesh, rd.verts, rd.inds); err != nil {
		panic(err)
	}

	clear(rd.samplers)
	for i := 0; i < rd.texCnt; i++ {
		rd.samplers[rd.texNames[i]] = rd.texArr[i]
	}

	clear(rd.uniforms)
	rd.uniforms["uVP"] = rd.vp

	rd.dev.Draw(gfx.DrawCmd{
		Pipe:       rd.pipe,
		Mesh:       rd.mesh,
		IndexCount: len(rd.inds),
		Uniforms:   rd.uniforms,
		Samplers:   rd.samplers,
	})
	rd.stats.DrawCalls++

	rd.resetBatch()
}

func (rd *Renderer2D) resetBatch() {
	rd.verts = rd.verts[:0]
	rd.inds = rd.inds[:0]
	rd.quadCount = 0
	for i := range rd.texArr {
		rd.texArr[i] = nil
	}
	rd.texArr[0] = rd.white
	rd.texCnt = 1
}

func (rd *Renderer2D) ensureQuadCapacity() {
	if rd.quadCount >= rd.maxQuads {
		rd.flush()
	}
}
