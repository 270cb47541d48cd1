package renderer2d

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/clayray/engine/colors"
	"github.com/hubastard/clayray/engine/gfx"
	"github.com/hubastard/clayray/engine/gfx/gfxtest"
)

func newRenderer(t *testing.T, maxQuads int) (*Renderer2D, *gfxtest.Device) {
	t.Helper()
	dev := gfxtest.New()
	rd, err := New(dev, "vs", "fs", maxQuads)
	if err != nil {
		t.Fatal(err)
	}
	return rd, dev
}

// vertex returns the position of vertex i of a recorded draw.
func vertex(d gfxtest.Draw, i int) mgl32.Vec2 {
	return mgl32.Vec2{d.Vertices[i*vStride], d.Vertices[i*vStride+1]}
}

func TestDrawRectIsTopLeft(t *testing.T) {
	rd, dev := newRenderer(t, 0)
	rd.BeginScene(mgl32.Ident4())
	rd.DrawRect(10, 20, 30, 40, colors.Red)
	rd.EndScene()

	if len(dev.Draws) != 1 {
		t.Fatalf("expected 1 draw; got %d", len(dev.Draws))
	}
	d := dev.Draws[0]
	exp := []mgl32.Vec2{{10, 20}, {40, 20}, {10, 60}, {40, 60}}
	for i, e := range exp {
		if got := vertex(d, i); !got.ApproxEqual(e) {
			t.Errorf("[spec %d] expected corner %v; got %v", i, e, got)
		}
	}
	if d.Cmd.IndexCount != indsPerQuad {
		t.Fatalf("expected %d indices; got %d", indsPerQuad, d.Cmd.IndexCount)
	}
	if vp, ok := d.Cmd.Uniforms["uVP"].([16]float32); !ok || vp != mgl32.Ident4() {
		t.Fatalf("expected uVP uniform to be the scene matrix; got %v", d.Cmd.Uniforms["uVP"])
	}
}

func TestEmptyRectIsSkipped(t *testing.T) {
	rd, dev := newRenderer(t, 0)
	rd.BeginScene(mgl32.Ident4())
	rd.DrawRect(0, 0, 0, 10, colors.Red)
	rd.DrawRect(0, 0, 10, -1, colors.Red)
	rd.EndScene()
	if len(dev.Draws) != 0 {
		t.Fatalf("expected no draws; got %d", len(dev.Draws))
	}
}

func TestBatchFlushesWhenFull(t *testing.T) {
	rd, dev := newRenderer(t, 2)
	rd.BeginScene(mgl32.Ident4())
	for i := 0; i < 5; i++ {
		rd.DrawRect(float32(i), 0, 1, 1, colors.White)
	}
	rd.EndScene()

	if len(dev.Draws) != 3 {
		t.Fatalf("expected 3 batches; got %d", len(dev.Draws))
	}
	st := rd.Stats()
	if st.QuadCount != 5 || st.DrawCalls != 3 {
		t.Fatalf("expected 5 quads in 3 draws; got %+v", st)
	}
	if st.TotalVertexCount() != 20 || st.TotalIndexCount() != 30 {
		t.Fatalf("unexpected totals %d/%d", st.TotalVertexCount(), st.TotalIndexCount())
	}
}

func TestTextureSlots(t *testing.T) {
	rd, dev := newRenderer(t, 0)
	tex, _ := dev.CreateTexture(gfx.TextureDesc{Width: 2, Height: 2, Pixels: make([]byte, 16)})

	rd.BeginScene(mgl32.Ident4())
	rd.DrawRect(0, 0, 1, 1, colors.White)
	rd.DrawTexturedQuad(0, 0, 1, 1, tex, colors.White, 0)
	rd.DrawSubTexQuad(0, 0, 1, 1, FromPixels(tex, 0, 0, 1, 1, 2, 2), colors.White, 0)
	rd.EndScene()

	d := dev.Draws[0]
	if len(d.Cmd.Samplers) != 2 {
		t.Fatalf("expected white and one texture bound; got %d samplers", len(d.Cmd.Samplers))
	}
	if d.Cmd.Samplers["uTex[1]"] != tex {
		t.Fatalf("expected texture in slot 1")
	}
	// texIndex of the textured quads
	if idx := d.Vertices[4*vStride+8]; idx != 1 {
		t.Fatalf("expected slot 1; got %v", idx)
	}
	// sub texture UVs of the last quad's bottom-right corner
	if u, v := d.Vertices[11*vStride+6], d.Vertices[11*vStride+7]; u != 0.5 || v != 0.5 {
		t.Fatalf("expected uv (0.5,0.5); got (%v,%v)", u, v)
	}
}

func TestRoundedRectTessellation(t *testing.T) {
	rd, dev := newRenderer(t, 0)
	rd.BeginScene(mgl32.Ident4())
	rd.DrawRoundedRect(0, 0, 100, 50, 10, 8, colors.Blue)
	rd.EndScene()

	if exp := 3 + 4*8; rd.Stats().QuadCount != exp {
		t.Fatalf("expected %d quads; got %d", exp, rd.Stats().QuadCount)
	}

	// No vertex may leave the rectangle.
	d := dev.Draws[0]
	for i := 0; i < len(d.Vertices)/vStride; i++ {
		p := vertex(d, i)
		if p[0] < -1e-3 || p[0] > 100+1e-3 || p[1] < -1e-3 || p[1] > 50+1e-3 {
			t.Fatalf("vertex %d at %v is outside the rectangle", i, p)
		}
	}
}

func TestRoundedRectRadiusClamped(t *testing.T) {
	rd, _ := newRenderer(t, 0)
	rd.BeginScene(mgl32.Ident4())
	// radius larger than half the height collapses the side strips
	rd.DrawRoundedRect(0, 0, 100, 20, 50, 4, colors.Blue)
	rd.EndScene()
	if exp := 1 + 4*4; rd.Stats().QuadCount != exp {
		t.Fatalf("expected %d quads; got %d", exp, rd.Stats().QuadCount)
	}

	rd.BeginScene(mgl32.Ident4())
	rd.DrawRoundedRect(0, 0, 100, 20, 0, 4, colors.Blue)
	rd.EndScene()
	if rd.Stats().QuadCount != 1 {
		t.Fatalf("expected a plain rectangle for radius 0; got %d quads", rd.Stats().QuadCount)
	}
}

func TestNewReleasesOnFailure(t *testing.T) {
	dev := gfxtest.New()
	dev.FailPipelines = true
	if _, err := New(dev, "vs", "fs", 0); err == nil {
		t.Fatalf("expected pipeline failure to be reported")
	}
	if len(dev.Textures) != 0 || len(dev.Meshes) != 0 {
		t.Fatalf("expected nothing allocated after a failed pipeline")
	}
}

func TestRelease(t *testing.T) {
	rd, dev := newRenderer(t, 0)
	rd.Release()
	if !dev.Pipelines[0].Released || !dev.Meshes[0].Released || !dev.Textures[0].Closed {
		t.Fatalf("expected every GPU object to be released")
	}
}
