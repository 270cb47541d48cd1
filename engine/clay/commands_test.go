package clay

import "testing"

func TestCommandType(t *testing.T) {
	specs := []struct {
		cmd RenderCommand
		exp CommandType
	}{
		{RenderCommand{}, CommandNone},
		{Rectangle(BoundingBox{}, Color{}, CornerRadius{}), CommandRectangle},
		{Border(BoundingBox{}, Color{}, UniformBorder(1), CornerRadius{}), CommandBorder},
		{Text(BoundingBox{}, "hi", 0, 16, Color{}), CommandText},
		{Image(BoundingBox{}, nil, Color{}), CommandImage},
		{ScissorStart(BoundingBox{}), CommandScissorStart},
		{ScissorEnd(), CommandScissorEnd},
		{Custom(BoundingBox{}, nil), CommandCustom},
	}

	for specIndex, spec := range specs {
		if got := spec.cmd.Type(); got != spec.exp {
			t.Errorf("[spec %d] expected type %s; got %s", specIndex, spec.exp, got)
		}
	}
}

func TestCommandTypeString(t *testing.T) {
	if got := CommandScissorStart.String(); got != "scissor-start" {
		t.Fatalf("expected scissor-start; got %s", got)
	}
	if got := CommandType(42).String(); got != "command(42)" {
		t.Fatalf("expected command(42); got %s", got)
	}
}

func TestCount(t *testing.T) {
	arr := RenderCommandArray{
		Rectangle(BoundingBox{}, Color{}, CornerRadius{}),
		Rectangle(BoundingBox{}, Color{}, CornerRadius{}),
		ScissorStart(BoundingBox{}),
		ScissorEnd(),
		{},
	}
	counts := arr.Count()
	if counts[CommandRectangle] != 2 || counts[CommandScissorStart] != 1 || counts[CommandScissorEnd] != 1 || counts[CommandNone] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}
}

func TestBoundingBoxIntersect(t *testing.T) {
	a := BoundingBox{X: 0, Y: 0, Width: 100, Height: 50}
	b := BoundingBox{X: 50, Y: 25, Width: 100, Height: 100}

	got := a.Intersect(b)
	exp := BoundingBox{X: 50, Y: 25, Width: 50, Height: 25}
	if got != exp {
		t.Fatalf("expected %+v; got %+v", exp, got)
	}

	disjoint := a.Intersect(BoundingBox{X: 200, Y: 200, Width: 10, Height: 10})
	if !disjoint.Empty() {
		t.Fatalf("expected empty intersection; got %+v", disjoint)
	}
}

func TestBoundingBoxRounded(t *testing.T) {
	x, y, w, h := BoundingBox{X: 1.4, Y: 1.5, Width: 10.49, Height: 0.5}.Rounded()
	if x != 1 || y != 2 || w != 10 || h != 1 {
		t.Fatalf("expected (1,2,10,1); got (%d,%d,%d,%d)", x, y, w, h)
	}
}

func TestColorNormalized(t *testing.T) {
	c := RGBA(255, 0, 0, 255).Normalized()
	if c[0] != 1 || c[1] != 0 || c[3] != 1 {
		t.Fatalf("expected opaque red; got %v", c)
	}
	if !(Color{}).IsZero() {
		t.Fatal("expected zero color to report IsZero")
	}
}
