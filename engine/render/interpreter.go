package render

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/clayray/engine/clay"
	"github.com/hubastard/clayray/engine/colors"
	"github.com/hubastard/clayray/engine/core"
	"github.com/hubastard/clayray/engine/log"
	"github.com/hubastard/clayray/engine/profiler"
	"github.com/hubastard/clayray/engine/scene"
)

var logger = log.New("render")

const (
	defaultRingSegments = 10
	roundedRectSegments = 8
)

// Stats counts what the last Render call did.
type Stats struct {
	Commands        [clay.NumCommandTypes]int
	Skipped         int
	MaxScissorDepth int
}

// Total returns the number of commands seen.
func (s Stats) Total() int {
	n := 0
	for _, c := range s.Commands {
		n += c
	}
	return n
}

// CustomContext is handed to custom element handlers.
type CustomContext struct {
	Backend core.Backend
	Command clay.RenderCommand
	Data    clay.CustomData
	// Camera is nil unless the interpreter was given one.
	Camera *scene.Camera
	// Root is the bounding box of the first command of the frame, which Clay
	// emits for the root element.
	Root clay.BoundingBox
}

// CustomElement is implemented by custom command payloads that know how to draw themselves.
type CustomElement interface {
	DrawCustom(cc *CustomContext) error
}

type Option func(*Interpreter)

// WithCamera sets the camera custom elements use for 3D placement.
func WithCamera(cam *scene.Camera) Option {
	return func(it *Interpreter) { it.camera = cam }
}

// WithCustomHandler handles custom payloads that do not implement CustomElement.
func WithCustomHandler(h func(cc *CustomContext) error) Option {
	return func(it *Interpreter) { it.custom = h }
}

// WithRingSegments sets the tessellation of rounded border corners.
func WithRingSegments(n int) Option {
	return func(it *Interpreter) {
		if n > 0 {
			it.ringSegments = n
		}
	}
}

// Interpreter turns Clay render commands into backend draw calls.
type Interpreter struct {
	ctx          *core.Context
	camera       *scene.Camera
	custom       func(cc *CustomContext) error
	ringSegments int

	clips []clay.BoundingBox
	stats Stats
}

func New(ctx *core.Context, opts ...Option) *Interpreter {
	it := &Interpreter{ctx: ctx, ringSegments: defaultRingSegments}
	for _, opt := range opts {
		opt(it)
	}
	return it
}

// Stats returns the counters of the last Render call.
func (it *Interpreter) Stats() Stats { return it.stats }

// Render draws cmds in order. It must be called between Initialize and Close
// of the context; otherwise it returns the context's lifecycle error and draws
// nothing.
//
// A command that cannot be drawn is skipped and reported; the rest of the
// frame is still drawn. The returned error joins one *CommandError per
// skipped command.
func (it *Interpreter) Render(cmds clay.RenderCommandArray, fonts *FontSet) error {
	if err := it.ctx.Ready(); err != nil {
		return err
	}
	defer profiler.Start("render.Interpreter.Render")()

	it.stats = Stats{}
	it.clips = it.clips[:0]
	if len(cmds) == 0 {
		return nil
	}

	b := it.ctx.Backend()
	root := cmds[0].BoundingBox

	var errs []error
	for i := range cmds {
		t, err := it.run(b, &cmds[i], fonts, root)
		if err != nil {
			it.stats.Skipped++
			logger.Debugf("skipping command %d (%s): %v", i, t, err)
			errs = append(errs, &CommandError{Index: i, Type: t, Err: err})
		}
	}

	if open := len(it.clips); open > 0 {
		it.clips = it.clips[:0]
		b.EndScissor()
		errs = append(errs, fmt.Errorf("%w: %d clip region(s) left open at end of frame", ErrUnbalancedScissor, open))
	}
	return errors.Join(errs...)
}

// run counts and draws one command. A payload that panics, such as a nil
// pointer stored in the Data interface, is reported as ErrInvalidPayload.
func (it *Interpreter) run(b core.Backend, cmd *clay.RenderCommand, fonts *FontSet, root clay.BoundingBox) (t clay.CommandType, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %T: %v", ErrInvalidPayload, cmd.Data, r)
		}
	}()
	if isNilPointer(cmd.Data) {
		return clay.CommandNone, fmt.Errorf("%w: nil %T", ErrInvalidPayload, cmd.Data)
	}
	t = cmd.Type()
	if int(t) < clay.NumCommandTypes {
		it.stats.Commands[t]++
	}
	return t, it.draw(b, cmd, fonts, root)
}

func (it *Interpreter) draw(b core.Backend, cmd *clay.RenderCommand, fonts *FontSet, root clay.BoundingBox) error {
	box := cmd.BoundingBox

	switch d := cmd.Data.(type) {
	case nil:
		return nil
	case clay.RectangleData:
		drawRectangle(b, box, d)
	case clay.BorderData:
		drawBorder(b, box, d, it.ringSegments)
	case clay.TextData:
		return drawText(b, box, d, fonts)
	case clay.ImageData:
		return drawImage(b, box, d)
	case clay.ScissorStartData:
		it.pushClip(b, box, d)
	case clay.ScissorEndData:
		return it.popClip(b)
	case clay.CustomData:
		return it.drawCustom(b, cmd, d, root)
	default:
		return fmt.Errorf("render: unsupported payload %T", d)
	}
	return nil
}

func drawRectangle(b core.Backend, box clay.BoundingBox, d clay.RectangleData) {
	c := d.BackgroundColor.Normalized()
	if r := d.CornerRadius.TopLeft; r > 0 {
		b.DrawRoundedRectangle(core.Rect{X: box.X, Y: box.Y, W: box.Width, H: box.Height}, r, c)
		return
	}
	b.DrawRectangle(roundedRect(box.X, box.Y, box.Width, box.Height), c)
}

// drawBorder draws the four edges between the corner arcs, then one quarter
// ring per rounded corner.
func drawBorder(b core.Backend, box clay.BoundingBox, d clay.BorderData, segments int) {
	c := d.Color.Normalized()
	r := d.CornerRadius
	w := d.Width

	if w.Left > 0 {
		b.DrawRectangle(roundedRect(box.X, box.Y+r.TopLeft, float32(w.Left), box.Height-r.TopLeft-r.BottomLeft), c)
	}
	if w.Right > 0 {
		b.DrawRectangle(roundedRect(box.X+box.Width-float32(w.Right), box.Y+r.TopRight, float32(w.Right), box.Height-r.TopRight-r.BottomRight), c)
	}
	if w.Top > 0 {
		b.DrawRectangle(roundedRect(box.X+r.TopLeft, box.Y, box.Width-r.TopLeft-r.TopRight, float32(w.Top)), c)
	}
	if w.Bottom > 0 {
		b.DrawRectangle(roundedRect(box.X+r.BottomLeft, box.Y+box.Height-float32(w.Bottom), box.Width-r.BottomLeft-r.BottomRight, float32(w.Bottom)), c)
	}

	if r.TopLeft > 0 {
		ring(b, box.X+r.TopLeft, box.Y+r.TopLeft, r.TopLeft, w.Top, 180, 270, segments, c)
	}
	if r.TopRight > 0 {
		ring(b, box.X+box.Width-r.TopRight, box.Y+r.TopRight, r.TopRight, w.Top, 270, 360, segments, c)
	}
	if r.BottomLeft > 0 {
		ring(b, box.X+r.BottomLeft, box.Y+box.Height-r.BottomLeft, r.BottomLeft, w.Bottom, 90, 180, segments, c)
	}
	if r.BottomRight > 0 {
		ring(b, box.X+box.Width-r.BottomRight, box.Y+box.Height-r.BottomRight, r.BottomRight, w.Bottom, 0, 90, segments, c)
	}
}

func ring(b core.Backend, cx, cy, radius float32, width uint16, start, end float32, segments int, c colors.Color) {
	inner := roundf(radius - float32(width))
	if inner < 0 {
		inner = 0
	}
	b.DrawRing(mgl32.Vec2{roundf(cx), roundf(cy)}, inner, radius, start, end, segments, c)
}

func drawText(b core.Backend, box clay.BoundingBox, d clay.TextData, fonts *FontSet) error {
	if d.Text == "" {
		return nil
	}
	f, err := fonts.Get(d.FontID)
	if err != nil {
		return err
	}

	// One call per line so every backend steps lines the way MeasureText counts them.
	step := float32(d.LineHeight)
	if step == 0 {
		step = float32(d.FontSize)
	}
	c := d.TextColor.Normalized()
	y := box.Y
	for _, line := range strings.Split(d.Text, "\n") {
		if line != "" {
			if err := b.DrawText(f, line, mgl32.Vec2{box.X, y}, float32(d.FontSize), float32(d.LetterSpacing), c); err != nil {
				return err
			}
		}
		y += step
	}
	return nil
}

func drawImage(b core.Backend, box clay.BoundingBox, d clay.ImageData) error {
	tex, ok := d.Image.(core.Texture)
	if !ok || isNilPointer(tex) {
		return fmt.Errorf("%w: got %T", ErrInvalidImage, d.Image)
	}
	w, _ := tex.Size()
	if w <= 0 {
		return fmt.Errorf("%w: texture has zero width", ErrInvalidImage)
	}

	tint := colors.White
	if !d.BackgroundColor.IsZero() {
		tint = d.BackgroundColor.Normalized()
	}
	return b.DrawTexture(tex, mgl32.Vec2{box.X, box.Y}, 0, box.Width/float32(w), tint)
}

func (it *Interpreter) drawCustom(b core.Backend, cmd *clay.RenderCommand, d clay.CustomData, root clay.BoundingBox) error {
	if d.Data == nil {
		return nil
	}
	cc := &CustomContext{
		Backend: b,
		Command: *cmd,
		Data:    d,
		Camera:  it.camera,
		Root:    root,
	}
	if el, ok := d.Data.(CustomElement); ok {
		return el.DrawCustom(cc)
	}
	if it.custom != nil {
		return it.custom(cc)
	}
	return fmt.Errorf("%w: %T", ErrUnsupportedCustom, d.Data)
}

func roundedRect(x, y, w, h float32) core.Rect {
	return core.Rect{X: roundf(x), Y: roundf(y), W: roundf(w), H: roundf(h)}
}

// isNilPointer reports whether v holds a nil pointer behind a non-nil interface.
func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
