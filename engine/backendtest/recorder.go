// Package backendtest provides a core.Backend that records every call instead
// of drawing, for tests that need to observe what the engine asked for.
package backendtest

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/clayray/engine/colors"
	"github.com/hubastard/clayray/engine/core"
)

type Op int

const (
	OpOpen Op = iota
	OpClose
	OpBeginFrame
	OpEndFrame
	OpRectangle
	OpRoundedRectangle
	OpRing
	OpText
	OpTexture
	OpBeginScissor
	OpEndScissor
)

var opNames = [...]string{
	OpOpen:             "open",
	OpClose:            "close",
	OpBeginFrame:       "begin-frame",
	OpEndFrame:         "end-frame",
	OpRectangle:        "rectangle",
	OpRoundedRectangle: "rounded-rectangle",
	OpRing:             "ring",
	OpText:             "text",
	OpTexture:          "texture",
	OpBeginScissor:     "begin-scissor",
	OpEndScissor:       "end-scissor",
}

func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return fmt.Sprintf("op(%d)", int(o))
}

// IsDraw reports whether the op changes pixels or clip state.
func (o Op) IsDraw() bool { return o >= OpRectangle }

// Call is one recorded backend call. Only the fields relevant to Op are set.
type Call struct {
	Op Op

	Window core.WindowConfig
	Rect   core.Rect
	Radius float32

	Center       mgl32.Vec2
	Inner, Outer float32
	Start, End   float32
	Segments     int

	Font    core.Font
	Texture core.Texture
	Text    string
	Pos     mgl32.Vec2
	Size    float32
	Spacing float32

	Rotation float32
	Scale    float32

	Scissor [4]int
	Color   colors.Color
}

// Recorder implements core.Backend.
type Recorder struct {
	Calls []Call

	// Errors returned from Open/Close when set.
	OpenErr  error
	CloseErr error

	// ScreenW/ScreenH override the reported screen size; defaults to the opened window size.
	ScreenW, ScreenH int

	// FramesUntilClose makes ShouldClose report true after that many EndFrame calls. Zero means never.
	FramesUntilClose int

	open     bool
	window   core.WindowConfig
	frames   int
	pending  []core.Event
	onEvent  func(core.Event)
	fonts    []*Font
	textures []*Texture
}

func New() *Recorder { return &Recorder{} }

func (r *Recorder) record(c Call) { r.Calls = append(r.Calls, c) }

func (r *Recorder) Open(cfg core.WindowConfig) error {
	if r.OpenErr != nil {
		return r.OpenErr
	}
	r.open = true
	r.window = cfg
	r.record(Call{Op: OpOpen, Window: cfg})
	return nil
}

func (r *Recorder) Close() error {
	r.open = false
	r.record(Call{Op: OpClose})
	return r.CloseErr
}

// IsOpen reports whether the window is currently open.
func (r *Recorder) IsOpen() bool { return r.open }

// Frames returns how many frames were ended.
func (r *Recorder) Frames() int { return r.frames }

func (r *Recorder) ShouldClose() bool {
	return r.FramesUntilClose > 0 && r.frames >= r.FramesUntilClose
}

// Emit queues an event delivered on the next PollEvents.
func (r *Recorder) Emit(ev core.Event) { r.pending = append(r.pending, ev) }

func (r *Recorder) PollEvents() {
	evs := r.pending
	r.pending = nil
	for _, ev := range evs {
		if r.onEvent != nil {
			r.onEvent(ev)
		}
	}
}

func (r *Recorder) SetEventCallback(cb func(core.Event)) { r.onEvent = cb }

func (r *Recorder) ScreenSize() (int, int) {
	if r.ScreenW > 0 && r.ScreenH > 0 {
		return r.ScreenW, r.ScreenH
	}
	return r.window.Width, r.window.Height
}

func (r *Recorder) BeginFrame(clear colors.Color) {
	r.record(Call{Op: OpBeginFrame, Color: clear})
}

func (r *Recorder) EndFrame() {
	r.frames++
	r.record(Call{Op: OpEndFrame})
}

func (r *Recorder) DrawRectangle(rect core.Rect, c colors.Color) {
	r.record(Call{Op: OpRectangle, Rect: rect, Color: c})
}

func (r *Recorder) DrawRoundedRectangle(rect core.Rect, radius float32, c colors.Color) {
	r.record(Call{Op: OpRoundedRectangle, Rect: rect, Radius: radius, Color: c})
}

func (r *Recorder) DrawRing(center mgl32.Vec2, inner, outer, startDeg, endDeg float32, segments int, c colors.Color) {
	r.record(Call{Op: OpRing, Center: center, Inner: inner, Outer: outer, Start: startDeg, End: endDeg, Segments: segments, Color: c})
}

func (r *Recorder) DrawText(f core.Font, s string, pos mgl32.Vec2, size, spacing float32, c colors.Color) error {
	r.record(Call{Op: OpText, Font: f, Text: s, Pos: pos, Size: size, Spacing: spacing, Color: c})
	return nil
}

func (r *Recorder) DrawTexture(t core.Texture, pos mgl32.Vec2, rotation, scale float32, tint colors.Color) error {
	r.record(Call{Op: OpTexture, Texture: t, Pos: pos, Rotation: rotation, Scale: scale, Color: tint})
	return nil
}

func (r *Recorder) BeginScissor(x, y, w, h int) {
	r.record(Call{Op: OpBeginScissor, Scissor: [4]int{x, y, w, h}})
}

func (r *Recorder) EndScissor() { r.record(Call{Op: OpEndScissor}) }

func (r *Recorder) LoadFont(path string, size int) (core.Font, error) {
	if size <= 0 {
		return nil, fmt.Errorf("backendtest: invalid font size %d", size)
	}
	f := NewFont(float32(size), float32(size)/2)
	r.fonts = append(r.fonts, f)
	return f, nil
}

func (r *Recorder) LoadTexture(path string) (core.Texture, error) {
	t := &Texture{W: 64, H: 64}
	r.textures = append(r.textures, t)
	return t, nil
}

// DrawCalls returns the recorded calls that draw or clip.
func (r *Recorder) DrawCalls() []Call {
	var out []Call
	for _, c := range r.Calls {
		if c.Op.IsDraw() {
			out = append(out, c)
		}
	}
	return out
}

// Ops returns the op of every recorded call, in order.
func (r *Recorder) Ops() []Op {
	out := make([]Op, len(r.Calls))
	for i, c := range r.Calls {
		out[i] = c.Op
	}
	return out
}

// Reset forgets recorded calls but keeps window and resource state.
func (r *Recorder) Reset() { r.Calls = r.Calls[:0] }

// Leaks describes every resource acquired through the recorder and not yet released.
func (r *Recorder) Leaks() []string {
	var out []string
	if r.open {
		out = append(out, "window still open")
	}
	for i, f := range r.fonts {
		if !f.Closed() {
			out = append(out, fmt.Sprintf("font #%d not closed", i))
		}
	}
	for i, t := range r.textures {
		if !t.Closed() {
			out = append(out, fmt.Sprintf("texture #%d not closed", i))
		}
	}
	return out
}

var _ core.Backend = (*Recorder)(nil)
