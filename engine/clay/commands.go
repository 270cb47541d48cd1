package clay

import "fmt"

type CommandType uint8

const (
	CommandNone CommandType = iota
	CommandRectangle
	CommandBorder
	CommandText
	CommandImage
	CommandScissorStart
	CommandScissorEnd
	CommandCustom

	numCommandTypes
)

// NumCommandTypes is the number of known command types, CommandNone included.
const NumCommandTypes = int(numCommandTypes)

var commandTypeNames = [...]string{
	CommandNone:         "none",
	CommandRectangle:    "rectangle",
	CommandBorder:       "border",
	CommandText:         "text",
	CommandImage:        "image",
	CommandScissorStart: "scissor-start",
	CommandScissorEnd:   "scissor-end",
	CommandCustom:       "custom",
}

func (t CommandType) String() string {
	if int(t) < len(commandTypeNames) {
		return commandTypeNames[t]
	}
	return fmt.Sprintf("command(%d)", uint8(t))
}

// RenderData is the typed payload of a render command. The set of
// implementations is closed to this package.
type RenderData interface {
	Type() CommandType
	isRenderData()
}

type RectangleData struct {
	BackgroundColor Color
	CornerRadius    CornerRadius
}

type BorderData struct {
	Color        Color
	CornerRadius CornerRadius
	Width        BorderWidth
}

type TextData struct {
	Text          string
	TextColor     Color
	FontID        uint16
	FontSize      uint16
	LetterSpacing uint16
	LineHeight    uint16
}

// ImageData draws a backend texture stretched to the command width.
// A zero BackgroundColor means "no tint".
type ImageData struct {
	BackgroundColor Color
	CornerRadius    CornerRadius
	Image           any
}

// ScissorStartData pushes a clip region equal to the command's bounding box.
type ScissorStartData struct {
	Horizontal bool
	Vertical   bool
}

// ScissorEndData pops the innermost clip region.
type ScissorEndData struct{}

// CustomData carries application data the interpreter hands to a custom element handler.
type CustomData struct {
	BackgroundColor Color
	CornerRadius    CornerRadius
	Data            any
}

func (RectangleData) Type() CommandType    { return CommandRectangle }
func (BorderData) Type() CommandType       { return CommandBorder }
func (TextData) Type() CommandType         { return CommandText }
func (ImageData) Type() CommandType        { return CommandImage }
func (ScissorStartData) Type() CommandType { return CommandScissorStart }
func (ScissorEndData) Type() CommandType   { return CommandScissorEnd }
func (CustomData) Type() CommandType       { return CommandCustom }

func (RectangleData) isRenderData()    {}
func (BorderData) isRenderData()       {}
func (TextData) isRenderData()         {}
func (ImageData) isRenderData()        {}
func (ScissorStartData) isRenderData() {}
func (ScissorEndData) isRenderData()   {}
func (CustomData) isRenderData()       {}

// RenderCommand is one element of the layout output.
type RenderCommand struct {
	BoundingBox BoundingBox
	ID          uint32
	ZIndex      int16
	UserData    any
	Data        RenderData
}

// Type returns the command kind; commands without a payload are CommandNone.
func (c RenderCommand) Type() CommandType {
	if c.Data == nil {
		return CommandNone
	}
	return c.Data.Type()
}

// RenderCommandArray is the per-frame output of the layout engine, in paint order.
type RenderCommandArray []RenderCommand

// Count returns how many commands of each type the array holds.
func (a RenderCommandArray) Count() [NumCommandTypes]int {
	var out [NumCommandTypes]int
	for _, c := range a {
		if t := c.Type(); int(t) < NumCommandTypes {
			out[t]++
		}
	}
	return out
}
