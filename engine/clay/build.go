package clay

// Helpers for assembling command arrays by hand, mostly for demos and tests.

func Rectangle(box BoundingBox, color Color, radius CornerRadius) RenderCommand {
	return RenderCommand{BoundingBox: box, Data: RectangleData{BackgroundColor: color, CornerRadius: radius}}
}

func Border(box BoundingBox, color Color, width BorderWidth, radius CornerRadius) RenderCommand {
	return RenderCommand{BoundingBox: box, Data: BorderData{Color: color, Width: width, CornerRadius: radius}}
}

func Text(box BoundingBox, text string, fontID, fontSize uint16, color Color) RenderCommand {
	return RenderCommand{BoundingBox: box, Data: TextData{Text: text, FontID: fontID, FontSize: fontSize, TextColor: color}}
}

func Image(box BoundingBox, image any, tint Color) RenderCommand {
	return RenderCommand{BoundingBox: box, Data: ImageData{Image: image, BackgroundColor: tint}}
}

func ScissorStart(box BoundingBox) RenderCommand {
	return RenderCommand{BoundingBox: box, Data: ScissorStartData{Horizontal: true, Vertical: true}}
}

func ScissorEnd() RenderCommand {
	return RenderCommand{Data: ScissorEndData{}}
}

func Custom(box BoundingBox, data any) RenderCommand {
	return RenderCommand{BoundingBox: box, Data: CustomData{Data: data}}
}
