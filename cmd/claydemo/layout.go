package main

import (
	"github.com/hubastard/clayray/engine/clay"
	"github.com/hubastard/clayray/engine/core"
)

// measureFunc sizes a text run the way the layout pass needs it.
type measureFunc func(text string, cfg clay.TextConfig) clay.Dimensions

const (
	padding     = 16
	headerH     = 64
	panelRadius = 8
	panelBorder = 2
	rowPadding  = 8
)

var (
	bgColor      = clay.RGBA(24, 28, 34, 255)
	panelColor   = clay.RGBA(38, 44, 54, 255)
	rowColor     = clay.RGBA(48, 56, 68, 255)
	accentColor  = clay.RGBA(224, 160, 64, 255)
	borderColor  = clay.RGBA(90, 100, 120, 255)
	textColor    = clay.RGBA(230, 230, 235, 255)
	mutedColor   = clay.RGBA(150, 155, 165, 255)
	hudColor     = clay.RGBA(0, 0, 0, 160)
	hudTextColor = clay.RGBA(255, 255, 0, 255)
)

// dashboard is a hand laid out screen: a header, a clipped scrolling list on
// the left and an image card above a model card on the right.
type dashboard struct {
	Width, Height float32
	Title         string
	Items         []string
	Scroll        float32
	FontSize      uint16
	Image         core.Texture
	Model         any
	Measure       measureFunc
}

func (d dashboard) textConfig(size uint16) clay.TextConfig {
	return clay.TextConfig{FontSize: size}
}

func (d dashboard) rowHeight() float32 { return float32(d.FontSize) + 2*rowPadding }

func (d dashboard) header() clay.BoundingBox {
	return clay.BoundingBox{X: padding, Y: padding, Width: d.Width - 2*padding, Height: headerH}
}

func (d dashboard) bodyTop() float32 { return 2*padding + headerH }

// listPanel is the box of the scrolling list, border included.
func (d dashboard) listPanel() clay.BoundingBox {
	top := d.bodyTop()
	return clay.BoundingBox{X: padding, Y: top, Width: (d.Width - 3*padding) / 2, Height: d.Height - top - padding}
}

// listView is the clipped area inside the list panel border.
func (d dashboard) listView() clay.BoundingBox {
	p := d.listPanel()
	return clay.BoundingBox{X: p.X + panelBorder, Y: p.Y + panelBorder, Width: p.Width - 2*panelBorder, Height: p.Height - 2*panelBorder}
}

// cards returns the two stacked boxes of the right column.
func (d dashboard) cards() (image, model clay.BoundingBox) {
	l := d.listPanel()
	x := l.X + l.Width + padding
	w := d.Width - x - padding
	h := (l.Height - padding) / 2
	image = clay.BoundingBox{X: x, Y: l.Y, Width: w, Height: h}
	model = clay.BoundingBox{X: x, Y: l.Y + h + padding, Width: w, Height: h}
	return image, model
}

// maxScroll is how far the list can scroll before its last row is at the bottom.
func (d dashboard) maxScroll() float32 {
	content := float32(len(d.Items)) * d.rowHeight()
	return max(0, content-d.listView().Height)
}

func (d dashboard) clampScroll(v float32) float32 {
	return min(max(v, 0), d.maxScroll())
}

func (d dashboard) build() clay.RenderCommandArray {
	var cmds clay.RenderCommandArray
	root := clay.BoundingBox{Width: d.Width, Height: d.Height}
	cmds = append(cmds, clay.Rectangle(root, bgColor, clay.CornerRadius{}))

	h := d.header()
	cmds = append(cmds, clay.Rectangle(h, panelColor, clay.UniformRadius(panelRadius)))
	cmds = append(cmds, d.label(d.Title, h, d.FontSize, accentColor))

	cmds = d.appendList(cmds)

	imageCard, modelCard := d.cards()
	cmds = d.appendCard(cmds, imageCard)
	if d.Image != nil {
		cmds = append(cmds, clay.Image(fitImage(d.Image, inset(imageCard, padding)), d.Image, clay.Color{}))
	} else {
		cmds = append(cmds, d.label("no image", imageCard, d.FontSize/2, mutedColor))
	}

	cmds = d.appendCard(cmds, modelCard)
	if d.Model != nil {
		cmds = append(cmds, clay.Custom(inset(modelCard, padding), d.Model))
	} else {
		cmds = append(cmds, d.label("no model", modelCard, d.FontSize/2, mutedColor))
	}
	return cmds
}

func (d dashboard) appendCard(cmds clay.RenderCommandArray, box clay.BoundingBox) clay.RenderCommandArray {
	return append(cmds,
		clay.Rectangle(box, panelColor, clay.UniformRadius(panelRadius)),
		clay.Border(box, borderColor, clay.UniformBorder(panelBorder), clay.UniformRadius(panelRadius)),
	)
}

// appendList emits the list panel and the rows that intersect its view,
// wrapped in a clip region.
func (d dashboard) appendList(cmds clay.RenderCommandArray) clay.RenderCommandArray {
	panel := d.listPanel()
	view := d.listView()
	cmds = d.appendCard(cmds, panel)
	cmds = append(cmds, clay.ScissorStart(view))

	scroll := d.clampScroll(d.Scroll)
	rowH := d.rowHeight()
	for i, item := range d.Items {
		row := clay.BoundingBox{X: view.X, Y: view.Y + float32(i)*rowH - scroll, Width: view.Width, Height: rowH}
		if row.Intersect(view).Empty() {
			continue
		}
		if i%2 == 1 {
			cmds = append(cmds, clay.Rectangle(row, rowColor, clay.CornerRadius{}))
		}
		cmds = append(cmds, d.label(item, row, d.FontSize, textColor))
	}
	return append(cmds, clay.ScissorEnd())
}

// label places text vertically centred in box, indented by the row padding.
func (d dashboard) label(text string, box clay.BoundingBox, size uint16, color clay.Color) clay.RenderCommand {
	dim := d.Measure(text, d.textConfig(size))
	at := clay.BoundingBox{X: box.X + rowPadding, Y: box.Y + (box.Height-dim.Height)/2, Width: dim.Width, Height: dim.Height}
	return clay.Text(at, text, 0, size, color)
}

// hudCommands draws lines in a translucent panel anchored at the top right of
// a width wide screen.
func hudCommands(lines []string, width float32, size uint16, measure measureFunc) clay.RenderCommandArray {
	if len(lines) == 0 {
		return nil
	}
	cfg := clay.TextConfig{FontSize: size}
	var w, lineH float32
	dims := make([]clay.Dimensions, len(lines))
	for i, line := range lines {
		dims[i] = measure(line, cfg)
		w = max(w, dims[i].Width)
		lineH = max(lineH, dims[i].Height)
	}

	panel := clay.BoundingBox{
		X:      width - w - 3*padding,
		Y:      padding,
		Width:  w + 2*padding,
		Height: float32(len(lines))*lineH + 2*padding,
	}
	cmds := clay.RenderCommandArray{clay.Rectangle(panel, hudColor, clay.UniformRadius(panelRadius))}
	for i, line := range lines {
		box := clay.BoundingBox{X: panel.X + padding, Y: panel.Y + padding + float32(i)*lineH, Width: dims[i].Width, Height: dims[i].Height}
		cmds = append(cmds, clay.Text(box, line, 0, size, hudTextColor))
	}
	return cmds
}

func inset(b clay.BoundingBox, by float32) clay.BoundingBox {
	return clay.BoundingBox{X: b.X + by, Y: b.Y + by, Width: max(0, b.Width-2*by), Height: max(0, b.Height-2*by)}
}

// fitImage returns the largest box inside area with the texture's aspect
// ratio, centred in area.
func fitImage(t core.Texture, area clay.BoundingBox) clay.BoundingBox {
	tw, th := t.Size()
	if tw <= 0 || th <= 0 || area.Empty() {
		return clay.BoundingBox{X: area.X, Y: area.Y}
	}
	s := min(area.Width/float32(tw), area.Height/float32(th))
	w, h := float32(tw)*s, float32(th)*s
	return clay.BoundingBox{X: area.X + (area.Width-w)/2, Y: area.Y + (area.Height-h)/2, Width: w, Height: h}
}
