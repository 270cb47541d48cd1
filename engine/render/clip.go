package render

import (
	"github.com/hubastard/clayray/engine/clay"
	"github.com/hubastard/clayray/engine/core"
)

// pushClip enters a clip region. Nested regions are intersected with their
// parent; an axis that is not clipped inherits the parent's extent (or the
// whole screen at the top level).
func (it *Interpreter) pushClip(b core.Backend, box clay.BoundingBox, d clay.ScissorStartData) {
	parent := it.currentClip(b)

	if d.Horizontal || d.Vertical {
		if !d.Horizontal {
			box.X, box.Width = parent.X, parent.Width
		}
		if !d.Vertical {
			box.Y, box.Height = parent.Y, parent.Height
		}
	}
	clip := parent.Intersect(box)

	it.clips = append(it.clips, clip)
	if len(it.clips) > it.stats.MaxScissorDepth {
		it.stats.MaxScissorDepth = len(it.clips)
	}
	b.BeginScissor(clip.Rounded())
}

// popClip leaves the innermost clip region and restores its parent.
func (it *Interpreter) popClip(b core.Backend) error {
	n := len(it.clips)
	if n == 0 {
		return ErrUnbalancedScissor
	}
	it.clips = it.clips[:n-1]
	if n > 1 {
		b.BeginScissor(it.clips[n-2].Rounded())
		return nil
	}
	b.EndScissor()
	return nil
}

func (it *Interpreter) currentClip(b core.Backend) clay.BoundingBox {
	if n := len(it.clips); n > 0 {
		return it.clips[n-1]
	}
	w, h := b.ScreenSize()
	return clay.BoundingBox{Width: float32(w), Height: float32(h)}
}
