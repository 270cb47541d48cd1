package raylib

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/clayray/engine/core"
)

var keyMap = map[core.Key]int32{
	core.KeyEscape: rl.KeyEscape,
	core.KeySpace:  rl.KeySpace,
	core.KeyW:      rl.KeyW,
	core.KeyA:      rl.KeyA,
	core.KeyS:      rl.KeyS,
	core.KeyD:      rl.KeyD,
	core.KeyP:      rl.KeyP,
	core.KeyF1:     rl.KeyF1,
}

var buttonMap = [...]rl.MouseButton{
	core.MouseLeft:   rl.MouseButtonLeft,
	core.MouseRight:  rl.MouseButtonRight,
	core.MouseMiddle: rl.MouseButtonMiddle,
}

// snapshot is the input state raylib reports for one frame.
type snapshot struct {
	mouse   mgl32.Vec2
	buttons [len(buttonMap)]bool
	keys    map[core.Key]bool
	mods    core.Mod
	wheel   float32
	resized bool
	width   int
	height  int
}

func readSnapshot() snapshot {
	pos := rl.GetMousePosition()
	s := snapshot{
		mouse:   mgl32.Vec2{pos.X, pos.Y},
		keys:    make(map[core.Key]bool, len(keyMap)),
		wheel:   rl.GetMouseWheelMove(),
		resized: rl.IsWindowResized(),
		width:   rl.GetScreenWidth(),
		height:  rl.GetScreenHeight(),
	}
	for i, btn := range buttonMap {
		s.buttons[i] = rl.IsMouseButtonDown(btn)
	}
	for k, key := range keyMap {
		s.keys[k] = rl.IsKeyDown(key)
	}
	if rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift) {
		s.mods |= core.ModShift
	}
	if rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) {
		s.mods |= core.ModCtrl
	}
	if rl.IsKeyDown(rl.KeyLeftAlt) || rl.IsKeyDown(rl.KeyRightAlt) {
		s.mods |= core.ModAlt
	}
	if rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper) {
		s.mods |= core.ModSuper
	}
	return s
}

// diffSnapshots returns the events that explain the change from prev to cur,
// in a fixed order: resize, mouse move, buttons, scroll, keys.
func diffSnapshots(prev, cur snapshot) []core.Event {
	var out []core.Event
	if cur.resized {
		out = append(out, core.EventResize{W: cur.width, H: cur.height})
	}
	if cur.mouse != prev.mouse {
		out = append(out, core.EventMouseMove{X: float64(cur.mouse[0]), Y: float64(cur.mouse[1])})
	}
	for i := range cur.buttons {
		if cur.buttons[i] != prev.buttons[i] {
			out = append(out, core.EventMouseButton{Button: core.MouseButton(i), Down: cur.buttons[i]})
		}
	}
	if cur.wheel != 0 {
		out = append(out, core.EventScroll{Yoff: float64(cur.wheel)})
	}
	for k := core.KeyEscape; k <= core.KeyF1; k++ {
		if cur.keys[k] != prev.keys[k] {
			out = append(out, core.EventKey{Key: k, Down: cur.keys[k], Mods: cur.mods})
		}
	}
	return out
}
