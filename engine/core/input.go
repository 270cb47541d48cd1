package core

// Input tracks keyboard and pointer state from events. Deltas accumulate
// until EndFrame.
type Input struct {
	keys           map[Key]bool
	buttons        [3]bool
	mouseX, mouseY float64
	dx, dy         float64
	scroll         float64
	seenMouse      bool
}

func NewInput() *Input { return &Input{keys: map[Key]bool{}} }

func (in *Input) Handle(ev Event) {
	switch e := ev.(type) {
	case EventKey:
		in.keys[e.Key] = e.Down
	case EventMouseMove:
		if in.seenMouse {
			in.dx += e.X - in.mouseX
			in.dy += e.Y - in.mouseY
		}
		in.mouseX, in.mouseY = e.X, e.Y
		in.seenMouse = true
	case EventMouseButton:
		if int(e.Button) < len(in.buttons) {
			in.buttons[e.Button] = e.Down
		}
	case EventScroll:
		in.scroll += e.Yoff
	}
}

// EndFrame clears per-frame deltas.
func (in *Input) EndFrame() {
	in.dx, in.dy, in.scroll = 0, 0, 0
}

func (in *Input) IsKeyDown(k Key) bool            { return in.keys[k] }
func (in *Input) IsButtonDown(b MouseButton) bool { return int(b) < len(in.buttons) && in.buttons[b] }
func (in *Input) Mouse() (float64, float64)       { return in.mouseX, in.mouseY }

// scene.PointerState
func (in *Input) MouseDelta() (float32, float32) { return float32(in.dx), float32(in.dy) }
func (in *Input) MouseButtonDown() bool          { return in.buttons[MouseLeft] }
func (in *Input) ScrollDelta() float32           { return float32(in.scroll) }
