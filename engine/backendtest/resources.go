package backendtest

// Font is a fixed-advance core.Font with optional per-rune overrides.
type Font struct {
	Base     float32
	Default  float32
	Advances map[rune]float32

	closed int
}

func NewFont(base, advance float32) *Font {
	return &Font{Base: base, Default: advance}
}

func (f *Font) BaseSize() float32 { return f.Base }

func (f *Font) Advance(r rune) float32 {
	if a, ok := f.Advances[r]; ok {
		return a
	}
	return f.Default
}

func (f *Font) Close() error {
	f.closed++
	return nil
}

func (f *Font) Closed() bool { return f.closed > 0 }

// CloseCount returns how many times Close was called.
func (f *Font) CloseCount() int { return f.closed }

type Texture struct {
	W, H int

	closed int
}

func (t *Texture) Size() (int, int) { return t.W, t.H }

func (t *Texture) Close() error {
	t.closed++
	return nil
}

func (t *Texture) Closed() bool { return t.closed > 0 }
