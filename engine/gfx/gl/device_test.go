package glbackend

import "testing"

func TestFlipY(t *testing.T) {
	specs := []struct {
		y, h, fbH int
		exp       int
	}{
		{0, 100, 600, 500},
		{500, 100, 600, 0},
		{250, 100, 600, 250},
	}
	for i, s := range specs {
		if got := flipY(s.y, s.h, s.fbH); got != s.exp {
			t.Errorf("[spec %d] expected %d; got %d", i, s.exp, got)
		}
	}
}
