package render

import (
	"errors"
	"testing"

	"github.com/hubastard/clayray/engine/backendtest"
	"github.com/hubastard/clayray/engine/core"
)

func TestFontSetAddGet(t *testing.T) {
	fs := NewFontSet()
	f := backendtest.NewFont(16, 8)
	if err := fs.Add(3, f); err != nil {
		t.Fatal(err)
	}

	got, err := fs.Get(3)
	if err != nil {
		t.Fatal(err)
	}
	if got != core.Font(f) {
		t.Fatalf("expected the registered font back")
	}

	if _, err := fs.Get(0); !errors.Is(err, ErrFontNotFound) {
		t.Fatalf("expected ErrFontNotFound; got %v", err)
	}
	if err := fs.Add(3, backendtest.NewFont(16, 8)); !errors.Is(err, ErrDuplicateFont) {
		t.Fatalf("expected ErrDuplicateFont; got %v", err)
	}
	if err := fs.Add(4, nil); !errors.Is(err, ErrNilFont) {
		t.Fatalf("expected ErrNilFont; got %v", err)
	}
}

func TestNilFontSet(t *testing.T) {
	var fs *FontSet
	if fs.Len() != 0 || fs.IDs() != nil {
		t.Fatalf("expected nil set to be empty")
	}
	if _, err := fs.Get(0); !errors.Is(err, ErrFontNotFound) {
		t.Fatalf("expected ErrFontNotFound; got %v", err)
	}
	if err := fs.Close(); err != nil {
		t.Fatalf("expected nil error; got %v", err)
	}
}

func TestFontSetCloseReleasesFonts(t *testing.T) {
	fs := NewFontSet()
	a, b := backendtest.NewFont(16, 8), backendtest.NewFont(24, 12)
	_ = fs.Add(1, b)
	_ = fs.Add(0, a)

	if ids := fs.IDs(); len(ids) != 2 || ids[0] != 0 || ids[1] != 1 {
		t.Fatalf("expected ids [0 1]; got %v", ids)
	}
	if err := fs.Close(); err != nil {
		t.Fatal(err)
	}
	if !a.Closed() || !b.Closed() {
		t.Fatalf("expected both fonts to be closed")
	}
	if fs.Len() != 0 {
		t.Fatalf("expected empty set after Close; got %d fonts", fs.Len())
	}
}

func TestLoadFonts(t *testing.T) {
	rec := backendtest.New()
	fs, err := LoadFonts(rec, 20, "a.ttf", "b.ttf")
	if err != nil {
		t.Fatal(err)
	}
	if fs.Len() != 2 {
		t.Fatalf("expected 2 fonts; got %d", fs.Len())
	}
	f, _ := fs.Get(1)
	if f.BaseSize() != 20 {
		t.Fatalf("expected base size 20; got %v", f.BaseSize())
	}
	_ = fs.Close()
	if leaks := rec.Leaks(); len(leaks) != 0 {
		t.Fatalf("unexpected leaks: %v", leaks)
	}

	if _, err := LoadFonts(rec, 0, "a.ttf"); err == nil {
		t.Fatalf("expected an error for a zero font size")
	}
}
