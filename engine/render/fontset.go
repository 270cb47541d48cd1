package render

import (
	"errors"
	"fmt"
	"sort"

	"github.com/hubastard/clayray/engine/core"
)

// FontSet maps the font ids used by text commands to loaded fonts. The set
// owns its fonts: Close releases them.
type FontSet struct {
	fonts map[uint16]core.Font

	cacheSize int
	measured  *measureCache
}

func NewFontSet() *FontSet {
	return &FontSet{fonts: make(map[uint16]core.Font)}
}

// NewFontSetCache is NewFontSet with room for n cached text measurements.
func NewFontSetCache(n int) *FontSet {
	fs := NewFontSet()
	fs.cacheSize = n
	return fs
}

func (fs *FontSet) measureCache() *measureCache {
	if fs.measured == nil {
		fs.measured = newMeasureCache(fs.cacheSize)
	}
	return fs.measured
}

// Add registers f under id.
func (fs *FontSet) Add(id uint16, f core.Font) error {
	if f == nil {
		return fmt.Errorf("%w (id %d)", ErrNilFont, id)
	}
	if fs.fonts == nil {
		fs.fonts = make(map[uint16]core.Font)
	}
	if _, exists := fs.fonts[id]; exists {
		return fmt.Errorf("%w: %d", ErrDuplicateFont, id)
	}
	fs.fonts[id] = f
	return nil
}

// Get returns the font registered under id. A nil set holds no fonts.
func (fs *FontSet) Get(id uint16) (core.Font, error) {
	if fs != nil {
		if f, ok := fs.fonts[id]; ok {
			return f, nil
		}
	}
	return nil, fmt.Errorf("%w: id %d", ErrFontNotFound, id)
}

func (fs *FontSet) Len() int {
	if fs == nil {
		return 0
	}
	return len(fs.fonts)
}

// IDs returns the registered ids in ascending order.
func (fs *FontSet) IDs() []uint16 {
	if fs == nil {
		return nil
	}
	ids := make([]uint16, 0, len(fs.fonts))
	for id := range fs.fonts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Close releases every font and empties the set.
func (fs *FontSet) Close() error {
	if fs == nil {
		return nil
	}
	var errs []error
	for _, id := range fs.IDs() {
		if err := fs.fonts[id].Close(); err != nil {
			errs = append(errs, fmt.Errorf("render: close font %d: %w", id, err))
		}
	}
	clear(fs.fonts)
	if fs.measured != nil {
		fs.measured.Purge()
	}
	return errors.Join(errs...)
}

// LoadFonts loads one font per path through b, registering them under ids 0..n-1.
// Fonts loaded before a failure are released.
func LoadFonts(b core.Backend, size int, paths ...string) (*FontSet, error) {
	fs := NewFontSet()
	for i, path := range paths {
		f, err := b.LoadFont(path, size)
		if err != nil {
			_ = fs.Close()
			return nil, fmt.Errorf("render: load font %q: %w", path, err)
		}
		if err := fs.Add(uint16(i), f); err != nil {
			_ = f.Close()
			_ = fs.Close()
			return nil, err
		}
	}
	return fs, nil
}
