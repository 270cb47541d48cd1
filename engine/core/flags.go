package core

import (
	"fmt"
	"math/bits"
	"strings"
)

// WindowFlags configure the window at creation time. Bit values follow Raylib's
// ConfigFlags so the mask can be handed to it unchanged.
type WindowFlags uint32

const (
	FlagFullscreenMode    WindowFlags = 0x00000002
	FlagWindowResizable   WindowFlags = 0x00000004
	FlagWindowUndecorated WindowFlags = 0x00000008
	FlagWindowTransparent WindowFlags = 0x00000010
	FlagMsaa4xHint        WindowFlags = 0x00000020
	FlagVsyncHint         WindowFlags = 0x00000040
	FlagWindowHidden      WindowFlags = 0x00000080
	FlagWindowTopmost     WindowFlags = 0x00001000
	FlagWindowHighdpi     WindowFlags = 0x00002000
)

var flagNames = map[WindowFlags]string{
	FlagFullscreenMode:    "fullscreen",
	FlagWindowResizable:   "resizable",
	FlagWindowUndecorated: "undecorated",
	FlagWindowTransparent: "transparent",
	FlagMsaa4xHint:        "msaa4x",
	FlagVsyncHint:         "vsync",
	FlagWindowHidden:      "hidden",
	FlagWindowTopmost:     "topmost",
	FlagWindowHighdpi:     "highdpi",
}

func (f WindowFlags) Has(flag WindowFlags) bool { return f&flag == flag }

// String lists the set flags low bit first, e.g. "resizable|vsync".
// Unknown bits are printed in hex.
func (f WindowFlags) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	for rest := uint32(f); rest != 0; {
		bit := WindowFlags(1 << bits.TrailingZeros32(rest))
		rest &^= uint32(bit)
		if name, ok := flagNames[bit]; ok {
			parts = append(parts, name)
		} else {
			parts = append(parts, fmt.Sprintf("0x%x", uint32(bit)))
		}
	}
	return strings.Join(parts, "|")
}
