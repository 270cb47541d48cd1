package render

import (
	"errors"
	"fmt"

	"github.com/hubastard/clayray/engine/clay"
)

var (
	ErrFontNotFound      = errors.New("render: font not found")
	ErrDuplicateFont     = errors.New("render: font id already registered")
	ErrNilFont           = errors.New("render: nil font")
	ErrInvalidImage      = errors.New("render: image data is not a backend texture")
	ErrUnbalancedScissor = errors.New("render: unbalanced scissor commands")
	ErrUnsupportedCustom = errors.New("render: no handler for custom element")
	ErrInvalidPayload    = errors.New("render: invalid command payload")
)

// CommandError reports a command the interpreter had to skip.
type CommandError struct {
	Index int
	Type  clay.CommandType
	Err   error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("render: command %d (%s): %v", e.Index, e.Type, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }
