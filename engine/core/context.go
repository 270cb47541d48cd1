package core

import (
	"fmt"

	"github.com/hubastard/clayray/engine/log"
)

var logger = log.New("core")

// State of a Context.
type State int

const (
	StateUninitialized State = iota
	StateActive
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateClosed:
		return "closed"
	default:
		return "uninitialized"
	}
}

// Context owns the window and graphics context of a Backend and guards its
// lifecycle: Initialize once, Close once. A closed context cannot be reused.
type Context struct {
	backend Backend
	state   State
	cfg     WindowConfig
}

func NewContext(b Backend) *Context {
	return &Context{backend: b}
}

// Initialize opens a width x height window titled title.
func (c *Context) Initialize(width, height int, title string, flags WindowFlags) error {
	return c.InitializeConfig(WindowConfig{Width: width, Height: height, Title: title, Flags: flags})
}

// InitializeConfig is Initialize with the full window configuration.
func (c *Context) InitializeConfig(cfg WindowConfig) error {
	switch c.state {
	case StateActive:
		return ErrAlreadyInitialized
	case StateClosed:
		return ErrClosed
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidSize, cfg.Width, cfg.Height)
	}

	if err := c.backend.Open(cfg); err != nil {
		return fmt.Errorf("core: open window: %w", err)
	}
	c.cfg = cfg
	c.state = StateActive
	logger.Infof("window %q opened (%dx%d, flags: %s)", cfg.Title, cfg.Width, cfg.Height, cfg.Flags)
	return nil
}

// Close releases everything Initialize acquired. The context is closed even
// when the backend reports an error.
func (c *Context) Close() error {
	if err := c.Ready(); err != nil {
		return err
	}
	c.state = StateClosed
	if err := c.backend.Close(); err != nil {
		return fmt.Errorf("core: close window: %w", err)
	}
	logger.Infof("window %q closed", c.cfg.Title)
	return nil
}

// Ready returns nil when the context can be drawn to, or the lifecycle error explaining why not.
func (c *Context) Ready() error {
	switch c.state {
	case StateActive:
		return nil
	case StateClosed:
		return ErrClosed
	default:
		return ErrNotInitialized
	}
}

func (c *Context) State() State         { return c.state }
func (c *Context) Backend() Backend     { return c.backend }
func (c *Context) Config() WindowConfig { return c.cfg }
