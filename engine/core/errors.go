package core

import "errors"

var (
	ErrInvalidSize        = errors.New("core: window width and height must be positive")
	ErrAlreadyInitialized = errors.New("core: context already initialized")
	ErrNotInitialized     = errors.New("core: context not initialized")
	ErrClosed             = errors.New("core: context closed")

	// Returned by backends handed a resource another backend loaded.
	ErrForeignFont    = errors.New("core: font was not loaded by this backend")
	ErrForeignTexture = errors.New("core: texture was not loaded by this backend")
)
