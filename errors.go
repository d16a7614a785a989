package formgrid

import "errors"

// Sentinel errors shared by the engine's sub-packages.
var (
	// ErrInvalidLayoutSpec is returned when a field's anchor combination
	// cannot be resolved, or resolves to a negative width or height.
	// The engine renders such a field as a zero-size placeholder.
	ErrInvalidLayoutSpec = errors.New("formgrid: invalid layout spec")

	// ErrCacheKeyDegenerate signals that key generation declined to produce
	// a shared cache key. It selects a policy branch and is never surfaced
	// from a paint pass.
	ErrCacheKeyDegenerate = errors.New("formgrid: cache key degenerate")

	// ErrControlPoolExhausted is returned when a live control is requested
	// but every pooled instance of the kind is focused.
	ErrControlPoolExhausted = errors.New("formgrid: control pool exhausted")

	// ErrNestedTemplateMissing is returned when a template references a
	// sub-template the loader cannot resolve. It aborts the whole load.
	ErrNestedTemplateMissing = errors.New("formgrid: nested template missing")
)
