package xwsolve

import "errors"

// Sentinel errors for the taxonomy in SPEC_FULL.md §7. Callers match with
// errors.Is; every wrapping site uses fmt.Errorf("...: %w", ...) the way the
// teacher wraps BigQuery and Gemini errors at its own boundaries.
var (
	// ErrMalformedGrid covers non-rectangular grids, unknown characters, or
	// a grid that's empty after comment stripping. Fatal at startup.
	ErrMalformedGrid = errors.New("malformed grid")

	// ErrOutOfBounds covers a coordinate query outside the grid.
	ErrOutOfBounds = errors.New("point out of bounds")

	// ErrLengthMismatch covers a span write whose word length doesn't
	// match the span's length.
	ErrLengthMismatch = errors.New("length mismatch")

	// ErrInternal covers a search-engine invariant violation that should be
	// unreachable on valid input.
	ErrInternal = errors.New("internal invariant violation")
)
