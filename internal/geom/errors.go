package geom

import "errors"

// Error taxonomy for the model. All failures wrap one of these sentinels so
// callers can classify with errors.Is; there is no retry or recovery, the
// first failure aborts the caller's remaining steps.
var (
	// ErrInvalidGeometry marks too few points for the requested kind.
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrMalformedInput marks length mismatches among coordinate and part
	// columns, or otherwise unusable input.
	ErrMalformedInput = errors.New("malformed input")

	// ErrDimensionMismatch marks attribute or raster value sequences whose
	// length does not match the feature or cell count.
	ErrDimensionMismatch = errors.New("dimension mismatch")
)
