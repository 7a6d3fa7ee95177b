// Package types holds the error taxonomy and shared limits of the pixel
// surface core.
//
// Every package in the module reports failures as *Error values whose Kind
// is one of a small, stable set of categories:
//   - ErrKindOutOfMemory: the OS refused memory even after one reclaim pass.
//   - ErrKindDisposed: a buffer or surface was used after release.
//   - ErrKindOutOfRange: a checked pixel coordinate fell outside the surface.
//   - ErrKindInvalidArgument: a size, dimension or format was rejected.
//
// Callers branch with errors.Is against the sentinels:
//
//	if errors.Is(err, types.ErrOutOfRange) {
//	    // clamp and retry
//	}
//
// This package has no dependencies beyond the standard library.
package types
