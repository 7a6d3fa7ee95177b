package types

import "fmt"

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindOutOfMemory     ErrKind = iota // native allocation failed after the retry
	ErrKindDisposed                       // buffer or surface used after release
	ErrKindOutOfRange                     // pixel coordinate outside the surface
	ErrKindInvalidArgument                // bad size, format or dimension
	ErrKindState                          // invalid operation for current state (e.g., arena destroyed)
	ErrKindLeak                           // blocks still outstanding at arena teardown
)

// String implements the Stringer interface for ErrKind.
func (k ErrKind) String() string {
	switch k {
	case ErrKindOutOfMemory:
		return "out of memory"
	case ErrKindDisposed:
		return "object disposed"
	case ErrKindOutOfRange:
		return "out of range"
	case ErrKindInvalidArgument:
		return "invalid argument"
	case ErrKindState:
		return "invalid state"
	case ErrKindLeak:
		return "leak"
	default:
		return fmt.Sprintf("ErrKind(%d)", int(k))
	}
}

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same kind, so a detailed
// error matches its category sentinel under errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Kind == t.Kind
}

// Errorf builds an *Error of the given kind with a formatted message.
func Errorf(kind ErrKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap builds an *Error of the given kind around cause.
func Wrap(kind ErrKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: cause}
}

// Sentinels commonly returned by implementations.
var (
	// ErrOutOfMemory indicates the OS refused an allocation even after reclaim.
	ErrOutOfMemory = &Error{Kind: ErrKindOutOfMemory, Msg: "out of native memory"}
	// ErrObjectDisposed indicates use of a released buffer or closed surface.
	ErrObjectDisposed = &Error{Kind: ErrKindDisposed, Msg: "object disposed"}
	// ErrOutOfRange indicates a pixel coordinate outside the surface.
	ErrOutOfRange = &Error{Kind: ErrKindOutOfRange, Msg: "coordinate out of range"}
	// ErrInvalidArgument indicates an invalid size, format or dimension.
	ErrInvalidArgument = &Error{Kind: ErrKindInvalidArgument, Msg: "invalid argument"}
	// ErrArenaDestroyed indicates use of an arena after Destroy.
	ErrArenaDestroyed = &Error{Kind: ErrKindState, Msg: "arena destroyed"}
	// ErrLeaked indicates blocks were never released before teardown.
	ErrLeaked = &Error{Kind: ErrKindLeak, Msg: "native blocks leaked"}
)
