package pdfgen

import "fmt"

// Kind identifies the category of an error returned by a pdfgen operation.
//
// Kind values mirror the enumerated error surface of the imaging model this
// package implements: every fallible operation returns a non-nil *Error
// carrying exactly one Kind, rather than the bool-success/readable-field
// pattern of the original C++ tool.
type Kind int

const (
	// KindNone is never carried by a returned error; it exists so Kind's
	// zero value has a readable name.
	KindNone Kind = iota
	KindFileCreateError
	KindFileOpenFailed
	KindOutOfMemory
	KindInvalidWidth
	KindInvalidHeight
	KindInvalidRotation
	KindMissingFilename
	KindInvalidParameter
	KindMissingFont
	KindInvalidFont
	KindInvalidFontType
	KindUnsupportedFontType
	KindNoCurrentPoint
	KindRangeCheck
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindFileCreateError:
		return "FileCreateError"
	case KindFileOpenFailed:
		return "FileOpenFailed"
	case KindOutOfMemory:
		return "OutOfMemory"
	case KindInvalidWidth:
		return "InvalidWidth"
	case KindInvalidHeight:
		return "InvalidHeight"
	case KindInvalidRotation:
		return "InvalidRotation"
	case KindMissingFilename:
		return "MissingFilename"
	case KindInvalidParameter:
		return "InvalidParameter"
	case KindMissingFont:
		return "MissingFont"
	case KindInvalidFont:
		return "InvalidFont"
	case KindInvalidFontType:
		return "InvalidFontType"
	case KindUnsupportedFontType:
		return "UnsupportedFontType"
	case KindNoCurrentPoint:
		return "NoCurrentPoint"
	case KindRangeCheck:
		return "RangeCheck"
	case KindIO:
		return "IO"
	default:
		return "Unknown"
	}
}

// Error is the error type returned by every fallible pdfgen operation.
//
// Op names the failing method (e.g. "PageContext.RLineTo"); Kind classifies
// the failure per the error-kind enumeration; Err, when non-nil, wraps the
// underlying cause (an I/O error, for instance).
type Error struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("pdfgen: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("pdfgen: %s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error with the same Kind, so callers can
// write errors.Is(err, &pdfgen.Error{Kind: k}) style checks, or simply
// inspect (*Error).Kind directly.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func errf(op string, kind Kind) *Error {
	return &Error{Op: op, Kind: kind}
}

func wrapf(op string, kind Kind, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err}
}
