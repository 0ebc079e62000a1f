package svgicon

import (
	"errors"
	"fmt"
)

var (
	errParamMismatch = errors.New("SVG Parse: Param mismatch")
	errZeroLengthID  = errors.New("SVG Parse: zero length id")
	errMissingID     = errors.New("SVG Parse: cannot find id")

	// ErrInvalidRoot is returned when the document has no <svg> root element,
	// or when the root defines neither a viewBox nor a width and height.
	ErrInvalidRoot = errors.New("SVG Parse: invalid svg root")
)

// XMLError is returned when the input is not well formed XML.
type XMLError struct {
	Err error
}

func (e *XMLError) Error() string { return fmt.Sprintf("SVG Parse: invalid XML: %s", e.Err) }

func (e *XMLError) Unwrap() error { return e.Err }

// ErrorMode determines how the parser reacts to the
// content it can't handle: unsupported elements, malformed
// declarations or path data, unresolved references.
type ErrorMode uint8

const (
	// WarnErrorMode logs the problem with the package logger
	// and goes on. This is the default.
	WarnErrorMode ErrorMode = iota
	// IgnoreErrorMode silently skips the problem.
	IgnoreErrorMode
	// StrictErrorMode aborts the parsing.
	StrictErrorMode
)

func (m ErrorMode) String() string {
	switch m {
	case WarnErrorMode:
		return "warn"
	case IgnoreErrorMode:
		return "ignore"
	case StrictErrorMode:
		return "strict"
	default:
		return "<unknown ErrorMode>"
	}
}

// ParseErrorMode is the inverse of ErrorMode.String
func ParseErrorMode(s string) (ErrorMode, error) {
	switch s {
	case "", "warn":
		return WarnErrorMode, nil
	case "ignore":
		return IgnoreErrorMode, nil
	case "strict":
		return StrictErrorMode, nil
	}
	return 0, fmt.Errorf("invalid error mode %q", s)
}
