package hyper

import "errors"

var (
	// ErrDegenerate reports input that does not determine the requested object:
	// coincident line anchors, fewer than three polygon edges, a diameter
	// through the origin alone.
	ErrDegenerate = errors.New("hyper: degenerate input")

	// ErrDivisionByZero reports a complex division by the zero point. A Möbius
	// map evaluated at its pole surfaces as this error.
	ErrDivisionByZero = errors.New("hyper: division by zero")
)
