package ascii

import "errors"

var (
	// ErrUnknownMnemonic indicates that a command or reply mnemonic is not
	// part of the supported MCS/SDC ASCII command set.
	ErrUnknownMnemonic = errors.New("ascii: unknown mnemonic")

	// ErrBadParamCount indicates that a command was built, or a reply line
	// received, with a number of values that does not match the mnemonic's
	// fixed arity.
	ErrBadParamCount = errors.New("ascii: wrong parameter count")

	// ErrParamRange indicates that a numeric parameter is outside the range
	// the controller accepts. Range validation happens before encoding so
	// that an out-of-range request produces no transport traffic.
	ErrParamRange = errors.New("ascii: parameter out of range")
)

var (
	// ErrMissingSentinel indicates that a reply line does not start with the
	// ':' protocol sentinel.
	ErrMissingSentinel = errors.New("ascii: line does not start with ':' sentinel")

	// ErrEmptyLine indicates that a reply line contains no mnemonic token.
	ErrEmptyLine = errors.New("ascii: empty reply line")

	// ErrBadNumber indicates that a value token in a reply line is not a
	// valid base-10 signed 64-bit integer. Malformed numbers never decode
	// to a default value.
	ErrBadNumber = errors.New("ascii: malformed numeric token")
)

var (
	// ErrAngleRange indicates an angle value outside [0, 360e6) micro-degrees.
	ErrAngleRange = errors.New("ascii: angle out of range [0, 360e6)")

	// ErrRevolutionRange indicates a revolution value outside the
	// controller's signed 16-bit revolution counter range.
	ErrRevolutionRange = errors.New("ascii: revolution out of range [-32768, 32767]")
)
