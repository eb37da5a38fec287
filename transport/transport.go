package transport

import (
	"errors"
	"time"
)

// Terminator is the line delimiter of the ASCII interface.
const Terminator = '\n'

var (
	// ErrClosed indicates an operation on a closed transport.
	ErrClosed = errors.New("transport: closed")

	// ErrReadTimeout indicates that no complete line arrived within the
	// caller-specified timeout. A read timeout leaves the transport usable;
	// any other read error should be treated as fatal for the channel.
	ErrReadTimeout = errors.New("transport: read timeout")
)

// Transport is a duplex, line-oriented byte channel to one physical
// controller.
//
// WriteLine sends one complete command line; the implementation appends the
// line terminator, so a single call leaves no partial command on the wire.
// ReadLine blocks until a full line (terminator stripped) is available or
// the timeout elapses, in which case it fails with ErrReadTimeout.
type Transport interface {
	WriteLine(line []byte) error
	ReadLine(timeout time.Duration) ([]byte, error)
	Close() error
}
