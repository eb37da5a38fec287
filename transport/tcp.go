package transport

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"net"
	"os"
	"time"
)

// DefaultConnectTimeout bounds the TCP dial of DialTCP.
const DefaultConnectTimeout = 3 * time.Second

// defaultWriteTimeout bounds a single line write. Command lines are tiny;
// a stalled write means the peer is gone.
const defaultWriteTimeout = 3 * time.Second

// TCPPort is a Transport over a TCP connection to a controller's network
// interface.
type TCPPort struct {
	conn    net.Conn
	reader  *bufio.Reader
	partial []byte // bytes of an incomplete line carried across a timeout
	closed  bool
}

var _ Transport = (*TCPPort)(nil)

// DialTCP connects to the controller at addr ("host:port").
func DialTCP(addr string) (*TCPPort, error) {
	conn, err := net.DialTimeout("tcp", addr, DefaultConnectTimeout)
	if err != nil {
		return nil, fmt.Errorf("transport: dial %s: %w", addr, err)
	}

	return NewTCP(conn), nil
}

// NewTCP wraps an established connection. Useful when the caller manages
// dialing and reconnection itself.
func NewTCP(conn net.Conn) *TCPPort {
	return &TCPPort{
		conn:   conn,
		reader: bufio.NewReader(conn),
	}
}

// WriteLine writes one command line followed by the terminator.
func (p *TCPPort) WriteLine(line []byte) error {
	if p.closed {
		return ErrClosed
	}

	out := make([]byte, 0, len(line)+1)
	out = append(out, line...)
	out = append(out, Terminator)

	if err := p.conn.SetWriteDeadline(time.Now().Add(defaultWriteTimeout)); err != nil {
		return fmt.Errorf("transport: set write deadline: %w", err)
	}
	if _, err := p.conn.Write(out); err != nil {
		return fmt.Errorf("transport: tcp write: %w", err)
	}

	return nil
}

// ReadLine reads one line, waiting at most timeout for the terminator.
func (p *TCPPort) ReadLine(timeout time.Duration) ([]byte, error) {
	if p.closed {
		return nil, ErrClosed
	}

	if err := p.conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return nil, fmt.Errorf("transport: set read deadline: %w", err)
	}

	line, err := p.reader.ReadBytes(Terminator)
	if len(line) > 0 && err != nil {
		// Keep the incomplete line so a later call can finish it.
		p.partial = append(p.partial, line...)
	}
	if err != nil {
		if errors.Is(err, os.ErrDeadlineExceeded) {
			return nil, ErrReadTimeout
		}

		return nil, fmt.Errorf("transport: tcp read: %w", err)
	}

	if len(p.partial) > 0 {
		line = append(p.partial, line...)
		p.partial = nil
	}

	return bytes.TrimRight(line, "\r\n"), nil
}

// Close closes the TCP connection.
func (p *TCPPort) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true

	return p.conn.Close()
}
