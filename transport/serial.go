package transport

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/tarm/serial"
)

// pollInterval is the per-read timeout the serial port is opened with.
// tarm/serial fixes the read timeout at open time, so ReadLine polls in
// short slices and applies the caller's timeout across iterations.
const pollInterval = 50 * time.Millisecond

// DefaultBaudrate is the factory baudrate of the RS-232 interface.
const DefaultBaudrate = 9600

// SerialPort is a Transport over a local serial device.
type SerialPort struct {
	port   *serial.Port
	buf    bytes.Buffer // bytes read past the last terminator
	closed bool
}

var _ Transport = (*SerialPort)(nil)

// OpenSerial opens the serial device (e.g. "/dev/ttyUSB0", "COM3") at the
// given baudrate and returns it as a line-oriented Transport.
func OpenSerial(device string, baud int) (*SerialPort, error) {
	port, err := serial.OpenPort(&serial.Config{
		Name:        device,
		Baud:        baud,
		ReadTimeout: pollInterval,
	})
	if err != nil {
		return nil, fmt.Errorf("transport: open serial port %s: %w", device, err)
	}

	return &SerialPort{port: port}, nil
}

// WriteLine writes one command line followed by the terminator.
func (p *SerialPort) WriteLine(line []byte) error {
	if p.closed {
		return ErrClosed
	}

	out := make([]byte, 0, len(line)+1)
	out = append(out, line...)
	out = append(out, Terminator)

	if _, err := p.port.Write(out); err != nil {
		return fmt.Errorf("transport: serial write: %w", err)
	}

	return nil
}

// ReadLine reads until a terminator arrives or the timeout elapses. Bytes
// received past a terminator are retained for the next call.
func (p *SerialPort) ReadLine(timeout time.Duration) ([]byte, error) {
	if p.closed {
		return nil, ErrClosed
	}

	deadline := time.Now().Add(timeout)
	chunk := make([]byte, 256)

	for {
		if line, ok := p.takeLine(); ok {
			return line, nil
		}

		if !time.Now().Before(deadline) {
			return nil, ErrReadTimeout
		}

		n, err := p.port.Read(chunk)
		if n > 0 {
			p.buf.Write(chunk[:n])
			continue
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("transport: serial read: %w", err)
		}
		// n == 0: the port's poll timeout expired, loop until the deadline.
	}
}

// takeLine extracts one complete line from the receive buffer.
func (p *SerialPort) takeLine() ([]byte, bool) {
	data := p.buf.Bytes()
	idx := bytes.IndexByte(data, Terminator)
	if idx < 0 {
		return nil, false
	}

	line := make([]byte, idx)
	copy(line, data[:idx])
	p.buf.Next(idx + 1)

	return bytes.TrimRight(line, "\r"), true
}

// Close closes the serial device.
func (p *SerialPort) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true

	return p.port.Close()
}
