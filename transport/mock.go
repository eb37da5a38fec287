package transport

import (
	"sync"
	"time"

	"github.com/alba-controls/go-smaract/internal/pool"
)

// Mock is an in-memory Transport for tests. Written lines are recorded and
// optionally answered by a script function; incoming lines can also be
// injected directly with PushLine to simulate unsolicited reports or
// garbage on the wire.
//
// Unlike the real transports, Mock is safe for concurrent use so tests can
// exercise the multiplexer's exclusivity guarantees.
type Mock struct {
	mu     sync.Mutex
	wrote  []string
	script func(line string) []string
	lines  chan []byte
	closed bool
}

var _ Transport = (*Mock)(nil)

// NewMock creates a Mock with room for queued incoming lines.
func NewMock() *Mock {
	return &Mock{lines: make(chan []byte, 64)}
}

// Script installs a function invoked on every WriteLine; the lines it
// returns are queued as incoming replies.
func (m *Mock) Script(fn func(line string) []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = fn
}

// PushLine queues one incoming line as if the controller had sent it.
func (m *Mock) PushLine(line string) {
	m.lines <- []byte(line)
}

// Writes returns all lines written so far, without terminators.
func (m *Mock) Writes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, len(m.wrote))
	copy(out, m.wrote)

	return out
}

func (m *Mock) WriteLine(line []byte) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	m.wrote = append(m.wrote, string(line))
	script := m.script
	m.mu.Unlock()

	if script != nil {
		for _, reply := range script(string(line)) {
			m.lines <- []byte(reply)
		}
	}

	return nil
}

func (m *Mock) ReadLine(timeout time.Duration) ([]byte, error) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil, ErrClosed
	}
	m.mu.Unlock()

	timer := pool.GetTimer(timeout)
	defer pool.PutTimer(timer)

	select {
	case line, ok := <-m.lines:
		if !ok {
			return nil, ErrClosed
		}

		return line, nil
	case <-timer.C:
		return nil, ErrReadTimeout
	}
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true

	return nil
}
