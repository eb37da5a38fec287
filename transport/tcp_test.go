package transport

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTCPPortReadLine(t *testing.T) {
	require := require.New(t)

	client, server := net.Pipe()
	defer server.Close()

	port := NewTCP(client)
	defer port.Close()

	t.Run("whole line", func(t *testing.T) {
		go func() {
			_, _ = server.Write([]byte(":E0,0\n"))
		}()

		line, err := port.ReadLine(time.Second)
		require.NoError(err)
		require.Equal(":E0,0", string(line))
	})

	t.Run("strips CR", func(t *testing.T) {
		go func() {
			_, _ = server.Write([]byte(":P0,50000\r\n"))
		}()

		line, err := port.ReadLine(time.Second)
		require.NoError(err)
		require.Equal(":P0,50000", string(line))
	})

	t.Run("timeout without data", func(t *testing.T) {
		_, err := port.ReadLine(20 * time.Millisecond)
		require.ErrorIs(err, ErrReadTimeout)
	})

	t.Run("partial line survives a timeout", func(t *testing.T) {
		go func() {
			_, _ = server.Write([]byte(":S0"))
		}()
		time.Sleep(20 * time.Millisecond)

		_, err := port.ReadLine(20 * time.Millisecond)
		require.ErrorIs(err, ErrReadTimeout)

		go func() {
			_, _ = server.Write([]byte(",3\n"))
		}()

		line, err := port.ReadLine(time.Second)
		require.NoError(err)
		require.Equal(":S0,3", string(line))
	})
}

func TestTCPPortWriteLine(t *testing.T) {
	require := require.New(t)

	client, server := net.Pipe()
	defer server.Close()

	port := NewTCP(client)

	got := make(chan []byte, 1)
	go func() {
		buf := make([]byte, 64)
		n, _ := server.Read(buf)
		got <- buf[:n]
	}()

	require.NoError(port.WriteLine([]byte(":GS0")))
	require.Equal(":GS0\n", string(<-got))

	require.NoError(port.Close())
	require.ErrorIs(port.WriteLine([]byte(":GS0")), ErrClosed)

	_, err := port.ReadLine(time.Millisecond)
	require.ErrorIs(err, ErrClosed)

	// Close is idempotent.
	require.NoError(port.Close())
}

func TestMockTransport(t *testing.T) {
	require := require.New(t)

	m := NewMock()
	m.Script(func(line string) []string {
		if line == ":GS0" {
			return []string{":S0,0"}
		}

		return nil
	})

	require.NoError(m.WriteLine([]byte(":GS0")))

	line, err := m.ReadLine(time.Second)
	require.NoError(err)
	require.Equal(":S0,0", string(line))

	m.PushLine(":ES0,0")
	line, err = m.ReadLine(time.Second)
	require.NoError(err)
	require.Equal(":ES0,0", string(line))

	_, err = m.ReadLine(10 * time.Millisecond)
	require.ErrorIs(err, ErrReadTimeout)

	require.Equal([]string{":GS0"}, m.Writes())

	require.NoError(m.Close())
	require.ErrorIs(m.WriteLine([]byte(":GS0")), ErrClosed)
}
