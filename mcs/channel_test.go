package mcs

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alba-controls/go-smaract/ascii"
	"github.com/alba-controls/go-smaract/logger"
	"github.com/alba-controls/go-smaract/transport"
)

func newTestChannel(m *transport.Mock, timeout time.Duration, route func(rep ascii.Reply)) *channel {
	return newChannel(m, timeout, logger.GetLogger(), route)
}

func mustCommand(t *testing.T, m ascii.Mnemonic, addr int, params ...int64) ascii.Command {
	t.Helper()
	cmd, err := ascii.NewCommand(m, addr, params...)
	require.NoError(t, err)

	return cmd
}

func TestChannelSend(t *testing.T) {
	require := require.New(t)

	t.Run("matched reply", func(t *testing.T) {
		m := transport.NewMock()
		m.Script(func(line string) []string {
			if line == ":GS0" {
				return []string{":S0,3"}
			}
			return nil
		})
		ch := newTestChannel(m, time.Second, nil)

		rep, err := ch.send(mustCommand(t, ascii.CmdGetStatus, 0))
		require.NoError(err)
		require.Equal(ascii.StatusHolding, rep.Status())
	})

	t.Run("busy while a request is outstanding", func(t *testing.T) {
		m := transport.NewMock() // no script: the first send never gets a reply
		ch := newTestChannel(m, 200*time.Millisecond, nil)

		var wg sync.WaitGroup
		firstErr := make(chan error, 1)
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := ch.send(mustCommand(t, ascii.CmdGetStatus, 0))
			firstErr <- err
		}()

		time.Sleep(50 * time.Millisecond)

		_, err := ch.send(mustCommand(t, ascii.CmdGetPosition, 0))
		require.ErrorIs(err, ErrBusy)

		wg.Wait()
		require.ErrorIs(<-firstErr, ErrReplyTimeout)

		// The timeout freed the slot: the next request must be accepted.
		m.Script(func(line string) []string {
			return []string{":S0,0"}
		})
		_, err = ch.send(mustCommand(t, ascii.CmdGetStatus, 0))
		require.NoError(err)
	})

	t.Run("garbage does not kill the pending request", func(t *testing.T) {
		m := transport.NewMock()
		m.PushLine("burst of line noise")
		m.PushLine(":s0,0") // lower-case mnemonic
		m.Script(func(line string) []string {
			return []string{":P0,50000"}
		})
		ch := newTestChannel(m, time.Second, nil)

		rep, err := ch.send(mustCommand(t, ascii.CmdGetPosition, 0))
		require.NoError(err)
		require.Equal(int64(50000), rep.Value(0))
	})

	t.Run("unmatched reply is discarded", func(t *testing.T) {
		m := transport.NewMock()
		m.PushLine(":P0,999") // stale reply from a timed-out request
		m.Script(func(line string) []string {
			return []string{":S0,0"}
		})
		ch := newTestChannel(m, time.Second, nil)

		rep, err := ch.send(mustCommand(t, ascii.CmdGetStatus, 0))
		require.NoError(err)
		require.Equal(ascii.StatusStopped, rep.Status())
	})

	t.Run("status report is routed, not matched", func(t *testing.T) {
		m := transport.NewMock()
		m.PushLine(":ES1,0")
		m.Script(func(line string) []string {
			return []string{":S0,4"}
		})

		var routed []ascii.Reply
		ch := newTestChannel(m, time.Second, func(rep ascii.Reply) {
			routed = append(routed, rep)
		})

		rep, err := ch.send(mustCommand(t, ascii.CmdGetStatus, 0))
		require.NoError(err)
		require.Equal(ascii.StatusTargeting, rep.Status())

		require.Len(routed, 1)
		require.Equal(1, routed[0].Addr())
		require.Equal(ascii.StatusStopped, routed[0].Status())
	})

	t.Run("controller-level error aborts a channel command", func(t *testing.T) {
		m := transport.NewMock()
		m.Script(func(line string) []string {
			return []string{":E-1,4"}
		})
		ch := newTestChannel(m, time.Second, nil)

		rep, err := ch.send(mustCommand(t, ascii.CmdGetStatus, 0))
		require.NoError(err)
		require.Equal(ascii.ReplyError, rep.Kind())
		require.Equal(ascii.ErrCodeParse, rep.ErrorCode())
	})

	t.Run("closed channel", func(t *testing.T) {
		m := transport.NewMock()
		ch := newTestChannel(m, time.Second, nil)
		ch.close()

		_, err := ch.send(mustCommand(t, ascii.CmdGetStatus, 0))
		require.ErrorIs(err, ErrClosed)
	})
}
