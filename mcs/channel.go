package mcs

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alba-controls/go-smaract/ascii"
	"github.com/alba-controls/go-smaract/logger"
	"github.com/alba-controls/go-smaract/transport"
)

// channel serializes request/reply traffic on one transport. It owns the
// single pending-request slot of the controller: a send either acquires the
// slot or fails fast with ErrBusy. Unsolicited event/status reports that
// arrive while a reply is awaited are handed to the route callback without
// disturbing the pending request.
type channel struct {
	tr           transport.Transport
	replyTimeout time.Duration
	logger       logger.Logger

	// route receives unsolicited event/status reports decoded while a
	// reply was awaited. Called from the sender's goroutine.
	route func(rep ascii.Reply)

	pending atomic.Bool
	closed  atomic.Bool
}

func newChannel(tr transport.Transport, replyTimeout time.Duration, l logger.Logger, route func(rep ascii.Reply)) *channel {
	return &channel{
		tr:           tr,
		replyTimeout: replyTimeout,
		logger:       l,
		route:        route,
	}
}

// send transmits cmd and blocks until the matching reply arrives or the
// reply timeout expires. Whatever the outcome, the pending slot is free
// again when send returns.
func (ch *channel) send(cmd ascii.Command) (ascii.Reply, error) {
	if ch.closed.Load() {
		return ascii.Reply{}, ErrClosed
	}

	line, err := cmd.Encode()
	if err != nil {
		return ascii.Reply{}, err
	}

	if !ch.pending.CompareAndSwap(false, true) {
		return ascii.Reply{}, ErrBusy
	}
	defer ch.pending.Store(false)

	if err := ch.tr.WriteLine(line); err != nil {
		if errors.Is(err, transport.ErrClosed) {
			return ascii.Reply{}, ErrClosed
		}

		return ascii.Reply{}, fmt.Errorf("mcs: write %s: %w", cmd, err)
	}

	deadline := time.Now().Add(ch.replyTimeout)
	for {
		remain := time.Until(deadline)
		if remain <= 0 {
			ch.logger.Warn("reply timeout", "cmd", cmd.String(), "timeout", ch.replyTimeout)
			return ascii.Reply{}, fmt.Errorf("%w: command %s", ErrReplyTimeout, cmd)
		}

		raw, err := ch.tr.ReadLine(remain)
		if err != nil {
			if errors.Is(err, transport.ErrReadTimeout) {
				ch.logger.Warn("reply timeout", "cmd", cmd.String(), "timeout", ch.replyTimeout)
				return ascii.Reply{}, fmt.Errorf("%w: command %s", ErrReplyTimeout, cmd)
			}
			if errors.Is(err, transport.ErrClosed) {
				return ascii.Reply{}, ErrClosed
			}

			return ascii.Reply{}, fmt.Errorf("mcs: read reply for %s: %w", cmd, err)
		}

		rep, err := ascii.Decode(raw)
		if err != nil {
			// Garbage on the line must not kill the pending request.
			ch.logger.Warn("dropping undecodable line", "line", string(raw), "error", err)
			continue
		}

		if rep.Kind() == ascii.ReplyStatusReport {
			if ch.route != nil {
				ch.route(rep)
			}
			continue
		}

		if !matches(cmd, rep) {
			ch.logger.Warn("discarding unmatched reply", "cmd", cmd.String(), "reply", rep.String())
			continue
		}

		return rep, nil
	}
}

// matches reports whether rep satisfies cmd. An error reply satisfies any
// command addressed to the same target; a controller-level error reply also
// aborts a channel command, the controller rejects malformed requests at
// address -1.
func matches(cmd ascii.Command, rep ascii.Reply) bool {
	if rep.Kind() == ascii.ReplyError {
		return rep.Addr() == cmd.Addr() || rep.Addr() == ascii.AddrController
	}

	return rep.Mnemonic() == cmd.ReplyMnemonic() && rep.Addr() == cmd.Addr()
}

// drain reads and routes any lines already buffered on the transport
// without sending. Used by the monitor between polls in asynchronous mode.
func (ch *channel) drain() {
	if ch.closed.Load() || !ch.pending.CompareAndSwap(false, true) {
		return
	}
	defer ch.pending.Store(false)

	for {
		raw, err := ch.tr.ReadLine(time.Millisecond)
		if err != nil {
			return
		}

		rep, err := ascii.Decode(raw)
		if err != nil {
			ch.logger.Warn("dropping undecodable line", "line", string(raw), "error", err)
			continue
		}

		if rep.Kind() == ascii.ReplyStatusReport {
			if ch.route != nil {
				ch.route(rep)
			}
			continue
		}

		ch.logger.Warn("discarding stray reply", "reply", rep.String())
	}
}

func (ch *channel) close() {
	ch.closed.Store(true)
}
