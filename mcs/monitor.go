package mcs

import (
	"context"
	"errors"
	"time"

	"github.com/alba-controls/go-smaract/ascii"
)

// StatusEvent is delivered to status handlers when a channel's status
// changes, either through an unsolicited event/status report or through a
// monitor poll.
type StatusEvent struct {
	Addr   int
	Status ascii.Status
}

// StatusHandler receives status events. Handlers run synchronously on the
// delivering goroutine and must not issue controller commands, the request
// slot may still be held.
type StatusHandler func(ev StatusEvent)

// AddStatusHandler registers handlers for status events. Handlers cannot be
// removed; register them before starting the monitor.
func (c *Controller) AddStatusHandler(handlers ...StatusHandler) {
	c.handlerMu.Lock()
	c.handlers = append(c.handlers, handlers...)
	c.handlerMu.Unlock()
}

func (c *Controller) dispatch(ev StatusEvent) {
	c.handlerMu.RLock()
	handlers := c.handlers
	c.handlerMu.RUnlock()

	for _, h := range handlers {
		h(ev)
	}
}

// Monitor polls the status of every registered axis at the given interval
// until ctx is done or the controller closes, delivering a StatusEvent on
// every change. A non-positive interval falls back to the configured
// monitor interval. Polls that collide with an application request are
// skipped silently.
//
// Monitor blocks; run it in its own goroutine. Only one monitor may run per
// controller.
func (c *Controller) Monitor(ctx context.Context, interval time.Duration) error {
	if !c.monitorOn.CompareAndSwap(false, true) {
		return ErrMonitorRunning
	}
	defer c.monitorOn.Store(false)

	if interval <= 0 {
		interval = c.cfg.MonitorInterval()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := make(map[int]ascii.Status)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		if c.closed.Load() {
			return ErrClosed
		}

		// Flush any queued unsolicited reports first so poll results do
		// not override fresher event reports.
		c.ch.drain()

		for _, axis := range c.Axes() {
			st, err := axis.Status()
			if err != nil {
				if errors.Is(err, ErrBusy) || errors.Is(err, ErrReplyTimeout) {
					continue
				}
				if errors.Is(err, ErrClosed) {
					return ErrClosed
				}

				c.logger.Warn("monitor poll failed", "channel", axis.Addr(), "error", err)
				continue
			}

			if prev, ok := last[axis.Addr()]; ok && prev == st {
				continue
			}
			last[axis.Addr()] = st
			c.dispatch(StatusEvent{Addr: axis.Addr(), Status: st})
		}
	}
}
