package mcs

import (
	"fmt"
	"time"

	"github.com/alba-controls/go-smaract/logger"
)

const (
	// DefaultReplyTimeout bounds the wait for a command reply.
	DefaultReplyTimeout = 3 * time.Second
	// MinReplyTimeout and MaxReplyTimeout bound WithReplyTimeout.
	MinReplyTimeout = 10 * time.Millisecond
	MaxReplyTimeout = 2 * time.Minute

	// DefaultMonitorInterval is the status polling period of Monitor.
	DefaultMonitorInterval = 100 * time.Millisecond
	// MinMonitorInterval bounds WithMonitorInterval.
	MinMonitorInterval = 10 * time.Millisecond
)

// Config holds the validated controller settings. Create it through
// NewController's options; a zero Config is not usable.
type Config struct {
	replyTimeout     time.Duration
	monitorInterval  time.Duration
	reportOnComplete bool
	logger           logger.Logger
}

func newConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		replyTimeout:    DefaultReplyTimeout,
		monitorInterval: DefaultMonitorInterval,
		logger:          logger.GetLogger(),
	}

	for _, opt := range opts {
		if err := opt.apply(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// ReplyTimeout returns the per-command reply timeout.
func (c *Config) ReplyTimeout() time.Duration { return c.replyTimeout }

// MonitorInterval returns the default status polling period.
func (c *Config) MonitorInterval() time.Duration { return c.monitorInterval }

// ReportOnComplete reports whether movement commands request an unsolicited
// completion report from the controller.
func (c *Config) ReportOnComplete() bool { return c.reportOnComplete }

// Logger returns the configured logger.
func (c *Config) Logger() logger.Logger { return c.logger }

// Option configures a Controller. Options are applied in order at
// construction time and validated immediately.
type Option interface {
	apply(cfg *Config) error
}

type optFunc func(cfg *Config) error

func (f optFunc) apply(cfg *Config) error { return f(cfg) }

// WithReplyTimeout sets how long a request waits for its reply before
// failing with ErrReplyTimeout. The timeout must be within
// [MinReplyTimeout, MaxReplyTimeout].
func WithReplyTimeout(timeout time.Duration) Option {
	return optFunc(func(cfg *Config) error {
		if timeout < MinReplyTimeout || timeout > MaxReplyTimeout {
			return fmt.Errorf("reply timeout %s out of range [%s, %s]", timeout, MinReplyTimeout, MaxReplyTimeout)
		}

		cfg.replyTimeout = timeout
		return nil
	})
}

// WithMonitorInterval sets the default polling period used by Monitor when
// it is started with a non-positive interval.
func WithMonitorInterval(interval time.Duration) Option {
	return optFunc(func(cfg *Config) error {
		if interval < MinMonitorInterval {
			return fmt.Errorf("monitor interval %s below minimum %s", interval, MinMonitorInterval)
		}

		cfg.monitorInterval = interval
		return nil
	})
}

// WithReportOnComplete makes Connect switch the controller to asynchronous
// communication mode, so movement completion is announced by an unsolicited
// event/status report instead of requiring the caller to poll.
func WithReportOnComplete(enabled bool) Option {
	return optFunc(func(cfg *Config) error {
		cfg.reportOnComplete = enabled
		return nil
	})
}

// WithLogger sets the logger used by the controller and its channel.
func WithLogger(l logger.Logger) Option {
	return optFunc(func(cfg *Config) error {
		if l == nil {
			return fmt.Errorf("logger cannot be nil")
		}

		cfg.logger = l
		return nil
	})
}
