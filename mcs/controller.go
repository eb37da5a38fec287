package mcs

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/alba-controls/go-smaract/ascii"
	"github.com/alba-controls/go-smaract/logger"
	"github.com/alba-controls/go-smaract/transport"
)

// Controller is the facade over one MCS/SDC controller box. It owns the
// transport and the channel multiplexer, keeps the axis registry, and
// exposes the controller-level commands.
type Controller struct {
	cfg    *Config
	logger logger.Logger
	tr     transport.Transport
	ch     *channel

	axes  *xsync.MapOf[int, *Axis]
	mu    sync.Mutex // guards order
	order []int

	handlerMu sync.RWMutex
	handlers  []StatusHandler

	monitorOn atomic.Bool
	closed    atomic.Bool
}

// NewController wraps tr in a controller facade. The controller takes
// ownership of the transport and closes it in Close. No traffic is sent
// until Connect.
func NewController(tr transport.Transport, opts ...Option) (*Controller, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, fmt.Errorf("mcs: invalid option: %w", err)
	}

	c := &Controller{
		cfg:    cfg,
		logger: cfg.Logger(),
		tr:     tr,
		axes:   xsync.NewMapOf[int, *Axis](),
	}
	c.ch = newChannel(tr, cfg.ReplyTimeout(), c.logger, c.routeStatusReport)

	return c, nil
}

// Connect puts the controller into the communication mode the engine
// expects: synchronous by default, asynchronous when report-on-complete is
// enabled. It doubles as a liveness probe of the transport.
func (c *Controller) Connect() error {
	mode := ascii.CommModeSync
	if c.cfg.ReportOnComplete() {
		mode = ascii.CommModeAsync
	}

	if _, err := c.request(ascii.CmdSetCommMode, ascii.AddrController, int64(mode)); err != nil {
		return err
	}
	c.logger.Info("controller connected", "mode", mode)

	return nil
}

// Discover queries the channel count and each channel's sensor code, and
// rebuilds the axis registry from the answers. Channels with an unknown
// sensor code are skipped with a warning.
func (c *Controller) Discover() error {
	n, err := c.NumChannels()
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.order = nil
	c.mu.Unlock()
	c.axes.Clear()

	for addr := 0; addr < n; addr++ {
		rep, err := c.request(ascii.CmdGetSensorType, addr)
		if err != nil {
			return fmt.Errorf("mcs: discover channel %d: %w", addr, err)
		}

		sensor := ascii.SensorType(rep.Value(0))
		axis, err := newAxis(c, addr, sensor)
		if err != nil {
			c.logger.Warn("skipping channel with unknown sensor", "channel", addr, "sensor", int64(sensor))
			continue
		}

		c.axes.Store(addr, axis)
		c.mu.Lock()
		c.order = append(c.order, addr)
		c.mu.Unlock()
		c.logger.Info("discovered axis", "channel", addr, "sensor", sensor.String(), "kind", axis.Kind().String())
	}

	return nil
}

// AddAxis registers an axis at addr with the given sensor code without
// querying the controller. Useful for SDC units and fixed setups where
// discovery is not wanted.
func (c *Controller) AddAxis(addr int, sensor ascii.SensorType) (*Axis, error) {
	if addr < 0 {
		return nil, fmt.Errorf("%w: address %d", ErrUnknownAxis, addr)
	}

	axis, err := newAxis(c, addr, sensor)
	if err != nil {
		return nil, err
	}

	if _, loaded := c.axes.LoadOrStore(addr, axis); loaded {
		return nil, fmt.Errorf("%w: address %d", ErrDuplicateAxis, addr)
	}
	c.mu.Lock()
	c.order = append(c.order, addr)
	c.mu.Unlock()

	return axis, nil
}

// Axis returns the registered axis at addr.
func (c *Controller) Axis(addr int) (*Axis, error) {
	axis, ok := c.axes.Load(addr)
	if !ok {
		return nil, fmt.Errorf("%w: address %d", ErrUnknownAxis, addr)
	}

	return axis, nil
}

// Axes returns the registered axes in registration order.
func (c *Controller) Axes() []*Axis {
	c.mu.Lock()
	order := make([]int, len(c.order))
	copy(order, c.order)
	c.mu.Unlock()

	axes := make([]*Axis, 0, len(order))
	for _, addr := range order {
		if axis, ok := c.axes.Load(addr); ok {
			axes = append(axes, axis)
		}
	}

	return axes
}

// InterfaceVersion queries the controller firmware interface version.
func (c *Controller) InterfaceVersion() (string, error) {
	rep, err := c.request(ascii.CmdGetInterfaceVersion, ascii.AddrController)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%d.%d.%d", rep.Value(0), rep.Value(1), rep.Value(2)), nil
}

// SystemID queries the unique system identifier of the controller.
func (c *Controller) SystemID() (int64, error) {
	rep, err := c.request(ascii.CmdGetSystemID, ascii.AddrController)
	if err != nil {
		return 0, err
	}

	return rep.Value(0), nil
}

// NumChannels queries how many positioner channels the controller has.
func (c *Controller) NumChannels() (int, error) {
	rep, err := c.request(ascii.CmdGetNumChannels, ascii.AddrController)
	if err != nil {
		return 0, err
	}

	return int(rep.Value(0)), nil
}

// CommunicationMode queries the current communication mode.
func (c *Controller) CommunicationMode() (ascii.CommMode, error) {
	rep, err := c.request(ascii.CmdGetCommMode, ascii.AddrController)
	if err != nil {
		return 0, err
	}

	return ascii.CommMode(rep.Value(0)), nil
}

// SetSensorMode sets the controller-wide sensor operation mode. Power-save
// reduces sensor heat input on long holds.
func (c *Controller) SetSensorMode(mode ascii.SensorMode) error {
	if mode < ascii.SensorDisabled || mode > ascii.SensorPowerSave {
		return fmt.Errorf("%w: sensor mode %d", ascii.ErrParamRange, int64(mode))
	}

	_, err := c.request(ascii.CmdSetSensorMode, ascii.AddrController, int64(mode))
	return err
}

// SensorMode queries the controller-wide sensor operation mode.
func (c *Controller) SensorMode() (ascii.SensorMode, error) {
	rep, err := c.request(ascii.CmdGetSensorMode, ascii.AddrController)
	if err != nil {
		return 0, err
	}

	return ascii.SensorMode(rep.Value(0)), nil
}

// KeepAlive arms the controller's communication watchdog: if no command
// arrives within delay, all channels stop. Zero disables the watchdog.
func (c *Controller) KeepAlive(delay time.Duration) error {
	ms := delay.Milliseconds()
	if err := ascii.CheckKeepAliveDelay(ms); err != nil {
		return err
	}

	_, err := c.request(ascii.CmdKeepAlive, ascii.AddrController, ms)
	return err
}

// Reset performs a controller power-on reset. All axes fall back to their
// power-up state.
func (c *Controller) Reset() error {
	if _, err := c.request(ascii.CmdReset, ascii.AddrController); err != nil {
		return err
	}

	for _, axis := range c.Axes() {
		axis.mu.Lock()
		axis.cal = Uncalibrated
		axis.ref = NotReferenced
		axis.motion = MotionStopped
		axis.lastErr = ascii.ErrCodeNone
		axis.mu.Unlock()
	}

	return nil
}

// SetBaudrate asks the controller to switch its RS-232 baudrate and returns
// the rate it settled on. The caller must reopen the serial transport at
// the returned rate.
func (c *Controller) SetBaudrate(baud int64) (int64, error) {
	if err := ascii.CheckBaudrate(baud); err != nil {
		return 0, err
	}

	rep, err := c.request(ascii.CmdSetBaudrate, ascii.AddrController, baud)
	if err != nil {
		return 0, err
	}

	return rep.Value(0), nil
}

// Close shuts the controller down and closes the transport. Safe to call
// more than once.
func (c *Controller) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}

	c.ch.close()
	return c.tr.Close()
}

// request builds, validates, sends the command, and converts a non-zero
// error reply into a ControllerError recorded against the addressed axis.
func (c *Controller) request(m ascii.Mnemonic, addr int, params ...int64) (ascii.Reply, error) {
	cmd, err := ascii.NewCommand(m, addr, params...)
	if err != nil {
		return ascii.Reply{}, err
	}

	rep, err := c.ch.send(cmd)
	if err != nil {
		return ascii.Reply{}, err
	}

	if rep.Kind() == ascii.ReplyError && !rep.IsAck() {
		code := rep.ErrorCode()
		if axis, ok := c.axes.Load(rep.Addr()); ok {
			axis.recordError(code)
		}
		c.logger.Warn("controller reported error", "cmd", cmd.String(), "addr", rep.Addr(), "code", int64(code), "meaning", code.String())

		return ascii.Reply{}, &ControllerError{Addr: rep.Addr(), Code: code}
	}

	return rep, nil
}

// routeStatusReport handles an unsolicited event/status report decoded by
// the channel while a reply was awaited.
func (c *Controller) routeStatusReport(rep ascii.Reply) {
	axis, ok := c.axes.Load(rep.Addr())
	if !ok {
		c.logger.Warn("status report for unknown channel", "channel", rep.Addr(), "status", int64(rep.Status()))
		return
	}

	st := rep.Status()
	axis.applyStatus(st)
	c.dispatch(StatusEvent{Addr: rep.Addr(), Status: st})
}
