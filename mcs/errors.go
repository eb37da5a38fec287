package mcs

import (
	"errors"
	"fmt"

	"github.com/alba-controls/go-smaract/ascii"
)

var (
	// ErrBusy indicates that a request was attempted while another one is
	// outstanding on the same controller. The caller may retry after the
	// outstanding request completes; the engine never queues or retries on
	// its own.
	ErrBusy = errors.New("mcs: another request is outstanding on this controller")

	// ErrReplyTimeout indicates that no matching reply arrived within the
	// configured reply timeout. The pending-request slot is cleared, so the
	// next request on the controller is accepted.
	ErrReplyTimeout = errors.New("mcs: reply timeout")

	// ErrClosed indicates an operation on a closed controller.
	ErrClosed = errors.New("mcs: controller closed")

	// ErrUnknownAxis indicates a lookup for a channel address that was never
	// discovered or registered.
	ErrUnknownAxis = errors.New("mcs: unknown axis address")

	// ErrDuplicateAxis indicates a second registration of the same channel
	// address.
	ErrDuplicateAxis = errors.New("mcs: axis address already registered")

	// ErrUnknownSensor indicates a sensor code that is neither a known
	// linear nor a known rotary positioner.
	ErrUnknownSensor = errors.New("mcs: unknown sensor code")

	// ErrNotLinear and ErrNotRotary reject operations on the wrong axis kind.
	ErrNotLinear = errors.New("mcs: operation requires a linear axis")
	ErrNotRotary = errors.New("mcs: operation requires a rotary axis")

	// ErrMonitorRunning indicates a second Monitor call on the same controller.
	ErrMonitorRunning = errors.New("mcs: monitor already running")
)

// ErrInvalidTransition is the base error for operations requested while the
// axis precondition does not hold. The specific reason wraps it, so both
// errors.Is(err, ErrInvalidTransition) and errors.Is(err, ErrNotReferenced)
// match. An invalid transition produces no transport traffic.
var (
	ErrInvalidTransition = errors.New("mcs: operation not allowed in current axis state")

	ErrNotCalibrated      = fmt.Errorf("%w: axis is not calibrated", ErrInvalidTransition)
	ErrNotReferenced      = fmt.Errorf("%w: axis is not referenced", ErrInvalidTransition)
	ErrAxisMoving         = fmt.Errorf("%w: axis is moving", ErrInvalidTransition)
	ErrCalibrationRunning = fmt.Errorf("%w: calibration in progress", ErrInvalidTransition)
	ErrReferencingRunning = fmt.Errorf("%w: referencing in progress", ErrInvalidTransition)
)

// ControllerError is a non-zero error code reported by the controller for a
// well-formed request. It is recorded as the addressed axis' last error and
// returned to the caller.
type ControllerError struct {
	Addr int
	Code ascii.ErrCode
}

func (e *ControllerError) Error() string {
	if e.Addr == ascii.AddrController {
		return fmt.Sprintf("mcs: controller error %d (%s)", int64(e.Code), e.Code)
	}

	return fmt.Sprintf("mcs: controller error %d (%s) on channel %d", int64(e.Code), e.Code, e.Addr)
}
