package mcs

import (
	"fmt"
	"sync"
	"time"

	"github.com/alba-controls/go-smaract/ascii"
)

// Axis is one positioner channel of a controller. It validates motion
// preconditions locally before emitting any command, tracks the channel's
// calibration, reference and motion state, and caches the last readings.
//
// All methods are safe for concurrent use, but the controller accepts only
// one outstanding request, so concurrent commands on sibling axes fail with
// ErrBusy.
//
// Linear positions are nanometers, angles micro-degrees, hold times are
// capped at 60 s by the controller.
type Axis struct {
	ctrl   *Controller
	addr   int
	sensor ascii.SensorType
	kind   AxisKind

	mu       sync.RWMutex
	cal      CalibrationState
	ref      ReferenceState
	motion   MotionState
	position int64 // [nm], last reading
	angle    int64 // [udeg], combined, last reading
	lastErr  ascii.ErrCode
}

// AxisState is a consistent snapshot of an axis' tracked state.
type AxisState struct {
	Calibration CalibrationState
	Reference   ReferenceState
	Motion      MotionState
	LastError   ascii.ErrCode
}

func newAxis(ctrl *Controller, addr int, sensor ascii.SensorType) (*Axis, error) {
	a := &Axis{ctrl: ctrl, addr: addr, sensor: sensor}
	switch {
	case sensor.IsLinear():
		a.kind = KindLinear
	case sensor.IsRotary():
		a.kind = KindRotary
	default:
		return nil, fmt.Errorf("%w: %d on channel %d", ErrUnknownSensor, int64(sensor), addr)
	}

	return a, nil
}

// Addr returns the channel address of the axis.
func (a *Axis) Addr() int { return a.addr }

// Sensor returns the positioner sensor code of the axis.
func (a *Axis) Sensor() ascii.SensorType { return a.sensor }

// Kind reports whether the axis is linear or rotary.
func (a *Axis) Kind() AxisKind { return a.kind }

// State returns a snapshot of the tracked axis state.
func (a *Axis) State() AxisState {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return AxisState{
		Calibration: a.cal,
		Reference:   a.ref,
		Motion:      a.motion,
		LastError:   a.lastErr,
	}
}

// Calibrate starts the sensor calibration routine. The axis must not be
// moving; calibration completes asynchronously and is confirmed by the next
// stopped status.
func (a *Axis) Calibrate() error {
	a.mu.RLock()
	var reason error
	switch {
	case a.cal == Calibrating:
		reason = ErrCalibrationRunning
	case a.ref == Referencing:
		reason = ErrReferencingRunning
	case a.motion == MotionMoving:
		reason = ErrAxisMoving
	}
	a.mu.RUnlock()
	if reason != nil {
		return fmt.Errorf("%w (channel %d)", reason, a.addr)
	}

	if _, err := a.ctrl.request(ascii.CmdCalibrate, a.addr); err != nil {
		return err
	}

	a.mu.Lock()
	a.cal = Calibrating
	a.motion = MotionMoving
	a.mu.Unlock()

	return nil
}

// FindReferenceMark starts a reference mark search with the given strategy.
// holdTime keeps the axis actively held at the mark after it is found;
// autoZero resets the position to zero at the mark. Requires a calibrated,
// non-moving axis.
func (a *Axis) FindReferenceMark(dir ascii.Direction, holdTime time.Duration, autoZero bool) error {
	ht, err := holdTimeMillis(holdTime)
	if err != nil {
		return err
	}
	if dir < ascii.DirForward || dir > ascii.DirBackwardForwardEnd {
		return fmt.Errorf("%w: direction %d", ascii.ErrParamRange, int64(dir))
	}

	a.mu.RLock()
	var reason error
	switch {
	case a.cal != Calibrated:
		reason = ErrNotCalibrated
	case a.ref == Referencing:
		reason = ErrReferencingRunning
	case a.motion == MotionMoving:
		reason = ErrAxisMoving
	}
	a.mu.RUnlock()
	if reason != nil {
		return fmt.Errorf("%w (channel %d)", reason, a.addr)
	}

	az := int64(0)
	if autoZero {
		az = 1
	}
	if _, err := a.ctrl.request(ascii.CmdFindReferenceMark, a.addr, int64(dir), ht, az); err != nil {
		return err
	}

	a.mu.Lock()
	a.ref = Referencing
	a.motion = MotionMoving
	a.mu.Unlock()

	return nil
}

// MoveAbsolute commands a closed-loop move of a linear axis to position
// [nm]. holdTime keeps the target actively held afterwards. Requires a
// referenced axis that is stopped or holding.
func (a *Axis) MoveAbsolute(position int64, holdTime time.Duration) error {
	if err := a.checkClosedLoopMove(KindLinear); err != nil {
		return err
	}
	ht, err := holdTimeMillis(holdTime)
	if err != nil {
		return err
	}

	if _, err := a.ctrl.request(ascii.CmdMovePositionAbs, a.addr, position, ht); err != nil {
		return err
	}
	a.setMoving()

	return nil
}

// MoveRelative commands a closed-loop move of a linear axis by delta [nm]
// from the current target position.
func (a *Axis) MoveRelative(delta int64, holdTime time.Duration) error {
	if err := a.checkClosedLoopMove(KindLinear); err != nil {
		return err
	}
	ht, err := holdTimeMillis(holdTime)
	if err != nil {
		return err
	}

	if _, err := a.ctrl.request(ascii.CmdMovePositionRel, a.addr, delta, ht); err != nil {
		return err
	}
	a.setMoving()

	return nil
}

// MoveAngleAbsolute commands a closed-loop move of a rotary axis to the
// combined angle theta [udeg]. Negative values and values beyond a full
// turn are folded into the wire (angle, revolution) pair.
func (a *Axis) MoveAngleAbsolute(theta int64, holdTime time.Duration) error {
	if err := a.checkClosedLoopMove(KindRotary); err != nil {
		return err
	}
	ht, err := holdTimeMillis(holdTime)
	if err != nil {
		return err
	}
	angle, rev, err := ascii.SplitAngle(theta)
	if err != nil {
		return err
	}

	if _, err := a.ctrl.request(ascii.CmdMoveAngleAbs, a.addr, angle, rev, ht); err != nil {
		return err
	}
	a.setMoving()

	return nil
}

// MoveAngleRelative commands a closed-loop move of a rotary axis by the
// combined angle delta [udeg].
func (a *Axis) MoveAngleRelative(delta int64, holdTime time.Duration) error {
	if err := a.checkClosedLoopMove(KindRotary); err != nil {
		return err
	}
	ht, err := holdTimeMillis(holdTime)
	if err != nil {
		return err
	}
	angle, rev, err := ascii.SplitAngle(delta)
	if err != nil {
		return err
	}

	if _, err := a.ctrl.request(ascii.CmdMoveAngleRel, a.addr, angle, rev, ht); err != nil {
		return err
	}
	a.setMoving()

	return nil
}

// MoveStep commands an open-loop burst of steps with the given amplitude
// (12-bit, 0-100 V) and frequency [Hz]. Negative steps move backward. Open
// loop needs no reference, only a non-moving axis.
func (a *Axis) MoveStep(steps, amplitude, frequency int64) error {
	if err := ascii.CheckSteps(steps); err != nil {
		return err
	}
	if err := ascii.CheckAmplitude(amplitude); err != nil {
		return err
	}
	if err := ascii.CheckFrequency(frequency); err != nil {
		return err
	}

	a.mu.RLock()
	var reason error
	switch {
	case a.cal == Calibrating:
		reason = ErrCalibrationRunning
	case a.ref == Referencing:
		reason = ErrReferencingRunning
	case a.motion == MotionMoving:
		reason = ErrAxisMoving
	}
	a.mu.RUnlock()
	if reason != nil {
		return fmt.Errorf("%w (channel %d)", reason, a.addr)
	}

	if _, err := a.ctrl.request(ascii.CmdMoveStep, a.addr, steps, amplitude, frequency); err != nil {
		return err
	}
	a.setMoving()

	return nil
}

// Stop halts any ongoing movement or hold. Stopping during an unfinished
// calibration or reference search aborts it and drops the corresponding
// state back.
func (a *Axis) Stop() error {
	if _, err := a.ctrl.request(ascii.CmdStop, a.addr); err != nil {
		return err
	}

	a.mu.Lock()
	if a.cal == Calibrating {
		a.cal = Uncalibrated
	}
	if a.ref == Referencing {
		a.ref = NotReferenced
	}
	a.motion = MotionStopped
	a.mu.Unlock()

	return nil
}

// Position queries the current position [nm] of a linear axis.
func (a *Axis) Position() (int64, error) {
	if a.kind != KindLinear {
		return 0, fmt.Errorf("%w (channel %d)", ErrNotLinear, a.addr)
	}

	rep, err := a.ctrl.request(ascii.CmdGetPosition, a.addr)
	if err != nil {
		return 0, err
	}

	pos := rep.Value(0)
	a.mu.Lock()
	a.position = pos
	a.mu.Unlock()

	return pos, nil
}

// Angle queries the current combined angle [udeg] of a rotary axis.
func (a *Axis) Angle() (int64, error) {
	if a.kind != KindRotary {
		return 0, fmt.Errorf("%w (channel %d)", ErrNotRotary, a.addr)
	}

	rep, err := a.ctrl.request(ascii.CmdGetAngle, a.addr)
	if err != nil {
		return 0, err
	}

	theta, err := ascii.CombineAngle(rep.Value(0), rep.Value(1))
	if err != nil {
		return 0, fmt.Errorf("mcs: channel %d angle reply: %w", a.addr, err)
	}

	a.mu.Lock()
	a.angle = theta
	a.mu.Unlock()

	return theta, nil
}

// Status queries the channel status and folds it into the tracked state.
func (a *Axis) Status() (ascii.Status, error) {
	rep, err := a.ctrl.request(ascii.CmdGetStatus, a.addr)
	if err != nil {
		return 0, err
	}

	st := rep.Status()
	a.applyStatus(st)

	return st, nil
}

// PhysicalPositionKnown queries whether the controller knows the physical
// position of the axis, and synchronizes the reference state with the
// answer.
func (a *Axis) PhysicalPositionKnown() (bool, error) {
	rep, err := a.ctrl.request(ascii.CmdGetPhysPosKnown, a.addr)
	if err != nil {
		return false, err
	}

	known := rep.Value(0) != 0
	a.mu.Lock()
	if known {
		if a.ref != Referencing {
			a.ref = Referenced
		}
	} else if a.ref == Referenced {
		a.ref = NotReferenced
	}
	a.mu.Unlock()

	return known, nil
}

// SetPosition defines the current physical position of a linear axis to be
// position [nm]. The axis counts as referenced afterwards.
func (a *Axis) SetPosition(position int64) error {
	if a.kind != KindLinear {
		return fmt.Errorf("%w (channel %d)", ErrNotLinear, a.addr)
	}

	if _, err := a.ctrl.request(ascii.CmdSetPosition, a.addr, position); err != nil {
		return err
	}

	a.mu.Lock()
	a.position = position
	if a.ref != Referencing {
		a.ref = Referenced
	}
	a.mu.Unlock()

	return nil
}

// SetClosedLoopVelocity sets the closed-loop speed limit, nm/s for linear
// and udeg/s for rotary axes. Zero disables speed control.
func (a *Axis) SetClosedLoopVelocity(velocity int64) error {
	if err := ascii.CheckVelocity(velocity); err != nil {
		return err
	}

	_, err := a.ctrl.request(ascii.CmdSetClosedLoopVel, a.addr, velocity)
	return err
}

// ClosedLoopVelocity queries the closed-loop speed limit.
func (a *Axis) ClosedLoopVelocity() (int64, error) {
	rep, err := a.ctrl.request(ascii.CmdGetClosedLoopVel, a.addr)
	if err != nil {
		return 0, err
	}

	return rep.Value(0), nil
}

// SetClosedLoopAcceleration sets the closed-loop acceleration limit, um/s^2
// for linear and mdeg/s^2 for rotary axes. Zero disables acceleration
// control.
func (a *Axis) SetClosedLoopAcceleration(acceleration int64) error {
	if err := ascii.CheckAcceleration(acceleration); err != nil {
		return err
	}

	_, err := a.ctrl.request(ascii.CmdSetClosedLoopAcc, a.addr, acceleration)
	return err
}

// ClosedLoopAcceleration queries the closed-loop acceleration limit.
func (a *Axis) ClosedLoopAcceleration() (int64, error) {
	rep, err := a.ctrl.request(ascii.CmdGetClosedLoopAcc, a.addr)
	if err != nil {
		return 0, err
	}

	return rep.Value(0), nil
}

// SetPositionLimit restricts the travel range of a linear axis to
// [min, max] nm. Equal values disable the limit.
func (a *Axis) SetPositionLimit(min, max int64) error {
	if a.kind != KindLinear {
		return fmt.Errorf("%w (channel %d)", ErrNotLinear, a.addr)
	}
	if min > max {
		return fmt.Errorf("%w: position limit min %d > max %d", ascii.ErrParamRange, min, max)
	}

	_, err := a.ctrl.request(ascii.CmdSetPositionLimit, a.addr, min, max)
	return err
}

// PositionLimit queries the travel range limit of a linear axis.
func (a *Axis) PositionLimit() (min, max int64, err error) {
	if a.kind != KindLinear {
		return 0, 0, fmt.Errorf("%w (channel %d)", ErrNotLinear, a.addr)
	}

	rep, err := a.ctrl.request(ascii.CmdGetPositionLimit, a.addr)
	if err != nil {
		return 0, 0, err
	}

	return rep.Value(0), rep.Value(1), nil
}

// SetAngleLimit restricts the travel range of a rotary axis to the combined
// angles [minTheta, maxTheta] udeg. Equal values disable the limit.
func (a *Axis) SetAngleLimit(minTheta, maxTheta int64) error {
	if a.kind != KindRotary {
		return fmt.Errorf("%w (channel %d)", ErrNotRotary, a.addr)
	}
	if minTheta > maxTheta {
		return fmt.Errorf("%w: angle limit min %d > max %d", ascii.ErrParamRange, minTheta, maxTheta)
	}

	minAngle, minRev, err := ascii.SplitAngle(minTheta)
	if err != nil {
		return err
	}
	maxAngle, maxRev, err := ascii.SplitAngle(maxTheta)
	if err != nil {
		return err
	}

	_, err = a.ctrl.request(ascii.CmdSetAngleLimit, a.addr, minAngle, minRev, maxAngle, maxRev)
	return err
}

// AngleLimit queries the travel range limit of a rotary axis as combined
// angles [udeg].
func (a *Axis) AngleLimit() (minTheta, maxTheta int64, err error) {
	if a.kind != KindRotary {
		return 0, 0, fmt.Errorf("%w (channel %d)", ErrNotRotary, a.addr)
	}

	rep, err := a.ctrl.request(ascii.CmdGetAngleLimit, a.addr)
	if err != nil {
		return 0, 0, err
	}

	minTheta, err = ascii.CombineAngle(rep.Value(0), rep.Value(1))
	if err != nil {
		return 0, 0, fmt.Errorf("mcs: channel %d angle limit reply: %w", a.addr, err)
	}
	maxTheta, err = ascii.CombineAngle(rep.Value(2), rep.Value(3))
	if err != nil {
		return 0, 0, fmt.Errorf("mcs: channel %d angle limit reply: %w", a.addr, err)
	}

	return minTheta, maxTheta, nil
}

// SetSafeDirection sets the side on which an end-stop referencing strategy
// expects the mechanical end stop.
func (a *Axis) SetSafeDirection(dir ascii.Direction) error {
	if dir != ascii.DirForward && dir != ascii.DirBackward {
		return fmt.Errorf("%w: safe direction %d", ascii.ErrParamRange, int64(dir))
	}

	_, err := a.ctrl.request(ascii.CmdSetSafeDirection, a.addr, int64(dir))
	return err
}

// SafeDirection queries the configured safe direction.
func (a *Axis) SafeDirection() (ascii.Direction, error) {
	rep, err := a.ctrl.request(ascii.CmdGetSafeDirection, a.addr)
	if err != nil {
		return 0, err
	}

	return ascii.Direction(rep.Value(0)), nil
}

// SetReportOnComplete enables or disables unsolicited completion reports
// for this channel. Effective only in asynchronous communication mode.
func (a *Axis) SetReportOnComplete(enabled bool) error {
	v := int64(0)
	if enabled {
		v = 1
	}

	_, err := a.ctrl.request(ascii.CmdSetReportOnComplete, a.addr, v)
	return err
}

// checkClosedLoopMove validates the common preconditions of closed-loop
// movement commands.
func (a *Axis) checkClosedLoopMove(kind AxisKind) error {
	if a.kind != kind {
		if kind == KindLinear {
			return fmt.Errorf("%w (channel %d)", ErrNotLinear, a.addr)
		}
		return fmt.Errorf("%w (channel %d)", ErrNotRotary, a.addr)
	}

	a.mu.RLock()
	var reason error
	switch {
	case a.cal != Calibrated:
		reason = ErrNotCalibrated
	case a.ref == Referencing:
		reason = ErrReferencingRunning
	case a.ref != Referenced:
		reason = ErrNotReferenced
	case a.motion == MotionMoving:
		reason = ErrAxisMoving
	}
	a.mu.RUnlock()
	if reason != nil {
		return fmt.Errorf("%w (channel %d)", reason, a.addr)
	}

	return nil
}

func (a *Axis) setMoving() {
	a.mu.Lock()
	a.motion = MotionMoving
	a.mu.Unlock()
}

// applyStatus folds a controller-reported channel status into the tracked
// state. A stopped or holding status also completes an ongoing calibration
// or reference search.
func (a *Axis) applyStatus(st ascii.Status) {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch st {
	case ascii.StatusStopped:
		a.finishActivity(MotionStopped)
	case ascii.StatusHolding:
		a.finishActivity(MotionHolding)
	case ascii.StatusCalibrating:
		a.cal = Calibrating
		a.motion = MotionMoving
	case ascii.StatusFindingReference:
		a.ref = Referencing
		a.motion = MotionMoving
	case ascii.StatusLocked:
		a.motion = MotionStopped
	default:
		if st.IsActive() {
			a.motion = MotionMoving
		}
	}
}

// finishActivity is called with a.mu held when the channel reports that it
// came to rest.
func (a *Axis) finishActivity(m MotionState) {
	if a.cal == Calibrating {
		a.cal = Calibrated
	}
	if a.ref == Referencing {
		a.ref = Referenced
	}
	a.motion = m
}

// recordError notes a controller-reported error against the axis and
// resolves the states the failure invalidates.
func (a *Axis) recordError(code ascii.ErrCode) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.lastErr = code

	switch code {
	case ascii.ErrCodeNoReferenceMark:
		if a.ref == Referencing {
			a.ref = NotReferenced
		}
		a.motion = MotionStopped
	case ascii.ErrCodeNoSensorPresent, ascii.ErrCodeSensorDisabled, ascii.ErrCodeWrongSensorType:
		if a.cal == Calibrating {
			a.cal = Uncalibrated
		}
		a.motion = MotionStopped
	case ascii.ErrCodeEndStopReached, ascii.ErrCodeMovementLocked, ascii.ErrCodeRangeLimitReached:
		if a.motion == MotionMoving {
			a.motion = MotionStopped
		}
	}
}

func holdTimeMillis(holdTime time.Duration) (int64, error) {
	ht := holdTime.Milliseconds()
	if err := ascii.CheckHoldTime(ht); err != nil {
		return 0, err
	}

	return ht, nil
}
