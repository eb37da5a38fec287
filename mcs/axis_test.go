package mcs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alba-controls/go-smaract/ascii"
	"github.com/alba-controls/go-smaract/transport"
)

// scriptedController builds a controller over a scripted mock transport
// with one linear axis on channel 0 and one rotary axis on channel 1.
func scriptedController(t *testing.T, script func(line string) []string) (*Controller, *transport.Mock, *Axis, *Axis) {
	t.Helper()
	require := require.New(t)

	m := transport.NewMock()
	m.Script(script)

	ctrl, err := NewController(m, WithReplyTimeout(500*time.Millisecond))
	require.NoError(err)
	t.Cleanup(func() { _ = ctrl.Close() })

	linear, err := ctrl.AddAxis(0, 1) // sensor S
	require.NoError(err)
	rotary, err := ctrl.AddAxis(1, 2) // sensor SR
	require.NoError(err)

	return ctrl, m, linear, rotary
}

func TestAxisLifecycle(t *testing.T) {
	require := require.New(t)

	replies := map[string][]string{
		":CS0":           {":E0,0"},
		":FRM0,2,1000,1": {":E0,0"},
		":MPA0,50000,0":  {":E0,0"},
		":GS0":           {":S0,0"},
		":GP0":           {":P0,50000"},
	}
	_, m, axis, _ := scriptedController(t, func(line string) []string {
		return replies[line]
	})

	t.Run("closed-loop move before referencing is rejected locally", func(t *testing.T) {
		wrote := len(m.Writes())

		err := axis.MoveAbsolute(50000, 0)
		require.ErrorIs(err, ErrInvalidTransition)
		require.ErrorIs(err, ErrNotCalibrated)
		require.Len(m.Writes(), wrote) // nothing hit the wire
	})

	t.Run("calibrate", func(t *testing.T) {
		require.NoError(axis.Calibrate())
		require.Equal(Calibrating, axis.State().Calibration)
		require.Equal(MotionMoving, axis.State().Motion)

		// A second calibrate while one runs is rejected locally.
		err := axis.Calibrate()
		require.ErrorIs(err, ErrCalibrationRunning)

		// The stopped status completes the calibration.
		st, err := axis.Status()
		require.NoError(err)
		require.Equal(ascii.StatusStopped, st)
		require.Equal(Calibrated, axis.State().Calibration)
		require.Equal(MotionStopped, axis.State().Motion)
	})

	t.Run("find reference mark", func(t *testing.T) {
		err := axis.FindReferenceMark(ascii.DirForwardBackward, time.Second, true)
		require.NoError(err)
		require.Equal(Referencing, axis.State().Reference)

		st, err := axis.Status()
		require.NoError(err)
		require.Equal(ascii.StatusStopped, st)
		require.Equal(Referenced, axis.State().Reference)
	})

	t.Run("move absolute and read back", func(t *testing.T) {
		require.NoError(axis.MoveAbsolute(50000, 0))
		require.Equal(MotionMoving, axis.State().Motion)

		// A second move while the first runs is rejected locally.
		err := axis.MoveAbsolute(60000, 0)
		require.ErrorIs(err, ErrAxisMoving)

		st, err := axis.Status()
		require.NoError(err)
		require.Equal(ascii.StatusStopped, st)

		pos, err := axis.Position()
		require.NoError(err)
		require.Equal(int64(50000), pos)
	})

	require.Contains(m.Writes(), ":CS0")
	require.Contains(m.Writes(), ":FRM0,2,1000,1")
	require.Contains(m.Writes(), ":MPA0,50000,0")
}

func TestAxisRotary(t *testing.T) {
	require := require.New(t)

	replies := map[string][]string{
		":MAA1,315000000,-1,0": {":E1,0"},
		":GA1":                 {":A1,315000000,-1"},
		":GS1":                 {":S1,0"},
	}
	_, m, _, rotary := scriptedController(t, func(line string) []string {
		return replies[line]
	})

	// Skip the calibration and referencing traffic for this test.
	rotary.mu.Lock()
	rotary.cal = Calibrated
	rotary.ref = Referenced
	rotary.mu.Unlock()

	t.Run("negative angle folds into the wire pair", func(t *testing.T) {
		require.NoError(rotary.MoveAngleAbsolute(-45_000_000, 0))
		require.Contains(m.Writes(), ":MAA1,315000000,-1,0")
	})

	t.Run("angle readback recombines", func(t *testing.T) {
		_, err := rotary.Status()
		require.NoError(err)

		theta, err := rotary.Angle()
		require.NoError(err)
		require.Equal(int64(-45_000_000), theta)
	})

	t.Run("revolution range is rejected locally", func(t *testing.T) {
		wrote := len(m.Writes())
		err := rotary.MoveAngleAbsolute(32768*ascii.MicroDegreesPerTurn, 0)
		require.ErrorIs(err, ascii.ErrRevolutionRange)
		require.Len(m.Writes(), wrote)
	})
}

func TestAxisKindGating(t *testing.T) {
	require := require.New(t)

	_, m, linear, rotary := scriptedController(t, nil)

	_, err := linear.Angle()
	require.ErrorIs(err, ErrNotRotary)

	_, err = rotary.Position()
	require.ErrorIs(err, ErrNotLinear)

	err = rotary.SetPositionLimit(0, 1000)
	require.ErrorIs(err, ErrNotLinear)

	err = linear.SetAngleLimit(0, 1000)
	require.ErrorIs(err, ErrNotRotary)

	require.Empty(m.Writes())
}

func TestAxisControllerError(t *testing.T) {
	require := require.New(t)

	t.Run("range limit stops a move", func(t *testing.T) {
		_, _, axis, _ := scriptedController(t, func(line string) []string {
			if line == ":MPA0,50000,0" {
				return []string{":E0,147"}
			}
			return []string{":E0,0"}
		})

		axis.mu.Lock()
		axis.cal = Calibrated
		axis.ref = Referenced
		axis.mu.Unlock()

		err := axis.MoveAbsolute(50000, 0)

		var cerr *ControllerError
		require.ErrorAs(err, &cerr)
		require.Equal(0, cerr.Addr)
		require.Equal(ascii.ErrCodeRangeLimitReached, cerr.Code)

		st := axis.State()
		require.Equal(ascii.ErrCodeRangeLimitReached, st.LastError)
		require.Equal(MotionStopped, st.Motion)
	})

	t.Run("missing reference mark resets the reference state", func(t *testing.T) {
		_, _, axis, _ := scriptedController(t, func(line string) []string {
			if line == ":GS0" {
				return []string{":E0,144"}
			}
			return []string{":E0,0"}
		})

		axis.mu.Lock()
		axis.cal = Calibrated
		axis.mu.Unlock()

		require.NoError(axis.FindReferenceMark(ascii.DirForward, 0, false))
		require.Equal(Referencing, axis.State().Reference)

		_, err := axis.Status()

		var cerr *ControllerError
		require.ErrorAs(err, &cerr)
		require.Equal(ascii.ErrCodeNoReferenceMark, cerr.Code)
		require.Equal(NotReferenced, axis.State().Reference)
		require.Equal(MotionStopped, axis.State().Motion)
	})

	t.Run("stop aborts referencing", func(t *testing.T) {
		_, _, axis, _ := scriptedController(t, func(line string) []string {
			return []string{":E0,0"}
		})

		axis.mu.Lock()
		axis.cal = Calibrated
		axis.mu.Unlock()

		require.NoError(axis.FindReferenceMark(ascii.DirForward, 0, false))
		require.NoError(axis.Stop())

		st := axis.State()
		require.Equal(NotReferenced, st.Reference)
		require.Equal(MotionStopped, st.Motion)
	})
}

func TestAxisParameterValidation(t *testing.T) {
	require := require.New(t)

	_, m, linear, _ := scriptedController(t, nil)

	linear.mu.Lock()
	linear.cal = Calibrated
	linear.ref = Referenced
	linear.mu.Unlock()

	err := linear.MoveAbsolute(0, 61*time.Second) // hold time beyond 60 s
	require.ErrorIs(err, ascii.ErrParamRange)

	err = linear.MoveStep(0, 2000, 1000) // zero steps
	require.ErrorIs(err, ascii.ErrParamRange)

	err = linear.MoveStep(100, 5000, 1000) // amplitude beyond 12 bit
	require.ErrorIs(err, ascii.ErrParamRange)

	err = linear.MoveStep(100, 2000, 20) // frequency below 50 Hz
	require.ErrorIs(err, ascii.ErrParamRange)

	err = linear.SetClosedLoopVelocity(2_000_000_000)
	require.ErrorIs(err, ascii.ErrParamRange)

	err = linear.SetClosedLoopAcceleration(200_000_000)
	require.ErrorIs(err, ascii.ErrParamRange)

	err = linear.SetPositionLimit(1000, -1000)
	require.ErrorIs(err, ascii.ErrParamRange)

	require.Empty(m.Writes())
}

func TestAxisSetPosition(t *testing.T) {
	require := require.New(t)

	_, m, axis, _ := scriptedController(t, func(line string) []string {
		return []string{":E0,0"}
	})

	require.NoError(axis.SetPosition(-250))
	require.Contains(m.Writes(), ":SP0,-250")
	require.Equal(Referenced, axis.State().Reference)
}

func TestAxisPhysicalPositionKnown(t *testing.T) {
	require := require.New(t)

	replies := map[string][]string{}
	_, _, axis, _ := scriptedController(t, func(line string) []string {
		return replies[line]
	})

	replies[":GPPK0"] = []string{":PPK0,1"}
	known, err := axis.PhysicalPositionKnown()
	require.NoError(err)
	require.True(known)
	require.Equal(Referenced, axis.State().Reference)

	replies[":GPPK0"] = []string{":PPK0,0"}
	known, err = axis.PhysicalPositionKnown()
	require.NoError(err)
	require.False(known)
	require.Equal(NotReferenced, axis.State().Reference)
}
