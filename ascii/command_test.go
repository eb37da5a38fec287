package ascii

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommandEncode(t *testing.T) {
	require := require.New(t)

	tests := []struct {
		desc     string
		mnemonic Mnemonic
		addr     int
		params   []int64
		want     string
	}{
		{"calibrate", CmdCalibrate, 0, nil, ":CS0"},
		{"stop", CmdStop, 3, nil, ":S3"},
		{"find reference mark", CmdFindReferenceMark, 0, []int64{2, 1000, 1}, ":FRM0,2,1000,1"},
		{"move absolute", CmdMovePositionAbs, 1, []int64{50000, 0}, ":MPA1,50000,0"},
		{"move relative negative", CmdMovePositionRel, 0, []int64{-2500, 60000}, ":MPR0,-2500,60000"},
		{"move angle absolute", CmdMoveAngleAbs, 2, []int64{315000000, -1, 0}, ":MAA2,315000000,-1,0"},
		{"open-loop burst", CmdMoveStep, 0, []int64{-200, 4095, 18500}, ":MST0,-200,4095,18500"},
		{"get position", CmdGetPosition, 0, nil, ":GP0"},
		{"get angle", CmdGetAngle, 5, nil, ":GA5"},
		{"set closed-loop velocity", CmdSetClosedLoopVel, 0, []int64{100000}, ":SCLS0,100000"},
		{"interface version", CmdGetInterfaceVersion, AddrController, nil, ":GIV"},
		{"channel count", CmdGetNumChannels, AddrController, nil, ":GNC"},
		{"sync comm mode", CmdSetCommMode, AddrController, []int64{0}, ":SCM0"},
		{"keep alive", CmdKeepAlive, AddrController, []int64{1000}, ":K1000"},
		{"baudrate", CmdSetBaudrate, AddrController, []int64{115200}, ":BR115200"},
		{"reset", CmdReset, AddrController, nil, ":R"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			cmd, err := NewCommand(tt.mnemonic, tt.addr, tt.params...)
			require.NoError(err)

			line, err := cmd.Encode()
			require.NoError(err)
			require.Equal(tt.want, string(line))
			require.Equal(tt.want, cmd.String())
		})
	}
}

func TestNewCommandValidation(t *testing.T) {
	require := require.New(t)

	t.Run("unknown mnemonic", func(t *testing.T) {
		_, err := NewCommand("XYZ", 0)
		require.ErrorIs(err, ErrUnknownMnemonic)
	})

	t.Run("wrong arity", func(t *testing.T) {
		_, err := NewCommand(CmdMovePositionAbs, 0, 50000)
		require.ErrorIs(err, ErrBadParamCount)

		_, err = NewCommand(CmdCalibrate, 0, 1)
		require.ErrorIs(err, ErrBadParamCount)
	})

	t.Run("axis command without address", func(t *testing.T) {
		_, err := NewCommand(CmdGetPosition, AddrController)
		require.ErrorIs(err, ErrParamRange)
	})

	t.Run("controller command with address", func(t *testing.T) {
		_, err := NewCommand(CmdGetNumChannels, 0)
		require.ErrorIs(err, ErrParamRange)
	})
}

func TestCommandAccessors(t *testing.T) {
	require := require.New(t)

	cmd, err := NewCommand(CmdFindReferenceMark, 1, 2, 1000, 1)
	require.NoError(err)

	require.Equal(CmdFindReferenceMark, cmd.Mnemonic())
	require.Equal(1, cmd.Addr())
	require.Equal([]int64{2, 1000, 1}, cmd.Params())
	require.Equal(RepError, cmd.ReplyMnemonic())

	// Params returns a copy; mutating it must not affect the command.
	params := cmd.Params()
	params[0] = 99
	require.Equal([]int64{2, 1000, 1}, cmd.Params())

	cmd, err = NewCommand(CmdGetAngle, 0)
	require.NoError(err)
	require.Nil(cmd.Params())
	require.Equal(RepAngle, cmd.ReplyMnemonic())
}

func TestRangeChecks(t *testing.T) {
	require := require.New(t)

	tests := []struct {
		desc  string
		check func() error
		ok    bool
	}{
		{"steps in range", func() error { return CheckSteps(30000) }, true},
		{"steps zero", func() error { return CheckSteps(0) }, false},
		{"steps too many", func() error { return CheckSteps(-30001) }, false},
		{"amplitude max", func() error { return CheckAmplitude(4095) }, true},
		{"amplitude over", func() error { return CheckAmplitude(4096) }, false},
		{"frequency min", func() error { return CheckFrequency(50) }, true},
		{"frequency under", func() error { return CheckFrequency(49) }, false},
		{"velocity max", func() error { return CheckVelocity(MaxVelocity) }, true},
		{"velocity negative", func() error { return CheckVelocity(-1) }, false},
		{"acceleration over", func() error { return CheckAcceleration(MaxAcceleration + 1) }, false},
		{"hold time max", func() error { return CheckHoldTime(60000) }, true},
		{"hold time over", func() error { return CheckHoldTime(60001) }, false},
		{"angle max", func() error { return CheckAngle(MaxAngle) }, true},
		{"angle full turn", func() error { return CheckAngle(MicroDegreesPerTurn) }, false},
		{"revolution min", func() error { return CheckRevolution(-32768) }, true},
		{"revolution under", func() error { return CheckRevolution(-32769) }, false},
		{"baudrate max", func() error { return CheckBaudrate(115200) }, true},
		{"baudrate under", func() error { return CheckBaudrate(4800) }, false},
		{"keep-alive disabled", func() error { return CheckKeepAliveDelay(0) }, true},
		{"keep-alive too short", func() error { return CheckKeepAliveDelay(50) }, false},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			err := tt.check()
			if tt.ok {
				require.NoError(err)
			} else {
				require.ErrorIs(err, ErrParamRange)
			}
		})
	}
}
