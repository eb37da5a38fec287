package ascii

import "fmt"

// Status is a channel status code as reported by "GS" replies and "ES"
// event/status reports.
type Status int64

const (
	StatusStopped          Status = 0
	StatusStepping         Status = 1
	StatusScanning         Status = 2
	StatusHolding          Status = 3
	StatusTargeting        Status = 4
	StatusWaiting          Status = 5 // move delay (hold time) in progress
	StatusCalibrating      Status = 6
	StatusFindingReference Status = 7
	StatusLocked           Status = 9
)

var statusText = map[Status]string{
	StatusStopped:          "stopped",
	StatusStepping:         "stepping",
	StatusScanning:         "scanning",
	StatusHolding:          "holding",
	StatusTargeting:        "targeting",
	StatusWaiting:          "move delay",
	StatusCalibrating:      "calibrating",
	StatusFindingReference: "finding reference mark",
	StatusLocked:           "locked",
}

func (s Status) String() string {
	if text, ok := statusText[s]; ok {
		return text
	}

	return fmt.Sprintf("status(%d)", int64(s))
}

// IsActive reports whether the status describes a positioner that is
// executing a movement command.
func (s Status) IsActive() bool {
	switch s {
	case StatusStepping, StatusScanning, StatusTargeting, StatusWaiting,
		StatusCalibrating, StatusFindingReference:
		return true
	default:
		return false
	}
}

// ErrCode is a controller-reported error code carried by "E" replies.
type ErrCode int64

const (
	ErrCodeNone                  ErrCode = 0
	ErrCodeSyntax                ErrCode = 1
	ErrCodeInvalidCommand        ErrCode = 2
	ErrCodeOverflow              ErrCode = 3
	ErrCodeParse                 ErrCode = 4
	ErrCodeTooFewParameters      ErrCode = 5
	ErrCodeTooManyParameters     ErrCode = 6
	ErrCodeInvalidParameter      ErrCode = 7
	ErrCodeWrongMode             ErrCode = 8
	ErrCodeNoSensorPresent       ErrCode = 129
	ErrCodeSensorDisabled        ErrCode = 140
	ErrCodeCommandOverridden     ErrCode = 141
	ErrCodeEndStopReached        ErrCode = 142
	ErrCodeWrongSensorType       ErrCode = 143
	ErrCodeNoReferenceMark       ErrCode = 144
	ErrCodeWrongEndEffectorType  ErrCode = 145
	ErrCodeMovementLocked        ErrCode = 146
	ErrCodeRangeLimitReached     ErrCode = 147
	ErrCodePhysicalPosUnknown    ErrCode = 148
	ErrCodeCommandNotProcessable ErrCode = 150
	ErrCodeWaitingForTrigger     ErrCode = 151
	ErrCodeCommandNotTriggerable ErrCode = 152
	ErrCodeCommandQueueFull      ErrCode = 153
	ErrCodeInvalidComponent      ErrCode = 154
	ErrCodeInvalidSubComponent   ErrCode = 155
	ErrCodeInvalidProperty       ErrCode = 156
	ErrCodePermissionDenied      ErrCode = 157
	ErrCodePowerAmpDisabled      ErrCode = 159
)

var errCodeText = map[ErrCode]string{
	ErrCodeNone:                  "no error",
	ErrCodeSyntax:                "syntax error",
	ErrCodeInvalidCommand:        "invalid command",
	ErrCodeOverflow:              "overflow",
	ErrCodeParse:                 "parse error",
	ErrCodeTooFewParameters:      "too few parameters",
	ErrCodeTooManyParameters:     "too many parameters",
	ErrCodeInvalidParameter:      "invalid parameter",
	ErrCodeWrongMode:             "wrong mode",
	ErrCodeNoSensorPresent:       "no sensor present",
	ErrCodeSensorDisabled:        "sensor disabled",
	ErrCodeCommandOverridden:     "command overridden",
	ErrCodeEndStopReached:        "end stop reached",
	ErrCodeWrongSensorType:       "wrong sensor type",
	ErrCodeNoReferenceMark:       "could not find reference mark",
	ErrCodeWrongEndEffectorType:  "wrong end effector type",
	ErrCodeMovementLocked:        "movement locked",
	ErrCodeRangeLimitReached:     "range limit reached",
	ErrCodePhysicalPosUnknown:    "physical position unknown",
	ErrCodeCommandNotProcessable: "command not processable",
	ErrCodeWaitingForTrigger:     "waiting for trigger",
	ErrCodeCommandNotTriggerable: "command not triggerable",
	ErrCodeCommandQueueFull:      "command queue full",
	ErrCodeInvalidComponent:      "invalid component",
	ErrCodeInvalidSubComponent:   "invalid sub component",
	ErrCodeInvalidProperty:       "invalid property",
	ErrCodePermissionDenied:      "permission denied",
	ErrCodePowerAmpDisabled:      "power amplifier disabled",
}

func (c ErrCode) String() string {
	if text, ok := errCodeText[c]; ok {
		return text
	}

	return fmt.Sprintf("error code %d", int64(c))
}

// Direction is a referencing strategy for the find-reference-mark command.
type Direction int64

const (
	DirForward         Direction = 0
	DirBackward        Direction = 1
	DirForwardBackward Direction = 2
	DirBackwardForward Direction = 3
	// *_End variants abort at the end stop instead of wrapping around.
	DirForwardEnd         Direction = 4
	DirBackwardEnd        Direction = 5
	DirForwardBackwardEnd Direction = 6
	DirBackwardForwardEnd Direction = 7
)

// CommMode selects between synchronous and asynchronous controller
// communication. The protocol engine requires synchronous mode, where every
// command is acknowledged; asynchronous mode additionally emits "ES" reports.
type CommMode int64

const (
	CommModeSync  CommMode = 0
	CommModeAsync CommMode = 1
)

// SensorMode is the controller-wide sensor operation mode.
type SensorMode int64

const (
	SensorDisabled  SensorMode = 0
	SensorEnabled   SensorMode = 1
	SensorPowerSave SensorMode = 2
)
