package mcs

// CalibrationState tracks whether the sensor calibration routine has run on
// an axis since power-up.
type CalibrationState uint8

const (
	Uncalibrated CalibrationState = iota
	Calibrating
	Calibrated
)

func (s CalibrationState) String() string {
	switch s {
	case Uncalibrated:
		return "uncalibrated"
	case Calibrating:
		return "calibrating"
	case Calibrated:
		return "calibrated"
	default:
		return "unknown"
	}
}

// ReferenceState tracks whether the physical position of an axis is known,
// either from a completed reference mark search or from an explicit
// position definition.
type ReferenceState uint8

const (
	NotReferenced ReferenceState = iota
	Referencing
	Referenced
)

func (s ReferenceState) String() string {
	switch s {
	case NotReferenced:
		return "not referenced"
	case Referencing:
		return "referencing"
	case Referenced:
		return "referenced"
	default:
		return "unknown"
	}
}

// MotionState is the coarse motion activity of an axis as maintained from
// command acknowledgements, status polls and event/status reports.
type MotionState uint8

const (
	MotionStopped MotionState = iota
	MotionMoving
	MotionHolding
)

func (s MotionState) String() string {
	switch s {
	case MotionStopped:
		return "stopped"
	case MotionMoving:
		return "moving"
	case MotionHolding:
		return "holding"
	default:
		return "unknown"
	}
}

// AxisKind distinguishes linear from rotary positioners. It is derived from
// the channel's sensor code.
type AxisKind uint8

const (
	KindLinear AxisKind = iota
	KindRotary
)

func (k AxisKind) String() string {
	if k == KindRotary {
		return "rotary"
	}

	return "linear"
}
