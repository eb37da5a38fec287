package ascii

import "fmt"

// Parameter limits of the MCS/SDC controller family.
const (
	MinFrequency int64 = 50    // [Hz]
	MaxFrequency int64 = 18500 // [Hz]

	MaxAmplitude int64 = 4095  // 12-bit, 0-100 V
	MaxSteps     int64 = 30000 // per open-loop burst

	MaxVelocity     int64 = 1_000_000_000 // [nm/s]
	MaxAcceleration int64 = 100_000_000   // [um/s^2]

	MaxAngle int64 = MicroDegreesPerTurn - 1 // [udeg]

	MaxHoldTime int64 = 60000 // [ms]

	MinBaudrate int64 = 9600
	MaxBaudrate int64 = 115200

	MinKeepAliveDelay int64 = 100   // [ms]
	MaxKeepAliveDelay int64 = 60000 // [ms]
)

// CheckSteps validates the step count of an open-loop burst. Zero steps is
// rejected: the controller treats it as a no-op the driver should not emit.
func CheckSteps(steps int64) error {
	if steps == 0 || steps < -MaxSteps || steps > MaxSteps {
		return fmt.Errorf("%w: steps %d, valid range [-%d, %d] excluding 0",
			ErrParamRange, steps, MaxSteps, MaxSteps)
	}

	return nil
}

// CheckAmplitude validates a 12-bit step amplitude value.
func CheckAmplitude(amplitude int64) error {
	if amplitude < 0 || amplitude > MaxAmplitude {
		return fmt.Errorf("%w: amplitude %d, valid range [0, %d]", ErrParamRange, amplitude, MaxAmplitude)
	}

	return nil
}

// CheckFrequency validates a step frequency in Hz.
func CheckFrequency(frequency int64) error {
	if frequency < MinFrequency || frequency > MaxFrequency {
		return fmt.Errorf("%w: frequency %d Hz, valid range [%d, %d]",
			ErrParamRange, frequency, MinFrequency, MaxFrequency)
	}

	return nil
}

// CheckVelocity validates a closed-loop velocity in nm/s (linear) or
// udeg/s (rotary).
func CheckVelocity(velocity int64) error {
	if velocity < 0 || velocity > MaxVelocity {
		return fmt.Errorf("%w: velocity %d, valid range [0, %d]", ErrParamRange, velocity, MaxVelocity)
	}

	return nil
}

// CheckAcceleration validates a closed-loop acceleration in um/s^2 (linear)
// or mdeg/s^2 (rotary).
func CheckAcceleration(acceleration int64) error {
	if acceleration < 0 || acceleration > MaxAcceleration {
		return fmt.Errorf("%w: acceleration %d, valid range [0, %d]", ErrParamRange, acceleration, MaxAcceleration)
	}

	return nil
}

// CheckHoldTime validates a hold time in milliseconds.
func CheckHoldTime(holdTime int64) error {
	if holdTime < 0 || holdTime > MaxHoldTime {
		return fmt.Errorf("%w: hold time %d ms, valid range [0, %d]", ErrParamRange, holdTime, MaxHoldTime)
	}

	return nil
}

// CheckAngle validates a wire-form angle in micro-degrees.
func CheckAngle(angle int64) error {
	if angle < 0 || angle > MaxAngle {
		return fmt.Errorf("%w: angle %d udeg, valid range [0, %d]", ErrParamRange, angle, MaxAngle)
	}

	return nil
}

// CheckRevolution validates a revolution counter value.
func CheckRevolution(rev int64) error {
	if rev < MinRevolution || rev > MaxRevolution {
		return fmt.Errorf("%w: revolution %d, valid range [%d, %d]",
			ErrParamRange, rev, MinRevolution, MaxRevolution)
	}

	return nil
}

// CheckBaudrate validates an RS-232 baudrate.
func CheckBaudrate(baud int64) error {
	if baud < MinBaudrate || baud > MaxBaudrate {
		return fmt.Errorf("%w: baudrate %d, valid range [%d, %d]",
			ErrParamRange, baud, MinBaudrate, MaxBaudrate)
	}

	return nil
}

// CheckKeepAliveDelay validates a keep-alive delay in milliseconds.
// Zero disables the keep-alive watchdog and is always accepted.
func CheckKeepAliveDelay(delay int64) error {
	if delay == 0 {
		return nil
	}
	if delay < MinKeepAliveDelay || delay > MaxKeepAliveDelay {
		return fmt.Errorf("%w: keep-alive delay %d ms, valid range [%d, %d] or 0",
			ErrParamRange, delay, MinKeepAliveDelay, MaxKeepAliveDelay)
	}

	return nil
}
