package ascii

import "fmt"

// Angular positions travel on the wire as an (angle, revolution) pair:
// angle in [0, MicroDegreesPerTurn) micro-degrees, revolution a signed
// 16-bit turn counter. The user-facing representation is a single signed
// micro-degree value theta = revolution*MicroDegreesPerTurn + angle.
const (
	MicroDegreesPerTurn int64 = 360_000_000

	MinRevolution int64 = -32768
	MaxRevolution int64 = 32767
)

// SplitAngle decomposes a combined signed angle [udeg] into the wire pair.
// The returned angle is always in [0, MicroDegreesPerTurn); e.g. -45e6
// decomposes to (315e6, -1). It fails with ErrRevolutionRange when theta
// lies outside the controller's supported revolution range.
func SplitAngle(theta int64) (angle int64, rev int64, err error) {
	rev = theta / MicroDegreesPerTurn
	angle = theta % MicroDegreesPerTurn
	if angle < 0 {
		angle += MicroDegreesPerTurn
		rev--
	}

	if rev < MinRevolution || rev > MaxRevolution {
		return 0, 0, fmt.Errorf("%w: theta %d udeg", ErrRevolutionRange, theta)
	}

	return angle, rev, nil
}

// CombineAngle recombines a wire (angle, revolution) pair into the single
// signed micro-degree value. It validates both components so that a
// corrupted pair is rejected instead of silently folding into a wrong
// position.
func CombineAngle(angle, rev int64) (int64, error) {
	if angle < 0 || angle >= MicroDegreesPerTurn {
		return 0, fmt.Errorf("%w: angle %d udeg", ErrAngleRange, angle)
	}
	if rev < MinRevolution || rev > MaxRevolution {
		return 0, fmt.Errorf("%w: revolution %d", ErrRevolutionRange, rev)
	}

	return rev*MicroDegreesPerTurn + angle, nil
}
