// pkg/engine/input.go
package engine

import "github.com/scrapship/arena/pkg/physics"

// InputState is one ship's control intent for one tick. It is produced by an
// external controller each tick; the engine does not care whether that is a
// human, a script, or a learned policy.
type InputState struct {
	Forward bool
	Back    bool
	Left    bool
	Right   bool

	TurnLeft    bool
	TurnRight   bool
	TurnToward  bool
	TargetAngle float64
	// FastTurn additionally fires offset-mounted thrusters during turns.
	FastTurn bool

	Fire      bool
	AimTarget *physics.Vector2D

	// Throttle in (0,1]; zero means full throttle.
	Throttle float64
}

// throttle returns the effective throttle, defaulting to full.
func (in InputState) throttle() float64 {
	if in.Throttle <= 0 || in.Throttle > 1 {
		return 1
	}
	return in.Throttle
}
