// pkg/entity/thruster.go
package entity

import (
	"math"

	"github.com/scrapship/arena/pkg/physics"
	"github.com/scrapship/arena/pkg/piece"
)

// Direction selects a directional thrust axis in the ship's local frame.
type Direction int

const (
	DirForward Direction = iota
	DirBack
	DirLeft
	DirRight
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirForward:
		return "forward"
	case DirBack:
		return "back"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// ThrusterKind distinguishes thrusters mounted from a piece's main exhaust
// from the virtual ones spawned by its extra exhaust ports.
type ThrusterKind int

const (
	ThrusterMain ThrusterKind = iota
	ThrusterVirtual
)

// usageSample is one tick of overheat accounting.
type usageSample struct {
	at    float64
	dur   float64
	fired bool
}

// Thruster is one runtime exhaust port. Virtual thrusters share their parent
// piece's mount point and damage state but keep independent ramp-up and
// overheat state. Push is the unit thrust direction in the ship's local frame,
// opposite Exhaust.
type Thruster struct {
	Kind        ThrusterKind
	ParentIndex int // Thrusters index of the main port, -1 for mains
	PartIndex   int
	LocalPos    physics.Vector2D
	Exhaust     physics.Vector2D
	Push        physics.Vector2D
	Force       float64
	Disabled    bool

	RampUp   *piece.RampUpConfig
	Overheat *piece.OverheatConfig

	Overheated   bool
	cooldownLeft float64
	activeTime   float64
	fired        bool
	usage        []usageSample
}

// registerThruster appends the main thruster for a piece plus one virtual
// thruster per extra exhaust port.
func (s *Ship) registerThruster(partIndex int, local physics.Vector2D, p *piece.Piece) {
	def := p.Thruster
	mainIdx := len(s.Thrusters)
	push := piece.LocalDirection(p.Angle)
	s.Thrusters = append(s.Thrusters, &Thruster{
		Kind:        ThrusterMain,
		ParentIndex: -1,
		PartIndex:   partIndex,
		LocalPos:    local,
		Exhaust:     push.Scale(-1),
		Push:        push,
		Force:       def.Force,
		RampUp:      def.RampUp,
		Overheat:    def.Overheat,
	})
	for _, offset := range def.ExtraExhausts {
		vpush := piece.LocalDirection(p.Angle + offset)
		s.Thrusters = append(s.Thrusters, &Thruster{
			Kind:        ThrusterVirtual,
			ParentIndex: mainIdx,
			PartIndex:   partIndex,
			LocalPos:    local,
			Exhaust:     vpush.Scale(-1),
			Push:        vpush,
			Force:       def.Force,
			RampUp:      def.RampUp,
			Overheat:    def.Overheat,
		})
	}
}

// available reports whether the thruster can fire this tick.
func (t *Thruster) available() bool {
	return !t.Disabled && !t.Overheated
}

// rampMultiplier returns the current force fraction of a ramping thruster.
func (t *Thruster) rampMultiplier() float64 {
	if t.RampUp == nil || t.RampUp.RampTime <= 0 {
		return 1
	}
	frac := t.activeTime / t.RampUp.RampTime
	if frac > 1 {
		frac = 1
	}
	return t.RampUp.StartPercent + (1-t.RampUp.StartPercent)*frac
}

// fireThruster applies the thruster's force at its mount point and marks it
// fired for ramp-up and overheat accounting.
func (s *Ship) fireThruster(t *Thruster, throttle float64) {
	force := t.Push.Rotate(s.Angle()).Scale(t.Force * throttle * t.rampMultiplier())
	s.Body.ApplyForce(force, s.worldPoint(t.LocalPos))
	t.fired = true
}

// localAxis returns the direction's unit axis in the ship's local frame.
func localAxis(dir Direction) physics.Vector2D {
	switch dir {
	case DirForward:
		return physics.Vector2D{X: 0, Y: 1}
	case DirBack:
		return physics.Vector2D{X: 0, Y: -1}
	case DirLeft:
		return physics.Vector2D{X: -1, Y: 0}
	default:
		return physics.Vector2D{X: 1, Y: 0}
	}
}

// ApplyDirectionalThrust fires every available thruster whose push direction
// has a positive component along the requested axis, scaled by the alignment.
// Forward and back requests are topped up by omni thrust for whatever fraction
// of alignment the physical thrusters cannot supply; left and right requests
// always add the full omni contribution, so strafing works on ships with only
// fore/aft thrusters.
func (s *Ship) ApplyDirectionalThrust(dir Direction, throttle float64) {
	if s == nil || s.Body == nil || throttle <= 0 {
		return
	}
	axis := localAxis(dir)
	covered := 0.0
	for _, t := range s.Thrusters {
		if !t.available() {
			continue
		}
		align := t.Push.Dot(axis)
		if align <= 0.1 {
			continue
		}
		s.fireThruster(t, throttle*align)
		covered += align
	}

	switch dir {
	case DirForward, DirBack:
		if remainder := 1 - covered; remainder > 0 {
			s.applyOmniForce(axis, throttle*remainder)
		}
	case DirLeft, DirRight:
		s.applyOmniForce(axis, throttle)
	}
}

// ApplyOmniThrust pushes the ship along an arbitrary world-frame direction
// using core omni thrust only. No-op without a core.
func (s *Ship) ApplyOmniThrust(worldDir physics.Vector2D, throttle float64) {
	if s == nil || s.Body == nil || s.Core == nil || throttle <= 0 {
		return
	}
	dir := worldDir.Normalize()
	if dir.LengthSquared() == 0 {
		return
	}
	s.Body.ApplyForce(dir.Scale(s.Core.OmniThrustForce*throttle), s.Position())
}

// applyOmniForce pushes along a ship-local axis with core omni thrust applied
// at the center of mass, so it never induces rotation.
func (s *Ship) applyOmniForce(axisLocal physics.Vector2D, throttle float64) {
	if s.Core == nil || throttle <= 0 {
		return
	}
	force := axisLocal.Rotate(s.Angle()).Scale(s.Core.OmniThrustForce * throttle)
	s.Body.ApplyForce(force, s.Position())
}

// ApplyAngularThrustDirection spins the ship with raw core angular thrust.
// dir is +1 for increasing angle, -1 for decreasing. No-op without a core.
func (s *Ship) ApplyAngularThrustDirection(dir float64, throttle float64) {
	if s == nil || s.Body == nil || s.Core == nil || throttle <= 0 || dir == 0 {
		return
	}
	if dir > 0 {
		dir = 1
	} else {
		dir = -1
	}
	s.Body.ApplyTorque(s.Core.AngularThrustForce * throttle * dir)
}

// ApplyRotationThrusters assists a turn by firing the physical thrusters whose
// offset mounting produces torque in the requested direction. Each candidate
// fires at a throttle scaled by its lever effectiveness: the fraction of its
// push that converts to torque.
func (s *Ship) ApplyRotationThrusters(dir float64, throttle float64) {
	if s == nil || s.Body == nil || throttle <= 0 || dir == 0 {
		return
	}
	if dir > 0 {
		dir = 1
	} else {
		dir = -1
	}
	for _, t := range s.Thrusters {
		if !t.available() {
			continue
		}
		torque := t.LocalPos.Cross(t.Push)
		if torque*dir <= 0.01 {
			continue
		}
		lever := t.LocalPos.Length()
		eff := 1.0
		if lever > 0 {
			eff = math.Min(math.Abs(torque)/lever, 1)
		}
		s.fireThruster(t, throttle*eff)
	}
}

// Angular turn-to-angle tuning.
const (
	turnDeadZone      = 0.05
	turnSettleDamping = 0.85
	turnGain          = 6.0
)

// ApplyAngularThrust turns the ship toward targetAngle with a proportional
// controller on core angular thrust. Inside the dead zone it bleeds off
// residual spin instead of applying torque.
func (s *Ship) ApplyAngularThrust(targetAngle, throttle float64) {
	if s == nil || s.Body == nil || s.Core == nil || throttle <= 0 {
		return
	}
	diff := physics.NormalizeAngle(targetAngle - s.Angle())
	angVel := s.Body.AngularVelocity()

	if math.Abs(diff) < turnDeadZone {
		s.Body.SetAngularVelocity(angVel * turnSettleDamping)
		return
	}

	maxTorque := s.Core.AngularThrustForce * throttle
	torque := (diff*turnGain - angVel) * s.Core.AngularThrustForce
	if torque > maxTorque {
		torque = maxTorque
	} else if torque < -maxTorque {
		torque = -maxTorque
	}
	s.Body.ApplyTorque(torque)
}

// UpdateThrusterState advances per-thruster ramp-up and overheat accounting by
// one tick and returns the Thrusters indices that entered overheat this tick.
// Call once per tick after all thrust has been applied.
func (s *Ship) UpdateThrusterState(dt float64) []int {
	if s == nil {
		return nil
	}
	s.clock += dt

	var overheated []int
	for i, t := range s.Thrusters {
		// Virtual ports share the parent piece, so damage disables them
		// together.
		if t.ParentIndex >= 0 {
			t.Disabled = t.Disabled || s.Thrusters[t.ParentIndex].Disabled
		}

		if t.fired {
			t.activeTime += dt
		} else {
			t.activeTime = 0
		}

		if t.Overheat != nil {
			if t.Overheated {
				t.cooldownLeft -= dt
				if t.cooldownLeft <= 0 {
					t.Overheated = false
					t.cooldownLeft = 0
					t.usage = nil
				}
			} else {
				t.usage = append(t.usage, usageSample{at: s.clock, dur: dt, fired: t.fired})
				cutoff := s.clock - t.Overheat.WindowSeconds
				for len(t.usage) > 0 && t.usage[0].at < cutoff {
					t.usage = t.usage[1:]
				}
				firedTime := 0.0
				for _, sample := range t.usage {
					if sample.fired {
						firedTime += sample.dur
					}
				}
				if firedTime/t.Overheat.WindowSeconds > t.Overheat.Threshold {
					t.Overheated = true
					t.cooldownLeft = t.Overheat.CooldownTime
					t.activeTime = 0
					t.usage = nil
					overheated = append(overheated, i)
				}
			}
		}

		t.fired = false
	}
	return overheated
}
