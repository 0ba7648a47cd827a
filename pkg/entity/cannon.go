// pkg/entity/cannon.go
package entity

import (
	"math"

	"github.com/scrapship/arena/pkg/physics"
	"github.com/scrapship/arena/pkg/piece"
)

// Cannon is one runtime turret. Its rest direction is the mount angle relative
// to ship-forward; AimOffset swings the barrel within the aiming arc at a
// bounded slew rate. Spread, BurstCount, BurstDelay, and Penetrating are
// carried from the piece definition for upcoming fire modes and snapshots.
type Cannon struct {
	PartIndex int
	LocalPos  physics.Vector2D
	Mount     float64

	FiringArc          float64
	AimingArc          float64
	AimSpeed           float64
	ProjectileSpeed    float64
	ProjectileLifetime float64
	Damage             float64
	ReloadTime         float64
	Spread             float64
	BurstCount         int
	BurstDelay         float64
	Penetrating        bool

	AimOffset  float64
	ReloadLeft float64
	Disabled   bool
}

func newCannon(partIndex int, local physics.Vector2D, p *piece.Piece) *Cannon {
	def := p.Cannon
	return &Cannon{
		PartIndex:          partIndex,
		LocalPos:           local,
		Mount:              p.Angle,
		FiringArc:          def.FiringArc,
		AimingArc:          def.AimingArc,
		AimSpeed:           def.AimSpeed,
		ProjectileSpeed:    def.ProjectileSpeed,
		ProjectileLifetime: def.ProjectileLifetime,
		Damage:             def.Damage,
		ReloadTime:         def.ReloadTime,
		Spread:             def.Spread,
		BurstCount:         def.BurstCount,
		BurstDelay:         def.BurstDelay,
		Penetrating:        def.Penetrating,
	}
}

// baseAngle returns the cannon's rest firing direction as a world angle. A
// mount angle of zero points the barrel along ship-forward.
func (c *Cannon) baseAngle(shipAngle float64) float64 {
	return shipAngle + c.Mount + math.Pi/2
}

// Aimed returns the barrel's current world firing angle.
func (c *Cannon) Aimed(shipAngle float64) float64 {
	return c.baseAngle(shipAngle) + c.AimOffset
}

// UpdateCannonAiming advances reload timers and slews every live cannon's aim
// offset toward the target, clamped to the aiming arc. A nil target holds the
// current offsets; reloads still tick.
func (s *Ship) UpdateCannonAiming(target *physics.Vector2D, dt float64) {
	if s == nil || s.Body == nil {
		return
	}
	angle := s.Angle()
	for _, c := range s.Cannons {
		if c.ReloadLeft > 0 {
			c.ReloadLeft -= dt
			if c.ReloadLeft < 0 {
				c.ReloadLeft = 0
			}
		}
		if c.Disabled || target == nil {
			continue
		}

		muzzle := s.worldPoint(c.LocalPos)
		toTarget := target.Sub(muzzle).Angle()
		desired := physics.NormalizeAngle(toTarget - c.baseAngle(angle))
		half := c.AimingArc / 2
		if desired > half {
			desired = half
		} else if desired < -half {
			desired = -half
		}

		step := c.AimSpeed * dt
		diff := desired - c.AimOffset
		if math.Abs(diff) <= step {
			c.AimOffset = desired
		} else if diff > 0 {
			c.AimOffset += step
		} else {
			c.AimOffset -= step
		}
	}
}

// FireAllCannons fires every loaded, live cannon and returns the spawned
// projectiles. With a target, a cannon holds fire unless the target lies
// within its firing arc around the current barrel direction. Projectiles
// inherit the ship's velocity component along the firing direction, floored so
// a fast-reversing ship never shoots backward.
func (s *Ship) FireAllCannons(target *physics.Vector2D) []*Projectile {
	if s == nil || s.Body == nil {
		return nil
	}
	angle := s.Angle()
	vel := s.Velocity()

	var out []*Projectile
	for _, c := range s.Cannons {
		if c.Disabled || c.ReloadLeft > 0 {
			continue
		}
		muzzle := s.worldPoint(c.LocalPos)
		aimed := c.Aimed(angle)

		if target != nil {
			toTarget := target.Sub(muzzle).Angle()
			if math.Abs(physics.NormalizeAngle(toTarget-aimed)) > c.FiringArc/2 {
				continue
			}
		}

		dir := physics.FromAngle(aimed, 1)
		speed := c.ProjectileSpeed + vel.Dot(dir)
		if speed < 0 {
			speed = 0
		}
		out = append(out, NewProjectile(muzzle, dir.Scale(speed), c.ProjectileLifetime, c.Damage, s))
		c.ReloadLeft = c.ReloadTime
	}
	return out
}
