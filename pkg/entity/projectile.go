// pkg/entity/projectile.go
package entity

import (
	"github.com/EngoEngine/ecs"

	"github.com/scrapship/arena/pkg/physics"
)

// Projectile is a ballistic round flying outside the rigid-body substrate. It
// moves in a straight line and is removed on first hit or lifetime expiry.
type Projectile struct {
	ecs.BasicEntity
	Position  physics.Vector2D
	Velocity  physics.Vector2D
	TimeAlive float64
	Lifetime  float64
	Damage    float64
	Shooter   *Ship
}

// NewProjectile creates a round at a muzzle position with a world velocity.
func NewProjectile(pos, vel physics.Vector2D, lifetime, damage float64, shooter *Ship) *Projectile {
	return &Projectile{
		BasicEntity: ecs.NewBasic(),
		Position:    pos,
		Velocity:    vel,
		Lifetime:    lifetime,
		Damage:      damage,
		Shooter:     shooter,
	}
}

// Update advances the round by dt seconds.
func (p *Projectile) Update(dt float64) {
	p.Position = p.Position.Add(p.Velocity.Scale(dt))
	p.TimeAlive += dt
}

// Expired reports whether the round has outlived its lifetime.
func (p *Projectile) Expired() bool {
	return p.TimeAlive >= p.Lifetime
}
