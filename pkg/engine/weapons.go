// pkg/engine/weapons.go
package engine

import (
	"github.com/EngoEngine/ecs"

	"github.com/scrapship/arena/pkg/entity"
	"github.com/scrapship/arena/pkg/event"
)

// WeaponSystem owns the live projectile pool. Each tick it aims and fires
// every ship's cannons per its input, integrates projectiles, and resolves
// hits. The pool is bounded: once MaxProjectiles rounds are live, further
// shots are dropped until slots free up.
type WeaponSystem struct {
	arena          *Arena
	Projectiles    []*entity.Projectile
	MaxProjectiles int
}

func newWeaponSystem(a *Arena) *WeaponSystem {
	return &WeaponSystem{
		arena:          a,
		MaxProjectiles: a.cfg.MaxProjectiles,
	}
}

func (ws *WeaponSystem) Priority() int { return weaponPriority }

// Remove drops a projectile from the pool by entity identity.
func (ws *WeaponSystem) Remove(basic ecs.BasicEntity) {
	for i, p := range ws.Projectiles {
		if p.ID() == basic.ID() {
			ws.Projectiles = append(ws.Projectiles[:i], ws.Projectiles[i+1:]...)
			return
		}
	}
}

func (ws *WeaponSystem) Update(dt float32) {
	a := ws.arena
	step := float64(dt)

	for _, ship := range a.ships {
		in := a.inputs[ship.ID()]
		ship.UpdateCannonAiming(in.AimTarget, step)
		if !in.Fire {
			continue
		}
		for _, proj := range ship.FireAllCannons(in.AimTarget) {
			if len(ws.Projectiles) >= ws.MaxProjectiles {
				break
			}
			ws.Projectiles = append(ws.Projectiles, proj)
			a.Events.Publish(event.NewShipEvent(event.ProjectileFired, a, ship.ID(), ship.TeamID))
		}
	}

	ws.advance(step)
	ws.CheckProjectileCollisions()
}

// advance integrates projectile positions and drops expired rounds.
func (ws *WeaponSystem) advance(dt float64) {
	live := ws.Projectiles[:0]
	for _, p := range ws.Projectiles {
		p.Update(dt)
		if !p.Expired() {
			live = append(live, p)
		}
	}
	ws.Projectiles = live
}

// CheckProjectileCollisions tests every live round against every ship other
// than its shooter. A hit is the first non-broken part containing the round's
// position; the round is removed on its first hit and never damages a second
// ship. Returns the ships whose core was destroyed this call.
func (ws *WeaponSystem) CheckProjectileCollisions() []*entity.Ship {
	a := ws.arena

	var destroyed []*entity.Ship
	live := ws.Projectiles[:0]
	for _, p := range ws.Projectiles {
		hit := false
		for _, ship := range a.ships {
			if ship == p.Shooter || ship.Destroyed {
				continue
			}
			part := ship.PartAt(p.Position)
			if part == nil {
				continue
			}

			result := ship.ApplyDamage(part, p.Damage)
			shooterID := uint64(0)
			if p.Shooter != nil {
				shooterID = p.Shooter.ID()
			}
			a.Events.Publish(event.NewHitEvent(event.ProjectileHit, a, shooterID, ship.ID(), part.Index, p.Damage))
			a.publishDamage(ship, result)
			if result.CoreDestroyed {
				destroyed = append(destroyed, ship)
			}

			hit = true
			break
		}
		if !hit {
			live = append(live, p)
		}
	}
	ws.Projectiles = live
	return destroyed
}
