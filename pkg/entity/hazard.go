// pkg/entity/hazard.go
package entity

import (
	"math"

	"github.com/EngoEngine/ecs"

	"github.com/scrapship/arena/pkg/physics"
)

// HazardHit records one hazard strike against a ship, with the damage cascade
// result for event publication.
type HazardHit struct {
	Ship      *Ship
	PartIndex int
	Damage    float64
	Result    DamageResult
}

// DefaultSawHitCooldown is the minimum time between two hits by the same blade
// on the same ship.
const DefaultSawHitCooldown = 0.5

// SawBladeConfig tunes one saw blade. Inset is the distance from the arena
// walls to the blade's rectangular path; Offset the starting arc-length
// position along it.
type SawBladeConfig struct {
	Inset         float64
	Offset        float64
	Speed         float64
	Radius        float64
	Damage        float64
	HitCooldown   float64
	Impulse       float64
	TorqueImpulse float64
}

// SawBlade circulates along a fixed closed rectangle inset from the arena
// walls. Position is purely a function of arc-length offset into the loop. A
// per-ship cooldown map limits each ship to one hit per cooldown window.
type SawBlade struct {
	ecs.BasicEntity
	cfg       SawBladeConfig
	left      float64
	top       float64
	right     float64
	bottom    float64
	perimeter float64
	offset    float64
	cooldowns map[uint64]float64
}

// NewSawBlade creates a blade for an arena of the given dimensions.
func NewSawBlade(arenaWidth, arenaHeight float64, cfg SawBladeConfig) *SawBlade {
	if cfg.HitCooldown <= 0 {
		cfg.HitCooldown = DefaultSawHitCooldown
	}
	b := &SawBlade{
		BasicEntity: ecs.NewBasic(),
		cfg:         cfg,
		left:        cfg.Inset,
		top:         cfg.Inset,
		right:       arenaWidth - cfg.Inset,
		bottom:      arenaHeight - cfg.Inset,
		cooldowns:   make(map[uint64]float64),
	}
	w := b.right - b.left
	h := b.bottom - b.top
	b.perimeter = 2 * (w + h)
	b.offset = math.Mod(cfg.Offset, b.perimeter)
	return b
}

// Position returns the blade center on its rectangular path.
func (b *SawBlade) Position() physics.Vector2D {
	p, _ := b.pathPoint(b.offset)
	return p
}

// Radius returns the blade's contact radius.
func (b *SawBlade) Radius() float64 { return b.cfg.Radius }

// pathPoint maps an arc-length offset to a point on the rectangle and the
// unit travel direction there. The loop runs top edge rightward, right edge
// downward, bottom edge leftward, left edge upward.
func (b *SawBlade) pathPoint(offset float64) (physics.Vector2D, physics.Vector2D) {
	w := b.right - b.left
	h := b.bottom - b.top
	d := math.Mod(offset, b.perimeter)
	if d < 0 {
		d += b.perimeter
	}
	switch {
	case d < w:
		return physics.Vector2D{X: b.left + d, Y: b.top}, physics.Vector2D{X: 1, Y: 0}
	case d < w+h:
		return physics.Vector2D{X: b.right, Y: b.top + (d - w)}, physics.Vector2D{X: 0, Y: 1}
	case d < 2*w+h:
		return physics.Vector2D{X: b.right - (d - w - h), Y: b.bottom}, physics.Vector2D{X: -1, Y: 0}
	default:
		return physics.Vector2D{X: b.left, Y: b.bottom - (d - 2*w - h)}, physics.Vector2D{X: 0, Y: -1}
	}
}

// Update advances the blade and resolves hits. A qualifying hit is a ship
// whose nearest non-broken part center lies within the blade radius and whose
// cooldown has elapsed; it takes the shared damage routine, a tangential
// impulse rotated toward the blade's travel direction, and a fixed torque
// impulse.
func (b *SawBlade) Update(dt float64, ships []*Ship) []HazardHit {
	b.offset = math.Mod(b.offset+b.cfg.Speed*dt, b.perimeter)
	for id, left := range b.cooldowns {
		left -= dt
		if left <= 0 {
			delete(b.cooldowns, id)
		} else {
			b.cooldowns[id] = left
		}
	}

	pos, travel := b.pathPoint(b.offset)

	var hits []HazardHit
	for _, ship := range ships {
		if ship == nil || ship.Destroyed || ship.Body == nil {
			continue
		}
		if _, onCooldown := b.cooldowns[ship.ID()]; onCooldown {
			continue
		}
		part, center := ship.NearestPart(pos)
		if part == nil || center.Distance(pos) > b.cfg.Radius {
			continue
		}

		result := ship.ApplyDamage(part, b.cfg.Damage)

		radial := center.Sub(pos).Normalize()
		tangent := radial.Perp()
		if tangent.LengthSquared() == 0 {
			tangent = travel
		} else if tangent.Dot(travel) < 0 {
			tangent = tangent.Scale(-1)
		}
		ship.Body.ApplyImpulse(tangent.Scale(b.cfg.Impulse), center)
		ship.Body.ApplyTorqueImpulse(b.cfg.TorqueImpulse)

		b.cooldowns[ship.ID()] = b.cfg.HitCooldown
		hits = append(hits, HazardHit{
			Ship:      ship,
			PartIndex: part.Index,
			Damage:    b.cfg.Damage,
			Result:    result,
		})
	}
	return hits
}

// EnergyBallConfig tunes one energy ball. Dir is +1 for a left-to-right
// traversal, -1 for right-to-left.
type EnergyBallConfig struct {
	Y       float64
	Dir     float64
	Speed   float64
	Radius  float64
	Damage  float64
	Impulse float64
}

// EnergyBall sweeps a horizontal lane at constant speed. Its position derives
// purely from an elapsed clock modulo a fixed period computed at spawn, so
// respawns stay strictly periodic: a hit marks the ball not-alive but never
// touches the clock, and the ball reappears at the next period boundary.
type EnergyBall struct {
	ecs.BasicEntity
	cfg        EnergyBallConfig
	arenaWidth float64
	period     float64
	elapsed    float64
	cycles     int
	alive      bool
}

// NewEnergyBall creates a ball for an arena of the given width.
func NewEnergyBall(arenaWidth float64, cfg EnergyBallConfig) *EnergyBall {
	if cfg.Dir >= 0 {
		cfg.Dir = 1
	} else {
		cfg.Dir = -1
	}
	return &EnergyBall{
		BasicEntity: ecs.NewBasic(),
		cfg:         cfg,
		arenaWidth:  arenaWidth,
		period:      (arenaWidth + 2*cfg.Radius) / cfg.Speed,
		alive:       true,
	}
}

// Alive reports whether the ball is visible and can collide.
func (e *EnergyBall) Alive() bool { return e.alive }

// Period returns the fixed traversal period in seconds.
func (e *EnergyBall) Period() float64 { return e.period }

// Radius returns the ball's contact radius.
func (e *EnergyBall) Radius() float64 { return e.cfg.Radius }

// Position returns the ball center for the current clock, whether or not the
// ball is alive.
func (e *EnergyBall) Position() physics.Vector2D {
	progress := math.Mod(e.elapsed, e.period) * e.cfg.Speed
	x := -e.cfg.Radius + progress
	if e.cfg.Dir < 0 {
		x = e.arenaWidth + e.cfg.Radius - progress
	}
	return physics.Vector2D{X: x, Y: e.cfg.Y}
}

// Update advances the clock, respawns the ball on period boundaries, and
// resolves at most one hit. Hit impulse is radial through the victim's part
// center with no torque; the hit consumes the ball until its next respawn.
func (e *EnergyBall) Update(dt float64, ships []*Ship) []HazardHit {
	e.elapsed += dt
	if cycle := int(e.elapsed / e.period); cycle > e.cycles {
		e.cycles = cycle
		e.alive = true
	}
	if !e.alive {
		return nil
	}

	pos := e.Position()
	for _, ship := range ships {
		if ship == nil || ship.Destroyed || ship.Body == nil {
			continue
		}
		part, center := ship.NearestPart(pos)
		if part == nil || center.Distance(pos) > e.cfg.Radius {
			continue
		}

		result := ship.ApplyDamage(part, e.cfg.Damage)
		radial := center.Sub(pos).Normalize()
		if radial.LengthSquared() == 0 {
			radial = physics.Vector2D{X: e.cfg.Dir, Y: 0}
		}
		ship.Body.ApplyImpulse(radial.Scale(e.cfg.Impulse), center)

		e.alive = false
		return []HazardHit{{
			Ship:      ship,
			PartIndex: part.Index,
			Damage:    e.cfg.Damage,
			Result:    result,
		}}
	}
	return nil
}
