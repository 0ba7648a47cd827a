// pkg/engine/arena_test.go
package engine

import (
	"testing"

	"github.com/scrapship/arena/pkg/config"
	"github.com/scrapship/arena/pkg/entity"
	"github.com/scrapship/arena/pkg/event"
	"github.com/scrapship/arena/pkg/physics"
	"github.com/scrapship/arena/pkg/piece"
)

func newTestArena(t *testing.T) *Arena {
	t.Helper()
	cfg := config.DefaultConfig()
	// Keep hazards out of the way unless a test wants them.
	cfg.SawBlades.Count = 0
	cfg.EnergyBalls.Rows = 0
	arena, err := NewArena(cfg)
	if err != nil {
		t.Fatalf("NewArena() error = %v", err)
	}
	return arena
}

func addFighter(t *testing.T, a *Arena, team int, pos physics.Vector2D) *entity.Ship {
	t.Helper()
	ship, err := a.AddShip(piece.StandardFighter(), team, pos)
	if err != nil {
		t.Fatalf("AddShip() error = %v", err)
	}
	return ship
}

// TestNewArena_InvalidConfig tests config validation at construction
func TestNewArena_InvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.TimeStep = 0
	if _, err := NewArena(cfg); err == nil {
		t.Error("NewArena() with zero time step, want error")
	}
}

// TestArena_AddShip tests registration and the assembly event
func TestArena_AddShip(t *testing.T) {
	arena := newTestArena(t)

	var assembled []uint64
	arena.Events.Subscribe(event.ShipAssembled, func(e event.Event) {
		if se, ok := e.(*event.ShipEvent); ok {
			assembled = append(assembled, se.ShipID)
		}
	})

	ship := addFighter(t, arena, 1, physics.Vector2D{X: 300, Y: 400})

	if len(arena.Ships()) != 1 {
		t.Errorf("len(Ships()) = %d, want 1", len(arena.Ships()))
	}
	if arena.Ship(ship.ID()) != ship {
		t.Error("Ship() lookup did not return the added ship")
	}
	if len(assembled) != 1 || assembled[0] != ship.ID() {
		t.Errorf("assembled events = %v, want [%d]", assembled, ship.ID())
	}

	if _, err := arena.AddShip(nil, 0, physics.Vector2D{}); err == nil {
		t.Error("AddShip() with no pieces, want error")
	}
}

// TestArena_ForwardThrustMovesShip tests the full tick path from input to
// physics integration
func TestArena_ForwardThrustMovesShip(t *testing.T) {
	arena := newTestArena(t)
	ship := addFighter(t, arena, 0, physics.Vector2D{X: 600, Y: 400})

	arena.SetInput(ship.ID(), InputState{Forward: true})
	start := ship.Position()
	for i := 0; i < 30; i++ {
		arena.Update()
	}

	// Ship-forward at angle zero points along +Y.
	if vel := ship.Velocity(); vel.Y <= 0 {
		t.Errorf("Velocity().Y = %v, want > 0 after forward thrust", vel.Y)
	}
	if pos := ship.Position(); pos.Y <= start.Y {
		t.Errorf("Position().Y = %v, want > %v", pos.Y, start.Y)
	}
	if arena.Tick != 30 {
		t.Errorf("Tick = %d, want 30", arena.Tick)
	}
}

// TestArena_TurnTowardSettles tests the proportional turn controller through
// full ticks
func TestArena_TurnTowardSettles(t *testing.T) {
	arena := newTestArena(t)
	ship := addFighter(t, arena, 0, physics.Vector2D{X: 600, Y: 400})

	target := 1.2
	arena.SetInput(ship.ID(), InputState{TurnToward: true, TargetAngle: target})
	for i := 0; i < 1800; i++ {
		arena.Update()
	}

	diff := physics.NormalizeAngle(ship.Angle() - target)
	if diff > 0.15 || diff < -0.15 {
		t.Errorf("Angle() settled at %v, want within 0.15 of %v", ship.Angle(), target)
	}
}

// TestArena_FireProducesProjectilesAndEvents tests weapon input handling
func TestArena_FireProducesProjectilesAndEvents(t *testing.T) {
	arena := newTestArena(t)
	ship := addFighter(t, arena, 0, physics.Vector2D{X: 600, Y: 400})

	fired := 0
	arena.Events.Subscribe(event.ProjectileFired, func(event.Event) { fired++ })

	arena.SetInput(ship.ID(), InputState{Fire: true})
	arena.Update()

	if len(arena.Weapons.Projectiles) != 2 {
		t.Errorf("live projectiles = %d, want 2", len(arena.Weapons.Projectiles))
	}
	if fired != 2 {
		t.Errorf("fired events = %d, want 2", fired)
	}
}

// TestWeaponSystem_ProjectileCap tests the bounded projectile pool
func TestWeaponSystem_ProjectileCap(t *testing.T) {
	arena := newTestArena(t)
	ship := addFighter(t, arena, 0, physics.Vector2D{X: 600, Y: 400})
	arena.Weapons.MaxProjectiles = 1

	arena.SetInput(ship.ID(), InputState{Fire: true})
	arena.Update()

	if len(arena.Weapons.Projectiles) != 1 {
		t.Errorf("live projectiles = %d, want capped at 1", len(arena.Weapons.Projectiles))
	}
}

// TestWeaponSystem_NoSelfHit tests that a round never damages its shooter
func TestWeaponSystem_NoSelfHit(t *testing.T) {
	arena := newTestArena(t)
	shooter := addFighter(t, arena, 0, physics.Vector2D{X: 600, Y: 400})

	// A round planted inside the shooter's own hull.
	arena.Weapons.Projectiles = append(arena.Weapons.Projectiles,
		entity.NewProjectile(shooter.Position(), physics.Vector2D{}, 10, 5, shooter))

	arena.Weapons.CheckProjectileCollisions()

	if len(arena.Weapons.Projectiles) != 1 {
		t.Errorf("projectile removed by its own shooter, pool = %d, want 1",
			len(arena.Weapons.Projectiles))
	}
	for _, part := range shooter.Parts {
		if part.HP != part.MaxHP {
			t.Errorf("shooter part %d damaged to %v", part.Index, part.HP)
		}
	}
}

// TestWeaponSystem_FirstHitRemovesProjectile tests single-hit resolution with
// the full event cascade
func TestWeaponSystem_FirstHitRemovesProjectile(t *testing.T) {
	arena := newTestArena(t)
	shooter := addFighter(t, arena, 0, physics.Vector2D{X: 200, Y: 400})
	target := addFighter(t, arena, 1, physics.Vector2D{X: 600, Y: 400})

	hits := 0
	arena.Events.Subscribe(event.ProjectileHit, func(e event.Event) {
		he, ok := e.(*event.HitEvent)
		if !ok {
			t.Fatal("ProjectileHit payload is not a HitEvent")
		}
		if he.ShooterID != shooter.ID() || he.TargetID != target.ID() {
			t.Errorf("hit %d -> %d, want %d -> %d",
				he.ShooterID, he.TargetID, shooter.ID(), target.ID())
		}
		hits++
	})

	arena.Weapons.Projectiles = append(arena.Weapons.Projectiles,
		entity.NewProjectile(target.Position(), physics.Vector2D{}, 10, 3, shooter))

	arena.Weapons.CheckProjectileCollisions()

	if hits != 1 {
		t.Errorf("hit events = %d, want 1", hits)
	}
	if len(arena.Weapons.Projectiles) != 0 {
		t.Errorf("pool = %d after hit, want 0", len(arena.Weapons.Projectiles))
	}
	core := target.Parts[target.Core.PartIndex]
	if core.HP != core.MaxHP-3 {
		t.Errorf("target core HP = %v, want %v", core.HP, core.MaxHP-3)
	}
}

// TestWeaponSystem_CoreKillReportsDestroyed tests destroyed-ship reporting
// and the ShipDestroyed event
func TestWeaponSystem_CoreKillReportsDestroyed(t *testing.T) {
	arena := newTestArena(t)
	shooter := addFighter(t, arena, 0, physics.Vector2D{X: 200, Y: 400})
	target := addFighter(t, arena, 1, physics.Vector2D{X: 600, Y: 400})

	destroyedEvents := 0
	arena.Events.Subscribe(event.ShipDestroyed, func(event.Event) { destroyedEvents++ })

	// Enough damage to break the core in one hit.
	coreHP := target.Parts[target.Core.PartIndex].MaxHP
	arena.Weapons.Projectiles = append(arena.Weapons.Projectiles,
		entity.NewProjectile(target.Position(), physics.Vector2D{}, 10, coreHP, shooter))

	destroyed := arena.Weapons.CheckProjectileCollisions()

	if len(destroyed) != 1 || destroyed[0] != target {
		t.Errorf("destroyed = %v, want the target ship", destroyed)
	}
	if !target.Destroyed {
		t.Error("target not flagged destroyed")
	}
	if destroyedEvents != 1 {
		t.Errorf("ShipDestroyed events = %d, want 1", destroyedEvents)
	}

	// A destroyed ship is no longer a valid hit target.
	arena.Weapons.Projectiles = append(arena.Weapons.Projectiles,
		entity.NewProjectile(target.Position(), physics.Vector2D{}, 10, 1, shooter))
	arena.Weapons.CheckProjectileCollisions()
	if len(arena.Weapons.Projectiles) != 1 {
		t.Error("projectile consumed by a destroyed ship")
	}
}

// TestHazardSystem_BuiltFromConfig tests hazard construction and strike
// event publication
func TestHazardSystem_BuiltFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.SawBlades.Count = 2
	cfg.EnergyBalls.Rows = 3
	arena, err := NewArena(cfg)
	if err != nil {
		t.Fatalf("NewArena() error = %v", err)
	}

	if len(arena.Hazards.Saws) != 2 {
		t.Errorf("saw count = %d, want 2", len(arena.Hazards.Saws))
	}
	if len(arena.Hazards.Balls) != 3 {
		t.Errorf("ball count = %d, want 3", len(arena.Hazards.Balls))
	}

	strikes := 0
	arena.Events.Subscribe(event.HazardStrike, func(event.Event) { strikes++ })

	// Park a ship on the first saw's current position and tick once.
	sawPos := arena.Hazards.Saws[0].Position()
	addFighter(t, arena, 0, sawPos)
	arena.Update()

	if strikes == 0 {
		t.Error("no HazardStrike events after parking a ship on a saw")
	}
}
