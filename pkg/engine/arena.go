// Package engine runs the arena simulation loop: ship actuation, weapons,
// hazards, and the physics step, scheduled as prioritized systems over a
// shared entity world. Tick order is fixed: thrust first, then weapons, then
// hazards, then the physics step, so accumulated forces always reflect the
// frame's inputs.
package engine

import (
	"github.com/EngoEngine/ecs"

	"github.com/scrapship/arena/pkg/config"
	"github.com/scrapship/arena/pkg/entity"
	"github.com/scrapship/arena/pkg/event"
	"github.com/scrapship/arena/pkg/physics"
	"github.com/scrapship/arena/pkg/piece"
)

// System priorities; higher runs earlier within a tick.
const (
	thrustPriority = 30
	weaponPriority = 20
	hazardPriority = 10
	stepPriority   = 0
)

// Arena owns one simulation: the physics world, the ships, their per-tick
// inputs, and the weapon and hazard systems. All state is mutated only from
// Update; the arena is not safe for concurrent use.
type Arena struct {
	cfg    *config.ArenaConfig
	World  *physics.World
	Events *event.Bus

	Weapons *WeaponSystem
	Hazards *HazardSystem

	ships     []*entity.Ship
	shipIndex map[uint64]*entity.Ship
	inputs    map[uint64]InputState

	ecsWorld *ecs.World
	Tick     uint64
}

// NewArena creates an arena from a validated configuration.
func NewArena(cfg *config.ArenaConfig) (*Arena, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &Arena{
		cfg: cfg,
		World: physics.NewWorld(cfg.ArenaWidth, cfg.ArenaHeight, physics.WallConfig{
			Elasticity: cfg.Assembly.Restitution,
			Friction:   cfg.Assembly.Friction,
		}),
		Events:    event.NewEventBus(),
		shipIndex: make(map[uint64]*entity.Ship),
		inputs:    make(map[uint64]InputState),
		ecsWorld:  &ecs.World{},
	}

	a.Weapons = newWeaponSystem(a)
	a.Hazards = newHazardSystem(a)

	a.ecsWorld.AddSystem(&thrustSystem{arena: a})
	a.ecsWorld.AddSystem(a.Weapons)
	a.ecsWorld.AddSystem(a.Hazards)
	a.ecsWorld.AddSystem(&stepSystem{arena: a})
	return a, nil
}

// Config returns the arena's configuration.
func (a *Arena) Config() *config.ArenaConfig { return a.cfg }

// TimeStep returns the fixed simulation step in seconds.
func (a *Arena) TimeStep() float64 { return a.cfg.TimeStep }

// Ships returns the ships in insertion order. Destroyed ships stay listed;
// they are only excluded as hit targets.
func (a *Arena) Ships() []*entity.Ship { return a.ships }

// Ship returns a ship by entity ID, or nil.
func (a *Arena) Ship(id uint64) *entity.Ship { return a.shipIndex[id] }

// AddShip assembles a ship from pieces at a spawn position and registers it
// with the simulation.
func (a *Arena) AddShip(pieces []*piece.Piece, teamID int, position physics.Vector2D) (*entity.Ship, error) {
	ship, err := entity.AssembleShip(a.World, pieces, entity.AssemblyOptions{
		TeamID:         teamID,
		Position:       position,
		Scale:          a.cfg.ShipScale,
		LinearDamping:  a.cfg.Assembly.LinearDamping,
		AngularDamping: a.cfg.Assembly.AngularDamping,
		Elasticity:     a.cfg.Assembly.Restitution,
		Friction:       a.cfg.Assembly.Friction,
	})
	if err != nil {
		return nil, err
	}
	a.ships = append(a.ships, ship)
	a.shipIndex[ship.ID()] = ship
	a.Events.Publish(event.NewShipEvent(event.ShipAssembled, a, ship.ID(), teamID))
	return ship, nil
}

// SetInput replaces a ship's control intent. The intent persists until
// replaced; callers normally set it every tick.
func (a *Arena) SetInput(shipID uint64, in InputState) {
	a.inputs[shipID] = in
}

// Input returns a ship's current control intent.
func (a *Arena) Input(shipID uint64) InputState {
	return a.inputs[shipID]
}

// Update advances the simulation by one fixed time step.
func (a *Arena) Update() {
	a.Tick++
	a.ecsWorld.Update(float32(a.cfg.TimeStep))
}

// publishDamage emits the event cascade for one damage application.
func (a *Arena) publishDamage(ship *entity.Ship, result entity.DamageResult) {
	if result.Broken {
		a.Events.Publish(event.NewPartEvent(event.PartBroken, a, ship.ID(), result.PartIndex))
	}
	for _, idx := range result.DisabledThrusters {
		a.Events.Publish(event.NewEquipmentEvent(event.EquipmentDisabled, a, ship.ID(), "thruster", idx))
	}
	for _, idx := range result.DisabledCannons {
		a.Events.Publish(event.NewEquipmentEvent(event.EquipmentDisabled, a, ship.ID(), "cannon", idx))
	}
	if result.CoreDestroyed {
		a.Events.Publish(event.NewShipEvent(event.ShipDestroyed, a, ship.ID(), ship.TeamID))
	}
}

// thrustSystem applies every ship's thrust intent and advances thruster
// runtime state. It runs before any other system so forces are in place for
// the physics step.
type thrustSystem struct {
	arena *Arena
}

func (s *thrustSystem) Priority() int { return thrustPriority }

func (s *thrustSystem) Remove(ecs.BasicEntity) {}

func (s *thrustSystem) Update(dt float32) {
	a := s.arena
	step := float64(dt)
	for _, ship := range a.ships {
		in := a.inputs[ship.ID()]
		throttle := in.throttle()

		if in.Forward {
			ship.ApplyDirectionalThrust(entity.DirForward, throttle)
		}
		if in.Back {
			ship.ApplyDirectionalThrust(entity.DirBack, throttle)
		}
		if in.Left {
			ship.ApplyDirectionalThrust(entity.DirLeft, throttle)
		}
		if in.Right {
			ship.ApplyDirectionalThrust(entity.DirRight, throttle)
		}

		switch {
		case in.TurnToward:
			ship.ApplyAngularThrust(in.TargetAngle, throttle)
		case in.TurnLeft:
			ship.ApplyAngularThrustDirection(-1, throttle)
			if in.FastTurn {
				ship.ApplyRotationThrusters(-1, throttle)
			}
		case in.TurnRight:
			ship.ApplyAngularThrustDirection(1, throttle)
			if in.FastTurn {
				ship.ApplyRotationThrusters(1, throttle)
			}
		}

		for _, idx := range ship.UpdateThrusterState(step) {
			a.Events.Publish(event.NewEquipmentEvent(event.ThrusterOverheated, a, ship.ID(), "thruster", idx))
		}
	}
}

// stepSystem integrates the physics substrate. It runs last.
type stepSystem struct {
	arena *Arena
}

func (s *stepSystem) Priority() int { return stepPriority }

func (s *stepSystem) Remove(ecs.BasicEntity) {}

func (s *stepSystem) Update(dt float32) {
	s.arena.World.Step(float64(dt))
}
