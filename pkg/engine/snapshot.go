// pkg/engine/snapshot.go
package engine

import (
	"github.com/vmihailenco/msgpack/v5"
)

// Snapshot is a read-only view of the arena for perception and replay
// consumers: ship transforms and equipment state, live projectiles, and
// hazard positions. It carries exactly the fields needed to reconstruct the
// visible world, nothing internal.
type Snapshot struct {
	Tick        uint64            `msgpack:"tick"`
	Ships       []ShipState       `msgpack:"ships"`
	Projectiles []ProjectileState `msgpack:"projectiles"`
	Saws        []SawState        `msgpack:"saws"`
	Balls       []BallState       `msgpack:"balls"`
}

// ShipState is one ship's observable state.
type ShipState struct {
	ID         uint64          `msgpack:"id"`
	TeamID     int             `msgpack:"team"`
	X          float64         `msgpack:"x"`
	Y          float64         `msgpack:"y"`
	Angle      float64         `msgpack:"angle"`
	VX         float64         `msgpack:"vx"`
	VY         float64         `msgpack:"vy"`
	AngularVel float64         `msgpack:"angularVel"`
	Destroyed  bool            `msgpack:"destroyed"`
	Parts      []PartState     `msgpack:"parts"`
	Thrusters  []ThrusterState `msgpack:"thrusters"`
	Cannons    []CannonState   `msgpack:"cannons"`
}

// PartState is one part's observable state.
type PartState struct {
	HP     float64 `msgpack:"hp"`
	Broken bool    `msgpack:"broken"`
}

// ThrusterState is one thruster's observable state.
type ThrusterState struct {
	Disabled   bool `msgpack:"disabled"`
	Overheated bool `msgpack:"overheated"`
}

// CannonState is one cannon's observable state.
type CannonState struct {
	Disabled   bool    `msgpack:"disabled"`
	ReloadLeft float64 `msgpack:"reloadLeft"`
	AimOffset  float64 `msgpack:"aimOffset"`
}

// ProjectileState is one live round.
type ProjectileState struct {
	X       float64 `msgpack:"x"`
	Y       float64 `msgpack:"y"`
	VX      float64 `msgpack:"vx"`
	VY      float64 `msgpack:"vy"`
	Shooter uint64  `msgpack:"shooter"`
	Damage  float64 `msgpack:"damage"`
}

// SawState is one saw blade's position.
type SawState struct {
	X      float64 `msgpack:"x"`
	Y      float64 `msgpack:"y"`
	Radius float64 `msgpack:"radius"`
}

// BallState is one energy ball's position and visibility.
type BallState struct {
	X      float64 `msgpack:"x"`
	Y      float64 `msgpack:"y"`
	Radius float64 `msgpack:"radius"`
	Alive  bool    `msgpack:"alive"`
}

// Snapshot captures the arena's current observable state.
func (a *Arena) Snapshot() *Snapshot {
	snap := &Snapshot{Tick: a.Tick}

	for _, ship := range a.ships {
		pos := ship.Position()
		vel := ship.Velocity()
		state := ShipState{
			ID:        ship.ID(),
			TeamID:    ship.TeamID,
			X:         pos.X,
			Y:         pos.Y,
			Angle:     ship.Angle(),
			VX:        vel.X,
			VY:        vel.Y,
			Destroyed: ship.Destroyed,
		}
		if ship.Body != nil {
			state.AngularVel = ship.Body.AngularVelocity()
		}
		for _, part := range ship.Parts {
			state.Parts = append(state.Parts, PartState{HP: part.HP, Broken: part.Broken})
		}
		for _, t := range ship.Thrusters {
			state.Thrusters = append(state.Thrusters, ThrusterState{
				Disabled:   t.Disabled,
				Overheated: t.Overheated,
			})
		}
		for _, c := range ship.Cannons {
			state.Cannons = append(state.Cannons, CannonState{
				Disabled:   c.Disabled,
				ReloadLeft: c.ReloadLeft,
				AimOffset:  c.AimOffset,
			})
		}
		snap.Ships = append(snap.Ships, state)
	}

	for _, p := range a.Weapons.Projectiles {
		shooterID := uint64(0)
		if p.Shooter != nil {
			shooterID = p.Shooter.ID()
		}
		snap.Projectiles = append(snap.Projectiles, ProjectileState{
			X:       p.Position.X,
			Y:       p.Position.Y,
			VX:      p.Velocity.X,
			VY:      p.Velocity.Y,
			Shooter: shooterID,
			Damage:  p.Damage,
		})
	}

	for _, saw := range a.Hazards.Saws {
		pos := saw.Position()
		snap.Saws = append(snap.Saws, SawState{X: pos.X, Y: pos.Y, Radius: saw.Radius()})
	}
	for _, ball := range a.Hazards.Balls {
		pos := ball.Position()
		snap.Balls = append(snap.Balls, BallState{
			X:      pos.X,
			Y:      pos.Y,
			Radius: ball.Radius(),
			Alive:  ball.Alive(),
		})
	}

	return snap
}

// EncodeSnapshot serializes a snapshot to msgpack.
func EncodeSnapshot(s *Snapshot) ([]byte, error) {
	return msgpack.Marshal(s)
}

// DecodeSnapshot deserializes a msgpack snapshot.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
