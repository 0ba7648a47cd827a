// pkg/entity/ship.go
package entity

import (
	"errors"

	"github.com/EngoEngine/ecs"

	"github.com/scrapship/arena/pkg/physics"
	"github.com/scrapship/arena/pkg/piece"
)

// ErrEmptyAssembly is returned when a ship is assembled from an empty piece
// list or when no sub-shapes could be produced from it.
var ErrEmptyAssembly = errors.New("entity: assembly produced no parts")

// Default compound-body tuning, used when AssemblyOptions leaves a field zero.
const (
	DefaultShipScale      = 10.0
	defaultLinearDamping  = 0.5
	defaultAngularDamping = 0.3
	defaultElasticity     = 0.4
	defaultFriction       = 0.6
)

// Ship is one assembled spacecraft: a single compound rigid body plus the
// parallel part/thruster/cannon registries built from its piece list. The
// ship's local frame fixes +Y as forward and +X as right; grid rows grow
// opposite forward.
type Ship struct {
	ecs.BasicEntity
	TeamID    int
	Body      *physics.Body
	Parts     []*Part
	Thrusters []*Thruster
	Cannons   []*Cannon
	Core      *Core
	Destroyed bool

	// CenterOfMass is the piece-mass-weighted centroid of piece centers in
	// grid-cell coordinates, computed once at assembly.
	CenterOfMass physics.Vector2D

	// clock is simulation time accumulated by UpdateThrusterState; it stamps
	// the overheat usage windows.
	clock float64
}

// Core provides omni (non-directional) linear thrust and all angular thrust.
// Without a core a ship can neither rotate nor strafe.
type Core struct {
	PartIndex          int
	LocalPos           physics.Vector2D
	OmniThrustForce    float64
	AngularThrustForce float64
}

// Part wraps one sub-shape of the compound body. Once Broken it is
// permanently excluded from damage targeting and containment hit tests.
type Part struct {
	Index    int
	Piece    *piece.Piece
	Shape    *physics.Shape
	LocalPos physics.Vector2D
	HP       float64
	MaxHP    float64
	Broken   bool
	IsCore   bool
}

// AssemblyOptions configures ship assembly. Zero-valued tuning fields fall
// back to the package defaults above.
type AssemblyOptions struct {
	TeamID   int
	Position physics.Vector2D
	Scale    float64

	LinearDamping  float64
	AngularDamping float64
	Elasticity     float64
	Friction       float64
}

// AssembleShip builds a ship from an ordered piece list: one physics sub-shape
// per piece positioned relative to the mass centroid, plus the part, thruster,
// cannon, and core registries. Pieces are never mutated. Returns
// ErrEmptyAssembly when the piece list yields no sub-shapes.
func AssembleShip(world *physics.World, pieces []*piece.Piece, opts AssemblyOptions) (*Ship, error) {
	if len(pieces) == 0 {
		return nil, ErrEmptyAssembly
	}

	scale := opts.Scale
	if scale == 0 {
		scale = DefaultShipScale
	}

	centroid := massCentroid(pieces)

	boxes := make([]physics.BoxSpec, 0, len(pieces))
	locals := make([]physics.Vector2D, len(pieces))
	for i, p := range pieces {
		center := p.Center()
		// Grid rows grow opposite ship-forward, so the row axis flips when
		// converting to the local frame.
		local := physics.Vector2D{
			X: (center.X - centroid.X) * scale,
			Y: -(center.Y - centroid.Y) * scale,
		}
		locals[i] = local
		boxes = append(boxes, physics.BoxSpec{
			Offset: local,
			Width:  float64(p.Cols) * scale,
			Height: float64(p.Rows) * scale,
			Mass:   p.Mass,
			Tag:    i,
		})
	}

	body, shapes := world.NewCompoundBody(boxes, physics.BodyConfig{
		LinearDamping:  orDefault(opts.LinearDamping, defaultLinearDamping),
		AngularDamping: orDefault(opts.AngularDamping, defaultAngularDamping),
		Elasticity:     orDefault(opts.Elasticity, defaultElasticity),
		Friction:       orDefault(opts.Friction, defaultFriction),
	})
	if body == nil {
		return nil, ErrEmptyAssembly
	}

	ship := &Ship{
		BasicEntity:  ecs.NewBasic(),
		TeamID:       opts.TeamID,
		Body:         body,
		CenterOfMass: centroid,
	}

	for i, p := range pieces {
		part := &Part{
			Index:    i,
			Piece:    p,
			Shape:    shapes[i],
			LocalPos: locals[i],
			HP:       p.HitPoints(),
			MaxHP:    p.HitPoints(),
			IsCore:   p.Kind == piece.KindCore,
		}
		ship.Parts = append(ship.Parts, part)

		switch p.Kind {
		case piece.KindThruster:
			if p.Thruster != nil {
				ship.registerThruster(i, locals[i], p)
			}
		case piece.KindCannon:
			if p.Cannon != nil {
				ship.Cannons = append(ship.Cannons, newCannon(i, locals[i], p))
			}
		case piece.KindCore:
			if p.Core != nil && ship.Core == nil {
				ship.Core = &Core{
					PartIndex:          i,
					LocalPos:           locals[i],
					OmniThrustForce:    p.Core.OmniThrustForce,
					AngularThrustForce: p.Core.AngularThrustForce,
				}
			}
		}
	}

	body.SetPosition(opts.Position)
	return ship, nil
}

// massCentroid returns the piece-mass-weighted centroid of piece centers in
// grid-cell coordinates.
func massCentroid(pieces []*piece.Piece) physics.Vector2D {
	var sum physics.Vector2D
	total := 0.0
	for _, p := range pieces {
		mass := p.Mass
		if mass <= 0 {
			mass = 1
		}
		sum = sum.Add(p.Center().Scale(mass))
		total += mass
	}
	return sum.Scale(1 / total)
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

// Position returns the ship's world position, or zero without a body.
func (s *Ship) Position() physics.Vector2D {
	if s == nil || s.Body == nil {
		return physics.Vector2D{}
	}
	return s.Body.Position()
}

// Angle returns the ship's world rotation, or zero without a body.
func (s *Ship) Angle() float64 {
	if s == nil || s.Body == nil {
		return 0
	}
	return s.Body.Angle()
}

// Velocity returns the ship's linear velocity, or zero without a body.
func (s *Ship) Velocity() physics.Vector2D {
	if s == nil || s.Body == nil {
		return physics.Vector2D{}
	}
	return s.Body.Velocity()
}

// worldPoint converts a body-local offset to a world point.
func (s *Ship) worldPoint(local physics.Vector2D) physics.Vector2D {
	return s.Position().Add(local.Rotate(s.Angle()))
}

// PartAt returns the first non-broken part whose sub-shape contains the world
// point, or nil.
func (s *Ship) PartAt(p physics.Vector2D) *Part {
	if s == nil || s.Body == nil {
		return nil
	}
	for _, part := range s.Parts {
		if part.Broken {
			continue
		}
		if part.Shape.ContainsPoint(p) {
			return part
		}
	}
	return nil
}

// NearestPart returns the non-broken part whose center lies closest to the
// world point, with that center, or nil when every part is broken.
func (s *Ship) NearestPart(p physics.Vector2D) (*Part, physics.Vector2D) {
	if s == nil || s.Body == nil {
		return nil, physics.Vector2D{}
	}
	var best *Part
	var bestCenter physics.Vector2D
	bestDist := 0.0
	for _, part := range s.Parts {
		if part.Broken {
			continue
		}
		center := s.worldPoint(part.LocalPos)
		dist := center.Distance(p)
		if best == nil || dist < bestDist {
			best = part
			bestCenter = center
			bestDist = dist
		}
	}
	return best, bestCenter
}
